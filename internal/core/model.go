package core

import "fmt"

// SessionStatus is the lifecycle state of a restock session.
type SessionStatus string

const (
	SessionStatusDraft SessionStatus = "draft"
	SessionStatusSent  SessionStatus = "sent"
)

// OrderEmail is the AI-generated supplier-facing order email.
type OrderEmail struct {
	Subject    string  `json:"subject" jsonschema_description:"A short, professional subject line for the restock order email"`
	Body       string  `json:"body" jsonschema_description:"The full plain-text email body: greeting, the ordered products with quantities, and a sign-off from the store owner"`
	Confidence float64 `json:"confidence" jsonschema_description:"Confidence score between 0.0 and 1.0 that the email correctly reflects the requested order"`
}

// Validate checks that a generated email is usable before it is stored or
// returned to a caller.
func (e *OrderEmail) Validate() error {
	if e.Subject == "" {
		return fmt.Errorf("generated email has empty subject")
	}
	if e.Body == "" {
		return fmt.Errorf("generated email has empty body")
	}
	if e.Confidence < 0 || e.Confidence > 1 {
		return fmt.Errorf("confidence %.2f out of range [0,1]", e.Confidence)
	}
	return nil
}
