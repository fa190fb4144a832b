package app

import "restock-agent/internal/core"

// UserSession is the authenticated identity returned by AuthenticateUser.
type UserSession struct {
	UserID    int    `json:"user_id"`
	Email     string `json:"email"`
	StoreName string `json:"store_name"`
}

// UserResult wraps a user profile.
type UserResult struct {
	User *core.User `json:"user"`
}

// SupplierResult wraps a single supplier.
type SupplierResult struct {
	Supplier *core.Supplier `json:"supplier"`
}

// SuppliersResult wraps a supplier list.
type SuppliersResult struct {
	Suppliers []core.Supplier `json:"suppliers"`
}

// ProductResult wraps a single product.
type ProductResult struct {
	Product *core.Product `json:"product"`
}

// ProductsResult wraps a product list.
type ProductsResult struct {
	Products []core.Product `json:"products"`
}

// SessionResult wraps a session with its derived summary and supplier
// groups.
type SessionResult struct {
	Session *core.RestockSession `json:"session"`
	Summary core.SessionSummary  `json:"summary"`
	Groups  []core.SupplierGroup `json:"groups,omitempty"`
}

// SessionsResult partitions a user's sessions by lifecycle state.
type SessionsResult struct {
	Unfinished []core.RestockSession `json:"unfinished"`
	Finished   []core.RestockSession `json:"finished"`
}

// SessionItemResult wraps a single line item.
type SessionItemResult struct {
	Item *core.SessionItem `json:"item"`
}

// EmailResult is one generated order email plus generation metadata.
type EmailResult struct {
	Subject      string  `json:"subject"`
	Body         string  `json:"body"`
	Confidence   float64 `json:"confidence"`
	GenerationMs int64   `json:"generation_ms"`
	Model        string  `json:"model"`
}

// SupplierEmailResult is the outcome of email generation for one supplier
// group. Exactly one of Email and Error is meaningful.
type SupplierEmailResult struct {
	SupplierID    int          `json:"supplier_id"`
	SupplierName  string       `json:"supplier_name"`
	SupplierEmail string       `json:"supplier_email"`
	Email         *EmailResult `json:"email,omitempty"`
	Error         string       `json:"error,omitempty"`
}

// DispatchResult reports a session dispatch: one entry per supplier group,
// with per-supplier failures recorded rather than aborting the batch.
type DispatchResult struct {
	SessionID int                   `json:"session_id"`
	Status    core.SessionStatus    `json:"status"`
	Generated int                   `json:"generated"`
	Failed    int                   `json:"failed"`
	Results   []SupplierEmailResult `json:"results"`
}

// SessionEmailsResult wraps the persisted drafts of a session.
type SessionEmailsResult struct {
	Drafts []core.EmailDraft `json:"drafts"`
}

// UserDataResult is the structured response of the user-data endpoint.
// Slices are populated according to the requested dataType.
type UserDataResult struct {
	Unfinished []core.RestockSession `json:"unfinished,omitempty"`
	Finished   []core.RestockSession `json:"finished,omitempty"`
	Products   []core.Product        `json:"products,omitempty"`
	Suppliers  []core.Supplier       `json:"suppliers,omitempty"`
	Profile    *core.User            `json:"profile,omitempty"`
}
