package core

import (
	"context"
	"time"
)

// RestockSession is a user-scoped batch of restock line items destined for
// one or more supplier order emails. It starts as a draft and transitions to
// sent exactly once, when its emails are dispatched.
type RestockSession struct {
	ID        int           `json:"id"`
	UserID    int           `json:"user_id"`
	Status    SessionStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
	SentAt    *time.Time    `json:"sent_at,omitempty"`

	// Items is the ordered line item list. Populated by Get; List leaves it
	// nil and fills the derived counters instead.
	Items []SessionItem `json:"items,omitempty"`

	// ItemCount and TotalQuantity are derived by the List query. They are
	// never stored, so they cannot go stale against the item list.
	ItemCount     int `json:"item_count"`
	TotalQuantity int `json:"total_quantity"`
}

// SessionItem is one line of a restock session. Product and supplier names
// and the supplier email are denormalized from the referenced rows at read
// time for grouping and email generation.
type SessionItem struct {
	ID            int       `json:"id"`
	SessionID     int       `json:"session_id"`
	ProductID     int       `json:"product_id"`
	ProductName   string    `json:"product_name"`
	SupplierID    int       `json:"supplier_id"`
	SupplierName  string    `json:"supplier_name"`
	SupplierEmail string    `json:"supplier_email"`
	Quantity      int       `json:"quantity"`
	Notes         *string   `json:"notes,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// SessionItemInput holds the fields required to add a line item.
type SessionItemInput struct {
	ProductID  int
	SupplierID int
	Quantity   int
	Notes      string
}

// EmailDraft is a generated supplier order email persisted against a session.
type EmailDraft struct {
	ID           int       `json:"id"`
	SessionID    int       `json:"session_id"`
	SupplierID   int       `json:"supplier_id"`
	SupplierName string    `json:"supplier_name"`
	Subject      string    `json:"subject"`
	Body         string    `json:"body"`
	Confidence   float64   `json:"confidence"`
	Model        string    `json:"model"`
	GenerationMs int64     `json:"generation_ms"`
	CreatedAt    time.Time `json:"created_at"`
}

// SessionService provides restock session lifecycle operations, all scoped to
// an explicit owning user.
type SessionService interface {
	// Create opens a new draft session for the user.
	Create(ctx context.Context, userID int) (*RestockSession, error)

	// Get returns a session with its ordered item list, scoped to the user.
	Get(ctx context.Context, userID, sessionID int) (*RestockSession, error)

	// List returns the user's sessions, newest first, with derived item
	// counters. Sent sessions are omitted unless includeFinished is true.
	List(ctx context.Context, userID int, includeFinished bool) ([]RestockSession, error)

	// AddItem appends a line item to a draft session. The referenced product
	// and supplier must belong to the same user, and quantity must be
	// positive. Adding to a sent session is rejected.
	AddItem(ctx context.Context, userID, sessionID int, input SessionItemInput) (*SessionItem, error)

	// RemoveItem deletes a line item from a draft session.
	RemoveItem(ctx context.Context, userID, sessionID, itemID int) error

	// MarkSent transitions a draft session to sent. The transition happens
	// once; marking an already-sent session is an error.
	MarkSent(ctx context.Context, userID, sessionID int) error

	// SaveEmailDraft persists a generated order email against a session.
	SaveEmailDraft(ctx context.Context, sessionID, supplierID int, email OrderEmail, model string, generationMs int64) (*EmailDraft, error)

	// ListEmailDrafts returns the generated emails for a session, scoped to
	// the user, newest first.
	ListEmailDrafts(ctx context.Context, userID, sessionID int) ([]EmailDraft, error)
}
