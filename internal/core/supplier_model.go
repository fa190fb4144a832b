package core

import (
	"context"
	"time"
)

// Supplier is a vendor the store owner orders from. Identity is scoped to the
// owning user and keyed case-insensitively by name.
type Supplier struct {
	ID        int        `json:"id"`
	UserID    int        `json:"user_id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Phone     *string    `json:"phone,omitempty"`
	Notes     *string    `json:"notes,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// SupplierInput holds the editable fields of a supplier record.
type SupplierInput struct {
	Name  string
	Email string
	Phone string
	Notes string
}

// SupplierService provides supplier master data operations, all scoped to an
// explicit owning user.
type SupplierService interface {
	// Reconcile resolves (userID, name) to a stable supplier identifier:
	// an existing row matched case-insensitively on name is reused, otherwise
	// a new row is created. The resolution is atomic, so concurrent calls
	// with the same name converge on the same row.
	Reconcile(ctx context.Context, userID int, name, email string) (*Supplier, error)

	// Create inserts a new supplier record for the user.
	Create(ctx context.Context, userID int, input SupplierInput) (*Supplier, error)

	// List returns all suppliers owned by the user, ordered by name.
	List(ctx context.Context, userID int) ([]Supplier, error)

	// GetByID returns a supplier by ID, scoped to the user.
	GetByID(ctx context.Context, userID, supplierID int) (*Supplier, error)

	// Update replaces the editable fields of a supplier owned by the user.
	Update(ctx context.Context, userID, supplierID int, input SupplierInput) (*Supplier, error)

	// Delete removes a supplier owned by the user. Deletion is an explicit
	// user action; reconciliation never deletes rows.
	Delete(ctx context.Context, userID, supplierID int) error
}
