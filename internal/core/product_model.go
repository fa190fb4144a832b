package core

import (
	"context"
	"time"
)

// Product is an item the store owner restocks. Identity is scoped to the
// owning user and keyed case-insensitively by name, like suppliers.
type Product struct {
	ID                int       `json:"id"`
	UserID            int       `json:"user_id"`
	Name              string    `json:"name"`
	DefaultQuantity   *int      `json:"default_quantity,omitempty"`
	DefaultSupplierID *int      `json:"default_supplier_id,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

// ProductInput holds the editable fields of a product record.
type ProductInput struct {
	Name              string
	DefaultQuantity   *int
	DefaultSupplierID *int
}

// ProductService provides product master data operations scoped to a user.
type ProductService interface {
	// Reconcile resolves (userID, name) to a stable product identifier,
	// reusing an existing row matched case-insensitively on name or creating
	// a new one atomically. A non-nil defaultSupplierID updates the stored
	// default supplier.
	Reconcile(ctx context.Context, userID int, name string, defaultSupplierID *int) (*Product, error)

	// Create inserts a new product record for the user.
	Create(ctx context.Context, userID int, input ProductInput) (*Product, error)

	// List returns all products owned by the user, ordered by name.
	List(ctx context.Context, userID int) ([]Product, error)

	// GetByID returns a product by ID, scoped to the user.
	GetByID(ctx context.Context, userID, productID int) (*Product, error)

	// Delete removes a product owned by the user.
	Delete(ctx context.Context, userID, productID int) error
}
