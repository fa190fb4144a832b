package app

import (
	"context"

	"restock-agent/internal/core"
)

// ApplicationService is the single interface the web adapter calls. It
// decouples presentation from business logic; implementations contain no
// HTTP types and no display logic of any kind. Every operation takes the
// acting user's identifier explicitly — there is no ambient current user.
type ApplicationService interface {
	// Register creates a new store owner account after validating the store
	// name, email format, and password strength.
	Register(ctx context.Context, req RegisterRequest) (*UserResult, error)

	// AuthenticateUser verifies credentials and returns a session on success.
	AuthenticateUser(ctx context.Context, email, password string) (*UserSession, error)

	// GetUser returns a user profile by ID.
	GetUser(ctx context.Context, userID int) (*UserResult, error)

	// ReconcileSupplier resolves a supplier name to a stable identifier,
	// creating the supplier on first reference. The email must be valid
	// before reconciliation is attempted.
	ReconcileSupplier(ctx context.Context, req ReconcileSupplierRequest) (*SupplierResult, error)

	// CreateSupplier inserts a new supplier record.
	CreateSupplier(ctx context.Context, req SupplierRequest) (*SupplierResult, error)

	// ListSuppliers returns all suppliers owned by the user.
	ListSuppliers(ctx context.Context, userID int) (*SuppliersResult, error)

	// UpdateSupplier replaces the editable fields of a supplier.
	UpdateSupplier(ctx context.Context, supplierID int, req SupplierRequest) (*SupplierResult, error)

	// DeleteSupplier removes a supplier owned by the user.
	DeleteSupplier(ctx context.Context, userID, supplierID int) error

	// ReconcileProduct resolves a product name to a stable identifier,
	// creating the product on first reference.
	ReconcileProduct(ctx context.Context, req ReconcileProductRequest) (*ProductResult, error)

	// CreateProduct inserts a new product record.
	CreateProduct(ctx context.Context, req ProductRequest) (*ProductResult, error)

	// ListProducts returns all products owned by the user.
	ListProducts(ctx context.Context, userID int) (*ProductsResult, error)

	// DeleteProduct removes a product owned by the user.
	DeleteProduct(ctx context.Context, userID, productID int) error

	// CreateSession opens a new draft restock session.
	CreateSession(ctx context.Context, userID int) (*SessionResult, error)

	// GetSession returns a session with its items, supplier groups, and
	// derived summary counters.
	GetSession(ctx context.Context, userID, sessionID int) (*SessionResult, error)

	// ListSessions returns the user's sessions partitioned into unfinished
	// (draft) and finished (sent). Finished sessions are loaded only when
	// includeFinished is true.
	ListSessions(ctx context.Context, userID int, includeFinished bool) (*SessionsResult, error)

	// AddSessionItem appends a line item to a draft session.
	AddSessionItem(ctx context.Context, req AddItemRequest) (*SessionItemResult, error)

	// RemoveSessionItem deletes a line item from a draft session.
	RemoveSessionItem(ctx context.Context, userID, sessionID, itemID int) error

	// GetSessionSummary returns the derived counters for a session.
	GetSessionSummary(ctx context.Context, userID, sessionID int) (*core.SessionSummary, error)

	// GenerateOrderEmail drafts a single supplier order email without a
	// session, for ad-hoc use.
	GenerateOrderEmail(ctx context.Context, req GenerateEmailRequest) (*EmailResult, error)

	// DispatchSession groups a draft session's items by supplier, generates
	// one order email per group, and transitions the session to sent when at
	// least one email was produced. A failure for one supplier does not
	// block the others; every per-supplier outcome is reported.
	DispatchSession(ctx context.Context, userID, sessionID int) (*DispatchResult, error)

	// ListSessionEmails returns the persisted email drafts for a session.
	ListSessionEmails(ctx context.Context, userID, sessionID int) (*SessionEmailsResult, error)

	// GetUserData returns the user's data for the requested dataType
	// (sessions, products, suppliers, or all), with sessions partitioned
	// into unfinished and finished.
	GetUserData(ctx context.Context, req UserDataRequest) (*UserDataResult, error)
}
