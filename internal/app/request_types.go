package app

// RegisterRequest carries a new account's fields.
type RegisterRequest struct {
	Email     string
	Password  string
	StoreName string
	OwnerName string
}

// ReconcileSupplierRequest resolves a supplier by name for a user.
type ReconcileSupplierRequest struct {
	UserID int
	Name   string
	Email  string
}

// SupplierRequest carries the editable fields for supplier create/update.
type SupplierRequest struct {
	UserID int
	Name   string
	Email  string
	Phone  string
	Notes  string
}

// ReconcileProductRequest resolves a product by name for a user.
type ReconcileProductRequest struct {
	UserID            int
	Name              string
	DefaultSupplierID *int
}

// ProductRequest carries the editable fields for product creation.
type ProductRequest struct {
	UserID            int
	Name              string
	DefaultQuantity   *int
	DefaultSupplierID *int
}

// AddItemRequest appends a line item to a session.
type AddItemRequest struct {
	UserID     int
	SessionID  int
	ProductID  int
	SupplierID int
	Quantity   int
	Notes      string
}

// EmailProduct is one (product name, quantity) pair in an ad-hoc email
// generation request.
type EmailProduct struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// GenerateEmailRequest drafts a single supplier order email outside a
// session.
type GenerateEmailRequest struct {
	UserID        int
	SupplierName  string
	SupplierEmail string
	Products      []EmailProduct
	Urgency       string
	Tone          string
}

// UserDataRequest selects which of a user's data to retrieve.
type UserDataRequest struct {
	UserID          int
	DataType        string // "sessions", "products", "suppliers", or "all"
	IncludeFinished bool
}
