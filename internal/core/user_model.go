package core

import (
	"context"
	"time"
)

// User is a store owner account. All suppliers, products, and sessions are
// owned by exactly one user.
type User struct {
	ID           int       `json:"id"`
	Email        string    `json:"email"`
	StoreName    string    `json:"store_name"`
	OwnerName    string    `json:"owner_name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// UserInput holds the fields required to register a new user.
type UserInput struct {
	Email        string
	StoreName    string
	OwnerName    string
	PasswordHash string
}

// UserService provides user account operations.
type UserService interface {
	// Create registers a new user. Email addresses are unique
	// case-insensitively.
	Create(ctx context.Context, input UserInput) (*User, error)

	// GetByEmail finds a user by email address (case-insensitive).
	GetByEmail(ctx context.Context, email string) (*User, error)

	// GetByID returns a user by primary key.
	GetByID(ctx context.Context, userID int) (*User, error)
}
