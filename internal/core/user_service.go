package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

type userService struct {
	pool *pgxpool.Pool
}

// NewUserService constructs a UserService backed by PostgreSQL.
func NewUserService(pool *pgxpool.Pool) UserService {
	return &userService{pool: pool}
}

func (s *userService) Create(ctx context.Context, input UserInput) (*User, error) {
	u := &User{}
	err := s.pool.QueryRow(ctx, `
		INSERT INTO users (email, store_name, owner_name, password_hash)
		VALUES ($1, $2, $3, $4)
		RETURNING id, email, store_name, owner_name, password_hash, created_at`,
		strings.ToLower(strings.TrimSpace(input.Email)), input.StoreName, input.OwnerName, input.PasswordHash,
	).Scan(&u.ID, &u.Email, &u.StoreName, &u.OwnerName, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create user %q: %w", input.Email, err)
	}
	return u, nil
}

func (s *userService) GetByEmail(ctx context.Context, email string) (*User, error) {
	u := &User{}
	err := s.pool.QueryRow(ctx, `
		SELECT id, email, store_name, owner_name, password_hash, created_at
		FROM users
		WHERE email = lower($1)
		LIMIT 1`,
		strings.TrimSpace(email),
	).Scan(&u.ID, &u.Email, &u.StoreName, &u.OwnerName, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("user %q not found: %w", email, err)
	}
	return u, nil
}

func (s *userService) GetByID(ctx context.Context, userID int) (*User, error) {
	u := &User{}
	err := s.pool.QueryRow(ctx, `
		SELECT id, email, store_name, owner_name, password_hash, created_at
		FROM users
		WHERE id = $1`,
		userID,
	).Scan(&u.ID, &u.Email, &u.StoreName, &u.OwnerName, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("user id=%d not found: %w", userID, err)
	}
	return u, nil
}
