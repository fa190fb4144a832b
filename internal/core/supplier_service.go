package core

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type supplierService struct {
	pool *pgxpool.Pool
}

// NewSupplierService constructs a SupplierService backed by PostgreSQL.
func NewSupplierService(pool *pgxpool.Pool) SupplierService {
	return &supplierService{pool: pool}
}

const supplierColumns = "id, user_id, name, email, phone, notes, created_at, updated_at"

func scanSupplier(row pgx.Row) (*Supplier, error) {
	s := &Supplier{}
	err := row.Scan(&s.ID, &s.UserID, &s.Name, &s.Email, &s.Phone, &s.Notes, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return s, nil
}

// Reconcile upserts against the unique index on (user_id, lower(name)), so a
// case-different name resolves to the existing row and two racing calls both
// land on the same identifier. A non-empty email refreshes the stored one.
func (s *supplierService) Reconcile(ctx context.Context, userID int, name, email string) (*Supplier, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("supplier name must not be empty")
	}

	sup, err := scanSupplier(s.pool.QueryRow(ctx, `
		INSERT INTO suppliers (user_id, name, email)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, lower(name)) DO UPDATE
		SET email      = COALESCE(NULLIF(EXCLUDED.email, ''), suppliers.email),
		    updated_at = now()
		RETURNING `+supplierColumns,
		userID, name, email,
	))
	if err != nil {
		return nil, fmt.Errorf("reconcile supplier %q: %w", name, err)
	}
	return sup, nil
}

// Create inserts a new supplier record for the user.
func (s *supplierService) Create(ctx context.Context, userID int, input SupplierInput) (*Supplier, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("supplier name must not be empty")
	}

	toPtr := func(s string) *string {
		if s == "" {
			return nil
		}
		return &s
	}

	sup, err := scanSupplier(s.pool.QueryRow(ctx, `
		INSERT INTO suppliers (user_id, name, email, phone, notes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING `+supplierColumns,
		userID, name, input.Email, toPtr(input.Phone), toPtr(input.Notes),
	))
	if err != nil {
		return nil, fmt.Errorf("create supplier %q: %w", name, err)
	}
	return sup, nil
}

// List returns all suppliers owned by the user, ordered by name.
func (s *supplierService) List(ctx context.Context, userID int) ([]Supplier, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+supplierColumns+`
		FROM suppliers
		WHERE user_id = $1
		ORDER BY lower(name)`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	defer rows.Close()

	var suppliers []Supplier
	for rows.Next() {
		var sup Supplier
		if err := rows.Scan(&sup.ID, &sup.UserID, &sup.Name, &sup.Email,
			&sup.Phone, &sup.Notes, &sup.CreatedAt, &sup.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan supplier: %w", err)
		}
		suppliers = append(suppliers, sup)
	}
	return suppliers, nil
}

// GetByID returns a supplier by ID, scoped to the user.
func (s *supplierService) GetByID(ctx context.Context, userID, supplierID int) (*Supplier, error) {
	sup, err := scanSupplier(s.pool.QueryRow(ctx, `
		SELECT `+supplierColumns+`
		FROM suppliers
		WHERE id = $1 AND user_id = $2`,
		supplierID, userID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("supplier %d not found", supplierID)
		}
		return nil, fmt.Errorf("get supplier %d: %w", supplierID, err)
	}
	return sup, nil
}

// Update replaces the editable fields of a supplier owned by the user.
func (s *supplierService) Update(ctx context.Context, userID, supplierID int, input SupplierInput) (*Supplier, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("supplier name must not be empty")
	}

	toPtr := func(s string) *string {
		if s == "" {
			return nil
		}
		return &s
	}

	sup, err := scanSupplier(s.pool.QueryRow(ctx, `
		UPDATE suppliers
		SET name = $1, email = $2, phone = $3, notes = $4, updated_at = now()
		WHERE id = $5 AND user_id = $6
		RETURNING `+supplierColumns,
		name, input.Email, toPtr(input.Phone), toPtr(input.Notes), supplierID, userID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("supplier %d not found", supplierID)
		}
		return nil, fmt.Errorf("update supplier %d: %w", supplierID, err)
	}
	return sup, nil
}

// Delete removes a supplier owned by the user.
func (s *supplierService) Delete(ctx context.Context, userID, supplierID int) error {
	tag, err := s.pool.Exec(ctx,
		"DELETE FROM suppliers WHERE id = $1 AND user_id = $2",
		supplierID, userID,
	)
	if err != nil {
		return fmt.Errorf("delete supplier %d: %w", supplierID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("supplier %d not found", supplierID)
	}
	return nil
}
