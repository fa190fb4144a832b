package core

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type productService struct {
	pool *pgxpool.Pool
}

// NewProductService constructs a ProductService backed by PostgreSQL.
func NewProductService(pool *pgxpool.Pool) ProductService {
	return &productService{pool: pool}
}

const productColumns = "id, user_id, name, default_quantity, default_supplier_id, created_at"

func scanProduct(row pgx.Row) (*Product, error) {
	p := &Product{}
	err := row.Scan(&p.ID, &p.UserID, &p.Name, &p.DefaultQuantity, &p.DefaultSupplierID, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// assertSupplierOwned rejects a default supplier reference that does not
// belong to the user. The FK only checks existence, not ownership.
func (s *productService) assertSupplierOwned(ctx context.Context, userID int, supplierID *int) error {
	if supplierID == nil {
		return nil
	}
	var ok bool
	if err := s.pool.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM suppliers WHERE id = $1 AND user_id = $2)",
		*supplierID, userID,
	).Scan(&ok); err != nil {
		return fmt.Errorf("validate supplier: %w", err)
	}
	if !ok {
		return fmt.Errorf("supplier %d not found for user %d", *supplierID, userID)
	}
	return nil
}

// Reconcile upserts against the unique index on (user_id, lower(name)).
func (s *productService) Reconcile(ctx context.Context, userID int, name string, defaultSupplierID *int) (*Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("product name must not be empty")
	}
	if err := s.assertSupplierOwned(ctx, userID, defaultSupplierID); err != nil {
		return nil, err
	}

	p, err := scanProduct(s.pool.QueryRow(ctx, `
		INSERT INTO products (user_id, name, default_supplier_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, lower(name)) DO UPDATE
		SET default_supplier_id = COALESCE(EXCLUDED.default_supplier_id, products.default_supplier_id)
		RETURNING `+productColumns,
		userID, name, defaultSupplierID,
	))
	if err != nil {
		return nil, fmt.Errorf("reconcile product %q: %w", name, err)
	}
	return p, nil
}

// Create inserts a new product record for the user.
func (s *productService) Create(ctx context.Context, userID int, input ProductInput) (*Product, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("product name must not be empty")
	}
	if err := s.assertSupplierOwned(ctx, userID, input.DefaultSupplierID); err != nil {
		return nil, err
	}

	p, err := scanProduct(s.pool.QueryRow(ctx, `
		INSERT INTO products (user_id, name, default_quantity, default_supplier_id)
		VALUES ($1, $2, $3, $4)
		RETURNING `+productColumns,
		userID, name, input.DefaultQuantity, input.DefaultSupplierID,
	))
	if err != nil {
		return nil, fmt.Errorf("create product %q: %w", name, err)
	}
	return p, nil
}

// List returns all products owned by the user, ordered by name.
func (s *productService) List(ctx context.Context, userID int) ([]Product, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE user_id = $1
		ORDER BY lower(name)`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.UserID, &p.Name,
			&p.DefaultQuantity, &p.DefaultSupplierID, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, nil
}

// GetByID returns a product by ID, scoped to the user.
func (s *productService) GetByID(ctx context.Context, userID, productID int) (*Product, error) {
	p, err := scanProduct(s.pool.QueryRow(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE id = $1 AND user_id = $2`,
		productID, userID,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("product %d not found", productID)
		}
		return nil, fmt.Errorf("get product %d: %w", productID, err)
	}
	return p, nil
}

// Delete removes a product owned by the user.
func (s *productService) Delete(ctx context.Context, userID, productID int) error {
	tag, err := s.pool.Exec(ctx,
		"DELETE FROM products WHERE id = $1 AND user_id = $2",
		productID, userID,
	)
	if err != nil {
		return fmt.Errorf("delete product %d: %w", productID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("product %d not found", productID)
	}
	return nil
}
