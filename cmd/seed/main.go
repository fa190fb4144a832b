// seed is a one-shot tool to load demo data into the database: a demo store
// owner with a small supplier and product catalog.
//
// Usage: go run ./cmd/seed
package main

import (
	"context"
	"log"
	"os"

	"restock-agent/internal/db"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

const demoEmail = "demo@cornermarket.test"

func main() {
	_ = godotenv.Load()

	url := os.Getenv("DATABASE_URL")
	if url == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	ctx := context.Background()
	pool, err := db.NewPool(ctx, url, 2)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer pool.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte("demo-password"), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("Failed to hash demo password: %v", err)
	}

	tx, err := pool.Begin(ctx)
	if err != nil {
		log.Fatalf("Failed to begin transaction: %v", err)
	}
	defer tx.Rollback(ctx)

	log.Println("Restoring demo user...")
	var userID int
	err = tx.QueryRow(ctx, `
		INSERT INTO users (email, store_name, owner_name, password_hash)
		VALUES ($1, 'Corner Market', 'Pat Owner', $2)
		ON CONFLICT (lower(email)) DO UPDATE
		  SET store_name = EXCLUDED.store_name,
		      owner_name = EXCLUDED.owner_name
		RETURNING id`,
		demoEmail, string(hash),
	).Scan(&userID)
	if err != nil {
		log.Fatalf("Failed to restore demo user: %v", err)
	}

	log.Println("Restoring suppliers...")
	_, err = tx.Exec(ctx, `
		INSERT INTO suppliers (user_id, name, email, phone)
		SELECT $1, v.name, v.email, v.phone
		FROM (VALUES
		    ('Acme Beverages',  'orders@acme-beverages.test',  '555-0101'),
		    ('Fresh Farms',     'sales@freshfarms.test',       '555-0102'),
		    ('Baker & Sons',    'orders@bakerandsons.test',    '555-0103')
		) AS v(name, email, phone)
		ON CONFLICT (user_id, lower(name)) DO UPDATE
		  SET email = EXCLUDED.email,
		      phone = EXCLUDED.phone`,
		userID,
	)
	if err != nil {
		log.Fatalf("Failed to restore suppliers: %v", err)
	}

	log.Println("Restoring products...")
	_, err = tx.Exec(ctx, `
		INSERT INTO products (user_id, name, default_quantity, default_supplier_id)
		SELECT $1, v.name, v.qty, s.id
		FROM (VALUES
		    ('Cola 330ml',      24, 'Acme Beverages'),
		    ('Lemonade 1L',     12, 'Acme Beverages'),
		    ('Whole Milk 1L',   12, 'Fresh Farms'),
		    ('Free-Range Eggs', 10, 'Fresh Farms'),
		    ('Sourdough Loaf',   8, 'Baker & Sons')
		) AS v(name, qty, supplier)
		JOIN suppliers s ON s.user_id = $1 AND lower(s.name) = lower(v.supplier)
		ON CONFLICT (user_id, lower(name)) DO UPDATE
		  SET default_quantity = EXCLUDED.default_quantity,
		      default_supplier_id = EXCLUDED.default_supplier_id`,
		userID,
	)
	if err != nil {
		log.Fatalf("Failed to restore products: %v", err)
	}

	if err := tx.Commit(ctx); err != nil {
		log.Fatalf("Failed to commit: %v", err)
	}

	log.Printf("Demo data restored. Log in as %s / demo-password", demoEmail)
}
