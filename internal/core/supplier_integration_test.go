package core_test

import (
	"context"
	"os"
	"testing"

	"restock-agent/internal/core"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
)

func setupTestDB(t *testing.T) *pgxpool.Pool {
	_ = godotenv.Load("../../.env")

	// Use a dedicated TEST database to avoid wiping the live app database.
	// Set TEST_DATABASE_URL in your .env or environment to run integration tests.
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set — skipping integration test to protect live database")
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	// Clean and seed test DB: two users so ownership scoping is testable.
	_, err = pool.Exec(ctx, `
		TRUNCATE TABLE email_drafts, session_items, restock_sessions, products, suppliers, users RESTART IDENTITY CASCADE;

		INSERT INTO users (email, store_name, owner_name, password_hash) VALUES
		('owner@teststore.com', 'Test Store', 'Pat Owner', 'x'),
		('other@teststore.com', 'Other Store', 'Sam Other', 'x');
	`)
	if err != nil {
		t.Fatalf("Failed to seed test database: %v", err)
	}

	return pool
}

const (
	testUserID  = 1
	otherUserID = 2
)

func TestSupplierReconcile_CaseInsensitiveReuse(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	svc := core.NewSupplierService(pool)
	ctx := context.Background()

	first, err := svc.Reconcile(ctx, testUserID, "Acme Beverages", "orders@acme.com")
	if err != nil {
		t.Fatalf("First reconcile failed: %v", err)
	}

	// A case-different name must resolve to the same row, not create a new one.
	second, err := svc.Reconcile(ctx, testUserID, "ACME BEVERAGES", "")
	if err != nil {
		t.Fatalf("Second reconcile failed: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("expected same supplier ID %d, got %d", first.ID, second.ID)
	}

	// The blank email on the second call must not wipe the stored one.
	if second.Email != "orders@acme.com" {
		t.Errorf("expected stored email to survive, got %q", second.Email)
	}

	// The original casing of the name is preserved.
	if second.Name != "Acme Beverages" {
		t.Errorf("expected original name casing, got %q", second.Name)
	}

	suppliers, err := svc.List(ctx, testUserID)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(suppliers) != 1 {
		t.Errorf("expected 1 supplier after reconciles, got %d", len(suppliers))
	}
}

func TestSupplierReconcile_EmailRefresh(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	svc := core.NewSupplierService(pool)
	ctx := context.Background()

	if _, err := svc.Reconcile(ctx, testUserID, "Fresh Farms", "old@freshfarms.com"); err != nil {
		t.Fatalf("First reconcile failed: %v", err)
	}

	updated, err := svc.Reconcile(ctx, testUserID, "fresh farms", "new@freshfarms.com")
	if err != nil {
		t.Fatalf("Second reconcile failed: %v", err)
	}
	if updated.Email != "new@freshfarms.com" {
		t.Errorf("expected refreshed email, got %q", updated.Email)
	}
}

func TestSupplierReconcile_UserScoping(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	svc := core.NewSupplierService(pool)
	ctx := context.Background()

	mine, err := svc.Reconcile(ctx, testUserID, "Acme Beverages", "")
	if err != nil {
		t.Fatalf("Reconcile for user %d failed: %v", testUserID, err)
	}

	// Same name under a different user is a different supplier.
	theirs, err := svc.Reconcile(ctx, otherUserID, "Acme Beverages", "")
	if err != nil {
		t.Fatalf("Reconcile for user %d failed: %v", otherUserID, err)
	}
	if theirs.ID == mine.ID {
		t.Errorf("suppliers of different users share ID %d", mine.ID)
	}

	// Cross-user reads must not see the other user's row.
	if _, err := svc.GetByID(ctx, otherUserID, mine.ID); err == nil {
		t.Errorf("expected GetByID across users to fail, got nil")
	}
}

func TestSupplierReconcile_EmptyName(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	svc := core.NewSupplierService(pool)
	if _, err := svc.Reconcile(context.Background(), testUserID, "   ", ""); err == nil {
		t.Errorf("expected error for blank name, got nil")
	}
}

func TestSupplierCRUD(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	svc := core.NewSupplierService(pool)
	ctx := context.Background()

	sup, err := svc.Create(ctx, testUserID, core.SupplierInput{
		Name:  "Fresh Farms",
		Email: "orders@freshfarms.com",
		Phone: "555-0101",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	updated, err := svc.Update(ctx, testUserID, sup.ID, core.SupplierInput{
		Name:  "Fresh Farms Co",
		Email: "sales@freshfarms.com",
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Name != "Fresh Farms Co" || updated.Email != "sales@freshfarms.com" {
		t.Errorf("update not applied: %+v", updated)
	}
	if updated.Phone != nil {
		t.Errorf("expected phone cleared by update, got %q", *updated.Phone)
	}

	if err := svc.Delete(ctx, testUserID, sup.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := svc.Delete(ctx, testUserID, sup.ID); err == nil {
		t.Errorf("expected second delete to fail, got nil")
	}
}
