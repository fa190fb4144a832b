package core_test

import (
	"context"
	"testing"

	"restock-agent/internal/core"
)

func TestProductReconcile_CaseInsensitiveReuse(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	svc := core.NewProductService(pool)
	ctx := context.Background()

	first, err := svc.Reconcile(ctx, testUserID, "Whole Milk 1L", nil)
	if err != nil {
		t.Fatalf("First reconcile failed: %v", err)
	}

	second, err := svc.Reconcile(ctx, testUserID, "whole milk 1l", nil)
	if err != nil {
		t.Fatalf("Second reconcile failed: %v", err)
	}
	if second.ID != first.ID {
		t.Errorf("expected same product ID %d, got %d", first.ID, second.ID)
	}
	if second.Name != "Whole Milk 1L" {
		t.Errorf("expected original name casing, got %q", second.Name)
	}

	products, err := svc.List(ctx, testUserID)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(products) != 1 {
		t.Errorf("expected 1 product after reconciles, got %d", len(products))
	}
}

func TestProductReconcile_DefaultSupplier(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	suppliers := core.NewSupplierService(pool)
	products := core.NewProductService(pool)
	ctx := context.Background()

	sup, err := suppliers.Reconcile(ctx, testUserID, "Fresh Farms", "")
	if err != nil {
		t.Fatalf("supplier reconcile failed: %v", err)
	}

	// First reconcile without a default supplier, second sets it, third with
	// nil must not clear it.
	if _, err := products.Reconcile(ctx, testUserID, "Whole Milk 1L", nil); err != nil {
		t.Fatalf("First reconcile failed: %v", err)
	}

	withDefault, err := products.Reconcile(ctx, testUserID, "Whole Milk 1L", &sup.ID)
	if err != nil {
		t.Fatalf("Second reconcile failed: %v", err)
	}
	if withDefault.DefaultSupplierID == nil || *withDefault.DefaultSupplierID != sup.ID {
		t.Fatalf("expected default supplier %d, got %v", sup.ID, withDefault.DefaultSupplierID)
	}

	again, err := products.Reconcile(ctx, testUserID, "whole milk 1l", nil)
	if err != nil {
		t.Fatalf("Third reconcile failed: %v", err)
	}
	if again.DefaultSupplierID == nil || *again.DefaultSupplierID != sup.ID {
		t.Errorf("expected default supplier to survive nil, got %v", again.DefaultSupplierID)
	}
}

func TestProduct_CrossUserDefaultSupplier(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	suppliers := core.NewSupplierService(pool)
	products := core.NewProductService(pool)
	ctx := context.Background()

	theirs, err := suppliers.Reconcile(ctx, otherUserID, "Acme Beverages", "")
	if err != nil {
		t.Fatalf("seed other user supplier: %v", err)
	}

	// Another user's supplier cannot become a product default.
	if _, err := products.Reconcile(ctx, testUserID, "Cola 330ml", &theirs.ID); err == nil {
		t.Errorf("expected reconcile with cross-user supplier to fail, got nil")
	}
	if _, err := products.Create(ctx, testUserID, core.ProductInput{
		Name:              "Cola 330ml",
		DefaultSupplierID: &theirs.ID,
	}); err == nil {
		t.Errorf("expected create with cross-user supplier to fail, got nil")
	}

	// The user's own supplier is still accepted.
	mine, err := suppliers.Reconcile(ctx, testUserID, "Acme Beverages", "")
	if err != nil {
		t.Fatalf("seed own supplier: %v", err)
	}
	prod, err := products.Reconcile(ctx, testUserID, "Cola 330ml", &mine.ID)
	if err != nil {
		t.Fatalf("reconcile with own supplier failed: %v", err)
	}
	if prod.DefaultSupplierID == nil || *prod.DefaultSupplierID != mine.ID {
		t.Errorf("expected default supplier %d, got %v", mine.ID, prod.DefaultSupplierID)
	}
}

func TestProductReconcile_UserScoping(t *testing.T) {
	pool := setupTestDB(t)
	defer pool.Close()

	svc := core.NewProductService(pool)
	ctx := context.Background()

	mine, err := svc.Reconcile(ctx, testUserID, "Whole Milk 1L", nil)
	if err != nil {
		t.Fatalf("Reconcile for user %d failed: %v", testUserID, err)
	}
	theirs, err := svc.Reconcile(ctx, otherUserID, "Whole Milk 1L", nil)
	if err != nil {
		t.Fatalf("Reconcile for user %d failed: %v", otherUserID, err)
	}
	if theirs.ID == mine.ID {
		t.Errorf("products of different users share ID %d", mine.ID)
	}
}
