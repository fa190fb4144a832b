package core_test

import (
	"testing"

	"restock-agent/internal/core"
)

func item(supplierID int, supplierName string, productID int, productName string, qty int) core.SessionItem {
	return core.SessionItem{
		ProductID:    productID,
		ProductName:  productName,
		SupplierID:   supplierID,
		SupplierName: supplierName,
		Quantity:     qty,
	}
}

func TestGroupBySupplier_InterleavedSuppliers(t *testing.T) {
	// Items from supplier A, then B, then A again: two groups, A first,
	// and A's items stay in their original relative order.
	items := []core.SessionItem{
		item(1, "Acme Beverages", 10, "Cola", 24),
		item(2, "Fresh Farms", 11, "Milk", 12),
		item(1, "Acme Beverages", 12, "Lemonade", 6),
	}

	groups := core.GroupBySupplier(items)
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if groups[0].SupplierID != 1 || groups[1].SupplierID != 2 {
		t.Errorf("expected group order [1 2], got [%d %d]", groups[0].SupplierID, groups[1].SupplierID)
	}
	if len(groups[0].Items) != 2 || len(groups[1].Items) != 1 {
		t.Fatalf("expected item counts [2 1], got [%d %d]", len(groups[0].Items), len(groups[1].Items))
	}
	if groups[0].Items[0].ProductName != "Cola" || groups[0].Items[1].ProductName != "Lemonade" {
		t.Errorf("items of supplier 1 out of order: %q, %q",
			groups[0].Items[0].ProductName, groups[0].Items[1].ProductName)
	}
}

func TestGroupBySupplier_Partition(t *testing.T) {
	// Every input item appears in exactly one group, and each group holds
	// only items of its own supplier.
	items := []core.SessionItem{
		item(3, "C", 1, "p1", 1),
		item(1, "A", 2, "p2", 2),
		item(2, "B", 3, "p3", 3),
		item(1, "A", 4, "p4", 4),
		item(3, "C", 5, "p5", 5),
	}

	groups := core.GroupBySupplier(items)

	total := 0
	for _, g := range groups {
		total += len(g.Items)
		for _, it := range g.Items {
			if it.SupplierID != g.SupplierID {
				t.Errorf("item with supplier %d landed in group %d", it.SupplierID, g.SupplierID)
			}
		}
	}
	if total != len(items) {
		t.Errorf("groups hold %d items, input had %d", total, len(items))
	}
}

func TestGroupBySupplier_Empty(t *testing.T) {
	if groups := core.GroupBySupplier(nil); len(groups) != 0 {
		t.Errorf("expected no groups for empty input, got %d", len(groups))
	}
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name  string
		items []core.SessionItem
		want  core.SessionSummary
	}{
		{
			name:  "empty session",
			items: nil,
			want:  core.SessionSummary{},
		},
		{
			name: "single item",
			items: []core.SessionItem{
				item(1, "A", 10, "Cola", 24),
			},
			want: core.SessionSummary{TotalItems: 1, TotalQuantity: 24, UniqueSuppliers: 1, UniqueProducts: 1},
		},
		{
			name: "repeated supplier and product",
			items: []core.SessionItem{
				item(1, "A", 10, "Cola", 24),
				item(1, "A", 11, "Milk", 12),
				item(2, "B", 10, "Cola", 6),
			},
			want: core.SessionSummary{TotalItems: 3, TotalQuantity: 42, UniqueSuppliers: 2, UniqueProducts: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := core.Summarize(tt.items)
			if got != tt.want {
				t.Errorf("Summarize() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
