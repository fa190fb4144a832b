package core

// SupplierGroup is one supplier's slice of a session: the items destined for
// a single order email.
type SupplierGroup struct {
	SupplierID    int           `json:"supplier_id"`
	SupplierName  string        `json:"supplier_name"`
	SupplierEmail string        `json:"supplier_email"`
	Items         []SessionItem `json:"items"`
}

// SessionSummary holds display counters derived from a session's item list.
type SessionSummary struct {
	TotalItems      int `json:"total_items"`
	TotalQuantity   int `json:"total_quantity"`
	UniqueSuppliers int `json:"unique_suppliers"`
	UniqueProducts  int `json:"unique_products"`
}

// GroupBySupplier partitions items by supplier identifier. Groups appear in
// order of each supplier's first item, and items keep their relative order
// inside a group, so the output is deterministic for a given item list.
func GroupBySupplier(items []SessionItem) []SupplierGroup {
	var groups []SupplierGroup
	index := make(map[int]int, len(items))
	for _, it := range items {
		i, ok := index[it.SupplierID]
		if !ok {
			i = len(groups)
			index[it.SupplierID] = i
			groups = append(groups, SupplierGroup{
				SupplierID:    it.SupplierID,
				SupplierName:  it.SupplierName,
				SupplierEmail: it.SupplierEmail,
			})
		}
		groups[i].Items = append(groups[i].Items, it)
	}
	return groups
}

// Summarize computes the summary counters for a session's items.
// An empty item list yields an all-zero summary.
func Summarize(items []SessionItem) SessionSummary {
	suppliers := make(map[int]struct{})
	products := make(map[int]struct{})
	s := SessionSummary{TotalItems: len(items)}
	for _, it := range items {
		s.TotalQuantity += it.Quantity
		suppliers[it.SupplierID] = struct{}{}
		products[it.ProductID] = struct{}{}
	}
	s.UniqueSuppliers = len(suppliers)
	s.UniqueProducts = len(products)
	return s
}
