package web

import (
	"net/http"

	"restock-agent/internal/app"
)

// listProducts handles GET /api/products.
func (h *Handler) listProducts(w http.ResponseWriter, r *http.Request) {
	claims := authFromContext(r.Context())
	result, err := h.svc.ListProducts(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, r, err.Error(), "INTERNAL_ERROR", http.StatusInternalServerError)
		return
	}
	writeJSON(w, result)
}

// createProduct handles POST /api/products.
func (h *Handler) createProduct(w http.ResponseWriter, r *http.Request) {
	claims := authFromContext(r.Context())
	var req struct {
		Name              string `json:"name"`
		DefaultQuantity   *int   `json:"default_quantity"`
		DefaultSupplierID *int   `json:"default_supplier_id"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.svc.CreateProduct(r.Context(), app.ProductRequest{
		UserID:            claims.UserID,
		Name:              req.Name,
		DefaultQuantity:   req.DefaultQuantity,
		DefaultSupplierID: req.DefaultSupplierID,
	})
	if err != nil {
		serviceError(w, r, err)
		return
	}
	writeJSONStatus(w, result, http.StatusCreated)
}

// reconcileProduct handles POST /api/products/reconcile.
func (h *Handler) reconcileProduct(w http.ResponseWriter, r *http.Request) {
	claims := authFromContext(r.Context())
	var req struct {
		Name              string `json:"name"`
		DefaultSupplierID *int   `json:"default_supplier_id"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.svc.ReconcileProduct(r.Context(), app.ReconcileProductRequest{
		UserID:            claims.UserID,
		Name:              req.Name,
		DefaultSupplierID: req.DefaultSupplierID,
	})
	if err != nil {
		serviceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// deleteProduct handles DELETE /api/products/{id}.
func (h *Handler) deleteProduct(w http.ResponseWriter, r *http.Request) {
	claims := authFromContext(r.Context())
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	if err := h.svc.DeleteProduct(r.Context(), claims.UserID, id); err != nil {
		serviceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
