package web

import (
	"net/http"
	"strings"

	"restock-agent/internal/app"
)

// serviceError maps a service-layer error onto an HTTP error response.
func serviceError(w http.ResponseWriter, r *http.Request, err error) {
	msg := err.Error()
	switch {
	case strings.Contains(msg, "not found"):
		writeError(w, r, msg, "NOT_FOUND", http.StatusNotFound)
	case strings.Contains(msg, "already been sent"):
		writeError(w, r, msg, "CONFLICT", http.StatusConflict)
	default:
		writeError(w, r, msg, "BAD_REQUEST", http.StatusBadRequest)
	}
}

type supplierPayload struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	Notes string `json:"notes"`
}

// listSuppliers handles GET /api/suppliers.
func (h *Handler) listSuppliers(w http.ResponseWriter, r *http.Request) {
	claims := authFromContext(r.Context())
	result, err := h.svc.ListSuppliers(r.Context(), claims.UserID)
	if err != nil {
		writeError(w, r, err.Error(), "INTERNAL_ERROR", http.StatusInternalServerError)
		return
	}
	writeJSON(w, result)
}

// createSupplier handles POST /api/suppliers.
func (h *Handler) createSupplier(w http.ResponseWriter, r *http.Request) {
	claims := authFromContext(r.Context())
	var req supplierPayload
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.svc.CreateSupplier(r.Context(), app.SupplierRequest{
		UserID: claims.UserID,
		Name:   req.Name,
		Email:  req.Email,
		Phone:  req.Phone,
		Notes:  req.Notes,
	})
	if err != nil {
		serviceError(w, r, err)
		return
	}
	writeJSONStatus(w, result, http.StatusCreated)
}

// reconcileSupplier handles POST /api/suppliers/reconcile.
func (h *Handler) reconcileSupplier(w http.ResponseWriter, r *http.Request) {
	claims := authFromContext(r.Context())
	var req struct {
		Name  string `json:"name"`
		Email string `json:"email"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.svc.ReconcileSupplier(r.Context(), app.ReconcileSupplierRequest{
		UserID: claims.UserID,
		Name:   req.Name,
		Email:  req.Email,
	})
	if err != nil {
		serviceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// updateSupplier handles PUT /api/suppliers/{id}.
func (h *Handler) updateSupplier(w http.ResponseWriter, r *http.Request) {
	claims := authFromContext(r.Context())
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	var req supplierPayload
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.svc.UpdateSupplier(r.Context(), id, app.SupplierRequest{
		UserID: claims.UserID,
		Name:   req.Name,
		Email:  req.Email,
		Phone:  req.Phone,
		Notes:  req.Notes,
	})
	if err != nil {
		serviceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// deleteSupplier handles DELETE /api/suppliers/{id}.
func (h *Handler) deleteSupplier(w http.ResponseWriter, r *http.Request) {
	claims := authFromContext(r.Context())
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	if err := h.svc.DeleteSupplier(r.Context(), claims.UserID, id); err != nil {
		serviceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
