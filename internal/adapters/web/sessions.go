package web

import (
	"net/http"

	"restock-agent/internal/app"
)

// listSessions handles GET /api/sessions. Sent sessions are included when
// ?include_finished=true.
func (h *Handler) listSessions(w http.ResponseWriter, r *http.Request) {
	claims := authFromContext(r.Context())
	includeFinished := r.URL.Query().Get("include_finished") == "true"

	result, err := h.svc.ListSessions(r.Context(), claims.UserID, includeFinished)
	if err != nil {
		writeError(w, r, err.Error(), "INTERNAL_ERROR", http.StatusInternalServerError)
		return
	}
	writeJSON(w, result)
}

// createSession handles POST /api/sessions.
func (h *Handler) createSession(w http.ResponseWriter, r *http.Request) {
	claims := authFromContext(r.Context())
	result, err := h.svc.CreateSession(r.Context(), claims.UserID)
	if err != nil {
		serviceError(w, r, err)
		return
	}
	writeJSONStatus(w, result, http.StatusCreated)
}

// getSession handles GET /api/sessions/{id}.
func (h *Handler) getSession(w http.ResponseWriter, r *http.Request) {
	claims := authFromContext(r.Context())
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	result, err := h.svc.GetSession(r.Context(), claims.UserID, id)
	if err != nil {
		serviceError(w, r, err)
		return
	}
	writeJSON(w, result)
}

// sessionSummary handles GET /api/sessions/{id}/summary.
func (h *Handler) sessionSummary(w http.ResponseWriter, r *http.Request) {
	claims := authFromContext(r.Context())
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	summary, err := h.svc.GetSessionSummary(r.Context(), claims.UserID, id)
	if err != nil {
		serviceError(w, r, err)
		return
	}
	writeJSON(w, summary)
}

// addSessionItem handles POST /api/sessions/{id}/items.
func (h *Handler) addSessionItem(w http.ResponseWriter, r *http.Request) {
	claims := authFromContext(r.Context())
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	var req struct {
		ProductID  int    `json:"product_id"`
		SupplierID int    `json:"supplier_id"`
		Quantity   int    `json:"quantity"`
		Notes      string `json:"notes"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.svc.AddSessionItem(r.Context(), app.AddItemRequest{
		UserID:     claims.UserID,
		SessionID:  id,
		ProductID:  req.ProductID,
		SupplierID: req.SupplierID,
		Quantity:   req.Quantity,
		Notes:      req.Notes,
	})
	if err != nil {
		serviceError(w, r, err)
		return
	}
	writeJSONStatus(w, result, http.StatusCreated)
}

// removeSessionItem handles DELETE /api/sessions/{id}/items/{itemID}.
func (h *Handler) removeSessionItem(w http.ResponseWriter, r *http.Request) {
	claims := authFromContext(r.Context())
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	itemID, ok := urlID(w, r, "itemID")
	if !ok {
		return
	}
	if err := h.svc.RemoveSessionItem(r.Context(), claims.UserID, id, itemID); err != nil {
		serviceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// dispatchSession handles POST /api/sessions/{id}/dispatch: generates one
// order email per supplier group and marks the session sent.
func (h *Handler) dispatchSession(w http.ResponseWriter, r *http.Request) {
	claims := authFromContext(r.Context())
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	result, err := h.svc.DispatchSession(r.Context(), claims.UserID, id)
	if err != nil {
		serviceError(w, r, err)
		return
	}
	observeDispatch(result.Generated, result.Failed)
	writeJSON(w, result)
}

// sessionEmails handles GET /api/sessions/{id}/emails.
func (h *Handler) sessionEmails(w http.ResponseWriter, r *http.Request) {
	claims := authFromContext(r.Context())
	id, ok := urlID(w, r, "id")
	if !ok {
		return
	}
	result, err := h.svc.ListSessionEmails(r.Context(), claims.UserID, id)
	if err != nil {
		serviceError(w, r, err)
		return
	}
	writeJSON(w, result)
}
