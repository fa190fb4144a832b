package web

import (
	"net/http"

	"restock-agent/internal/app"
)

// generateEmail handles POST /api/emails/generate: drafts a single supplier
// order email outside any session.
func (h *Handler) generateEmail(w http.ResponseWriter, r *http.Request) {
	claims := authFromContext(r.Context())
	var req struct {
		Supplier string             `json:"supplier"`
		Email    string             `json:"email"`
		Products []app.EmailProduct `json:"products"`
		Urgency  string             `json:"urgency"`
		Tone     string             `json:"tone"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.svc.GenerateOrderEmail(r.Context(), app.GenerateEmailRequest{
		UserID:        claims.UserID,
		SupplierName:  req.Supplier,
		SupplierEmail: req.Email,
		Products:      req.Products,
		Urgency:       req.Urgency,
		Tone:          req.Tone,
	})
	if err != nil {
		observeDispatch(0, 1)
		serviceError(w, r, err)
		return
	}
	observeDispatch(1, 0)
	writeJSON(w, result)
}
