package web

import (
	"net/http"

	"restock-agent/internal/app"
)

// userData handles GET /api/user-data?type=sessions|products|suppliers|all.
// Sent sessions are included when &include_finished=true.
func (h *Handler) userData(w http.ResponseWriter, r *http.Request) {
	claims := authFromContext(r.Context())

	dataType := r.URL.Query().Get("type")
	if dataType == "" {
		dataType = "all"
	}
	includeFinished := r.URL.Query().Get("include_finished") == "true"

	result, err := h.svc.GetUserData(r.Context(), app.UserDataRequest{
		UserID:          claims.UserID,
		DataType:        dataType,
		IncludeFinished: includeFinished,
	})
	if err != nil {
		serviceError(w, r, err)
		return
	}
	writeJSON(w, result)
}
