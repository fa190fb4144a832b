package web

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"restock-agent/internal/app"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handler holds the ApplicationService and the chi router.
type Handler struct {
	svc       app.ApplicationService
	router    chi.Router
	jwtSecret string
	tokenTTL  time.Duration
}

// NewHandler creates and wires the chi router with all routes.
func NewHandler(svc app.ApplicationService, log *slog.Logger, allowedOrigins, jwtSecret string, tokenTTL time.Duration) http.Handler {
	h := &Handler{
		svc:       svc,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
	}

	r := chi.NewRouter()
	r.Use(RequestID)
	r.Use(Logger(log))
	r.Use(Recoverer(log))
	r.Use(CORS(allowedOrigins))

	// Public endpoints.
	r.Get("/api/health", h.health)
	r.Handle("/metrics", promhttp.Handler())
	r.Group(func(r chi.Router) {
		r.Use(RequestBodyLimit(1 << 20)) // 1 MB
		r.Post("/api/auth/register", h.register)
		r.Post("/api/auth/login", h.login)
		r.Post("/api/auth/logout", h.logout)
	})

	// Authenticated endpoints. Every handler below derives the acting user
	// from verified JWT claims and threads it explicitly into the service.
	r.Group(func(r chi.Router) {
		r.Use(h.RequireAuth)
		r.Use(RequestBodyLimit(1 << 20)) // 1 MB

		r.Get("/api/auth/me", h.me)
		r.Get("/api/user-data", h.userData)

		r.Get("/api/suppliers", h.listSuppliers)
		r.Post("/api/suppliers", h.createSupplier)
		r.Post("/api/suppliers/reconcile", h.reconcileSupplier)
		r.Put("/api/suppliers/{id}", h.updateSupplier)
		r.Delete("/api/suppliers/{id}", h.deleteSupplier)

		r.Get("/api/products", h.listProducts)
		r.Post("/api/products", h.createProduct)
		r.Post("/api/products/reconcile", h.reconcileProduct)
		r.Delete("/api/products/{id}", h.deleteProduct)

		r.Get("/api/sessions", h.listSessions)
		r.Post("/api/sessions", h.createSession)
		r.Get("/api/sessions/{id}", h.getSession)
		r.Get("/api/sessions/{id}/summary", h.sessionSummary)
		r.Post("/api/sessions/{id}/items", h.addSessionItem)
		r.Delete("/api/sessions/{id}/items/{itemID}", h.removeSessionItem)
		r.Post("/api/sessions/{id}/dispatch", h.dispatchSession)
		r.Get("/api/sessions/{id}/emails", h.sessionEmails)

		r.Post("/api/emails/generate", h.generateEmail)
	})

	h.router = r
	return r
}

// health returns service status.
func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	type response struct {
		Status string `json:"status"`
	}
	writeJSON(w, response{Status: "ok"})
}

// urlID extracts a positive integer URL parameter, writing a 400 on failure.
func urlID(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil || id <= 0 {
		writeError(w, r, "invalid "+name+" parameter", "BAD_REQUEST", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

// decodeJSON decodes the request body into v and returns false + writes an
// appropriate error response on failure. Returns HTTP 413 when the body
// exceeds the size limit set by RequestBodyLimit middleware; HTTP 400 for
// all other decode errors.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			writeError(w, r, "request body too large", "REQUEST_TOO_LARGE", http.StatusRequestEntityTooLarge)
			return false
		}
		writeError(w, r, "invalid JSON body: "+err.Error(), "BAD_REQUEST", http.StatusBadRequest)
		return false
	}
	return true
}
