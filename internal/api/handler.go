// Package api provides HTTP handlers for the Voicebooth API.
package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/ashureev/voicebooth/internal/catalog"
	"github.com/ashureev/voicebooth/internal/orders"
	"github.com/ashureev/voicebooth/internal/session"
	"github.com/ashureev/voicebooth/internal/tools"
	"github.com/go-chi/chi/v5"
)

// maxRequestBodySize is the maximum allowed tool-call body size (1MB).
const maxRequestBodySize = 1 << 20

// Handler serves the tool-call surface and the browse endpoints.
type Handler struct {
	registry    *tools.Registry
	sessions    *session.Manager
	catalog     *catalog.Catalog
	store       orders.Store
	frontendURL string
	isDev       bool
}

// NewHandler creates a new Handler with common dependencies.
func NewHandler(registry *tools.Registry, sessions *session.Manager, cat *catalog.Catalog, store orders.Store, frontendURL string, isDev bool) *Handler {
	return &Handler{
		registry:    registry,
		sessions:    sessions,
		catalog:     cat,
		store:       store,
		frontendURL: frontendURL,
		isDev:       isDev,
	}
}

// Routes registers all API routes.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/api/tools", h.handleListTools)
	r.Post("/api/sessions/{sessionID}/tools/{tool}", h.handleInvokeTool)
	r.Delete("/api/sessions/{sessionID}", h.handleDropSession)
	r.Get("/api/sessions/{sessionID}/events", h.handleSessionEvents)
	r.Get("/api/catalog", h.handleCatalog)
	r.Get("/api/orders", h.handleOrders)
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"error": "failed to encode response"}`, http.StatusInternalServerError)
	}
}

// Error writes a JSON error response.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}

// parsePriceParam reads an optional float query parameter.
func parsePriceParam(r *http.Request, key string) *float64 {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}
