package api

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/ashureev/voicebooth/internal/catalog"
	"github.com/ashureev/voicebooth/internal/domain"
	"github.com/ashureev/voicebooth/internal/identity"
	"github.com/go-chi/chi/v5"
	"github.com/openai/openai-go/v3"
)

// toolInfo is the wire shape of one tool listing entry.
type toolInfo struct {
	Name       string                              `json:"name"`
	Agent      string                              `json:"agent"`
	Definition openai.ChatCompletionToolUnionParam `json:"definition"`
}

// handleListTools returns the full tool surface with OpenAI function
// schemas, so an orchestrator can register them with the model verbatim.
func (h *Handler) handleListTools(w http.ResponseWriter, r *http.Request) {
	all := h.registry.Tools()
	out := make([]toolInfo, 0, len(all))
	for _, t := range all {
		out = append(out, toolInfo{Name: t.Name, Agent: t.Agent, Definition: t.Definition})
	}
	JSON(w, http.StatusOK, out)
}

// handleInvokeTool runs one tool call against the caller's session. The
// body is the raw JSON arguments object; an empty body means no arguments.
// The reply is always speakable text, even for unknown tools or bad
// arguments, so the voice pipeline never has to special-case errors.
func (h *Handler) handleInvokeTool(w http.ResponseWriter, r *http.Request) {
	userID := identity.UserIDFromContext(r.Context())
	sessionID := chi.URLParam(r, "sessionID")
	toolName := chi.URLParam(r, "tool")

	if sessionID == "" || toolName == "" {
		Error(w, http.StatusBadRequest, "session id and tool name are required")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	args, err := io.ReadAll(r.Body)
	if err != nil {
		Error(w, http.StatusRequestEntityTooLarge, "request body too large")
		return
	}

	sess := h.sessions.GetOrCreate(userID, sessionID)
	text := h.registry.Dispatch(r.Context(), sess, toolName, args)

	slog.Info("Tool invoked",
		"tool", toolName,
		"user_id", userID,
		"session_id", sessionID,
		"reply_len", len(text))

	JSON(w, http.StatusOK, map[string]string{"text": text})
}

// handleDropSession discards the caller's session state.
func (h *Handler) handleDropSession(w http.ResponseWriter, r *http.Request) {
	userID := identity.UserIDFromContext(r.Context())
	sessionID := chi.URLParam(r, "sessionID")
	if sessionID == "" {
		Error(w, http.StatusBadRequest, "session id is required")
		return
	}

	h.sessions.Drop(userID, sessionID)
	JSON(w, http.StatusOK, map[string]string{"status": "dropped"})
}

// handleCatalog lists products, optionally filtered by query parameters.
func (h *Handler) handleCatalog(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := catalog.Filter{
		Category: q.Get("category"),
		Color:    q.Get("color"),
		Size:     q.Get("size"),
		Query:    q.Get("q"),
		MinPrice: parsePriceParam(r, "min_price"),
		MaxPrice: parsePriceParam(r, "max_price"),
	}
	products := h.catalog.List(filter)
	if products == nil {
		products = []domain.Product{}
	}
	JSON(w, http.StatusOK, products)
}

// handleOrders returns every persisted order across all sessions.
func (h *Handler) handleOrders(w http.ResponseWriter, r *http.Request) {
	all, err := h.store.List(r.Context())
	if err != nil {
		slog.Error("Failed to list orders", "error", err)
		Error(w, http.StatusInternalServerError, "failed to list orders")
		return
	}
	if all == nil {
		all = []domain.Order{}
	}
	JSON(w, http.StatusOK, all)
}
