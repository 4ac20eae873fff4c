package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/ashureev/voicebooth/internal/domain"
	"github.com/ashureev/voicebooth/internal/identity"
	"github.com/coder/websocket"
	"github.com/go-chi/chi/v5"
)

// eventSubscribeBuffer bounds the per-subscriber event queue. A subscriber
// that falls this far behind starts missing events.
const eventSubscribeBuffer = 64

// handleSessionEvents streams the session event log over a websocket: the
// backlog first, then live events as tool calls record them. The demo
// frontend uses this to render the activity feed next to the voice widget.
func (h *Handler) handleSessionEvents(w http.ResponseWriter, r *http.Request) {
	userID := identity.UserIDFromContext(r.Context())
	sessionID := chi.URLParam(r, "sessionID")
	if sessionID == "" {
		Error(w, http.StatusBadRequest, "session id is required")
		return
	}

	if !h.checkOrigin(r) {
		http.Error(w, "origin not allowed", http.StatusForbidden)
		return
	}

	ws, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		OriginPatterns: []string{"*"},
	})
	if err != nil {
		slog.Error("Failed to accept WebSocket", "error", err, "user_id", userID)
		return
	}
	defer func() {
		if closeErr := ws.Close(websocket.StatusNormalClosure, "session ended"); closeErr != nil {
			slog.Debug("Failed to close websocket", "error", closeErr, "user_id", userID)
		}
	}()

	sess := h.sessions.GetOrCreate(userID, sessionID)

	// Subscribe before replaying the backlog so no event falls in the gap.
	// An event recorded mid-replay may arrive on both paths; the feed is
	// informational and tolerates the duplicate.
	live, unsubscribe := sess.Subscribe(eventSubscribeBuffer)
	defer unsubscribe()

	ctx := r.Context()
	for _, event := range sess.Events() {
		if err := writeEvent(ctx, ws, event); err != nil {
			return
		}
	}

	slog.Info("Event feed attached", "user_id", userID, "session_id", sessionID)
	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-live:
			if !ok {
				return
			}
			if err := writeEvent(ctx, ws, event); err != nil {
				slog.Debug("Event feed write failed", "error", err, "user_id", userID)
				return
			}
		}
	}
}

func writeEvent(ctx context.Context, ws *websocket.Conn, event domain.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return ws.Write(ctx, websocket.MessageText, data)
}

func (h *Handler) checkOrigin(r *http.Request) bool {
	if h.isDev {
		return true
	}
	origin := r.Header.Get("Origin")
	if origin == "" || h.frontendURL == "*" {
		return true
	}
	if origin == h.frontendURL {
		return true
	}
	slog.Warn("WebSocket origin rejected", "origin", origin, "allowed", h.frontendURL)
	return false
}
