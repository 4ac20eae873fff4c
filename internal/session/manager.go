package session

import (
	"log/slog"
	"sync"
)

// Manager owns the active sessions, keyed by user id and session id.
// Sessions are created lazily on first use and discarded on Drop.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]map[string]*Session
	sink     EventSink
}

// NewManager creates a session manager. The sink may be nil.
func NewManager(sink EventSink) *Manager {
	return &Manager{
		sessions: make(map[string]map[string]*Session),
		sink:     sink,
	}
}

// Get returns the session for a user/session pair, or nil.
func (m *Manager) Get(userID, sessionID string) *Session {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if bySession, ok := m.sessions[userID]; ok {
		return bySession[sessionID]
	}
	return nil
}

// GetOrCreate returns the session for a user/session pair, creating it on
// first use.
func (m *Manager) GetOrCreate(userID, sessionID string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[userID]; !ok {
		m.sessions[userID] = make(map[string]*Session)
	}
	if sess, ok := m.sessions[userID][sessionID]; ok {
		return sess
	}

	sess := newSession(userID, sessionID, m.sink)
	m.sessions[userID][sessionID] = sess
	slog.Info("Session created", "user_id", userID, "session_id", sessionID, "id", sess.ID)
	return sess
}

// Drop discards the session state for a user/session pair.
func (m *Manager) Drop(userID, sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if bySession, ok := m.sessions[userID]; ok {
		if _, exists := bySession[sessionID]; exists {
			delete(bySession, sessionID)
			if len(bySession) == 0 {
				delete(m.sessions, userID)
			}
			slog.Info("Session dropped", "user_id", userID, "session_id", sessionID)
		}
	}
}

// Count returns the number of active sessions.
func (m *Manager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	n := 0
	for _, bySession := range m.sessions {
		n += len(bySession)
	}
	return n
}
