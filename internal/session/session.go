// Package session tracks in-memory per-conversation agent state.
package session

import (
	"sync"
	"time"

	"github.com/ashureev/voicebooth/internal/domain"
	"github.com/ashureev/voicebooth/internal/improv"
	"github.com/google/uuid"
)

// EventSink receives every recorded session event. The NDJSON event logger
// implements it; a nil sink disables forwarding.
type EventSink interface {
	Record(userID, sessionID string, event domain.Event)
}

// Session owns the state of one conversation: the improv show, the cart,
// the session-scoped order history, and the free-form event log. Tool calls
// against a single session are serialized by the hosting orchestrator; only
// the event log is additionally read by websocket subscribers, so it has its
// own lock.
type Session struct {
	ID        string
	UserID    string
	SessionID string
	StartedAt time.Time

	Show         improv.Show
	Cart         domain.Cart
	OrderHistory []domain.Order

	sink EventSink

	mu          sync.Mutex
	events      []domain.Event
	subscribers map[chan domain.Event]struct{}
}

func newSession(userID, sessionID string, sink EventSink) *Session {
	return &Session{
		ID:          uuid.NewString()[:8],
		UserID:      userID,
		SessionID:   sessionID,
		StartedAt:   time.Now().UTC(),
		Show:        improv.NewShow(),
		sink:        sink,
		subscribers: make(map[chan domain.Event]struct{}),
	}
}

// RecordEvent appends an entry to the event log, fans it out to websocket
// subscribers, and forwards it to the sink. Slow subscribers are skipped
// rather than blocking the tool call.
func (s *Session) RecordEvent(action string, round int, detail string) {
	event := domain.NewEvent(action, round, detail)

	s.mu.Lock()
	s.events = append(s.events, event)
	for ch := range s.subscribers {
		select {
		case ch <- event:
		default:
		}
	}
	s.mu.Unlock()

	if s.sink != nil {
		s.sink.Record(s.UserID, s.SessionID, event)
	}
}

// Events returns a copy of the event log.
func (s *Session) Events() []domain.Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Event, len(s.events))
	copy(out, s.events)
	return out
}

// Subscribe returns a channel receiving future events plus an unsubscribe
// function. The channel is closed on unsubscribe.
func (s *Session) Subscribe(buffer int) (<-chan domain.Event, func()) {
	if buffer <= 0 {
		buffer = 16
	}
	ch := make(chan domain.Event, buffer)

	s.mu.Lock()
	s.subscribers[ch] = struct{}{}
	s.mu.Unlock()

	return ch, func() {
		s.mu.Lock()
		if _, ok := s.subscribers[ch]; ok {
			delete(s.subscribers, ch)
			close(ch)
		}
		s.mu.Unlock()
	}
}
