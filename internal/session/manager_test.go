package session

import (
	"testing"
	"time"

	"github.com/ashureev/voicebooth/internal/domain"
)

func TestGetOrCreateReturnsSameSession(t *testing.T) {
	t.Parallel()

	m := NewManager(nil)
	a := m.GetOrCreate("user-1", "tab-1")
	b := m.GetOrCreate("user-1", "tab-1")
	if a != b {
		t.Fatal("same user/session pair must return the same session")
	}
	if m.Count() != 1 {
		t.Fatalf("Count = %d, want 1", m.Count())
	}

	other := m.GetOrCreate("user-1", "tab-2")
	if other == a {
		t.Fatal("different session id must create a new session")
	}
	if m.Count() != 2 {
		t.Fatalf("Count = %d, want 2", m.Count())
	}
}

func TestDropDiscardsState(t *testing.T) {
	t.Parallel()

	m := NewManager(nil)
	sess := m.GetOrCreate("user-1", "tab-1")
	sess.Cart.Add("mug-001", 2)

	m.Drop("user-1", "tab-1")
	if got := m.Get("user-1", "tab-1"); got != nil {
		t.Fatal("dropped session still retrievable")
	}

	fresh := m.GetOrCreate("user-1", "tab-1")
	if !fresh.Cart.IsEmpty() {
		t.Fatal("recreated session inherited old cart state")
	}
}

func TestRecordEventFansOutToSubscribers(t *testing.T) {
	t.Parallel()

	m := NewManager(nil)
	sess := m.GetOrCreate("user-1", "tab-1")

	ch, unsubscribe := sess.Subscribe(4)
	defer unsubscribe()

	sess.RecordEvent("start_show", 1, "Alex")

	select {
	case event := <-ch:
		if event.Action != "start_show" || event.Round != 1 {
			t.Fatalf("unexpected event: %+v", event)
		}
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
	}

	events := sess.Events()
	if len(events) != 1 || events[0].Action != "start_show" {
		t.Fatalf("event log = %+v, want one start_show entry", events)
	}
}

type captureSink struct {
	events []domain.Event
}

func (c *captureSink) Record(userID, sessionID string, event domain.Event) {
	c.events = append(c.events, event)
}

func TestRecordEventForwardsToSink(t *testing.T) {
	t.Parallel()

	sink := &captureSink{}
	m := NewManager(sink)
	sess := m.GetOrCreate("user-1", "tab-1")

	sess.RecordEvent("place_order", 0, "ab12cd34")
	if len(sink.events) != 1 || sink.events[0].Action != "place_order" {
		t.Fatalf("sink events = %+v, want one place_order entry", sink.events)
	}
}
