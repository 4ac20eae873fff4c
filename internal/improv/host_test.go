package improv

import (
	"strings"
	"testing"
)

func testScenarios() []string {
	return []string{
		"You are a barista with a portal latte.",
		"You are a time-travelling tour guide.",
		"You are a waiter whose order escaped.",
		"You are returning a cursed object.",
		"You are an infomercial host.",
	}
}

func newTestHost() *Host {
	return NewHost(testScenarios(), 42)
}

func TestStartShowClampsRounds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		requested int
		want      int
	}{
		{"zero defaults", 0, DefaultRounds},
		{"negative clamps to min", -5, MinRounds},
		{"too large clamps to max", 100, MaxRounds},
		{"in range unchanged", 5, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			host := newTestHost()
			show := NewShow()
			host.StartShow(&show, "Alex", tt.requested)
			if show.MaxRounds != tt.want {
				t.Fatalf("MaxRounds = %d, want %d", show.MaxRounds, tt.want)
			}
		})
	}
}

func TestStartShowIntroducesFirstRound(t *testing.T) {
	t.Parallel()

	host := newTestHost()
	show := NewShow()
	out := host.StartShow(&show, "", 3)

	if show.Phase != PhaseAwaitingImprov {
		t.Fatalf("Phase = %q, want %q", show.Phase, PhaseAwaitingImprov)
	}
	if show.CurrentRound != 1 {
		t.Fatalf("CurrentRound = %d, want 1", show.CurrentRound)
	}
	if show.PlayerName != "Contestant" {
		t.Fatalf("PlayerName = %q, want default Contestant", show.PlayerName)
	}
	if !strings.Contains(out, "Round 1:") {
		t.Fatalf("intro missing first scenario: %q", out)
	}
	if !strings.Contains(out, show.CurrentScenario) {
		t.Fatalf("intro does not include the picked scenario")
	}
}

func TestShowRunsToDoneWithSingleSummary(t *testing.T) {
	t.Parallel()

	host := newTestHost()
	show := NewShow()
	host.StartShow(&show, "Alex", 2)

	host.RecordPerformance(&show, "I'm a barista, end scene")
	if show.Phase == PhaseDone {
		t.Fatal("show done after first of two rounds")
	}

	host.NextScenario(&show)
	out := host.RecordPerformance(&show, "That was so funny haha")

	if show.Phase != PhaseDone {
		t.Fatalf("Phase = %q after final round, want %q", show.Phase, PhaseDone)
	}
	if got := strings.Count(out, "Thanks for playing, Alex!"); got != 1 {
		t.Fatalf("summary produced %d times, want exactly once\noutput: %q", got, out)
	}
	if len(show.Rounds) != 2 {
		t.Fatalf("recorded %d rounds, want 2", len(show.Rounds))
	}
}

func TestNextScenarioAfterDone(t *testing.T) {
	t.Parallel()

	host := newTestHost()
	show := NewShow()
	host.StartShow(&show, "Alex", 1)
	host.RecordPerformance(&show, "end scene")

	out := host.NextScenario(&show)
	if !strings.Contains(out, "already over") {
		t.Fatalf("expected already-over message, got %q", out)
	}
	if show.Phase != PhaseDone {
		t.Fatalf("Phase = %q, want %q", show.Phase, PhaseDone)
	}
}

func TestNextScenarioAdvancesRound(t *testing.T) {
	t.Parallel()

	host := newTestHost()
	show := NewShow()
	host.StartShow(&show, "Alex", 3)
	host.RecordPerformance(&show, "scene one")

	out := host.NextScenario(&show)
	if show.CurrentRound != 2 {
		t.Fatalf("CurrentRound = %d, want 2", show.CurrentRound)
	}
	if show.Phase != PhaseAwaitingImprov {
		t.Fatalf("Phase = %q, want %q", show.Phase, PhaseAwaitingImprov)
	}
	if !strings.Contains(out, "Round 2:") {
		t.Fatalf("unexpected next-scenario output: %q", out)
	}
}

func TestScenarioPickerAvoidsRepeats(t *testing.T) {
	t.Parallel()

	host := newTestHost()
	show := NewShow()
	host.StartShow(&show, "Alex", 5)

	seen := map[string]bool{show.CurrentScenario: true}
	for round := 2; round <= 5; round++ {
		host.RecordPerformance(&show, "end scene")
		if round < 5 || show.Phase != PhaseDone {
			host.NextScenario(&show)
		}
		if show.Phase == PhaseDone {
			break
		}
		if seen[show.CurrentScenario] {
			t.Fatalf("scenario repeated before pool exhausted: %q", show.CurrentScenario)
		}
		seen[show.CurrentScenario] = true
	}
}

func TestSummarizeShowWithoutRounds(t *testing.T) {
	t.Parallel()

	host := newTestHost()
	show := NewShow()
	out := host.SummarizeShow(&show)
	if !strings.Contains(out, "No rounds were played") {
		t.Fatalf("expected no-rounds message, got %q", out)
	}
}

func TestSummarySnipsLongPerformances(t *testing.T) {
	t.Parallel()

	host := newTestHost()
	show := NewShow()
	host.StartShow(&show, "Alex", 1)

	long := strings.Repeat("improvise ", 12) // 120 chars
	out := host.RecordPerformance(&show, long)

	want := strings.TrimSpace(long)[:77] + "..."
	if !strings.Contains(out, want) {
		t.Fatalf("summary does not snip long performance to 80 chars:\n%q", out)
	}
}

func TestStopShowRequiresConfirmation(t *testing.T) {
	t.Parallel()

	host := newTestHost()
	show := NewShow()
	host.StartShow(&show, "Alex", 3)

	out := host.StopShow(&show, false)
	if !strings.Contains(out, "Are you sure") {
		t.Fatalf("expected confirmation prompt, got %q", out)
	}
	if show.Phase == PhaseDone {
		t.Fatal("unconfirmed stop must not end the show")
	}

	out = host.StopShow(&show, true)
	if !strings.Contains(out, "Show stopped") {
		t.Fatalf("expected stop message, got %q", out)
	}
	if show.Phase != PhaseDone {
		t.Fatalf("Phase = %q after confirmed stop, want %q", show.Phase, PhaseDone)
	}
}

func TestLoadScenarios(t *testing.T) {
	t.Parallel()

	scenarios, err := LoadScenarios()
	if err != nil {
		t.Fatalf("LoadScenarios failed: %v", err)
	}
	if len(scenarios) < 5 {
		t.Fatalf("expected a healthy scenario pool, got %d entries", len(scenarios))
	}
	for i, s := range scenarios {
		if strings.TrimSpace(s) == "" {
			t.Fatalf("scenario %d is empty", i)
		}
	}
}
