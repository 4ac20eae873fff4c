// Package improv implements the Improv Battle show host: a round-based
// state machine advanced by tool calls, with canned reaction and summary
// heuristics.
package improv

// Phase is the current stage of the show state machine.
type Phase string

const (
	// PhaseIdle means no show has started yet.
	PhaseIdle Phase = "idle"
	// PhaseIntro means the host is introducing the show.
	PhaseIntro Phase = "intro"
	// PhaseAwaitingImprov means a scenario is out and the host is waiting
	// for the player to perform.
	PhaseAwaitingImprov Phase = "awaiting_improv"
	// PhaseReacting means the host just reacted to a performance.
	PhaseReacting Phase = "reacting"
	// PhaseDone means the show has finished or was stopped.
	PhaseDone Phase = "done"
)

const (
	// MinRounds and MaxRounds bound the configurable round count.
	MinRounds = 1
	MaxRounds = 8
	// DefaultRounds is used when the caller does not ask for a count.
	DefaultRounds = 3
)

// Round captures one played round.
type Round struct {
	Number      int    `json:"round"`
	Scenario    string `json:"scenario"`
	Performance string `json:"performance"`
	Reaction    string `json:"reaction"`
}

// Show holds the mutable per-session state of one improv show. It is owned
// by a single conversation session and mutated only by Host operations.
type Show struct {
	PlayerName      string
	CurrentRound    int
	MaxRounds       int
	Phase           Phase
	Rounds          []Round
	CurrentScenario string

	usedScenarios []int
}

// NewShow returns a show in its idle state.
func NewShow() Show {
	return Show{MaxRounds: DefaultRounds, Phase: PhaseIdle}
}

// ClampRounds bounds a requested round count to [MinRounds, MaxRounds].
func ClampRounds(n int) int {
	if n < MinRounds {
		return MinRounds
	}
	if n > MaxRounds {
		return MaxRounds
	}
	return n
}
