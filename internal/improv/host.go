package improv

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"
)

// Host drives Improv Battle shows. One Host serves many sessions; all
// per-session state lives in Show. Randomness is injected through a seed so
// tests can pin tone and highlight choices.
type Host struct {
	scenarios []string

	mu  sync.Mutex // rng is shared across sessions
	rng *rand.Rand
}

// NewHost creates a host over the given scenario list. A zero seed picks an
// arbitrary one; any other value makes the host fully deterministic.
func NewHost(scenarios []string, seed uint64) *Host {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Host{
		scenarios: scenarios,
		rng:       rand.New(rand.NewPCG(seed, seed)),
	}
}

func (h *Host) intN(n int) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.rng.IntN(n)
}

func (h *Host) pickOne(options []string) string {
	return options[h.intN(len(options))]
}

// StartShow resets the show state and returns the intro followed by the
// first scenario. The round count is clamped to [MinRounds, MaxRounds];
// zero means DefaultRounds. An empty name defaults to "Contestant".
func (h *Host) StartShow(s *Show, name string, maxRounds int) string {
	if name = strings.TrimSpace(name); name != "" {
		s.PlayerName = name
	}
	if s.PlayerName == "" {
		s.PlayerName = "Contestant"
	}
	if maxRounds == 0 {
		maxRounds = DefaultRounds
	}
	s.MaxRounds = ClampRounds(maxRounds)
	s.CurrentRound = 0
	s.Rounds = nil
	s.usedScenarios = nil
	s.Phase = PhaseIntro

	intro := fmt.Sprintf(
		"Welcome to Improv Battle! I'm your host — let's get ready to play. %s, we'll run %d rounds. "+
			"Rules: I'll give you a quick scene, you'll improvise in character. When you're done say "+
			"'End scene' or pause — I'll react and move on. Have fun!",
		s.PlayerName, s.MaxRounds)

	// Hand out the first scenario right away so the flow never stalls
	// between the intro and round one.
	scenario := h.pickScenario(s)
	s.CurrentRound = 1
	s.CurrentScenario = scenario
	s.Phase = PhaseAwaitingImprov

	return intro + "\nRound 1: " + scenario + "\nStart improvising now!"
}

// NextScenario advances to the next round, or produces the summary when the
// configured rounds are exhausted.
func (h *Host) NextScenario(s *Show) string {
	if s.Phase == PhaseDone {
		return "The show is already over. Say 'start show' to play again."
	}
	if s.CurrentRound >= s.MaxRounds {
		s.Phase = PhaseDone
		return h.SummarizeShow(s)
	}

	s.CurrentRound++
	scenario := h.pickScenario(s)
	s.CurrentScenario = scenario
	s.Phase = PhaseAwaitingImprov
	return fmt.Sprintf("Round %d: %s\nGo!", s.CurrentRound, scenario)
}

// RecordPerformance stores the player's improvisation together with a
// heuristic host reaction. On the final round the show transitions to done
// and the closing summary is appended to the reaction.
func (h *Host) RecordPerformance(s *Show, performance string) string {
	scenario := s.CurrentScenario
	if scenario == "" {
		scenario = "(unknown)"
	}

	reaction := h.reactionTo(performance)
	s.Rounds = append(s.Rounds, Round{
		Number:      s.CurrentRound,
		Scenario:    scenario,
		Performance: performance,
		Reaction:    reaction,
	})
	s.Phase = PhaseReacting

	if s.CurrentRound >= s.MaxRounds {
		s.Phase = PhaseDone
		return "\n" + reaction + "\nThat's the final round. " + h.SummarizeShow(s)
	}

	return reaction + "\nWhen you're ready, say 'Next' or I'll give you the next scene."
}

// SummarizeShow aggregates the stored rounds into a spoken recap plus a
// lightweight style profile of the player.
func (h *Host) SummarizeShow(s *Show) string {
	if len(s.Rounds) == 0 {
		return "No rounds were played. Thanks for stopping by Improv Battle!"
	}

	name := s.PlayerName
	if name == "" {
		name = "Contestant"
	}

	lines := []string{fmt.Sprintf("Thanks for playing, %s! Here's a short recap:", name)}
	for _, r := range s.Rounds {
		snip := strings.TrimSpace(r.Performance)
		if len(snip) > 80 {
			snip = snip[:77] + "..."
		}
		lines = append(lines, fmt.Sprintf("Round %d: %s — You: '%s' | Host: %s",
			r.Number, r.Scenario, snip, r.Reaction))
	}
	lines = append(lines, styleProfile(s.Rounds))
	lines = append(lines, "Thanks for performing on Improv Battle — hope to see you again!")
	return strings.Join(lines, "\n")
}

// StopShow force-terminates the show. Without confirmation it only asks and
// leaves the state untouched.
func (h *Host) StopShow(s *Show, confirmed bool) string {
	if !confirmed {
		return "Are you sure you want to stop the show? Say 'stop show yes' to confirm."
	}
	s.Phase = PhaseDone
	return "Show stopped. Thanks for coming to Improv Battle!"
}

// pickScenario selects an unused scenario at random, resetting the pool once
// every scenario has been played.
func (h *Host) pickScenario(s *Show) string {
	used := make(map[int]bool, len(s.usedScenarios))
	for _, i := range s.usedScenarios {
		used[i] = true
	}

	candidates := make([]int, 0, len(h.scenarios))
	for i := range h.scenarios {
		if !used[i] {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		s.usedScenarios = nil
		for i := range h.scenarios {
			candidates = append(candidates, i)
		}
	}

	idx := candidates[h.intN(len(candidates))]
	s.usedScenarios = append(s.usedScenarios, idx)
	return h.scenarios[idx]
}
