package improv

import (
	"strings"
	"testing"
)

func TestReactionKeywordHighlights(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		performance string
		want        string
	}{
		{"comedy", "and then we laughed, haha, so funny", "great comedic timing"},
		{"emotion", "the barista started to cry", "good emotional depth"},
		{"silence", "I just stared... and waited", "interesting use of silence"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			host := newTestHost()
			got := host.reactionTo(tt.performance)
			if !strings.Contains(got, tt.want) {
				t.Fatalf("reaction %q missing highlight %q", got, tt.want)
			}
		})
	}
}

func TestReactionFallbackHighlight(t *testing.T) {
	t.Parallel()

	host := newTestHost()
	got := host.reactionTo("a perfectly ordinary performance")

	found := false
	for _, h := range fallbackHighlights {
		if strings.Contains(got, h) {
			found = true
			break
		}
	}
	if !found {
		t.Fatalf("reaction %q uses no fallback highlight", got)
	}
}

func TestReactionIsDeterministicForSeed(t *testing.T) {
	t.Parallel()

	a := NewHost(testScenarios(), 7).reactionTo("end scene")
	b := NewHost(testScenarios(), 7).reactionTo("end scene")
	if a != b {
		t.Fatalf("same seed produced different reactions:\n%q\n%q", a, b)
	}
}

func TestStyleProfile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		rounds []Round
		want   string
	}{
		{
			name: "character commitment",
			rounds: []Round{
				{Performance: "I'm the king of this castle"},
				{Performance: "as a ghost I float in"},
			},
			want: "commits to character choices",
		},
		{
			name: "emotional color",
			rounds: []Round{
				{Performance: "everyone was happy that day"},
				{Performance: "end scene"},
				{Performance: "end scene"},
			},
			want: "brings emotional color to scenes",
		},
		{
			name: "twists by default",
			rounds: []Round{
				{Performance: "end scene"},
			},
			want: "likes surprising beats and twists",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := styleProfile(tt.rounds)
			if !strings.Contains(got, tt.want) {
				t.Fatalf("profile %q missing %q", got, tt.want)
			}
		})
	}
}
