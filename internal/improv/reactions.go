package improv

import (
	"fmt"
	"strings"
)

var (
	comedyWords    = []string{"funny", "lol", "hahaha", "haha"}
	sadnessWords   = []string{"sad", "cry", "tears"}
	pauseMarkers   = []string{"pause", "..."}
	characterWords = []string{"i am", "i'm", "as a", "character", "role"}
	emotionWords   = []string{"sad", "angry", "happy", "love", "cry", "tears"}

	fallbackHighlights = []string{"nice character choices", "bold commitment", "unexpected twist"}
	reactionTones      = []string{"supportive", "neutral", "mildly_critical"}
)

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

// reactionTo produces a varied host reaction to a performance. Tone is
// random; the highlight comes from quick keyword detection with a random
// fallback when nothing matches.
func (h *Host) reactionTo(performance string) string {
	lower := strings.ToLower(performance)

	var highlights []string
	if containsAny(lower, comedyWords) {
		highlights = append(highlights, "great comedic timing")
	}
	if containsAny(lower, sadnessWords) {
		highlights = append(highlights, "good emotional depth")
	}
	if containsAny(lower, pauseMarkers) {
		highlights = append(highlights, "interesting use of silence")
	}
	if len(highlights) == 0 {
		highlights = append(highlights, h.pickOne(fallbackHighlights))
	}

	chosen := highlights[h.intN(len(highlights))]

	switch h.pickOne(reactionTones) {
	case "supportive":
		return fmt.Sprintf("Love that — %s! That was playful and clear. Nice work. Ready for the next one?", chosen)
	case "neutral":
		return fmt.Sprintf("Hmm — %s. That landed in parts; you had interesting ideas. Let's try the next scene and lean into one choice.", chosen)
	default:
		return fmt.Sprintf("Okay — %s, but that felt a bit rushed. Try to make stronger choices next time. Don't be afraid to exaggerate.", chosen)
	}
}

// styleProfile summarizes the player's style from keyword counts across the
// recorded performances.
func styleProfile(rounds []Round) string {
	character, emotion := 0, 0
	for _, r := range rounds {
		lower := strings.ToLower(r.Performance)
		if containsAny(lower, characterWords) {
			character++
		}
		if containsAny(lower, emotionWords) {
			emotion++
		}
	}

	profile := "You seem to be a player who "
	switch {
	case float64(character) > float64(len(rounds))/2:
		profile += "commits to character choices"
	case emotion > 0:
		profile += "brings emotional color to scenes"
	default:
		profile += "likes surprising beats and twists"
	}
	return profile + ". Keep leaning into clear choices and stronger stakes."
}
