package tutor

import "github.com/abhisek/tutorly/internal/styles"

// fallbackResponses are canned answers for a small set of known topics,
// keyed by lower-cased query. These bypass the model entirely.
var fallbackResponses = map[string]map[styles.Style]string{
	"laws of motion": {
		styles.Practical: "Think about riding a bicycle. When you stop pedaling, you don't instantly stop - that's inertia, the first law. " +
			"Pedal harder, you speed up - that's force equals mass times acceleration, the second law. " +
			"Push the pedals, the bike pushes you forward - action-reaction, the third law.",
		styles.Theory: "Newton's first law: objects stay at rest or in motion unless acted upon. Second law: force equals mass times acceleration. " +
			"Third law: every action has an equal, opposite reaction.",
	},
}

// lookupFallback returns the canned answer for a lower-cased query, if
// one exists. A style without its own entry falls back to practical.
func lookupFallback(queryLower string, style styles.Style) (string, bool) {
	byStyle, ok := fallbackResponses[queryLower]
	if !ok {
		return "", false
	}
	if text, ok := byStyle[style]; ok {
		return text, true
	}
	return byStyle[styles.Practical], true
}
