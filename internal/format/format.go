// Package format rewrites raw model output into the structured,
// style-tagged paragraph shown to the learner.
package format

import (
	"fmt"
	"strings"

	"github.com/abhisek/tutorly/internal/styles"
)

const suffix = "... Anything else you'd like to know?"

// prefixes are the style-specific openers. Unknown styles get the
// practical opener.
var prefixes = map[styles.Style]string{
	styles.Practical: "Let me give you a practical explanation.",
	styles.Theory:    "Let me explain the theory behind this.",
}

// Adapt strips markup from raw, renumbers bullets, collapses the text
// into one paragraph, and wraps it with the style's opener and the
// fixed closing question. Empty input yields just the opener and the
// closer.
func Adapt(raw string, style styles.Style) string {
	prefix, ok := prefixes[style]
	if !ok {
		prefix = prefixes[styles.Practical]
	}

	parts := []string{prefix}
	if cleaned := cleanText(raw); cleaned != "" {
		parts = append(parts, cleaned)
	}
	parts = append(parts, suffix)

	return strings.Join(parts, " ")
}

// cleanText removes emphasis markers, converts bullet lines into
// numbered "Point N" sentences, and joins everything with spaces.
// The point counter runs across the whole input; non-bullet lines
// pass through trimmed and do not reset it.
func cleanText(raw string) string {
	cleaned := strings.Map(func(r rune) rune {
		if r == '*' || r == '_' {
			return -1
		}
		return r
	}, raw)

	counter := 1
	var out []string
	for line := range strings.SplitSeq(cleaned, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "-") || strings.HasPrefix(line, "*") {
			content := strings.TrimSpace(strings.TrimLeft(line, "-* "))
			if content != "" {
				out = append(out, fmt.Sprintf("Point %d: %s", counter, content))
				counter++
			}
		} else if line != "" {
			out = append(out, line)
		}
	}

	return strings.Join(out, " ")
}
