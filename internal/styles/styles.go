// Package styles defines the two learning styles that drive prompt
// phrasing and response formatting.
package styles

// Style is a learner's classified learning style.
type Style string

const (
	// Practical learners want real-life examples and scenarios.
	Practical Style = "practical"

	// Theory learners want foundational principles and academic context.
	Theory Style = "theory"

	// Unset means the learner has not taken the aptitude quiz yet.
	Unset Style = ""
)

// guidance is the per-style instruction embedded in tutoring prompts.
var guidance = map[Style]string{
	Practical: "Explain concepts with real-life examples and practical scenarios that the student can relate to.",
	Theory:    "Provide detailed theoretical explanations with foundational principles and academic context.",
}

// Guidance returns the prompt instruction for the style.
// Unknown or unset styles fall back to the practical guidance.
func (s Style) Guidance() string {
	if g, ok := guidance[s]; ok {
		return g
	}
	return guidance[Practical]
}

// IsSet reports whether the learner has been classified.
func (s Style) IsSet() bool {
	return s == Practical || s == Theory
}

// Parse maps a raw string to a Style. Anything other than "theory"
// resolves to Practical, matching the registration default.
func Parse(raw string) Style {
	if raw == string(Theory) {
		return Theory
	}
	return Practical
}
