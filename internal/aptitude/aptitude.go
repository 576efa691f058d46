// Package aptitude holds the learning-style quiz and its classifier.
package aptitude

import (
	"strings"

	"github.com/abhisek/tutorly/internal/styles"
)

// Question is a single two-option multiple-choice quiz question.
type Question struct {
	Prompt  string
	Options [2]string
}

// questions are the five fixed aptitude questions. The first option of
// each maps to the practical style, the second to theory.
var questions = []Question{
	{"When learning a new topic, do you prefer to:", [2]string{"See real-life examples", "Understand the underlying theory"}},
	{"In class, you enjoy:", [2]string{"Hands-on activities", "Listening to detailed explanations"}},
	{"When solving problems, you:", [2]string{"Apply concepts to practical situations", "Analyze the theory behind the problem"}},
	{"You remember best when:", [2]string{"You do it yourself", "You read or hear about it in detail"}},
	{"You prefer teachers who:", [2]string{"Give practical demonstrations", "Explain concepts thoroughly"}},
}

// Questions returns the fixed quiz questions.
func Questions() []Question {
	return questions
}

// practicalKeywords mark an answer as a practical-leaning choice.
var practicalKeywords = []string{
	"practical",
	"hands-on",
	"real-life",
	"do it",
	"demonstrations",
}

// Classify maps the five selected answers to a learning style by
// majority vote. An answer counts toward practical when it contains
// any practical keyword, case-insensitively; missing answers count as
// zero matches. The cutoff is exactly 3 of 5: three or more practical
// answers classify as practical, otherwise theory.
func Classify(answers []string) styles.Style {
	count := 0
	for _, a := range answers {
		if isPractical(a) {
			count++
		}
	}
	if count >= 3 {
		return styles.Practical
	}
	return styles.Theory
}

func isPractical(answer string) bool {
	lower := strings.ToLower(answer)
	for _, kw := range practicalKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
