// Package progress persists per-user tutoring progress as a single
// JSON document keyed by username.
package progress

import (
	"time"

	"github.com/abhisek/tutorly/internal/styles"
)

// Role identifies the author of a conversation turn.
type Role string

const (
	RoleHuman     Role = "Human"
	RoleAssistant Role = "Assistant"
)

// TimeLayout is the wall-clock format stored on each turn.
const TimeLayout = "15:04:05"

// Turn is a single conversation entry.
type Turn struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
	Time string `json:"time"`
}

// NewTurn stamps a turn with the current wall-clock time.
func NewTurn(role Role, text string, now time.Time) Turn {
	return Turn{Role: role, Text: text, Time: now.Format(TimeLayout)}
}

// Record is the durable state for one user.
type Record struct {
	LearningStyle   styles.Style `json:"learning_style"`
	Points          int          `json:"points"`
	History         []Turn       `json:"history"`
	StruggledTopics []string     `json:"struggled_topics"`
}

// HasStruggled reports whether the user has flagged topics, and if so
// returns the most recent one.
func (r Record) HasStruggled() (string, bool) {
	if len(r.StruggledTopics) == 0 {
		return "", false
	}
	return r.StruggledTopics[len(r.StruggledTopics)-1], true
}
