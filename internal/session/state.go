// Package session holds per-login working state and the controller
// that drives the tutoring state machine.
package session

import (
	"sync"

	"github.com/google/uuid"

	"github.com/abhisek/tutorly/internal/progress"
	"github.com/abhisek/tutorly/internal/styles"
)

// Session is the working copy of one logged-in user's state. The
// progress store holds the durable copy; the controller writes the
// session back to the store after every mutating turn.
type Session struct {
	Username        string
	Style           styles.Style
	History         []progress.Turn
	Points          int
	StruggledTopics []string
	ProtegeMode     bool

	// LastResponse is the most recent AI response, redisplayed on the
	// chat page. Ephemeral, never persisted.
	LastResponse string

	// flashes are pending one-shot notices for the next page render.
	flashes []Flash
}

// NewSession builds a session from a stored record.
func NewSession(username string, rec progress.Record) *Session {
	return &Session{
		Username:        username,
		Style:           rec.LearningStyle,
		History:         rec.History,
		Points:          rec.Points,
		StruggledTopics: rec.StruggledTopics,
	}
}

// Record snapshots the session's durable fields for persistence.
func (s *Session) Record() progress.Record {
	return progress.Record{
		LearningStyle:   s.Style,
		Points:          s.Points,
		History:         s.History,
		StruggledTopics: s.StruggledTopics,
	}
}

// Manager tracks live sessions by opaque token. Sessions live in
// memory only; a restart logs everyone out but loses no durable state.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

// NewManager creates an empty session manager.
func NewManager() *Manager {
	return &Manager{sessions: make(map[string]*Session)}
}

// Create registers a new session and returns its token.
func (m *Manager) Create(s *Session) string {
	token := uuid.NewString()

	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[token] = s
	return token
}

// Get returns the session for a token, or nil if none exists.
func (m *Manager) Get(token string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessions[token]
}

// Delete removes the session for a token. Deleting an unknown token
// is a no-op.
func (m *Manager) Delete(token string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, token)
}
