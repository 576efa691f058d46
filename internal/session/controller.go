package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"strings"

	"github.com/abhisek/tutorly/internal/aptitude"
	"github.com/abhisek/tutorly/internal/format"
	"github.com/abhisek/tutorly/internal/progress"
	"github.com/abhisek/tutorly/internal/styles"
	"github.com/abhisek/tutorly/internal/tutor"
)

var (
	// ErrEmptyUsername is returned when login or registration is
	// attempted without a username.
	ErrEmptyUsername = errors.New("username is empty")

	// ErrDuplicateUser is returned when registering a username that
	// already has a record.
	ErrDuplicateUser = errors.New("username already exists")

	// ErrEmptyQuery is returned for a chat turn with no query text.
	ErrEmptyQuery = errors.New("query is empty")
)

// protegePrompts are the fixed protégé-mode openers. One is chosen at
// random per turn.
var protegePrompts = []string{
	"I am your junior student, can you please teach me this topic?",
	"I am confused, can you explain this to me like I am five?",
	"Imagine I am a new student, how would you help me understand this?",
}

// Controller implements the tutoring state machine over a progress
// store and a responder. It owns no global state; every call operates
// on an explicit session.
type Controller struct {
	store     progress.Store
	responder *tutor.Responder
	logger    *slog.Logger

	// pick selects a protégé prompt index. Swappable for tests.
	pick func(n int) int
}

// NewController wires a controller.
func NewController(store progress.Store, responder *tutor.Responder, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		store:     store,
		responder: responder,
		logger:    logger,
		pick:      rand.IntN,
	}
}

// Register creates a record for a new username and returns a fresh
// session for it. The learning style defaults to practical when the
// registration form omits it.
func (c *Controller) Register(username string, style styles.Style) (*Session, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrEmptyUsername
	}

	if _, exists, err := c.store.Get(username); err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	} else if exists {
		return nil, ErrDuplicateUser
	}

	rec := progress.Record{LearningStyle: style}
	if err := c.store.Put(username, rec); err != nil {
		return nil, fmt.Errorf("create user record: %w", err)
	}

	c.logger.Info("user registered", "username", username, "style", style)
	return NewSession(username, rec), nil
}

// Login loads (or defaults) the record for a username and returns a
// session over it. A session with an unset style still needs the
// aptitude quiz; callers route accordingly.
func (c *Controller) Login(username string) (*Session, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, ErrEmptyUsername
	}

	rec, _, err := c.store.Get(username)
	if err != nil {
		return nil, fmt.Errorf("load user record: %w", err)
	}

	c.logger.Info("user logged in", "username", username, "style", rec.LearningStyle)
	return NewSession(username, rec), nil
}

// CompleteAptitude classifies the quiz answers, stores the style on
// the session, and persists the whole record. Re-running the quiz for
// an already-styled session just overwrites the style; history, points
// and struggled topics carry over untouched.
func (c *Controller) CompleteAptitude(s *Session, answers []string) (styles.Style, error) {
	style := aptitude.Classify(answers)
	s.Style = style

	if err := c.store.Put(s.Username, s.Record()); err != nil {
		return style, fmt.Errorf("persist classification: %w", err)
	}

	c.logger.Info("learner classified", "username", s.Username, "style", style)
	return style, nil
}

// ToggleProtege flips protégé mode and returns the new value. No other
// state changes and no chat turn is consumed.
func (c *Controller) ToggleProtege(s *Session) bool {
	s.ProtegeMode = !s.ProtegeMode
	return s.ProtegeMode
}

// TurnOutcome describes one completed chat turn for rendering.
type TurnOutcome struct {
	// Response is the text to show the user.
	Response string

	// RepeatedTopic is set when the query repeated an earlier question
	// and was newly flagged as a struggled topic.
	RepeatedTopic bool

	// PointAwarded is set for protégé-mode turns; Points is the new total.
	PointAwarded bool
	Points       int

	// Failed is set when the model call failed and Response is the
	// fixed failure message.
	Failed bool
}

// SubmitQuery runs one chat turn: struggled-topic tracking, then the
// protégé branch or the responder+formatter branch, then a write-back
// of the full session record.
func (c *Controller) SubmitQuery(ctx context.Context, s *Session, query string) (TurnOutcome, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return TurnOutcome{}, ErrEmptyQuery
	}

	var out TurnOutcome

	if c.isRepeated(s, query) && c.addStruggledTopic(s, query) {
		out.RepeatedTopic = true
	}

	if s.ProtegeMode {
		prompt := protegePrompts[c.pick(len(protegePrompts))]
		out.Response = fmt.Sprintf("%s Please explain: %s", prompt, query)
		s.Points++
		out.PointAwarded = true
		out.Points = s.Points
	} else {
		res, err := c.responder.Respond(ctx, query, s.Username, s.Style, &s.History)
		if err != nil {
			c.logger.Warn("tutor response failed", "username", s.Username, "query", query, "error", err)
			out.Response = tutor.FailureMessage
			out.Failed = true
			c.addStruggledTopic(s, query)
		} else {
			out.Response = format.Adapt(res.Text, s.Style)
		}
	}

	s.LastResponse = out.Response

	if err := c.store.Put(s.Username, s.Record()); err != nil {
		return out, fmt.Errorf("persist chat turn: %w", err)
	}
	return out, nil
}

// isRepeated reports whether the query matches any earlier Human turn,
// case-insensitively.
func (c *Controller) isRepeated(s *Session, query string) bool {
	for _, turn := range s.History {
		if turn.Role == progress.RoleHuman && strings.EqualFold(turn.Text, query) {
			return true
		}
	}
	return false
}

// addStruggledTopic appends the query to the struggled set if absent.
// Returns true when the topic was newly added.
func (c *Controller) addStruggledTopic(s *Session, query string) bool {
	for _, topic := range s.StruggledTopics {
		if topic == query {
			return false
		}
	}
	s.StruggledTopics = append(s.StruggledTopics, query)
	return true
}
