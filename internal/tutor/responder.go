// Package tutor answers study questions, either from a small canned
// topic table or by querying the configured LLM provider.
package tutor

import (
	"context"
	"strings"
	"time"

	"github.com/abhisek/tutorly/internal/llm"
	"github.com/abhisek/tutorly/internal/progress"
	"github.com/abhisek/tutorly/internal/styles"
)

// FailureMessage is the fixed friendly text shown to the user when the
// model call fails for any reason.
const FailureMessage = "Sorry, I couldn't process that. Check your API key or internet connection."

// Source tags where an answer came from.
type Source int

const (
	// SourceFallback means the answer came from the canned topic table.
	SourceFallback Source = iota

	// SourceModel means the answer came from the LLM provider.
	SourceModel
)

// Result is a successful tutoring answer. Failures are reported as an
// error, never encoded in the text, so callers don't have to sniff
// response strings to detect them.
type Result struct {
	Text   string
	Source Source
}

const maxResponseTokens = 1024

// Responder produces tutoring answers.
type Responder struct {
	provider llm.Provider
	now      func() time.Time
}

// NewResponder creates a Responder backed by the given provider.
func NewResponder(provider llm.Provider) *Responder {
	return &Responder{provider: provider, now: time.Now}
}

// Respond answers a query for the named user. On success it appends a
// Human and an Assistant turn to history, timestamped at call time, and
// returns the answer. On a model fault it returns an error and leaves
// history untouched; the caller surfaces FailureMessage and records the
// struggled topic.
func (r *Responder) Respond(ctx context.Context, query, userName string, style styles.Style, history *[]progress.Turn) (Result, error) {
	if text, ok := lookupFallback(strings.ToLower(query), style); ok {
		r.appendExchange(history, query, text)
		return Result{Text: text, Source: SourceFallback}, nil
	}

	ctx = llm.WithPurpose(ctx, "tutor-response")
	resp, err := r.provider.Generate(ctx, llm.Request{
		System: buildSystemPrompt(style),
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(query, userName, style, *history)},
		},
		MaxTokens:   maxResponseTokens,
		Temperature: 0.7,
	})
	if err != nil {
		return Result{}, err
	}

	text := strings.TrimSpace(resp.Text)
	r.appendExchange(history, query, text)
	return Result{Text: text, Source: SourceModel}, nil
}

func (r *Responder) appendExchange(history *[]progress.Turn, query, answer string) {
	now := r.now()
	*history = append(*history,
		progress.NewTurn(progress.RoleHuman, query, now),
		progress.NewTurn(progress.RoleAssistant, answer, now),
	)
}
