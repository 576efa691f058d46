package web

import (
	"fmt"
	"net/http"
	"strings"
)

// Each endpoint parses its form into a dedicated struct enumerating
// exactly the fields it expects, so a renamed or missing field fails
// loudly here instead of silently reading as empty elsewhere.

type loginForm struct {
	Username string
}

func parseLoginForm(r *http.Request) (loginForm, error) {
	if err := r.ParseForm(); err != nil {
		return loginForm{}, fmt.Errorf("parse login form: %w", err)
	}
	return loginForm{
		Username: strings.TrimSpace(r.PostFormValue("username")),
	}, nil
}

type registerForm struct {
	Username      string
	LearningStyle string // empty when the optional field is omitted
}

func parseRegisterForm(r *http.Request) (registerForm, error) {
	if err := r.ParseForm(); err != nil {
		return registerForm{}, fmt.Errorf("parse register form: %w", err)
	}
	return registerForm{
		Username:      strings.TrimSpace(r.PostFormValue("username")),
		LearningStyle: r.PostFormValue("learning_style"),
	}, nil
}

type aptitudeForm struct {
	// Answers holds the selected option text for q0..q4; an unanswered
	// question is an empty string.
	Answers []string
}

func parseAptitudeForm(r *http.Request, questionCount int) (aptitudeForm, error) {
	if err := r.ParseForm(); err != nil {
		return aptitudeForm{}, fmt.Errorf("parse aptitude form: %w", err)
	}
	answers := make([]string, questionCount)
	for i := range answers {
		answers[i] = r.PostFormValue(fmt.Sprintf("q%d", i))
	}
	return aptitudeForm{Answers: answers}, nil
}

type chatForm struct {
	// ToggleMode is set when the protégé-mode button was pressed; the
	// query is ignored in that case.
	ToggleMode bool
	UserQuery  string
}

func parseChatForm(r *http.Request) (chatForm, error) {
	if err := r.ParseForm(); err != nil {
		return chatForm{}, fmt.Errorf("parse chat form: %w", err)
	}
	_, toggle := r.PostForm["toggle_mode"]
	return chatForm{
		ToggleMode: toggle,
		UserQuery:  strings.TrimSpace(r.PostFormValue("user_query")),
	}, nil
}
