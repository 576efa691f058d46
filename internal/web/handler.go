package web

import (
	"errors"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/abhisek/tutorly/internal/aptitude"
	"github.com/abhisek/tutorly/internal/progress"
	"github.com/abhisek/tutorly/internal/session"
	"github.com/abhisek/tutorly/internal/styles"
)

const sessionCookie = "tutorly_session"

// Handler serves the HTML endpoints.
type Handler struct {
	ctrl     *session.Controller
	sessions *session.Manager
	tmpl     *template.Template
	logger   *slog.Logger
}

// NewHandler creates a Handler over the controller and session manager.
func NewHandler(ctrl *session.Controller, sessions *session.Manager, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		ctrl:     ctrl,
		sessions: sessions,
		tmpl:     parseTemplates(),
		logger:   logger,
	}
}

// RegisterRoutes mounts all endpoints on the router.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.loginPage)
	r.Post("/", h.login)
	r.Get("/register", h.registerPage)
	r.Post("/register", h.register)
	r.Get("/aptitude", h.withSession(h.aptitudePage))
	r.Post("/aptitude", h.withSession(h.aptitudeSubmit))
	r.Get("/chat", h.withSession(h.chatPage))
	r.Post("/chat", h.withSession(h.chatSubmit))
	r.Get("/logout", h.logout)
}

// baseView carries the fields every page template needs.
type baseView struct {
	Title   string
	Flashes []session.Flash
}

type aptitudeView struct {
	baseView
	Questions []aptitude.Question
}

type chatView struct {
	baseView
	Username     string
	Style        styles.Style
	Points       int
	ProtegeMode  bool
	LastResponse string
	History      []progress.Turn
}

// withSession resolves the session cookie and redirects anonymous
// requests to the login page.
func (h *Handler) withSession(next func(http.ResponseWriter, *http.Request, *session.Session)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s := h.currentSession(r)
		if s == nil {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		next(w, r, s)
	}
}

func (h *Handler) currentSession(r *http.Request) *session.Session {
	cookie, err := r.Cookie(sessionCookie)
	if err != nil {
		return nil
	}
	return h.sessions.Get(cookie.Value)
}

func (h *Handler) loginPage(w http.ResponseWriter, r *http.Request) {
	if h.currentSession(r) != nil {
		http.Redirect(w, r, "/chat", http.StatusSeeOther)
		return
	}
	h.render(w, "login.html", baseView{Title: "Login"})
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	form, err := parseLoginForm(r)
	if err != nil {
		http.Error(w, "Invalid form submission.", http.StatusBadRequest)
		return
	}

	s, err := h.ctrl.Login(form.Username)
	if errors.Is(err, session.ErrEmptyUsername) {
		h.render(w, "login.html", baseView{
			Title:   "Login",
			Flashes: []session.Flash{{Level: session.FlashDanger, Message: "Please enter a username."}},
		})
		return
	}
	if err != nil {
		h.serverError(w, "login", err)
		return
	}

	if topic, ok := s.Record().HasStruggled(); ok {
		s.AddFlash(session.FlashWarning, fmt.Sprintf("Welcome back, you previously struggled with '%s'. Shall we review it?", topic))
	}

	h.startSession(w, s)
	if !s.Style.IsSet() {
		http.Redirect(w, r, "/aptitude", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/chat", http.StatusSeeOther)
}

func (h *Handler) registerPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, "register.html", baseView{Title: "Register"})
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	form, err := parseRegisterForm(r)
	if err != nil {
		http.Error(w, "Invalid form submission.", http.StatusBadRequest)
		return
	}

	s, err := h.ctrl.Register(form.Username, styles.Parse(form.LearningStyle))
	switch {
	case errors.Is(err, session.ErrEmptyUsername):
		h.render(w, "register.html", baseView{
			Title:   "Register",
			Flashes: []session.Flash{{Level: session.FlashDanger, Message: "Please enter a username."}},
		})
		return
	case errors.Is(err, session.ErrDuplicateUser):
		h.render(w, "register.html", baseView{
			Title:   "Register",
			Flashes: []session.Flash{{Level: session.FlashDanger, Message: "Username already exists. Please choose another one."}},
		})
		return
	case err != nil:
		h.serverError(w, "register", err)
		return
	}

	s.AddFlash(session.FlashSuccess, "Registration successful! Welcome to Tutorly!")
	h.startSession(w, s)
	http.Redirect(w, r, "/chat", http.StatusSeeOther)
}

func (h *Handler) aptitudePage(w http.ResponseWriter, r *http.Request, s *session.Session) {
	h.render(w, "aptitude.html", aptitudeView{
		baseView:  baseView{Title: "Aptitude Quiz", Flashes: s.PopFlashes()},
		Questions: aptitude.Questions(),
	})
}

func (h *Handler) aptitudeSubmit(w http.ResponseWriter, r *http.Request, s *session.Session) {
	form, err := parseAptitudeForm(r, len(aptitude.Questions()))
	if err != nil {
		http.Error(w, "Invalid form submission.", http.StatusBadRequest)
		return
	}

	style, err := h.ctrl.CompleteAptitude(s, form.Answers)
	if err != nil {
		h.serverError(w, "aptitude", err)
		return
	}

	s.AddFlash(session.FlashSuccess, fmt.Sprintf("You are classified as a %s learner!", style))
	http.Redirect(w, r, "/chat", http.StatusSeeOther)
}

func (h *Handler) chatPage(w http.ResponseWriter, r *http.Request, s *session.Session) {
	if !s.Style.IsSet() {
		http.Redirect(w, r, "/aptitude", http.StatusSeeOther)
		return
	}
	h.renderChat(w, s)
}

func (h *Handler) chatSubmit(w http.ResponseWriter, r *http.Request, s *session.Session) {
	form, err := parseChatForm(r)
	if err != nil {
		http.Error(w, "Invalid form submission.", http.StatusBadRequest)
		return
	}

	if form.ToggleMode {
		if h.ctrl.ToggleProtege(s) {
			s.AddFlash(session.FlashInfo, "Protégé mode activated!")
		} else {
			s.AddFlash(session.FlashInfo, "Protégé mode deactivated.")
		}
		http.Redirect(w, r, "/chat", http.StatusSeeOther)
		return
	}

	if form.UserQuery == "" {
		s.AddFlash(session.FlashDanger, "Please enter a question.")
		http.Redirect(w, r, "/chat", http.StatusSeeOther)
		return
	}

	out, err := h.ctrl.SubmitQuery(r.Context(), s, form.UserQuery)
	if err != nil {
		h.serverError(w, "chat turn", err)
		return
	}

	if out.RepeatedTopic {
		s.AddFlash(session.FlashWarning, fmt.Sprintf("This seems to be a tricky topic for you: '%s'. We'll help you master it!", form.UserQuery))
	}
	if out.PointAwarded {
		s.AddFlash(session.FlashSuccess, fmt.Sprintf("Great explanation! You earned a point. Total: %d", out.Points))
	}

	h.renderChat(w, s)
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookie); err == nil {
		h.sessions.Delete(cookie.Value)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *Handler) renderChat(w http.ResponseWriter, s *session.Session) {
	h.render(w, "chat.html", chatView{
		baseView:     baseView{Title: "Chat", Flashes: s.PopFlashes()},
		Username:     s.Username,
		Style:        s.Style,
		Points:       s.Points,
		ProtegeMode:  s.ProtegeMode,
		LastResponse: s.LastResponse,
		History:      s.History,
	})
}

func (h *Handler) startSession(w http.ResponseWriter, s *session.Session) {
	token := h.sessions.Create(s)
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.tmpl.ExecuteTemplate(w, name, data); err != nil {
		h.logger.Error("render template", "template", name, "error", err)
	}
}

func (h *Handler) serverError(w http.ResponseWriter, op string, err error) {
	h.logger.Error(op+" failed", "error", err)
	http.Error(w, "An unexpected error occurred. Please try again.", http.StatusInternalServerError)
}
