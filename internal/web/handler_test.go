package web

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/abhisek/tutorly/internal/llm"
	"github.com/abhisek/tutorly/internal/progress"
	"github.com/abhisek/tutorly/internal/session"
	"github.com/abhisek/tutorly/internal/styles"
	"github.com/abhisek/tutorly/internal/tutor"
)

// client drives the handler like a browser, carrying the session cookie
// between requests.
type client struct {
	t      *testing.T
	router chi.Router
	cookie *http.Cookie
}

func newTestClient(t *testing.T, mock *llm.MockProvider) (*client, progress.Store) {
	t.Helper()
	store, err := progress.NewFileStore(filepath.Join(t.TempDir(), "users_data.json"))
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	ctrl := session.NewController(store, tutor.NewResponder(mock), nil)
	h := NewHandler(ctrl, session.NewManager(), nil)

	r := chi.NewRouter()
	h.RegisterRoutes(r)

	return &client{t: t, router: r}, store
}

func (c *client) get(path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	return c.do(req)
}

func (c *client) post(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c.do(req)
}

func (c *client) do(req *http.Request) *httptest.ResponseRecorder {
	c.t.Helper()
	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}
	w := httptest.NewRecorder()
	c.router.ServeHTTP(w, req)
	for _, ck := range w.Result().Cookies() {
		if ck.Name == sessionCookie {
			if ck.MaxAge < 0 {
				c.cookie = nil
			} else {
				c.cookie = ck
			}
		}
	}
	return w
}

func (c *client) login(username string) {
	c.t.Helper()
	w := c.post("/", url.Values{"username": {username}})
	if w.Code != http.StatusSeeOther {
		c.t.Fatalf("login %q: expected redirect, got %d", username, w.Code)
	}
}

func practicalAnswers() url.Values {
	return url.Values{
		"q0": {"See real-life examples"},
		"q1": {"Hands-on activities"},
		"q2": {"Apply concepts to practical situations"},
		"q3": {"You do it yourself"},
		"q4": {"Explain concepts thoroughly"},
	}
}

func TestUnauthenticatedPagesRedirectToLogin(t *testing.T) {
	c, _ := newTestClient(t, llm.NewMockProvider())

	for _, path := range []string{"/chat", "/aptitude"} {
		w := c.get(path)
		if w.Code != http.StatusSeeOther || w.Header().Get("Location") != "/" {
			t.Errorf("GET %s: expected redirect to /, got %d -> %q", path, w.Code, w.Header().Get("Location"))
		}
	}
}

func TestLogin_NewUserRoutedToAptitude(t *testing.T) {
	c, _ := newTestClient(t, llm.NewMockProvider())

	w := c.post("/", url.Values{"username": {"alice"}})
	if w.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", w.Code)
	}
	if loc := w.Header().Get("Location"); loc != "/aptitude" {
		t.Fatalf("unstyled user should go to the quiz, got %q", loc)
	}
}

func TestLogin_EmptyUsernameRerendersWithNotice(t *testing.T) {
	c, _ := newTestClient(t, llm.NewMockProvider())

	w := c.post("/", url.Values{"username": {"  "}})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Please enter a username.") {
		t.Fatal("expected the empty-username notice")
	}
}

func TestRegister_ThenDuplicateRejected(t *testing.T) {
	c, store := newTestClient(t, llm.NewMockProvider())

	w := c.post("/register", url.Values{"username": {"alice"}, "learning_style": {"theory"}})
	if w.Code != http.StatusSeeOther || w.Header().Get("Location") != "/chat" {
		t.Fatalf("register should redirect to /chat, got %d -> %q", w.Code, w.Header().Get("Location"))
	}

	rec, ok, _ := store.Get("alice")
	if !ok || rec.LearningStyle != styles.Theory || rec.Points != 0 {
		t.Fatalf("unexpected stored record: ok=%v %+v", ok, rec)
	}

	// Second registration with the same name fails without clobbering.
	w = c.post("/register", url.Values{"username": {"alice"}})
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "Username already exists") {
		t.Fatalf("duplicate register should re-render with error, got %d", w.Code)
	}
	rec, _, _ = store.Get("alice")
	if rec.LearningStyle != styles.Theory {
		t.Fatalf("duplicate register must not overwrite the record, got %+v", rec)
	}
}

func TestAptitude_ClassifiesAndPersists(t *testing.T) {
	c, store := newTestClient(t, llm.NewMockProvider())
	c.login("alice")

	w := c.post("/aptitude", practicalAnswers())
	if w.Code != http.StatusSeeOther || w.Header().Get("Location") != "/chat" {
		t.Fatalf("quiz submit should redirect to /chat, got %d", w.Code)
	}

	rec, ok, _ := store.Get("alice")
	if !ok || rec.LearningStyle != styles.Practical {
		t.Fatalf("expected persisted practical style, got ok=%v %+v", ok, rec)
	}

	// The classification notice shows on the next page.
	w = c.get("/chat")
	if !strings.Contains(w.Body.String(), "You are classified as a practical learner!") {
		t.Fatal("expected the classification flash on /chat")
	}
}

func TestChat_FallbackTopicBypassesModel(t *testing.T) {
	mock := llm.NewMockProvider()
	c, store := newTestClient(t, mock)
	c.login("bob")
	c.post("/aptitude", url.Values{"q0": {"Understand the underlying theory"}})

	w := c.post("/chat", url.Values{"user_query": {"laws of motion"}})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Newton&#39;s first law") {
		t.Fatalf("expected the canned theory text in the page:\n%s", w.Body.String())
	}
	if mock.CallCount() != 0 {
		t.Fatal("fallback topic must not reach the model")
	}

	rec, _, _ := store.Get("bob")
	if len(rec.History) != 2 {
		t.Fatalf("expected exactly 2 history entries, got %d", len(rec.History))
	}
}

func TestChat_ProtegeModeTurn(t *testing.T) {
	mock := llm.NewMockProvider()
	c, store := newTestClient(t, mock)
	c.login("bob")
	c.post("/aptitude", practicalAnswers())

	w := c.post("/chat", url.Values{"toggle_mode": {"1"}})
	if w.Code != http.StatusSeeOther {
		t.Fatalf("toggle should redirect, got %d", w.Code)
	}
	w = c.get("/chat")
	if !strings.Contains(w.Body.String(), "Protégé mode activated!") {
		t.Fatal("expected the activation flash")
	}

	w = c.post("/chat", url.Values{"user_query": {"photosynthesis"}})
	body := w.Body.String()
	if !strings.Contains(body, "Please explain: photosynthesis") {
		t.Fatalf("expected the protégé prompt in the response:\n%s", body)
	}
	if !strings.Contains(body, "You earned a point. Total: 1") {
		t.Fatal("expected the point-award flash")
	}

	rec, _, _ := store.Get("bob")
	if rec.Points != 1 || len(rec.History) != 0 {
		t.Fatalf("expected 1 point and untouched history, got %+v", rec)
	}
	if mock.CallCount() != 0 {
		t.Fatal("protégé turns must not call the model")
	}
}

func TestChat_ModelFailureFlagsStruggledOnce(t *testing.T) {
	mock := llm.NewMockProvider() // every call fails
	c, store := newTestClient(t, mock)
	c.login("bob")
	c.post("/aptitude", practicalAnswers())

	for i := 0; i < 2; i++ {
		w := c.post("/chat", url.Values{"user_query": {"string theory"}})
		if w.Code != http.StatusOK {
			t.Fatalf("submit %d: expected 200, got %d", i, w.Code)
		}
		if !strings.Contains(w.Body.String(), "Sorry, I couldn&#39;t process that.") {
			t.Fatalf("submit %d: expected the fixed failure message", i)
		}
	}

	rec, _, _ := store.Get("bob")
	if len(rec.StruggledTopics) != 1 || rec.StruggledTopics[0] != "string theory" {
		t.Fatalf("expected the topic flagged exactly once, got %v", rec.StruggledTopics)
	}
}

func TestLogin_StruggledGreeting(t *testing.T) {
	c, store := newTestClient(t, llm.NewMockProvider())
	_ = store.Put("carol", progress.Record{
		LearningStyle:   styles.Practical,
		StruggledTopics: []string{"fractions", "algebra"},
	})

	c.login("carol")
	w := c.get("/chat")
	if !strings.Contains(w.Body.String(), "you previously struggled with &#39;algebra&#39;") {
		t.Fatalf("expected greeting naming the most recent topic:\n%s", w.Body.String())
	}
}

func TestLogout_ClearsSession(t *testing.T) {
	c, _ := newTestClient(t, llm.NewMockProvider())
	c.login("alice")

	w := c.get("/logout")
	if w.Code != http.StatusSeeOther || w.Header().Get("Location") != "/" {
		t.Fatalf("logout should redirect to /, got %d", w.Code)
	}

	w = c.get("/chat")
	if w.Code != http.StatusSeeOther {
		t.Fatal("session should be gone after logout")
	}
}
