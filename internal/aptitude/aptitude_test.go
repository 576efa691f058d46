package aptitude

import (
	"testing"

	"github.com/abhisek/tutorly/internal/styles"
)

func TestClassify_ThreeOfFiveIsPractical(t *testing.T) {
	answers := []string{
		"See real-life examples",
		"Hands-on activities",
		"Analyze the theory behind the problem",
		"You do it yourself",
		"Explain concepts thoroughly",
	}
	if got := Classify(answers); got != styles.Practical {
		t.Fatalf("3 practical answers should classify as practical, got %s", got)
	}
}

func TestClassify_TwoOfFiveIsTheory(t *testing.T) {
	answers := []string{
		"See real-life examples",
		"Listening to detailed explanations",
		"Analyze the theory behind the problem",
		"You read or hear about it in detail",
		"Give practical demonstrations",
	}
	if got := Classify(answers); got != styles.Theory {
		t.Fatalf("2 practical answers should classify as theory, got %s", got)
	}
}

func TestClassify_CaseInsensitive(t *testing.T) {
	answers := []string{"HANDS-ON work", "REAL-LIFE cases", "Do It yourself", "", ""}
	if got := Classify(answers); got != styles.Practical {
		t.Fatalf("keyword matching must be case-insensitive, got %s", got)
	}
}

func TestClassify_MissingAnswersCountAsTheory(t *testing.T) {
	if got := Classify([]string{"", "", "", "", ""}); got != styles.Theory {
		t.Fatalf("all-empty answers should classify as theory, got %s", got)
	}
	if got := Classify(nil); got != styles.Theory {
		t.Fatalf("nil answers should classify as theory, got %s", got)
	}
}

func TestQuestions_FixedShape(t *testing.T) {
	qs := Questions()
	if len(qs) != 5 {
		t.Fatalf("expected 5 questions, got %d", len(qs))
	}
	for i, q := range qs {
		if q.Prompt == "" || q.Options[0] == "" || q.Options[1] == "" {
			t.Fatalf("question %d incomplete: %+v", i, q)
		}
	}
	// Every first option must classify as a practical pick, every
	// second as a theory pick, or the quiz cannot separate the styles.
	for i, q := range qs {
		if !isPractical(q.Options[0]) {
			t.Errorf("question %d option 0 %q should match a practical keyword", i, q.Options[0])
		}
		if isPractical(q.Options[1]) {
			t.Errorf("question %d option 1 %q should not match a practical keyword", i, q.Options[1])
		}
	}
}
