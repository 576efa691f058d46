package tutor

import (
	"fmt"
	"strings"

	"github.com/abhisek/tutorly/internal/progress"
	"github.com/abhisek/tutorly/internal/styles"
)

// historyWindow is how many recent turns are included as prompt context.
const historyWindow = 5

// buildSystemPrompt combines the tutor persona with the style guidance.
func buildSystemPrompt(style styles.Style) string {
	return fmt.Sprintf("You are an AI teacher assistant. %s\nKeep responses medium-length and focused on study-related topics.", style.Guidance())
}

// buildUserMessage lays out the recent conversation and the question.
func buildUserMessage(query, userName string, style styles.Style, history []progress.Turn) string {
	var b strings.Builder

	b.WriteString("Previous conversation:\n")
	for _, turn := range lastTurns(history, historyWindow) {
		b.WriteString(fmt.Sprintf("%s: %s\n", turn.Role, turn.Text))
	}

	b.WriteString(fmt.Sprintf("\nStudent: %s\n", userName))
	b.WriteString(fmt.Sprintf("Learning Style: %s\n", style))
	b.WriteString(fmt.Sprintf("Question: %s\n", query))

	b.WriteString("\nRespond matching their learning style.")

	return b.String()
}

func lastTurns(history []progress.Turn, n int) []progress.Turn {
	if len(history) <= n {
		return history
	}
	return history[len(history)-n:]
}
