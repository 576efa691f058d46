// Package web serves the HTML surface: login, registration, the
// aptitude quiz, and the chat page.
package web

import (
	"embed"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

// parseTemplates loads all page templates. Panics on malformed
// templates since they are embedded and a failure is a build defect.
func parseTemplates() *template.Template {
	return template.Must(template.ParseFS(templateFS, "templates/*.html"))
}
