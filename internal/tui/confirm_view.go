package tui

import "strings"

// 确认页「接下来会发生什么」
var nextSteps = []string{
	"We'll review your request within 24-48 hours",
	"You'll receive an email with a quote and timeline",
	"Once approved, we'll start printing your custom design",
}

func confirmationView(title string) string {
	var b strings.Builder
	b.WriteString(successStyle.Render("✓ Request submitted successfully") + "\n\n")
	if title != "" {
		b.WriteString("Thanks! We received your request for " + labelStyle.Render(title) + ".\n")
	}

	var notes strings.Builder
	notes.WriteString(labelStyle.Render("What happens next?") + "\n")
	for _, step := range nextSteps {
		notes.WriteString("• " + step + "\n")
	}
	b.WriteString(notesStyle.Render(strings.TrimRight(notes.String(), "\n")) + "\n\n")

	b.WriteString(helpStyle.Render("enter: back to gallery • n: new request • q: quit"))
	return b.String()
}
