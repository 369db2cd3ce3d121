// Package markup turns role-tagged messages into display-ready HTML
// fragments. Math delimiters (\( \), \[ \]) pass through untouched so the
// client-side typesetting pass can pick them up after each update.
package markup

import (
	"html"
	"strings"

	"clario/backend/internal/model"
)

// Rendered is one message prepared for display.
type Rendered struct {
	Sender model.Sender `json:"sender"`
	HTML   string       `json:"html"`
}

var breakReplacer = strings.NewReplacer(
	`\n\n`, "<br><br>",
	`\n`, "<br>",
	"\n\n", "<br><br>",
	"\n", "<br>",
)

// FormatText escapes a message body and converts line breaks, both literal
// "\n" sequences leaking from upstream output and real newlines, into <br>.
func FormatText(text string) string {
	return breakReplacer.Replace(html.EscapeString(text))
}

// Render formats a whole message list in order.
func Render(messages []model.Message) []Rendered {
	rendered := make([]Rendered, len(messages))
	for i, msg := range messages {
		rendered[i] = Rendered{Sender: msg.Sender, HTML: FormatText(msg.Text)}
	}
	return rendered
}
