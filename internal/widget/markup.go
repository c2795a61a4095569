package widget

import (
	"html"
	"regexp"
	"strings"
)

var boldPattern = regexp.MustCompile(`\*\*(.*?)\*\*`)

const (
	ansiBold  = "\x1b[1m"
	ansiReset = "\x1b[0m"
)

// RenderHTML escapes text, turns **x** into <strong>x</strong> and newlines into <br>.
func RenderHTML(text string) string {
	escaped := html.EscapeString(text)
	escaped = boldPattern.ReplaceAllString(escaped, "<strong>$1</strong>")
	return strings.ReplaceAll(escaped, "\n", "<br>")
}

// RenderANSI turns **x** into bold terminal text.
func RenderANSI(text string) string {
	return boldPattern.ReplaceAllString(text, ansiBold+"$1"+ansiReset)
}

// RenderPlain drops the bold markers.
func RenderPlain(text string) string {
	return boldPattern.ReplaceAllString(text, "$1")
}

// Transcript renders the conversation in order with the given renderer.
func Transcript(s State, render func(string) string) []string {
	out := make([]string, 0, len(s.Messages))
	for _, m := range s.Messages {
		out = append(out, render(m.Text))
	}
	return out
}
