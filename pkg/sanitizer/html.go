package sanitizer

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strictPolicy *bluemonday.Policy
	initOnce     sync.Once
)

func initPolicies() {
	initOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()
	})
}

// StripHTML removes every HTML element and returns plain text.
// Entities are decoded so "Tom &amp; Jerry" comes back as "Tom & Jerry".
func StripHTML(s string) string {
	if s == "" {
		return ""
	}
	initPolicies()
	return html.UnescapeString(strictPolicy.Sanitize(s))
}

// PlainText strips markup and surrounding whitespace.
func PlainText(s string) string {
	return strings.TrimSpace(StripHTML(s))
}

// SingleLine is PlainText with every run of whitespace, including line
// breaks, collapsed to one space. Use it for values that end up in headers.
func SingleLine(s string) string {
	return strings.Join(strings.Fields(StripHTML(s)), " ")
}

// MultiLine is PlainText with line endings normalised to "\n" and trailing
// spaces removed from each line.
func MultiLine(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	lines := strings.Split(StripHTML(s), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
