package mailer

import "strings"

// markdownEscaper backslash-escapes the punctuation markdown and the
// linkify extension act on, so interpolated values render as literal text.
var markdownEscaper = strings.NewReplacer(
	`\`, `\\`, "`", "\\`", `*`, `\*`, `_`, `\_`, `{`, `\{`, `}`, `\}`,
	`[`, `\[`, `]`, `\]`, `(`, `\(`, `)`, `\)`, `#`, `\#`, `+`, `\+`,
	`-`, `\-`, `.`, `\.`, `!`, `\!`, `<`, `\<`, `>`, `\>`, `|`, `\|`,
	`~`, `\~`, `:`, `\:`, `@`, `\@`, `&`, `\&`, `/`, `\/`,
)

// EscapeMarkdown makes s safe to interpolate into a markdown template.
// Templates reach it as {{md .Value}}; the plain-text part gets s unchanged.
func EscapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}

func htmlFuncs() map[string]any {
	return map[string]any{"md": EscapeMarkdown}
}

func textFuncs() map[string]any {
	return map[string]any{"md": func(s string) string { return s }}
}
