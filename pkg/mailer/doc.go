// Package mailer sends email through a pluggable provider and renders
// templated messages from markdown with YAML frontmatter.
//
// # Components
//
//   - Sender: the provider boundary (see the resend subpackage)
//   - Renderer: markdown template + HTML layout to HTML and plain text
//   - Mailer: validates messages, renders templates and delegates to the Sender
//
// # Usage
//
//	sender := resend.New(resend.Config{APIKey: cfg.ResendAPIKey, SenderEmail: "noreply@dalcoin.no"})
//	m := mailer.New(sender, mailer.NewRenderer(emails.FS), mailer.Config{DefaultLayout: "base.html"})
//
//	// pre-built message
//	err := m.SendRaw(ctx, &mailer.Email{To: []string{"post@dalcoin.no"}, Subject: "Hei", Text: "..."})
//
//	// template with frontmatter subject
//	err = m.Send(ctx, mailer.SendParams{To: "kari@example.no", Template: "receipt.md", Data: data})
//
// # Templates
//
// Templates are markdown files with optional frontmatter:
//
//	---
//	Subject: Takk for henvendelsen, {{.Name}}
//	---
//	Hei {{.Name}}!
//
// The subject is itself a template. Layouts receive {{.Content}} and {{.Metadata}}.
//
// # Errors
//
// Provider failures are returned wrapped with ErrSendFailed so callers can tell
// delivery problems apart from invalid messages (ErrNoRecipient, ErrNoSubject,
// ErrNoContent) and template problems (ErrRenderFailed, ErrTemplateNotFound).
package mailer
