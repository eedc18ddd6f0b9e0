// Package htmx detects HTMX requests and sets HTMX response headers.
//
// The contact form posts with hx-post and swaps the server's answer into its
// panel. Handlers describe side effects with render options:
//
//	c.Render(http.StatusUnprocessableEntity, views.ContactForm(state),
//	    htmx.WithTriggerDetail("contact:invalid", map[string]string{"field": "email"}),
//	)
//
// Options only apply to HTMX requests; a plain form post receives the full page.
package htmx
