package resend

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/resend/resend-go/v3"

	"github.com/dalcoin/site/pkg/mailer"
)

// ErrNotConfigured is returned by Send when no API key was provided.
var ErrNotConfigured = errors.New("resend: api key not configured")

// Sender implements mailer.Sender using the Resend API.
type Sender struct {
	client *resend.Client
	config Config
}

// Option configures the Sender.
type Option func(*options)

type options struct {
	httpClient *http.Client
}

// WithHTTPClient sets the HTTP client used to reach the Resend API.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) {
		o.httpClient = c
	}
}

// New creates a new Resend sender.
func New(cfg Config, opts ...Option) *Sender {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	client := resend.NewClient(cfg.APIKey)
	if o.httpClient != nil {
		client = resend.NewCustomClient(o.httpClient, cfg.APIKey)
	}

	return &Sender{client: client, config: cfg}
}

// Send implements mailer.Sender. Any non-2xx answer from the API is an error.
func (s *Sender) Send(ctx context.Context, email *mailer.Email) error {
	if !s.config.Configured() {
		return ErrNotConfigured
	}

	req := &resend.SendEmailRequest{
		From:    s.from(email),
		To:      email.To,
		Subject: email.Subject,
		Html:    email.HTML,
		Text:    email.Text,
		ReplyTo: email.ReplyTo,
		Cc:      email.CC,
		Bcc:     email.BCC,
		Headers: email.Headers,
	}

	if len(email.Tags) > 0 {
		req.Tags = convertTags(email.Tags)
	}

	if _, err := s.client.Emails.SendWithContext(ctx, req); err != nil {
		return fmt.Errorf("resend: failed to send email: %w", err)
	}

	return nil
}

func (s *Sender) from(email *mailer.Email) string {
	if email.From != "" {
		return email.From
	}
	return mailer.Recipient(s.config.SenderName, s.config.SenderEmail)
}

func convertTags(tags mailer.Tags) []resend.Tag {
	result := make([]resend.Tag, 0, len(tags))
	for name, value := range tags {
		result = append(result, resend.Tag{
			Name:  name,
			Value: tagValue(value),
		})
	}
	return result
}

// tagValue converts a tag value to the string Resend expects.
// Presence-only tags (struct{}{}) become "true".
func tagValue(v any) string {
	switch val := v.(type) {
	case nil, struct{}:
		return "true"
	case string:
		return val
	case bool:
		return strconv.FormatBool(val)
	case int:
		return strconv.Itoa(val)
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}

// Healthcheck reports ErrNotConfigured until an API key is set.
// It does not call the API.
func (s *Sender) Healthcheck(context.Context) error {
	if !s.config.Configured() {
		return ErrNotConfigured
	}
	return nil
}
