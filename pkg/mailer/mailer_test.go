package mailer_test

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dalcoin/site/pkg/mailer"
)

type mockSender struct {
	mock.Mock
}

func (m *mockSender) Send(ctx context.Context, email *mailer.Email) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func templates() fstest.MapFS {
	return fstest.MapFS{
		"layouts/base.html": &fstest.MapFile{
			Data: []byte(`<html><body>{{.Content}}</body></html>`),
		},
		"receipt.md": &fstest.MapFile{
			Data: []byte("---\nSubject: Takk, {{.Name}}\n---\nHei **{{.Name}}**!\n"),
		},
		"plain.md": &fstest.MapFile{
			Data: []byte("Ingen frontmatter."),
		},
	}
}

func TestMailer_Send(t *testing.T) {
	t.Parallel()

	t.Run("renders and sends", func(t *testing.T) {
		t.Parallel()

		sender := &mockSender{}
		sender.On("Send", mock.Anything, mock.MatchedBy(func(e *mailer.Email) bool {
			return e.To[0] == "kari@example.no" &&
				e.Subject == "Takk, Kari" &&
				e.ReplyTo == "post@dalcoin.no" &&
				assert.ObjectsAreEqual(mailer.Tags{"kind": "receipt"}, e.Tags)
		})).Return(nil).Once()

		m := mailer.New(sender, mailer.NewRenderer(templates()), mailer.Config{DefaultLayout: "base.html"})
		err := m.Send(context.Background(), mailer.SendParams{
			To:       "kari@example.no",
			Template: "receipt.md",
			Data:     map[string]string{"Name": "Kari"},
			ReplyTo:  "post@dalcoin.no",
			Tags:     mailer.Tags{"kind": "receipt"},
		})

		require.NoError(t, err)
		sender.AssertExpectations(t)
	})

	t.Run("falls back to config subject", func(t *testing.T) {
		t.Parallel()

		sender := &mockSender{}
		sender.On("Send", mock.Anything, mock.MatchedBy(func(e *mailer.Email) bool {
			return e.Subject == "Melding"
		})).Return(nil).Once()

		m := mailer.New(sender, mailer.NewRenderer(templates()), mailer.Config{
			DefaultLayout:   "base.html",
			FallbackSubject: "Melding",
		})
		require.NoError(t, m.Send(context.Background(), mailer.SendParams{To: "a@b.no", Template: "plain.md"}))
		sender.AssertExpectations(t)
	})

	t.Run("explicit subject wins", func(t *testing.T) {
		t.Parallel()

		sender := &mockSender{}
		sender.On("Send", mock.Anything, mock.MatchedBy(func(e *mailer.Email) bool {
			return e.Subject == "Hei Kari"
		})).Return(nil).Once()

		m := mailer.New(sender, mailer.NewRenderer(templates()), mailer.Config{DefaultLayout: "base.html"})
		require.NoError(t, m.Send(context.Background(), mailer.SendParams{
			To:       "a@b.no",
			Template: "receipt.md",
			Subject:  "Hei {{.Name}}",
			Data:     map[string]string{"Name": "Kari"},
		}))
		sender.AssertExpectations(t)
	})

	t.Run("requires recipient", func(t *testing.T) {
		t.Parallel()

		m := mailer.New(&mockSender{}, mailer.NewRenderer(templates()), mailer.Config{})
		err := m.Send(context.Background(), mailer.SendParams{Template: "receipt.md"})
		require.ErrorIs(t, err, mailer.ErrNoRecipient)
	})

	t.Run("missing template", func(t *testing.T) {
		t.Parallel()

		m := mailer.New(&mockSender{}, mailer.NewRenderer(templates()), mailer.Config{DefaultLayout: "base.html"})
		err := m.Send(context.Background(), mailer.SendParams{To: "a@b.no", Template: "nope.md"})
		require.ErrorIs(t, err, mailer.ErrRenderFailed)
		require.ErrorIs(t, err, mailer.ErrTemplateNotFound)
	})

	t.Run("without renderer", func(t *testing.T) {
		t.Parallel()

		m := mailer.New(&mockSender{}, nil, mailer.Config{})
		err := m.Send(context.Background(), mailer.SendParams{To: "a@b.no", Template: "receipt.md"})
		require.ErrorIs(t, err, mailer.ErrRenderFailed)
	})
}

func TestMailer_SendRaw(t *testing.T) {
	t.Parallel()

	t.Run("text only email is accepted", func(t *testing.T) {
		t.Parallel()

		email := &mailer.Email{To: []string{"post@dalcoin.no"}, Subject: "Hei", Text: "body"}
		sender := &mockSender{}
		sender.On("Send", mock.Anything, email).Return(nil).Once()

		require.NoError(t, mailer.New(sender, nil, mailer.Config{}).SendRaw(context.Background(), email))
		sender.AssertExpectations(t)
	})

	t.Run("wraps provider errors", func(t *testing.T) {
		t.Parallel()

		providerErr := errors.New("status 500")
		sender := mailer.SenderFunc(func(context.Context, *mailer.Email) error { return providerErr })

		err := mailer.New(sender, nil, mailer.Config{}).SendRaw(context.Background(), &mailer.Email{
			To: []string{"post@dalcoin.no"}, Subject: "Hei", Text: "body",
		})
		require.ErrorIs(t, err, mailer.ErrSendFailed)
		require.ErrorIs(t, err, providerErr)
	})

	t.Run("invalid email never reaches sender", func(t *testing.T) {
		t.Parallel()

		sender := &mockSender{}
		m := mailer.New(sender, nil, mailer.Config{})

		require.ErrorIs(t, m.SendRaw(context.Background(), &mailer.Email{Subject: "x", Text: "y"}), mailer.ErrNoRecipient)
		require.ErrorIs(t, m.SendRaw(context.Background(), &mailer.Email{To: []string{"a@b.no"}, Text: "y"}), mailer.ErrNoSubject)
		require.ErrorIs(t, m.SendRaw(context.Background(), &mailer.Email{To: []string{"a@b.no"}, Subject: "x"}), mailer.ErrNoContent)
		sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	})
}

func TestRecipient(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "post@dalcoin.no", mailer.Recipient("", "post@dalcoin.no"))
	assert.Equal(t, "DALCOIN <post@dalcoin.no>", mailer.Recipient(" DALCOIN ", "post@dalcoin.no"))
}

func TestSimpleTags(t *testing.T) {
	t.Parallel()

	tags := mailer.SimpleTags("contact", "web")
	assert.Len(t, tags, 2)
	assert.Equal(t, struct{}{}, tags["contact"])
}
