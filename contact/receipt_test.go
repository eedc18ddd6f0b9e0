package contact_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dalcoin/site/contact"
	"github.com/dalcoin/site/pkg/mailer"
)

func TestReceiptTemplate(t *testing.T) {
	t.Parallel()

	var sent *mailer.Email
	sender := mailer.SenderFunc(func(_ context.Context, e *mailer.Email) error {
		sent = e
		return nil
	})
	m := mailer.New(sender, mailer.NewRenderer(contact.Templates()), mailer.Config{DefaultLayout: "base.html"})

	// SendRaw for the company copy, Send for the receipt, both through the real renderer.
	ctrl := contact.NewController(m, contact.Config{Receipt: true})
	out := ctrl.Submit(context.Background(), validRequest(), nil)
	require.Equal(t, contact.Delivered, out.State)

	require.NotNil(t, sent)
	assert.Equal(t, []string{"kari@example.no"}, sent.To)
	assert.Equal(t, "Takk for henvendelsen, Kari Nordmann", sent.Subject)
	assert.Equal(t, "post@dalcoin.no", sent.ReplyTo)
	assert.Contains(t, sent.HTML, "<strong>Oppsummering</strong>")
	assert.Contains(t, sent.HTML, "Parkett/tregulv")
	assert.Contains(t, sent.Text, "Ønsker befaring: Ja")
	assert.Contains(t, sent.Text, "Adresse/Område: Storgata 1, Oslo")
}

func TestReceipt_UserInputCannotAddLinks(t *testing.T) {
	t.Parallel()

	var sent *mailer.Email
	sender := mailer.SenderFunc(func(_ context.Context, e *mailer.Email) error {
		if e.HTML != "" {
			sent = e
		}
		return nil
	})
	m := mailer.New(sender, mailer.NewRenderer(contact.Templates()), mailer.Config{DefaultLayout: "base.html"})
	ctrl := contact.NewController(m, contact.Config{Receipt: true})

	req := validRequest()
	req.Name = "Kari [Bekreft betaling her](https://evil.example/pay)"
	req.Address = "www.evil.example"
	req.Phone = "+47 912 34 567 https://evil.example/call"
	req.Email = "victim@example.no"
	require.Equal(t, contact.Delivered, ctrl.Submit(context.Background(), req, nil).State)

	require.NotNil(t, sent)
	assert.NotContains(t, sent.HTML, "<a")
	assert.NotContains(t, sent.HTML, `href=`)
	assert.Contains(t, sent.HTML, "[Bekreft betaling her]")
	assert.Contains(t, sent.Text, "Hei "+req.Name+",")
}

func TestReceipt_RendererMissingTemplate(t *testing.T) {
	t.Parallel()

	sender := &mockSender{}
	sender.On("Send", mock.Anything, mock.Anything).Return(nil).Once()

	m := mailer.New(sender, nil, mailer.Config{})
	ctrl := contact.NewController(m, contact.Config{Receipt: true})

	assert.Equal(t, contact.Delivered, ctrl.Submit(context.Background(), validRequest(), nil).State)
	sender.AssertNumberOfCalls(t, "Send", 1)
}

type mockSender struct {
	mock.Mock
}

func (m *mockSender) Send(ctx context.Context, email *mailer.Email) error {
	return m.Called(ctx, email).Error(0)
}
