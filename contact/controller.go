package contact

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/dalcoin/site/pkg/logger"
	"github.com/dalcoin/site/pkg/mailer"
)

// Mailer is the part of *mailer.Mailer the controller needs.
type Mailer interface {
	SendRaw(ctx context.Context, email *mailer.Email) error
	Send(ctx context.Context, params mailer.SendParams) error
}

// Config holds controller settings.
// Embed this in your app config for env parsing with caarlos0/env.
type Config struct {
	SiteName    string         `env:"CONTACT_SITE_NAME" envDefault:"DALCOIN"`
	From        string         `env:"CONTACT_FROM" envDefault:"noreply@dalcoin.no"`
	To          string         `env:"CONTACT_TO" envDefault:"post@dalcoin.no"`
	Policy      DeliveryPolicy `env:"CONTACT_DELIVERY_POLICY" envDefault:"actual"`
	SettleDelay time.Duration  `env:"CONTACT_SETTLE_DELAY" envDefault:"1s"`
	SendTimeout time.Duration  `env:"CONTACT_SEND_TIMEOUT" envDefault:"30s"`
	Receipt     bool           `env:"CONTACT_RECEIPT" envDefault:"false"`
}

// DefaultSendTimeout bounds one provider call.
const DefaultSendTimeout = 30 * time.Second

func (c Config) withDefaults() Config {
	if c.SiteName == "" {
		c.SiteName = DefaultSiteName
	}
	if c.From == "" {
		c.From = "noreply@dalcoin.no"
	}
	if c.To == "" {
		c.To = "post@dalcoin.no"
	}
	if c.SendTimeout <= 0 {
		c.SendTimeout = DefaultSendTimeout
	}
	return c
}

// Controller runs contact-form submissions.
type Controller struct {
	mailer       Mailer
	guard        *Guard
	logger       *slog.Logger
	onTransition TransitionFunc
	sleep        func(ctx context.Context, d time.Duration)
	cfg          Config
}

// ControllerOption configures a Controller.
type ControllerOption func(*Controller)

// WithLogger sets the logger. Default: discard.
func WithLogger(l *slog.Logger) ControllerOption {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithGuard rejects overlapping attempts that share a form token.
// Without a guard every attempt proceeds.
func WithGuard(g *Guard) ControllerOption {
	return func(c *Controller) {
		c.guard = g
	}
}

// WithTransitionHook observes every state change.
func WithTransitionHook(fn TransitionFunc) ControllerOption {
	return func(c *Controller) {
		c.onTransition = fn
	}
}

// NewController creates a controller that delivers through m.
func NewController(m Mailer, cfg Config, opts ...ControllerOption) *Controller {
	c := &Controller{
		mailer: m,
		cfg:    cfg.withDefaults(),
		logger: logger.NewNope(),
		sleep:  sleep,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// MessageBody formats req with the configured site name.
func (c *Controller) MessageBody(req Request) string {
	return buildMessageBody(c.cfg.SiteName, req)
}

// Submit validates req and, if it passes, sends it as one email.
// control is disabled and labelled SendingLabel while the email is in flight,
// and restored before Submit returns or panics.
//
// Once sending starts it runs to completion: cancelling ctx does not abort
// the provider call, which is bounded by Config.SendTimeout instead. Only the
// settle delay before a delivered outcome follows ctx.
func (c *Controller) Submit(ctx context.Context, req Request, control SubmitControl) Outcome {
	c.transition(ctx, Idle, Validating)

	res := Validate(req)
	if !res.Valid() {
		c.transition(ctx, Validating, Invalid)
		return Outcome{State: Invalid, Validation: res}
	}

	release, err := c.claim(ctx, req.Token)
	if err != nil {
		c.transition(ctx, Validating, Rejected)
		return Outcome{State: Rejected, Err: err}
	}
	defer func() {
		if err := release(); err != nil {
			c.logger.WarnContext(ctx, "submission claim not released", slog.Any("error", err))
		}
	}()

	restore := acquire(control, SendingLabel)
	c.transition(ctx, Validating, Submitting)

	var out Outcome
	defer func() {
		restore()
		if out.State.Terminal() {
			c.transition(ctx, out.State, Idle)
		}
	}()

	sendCtx, cancel := c.detached(ctx)
	defer cancel()

	err = c.mailer.SendRaw(sendCtx, c.compose(req))
	out = c.outcome(sendCtx, req, err)
	if out.State == Delivered {
		c.sleep(ctx, c.cfg.SettleDelay)
	}

	c.transition(ctx, Submitting, out.State)
	return out
}

// detached keeps ctx values (request id, logger attrs) but not its
// cancellation, and applies the send timeout.
func (c *Controller) detached(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), c.cfg.SendTimeout)
}

func (c *Controller) compose(req Request) *mailer.Email {
	return &mailer.Email{
		From:    c.cfg.From,
		To:      []string{c.cfg.To},
		Subject: Subject(req),
		Text:    c.MessageBody(req),
		ReplyTo: req.Email,
		Tags:    mailer.Tags{"category": "contact_request"},
	}
}

func (c *Controller) outcome(ctx context.Context, req Request, err error) Outcome {
	if err == nil {
		c.logger.InfoContext(ctx, "contact request delivered",
			slog.String("floor_type", string(req.FloorType)),
			slog.Bool("site_visit", req.SiteVisit),
		)
		c.sendReceipt(ctx, req)
		return Outcome{State: Delivered}
	}

	if c.cfg.Policy == AlwaysReportDelivered {
		c.logger.ErrorContext(ctx, "contact request delivery failed, reported as delivered",
			slog.Any("error", err),
		)
		return Outcome{State: Delivered}
	}

	c.logger.ErrorContext(ctx, "contact request delivery failed", slog.Any("error", err))
	return Outcome{State: DeliveryFailed, Err: err}
}

// claim takes the guard for token. A broken claim store lets the attempt through.
func (c *Controller) claim(ctx context.Context, token string) (func() error, error) {
	noop := func() error { return nil }
	if c.guard == nil {
		return noop, nil
	}

	release, err := c.guard.Acquire(ctx, token)
	switch {
	case err == nil:
		return release, nil
	case errors.Is(err, ErrSubmissionInProgress), errors.Is(err, ErrInvalidToken):
		return nil, err
	default:
		c.logger.WarnContext(ctx, "submission guard unavailable", slog.Any("error", err))
		return noop, nil
	}
}

func (c *Controller) transition(ctx context.Context, from, to State) {
	c.logger.DebugContext(ctx, "contact state",
		slog.String("from", from.String()),
		slog.String("to", to.String()),
	)
	if c.onTransition != nil {
		c.onTransition(ctx, from, to)
	}
}

func sleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
	case <-t.C:
	}
}
