// Command server runs the DALCOIN website.
package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/dalcoin/site"
	"github.com/dalcoin/site/contact"
	"github.com/dalcoin/site/handlers"
	"github.com/dalcoin/site/middlewares"
	"github.com/dalcoin/site/pkg/cache"
	"github.com/dalcoin/site/pkg/logger"
	"github.com/dalcoin/site/pkg/mailer"
	"github.com/dalcoin/site/pkg/mailer/resend"
	"github.com/dalcoin/site/pkg/redis"
	"github.com/dalcoin/site/views"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server stopped", slog.Any("error", err))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log := logger.New(cfg.Log, middlewares.RequestIDExtractor())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	claims, client, err := claimStore(ctx, cfg.Redis, log)
	if err != nil {
		return err
	}

	sender := resend.New(cfg.Resend)
	if !cfg.Resend.Configured() {
		log.Warn("RESEND_API_KEY not set, contact requests cannot be delivered")
	}
	m := mailer.New(sender, mailer.NewRenderer(contact.Templates()), cfg.Mailer)

	ctrl := contact.NewController(m, cfg.Contact,
		contact.WithLogger(log),
		contact.WithGuard(contact.NewGuard(claims, contact.DefaultClaimTTL)),
	)
	log.Info("contact controller ready",
		slog.String("to", cfg.Contact.To),
		slog.String("policy", cfg.Contact.Policy.String()),
		slog.Bool("receipt", cfg.Contact.Receipt),
	)

	limiter := middlewares.NewRateLimiter(
		middlewares.WithRateLimit(cfg.Limit.Every, cfg.Limit.Burst),
		middlewares.WithRateLimitKey(cfg.Limit.key()),
	)

	checks := []site.HealthOption{
		site.WithReadinessCheck("mailer", sender.Healthcheck),
		site.WithHealthTimeout(5 * time.Second),
	}
	if client != nil {
		checks = append(checks, site.WithReadinessCheck("redis", redis.Healthcheck(client)))
	}

	app := site.New(
		site.WithLogger(log),
		site.WithMiddleware(
			middlewares.RequestID(),
			middlewares.AccessLog(),
			middlewares.Recover(),
			middlewares.Timeout(cfg.RequestTimeout),
			handlers.Assets(views.Assets{
				HTMXSrc:       cfg.Assets.HTMXSrc,
				HTMXIntegrity: cfg.Assets.HTMXIntegrity,
			}),
		),
		site.WithStaticFiles("/static/", views.Static, "static"),
		site.WithHealthChecks(checks...),
		site.WithErrorHandler(handlers.ErrorHandler(cfg.Contact.SiteName)),
		site.WithNotFoundHandler(handlers.NotFound(cfg.Contact.SiteName)),
		site.WithHandlers(
			handlers.NewContact(ctrl, cfg.Contact.SiteName,
				handlers.WithSubmitMiddleware(limiter.Middleware()),
			),
		),
	)

	opts := []site.RunOption{
		site.ShutdownTimeout(cfg.ShutdownTimeout),
		site.ShutdownHook(site.ShutdownFunc(limiter.Close)),
		site.ShutdownHook(site.ShutdownFunc(claims.Close)),
	}
	if client != nil {
		opts = append(opts, site.ShutdownHook(redis.Shutdown(client)))
	}
	opts = append(opts, site.ShutdownHook(logger.Flush))

	return app.Run(cfg.Addr, opts...)
}

// claimStore keeps in-flight submission claims in Redis when REDIS_URL is
// set, so several instances share them, and in memory otherwise.
func claimStore(ctx context.Context, cfg redis.Config, log *slog.Logger) (cache.Cache[string], goredis.UniversalClient, error) {
	if !cfg.Enabled() {
		log.Info("claim store: memory")
		return cache.NewMemory[string](cache.WithMaxEntries(10000)), nil, nil
	}

	client, err := redis.Open(ctx, cfg.URL, redis.WithRetry(5, 2*time.Second))
	if err != nil {
		return nil, nil, err
	}
	log.Info("claim store: redis")
	return cache.NewRedis[string](client, nil, cache.WithPrefix("contact:claim")), client, nil
}
