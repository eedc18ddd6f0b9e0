package main

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/dalcoin/site"
	"github.com/dalcoin/site/contact"
	"github.com/dalcoin/site/pkg/logger"
	"github.com/dalcoin/site/pkg/mailer"
	"github.com/dalcoin/site/pkg/mailer/resend"
	"github.com/dalcoin/site/pkg/redis"
)

// Config is the whole server configuration, read from the environment.
type Config struct {
	Addr            string        `env:"ADDR" envDefault:":8080"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT" envDefault:"40s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`

	Log     logger.Config
	Redis   redis.Config
	Resend  resend.Config
	Mailer  mailer.Config
	Contact contact.Config
	Limit   RateLimitConfig
	Assets  AssetsConfig
}

// AssetsConfig locates the htmx script. Set HTMX_SRC to a /static/ path to
// self-host it.
type AssetsConfig struct {
	HTMXSrc       string `env:"HTMX_SRC" envDefault:"https://unpkg.com/htmx.org@2.0.4"`
	HTMXIntegrity string `env:"HTMX_INTEGRITY" envDefault:"sha384-HGfztofotfshcF7+8n44JQL2oJmowVChPTg48S+jvZoztPfvwD79OC/LTtG6dMp+"`
}

// RateLimitConfig bounds contact posts per visitor.
type RateLimitConfig struct {
	Every time.Duration `env:"CONTACT_RATE_EVERY" envDefault:"1m"`
	Burst int           `env:"CONTACT_RATE_BURST" envDefault:"5"`
	// KeyHeader names a header set by a trusted edge proxy that carries the
	// visitor address, e.g. CF-Connecting-IP. The client IP is the fallback.
	KeyHeader string `env:"CONTACT_RATE_KEY_HEADER"`
}

func (c RateLimitConfig) key() site.Extractor {
	if c.KeyHeader == "" {
		return site.NewExtractor(site.FromClientIP())
	}
	return site.NewExtractor(site.FromHeader(c.KeyHeader), site.FromClientIP())
}

// loadConfig reads an optional .env file, then the environment.
// Variables already set in the environment win over the file.
func loadConfig(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	var errs []error
	if c.Contact.To == "" {
		errs = append(errs, errors.New("CONTACT_TO is required"))
	}
	if c.RequestTimeout <= c.Contact.SendTimeout+c.Contact.SettleDelay {
		errs = append(errs, errors.New("REQUEST_TIMEOUT must exceed CONTACT_SEND_TIMEOUT plus CONTACT_SETTLE_DELAY"))
	}
	if c.Limit.Burst < 1 {
		errs = append(errs, errors.New("CONTACT_RATE_BURST must be at least 1"))
	}
	return errors.Join(errs...)
}
