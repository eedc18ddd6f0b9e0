package htmx

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
)

// Renderable is the interface for OOB components.
// Compatible with templ.Component.
type Renderable interface {
	Render(ctx context.Context, w io.Writer) error
}

// Config holds HTMX render configuration.
type Config struct {
	OOBComponents       []Renderable
	Retarget            string
	Reswap              SwapStrategy
	PushURL             string
	Triggers            []Trigger
	TriggersAfterSwap   []Trigger
	TriggersAfterSettle []Trigger
	Refresh             bool
}

// Trigger is a client-side event raised through an HX-Trigger header.
// A nil Detail sends the bare event name.
type Trigger struct {
	Detail any
	Name   string
}

// RenderOption configures HTMX render behavior.
type RenderOption func(*Config)

// NewConfig creates a Config from options.
func NewConfig(opts ...RenderOption) *Config {
	cfg := &Config{}
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// ApplyHeaders sets HTMX headers on the response.
// Must be called before WriteHeader.
func (c *Config) ApplyHeaders(w http.ResponseWriter) {
	if c == nil {
		return
	}

	h := w.Header()

	if c.Retarget != "" {
		h.Set(HeaderHXRetarget, c.Retarget)
	}
	if c.Reswap != "" {
		h.Set(HeaderHXReswap, string(c.Reswap))
	}
	if c.PushURL != "" {
		h.Set(HeaderHXPushURL, c.PushURL)
	}
	setTriggers(h, HeaderHXTrigger, c.Triggers)
	setTriggers(h, HeaderHXTriggerAfterSwap, c.TriggersAfterSwap)
	setTriggers(h, HeaderHXTriggerAfterSettle, c.TriggersAfterSettle)
	if c.Refresh {
		h.Set(HeaderHXRefresh, "true")
	}
}

// setTriggers writes a comma list when no trigger carries detail, and the
// JSON object form otherwise.
func setTriggers(h http.Header, header string, triggers []Trigger) {
	if len(triggers) == 0 {
		return
	}

	names := make([]string, 0, len(triggers))
	withDetail := false
	for _, t := range triggers {
		names = append(names, t.Name)
		if t.Detail != nil {
			withDetail = true
		}
	}

	if !withDetail {
		h.Set(header, strings.Join(names, ", "))
		return
	}

	events := make(map[string]any, len(triggers))
	for _, t := range triggers {
		events[t.Name] = t.Detail
	}
	data, err := json.Marshal(events)
	if err != nil {
		h.Set(header, strings.Join(names, ", "))
		return
	}
	h.Set(header, string(data))
}

// WithOOB appends out-of-band components to render after the main component.
// Components must include id and hx-swap-oob attributes.
func WithOOB(components ...Renderable) RenderOption {
	return func(c *Config) {
		c.OOBComponents = append(c.OOBComponents, components...)
	}
}

// WithRetarget sets the HX-Retarget header to change the target element.
func WithRetarget(selector string) RenderOption {
	return func(c *Config) {
		c.Retarget = selector
	}
}

// WithReswap sets the HX-Reswap header to change the swap strategy.
func WithReswap(strategy SwapStrategy) RenderOption {
	return func(c *Config) {
		c.Reswap = strategy
	}
}

// WithPushURL sets the HX-Push-Url header. Pass "false" to prevent a history entry.
func WithPushURL(url string) RenderOption {
	return func(c *Config) {
		c.PushURL = url
	}
}

// WithTrigger raises client-side events after the response is received.
func WithTrigger(events ...string) RenderOption {
	return func(c *Config) {
		for _, e := range events {
			c.Triggers = append(c.Triggers, Trigger{Name: e})
		}
	}
}

// WithTriggerDetail raises one event carrying a JSON-encodable detail.
func WithTriggerDetail(event string, detail any) RenderOption {
	return func(c *Config) {
		c.Triggers = append(c.Triggers, Trigger{Name: event, Detail: detail})
	}
}

// WithTriggerAfterSwap raises events once the swap completes.
func WithTriggerAfterSwap(events ...string) RenderOption {
	return func(c *Config) {
		for _, e := range events {
			c.TriggersAfterSwap = append(c.TriggersAfterSwap, Trigger{Name: e})
		}
	}
}

// WithTriggerAfterSettle raises events after the settle phase.
func WithTriggerAfterSettle(events ...string) RenderOption {
	return func(c *Config) {
		for _, e := range events {
			c.TriggersAfterSettle = append(c.TriggersAfterSettle, Trigger{Name: e})
		}
	}
}

// WithRefresh sets the HX-Refresh header to force a full page refresh.
func WithRefresh() RenderOption {
	return func(c *Config) {
		c.Refresh = true
	}
}
