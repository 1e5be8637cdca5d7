// Package llm turns a vendor-specific Generator into a domain.ProviderClient that never fails outward.
package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/felixgeelhaar/fortify/timeout"
	"github.com/rs/zerolog/log"

	"code_reviewer/internal/adapters/observability"
	"code_reviewer/internal/domain"
)

const DefaultTimeout = 30 * time.Second

var (
	ErrEmptyText     = errors.New("llm: provider returned no text")
	ErrMissingAPIKey = errors.New("llm: API key is not configured")
)

// Generator performs a single upstream call and returns the generated text.
// Implementations must return promptly once ctx is done; the time bound is only
// as strict as the generator's respect for ctx.
type Generator interface {
	Generate(ctx context.Context, code, instruction string) (string, error)
}

type Client struct {
	provider domain.ProviderName
	service  string
	gen      Generator
	timeout  time.Duration
}

// New wraps gen. service names the vendor in logs and metrics ("openai", "gemini").
func New(provider domain.ProviderName, service string, gen Generator, d time.Duration) *Client {
	if d <= 0 {
		d = DefaultTimeout
	}
	return &Client{provider: provider, service: service, gen: gen, timeout: d}
}

// Call runs the generator once with a ctx that expires after the per-call bound.
// Errors, panics, expiry and blank output all become a failed result.
func (c *Client) Call(ctx context.Context, code, instruction string) domain.ProviderResult {
	start := time.Now()
	t := timeout.New[string](timeout.Config{DefaultTimeout: c.timeout})
	text, err := t.Execute(ctx, c.timeout, func(ctx context.Context) (out string, err error) {
		// a panic becomes fn's error
		defer func() {
			if p := recover(); p != nil {
				err = fmt.Errorf("llm: provider panic: %v", p)
			}
		}()
		return c.gen.Generate(ctx, code, instruction)
	})
	if err != nil {
		return c.fail(ctx, err, start)
	}
	if strings.TrimSpace(text) == "" {
		return c.fail(ctx, ErrEmptyText, start)
	}

	dur := time.Since(start)
	observability.ObserveProvider(string(c.provider), c.service, "ok", dur)
	log.Debug().
		Str("review_id", domain.ReviewID(ctx)).
		Str("provider", string(c.provider)).
		Str("service", c.service).
		Dur("duration", dur).
		Int("length", len(text)).
		Msg("provider call ok")
	return domain.Success(c.provider, text)
}

func (c *Client) fail(ctx context.Context, err error, start time.Time) domain.ProviderResult {
	dur := time.Since(start)
	outcome := "error"
	if errors.Is(err, context.DeadlineExceeded) || dur >= c.timeout {
		outcome = "timeout"
	}
	observability.ObserveProvider(string(c.provider), c.service, outcome, dur)
	log.Warn().
		Str("review_id", domain.ReviewID(ctx)).
		Str("provider", string(c.provider)).
		Str("service", c.service).
		Str("outcome", outcome).
		Dur("duration", dur).
		Err(err).
		Msg("provider call failed")
	return domain.Failure(c.provider, err)
}

// Unconfigured is a Generator that always fails with ErrMissingAPIKey.
type Unconfigured struct{}

func (Unconfigured) Generate(context.Context, string, string) (string, error) {
	return "", ErrMissingAPIKey
}
