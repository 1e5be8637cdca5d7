// Package wiring builds the provider clients and the Aggregator from Config.
package wiring

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"code_reviewer/internal/adapters/gemini"
	"code_reviewer/internal/adapters/llm"
	"code_reviewer/internal/adapters/openai"
	"code_reviewer/internal/app"
	"code_reviewer/internal/domain"
	"code_reviewer/internal/shared"
)

// NewAggregator returns the Aggregator and a close func for any SDK resources.
// A provider without an API key is still wired and fails each call, so the
// relay keeps serving with the other one.
func NewAggregator(ctx context.Context, cfg shared.Config) (*app.Aggregator, func() error, error) {
	closers := []func() error{}
	closeAll := func() error {
		var first error
		for _, c := range closers {
			if err := c(); err != nil && first == nil {
				first = err
			}
		}
		return first
	}

	var primary llm.Generator = llm.Unconfigured{}
	if cfg.OpenAIKey != "" {
		c, err := openai.New(cfg.OpenAIBase, cfg.OpenAIKey, cfg.OpenAIModel)
		if err != nil {
			return nil, closeAll, fmt.Errorf("openai client: %w", err)
		}
		primary = c
	}

	var secondary llm.Generator = llm.Unconfigured{}
	if cfg.GeminiKey != "" {
		switch cfg.GeminiTransport {
		case "sdk":
			c, err := gemini.NewSDK(ctx, cfg.GeminiKey, cfg.GeminiModel)
			if err != nil {
				return nil, closeAll, err
			}
			closers = append(closers, c.Close)
			secondary = c
		case "rest", "":
			c, err := gemini.New(cfg.GeminiBase, cfg.GeminiKey, cfg.GeminiModel)
			if err != nil {
				return nil, closeAll, fmt.Errorf("gemini client: %w", err)
			}
			secondary = c
		default:
			return nil, closeAll, fmt.Errorf("unknown GEMINI_TRANSPORT %q (want rest or sdk)", cfg.GeminiTransport)
		}
	}

	log.Info().
		Str("openai_model", cfg.OpenAIModel).
		Str("gemini_model", cfg.GeminiModel).
		Str("gemini_transport", cfg.GeminiTransport).
		Dur("provider_timeout", cfg.ProviderTimeout).
		Msg("providers wired")

	agg := app.NewAggregator(
		llm.New(domain.PrimaryProvider, "openai", primary, cfg.ProviderTimeout),
		llm.New(domain.SecondaryProvider, "gemini", secondary, cfg.ProviderTimeout),
	)
	return agg, closeAll, nil
}
