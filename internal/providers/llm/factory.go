package llm

import (
	"context"
	"fmt"

	"github.com/sandevgo/heroguide/internal/config"
	"github.com/sandevgo/heroguide/internal/core"
	"github.com/sandevgo/heroguide/pkg/log"
)

// NewProvider creates the text generation backend selected in configuration.
func NewProvider(ctx context.Context, cfg *config.LLMConfig) (core.GenerativeClient, error) {
	log.FromCtx(ctx).Info().
		Str("provider", cfg.Provider).
		Str("model", cfg.Model).
		Msg("starting llm provider")

	switch cfg.Provider {
	case config.ProviderHuggingFace:
		return NewHuggingFace(cfg.BaseURL, cfg.APIKey, cfg.Model), nil
	case config.ProviderOpenAI:
		return NewOpenAI(cfg.APIKey, cfg.BaseURL, cfg.Model, cfg.VisionModel), nil
	case config.ProviderOpenRouter:
		return NewOpenRouter(cfg.APIKey, cfg.BaseURL, cfg.Model, cfg.VisionModel), nil
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", cfg.Provider)
	}
}

// NewSummarizer returns nil when the configured provider has no vision model.
// Images then degrade to the fallback summary.
func NewSummarizer(ctx context.Context, cfg *config.LLMConfig) core.ImageSummarizer {
	if !cfg.HasVision() {
		log.FromCtx(ctx).Warn().
			Str("provider", cfg.Provider).
			Msg("no vision model configured, images will not be analyzed")
		return nil
	}

	log.FromCtx(ctx).Info().Str("model", cfg.VisionModel).Msg("starting vision provider")
	if cfg.Provider == config.ProviderOpenRouter {
		return NewOpenRouter(cfg.APIKey, cfg.BaseURL, cfg.Model, cfg.VisionModel)
	}
	return NewOpenAI(cfg.APIKey, cfg.BaseURL, cfg.Model, cfg.VisionModel)
}
