package config

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/heroguide/pkg/log"
)

const (
	ProviderHuggingFace = "huggingface"
	ProviderOpenAI      = "openai"
	ProviderOpenRouter  = "openrouter"
)

type LLMConfig struct {
	Provider    string `env:"HERO_LLM_PROVIDER" envDefault:"huggingface"`
	Model       string `env:"HERO_LLM_MODEL" envDefault:"gpt2"`
	VisionModel string `env:"HERO_LLM_VISION_MODEL"`
	APIKey      string `env:"HERO_LLM_API_KEY"`
	BaseURL     string `env:"HERO_LLM_BASE_URL"`
}

func NewLLMConfig(ctx context.Context) *LLMConfig {
	c := &LLMConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse LLM config")
	}
	return c
}

// HasVision reports whether an image model is configured.
func (c LLMConfig) HasVision() bool {
	return c.VisionModel != "" && c.Provider != ProviderHuggingFace
}
