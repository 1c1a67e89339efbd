package llm

import (
	"context"
	"fmt"
	"sort"

	"github.com/sandevgo/heroguide/internal/config"
	"github.com/sashabaranov/go-openai"
)

// huggingFaceModels are text generation models served by the free inference API.
var huggingFaceModels = []string{
	"gpt2",
	"distilgpt2",
	"HuggingFaceH4/zephyr-7b-beta",
	"mistralai/Mistral-7B-Instruct-v0.2",
}

// ListModels returns the model IDs a provider offers, sorted.
func ListModels(ctx context.Context, provider, apiKey string) ([]string, error) {
	var cfg openai.ClientConfig
	switch provider {
	case config.ProviderHuggingFace:
		return append([]string(nil), huggingFaceModels...), nil
	case config.ProviderOpenAI:
		cfg = openai.DefaultConfig(apiKey)
	case config.ProviderOpenRouter:
		cfg = openai.DefaultConfig(apiKey)
		cfg.BaseURL = defaultOpenRouterURL
	default:
		return nil, fmt.Errorf("unknown llm provider: %s", provider)
	}
	return listModels(ctx, openai.NewClientWithConfig(cfg))
}

func listModels(ctx context.Context, client *openai.Client) ([]string, error) {
	list, err := client.ListModels(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list models: %w", err)
	}

	ids := make([]string, 0, len(list.Models))
	for _, m := range list.Models {
		ids = append(ids, m.ID)
	}
	sort.Strings(ids)
	return ids, nil
}
