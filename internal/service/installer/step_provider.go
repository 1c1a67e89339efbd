package installer

import (
	"strings"

	"github.com/sandevgo/heroguide/internal/config"
)

var providerChoices = map[string]string{
	"Hugging Face": config.ProviderHuggingFace,
	"OpenAI":       config.ProviderOpenAI,
	"OpenRouter":   config.ProviderOpenRouter,
}

func NewProviderStep() Step {
	return &choiceStep{
		title:   "Select your AI Provider:",
		choices: []string{"Hugging Face", "OpenAI", "OpenRouter"},
		onSelect: func(choice string, state *InstallState) {
			p, ok := providerChoices[choice]
			if !ok {
				p = strings.ToLower(choice)
			}
			state.EnvVars[envProvider] = p
		},
	}
}
