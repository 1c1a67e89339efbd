package installer

import "github.com/sandevgo/heroguide/internal/config"

const (
	envProvider    = "HERO_LLM_PROVIDER"
	envModel       = "HERO_LLM_MODEL"
	envVisionModel = "HERO_LLM_VISION_MODEL"
	envAPIKey      = "HERO_LLM_API_KEY"
	envTelegram    = "HERO_ENABLE_TELEGRAM"
	envCLI         = "HERO_ENABLE_CLI"
	envToken       = "HERO_TELEGRAM_TOKEN"
	envUsername    = "HERO_TELEGRAM_USERNAME"
	envDebug       = "HERO_DEBUG"

	// channel is wizard-only and never written to .env.
	channelKey = "channel"
)

type InstallState struct {
	EnvVars map[string]string
	scratch map[string]string
}

func NewInstallState() *InstallState {
	return &InstallState{
		EnvVars: make(map[string]string),
		scratch: make(map[string]string),
	}
}

func (s *InstallState) Provider() string {
	if p := s.EnvVars[envProvider]; p != "" {
		return p
	}
	return config.ProviderHuggingFace
}

func (s *InstallState) UsesTelegram() bool {
	return s.scratch[channelKey] != channelConsole
}
