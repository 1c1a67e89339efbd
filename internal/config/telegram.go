package config

import (
	"context"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/heroguide/pkg/log"
)

type TelegramConfig struct {
	Token string `env:"HERO_TELEGRAM_TOKEN,required,notEmpty"`
	// Username is the bot's own @handle, used to detect mentions in groups.
	// When empty it is taken from getMe at startup.
	Username string `env:"HERO_TELEGRAM_USERNAME"`
}

func NewTelegramConfig(ctx context.Context) *TelegramConfig {
	c := &TelegramConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Telegram config")
	}
	return c
}

func (c TelegramConfig) GetTelegramToken() string {
	return c.Token
}

func (c TelegramConfig) GetTelegramUsername() string {
	return c.Username
}
