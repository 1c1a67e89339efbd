package command

import (
	"context"

	"github.com/sandevgo/heroguide/internal/core"
)

type StartCommand struct {
	formatter *ResponseFormatter
}

func NewStartCommand() *StartCommand {
	return &StartCommand{formatter: NewResponseFormatter()}
}

func (c *StartCommand) Name() string {
	return "start"
}

func (c *StartCommand) Description() string {
	return "Greeting and quick introduction"
}

func (c *StartCommand) Execute(ctx context.Context, sessionID string, args []string) (string, error) {
	return c.formatter.Combine(
		c.formatter.Info("Hi! I'm "+core.HeroName+", your Mobile Legends assistant."),
		"Send me a hero name to get their role, counters and tips, or just ask a question.",
		c.formatter.Tip("you can also send a screenshot of a hero."),
	), nil
}
