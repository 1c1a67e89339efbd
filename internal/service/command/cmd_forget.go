package command

import (
	"context"

	"github.com/sandevgo/heroguide/internal/core"
)

type ForgetCommand struct {
	memory    core.SessionMemory
	formatter *ResponseFormatter
}

func NewForgetCommand(memory core.SessionMemory) *ForgetCommand {
	return &ForgetCommand{
		memory:    memory,
		formatter: NewResponseFormatter(),
	}
}

func (c *ForgetCommand) Name() string {
	return "forget"
}

func (c *ForgetCommand) Description() string {
	return "Clear our recent conversation"
}

func (c *ForgetCommand) Execute(ctx context.Context, sessionID string, args []string) (string, error) {
	c.memory.Forget(ctx, sessionID)
	return c.formatter.Success("Conversation cleared"), nil
}
