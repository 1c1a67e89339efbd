package command

import (
	"context"
	"fmt"

	"github.com/sandevgo/heroguide/internal/core"
)

type HeroesCommand struct {
	kb        core.KnowledgeBase
	formatter *ResponseFormatter
}

func NewHeroesCommand(kb core.KnowledgeBase) *HeroesCommand {
	return &HeroesCommand{
		kb:        kb,
		formatter: NewResponseFormatter(),
	}
}

func (c *HeroesCommand) Name() string {
	return "heroes"
}

func (c *HeroesCommand) Description() string {
	return "List heroes I know by heart"
}

func (c *HeroesCommand) Execute(ctx context.Context, sessionID string, args []string) (string, error) {
	names := c.kb.Names()
	if len(names) == 0 {
		return c.formatter.Info("The hero database is empty"), nil
	}
	return c.formatter.Combine(
		c.formatter.Info(fmt.Sprintf("Known heroes (%d)", len(names))),
		c.formatter.List(names),
		c.formatter.Tip("send just the name to get the details."),
	), nil
}
