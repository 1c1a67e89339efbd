package command

import (
	"context"
	"sort"
	"strings"

	"github.com/sandevgo/heroguide/internal/core"
	"github.com/sandevgo/heroguide/internal/service/metrics"
	"github.com/sandevgo/heroguide/pkg/log"
)

type Router struct {
	commands map[string]core.Command
}

func New(commands []core.Command) *Router {
	c := &Router{
		commands: make(map[string]core.Command),
	}
	c.Register(commands...)
	return c
}

func (c *Router) Register(commands ...core.Command) {
	for _, cmd := range commands {
		c.commands[cmd.Name()] = cmd
	}
}

// IsCommand reports whether input is addressed to the command router.
func IsCommand(input string) bool {
	return strings.HasPrefix(strings.TrimSpace(input), "/")
}

// Execute runs a slash command. Group chats address commands as /name@bot;
// the suffix is dropped here, the mention itself is checked by the gate.
func (c *Router) Execute(ctx context.Context, sessionID, input string) (string, bool) {
	if !IsCommand(input) {
		return "", false
	}

	parts := strings.Fields(input)
	name := strings.TrimPrefix(parts[0], "/")
	if at := strings.IndexByte(name, '@'); at >= 0 {
		name = name[:at]
	}
	name = strings.ToLower(name)
	args := parts[1:]

	cmd, ok := c.commands[name]
	if !ok {
		// Unregistered slash text is an ordinary message.
		log.FromCtx(ctx).Debug().Str("command", name).Msg("unknown command passed through")
		return "", false
	}
	metrics.ObserveRoute(metrics.OutcomeCommand)

	result, err := cmd.Execute(ctx, sessionID, args)
	if err != nil {
		log.FromCtx(ctx).Warn().Err(err).Str("command", name).Msg("command failed")
		return NewResponseFormatter().Error(name, err), true
	}
	return result, true
}

func (c *Router) ListCommands() []core.Command {
	res := make([]core.Command, 0, len(c.commands))
	for _, cmd := range c.commands {
		res = append(res, cmd)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Name() < res[j].Name() })
	return res
}
