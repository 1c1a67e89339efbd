package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/sandevgo/heroguide/internal/config"
	"github.com/sandevgo/heroguide/internal/core"
	"github.com/sandevgo/heroguide/internal/service/router"
	"github.com/sandevgo/heroguide/pkg/log"
)

const defaultSessionID = "cli-local"

type Handler interface {
	Handle(ctx context.Context, ev core.Event) (router.Reply, bool)
}

type ReadLine struct {
	router   Handler
	commands core.CmdRouter
	rl       *readline.Instance
}

func NewReadLine(r Handler, commands core.CmdRouter, cfg *config.AppConfig) (*ReadLine, error) {
	if err := os.MkdirAll(cfg.RuntimePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create runtime directory: %w", err)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "hero> ",
		HistoryFile:     cfg.GetInputHistoryPath(),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete:    newCompleter(commands),
	})
	if err != nil {
		return nil, err
	}

	return &ReadLine{
		router:   r,
		commands: commands,
		rl:       rl,
	}, nil
}

func newCompleter(commands core.CmdRouter) readline.AutoCompleter {
	items := make([]readline.PrefixCompleterInterface, 0)
	for _, cmd := range commands.ListCommands() {
		items = append(items, readline.PcItem("/"+cmd.Name()))
	}
	return readline.NewPrefixCompleter(items...)
}

func (r *ReadLine) Start(ctx context.Context) error {
	logger := log.FromCtx(ctx)
	logger.Info().Msg("console chat started. Type a hero name, a question or 'exit'.")

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		line, err := r.rl.Readline()
		if err != nil {
			if err == readline.ErrInterrupt {
				if len(line) == 0 {
					return nil
				}
				continue
			} else if err == io.EOF {
				return nil
			}
			return err
		}

		line = strings.TrimSpace(line)
		if line == "exit" {
			return nil
		}
		if line == "" {
			continue
		}

		fmt.Fprintln(r.rl.Stdout(), r.respond(ctx, line))
	}
}

// respond answers one console line. The console is a direct chat, so the gate always passes.
func (r *ReadLine) respond(ctx context.Context, line string) string {
	if out, ok := r.commands.Execute(ctx, defaultSessionID, line); ok {
		return out
	}

	reply, ok := r.router.Handle(ctx, core.NewTextEvent(defaultSessionID, core.ChatDirect, line, nil))
	if !ok {
		return ""
	}
	if reply.Source == router.SourceFailure {
		return "\033[38;5;203m" + reply.Text + "\033[0m"
	}
	return reply.Text
}

func (r *ReadLine) Shutdown(ctx context.Context) error {
	if r.rl != nil {
		return r.rl.Close()
	}
	return nil
}
