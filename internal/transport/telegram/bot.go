package telegram

import (
	"context"
	"fmt"
	"time"

	"github.com/sandevgo/heroguide/internal/core"
	"github.com/sandevgo/heroguide/internal/service/command"
	"github.com/sandevgo/heroguide/internal/service/gate"
	"github.com/sandevgo/heroguide/internal/service/router"
	"github.com/sandevgo/heroguide/pkg/log"
	tele "gopkg.in/telebot.v3"
)

const baseContextKey = "base_context"

// NewAPI connects to Telegram. The client is shared by the bot and the photo fetcher.
func NewAPI(cfg core.TelegramConfig) (*tele.Bot, error) {
	pref := tele.Settings{
		Token:  cfg.GetTelegramToken(),
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}

	b, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("failed to create telegram bot: %w", err)
	}
	return b, nil
}

type handler interface {
	Handle(ctx context.Context, ev core.Event) (router.Reply, bool)
}

type Bot struct {
	bot      *tele.Bot
	router   handler
	commands core.CmdRouter
	gate     *gate.Gate
	sender   *sender
}

func NewBot(
	ctx context.Context,
	b *tele.Bot,
	cfg core.TelegramConfig,
	r *router.Router,
	commands core.CmdRouter,
	g *gate.Gate,
) *Bot {
	bot := &Bot{
		bot:      b,
		router:   r,
		commands: commands,
		gate:     g,
		sender:   newSender(b),
	}

	username := cfg.GetTelegramUsername()
	if username == "" && b.Me != nil {
		username = b.Me.Username
	}
	g.SetIdentity(username)
	log.FromCtx(ctx).Info().Str("username", username).Msg("telegram identity resolved")

	// Use context from Signal with logger
	b.Use(func(next tele.HandlerFunc) tele.HandlerFunc {
		return func(c tele.Context) error {
			c.Set(baseContextKey, ctx)
			return next(c)
		}
	})

	b.Handle(tele.OnText, bot.handleMessage)
	b.Handle(tele.OnPhoto, bot.handleMessage)

	return bot
}

func (b *Bot) Start(ctx context.Context) error {
	log.FromCtx(ctx).Info().Msg("starting telegram bot")
	b.bot.Start()
	return nil
}

func (b *Bot) Shutdown(ctx context.Context) error {
	b.bot.Stop()
	return nil
}

func (b *Bot) handleMessage(c tele.Context) error {
	ctx, ok := c.Get(baseContextKey).(context.Context)
	if !ok {
		ctx = context.Background()
	}
	msg := c.Message()
	if msg == nil {
		return nil
	}

	ev := toEvent(msg)
	logger := log.FromCtx(ctx).With().Str("sender", ev.Sender).Logger()
	ctx = logger.WithContext(ctx)

	if b.gate.Allow(ev) {
		_ = c.Notify(tele.Typing)
	}

	text, markdown, ok := b.dispatch(ctx, ev)
	if !ok {
		return nil
	}
	if markdown {
		return b.sender.sendMarkdown(ctx, c.Recipient(), msg, text)
	}
	return b.sender.sendPlain(ctx, c.Recipient(), msg, text)
}

// dispatch picks the reply for ev: a registered command, or the router for
// everything else, unregistered slash text included.
func (b *Bot) dispatch(ctx context.Context, ev core.Event) (text string, markdown bool, ok bool) {
	if ev.Kind == core.EventText && command.IsCommand(ev.Text) && b.gate.Allow(ev) {
		if out, handled := b.commands.Execute(ctx, ev.Sender, ev.Text); handled {
			return out, true, true
		}
	}

	reply, ok := b.router.Handle(ctx, ev)
	if !ok {
		return "", false, false
	}
	return reply.Text, reply.Source == router.SourceGenerative, true
}
