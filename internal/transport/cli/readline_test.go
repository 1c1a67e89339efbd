package cli

import (
	"context"
	"testing"

	"github.com/sandevgo/heroguide/internal/core"
	"github.com/sandevgo/heroguide/internal/service/router"
	"github.com/stretchr/testify/assert"
)

type fakeHandler struct {
	events []core.Event
	reply  router.Reply
}

func (f *fakeHandler) Handle(ctx context.Context, ev core.Event) (router.Reply, bool) {
	f.events = append(f.events, ev)
	return f.reply, true
}

type fakeCommands struct{}

func (fakeCommands) Execute(ctx context.Context, sessionID, input string) (string, bool) {
	if input == "/heroes" {
		return "Layla", true
	}
	return "", false
}

func (fakeCommands) ListCommands() []core.Command { return nil }

func TestReadLine_Respond(t *testing.T) {
	h := &fakeHandler{reply: router.Reply{Text: "Layla\nRole: Mage", Source: router.SourceKnowledge}}
	r := &ReadLine{router: h, commands: fakeCommands{}}
	ctx := context.Background()

	assert.Equal(t, "Layla\nRole: Mage", r.respond(ctx, "layla"))
	if assert.Len(t, h.events, 1) {
		assert.Equal(t, core.ChatDirect, h.events[0].Chat)
		assert.Equal(t, defaultSessionID, h.events[0].Sender)
		assert.Equal(t, "layla", h.events[0].Text)
	}

	assert.Equal(t, "Layla", r.respond(ctx, "/heroes"))
	assert.Len(t, h.events, 1, "commands bypass the router")
}

func TestReadLine_RespondFailureIsHighlighted(t *testing.T) {
	h := &fakeHandler{reply: router.Reply{Text: router.FailureNotice + "complete: timeout", Source: router.SourceFailure}}
	r := &ReadLine{router: h, commands: fakeCommands{}}

	out := r.respond(context.Background(), "how do I beat Eudora")
	assert.Contains(t, out, router.FailureNotice)
	assert.Contains(t, out, "\033[")
}

func TestReadLine_UnknownCommandReachesRouter(t *testing.T) {
	h := &fakeHandler{reply: router.Reply{Text: "no idea", Source: router.SourceGenerative}}
	r := &ReadLine{router: h, commands: fakeCommands{}}

	assert.Equal(t, "no idea", r.respond(context.Background(), "/dance"))
	if assert.Len(t, h.events, 1) {
		assert.Equal(t, "/dance", h.events[0].Text)
	}
}
