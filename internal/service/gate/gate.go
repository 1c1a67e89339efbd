package gate

import (
	"strings"
	"sync/atomic"

	"github.com/sandevgo/heroguide/internal/core"
)

// Gate decides whether an inbound event is processed at all.
// Direct chats always pass; group messages pass only when they mention the bot.
type Gate struct {
	identity atomic.Pointer[string]
}

func New(username string) *Gate {
	g := &Gate{}
	g.SetIdentity(username)
	return g
}

// SetIdentity replaces the bot username matched against group mentions.
// Transports call it once the platform has reported the bot's own account.
func (g *Gate) SetIdentity(username string) {
	name := canonical(username)
	g.identity.Store(&name)
}

func (g *Gate) Identity() string {
	if p := g.identity.Load(); p != nil {
		return *p
	}
	return ""
}

func (g *Gate) Allow(ev core.Event) bool {
	if ev.Chat != core.ChatGroup {
		return true
	}

	self := g.Identity()
	if self == "" {
		return false
	}

	for _, m := range ev.Mentions {
		if canonical(m) == self {
			return true
		}
	}
	return false
}

func canonical(username string) string {
	return strings.ToLower(strings.TrimPrefix(strings.TrimSpace(username), "@"))
}
