package command

import (
	"github.com/sandevgo/heroguide/internal/core"
)

// NewRouter wires the chat commands shared by every transport.
func NewRouter(kb core.KnowledgeBase, memory core.SessionMemory) *Router {
	r := New([]core.Command{
		NewStartCommand(),
		NewHeroesCommand(kb),
		NewForgetCommand(memory),
	})
	r.Register(NewHelpCommand(r))
	return r
}
