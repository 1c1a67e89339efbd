package gate

import (
	"testing"

	"github.com/sandevgo/heroguide/internal/core"
	"github.com/stretchr/testify/assert"
)

func TestGate_Allow(t *testing.T) {
	tests := []struct {
		name     string
		identity string
		event    core.Event
		want     bool
	}{
		{
			name:     "direct always passes",
			identity: "heroguide_bot",
			event:    core.NewTextEvent("u1", core.ChatDirect, "layla", nil),
			want:     true,
		},
		{
			name:     "direct passes without identity",
			identity: "",
			event:    core.NewTextEvent("u1", core.ChatDirect, "layla", nil),
			want:     true,
		},
		{
			name:     "group without mention",
			identity: "heroguide_bot",
			event:    core.NewTextEvent("u1", core.ChatGroup, "layla", nil),
			want:     false,
		},
		{
			name:     "group with other mention",
			identity: "heroguide_bot",
			event:    core.NewTextEvent("u1", core.ChatGroup, "layla", []string{"@someone"}),
			want:     false,
		},
		{
			name:     "group with own mention",
			identity: "heroguide_bot",
			event:    core.NewTextEvent("u1", core.ChatGroup, "@heroguide_bot layla", []string{"@heroguide_bot"}),
			want:     true,
		},
		{
			name:     "mention case and prefix ignored",
			identity: "@HeroGuide_Bot",
			event:    core.NewTextEvent("u1", core.ChatGroup, "hi", []string{"heroguide_BOT"}),
			want:     true,
		},
		{
			name:     "group photo with caption mention",
			identity: "heroguide_bot",
			event:    core.NewPhotoEvent("u1", core.ChatGroup, core.AttachmentRef{FileID: "f"}, []string{"@heroguide_bot"}),
			want:     true,
		},
		{
			name:     "group photo without mention",
			identity: "heroguide_bot",
			event:    core.NewPhotoEvent("u1", core.ChatGroup, core.AttachmentRef{FileID: "f"}, nil),
			want:     false,
		},
		{
			name:     "group rejected when identity unknown",
			identity: "",
			event:    core.NewTextEvent("u1", core.ChatGroup, "hi", []string{"@"}),
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New(tt.identity)
			assert.Equal(t, tt.want, g.Allow(tt.event))
		})
	}
}

func TestGate_SetIdentity(t *testing.T) {
	g := New("")
	ev := core.NewTextEvent("u1", core.ChatGroup, "hi", []string{"@late_bot"})

	assert.False(t, g.Allow(ev))

	g.SetIdentity("late_bot")
	assert.Equal(t, "late_bot", g.Identity())
	assert.True(t, g.Allow(ev))
}
