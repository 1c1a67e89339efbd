package telegram

import (
	"strconv"
	"strings"

	"github.com/sandevgo/heroguide/internal/core"
	tele "gopkg.in/telebot.v3"
)

// SenderID is the session key of a Telegram user.
func SenderID(u *tele.User) string {
	if u == nil {
		return "telegram-unknown"
	}
	return "telegram-" + strconv.FormatInt(u.ID, 10)
}

func toEvent(m *tele.Message) core.Event {
	sender := SenderID(m.Sender)
	chat := chatKind(m)

	if m.Photo != nil {
		ref := core.AttachmentRef{FileID: m.Photo.FileID, Size: m.Photo.FileSize}
		ev := core.NewPhotoEvent(sender, chat, ref, mentions(m, m.CaptionEntities))
		ev.Text = m.Caption
		return ev
	}
	return core.NewTextEvent(sender, chat, m.Text, mentions(m, m.Entities))
}

func chatKind(m *tele.Message) core.ChatKind {
	if m.Chat != nil && m.Chat.Type == tele.ChatPrivate {
		return core.ChatDirect
	}
	return core.ChatGroup
}

// mentions collects the usernames addressed by a message: @mentions,
// mentions of users without a username, and the /command@bot suffix.
func mentions(m *tele.Message, entities tele.Entities) []string {
	var out []string
	for _, e := range entities {
		switch e.Type {
		case tele.EntityMention:
			if text := m.EntityText(e); text != "" {
				out = append(out, text)
			}
		case tele.EntityTMention:
			if e.User != nil && e.User.Username != "" {
				out = append(out, e.User.Username)
			}
		case tele.EntityCommand:
			if _, bot, ok := strings.Cut(m.EntityText(e), "@"); ok && bot != "" {
				out = append(out, bot)
			}
		}
	}
	return out
}
