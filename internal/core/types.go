package core

import "time"

const (
	HeroName          = "HeroGuide"
	HeroUserAgent     = "HeroGuide-Bot/0.1"
	HeroRepositoryURL = "https://github.com/sandevgo/heroguide"
	HeroVersion       = "0.1.0"
)

type ChatKind string

const (
	ChatDirect ChatKind = "direct"
	ChatGroup  ChatKind = "group"
)

type EventKind string

const (
	EventText  EventKind = "text"
	EventPhoto EventKind = "photo"
)

// AttachmentRef identifies a media attachment on the chat platform.
type AttachmentRef struct {
	FileID string
	Size   int64
}

// Event is a single inbound chat message, already stripped of transport details.
type Event struct {
	Kind       EventKind
	Sender     string
	Chat       ChatKind
	Text       string
	Mentions   []string
	Attachment AttachmentRef
}

func NewTextEvent(sender string, chat ChatKind, text string, mentions []string) Event {
	return Event{
		Kind:     EventText,
		Sender:   sender,
		Chat:     chat,
		Text:     text,
		Mentions: mentions,
	}
}

func NewPhotoEvent(sender string, chat ChatKind, ref AttachmentRef, mentions []string) Event {
	return Event{
		Kind:       EventPhoto,
		Sender:     sender,
		Chat:       chat,
		Mentions:   mentions,
		Attachment: ref,
	}
}

// Message is one remembered text of a user session. Never mutated after creation.
type Message struct {
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// Hero is the static record the knowledge base answers with.
type Hero struct {
	Name     string   `json:"name,omitempty"`
	Role     string   `json:"role"`
	Counters []string `json:"counters"`
	Tips     string   `json:"tips"`
}
