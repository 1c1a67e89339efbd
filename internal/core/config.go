package core

import "time"

type SessionConfig interface {
	GetSessionWindow() time.Duration
	GetSessionMaxUsers() int
}

type TelegramConfig interface {
	GetTelegramToken() string
	GetTelegramUsername() string
}
