package core

import "context"

type SessionMemory interface {
	Append(ctx context.Context, userID, text string)
	ContextFor(ctx context.Context, userID string) []string
	Forget(ctx context.Context, userID string)
}
