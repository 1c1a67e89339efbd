package core

import "context"

// KnowledgeStore persists the hero table. Keys are canonical hero names.
type KnowledgeStore interface {
	Load(ctx context.Context) (map[string]Hero, error)
	Save(ctx context.Context, heroes map[string]Hero) error
}

type KnowledgeBase interface {
	Lookup(raw string) (Hero, bool)
	Merge(heroes map[string]Hero)
	Names() []string
}
