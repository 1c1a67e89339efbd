// Package session keeps the short-term conversation memory of every user.
//
// Each user owns a partition: an append-only, chronologically ordered list of
// message texts. Records older than the configured window are pruned lazily,
// under the partition lock, before every read or write of that partition.
package session

import (
	"context"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sandevgo/heroguide/internal/core"
	"github.com/sandevgo/heroguide/pkg/log"
)

const (
	DefaultWindow   = time.Hour
	DefaultMaxUsers = 10000
)

type partition struct {
	mu   sync.Mutex
	msgs []core.Message
}

// prune drops expired records. Caller holds p.mu.
func (p *partition) prune(now time.Time, window time.Duration) {
	kept := p.msgs[:0:0]
	for _, m := range p.msgs {
		if now.Sub(m.Timestamp) < window {
			kept = append(kept, m)
		}
	}
	p.msgs = kept
}

type Store struct {
	window time.Duration
	now    func() time.Time

	mu    sync.Mutex // serializes partition creation and removal
	parts *lru.Cache[string, *partition]
}

type Option func(*Store)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

func NewStore(cfg core.SessionConfig, opts ...Option) (*Store, error) {
	window := cfg.GetSessionWindow()
	if window <= 0 {
		window = DefaultWindow
	}
	maxUsers := cfg.GetSessionMaxUsers()
	if maxUsers <= 0 {
		maxUsers = DefaultMaxUsers
	}

	parts, err := lru.New[string, *partition](maxUsers)
	if err != nil {
		return nil, err
	}

	s := &Store{
		window: window,
		now:    time.Now,
		parts:  parts,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// acquire returns the user's partition with its lock held, or nil when the
// user has none and create is false. Lock order is s.mu then p.mu.
func (s *Store) acquire(userID string, create bool) *partition {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.parts.Get(userID)
	if !ok {
		if !create {
			return nil
		}
		p = &partition{}
		s.parts.Add(userID, p)
	}
	p.mu.Lock()
	return p
}

// Append prunes the user's partition and records text with the current time.
func (s *Store) Append(ctx context.Context, userID, text string) {
	p := s.acquire(userID, true)
	defer p.mu.Unlock()

	now := s.now()
	p.prune(now, s.window)
	p.msgs = append(p.msgs, core.Message{Text: text, Timestamp: now})

	log.FromCtx(ctx).Debug().
		Str("user", userID).
		Int("size", len(p.msgs)).
		Msg("appended session message")
}

// ContextFor returns the user's unexpired texts, oldest first.
func (s *Store) ContextFor(ctx context.Context, userID string) []string {
	p := s.acquire(userID, false)
	if p == nil {
		return nil
	}
	defer p.mu.Unlock()

	p.prune(s.now(), s.window)
	texts := make([]string, len(p.msgs))
	for i, m := range p.msgs {
		texts[i] = m.Text
	}
	return texts
}

// Forget drops the user's partition.
func (s *Store) Forget(ctx context.Context, userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.parts.Remove(userID)
}

// Len returns the number of unexpired records for the user.
func (s *Store) Len(userID string) int {
	p := s.acquire(userID, false)
	if p == nil {
		return 0
	}
	defer p.mu.Unlock()

	p.prune(s.now(), s.window)
	return len(p.msgs)
}

// Users returns how many partitions are tracked.
func (s *Store) Users() int {
	return s.parts.Len()
}

// Sweep removes partitions whose records have all expired and
// returns how many were removed.
func (s *Store) Sweep(ctx context.Context) int {
	removed := 0
	for _, userID := range s.parts.Keys() {
		p, ok := s.parts.Peek(userID)
		if !ok {
			continue
		}

		p.mu.Lock()
		p.prune(s.now(), s.window)
		empty := len(p.msgs) == 0
		p.mu.Unlock()

		if !empty {
			continue
		}

		s.mu.Lock()
		// A concurrent Append may have replaced or refilled the partition.
		if cur, ok := s.parts.Peek(userID); ok && cur == p {
			p.mu.Lock()
			if len(p.msgs) == 0 {
				s.parts.Remove(userID)
				removed++
			}
			p.mu.Unlock()
		}
		s.mu.Unlock()
	}

	log.FromCtx(ctx).Debug().
		Int("removed", removed).
		Int("users", s.parts.Len()).
		Msg("swept idle sessions")
	return removed
}
