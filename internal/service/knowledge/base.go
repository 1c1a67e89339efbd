package knowledge

import (
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"github.com/sandevgo/heroguide/internal/core"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Base is an exact-match hero table keyed by normalized name.
type Base struct {
	mu     sync.RWMutex
	heroes map[string]core.Hero
}

func NewBase(initial map[string]core.Hero) *Base {
	b := &Base{heroes: make(map[string]core.Hero, len(initial))}
	b.Merge(initial)
	return b
}

// Normalize trims surrounding whitespace and title-cases every word.
func Normalize(raw string) string {
	// A Caser keeps state between calls and must not be shared.
	return cases.Title(language.Und).String(strings.TrimSpace(raw))
}

// DisplayName is the name shown in replies. A name that already starts with a
// capital is kept as written ("X.Borg"), anything else is normalized.
func DisplayName(raw string) string {
	name := strings.TrimSpace(raw)
	if r, _ := utf8.DecodeRuneInString(name); unicode.IsUpper(r) {
		return name
	}
	return Normalize(name)
}

// Lookup treats the whole raw text as a hero name.
func (b *Base) Lookup(raw string) (core.Hero, bool) {
	key := Normalize(raw)
	if key == "" {
		return core.Hero{}, false
	}

	b.mu.RLock()
	h, ok := b.heroes[key]
	b.mu.RUnlock()

	if !ok {
		return core.Hero{}, false
	}
	h.Counters = slices.Clone(h.Counters)
	return h, true
}

// Merge upserts heroes. Keys not present in heroes are left untouched.
func (b *Base) Merge(heroes map[string]core.Hero) {
	if len(heroes) == 0 {
		return
	}

	prepared := make(map[string]core.Hero, len(heroes))
	for name, h := range heroes {
		key := Normalize(name)
		if key == "" {
			continue
		}
		h.Name = DisplayName(name)
		h.Counters = slices.Clone(h.Counters)
		prepared[key] = h
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for key, h := range prepared {
		b.heroes[key] = h
	}
}

// Names returns all display names in alphabetical order.
func (b *Base) Names() []string {
	b.mu.RLock()
	names := make([]string, 0, len(b.heroes))
	for _, h := range b.heroes {
		names = append(names, h.Name)
	}
	b.mu.RUnlock()

	sort.Strings(names)
	return names
}

func (b *Base) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.heroes)
}

// Format renders a hero as the deterministic reply.
func Format(h core.Hero) string {
	return fmt.Sprintf("%s\nRole: %s\nCounters: %s\nTips: %s",
		h.Name, h.Role, strings.Join(h.Counters, ", "), h.Tips)
}
