// Package jsonfile stores the hero table as a single JSON object on disk,
// keyed by hero name.
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sandevgo/heroguide/internal/core"
	"github.com/sandevgo/heroguide/pkg/log"
)

const DefaultDebounce = 250 * time.Millisecond

type FileStore struct {
	path     string
	debounce time.Duration
	mu       sync.RWMutex
}

func NewFileStore(path string) *FileStore {
	return &FileStore{
		path:     path,
		debounce: DefaultDebounce,
	}
}

func (s *FileStore) Path() string {
	return s.path
}

// Load returns an empty table when the file does not exist yet.
func (s *FileStore) Load(ctx context.Context) (map[string]core.Hero, error) {
	s.mu.RLock()
	data, err := os.ReadFile(s.path)
	s.mu.RUnlock()

	if err != nil {
		if os.IsNotExist(err) {
			log.FromCtx(ctx).Warn().Str("path", s.path).Msg("knowledge file not found, starting empty")
			return map[string]core.Hero{}, nil
		}
		return nil, fmt.Errorf("failed to read knowledge file: %w", err)
	}

	return Decode(data)
}

// Save writes the table through a temp file and rename, so a watcher never
// sees a half-written file.
func (s *FileStore) Save(ctx context.Context, heroes map[string]core.Hero) error {
	data, err := Encode(heroes)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".heroes-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write knowledge file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close knowledge file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("failed to chmod knowledge file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to replace knowledge file: %w", err)
	}

	log.FromCtx(ctx).Debug().Str("path", s.path).Int("heroes", len(heroes)).Msg("knowledge file saved")
	return nil
}

// Watch emits the full table each time the file changes. Bursts of events are
// debounced and unparsable intermediate states are skipped. The channel is
// closed when ctx is done.
func (s *FileStore) Watch(ctx context.Context) (<-chan map[string]core.Hero, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	// Editors and Save replace the file, so watch the directory and filter.
	if err := watcher.Add(filepath.Dir(s.path)); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", filepath.Dir(s.path), err)
	}

	updates := make(chan map[string]core.Hero)
	go s.watchLoop(ctx, watcher, updates)
	return updates, nil
}

func (s *FileStore) watchLoop(ctx context.Context, watcher *fsnotify.Watcher, updates chan<- map[string]core.Hero) {
	logger := log.FromCtx(ctx)
	defer close(updates)
	defer watcher.Close()

	target := filepath.Clean(s.path)
	timer := time.NewTimer(s.debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			timer.Stop()
			return

		case ev, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			timer.Reset(s.debounce)

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			logger.Warn().Err(err).Msg("knowledge file watcher error")

		case <-timer.C:
			s.mu.RLock()
			data, err := os.ReadFile(s.path)
			s.mu.RUnlock()
			if err != nil {
				logger.Warn().Err(err).Msg("failed to read changed knowledge file")
				continue
			}
			heroes, err := Decode(data)
			if err != nil {
				logger.Warn().Err(err).Msg("ignoring invalid knowledge file")
				continue
			}

			select {
			case updates <- heroes:
			case <-ctx.Done():
				return
			}
		}
	}
}

// Decode parses the on-disk format: {"Layla": {"role": ..., "counters": [...], "tips": ...}}.
func Decode(data []byte) (map[string]core.Hero, error) {
	heroes := make(map[string]core.Hero)
	if err := json.Unmarshal(data, &heroes); err != nil {
		return nil, fmt.Errorf("failed to parse knowledge file: %w", err)
	}
	for name, h := range heroes {
		if h.Name == "" {
			h.Name = name
			heroes[name] = h
		}
	}
	return heroes, nil
}

func Encode(heroes map[string]core.Hero) ([]byte, error) {
	out := make(map[string]core.Hero, len(heroes))
	for name, h := range heroes {
		h.Name = ""
		out[name] = h
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal knowledge file: %w", err)
	}
	return data, nil
}
