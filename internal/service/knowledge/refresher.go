package knowledge

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/sandevgo/heroguide/internal/core"
	"github.com/sandevgo/heroguide/internal/service/metrics"
	"github.com/sandevgo/heroguide/pkg/log"
)

// Watcher is implemented by stores that can push changes as they happen.
type Watcher interface {
	Watch(ctx context.Context) (<-chan map[string]core.Hero, error)
}

// Refresher keeps a Base in sync with its store: on a cron schedule and,
// when the store supports it, on every change notification.
type Refresher struct {
	base     *Base
	store    core.KnowledgeStore
	schedule string
	cron     *cron.Cron
}

func NewRefresher(base *Base, store core.KnowledgeStore, schedule string) *Refresher {
	return &Refresher{
		base:     base,
		store:    store,
		schedule: schedule,
		cron:     cron.New(),
	}
}

// Refresh loads the store and merges it into the base.
func (r *Refresher) Refresh(ctx context.Context) error {
	heroes, err := r.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load knowledge store: %w", err)
	}
	r.base.Merge(heroes)
	metrics.SetKnowledgeEntries(r.base.Len())

	log.FromCtx(ctx).Debug().
		Int("loaded", len(heroes)).
		Int("total", r.base.Len()).
		Msg("knowledge base refreshed")
	return nil
}

func (r *Refresher) Start(ctx context.Context) error {
	logger := log.FromCtx(ctx)

	if r.schedule != "" {
		_, err := r.cron.AddFunc(r.schedule, func() {
			if err := r.Refresh(ctx); err != nil {
				logger.Error().Err(err).Msg("scheduled knowledge refresh failed")
			}
		})
		if err != nil {
			return fmt.Errorf("invalid refresh schedule %q: %w", r.schedule, err)
		}
		r.cron.Start()
	}

	w, ok := r.store.(Watcher)
	if !ok {
		return nil
	}

	updates, err := w.Watch(ctx)
	if err != nil {
		// Scheduled refresh still works without the watcher.
		logger.Warn().Err(err).Msg("failed to watch knowledge store")
		return nil
	}

	logger.Info().Msg("watching knowledge store for changes")
	for heroes := range updates {
		r.base.Merge(heroes)
		metrics.SetKnowledgeEntries(r.base.Len())
		logger.Info().Int("heroes", len(heroes)).Msg("knowledge store changed, merged")
	}
	return nil
}

func (r *Refresher) Shutdown(ctx context.Context) error {
	<-r.cron.Stop().Done()
	return nil
}
