package session

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/sandevgo/heroguide/internal/service/metrics"
	"github.com/sandevgo/heroguide/pkg/log"
)

// Sweeper periodically drops idle partitions from a Store.
type Sweeper struct {
	store    *Store
	schedule string
	cron     *cron.Cron
}

func NewSweeper(store *Store, schedule string) *Sweeper {
	return &Sweeper{
		store:    store,
		schedule: schedule,
		cron:     cron.New(),
	}
}

func (s *Sweeper) Start(ctx context.Context) error {
	logger := log.FromCtx(ctx)

	_, err := s.cron.AddFunc(s.schedule, func() {
		s.store.Sweep(ctx)
		metrics.SetSessions(s.store.Users())
	})
	if err != nil {
		return fmt.Errorf("invalid sweep schedule %q: %w", s.schedule, err)
	}

	logger.Info().Str("schedule", s.schedule).Msg("starting session sweeper")
	s.cron.Start()
	return nil
}

func (s *Sweeper) Shutdown(ctx context.Context) error {
	<-s.cron.Stop().Done()
	return nil
}
