package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSweeper_InvalidSchedule(t *testing.T) {
	s, _ := newTestStore(t, 0)
	sw := NewSweeper(s, "not a schedule")

	err := sw.Start(context.Background())
	assert.ErrorContains(t, err, "invalid sweep schedule")
}

func TestSweeper_StartShutdown(t *testing.T) {
	s, _ := newTestStore(t, 0)
	sw := NewSweeper(s, "@every 1h")

	ctx := context.Background()
	require.NoError(t, sw.Start(ctx))
	assert.Len(t, sw.cron.Entries(), 1)
	require.NoError(t, sw.Shutdown(ctx))
}
