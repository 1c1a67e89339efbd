package log

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewContextWithLogger_JSON(t *testing.T) {
	var buf bytes.Buffer
	ctx, cleanup := NewContextWithLogger(context.Background(), Options{JSON: true, Out: &buf})

	FromCtx(ctx).Info().Str("hero", "Layla").Msg("answered")
	FromCtx(ctx).Debug().Msg("hidden")
	cleanup()

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "Layla", entry["hero"])
	assert.Equal(t, "answered", entry["message"])
}

func TestNewContextWithLogger_DebugConsole(t *testing.T) {
	var buf bytes.Buffer
	ctx, cleanup := NewContextWithLogger(context.Background(), Options{Debug: true, Out: &buf})

	FromCtx(ctx).Debug().Msg("routing decision")
	NewGooseLoggerFromCtx(ctx).Printf("OK 00001_heroes.sql\n")
	cleanup()

	out := buf.String()
	assert.Contains(t, out, "routing decision")
	assert.Contains(t, out, "00001_heroes.sql")
}
