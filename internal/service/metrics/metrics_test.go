package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveRoute(t *testing.T) {
	before := testutil.ToFloat64(routedEventsTotal.WithLabelValues(OutcomeKnowledge))
	ObserveRoute(OutcomeKnowledge)
	after := testutil.ToFloat64(routedEventsTotal.WithLabelValues(OutcomeKnowledge))

	assert.Equal(t, before+1, after)
}

func TestServer_ExposesMetrics(t *testing.T) {
	SetSessions(7)

	s := NewServer(":0")
	rec := httptest.NewRecorder()
	s.srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "heroguide_tracked_sessions 7"))
}
