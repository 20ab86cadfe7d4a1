package prometheus

import (
	"strings"
	"testing"
	"time"

	"github.com/bnema/slotctl/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorderCountsDecisions(t *testing.T) {
	t.Parallel()

	recorder := NewRecorder(prometheus.NewRegistry())
	recorder.RecordDecision(domain.ActivationImmediate)
	recorder.RecordDecision(domain.ActivationEnqueue)
	recorder.RecordDecision(domain.ActivationEnqueue)

	expected := `
		# HELP slotctl_decisions_total Total number of slot admission decisions by kind
		# TYPE slotctl_decisions_total counter
		slotctl_decisions_total{kind="activate_immediate"} 1
		slotctl_decisions_total{kind="enqueue"} 2
	`
	require.NoError(t, testutil.CollectAndCompare(recorder.decisions, strings.NewReader(expected)))
}

func TestRecorderTracksOccupancy(t *testing.T) {
	t.Parallel()

	recorder := NewRecorder(prometheus.NewRegistry())
	recorder.RecordOccupancy(domain.Occupy("auto-1", domain.SessionTypeAutomation, time.Now()))

	assert.Equal(t, 1.0, testutil.ToFloat64(recorder.occupied.WithLabelValues("automation")))
	assert.Equal(t, 0.0, testutil.ToFloat64(recorder.occupied.WithLabelValues("chat")))

	recorder.RecordOccupancy(domain.SlotState{})
	assert.Equal(t, 0.0, testutil.ToFloat64(recorder.occupied.WithLabelValues("automation")))
}

func TestRecorderTimeoutsAndLifetimes(t *testing.T) {
	t.Parallel()

	registry := prometheus.NewRegistry()
	recorder := NewRecorder(registry)
	recorder.RecordTimeout(domain.SessionTypeChat)
	recorder.RecordSessionEnded(domain.SessionTypeChat, domain.SessionStatusTimedOut, 6*time.Minute)
	recorder.RecordSessionEnded(domain.SessionTypeAutomation, domain.SessionStatusCompleted, -time.Second)

	assert.Equal(t, 1.0, testutil.ToFloat64(recorder.timeouts.WithLabelValues("chat")))
	assert.Equal(t, 2, testutil.CollectAndCount(recorder.lifetime))

	count, err := testutil.GatherAndCount(registry, "slotctl_session_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestNewRecorderPanicsOnDuplicateRegistration(t *testing.T) {
	t.Parallel()

	registry := prometheus.NewRegistry()
	NewRecorder(registry)

	assert.Panics(t, func() { NewRecorder(registry) })
}
