package prometheus

import (
	"time"

	"github.com/bnema/slotctl/internal/domain"
	"github.com/bnema/slotctl/internal/ports"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder exports slot decisions and occupancy as Prometheus metrics.
type Recorder struct {
	decisions *prometheus.CounterVec
	timeouts  *prometheus.CounterVec
	occupied  *prometheus.GaugeVec
	lifetime  *prometheus.HistogramVec
}

var _ ports.DecisionRecorder = (*Recorder)(nil)

// NewRecorder registers the slot metrics with reg, which is usually a fresh
// prometheus.NewRegistry so tests and commands do not share state.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	factory := promauto.With(reg)

	return &Recorder{
		decisions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "slotctl_decisions_total",
			Help: "Total number of slot admission decisions by kind",
		}, []string{"kind"}),
		timeouts: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "slotctl_timeouts_total",
			Help: "Total number of sessions ended for going stale",
		}, []string{"session_type"}),
		occupied: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "slotctl_slot_occupied",
			Help: "Whether the slot is held by a session of the given type",
		}, []string{"session_type"}),
		lifetime: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "slotctl_session_duration_seconds",
			Help:    "Time sessions held the slot",
			Buckets: []float64{1, 10, 30, 60, 120, 300, 600, 1800, 3600},
		}, []string{"session_type", "status"}),
	}
}

func (r *Recorder) RecordDecision(kind domain.ActivationKind) {
	r.decisions.WithLabelValues(string(kind)).Inc()
}

func (r *Recorder) RecordTimeout(sessionType domain.SessionType) {
	r.timeouts.WithLabelValues(string(sessionType)).Inc()
}

func (r *Recorder) RecordOccupancy(state domain.SlotState) {
	for _, sessionType := range []domain.SessionType{domain.SessionTypeChat, domain.SessionTypeAutomation} {
		value := 0.0
		if state.Occupied() && state.OccupantType == sessionType {
			value = 1
		}
		r.occupied.WithLabelValues(string(sessionType)).Set(value)
	}
}

func (r *Recorder) RecordSessionEnded(sessionType domain.SessionType, status domain.SessionStatus, lifetime time.Duration) {
	if lifetime < 0 {
		lifetime = 0
	}
	r.lifetime.WithLabelValues(string(sessionType), string(status)).Observe(lifetime.Seconds())
}
