package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	EntriesCreated      prometheus.Counter
	ScoringFailures     prometheus.Counter
	PermissionDenials   *prometheus.CounterVec
	TeamEntriesDuration prometheus.Histogram
}

func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		EntriesCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "teampulse_entries_created_total",
			Help: "Total number of entries created",
		}),
		ScoringFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "teampulse_scoring_failures_total",
			Help: "Entries stored with zero scores because scoring failed",
		}),
		PermissionDenials: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "teampulse_permission_denials_total",
			Help: "Tenant requests refused by role or tenant checks",
		}, []string{"action"}),
		TeamEntriesDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "teampulse_team_entries_duration_seconds",
			Help:    "Duration of the team entries aggregation",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

func (m *Metrics) IncrementEntriesCreated() {
	m.EntriesCreated.Inc()
}

func (m *Metrics) IncrementScoringFailures() {
	m.ScoringFailures.Inc()
}

func (m *Metrics) IncrementPermissionDenied(action string) {
	m.PermissionDenials.WithLabelValues(action).Inc()
}

func (m *Metrics) ObserveTeamEntries(start time.Time) {
	m.TeamEntriesDuration.Observe(time.Since(start).Seconds())
}
