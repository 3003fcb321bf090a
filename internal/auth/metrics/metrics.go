package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for login and refresh attempts.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// Metrics holds Prometheus collectors for auth operations.
type Metrics struct {
	Logins         *prometheus.CounterVec
	Refreshes      *prometheus.CounterVec
	AuthFailures   *prometheus.CounterVec
	TenantRequests prometheus.Counter
}

// New registers and returns auth metrics collectors on reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Logins: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "teampulse_logins_total",
			Help: "Login attempts by outcome",
		}, []string{"outcome"}),
		Refreshes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "teampulse_token_refreshes_total",
			Help: "Refresh attempts by outcome",
		}, []string{"outcome"}),
		AuthFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "teampulse_auth_failures_total",
			Help: "Authentication failures by endpoint",
		}, []string{"endpoint"}),
		TenantRequests: factory.NewCounter(prometheus.CounterOpts{
			Name: "teampulse_tenant_requests_total",
			Help: "Tenant signup requests accepted",
		}),
	}
}

func (m *Metrics) ObserveLogin(outcome string) {
	m.Logins.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveRefresh(outcome string) {
	m.Refreshes.WithLabelValues(outcome).Inc()
}

func (m *Metrics) IncrementAuthFailure(endpoint string) {
	m.AuthFailures.WithLabelValues(endpoint).Inc()
}

func (m *Metrics) IncrementTenantRequests() {
	m.TenantRequests.Inc()
}
