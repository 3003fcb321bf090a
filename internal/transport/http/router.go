package httptransport

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	authhandler "teampulse/internal/auth/handler"
	"teampulse/internal/platform/health"
	tenanthandler "teampulse/internal/tenant/handler"
	"teampulse/pkg/platform/middleware/auth"
	"teampulse/pkg/platform/middleware/request"
	"teampulse/pkg/platform/middleware/requesttime"
)

// RequestTimeout bounds every request.
const RequestTimeout = 30 * time.Second

// Deps are the handlers and collaborators the router mounts.
type Deps struct {
	Logger   *slog.Logger
	Registry *prometheus.Registry
	Health   *health.Handler
	Auth     *authhandler.Handler
	Tenant   *tenanthandler.Handler
	Tokens   auth.AccessTokenValidator
	// Clock pins requestcontext.Now per request. Defaults to time.Now.
	Clock func() time.Time
}

// NewRouter wires all public endpoints with middleware.
func NewRouter(d Deps) http.Handler {
	clock := d.Clock
	if clock == nil {
		clock = time.Now
	}

	var metrics *request.Metrics
	if d.Registry != nil {
		metrics = request.NewMetrics(d.Registry)
	}

	r := chi.NewRouter()
	r.Use(request.RequestID)
	r.Use(request.Access(d.Logger, metrics))
	r.Use(request.Recovery(d.Logger))
	r.Use(request.Timeout(RequestTimeout))
	r.Use(request.JSONBody(request.MaxBodyBytes))
	r.Use(requesttime.WithClock(clock))
	if d.Registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(d.Registry, promhttp.HandlerOpts{}))
	}

	d.Health.Register(r)
	d.Auth.Register(r)
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(d.Tokens, d.Logger))
		d.Tenant.Register(r)
	})

	return r
}
