// Package server assembles the reference backend: stores, services, handlers
// and the router.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/crypto/bcrypt"

	authhandler "teampulse/internal/auth/handler"
	authmetrics "teampulse/internal/auth/metrics"
	authservice "teampulse/internal/auth/service"
	tenantrequest "teampulse/internal/auth/store/tenant-request"
	userstore "teampulse/internal/auth/store/user"
	jwttoken "teampulse/internal/jwt_token"
	"teampulse/internal/platform/config"
	"teampulse/internal/platform/health"
	"teampulse/internal/scoring"
	"teampulse/internal/seeder"
	"teampulse/internal/sentinel"
	tenanthandler "teampulse/internal/tenant/handler"
	tenantmetrics "teampulse/internal/tenant/metrics"
	tenantservice "teampulse/internal/tenant/service"
	entrystore "teampulse/internal/tenant/store/entry"
	teamstore "teampulse/internal/tenant/store/team"
	tenantstore "teampulse/internal/tenant/store/tenant"
	httptransport "teampulse/internal/transport/http"
)

// Issuer is the iss claim of every token the backend signs.
const Issuer = "teampulse"

type options struct {
	logger *slog.Logger
	clock  func() time.Time
	scorer tenantservice.Scorer
	cost   int
}

type Option func(*options)

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithClock fixes the per-request clock.
func WithClock(clock func() time.Time) Option {
	return func(o *options) {
		o.clock = clock
	}
}

func WithScorer(scorer tenantservice.Scorer) Option {
	return func(o *options) {
		o.scorer = scorer
	}
}

// WithPasswordCost sets the bcrypt cost for seeded and created passwords.
func WithPasswordCost(cost int) Option {
	return func(o *options) {
		o.cost = cost
	}
}

// Server is the assembled backend.
type Server struct {
	Handler  http.Handler
	Registry *prometheus.Registry
	Demo     *seeder.Demo

	Tenants        *tenantstore.InMemory
	Users          *userstore.InMemoryUserStore
	TenantRequests *tenantrequest.InMemoryTenantRequestStore
	Teams          *teamstore.InMemory
	Entries        *entrystore.InMemory
}

// New builds the backend from cfg. With cfg.Seed the demo tenant is created.
func New(ctx context.Context, cfg config.Server, opts ...Option) (*Server, error) {
	o := &options{
		logger: slog.New(slog.DiscardHandler),
		clock:  time.Now,
		scorer: scoring.NewHeuristicScorer(),
		cost:   bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(o)
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	s := &Server{
		Registry:       reg,
		Tenants:        tenantstore.NewInMemory(),
		Users:          userstore.New(),
		TenantRequests: tenantrequest.New(),
		Teams:          teamstore.NewInMemory(),
		Entries:        entrystore.NewInMemory(),
	}

	tokens := jwttoken.NewJWTService(cfg.JWTSigningKey, Issuer, cfg.AccessTokenTTL, cfg.RefreshTokenTTL).
		WithClock(o.clock)

	authMetrics := authmetrics.New(reg)
	auth := authservice.New(s.Users, s.TenantRequests, s.Tenants, tokens,
		authservice.WithLogger(o.logger),
		authservice.WithMetrics(authMetrics),
	)
	tenants := tenantservice.New(s.Users, s.Teams, s.Entries, o.scorer,
		tenantservice.WithLogger(o.logger),
		tenantservice.WithMetrics(tenantmetrics.New(reg)),
		tenantservice.WithPasswordCost(o.cost),
	)

	healthHandler := health.New(cfg.Environment)
	healthHandler.RegisterCheck("tenants", func(ctx context.Context) error {
		_, err := s.Tenants.Count(ctx)
		return err
	})

	s.Handler = httptransport.NewRouter(httptransport.Deps{
		Logger:   o.logger,
		Registry: reg,
		Health:   healthHandler,
		Auth: authhandler.New(auth, o.logger, authhandler.CookieConfig{
			Secure:     cfg.CookieSecure,
			AccessTTL:  cfg.AccessTokenTTL,
			RefreshTTL: cfg.RefreshTokenTTL,
		}, authMetrics),
		Tenant: tenanthandler.New(tenants, o.logger),
		Tokens: jwttoken.NewAccessValidator(tokens),
		Clock:  o.clock,
	})

	if cfg.Seed {
		demo, err := seeder.New(s.Tenants, s.Users, s.Teams,
			seeder.WithLogger(o.logger),
			seeder.WithPasswordCost(o.cost),
		).Seed(ctx, cfg.SeedPassword)
		if err != nil && !errors.Is(err, sentinel.ErrAlreadyUsed) {
			return nil, err
		}
		s.Demo = demo
	}

	return s, nil
}
