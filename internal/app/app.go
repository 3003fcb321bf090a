// Package app wires the client SDK together: API client, session, domain
// stores and the navigation guard.
package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"

	"teampulse/internal/api"
	"teampulse/internal/platform/config"
	"teampulse/internal/platform/logger"
	"teampulse/internal/platform/redis"
	"teampulse/internal/platform/tracer"
	"teampulse/internal/router"
	"teampulse/internal/session"
	"teampulse/internal/stores"
)

// App owns every client-side state container.
type App struct {
	Config        config.Client
	Logger        *slog.Logger
	Client        *api.Client
	Session       *session.Store
	Teams         *stores.TeamStore
	Users         *stores.UserStore
	Entries       *stores.EntryStore
	TeamEntries   *stores.TeamEntryStore
	Notifications *stores.NotificationStore
	Guard         *router.Guard

	jar   *api.FileJar
	redis *redis.Client
}

type Option func(*options)

type options struct {
	logWriter  io.Writer
	httpClient *http.Client
}

// WithLogWriter sets where logs go. The CLI defaults to stderr.
func WithLogWriter(w io.Writer) Option {
	return func(o *options) {
		o.logWriter = w
	}
}

// WithHTTPClient replaces the transport, mostly for tests.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) {
		o.httpClient = c
	}
}

// New builds an App from cfg and restores the saved session.
func New(ctx context.Context, cfg config.Client, opts ...Option) (*App, error) {
	o := options{logWriter: os.Stderr}
	for _, opt := range opts {
		opt(&o)
	}

	a := &App{
		Config: cfg,
		Logger: logger.New(logger.WithLevel(cfg.LogLevel), logger.WithWriter(o.logWriter)),
	}

	clientOpts := []api.Option{
		api.WithTimeout(cfg.Timeout),
		api.WithLogger(a.Logger),
	}
	if cfg.Tracing {
		clientOpts = append(clientOpts, api.WithTracer(tracer.NewOTel()))
	}
	if o.httpClient != nil {
		clientOpts = append(clientOpts, api.WithHTTPClient(o.httpClient))
	}

	persister, err := a.persister(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if cfg.SessionBackend != config.SessionBackendMemory {
		jar, err := api.NewFileJar(cfg.CookieFile(), cfg.APIEndpoint, api.WithJarLogger(a.Logger))
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("open cookie jar: %w", err)
		}
		a.jar = jar
		clientOpts = append(clientOpts, api.WithCookieJar(jar))
	}

	client, err := api.New(cfg.APIEndpoint, clientOpts...)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.Client = client

	a.Session = session.New(client.Auth, persister, session.WithLogger(a.Logger))
	a.Session.Restore(ctx)

	storeOpts := []stores.Option{stores.WithLogger(a.Logger)}
	a.Teams = stores.NewTeamStore(client.Tenant, a.Session, storeOpts...)
	a.Users = stores.NewUserStore(client.Tenant, a.Session, storeOpts...)
	a.Entries = stores.NewEntryStore(client.Tenant, a.Session, storeOpts...)
	a.TeamEntries = stores.NewTeamEntryStore(client.Tenant, a.Session, storeOpts...)
	a.Notifications = stores.NewNotificationStore()
	a.Guard = router.NewGuard(a.Session, router.WithLogger(a.Logger))

	// Cookies are dropped together with the session so a stale refresh
	// cookie cannot outlive a logout.
	a.Session.Subscribe(func(snap session.Snapshot) {
		if snap.IsLoggedIn || snap.User != nil || a.jar == nil {
			return
		}
		if err := a.jar.Clear(); err != nil {
			a.Logger.Warn("failed to clear cookies", "error", err)
		}
	})
	return a, nil
}

func (a *App) persister(ctx context.Context, cfg config.Client) (session.Persister, error) {
	switch cfg.SessionBackend {
	case config.SessionBackendRedis:
		client, err := redis.New(ctx, cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("connect session redis: %w", err)
		}
		if client == nil {
			return nil, fmt.Errorf("redis session backend needs a redis url")
		}
		a.redis = client
		return session.NewRedisPersister(client, cfg.Redis.SessionTTL), nil
	case config.SessionBackendMemory:
		return session.NewMemoryPersister(), nil
	default:
		return session.NewFilePersister(cfg.SessionFile()), nil
	}
}

// Close releases the redis connection if one was opened.
func (a *App) Close() {
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.Logger.Warn("failed to close redis", "error", err)
		}
		a.redis = nil
	}
}
