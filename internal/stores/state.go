// Package stores holds the tenant-scoped domain stores: teams, users,
// entries and team entries, plus the notification store.
//
// Every action follows one pattern: read the tenant from the session, fail
// early when there is none, flip the loading flag, make exactly one API call,
// record an error message on failure and clear the flag. Stores do not
// dedupe or cancel concurrent actions; the last response to land wins.
package stores

import (
	"context"
	"errors"
	"log/slog"
	"sync"
)

// NoTenantMessage is recorded as the store error when the session has no tenant.
const NoTenantMessage = "No tenant found for user"

// ErrNoTenant is returned before any network call when the session user has no tenant.
var ErrNoTenant = errors.New("no tenant found for user")

// State is a point-in-time copy of a store.
type State[T any] struct {
	Items     []T
	IsLoading bool
	Error     string
}

// HasError reports whether the last action failed.
func (s State[T]) HasError() bool { return s.Error != "" }

type Option func(*options)

type options struct {
	logger *slog.Logger
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func buildOptions(opts []Option) options {
	o := options{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// base is the state container shared by the collection stores.
type base[T any] struct {
	name    string
	tenants TenantSource
	logger  *slog.Logger

	mu        sync.RWMutex
	items     []T
	isLoading bool
	errMsg    string

	subMu     sync.Mutex
	subs      map[int]func(State[T])
	nextSubID int
}

func (b *base[T]) init(name string, tenants TenantSource, opts []Option) {
	o := buildOptions(opts)
	b.name = name
	b.tenants = tenants
	b.logger = o.logger
	b.items = []T{}
	b.subs = make(map[int]func(State[T]))
}

func (b *base[T]) State() State[T] {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.stateLocked()
}

// Subscribe registers fn to be called with a new state after every change.
func (b *base[T]) Subscribe(fn func(State[T])) (cancel func()) {
	b.subMu.Lock()
	id := b.nextSubID
	b.nextSubID++
	b.subs[id] = fn
	b.subMu.Unlock()
	return func() {
		b.subMu.Lock()
		delete(b.subs, id)
		b.subMu.Unlock()
	}
}

func (b *base[T]) stateLocked() State[T] {
	items := make([]T, len(b.items))
	copy(items, b.items)
	return State[T]{Items: items, IsLoading: b.isLoading, Error: b.errMsg}
}

func (b *base[T]) update(mutate func()) {
	b.mu.Lock()
	mutate()
	st := b.stateLocked()
	b.mu.Unlock()

	b.subMu.Lock()
	subs := make([]func(State[T]), 0, len(b.subs))
	for _, fn := range b.subs {
		subs = append(subs, fn)
	}
	b.subMu.Unlock()
	for _, fn := range subs {
		fn(st)
	}
}

// tenant returns the session tenant or records the no-tenant error.
func (b *base[T]) tenant(ctx context.Context, action string) (int, error) {
	id, ok := b.tenants.TenantID()
	if !ok {
		b.logger.DebugContext(ctx, "store action without tenant", "store", b.name, "action", action)
		b.update(func() { b.errMsg = NoTenantMessage })
		return 0, ErrNoTenant
	}
	return id, nil
}

func (b *base[T]) begin() {
	b.update(func() {
		b.isLoading = true
		b.errMsg = ""
	})
}

// finish clears the loading flag and records err. A non-nil replace swaps the collection.
func (b *base[T]) finish(ctx context.Context, action string, err error, fallback string, replace []T) {
	if err != nil {
		b.logger.DebugContext(ctx, "store action failed", "store", b.name, "action", action, "error", err)
	}
	b.update(func() {
		b.isLoading = false
		if err != nil {
			b.errMsg = errorMessage(err, fallback)
			return
		}
		if replace != nil {
			b.items = replace
		}
	})
}

// fail records err without touching the loading flag.
func (b *base[T]) fail(err error, fallback string) {
	b.update(func() { b.errMsg = errorMessage(err, fallback) })
}

func errorMessage(err error, fallback string) string {
	if errors.Is(err, ErrNoTenant) {
		return NoTenantMessage
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallback
}

// collect runs one tenant-scoped action that returns a value.
func collect[T, R any](ctx context.Context, b *base[T], action, fallback string, call func(ctx context.Context, tenantID int) (R, error)) (R, error) {
	var zero R
	tenantID, err := b.tenant(ctx, action)
	if err != nil {
		return zero, err
	}
	b.begin()
	out, err := call(ctx, tenantID)
	b.finish(ctx, action, err, fallback, nil)
	if err != nil {
		return zero, err
	}
	return out, nil
}
