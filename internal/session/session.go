// Package session owns the authentication state of the client: whether the
// user is logged in and who they are. It drives the auth endpoints and
// persists a snapshot after every change so a restarted process resumes the
// same session.
package session

import (
	"context"
	"log/slog"
	"sync"

	"teampulse/internal/api"
	"teampulse/internal/models"
)

// AuthAPI is the subset of the API client the session store drives.
type AuthAPI interface {
	Login(ctx context.Context, email, password string) (*api.Response[models.User], error)
	TenantRequest(ctx context.Context, form models.TenantRequestForm) (*api.Response[models.TenantRequestResult], error)
	Verify(ctx context.Context) (*api.Response[struct{}], error)
	Refresh(ctx context.Context) (*api.Response[models.User], error)
	Logout(ctx context.Context) (*api.Response[struct{}], error)
}

// Snapshot is the persisted form of the session.
type Snapshot struct {
	IsLoggedIn bool         `json:"is_logged_in"`
	User       *models.User `json:"user"`
}

// Store holds the session state. It is safe for concurrent use; the last
// call to complete wins.
type Store struct {
	mu         sync.RWMutex
	isLoggedIn bool
	user       *models.User

	api       AuthAPI
	persister Persister
	logger    *slog.Logger

	subMu       sync.Mutex
	subscribers map[int]func(Snapshot)
	nextSubID   int
}

type Option func(*Store)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		s.logger = logger
	}
}

// New creates an anonymous session. Call Restore to load a saved snapshot.
func New(authAPI AuthAPI, persister Persister, opts ...Option) *Store {
	s := &Store{
		api:         authAPI,
		persister:   persister,
		logger:      slog.New(slog.DiscardHandler),
		subscribers: make(map[int]func(Snapshot)),
	}
	if s.persister == nil {
		s.persister = NewMemoryPersister()
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Restore rehydrates the state from the persister. A missing snapshot leaves
// the store anonymous; an unreadable one is logged and ignored.
func (s *Store) Restore(ctx context.Context) {
	snap, err := s.persister.Load(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "discarding unreadable session snapshot", "error", err)
		return
	}
	if snap == nil {
		return
	}
	s.mu.Lock()
	s.isLoggedIn = snap.IsLoggedIn
	s.user = cloneUser(snap.User)
	s.mu.Unlock()
}

// Login authenticates and stores the returned user. On failure the state is unchanged.
func (s *Store) Login(ctx context.Context, form models.LoginForm) (*models.User, error) {
	resp, err := s.api.Login(ctx, form.Email, form.Password)
	if err != nil {
		return nil, err
	}
	user := resp.Data
	s.apply(ctx, func() {
		s.isLoggedIn = true
		s.user = &user
	})
	return cloneUser(&user), nil
}

// TenantRequest submits a signup request. It does not touch the session.
func (s *Store) TenantRequest(ctx context.Context, form models.TenantRequestForm) (*models.TenantRequestResult, error) {
	resp, err := s.api.TenantRequest(ctx, form)
	if err != nil {
		return nil, err
	}
	result := resp.Data
	if result.Message == "" {
		result.Message = resp.Message
	}
	return &result, nil
}

// VerifyToken checks the access cookie. Success marks the session logged in
// without refetching the user. Failure is returned and the state is left to
// the caller.
func (s *Store) VerifyToken(ctx context.Context) error {
	if _, err := s.api.Verify(ctx); err != nil {
		return err
	}
	s.apply(ctx, func() {
		s.isLoggedIn = true
	})
	return nil
}

// RefreshToken rotates the cookies and replaces the user.
func (s *Store) RefreshToken(ctx context.Context) (*models.User, error) {
	resp, err := s.api.Refresh(ctx)
	if err != nil {
		return nil, err
	}
	user := resp.Data
	s.apply(ctx, func() {
		s.isLoggedIn = true
		s.user = &user
	})
	return cloneUser(&user), nil
}

// Logout asks the backend to clear the cookies and always resets the local
// state, even when the call fails.
func (s *Store) Logout(ctx context.Context) {
	if _, err := s.api.Logout(ctx); err != nil {
		s.logger.WarnContext(ctx, "logout request failed", "error", err)
	}
	s.Reset(ctx)
}

// Reset clears the flag and the user.
func (s *Store) Reset(ctx context.Context) {
	s.apply(ctx, func() {
		s.isLoggedIn = false
		s.user = nil
	})
}

func (s *Store) IsLoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isLoggedIn
}

// User returns a copy of the current user, or nil.
func (s *Store) User() *models.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneUser(s.user)
}

// TenantID returns the current user's tenant.
func (s *Store) TenantID() (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user.TenantID()
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// Subscribe registers fn to be called with the new snapshot after every change.
func (s *Store) Subscribe(fn func(Snapshot)) (cancel func()) {
	s.subMu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn
	s.subMu.Unlock()
	return func() {
		s.subMu.Lock()
		delete(s.subscribers, id)
		s.subMu.Unlock()
	}
}

func (s *Store) snapshotLocked() Snapshot {
	return Snapshot{IsLoggedIn: s.isLoggedIn, User: cloneUser(s.user)}
}

// apply mutates the state, saves the snapshot and notifies subscribers.
func (s *Store) apply(ctx context.Context, mutate func()) {
	s.mu.Lock()
	mutate()
	snap := s.snapshotLocked()
	s.mu.Unlock()

	if err := s.persist(ctx, snap); err != nil {
		s.logger.WarnContext(ctx, "failed to persist session", "error", err)
	}

	s.subMu.Lock()
	subs := make([]func(Snapshot), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		subs = append(subs, fn)
	}
	s.subMu.Unlock()
	for _, fn := range subs {
		fn(snap)
	}
}

func (s *Store) persist(ctx context.Context, snap Snapshot) error {
	if !snap.IsLoggedIn && snap.User == nil {
		return s.persister.Clear(ctx)
	}
	return s.persister.Save(ctx, snap)
}

func cloneUser(u *models.User) *models.User {
	if u == nil {
		return nil
	}
	c := *u
	if u.Tenant != nil {
		t := *u.Tenant
		c.Tenant = &t
	}
	if u.Teams != nil {
		c.Teams = append([]int(nil), u.Teams...)
	}
	return &c
}
