// Package tenant stores tenants. Names are unique ignoring case and
// surrounding space, so "Acme" and " acme " collide.
package tenant

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"teampulse/internal/sentinel"
	"teampulse/internal/tenant/models"
)

// ErrNotFound is returned for an unknown id or name.
var ErrNotFound = sentinel.ErrNotFound

func nameKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// InMemory keeps tenants in a map guarded by one lock.
type InMemory struct {
	mu     sync.RWMutex
	byID   map[int]models.Tenant
	byName map[string]int
	lastID int
}

func NewInMemory() *InMemory {
	return &InMemory{
		byID:   make(map[int]models.Tenant),
		byName: make(map[string]int),
	}
}

// CreateIfNameAvailable assigns t an id and stores it, unless the name is
// taken. The check and the insert happen under one lock.
func (s *InMemory) CreateIfNameAvailable(_ context.Context, t *models.Tenant) error {
	key := nameKey(t.Name)

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, taken := s.byName[key]; taken {
		return fmt.Errorf("tenant %q: %w", t.Name, sentinel.ErrAlreadyUsed)
	}
	s.lastID++
	t.ID = s.lastID
	s.byID[t.ID] = *t
	s.byName[key] = t.ID
	return nil
}

func (s *InMemory) FindByID(_ context.Context, id int) (*models.Tenant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.byID[id]
	if !ok {
		return nil, fmt.Errorf("tenant %d: %w", id, ErrNotFound)
	}
	return &t, nil
}

func (s *InMemory) FindByName(_ context.Context, name string) (*models.Tenant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.byName[nameKey(name)]
	if !ok {
		return nil, fmt.Errorf("tenant %q: %w", name, ErrNotFound)
	}
	t := s.byID[id]
	return &t, nil
}

// NameTaken backs the tenant request uniqueness check.
func (s *InMemory) NameTaken(ctx context.Context, name string) (bool, error) {
	switch _, err := s.FindByName(ctx, name); {
	case err == nil:
		return true, nil
	case errors.Is(err, ErrNotFound):
		return false, nil
	default:
		return false, err
	}
}

func (s *InMemory) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID), nil
}
