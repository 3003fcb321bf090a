package team

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"teampulse/internal/sentinel"
	"teampulse/internal/tenant/models"
)

// InMemory stores teams keyed by an incrementing id.
type InMemory struct {
	mu     sync.RWMutex
	teams  map[int]*models.Team
	nextID int
}

func NewInMemory() *InMemory {
	return &InMemory{teams: make(map[int]*models.Team), nextID: 1}
}

func (s *InMemory) Create(_ context.Context, t *models.Team) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	t.ID = s.nextID
	s.nextID++
	s.teams[t.ID] = t.Clone()
	return nil
}

func (s *InMemory) Update(_ context.Context, t *models.Team) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.teams[t.ID]; !ok {
		return fmt.Errorf("team %d: %w", t.ID, sentinel.ErrNotFound)
	}
	s.teams[t.ID] = t.Clone()
	return nil
}

// FindByTenantAndID scopes the lookup so one tenant never sees another's team.
func (s *InMemory) FindByTenantAndID(_ context.Context, tenantID, teamID int) (*models.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if t, ok := s.teams[teamID]; ok && t.TenantID == tenantID {
		return t.Clone(), nil
	}
	return nil, fmt.Errorf("team %d: %w", teamID, sentinel.ErrNotFound)
}

// ListByTenant returns the tenant's teams ordered by id.
func (s *InMemory) ListByTenant(_ context.Context, tenantID int) ([]*models.Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Team, 0)
	for _, t := range s.teams {
		if t.TenantID == tenantID {
			out = append(out, t.Clone())
		}
	}
	slices.SortFunc(out, func(a, b *models.Team) int { return a.ID - b.ID })
	return out, nil
}

// RemoveManager drops userID from every team it manages.
func (s *InMemory) RemoveManager(_ context.Context, userID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.teams {
		t.Managers = slices.DeleteFunc(t.Managers, func(id int) bool { return id == userID })
	}
	return nil
}

func (s *InMemory) Delete(_ context.Context, tenantID, teamID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.teams[teamID]; ok && t.TenantID == tenantID {
		delete(s.teams, teamID)
		return nil
	}
	return fmt.Errorf("team %d: %w", teamID, sentinel.ErrNotFound)
}
