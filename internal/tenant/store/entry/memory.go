package entry

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"teampulse/internal/sentinel"
	"teampulse/internal/tenant/models"
)

type dayKey struct {
	tenantID, userID, teamID int
	day                      time.Time
}

// InMemory stores entries and enforces one entry per user, team and day.
type InMemory struct {
	mu      sync.RWMutex
	entries map[int]*models.Entry
	daily   map[dayKey]int
	nextID  int
}

func NewInMemory() *InMemory {
	return &InMemory{
		entries: make(map[int]*models.Entry),
		daily:   make(map[dayKey]int),
		nextID:  1,
	}
}

func keyOf(e *models.Entry) dayKey {
	return dayKey{tenantID: e.TenantID, userID: e.UserID, teamID: e.TeamID, day: models.Day(e.ReportedAt)}
}

// Create stores e, or returns sentinel.ErrAlreadyUsed when the user already
// reported for that team on that day.
func (s *InMemory) Create(_ context.Context, e *models.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := keyOf(e)
	if _, exists := s.daily[key]; exists {
		return fmt.Errorf("entry for %s: %w", key.day.Format(models.DateLayout), sentinel.ErrAlreadyUsed)
	}
	e.ID = s.nextID
	s.nextID++
	s.entries[e.ID] = e.Clone()
	s.daily[key] = e.ID
	return nil
}

// ListByUser returns the user's entries in the tenant, newest reported_at first.
func (s *InMemory) ListByUser(_ context.Context, tenantID, userID int) ([]*models.Entry, error) {
	return s.list(func(e *models.Entry) bool {
		return e.TenantID == tenantID && e.UserID == userID
	}, func(a, b *models.Entry) int {
		if c := b.ReportedAt.Compare(a.ReportedAt); c != 0 {
			return c
		}
		return b.ID - a.ID
	}), nil
}

// ListSince returns the tenant's entries reported on or after since, ordered
// by team, user and reported_at.
func (s *InMemory) ListSince(_ context.Context, tenantID int, since time.Time) ([]*models.Entry, error) {
	since = models.Day(since)
	return s.list(func(e *models.Entry) bool {
		return e.TenantID == tenantID && !e.ReportedAt.Before(since)
	}, func(a, b *models.Entry) int {
		if a.TeamID != b.TeamID {
			return a.TeamID - b.TeamID
		}
		if a.UserID != b.UserID {
			return a.UserID - b.UserID
		}
		if c := a.ReportedAt.Compare(b.ReportedAt); c != 0 {
			return c
		}
		return a.ID - b.ID
	}), nil
}

func (s *InMemory) list(keep func(*models.Entry) bool, cmp func(a, b *models.Entry) int) []*models.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Entry, 0)
	for _, e := range s.entries {
		if keep(e) {
			out = append(out, e.Clone())
		}
	}
	slices.SortFunc(out, cmp)
	return out
}

// DeleteByTeam removes every entry of a deleted team.
func (s *InMemory) DeleteByTeam(_ context.Context, teamID int) error {
	s.deleteWhere(func(e *models.Entry) bool { return e.TeamID == teamID })
	return nil
}

// DeleteByUser removes every entry of a deleted user.
func (s *InMemory) DeleteByUser(_ context.Context, userID int) error {
	s.deleteWhere(func(e *models.Entry) bool { return e.UserID == userID })
	return nil
}

func (s *InMemory) deleteWhere(match func(*models.Entry) bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, e := range s.entries {
		if match(e) {
			delete(s.daily, keyOf(e))
			delete(s.entries, id)
		}
	}
}
