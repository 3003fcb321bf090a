package user

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"teampulse/internal/auth/models"
	"teampulse/internal/sentinel"
)

// Error Contract:
// All store methods follow this error pattern:
// - Return sentinel.ErrNotFound (wrapped) when the requested user does not exist
// - Return sentinel.ErrAlreadyUsed (wrapped) when an email is taken
// - Return copies; callers may mutate what they get back
//
// InMemoryUserStore stores users in memory keyed by an incrementing id.
type InMemoryUserStore struct {
	mu     sync.RWMutex
	users  map[int]*models.User
	nextID int
}

// New constructs an empty in-memory user store.
func New() *InMemoryUserStore {
	return &InMemoryUserStore{users: make(map[int]*models.User), nextID: 1}
}

// Create assigns the next id and stores the user.
func (s *InMemoryUserStore) Create(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	email := models.NormalizeEmail(user.Email)
	if s.emailTakenLocked(email, 0) {
		return fmt.Errorf("email %s: %w", email, sentinel.ErrAlreadyUsed)
	}
	user.ID = s.nextID
	user.Email = email
	s.nextID++
	s.users[user.ID] = user.Clone()
	return nil
}

// Save replaces an existing user.
func (s *InMemoryUserStore) Save(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[user.ID]; !ok {
		return fmt.Errorf("user %d: %w", user.ID, sentinel.ErrNotFound)
	}
	email := models.NormalizeEmail(user.Email)
	if s.emailTakenLocked(email, user.ID) {
		return fmt.Errorf("email %s: %w", email, sentinel.ErrAlreadyUsed)
	}
	user.Email = email
	s.users[user.ID] = user.Clone()
	return nil
}

func (s *InMemoryUserStore) FindByID(_ context.Context, userID int) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if user, ok := s.users[userID]; ok {
		return user.Clone(), nil
	}
	return nil, fmt.Errorf("user not found: %w", sentinel.ErrNotFound)
}

func (s *InMemoryUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	email = models.NormalizeEmail(email)
	for _, user := range s.users {
		if user.Email == email {
			return user.Clone(), nil
		}
	}
	return nil, fmt.Errorf("user not found: %w", sentinel.ErrNotFound)
}

// EmailTaken reports whether any user already has the address.
func (s *InMemoryUserStore) EmailTaken(_ context.Context, email string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.emailTakenLocked(models.NormalizeEmail(email), 0), nil
}

func (s *InMemoryUserStore) emailTakenLocked(email string, except int) bool {
	for _, user := range s.users {
		if user.ID != except && user.Email == email {
			return true
		}
	}
	return false
}

// ListByTenant returns the tenant's users ordered by id.
func (s *InMemoryUserStore) ListByTenant(_ context.Context, tenantID int) ([]*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.User, 0)
	for _, user := range s.users {
		if user.InTenant(tenantID) {
			out = append(out, user.Clone())
		}
	}
	slices.SortFunc(out, func(a, b *models.User) int { return a.ID - b.ID })
	return out, nil
}

// RemoveTeam drops teamID from every user's team list.
func (s *InMemoryUserStore) RemoveTeam(_ context.Context, teamID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		user.Teams = slices.DeleteFunc(user.Teams, func(id int) bool { return id == teamID })
	}
	return nil
}

func (s *InMemoryUserStore) Delete(_ context.Context, userID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[userID]; ok {
		delete(s.users, userID)
		return nil
	}
	return fmt.Errorf("user not found: %w", sentinel.ErrNotFound)
}
