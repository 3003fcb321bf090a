package tenantrequest

import (
	"context"
	"slices"
	"strings"
	"sync"

	"teampulse/internal/auth/models"
)

// InMemoryTenantRequestStore keeps signup requests in creation order.
type InMemoryTenantRequestStore struct {
	mu       sync.RWMutex
	requests []*models.TenantRequest
	nextID   int
}

func New() *InMemoryTenantRequestStore {
	return &InMemoryTenantRequestStore{nextID: 1}
}

// Create assigns the next id and stores the request.
func (s *InMemoryTenantRequestStore) Create(_ context.Context, req *models.TenantRequest) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	req.ID = s.nextID
	s.nextID++
	c := *req
	s.requests = append(s.requests, &c)
	return nil
}

// EmailRequested reports whether any earlier request used the address.
func (s *InMemoryTenantRequestStore) EmailRequested(_ context.Context, email string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	email = models.NormalizeEmail(email)
	return slices.ContainsFunc(s.requests, func(r *models.TenantRequest) bool {
		return r.Email == email
	}), nil
}

// TenantNameRequested compares names case-insensitively.
func (s *InMemoryTenantRequestStore) TenantNameRequested(_ context.Context, name string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.ContainsFunc(s.requests, func(r *models.TenantRequest) bool {
		return strings.EqualFold(r.TenantName, strings.TrimSpace(name))
	}), nil
}

// ListPending returns pending requests, newest first.
func (s *InMemoryTenantRequestStore) ListPending(_ context.Context) ([]*models.TenantRequest, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.TenantRequest, 0, len(s.requests))
	for i := len(s.requests) - 1; i >= 0; i-- {
		if s.requests[i].Status == models.TenantRequestPending {
			c := *s.requests[i]
			out = append(out, &c)
		}
	}
	return out, nil
}
