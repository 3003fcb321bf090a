package stores

import (
	"context"

	"teampulse/internal/models"
)

// UserStore holds the tenant's users.
type UserStore struct {
	base[models.UserDetail]
	api UserAPI
}

func NewUserStore(client UserAPI, tenants TenantSource, opts ...Option) *UserStore {
	s := &UserStore{api: client}
	s.init("user", tenants, opts)
	return s
}

func (s *UserStore) FetchUsers(ctx context.Context) error {
	tenantID, err := s.tenant(ctx, "fetch")
	if err != nil {
		return err
	}
	s.begin()
	resp, err := s.api.ListUsers(ctx, tenantID)
	if err != nil {
		s.finish(ctx, "fetch", err, "Failed to fetch users", nil)
		return err
	}
	s.finish(ctx, "fetch", nil, "", nonNil(resp.Data))
	return nil
}

func (s *UserStore) AddUser(ctx context.Context, form models.UserForm) (*models.User, error) {
	return collect(ctx, &s.base, "add", "Failed to add user", func(ctx context.Context, tenantID int) (*models.User, error) {
		resp, err := s.api.CreateUser(ctx, tenantID, form)
		if err != nil {
			return nil, err
		}
		return &resp.Data, nil
	})
}

func (s *UserStore) UpdateUser(ctx context.Context, userID int, form models.UserForm) (*models.User, error) {
	return collect(ctx, &s.base, "update", "Failed to update user", func(ctx context.Context, tenantID int) (*models.User, error) {
		resp, err := s.api.UpdateUser(ctx, tenantID, userID, form)
		if err != nil {
			return nil, err
		}
		return &resp.Data, nil
	})
}

func (s *UserStore) DeleteUser(ctx context.Context, userID int) error {
	_, err := collect(ctx, &s.base, "delete", "Failed to delete user", func(ctx context.Context, tenantID int) (struct{}, error) {
		_, err := s.api.DeleteUser(ctx, tenantID, userID)
		return struct{}{}, err
	})
	return err
}
