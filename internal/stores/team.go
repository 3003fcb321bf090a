package stores

import (
	"context"

	"teampulse/internal/models"
)

// TeamStore holds the tenant's teams.
type TeamStore struct {
	base[models.TeamDetail]
	api TeamAPI
}

func NewTeamStore(client TeamAPI, tenants TenantSource, opts ...Option) *TeamStore {
	s := &TeamStore{api: client}
	s.init("team", tenants, opts)
	return s
}

// FetchTeams replaces the collection with the tenant's teams.
func (s *TeamStore) FetchTeams(ctx context.Context) error {
	tenantID, err := s.tenant(ctx, "fetch")
	if err != nil {
		return err
	}
	s.begin()
	resp, err := s.api.ListTeams(ctx, tenantID)
	if err != nil {
		s.finish(ctx, "fetch", err, "Failed to fetch teams", nil)
		return err
	}
	s.finish(ctx, "fetch", nil, "", nonNil(resp.Data))
	return nil
}

func (s *TeamStore) AddTeam(ctx context.Context, form models.TeamForm) (*models.Team, error) {
	return collect(ctx, &s.base, "add", "Failed to add team", func(ctx context.Context, tenantID int) (*models.Team, error) {
		resp, err := s.api.CreateTeam(ctx, tenantID, form)
		if err != nil {
			return nil, err
		}
		return &resp.Data, nil
	})
}

func (s *TeamStore) UpdateTeam(ctx context.Context, teamID int, form models.TeamForm) (*models.Team, error) {
	return collect(ctx, &s.base, "update", "Failed to update team", func(ctx context.Context, tenantID int) (*models.Team, error) {
		resp, err := s.api.UpdateTeam(ctx, tenantID, teamID, form)
		if err != nil {
			return nil, err
		}
		return &resp.Data, nil
	})
}

func (s *TeamStore) DeleteTeam(ctx context.Context, teamID int) error {
	_, err := collect(ctx, &s.base, "delete", "Failed to delete team", func(ctx context.Context, tenantID int) (struct{}, error) {
		_, err := s.api.DeleteTeam(ctx, tenantID, teamID)
		return struct{}{}, err
	})
	return err
}

func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
