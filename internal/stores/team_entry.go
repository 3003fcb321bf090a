package stores

import (
	"context"

	"teampulse/internal/models"
)

// TeamEntryStore holds the per-team chart series. It is read-only.
type TeamEntryStore struct {
	base[models.TeamEntry]
	api TeamEntryAPI
}

func NewTeamEntryStore(client TeamEntryAPI, tenants TenantSource, opts ...Option) *TeamEntryStore {
	s := &TeamEntryStore{api: client}
	s.init("team_entry", tenants, opts)
	return s
}

func (s *TeamEntryStore) FetchTeamEntries(ctx context.Context) error {
	tenantID, err := s.tenant(ctx, "fetch")
	if err != nil {
		return err
	}
	s.begin()
	resp, err := s.api.ListTeamEntries(ctx, tenantID)
	if err != nil {
		s.finish(ctx, "fetch", err, "Failed to fetch team entries", nil)
		return err
	}
	s.finish(ctx, "fetch", nil, "", nonNil(resp.Data))
	return nil
}
