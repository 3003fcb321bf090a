package stores

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks TenantSource,TeamAPI,UserAPI,EntryAPI,TeamEntryAPI

import (
	"context"

	"teampulse/internal/api"
	"teampulse/internal/models"
)

// TenantSource provides the current user's tenant. *session.Store implements it.
type TenantSource interface {
	TenantID() (int, bool)
}

type TeamAPI interface {
	ListTeams(ctx context.Context, tenantID int) (*api.Response[[]models.TeamDetail], error)
	CreateTeam(ctx context.Context, tenantID int, form models.TeamForm) (*api.Response[models.Team], error)
	UpdateTeam(ctx context.Context, tenantID, teamID int, form models.TeamForm) (*api.Response[models.Team], error)
	DeleteTeam(ctx context.Context, tenantID, teamID int) (*api.Response[struct{}], error)
}

type UserAPI interface {
	ListUsers(ctx context.Context, tenantID int) (*api.Response[[]models.UserDetail], error)
	CreateUser(ctx context.Context, tenantID int, form models.UserForm) (*api.Response[models.User], error)
	UpdateUser(ctx context.Context, tenantID, userID int, form models.UserForm) (*api.Response[models.User], error)
	DeleteUser(ctx context.Context, tenantID, userID int) (*api.Response[struct{}], error)
}

type EntryAPI interface {
	ListEntries(ctx context.Context, tenantID int) (*api.Response[[]models.EntryDetail], error)
	CreateEntry(ctx context.Context, tenantID int, payload models.EntryPayload) (*api.Response[models.Entry], error)
}

type TeamEntryAPI interface {
	ListTeamEntries(ctx context.Context, tenantID int) (*api.Response[[]models.TeamEntry], error)
}

var (
	_ TeamAPI      = (*api.TenantAPI)(nil)
	_ UserAPI      = (*api.TenantAPI)(nil)
	_ EntryAPI     = (*api.TenantAPI)(nil)
	_ TeamEntryAPI = (*api.TenantAPI)(nil)
)
