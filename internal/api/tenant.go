package api

import (
	"context"
	"fmt"
	"net/http"

	"teampulse/internal/models"
)

// TenantAPI groups the tenant-scoped endpoints. Every path starts with /api/tenants/{tenantID}/.
type TenantAPI struct {
	client *Client
}

func tenantPath(tenantID int, resource string) string {
	return fmt.Sprintf("/api/tenants/%d/%s/", tenantID, resource)
}

func tenantItemPath(tenantID int, resource string, id int) string {
	return fmt.Sprintf("/api/tenants/%d/%s/%d/", tenantID, resource, id)
}

func (t *TenantAPI) ListTeams(ctx context.Context, tenantID int) (*Response[[]models.TeamDetail], error) {
	return do[[]models.TeamDetail](ctx, t.client, "api.tenant.list_teams", http.MethodGet, tenantPath(tenantID, "teams"), nil)
}

func (t *TenantAPI) CreateTeam(ctx context.Context, tenantID int, form models.TeamForm) (*Response[models.Team], error) {
	return do[models.Team](ctx, t.client, "api.tenant.create_team", http.MethodPost, tenantPath(tenantID, "teams"), form)
}

func (t *TenantAPI) UpdateTeam(ctx context.Context, tenantID, teamID int, form models.TeamForm) (*Response[models.Team], error) {
	return do[models.Team](ctx, t.client, "api.tenant.update_team", http.MethodPut, tenantItemPath(tenantID, "teams", teamID), form)
}

func (t *TenantAPI) DeleteTeam(ctx context.Context, tenantID, teamID int) (*Response[struct{}], error) {
	return do[struct{}](ctx, t.client, "api.tenant.delete_team", http.MethodDelete, tenantItemPath(tenantID, "teams", teamID), nil)
}

func (t *TenantAPI) ListUsers(ctx context.Context, tenantID int) (*Response[[]models.UserDetail], error) {
	return do[[]models.UserDetail](ctx, t.client, "api.tenant.list_users", http.MethodGet, tenantPath(tenantID, "users"), nil)
}

func (t *TenantAPI) CreateUser(ctx context.Context, tenantID int, form models.UserForm) (*Response[models.User], error) {
	return do[models.User](ctx, t.client, "api.tenant.create_user", http.MethodPost, tenantPath(tenantID, "users"), form)
}

func (t *TenantAPI) UpdateUser(ctx context.Context, tenantID, userID int, form models.UserForm) (*Response[models.User], error) {
	return do[models.User](ctx, t.client, "api.tenant.update_user", http.MethodPut, tenantItemPath(tenantID, "users", userID), form)
}

func (t *TenantAPI) DeleteUser(ctx context.Context, tenantID, userID int) (*Response[struct{}], error) {
	return do[struct{}](ctx, t.client, "api.tenant.delete_user", http.MethodDelete, tenantItemPath(tenantID, "users", userID), nil)
}

// ListEntries returns the caller's own entries.
func (t *TenantAPI) ListEntries(ctx context.Context, tenantID int) (*Response[[]models.EntryDetail], error) {
	return do[[]models.EntryDetail](ctx, t.client, "api.tenant.list_entries", http.MethodGet, tenantPath(tenantID, "entries"), nil)
}

// CreateEntry posts a check-in. payload.ReportedAt must already be YYYY-MM-DD.
func (t *TenantAPI) CreateEntry(ctx context.Context, tenantID int, payload models.EntryPayload) (*Response[models.Entry], error) {
	return do[models.Entry](ctx, t.client, "api.tenant.create_entry", http.MethodPost, tenantPath(tenantID, "entries"), payload)
}

func (t *TenantAPI) ListTeamEntries(ctx context.Context, tenantID int) (*Response[[]models.TeamEntry], error) {
	return do[[]models.TeamEntry](ctx, t.client, "api.tenant.list_team_entries", http.MethodGet, tenantPath(tenantID, "team-entries"), nil)
}
