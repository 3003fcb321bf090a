package service

import (
	"context"

	authmodels "teampulse/internal/auth/models"
	pulse "teampulse/internal/models"
	"teampulse/internal/tenant/models"
	dErrors "teampulse/pkg/domain-errors"
	"teampulse/pkg/requestcontext"
)

// ListTeams returns every team of the tenant with managers expanded.
func (s *Service) ListTeams(ctx context.Context, callerID, tenantID int) ([]pulse.TeamDetail, error) {
	if _, err := s.caller(ctx, callerID, tenantID, "list_teams"); err != nil {
		return nil, err
	}
	teams, _, err := s.tenantTeams(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	users, err := s.tenantUsers(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	out := make([]pulse.TeamDetail, 0, len(teams))
	for _, t := range teams {
		out = append(out, models.ToTeamDetail(t, users))
	}
	return out, nil
}

func (s *Service) CreateTeam(ctx context.Context, callerID, tenantID int, req *models.TeamRequest) (pulse.Team, error) {
	if _, err := s.manager(ctx, callerID, tenantID, "create_team"); err != nil {
		return pulse.Team{}, err
	}
	if err := s.checkManagers(ctx, tenantID, req.Managers); err != nil {
		return pulse.Team{}, err
	}
	team := &models.Team{
		TenantID:  tenantID,
		Name:      req.Name,
		Questions: req.Questions,
		Managers:  req.Managers,
	}
	if err := s.teams.Create(ctx, team); err != nil {
		return pulse.Team{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create team")
	}
	s.logger.InfoContext(ctx, "team created",
		"tenant_id", tenantID,
		"team_id", team.ID,
		"request_id", requestcontext.RequestID(ctx),
	)
	return models.ToTeam(team), nil
}

// UpdateTeam replaces name, questions and managers.
func (s *Service) UpdateTeam(ctx context.Context, callerID, tenantID, teamID int, req *models.TeamRequest) (pulse.Team, error) {
	if _, err := s.manager(ctx, callerID, tenantID, "update_team"); err != nil {
		return pulse.Team{}, err
	}
	team, err := s.teams.FindByTenantAndID(ctx, tenantID, teamID)
	if err != nil {
		return pulse.Team{}, translate(err, "team")
	}
	if err := s.checkManagers(ctx, tenantID, req.Managers); err != nil {
		return pulse.Team{}, err
	}
	team.Name = req.Name
	team.Questions = req.Questions
	team.Managers = req.Managers
	if err := s.teams.Update(ctx, team); err != nil {
		return pulse.Team{}, translate(err, "team")
	}
	return models.ToTeam(team), nil
}

// DeleteTeam removes the team, its entries and every membership of it.
func (s *Service) DeleteTeam(ctx context.Context, callerID, tenantID, teamID int) error {
	if _, err := s.manager(ctx, callerID, tenantID, "delete_team"); err != nil {
		return err
	}
	if err := s.teams.Delete(ctx, tenantID, teamID); err != nil {
		return translate(err, "team")
	}
	if err := s.entries.DeleteByTeam(ctx, teamID); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete team entries")
	}
	if err := s.users.RemoveTeam(ctx, teamID); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to update team members")
	}
	s.logger.InfoContext(ctx, "team deleted",
		"tenant_id", tenantID,
		"team_id", teamID,
		"request_id", requestcontext.RequestID(ctx),
	)
	return nil
}

func (s *Service) checkManagers(ctx context.Context, tenantID int, managerIDs []int) error {
	if len(managerIDs) == 0 {
		return nil
	}
	users, err := s.tenantUsers(ctx, tenantID)
	if err != nil {
		return err
	}
	for _, id := range managerIDs {
		if !canManage(users[id]) {
			return dErrors.NewFieldErrors(map[string][]string{"managers": {MsgInvalidManager}})
		}
	}
	return nil
}

func canManage(u *authmodels.User) bool {
	return u != nil && (u.Role == pulse.RoleAdmin || u.Role == pulse.RoleManager)
}
