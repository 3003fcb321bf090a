package service

import (
	"context"
	"errors"

	authmodels "teampulse/internal/auth/models"
	pulse "teampulse/internal/models"
	"teampulse/internal/sentinel"
	"teampulse/internal/tenant/models"
	dErrors "teampulse/pkg/domain-errors"
	"teampulse/pkg/requestcontext"
	"teampulse/pkg/secrets"
)

// ListUsers returns the tenant's users with teams expanded. Superusers are not listed.
func (s *Service) ListUsers(ctx context.Context, callerID, tenantID int) ([]pulse.UserDetail, error) {
	if _, err := s.caller(ctx, callerID, tenantID, "list_users"); err != nil {
		return nil, err
	}
	users, err := s.users.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list users")
	}
	_, teams, err := s.tenantTeams(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	out := make([]pulse.UserDetail, 0, len(users))
	for _, u := range users {
		if u.Role == pulse.RoleSuperuser {
			continue
		}
		out = append(out, models.ToUserDetail(u, teams))
	}
	return out, nil
}

func (s *Service) CreateUser(ctx context.Context, callerID, tenantID int, req *models.UserRequest) (pulse.User, error) {
	caller, err := s.manager(ctx, callerID, tenantID, "create_user")
	if err != nil {
		return pulse.User{}, err
	}
	if err := checkRole(caller, req.Role, 0); err != nil {
		s.denied("create_user")
		return pulse.User{}, err
	}
	if err := s.checkTeams(ctx, tenantID, req.Teams); err != nil {
		return pulse.User{}, err
	}

	tenant := tenantID
	user := &authmodels.User{
		TenantID:  &tenant,
		Email:     req.Email,
		Name:      req.Name,
		Role:      req.Role,
		Teams:     req.Teams,
		CreatedAt: requestcontext.Now(ctx),
	}
	if req.Password != "" {
		if user.PasswordHash, err = secrets.HashWithCost(req.Password, s.cost); err != nil {
			return pulse.User{}, err
		}
	}
	if err := s.users.Create(ctx, user); err != nil {
		return pulse.User{}, saveError(err)
	}
	s.logger.InfoContext(ctx, "user created",
		"tenant_id", tenantID,
		"user_id", user.ID,
		"role", user.Role.String(),
		"request_id", requestcontext.RequestID(ctx),
	)
	return user.View(), nil
}

// UpdateUser is allowed on oneself, or on others for Superuser and Admin callers.
// A password is only changed when one is supplied.
func (s *Service) UpdateUser(ctx context.Context, callerID, tenantID, userID int, req *models.UserRequest) (pulse.User, error) {
	caller, err := s.caller(ctx, callerID, tenantID, "update_user")
	if err != nil {
		return pulse.User{}, err
	}
	target, err := s.tenantUser(ctx, tenantID, userID)
	if err != nil {
		return pulse.User{}, err
	}
	self := caller.ID == target.ID
	if !self && (!isPrivileged(caller.Role) || target.Role < caller.Role) {
		s.denied("update_user")
		return pulse.User{}, dErrors.New(dErrors.CodeForbidden, MsgRoleForbidden)
	}
	if err := checkRole(caller, req.Role, target.Role); err != nil {
		s.denied("update_user")
		return pulse.User{}, err
	}
	if err := s.checkTeams(ctx, tenantID, req.Teams); err != nil {
		return pulse.User{}, err
	}

	target.Name = req.Name
	target.Email = req.Email
	target.Role = req.Role
	target.Teams = req.Teams
	if req.Password != "" {
		if target.PasswordHash, err = secrets.HashWithCost(req.Password, s.cost); err != nil {
			return pulse.User{}, err
		}
	}
	if err := s.users.Save(ctx, target); err != nil {
		return pulse.User{}, saveError(err)
	}
	return target.View(), nil
}

// DeleteUser removes the user, its entries and its manager assignments.
func (s *Service) DeleteUser(ctx context.Context, callerID, tenantID, userID int) error {
	caller, err := s.manager(ctx, callerID, tenantID, "delete_user")
	if err != nil {
		return err
	}
	if caller.ID == userID {
		return dErrors.New(dErrors.CodeBadRequest, MsgDeleteSelf)
	}
	target, err := s.tenantUser(ctx, tenantID, userID)
	if err != nil {
		return err
	}
	if target.Role < caller.Role {
		s.denied("delete_user")
		return dErrors.New(dErrors.CodeForbidden, MsgRoleForbidden)
	}

	if err := s.users.Delete(ctx, userID); err != nil {
		return translate(err, "user")
	}
	if err := s.entries.DeleteByUser(ctx, userID); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to delete user entries")
	}
	if err := s.teams.RemoveManager(ctx, userID); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to update team managers")
	}
	s.logger.InfoContext(ctx, "user deleted",
		"tenant_id", tenantID,
		"user_id", userID,
		"request_id", requestcontext.RequestID(ctx),
	)
	return nil
}

func (s *Service) tenantUser(ctx context.Context, tenantID, userID int) (*authmodels.User, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, translate(err, "user")
	}
	if !user.InTenant(tenantID) {
		return nil, dErrors.New(dErrors.CodeNotFound, "user not found")
	}
	return user, nil
}

// checkTeams verifies every id names a team of the tenant.
func (s *Service) checkTeams(ctx context.Context, tenantID int, teamIDs []int) error {
	_, teams, err := s.tenantTeams(ctx, tenantID)
	if err != nil {
		return err
	}
	for _, id := range teamIDs {
		if _, ok := teams[id]; !ok {
			return dErrors.NewFieldErrors(map[string][]string{"teams": {MsgInvalidTeam}})
		}
	}
	return nil
}

// checkRole applies the role assignment rules. current is zero on create.
func checkRole(caller *authmodels.User, role, current pulse.Role) error {
	if role == current {
		return nil
	}
	if role == pulse.RoleSuperuser {
		return dErrors.New(dErrors.CodeForbidden, MsgSuperuserRole)
	}
	if role < caller.Role {
		if role == pulse.RoleAdmin {
			return dErrors.New(dErrors.CodeForbidden, MsgAdminRole)
		}
		return dErrors.New(dErrors.CodeForbidden, MsgRoleAboveCaller)
	}
	return nil
}

func saveError(err error) error {
	if errors.Is(err, sentinel.ErrAlreadyUsed) {
		return dErrors.NewFieldErrors(map[string][]string{"email": {MsgEmailInUse}})
	}
	return translate(err, "user")
}
