package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	authmodels "teampulse/internal/auth/models"
	pulse "teampulse/internal/models"
	"teampulse/internal/sentinel"
	tenantmetrics "teampulse/internal/tenant/metrics"
	"teampulse/internal/tenant/models"
	dErrors "teampulse/pkg/domain-errors"
)

// TeamEntriesWindow is how far back the team entries aggregate looks.
const TeamEntriesWindow = 90 * 24 * time.Hour

const (
	MsgTenantForbidden = "You do not have permission to access this tenant."
	MsgRoleForbidden   = "You do not have permission to perform this action."
	MsgSuperuserRole   = "The superuser role cannot be assigned."
	MsgAdminRole       = "Only administrators can create administrators."
	MsgRoleAboveCaller = "You cannot assign a role above your own."
	MsgInvalidManager  = "Managers must be administrators or managers of this tenant."
	MsgInvalidTeam     = "Team does not exist in this tenant."
	MsgEmailInUse      = "This email is already in use."
	MsgEntryExists     = "An entry for this team and date already exists."
	MsgDeleteSelf      = "You cannot delete your own account."
)

// Service enforces tenant scoping and role rules for teams, users and entries.
type Service struct {
	users   UserStore
	teams   TeamStore
	entries EntryStore
	scorer  Scorer
	logger  *slog.Logger
	metrics *tenantmetrics.Metrics
	cost    int
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *tenantmetrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithPasswordCost sets the bcrypt cost for passwords set through user create and update.
func WithPasswordCost(cost int) Option {
	return func(s *Service) {
		s.cost = cost
	}
}

func New(users UserStore, teams TeamStore, entries EntryStore, scorer Scorer, opts ...Option) *Service {
	s := &Service{
		users:   users,
		teams:   teams,
		entries: entries,
		scorer:  scorer,
		logger:  slog.New(slog.DiscardHandler),
		cost:    bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// caller loads the authenticated user and checks it belongs to tenantID.
func (s *Service) caller(ctx context.Context, callerID, tenantID int, action string) (*authmodels.User, error) {
	user, err := s.users.FindByID(ctx, callerID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "user not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load user")
	}
	if !user.InTenant(tenantID) {
		s.denied(action)
		return nil, dErrors.New(dErrors.CodeForbidden, MsgTenantForbidden)
	}
	return user, nil
}

// manager is caller plus the Superuser/Admin/Manager requirement.
func (s *Service) manager(ctx context.Context, callerID, tenantID int, action string) (*authmodels.User, error) {
	user, err := s.caller(ctx, callerID, tenantID, action)
	if err != nil {
		return nil, err
	}
	if !user.Role.CanManageTeams() {
		s.denied(action)
		return nil, dErrors.New(dErrors.CodeForbidden, MsgRoleForbidden)
	}
	return user, nil
}

func (s *Service) denied(action string) {
	if s.metrics != nil {
		s.metrics.IncrementPermissionDenied(action)
	}
}

func (s *Service) tenantUsers(ctx context.Context, tenantID int) (map[int]*authmodels.User, error) {
	users, err := s.users.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list users")
	}
	byID := make(map[int]*authmodels.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	return byID, nil
}

func (s *Service) tenantTeams(ctx context.Context, tenantID int) ([]*models.Team, map[int]*models.Team, error) {
	teams, err := s.teams.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list teams")
	}
	byID := make(map[int]*models.Team, len(teams))
	for _, t := range teams {
		byID[t.ID] = t
	}
	return teams, byID, nil
}

// translate maps a store error for the named thing to a domain error.
func translate(err error, what string) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, what+" not found")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load "+what)
}

func isPrivileged(role pulse.Role) bool {
	return role.AtLeast(pulse.RoleAdmin)
}
