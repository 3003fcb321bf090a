// Package seeder creates a demo tenant with one account per role.
package seeder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	authmodels "teampulse/internal/auth/models"
	pulse "teampulse/internal/models"
	"teampulse/internal/sentinel"
	"teampulse/internal/tenant/models"
	"teampulse/pkg/requestcontext"
	"teampulse/pkg/secrets"
)

// DemoTenant is the name of the seeded tenant.
const DemoTenant = "Acme"

// Demo account emails. They share the configured seed password.
const (
	SuperuserEmail = "root@acme.test"
	AdminEmail     = "admin@acme.test"
	ManagerEmail   = "manager@acme.test"
	UserEmail      = "user@acme.test"
)

type TenantStore interface {
	CreateIfNameAvailable(ctx context.Context, t *models.Tenant) error
	FindByName(ctx context.Context, name string) (*models.Tenant, error)
}

type UserStore interface {
	Create(ctx context.Context, user *authmodels.User) error
	Save(ctx context.Context, user *authmodels.User) error
}

type TeamStore interface {
	Create(ctx context.Context, team *models.Team) error
}

// Demo is what Seed created.
type Demo struct {
	Tenant    *models.Tenant
	Team      *models.Team
	Superuser *authmodels.User
	Admin     *authmodels.User
	Manager   *authmodels.User
	User      *authmodels.User
}

type Seeder struct {
	tenants TenantStore
	users   UserStore
	teams   TeamStore
	logger  *slog.Logger
	cost    int
}

type Option func(*Seeder)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Seeder) {
		s.logger = logger
	}
}

// WithPasswordCost sets the bcrypt cost of the demo passwords.
func WithPasswordCost(cost int) Option {
	return func(s *Seeder) {
		s.cost = cost
	}
}

func New(tenants TenantStore, users UserStore, teams TeamStore, opts ...Option) *Seeder {
	s := &Seeder{
		tenants: tenants,
		users:   users,
		teams:   teams,
		logger:  slog.New(slog.DiscardHandler),
		cost:    bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Seed creates the demo tenant, its accounts and one team managed by the
// manager. It returns sentinel.ErrAlreadyUsed when the tenant exists.
func (s *Seeder) Seed(ctx context.Context, password string) (*Demo, error) {
	if _, err := s.tenants.FindByName(ctx, DemoTenant); err == nil {
		return nil, fmt.Errorf("demo tenant %q: %w", DemoTenant, sentinel.ErrAlreadyUsed)
	} else if !errors.Is(err, sentinel.ErrNotFound) {
		return nil, fmt.Errorf("find demo tenant: %w", err)
	}

	hash, err := secrets.HashWithCost(password, s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash demo password: %w", err)
	}
	now := requestcontext.Now(ctx)

	tenant := &models.Tenant{
		Name:           DemoTenant,
		DomainSettings: map[string]string{"domain": "acme.test"},
		CreatedAt:      now,
	}
	if err := s.tenants.CreateIfNameAvailable(ctx, tenant); err != nil {
		return nil, fmt.Errorf("create demo tenant: %w", err)
	}

	demo := &Demo{Tenant: tenant}
	accounts := []struct {
		dst   **authmodels.User
		email string
		name  string
		role  pulse.Role
	}{
		{&demo.Superuser, SuperuserEmail, "Sam Root", pulse.RoleSuperuser},
		{&demo.Admin, AdminEmail, "Ada Admin", pulse.RoleAdmin},
		{&demo.Manager, ManagerEmail, "Max Manager", pulse.RoleManager},
		{&demo.User, UserEmail, "Uma User", pulse.RoleUser},
	}
	for _, a := range accounts {
		tenantID := tenant.ID
		user := &authmodels.User{
			TenantID:     &tenantID,
			Email:        a.email,
			Name:         a.name,
			Role:         a.role,
			PasswordHash: hash,
			CreatedAt:    now,
		}
		if err := s.users.Create(ctx, user); err != nil {
			return nil, fmt.Errorf("create %s: %w", a.email, err)
		}
		*a.dst = user
	}

	demo.Team = &models.Team{
		TenantID: tenant.ID,
		Name:     "Platform",
		Managers: []int{demo.Manager.ID},
		Questions: pulse.QuestionSet{
			"stress":     pulse.Structured(pulse.Question{Text: "How stressed do you feel today?", Type: pulse.QuestionScale, Required: true}),
			"motivation": pulse.Structured(pulse.Question{Text: "How motivated are you today?", Type: pulse.QuestionScale, Required: true}),
			"notes":      pulse.Label("Anything else on your mind?"),
		},
	}
	if err := s.teams.Create(ctx, demo.Team); err != nil {
		return nil, fmt.Errorf("create demo team: %w", err)
	}

	for _, member := range []*authmodels.User{demo.Manager, demo.User} {
		member.Teams = []int{demo.Team.ID}
		if err := s.users.Save(ctx, member); err != nil {
			return nil, fmt.Errorf("assign %s to team: %w", member.Email, err)
		}
	}

	s.logger.InfoContext(ctx, "demo tenant seeded",
		"tenant_id", tenant.ID,
		"team_id", demo.Team.ID,
	)
	return demo, nil
}
