package service

import (
	"context"
	"time"

	authmodels "teampulse/internal/auth/models"
	pulse "teampulse/internal/models"
	"teampulse/internal/scoring"
	"teampulse/internal/tenant/models"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks UserStore,TeamStore,EntryStore,Scorer

type UserStore interface {
	Create(ctx context.Context, user *authmodels.User) error
	Save(ctx context.Context, user *authmodels.User) error
	FindByID(ctx context.Context, userID int) (*authmodels.User, error)
	ListByTenant(ctx context.Context, tenantID int) ([]*authmodels.User, error)
	RemoveTeam(ctx context.Context, teamID int) error
	Delete(ctx context.Context, userID int) error
}

type TeamStore interface {
	Create(ctx context.Context, team *models.Team) error
	Update(ctx context.Context, team *models.Team) error
	FindByTenantAndID(ctx context.Context, tenantID, teamID int) (*models.Team, error)
	ListByTenant(ctx context.Context, tenantID int) ([]*models.Team, error)
	RemoveManager(ctx context.Context, userID int) error
	Delete(ctx context.Context, tenantID, teamID int) error
}

type EntryStore interface {
	Create(ctx context.Context, entry *models.Entry) error
	ListByUser(ctx context.Context, tenantID, userID int) ([]*models.Entry, error)
	ListSince(ctx context.Context, tenantID int, since time.Time) ([]*models.Entry, error)
	DeleteByTeam(ctx context.Context, teamID int) error
	DeleteByUser(ctx context.Context, userID int) error
}

// Scorer turns answers into stress and motivation scores.
type Scorer interface {
	Score(ctx context.Context, questions pulse.QuestionSet, answers pulse.AnswerSet) (scoring.Scores, error)
}
