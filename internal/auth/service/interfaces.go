package service

import (
	"context"

	"teampulse/internal/auth/models"
	jwttoken "teampulse/internal/jwt_token"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks UserStore,TenantRequestStore,TenantNames,TokenService

type UserStore interface {
	FindByID(ctx context.Context, userID int) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	EmailTaken(ctx context.Context, email string) (bool, error)
}

type TenantRequestStore interface {
	Create(ctx context.Context, req *models.TenantRequest) error
	EmailRequested(ctx context.Context, email string) (bool, error)
	TenantNameRequested(ctx context.Context, name string) (bool, error)
}

// TenantNames answers whether a tenant already uses a name.
type TenantNames interface {
	NameTaken(ctx context.Context, name string) (bool, error)
}

type TokenService interface {
	GenerateAccessToken(ctx context.Context, userID int) (jwttoken.Token, error)
	GenerateRefreshToken(ctx context.Context, userID int) (jwttoken.Token, error)
	ValidateToken(tokenString string, want jwttoken.TokenType) (*jwttoken.Claims, error)
}
