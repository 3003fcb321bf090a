package service

import (
	"context"
	"errors"
	"log/slog"

	authmetrics "teampulse/internal/auth/metrics"
	"teampulse/internal/auth/models"
	jwttoken "teampulse/internal/jwt_token"
	"teampulse/internal/sentinel"
	dErrors "teampulse/pkg/domain-errors"
	"teampulse/pkg/requestcontext"
	"teampulse/pkg/secrets"
)

// Messages returned to clients. They do not reveal which credential was wrong.
const (
	MsgInvalidCredentials = "No active account found with the given credentials"
	MsgEmailInUse         = "This email is already in use."
	MsgEmailRequested     = "A tenant request with this email already exists."
	MsgTenantNameInUse    = "This tenant name is already in use."
	MsgTenantNameRequest  = "A tenant request with this name already exists."
)

// Session is an authenticated user with freshly issued tokens.
type Session struct {
	User    *models.User
	Access  jwttoken.Token
	Refresh jwttoken.Token
}

// Service authenticates users, issues cookie tokens and accepts tenant requests.
type Service struct {
	users    UserStore
	requests TenantRequestStore
	tenants  TenantNames
	tokens   TokenService
	logger   *slog.Logger
	metrics  *authmetrics.Metrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *authmetrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func New(users UserStore, requests TenantRequestStore, tenants TenantNames, tokens TokenService, opts ...Option) *Service {
	s := &Service{
		users:    users,
		requests: requests,
		tenants:  tenants,
		tokens:   tokens,
		logger:   slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Login checks the password and issues both tokens.
func (s *Service) Login(ctx context.Context, req *models.LoginRequest) (*Session, error) {
	user, err := s.users.FindByEmail(ctx, req.Email)
	if err != nil {
		s.observeLogin(authmetrics.OutcomeFailure)
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeUnauthorized, MsgInvalidCredentials)
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load user")
	}
	if err := secrets.Verify(req.Password, user.PasswordHash); err != nil {
		s.observeLogin(authmetrics.OutcomeFailure)
		if dErrors.HasCode(err, dErrors.CodeUnauthorized) {
			return nil, dErrors.New(dErrors.CodeUnauthorized, MsgInvalidCredentials)
		}
		return nil, err
	}

	session, err := s.issue(ctx, user)
	if err != nil {
		return nil, err
	}
	s.observeLogin(authmetrics.OutcomeSuccess)
	s.logger.InfoContext(ctx, "user logged in",
		"user_id", user.ID,
		"request_id", requestcontext.RequestID(ctx),
	)
	return session, nil
}

// Refresh validates a refresh token, reloads its user and issues new tokens.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*Session, error) {
	claims, err := s.tokens.ValidateToken(refreshToken, jwttoken.TokenTypeRefresh)
	if err != nil {
		s.observeRefresh(authmetrics.OutcomeFailure)
		return nil, err
	}
	user, err := s.users.FindByID(ctx, claims.UserID)
	if err != nil {
		s.observeRefresh(authmetrics.OutcomeFailure)
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "user not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load user")
	}
	session, err := s.issue(ctx, user)
	if err != nil {
		return nil, err
	}
	s.observeRefresh(authmetrics.OutcomeSuccess)
	return session, nil
}

// Verify checks an access token.
func (s *Service) Verify(_ context.Context, accessToken string) error {
	_, err := s.tokens.ValidateToken(accessToken, jwttoken.TokenTypeAccess)
	return err
}

func (s *Service) issue(ctx context.Context, user *models.User) (*Session, error) {
	access, err := s.tokens.GenerateAccessToken(ctx, user.ID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to issue access token")
	}
	refresh, err := s.tokens.GenerateRefreshToken(ctx, user.ID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to issue refresh token")
	}
	return &Session{User: user, Access: access, Refresh: refresh}, nil
}

func (s *Service) observeLogin(outcome string) {
	if s.metrics != nil {
		s.metrics.ObserveLogin(outcome)
	}
}

func (s *Service) observeRefresh(outcome string) {
	if s.metrics != nil {
		s.metrics.ObserveRefresh(outcome)
	}
}
