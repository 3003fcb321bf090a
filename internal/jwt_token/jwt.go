package jwttoken

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	dErrors "teampulse/pkg/domain-errors"
	"teampulse/pkg/requestcontext"
)

// TokenType distinguishes access cookies from refresh cookies.
type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

// Claims are carried by both token types.
type Claims struct {
	UserID    int       `json:"user_id"`
	TokenType TokenType `json:"token_type"`
	jwt.RegisteredClaims
}

// JWTService handles JWT creation and validation
type JWTService struct {
	signingKey []byte
	issuer     string
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

func NewJWTService(signingKey, issuer string, accessTTL, refreshTTL time.Duration) *JWTService {
	return &JWTService{
		signingKey: []byte(signingKey),
		issuer:     issuer,
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
		now:        time.Now,
	}
}

// WithClock sets the clock expiry is checked against. Issuance reads
// requestcontext.Now, so both should agree.
func (s *JWTService) WithClock(now func() time.Time) *JWTService {
	s.now = now
	return s
}

// Token is a signed token with its expiry, ready to be set as a cookie.
type Token struct {
	Value     string
	ExpiresAt time.Time
}

func (s *JWTService) GenerateAccessToken(ctx context.Context, userID int) (Token, error) {
	return s.generate(ctx, userID, TokenTypeAccess, s.accessTTL)
}

func (s *JWTService) GenerateRefreshToken(ctx context.Context, userID int) (Token, error) {
	return s.generate(ctx, userID, TokenTypeRefresh, s.refreshTTL)
}

// AccessTTL and RefreshTTL are used for cookie Max-Age.
func (s *JWTService) AccessTTL() time.Duration  { return s.accessTTL }
func (s *JWTService) RefreshTTL() time.Duration { return s.refreshTTL }

func (s *JWTService) generate(ctx context.Context, userID int, typ TokenType, ttl time.Duration) (Token, error) {
	if userID <= 0 {
		return Token{}, dErrors.New(dErrors.CodeBadRequest, "user id is required")
	}
	now := requestcontext.Now(ctx)
	expiresAt := now.Add(ttl)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID:    userID,
		TokenType: typ,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    s.issuer,
			ID:        uuid.NewString(),
		},
	})
	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		return Token{}, err
	}
	return Token{Value: signed, ExpiresAt: expiresAt}, nil
}

// ValidateToken checks signature, algorithm, expiry, issuer and token type.
func (s *JWTService) ValidateToken(tokenString string, want TokenType) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.signingKey, nil
	}, jwt.WithIssuer(s.issuer), jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, dErrors.New(dErrors.CodeUnauthorized, "token expired")
		}
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token")
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token claims")
	}
	if claims.TokenType != want {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token type")
	}
	if claims.UserID <= 0 {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid token claims")
	}
	return claims, nil
}
