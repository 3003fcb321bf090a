package jwttoken

// AccessValidator adapts JWTService to the auth middleware, which only
// accepts access tokens.
type AccessValidator struct {
	service *JWTService
}

func NewAccessValidator(service *JWTService) *AccessValidator {
	return &AccessValidator{service: service}
}

func (a *AccessValidator) ValidateAccessToken(tokenString string) (int, error) {
	claims, err := a.service.ValidateToken(tokenString, TokenTypeAccess)
	if err != nil {
		return 0, err
	}
	return claims.UserID, nil
}
