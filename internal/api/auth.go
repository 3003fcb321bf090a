package api

import (
	"context"
	"net/http"

	"teampulse/internal/models"
)

// AuthAPI groups the authentication endpoints. Credentials travel as cookies.
type AuthAPI struct {
	client *Client
}

// Login exchanges credentials for session cookies and returns the user.
func (a *AuthAPI) Login(ctx context.Context, email, password string) (*Response[models.User], error) {
	form := models.LoginForm{Email: email, Password: password}
	return do[models.User](ctx, a.client, "api.auth.login", http.MethodPost, "/api/auth/", form)
}

// TenantRequest submits a request for a new tenant.
func (a *AuthAPI) TenantRequest(ctx context.Context, form models.TenantRequestForm) (*Response[models.TenantRequestResult], error) {
	return do[models.TenantRequestResult](ctx, a.client, "api.auth.tenant_request", http.MethodPost, "/api/auth/tenant-request/", form)
}

// Verify checks the access cookie. The body is ignored.
func (a *AuthAPI) Verify(ctx context.Context) (*Response[struct{}], error) {
	return do[struct{}](ctx, a.client, "api.auth.verify", http.MethodPost, "/api/auth/verify/", nil)
}

// Refresh rotates the cookies and returns the current user.
func (a *AuthAPI) Refresh(ctx context.Context) (*Response[models.User], error) {
	return do[models.User](ctx, a.client, "api.auth.refresh", http.MethodPost, "/api/auth/refresh/", nil)
}

// Logout asks the backend to clear the cookies.
func (a *AuthAPI) Logout(ctx context.Context) (*Response[struct{}], error) {
	return do[struct{}](ctx, a.client, "api.auth.logout", http.MethodPost, "/api/auth/logout/", nil)
}
