package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	authmetrics "teampulse/internal/auth/metrics"
	"teampulse/internal/auth/models"
	"teampulse/internal/auth/service"
	"teampulse/internal/platform/privacy"
	"teampulse/pkg/platform/httputil"
	"teampulse/pkg/requestcontext"
)

// Cookie names shared with the auth middleware.
const (
	AccessCookieName  = "access_token"
	RefreshCookieName = "refresh_token"
)

// Bodies of the cookie endpoints when the cookie is absent.
const (
	MsgAccessMissing  = "Access_token is missing."
	MsgRefreshMissing = "Refresh token is missing."
	MsgLoggedOut      = "Successfully logged out."
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

// Service defines the interface for authentication operations.
type Service interface {
	Login(ctx context.Context, req *models.LoginRequest) (*service.Session, error)
	Refresh(ctx context.Context, refreshToken string) (*service.Session, error)
	Verify(ctx context.Context, accessToken string) error
	RequestTenant(ctx context.Context, req *models.TenantRequestRequest) (*models.TenantRequest, error)
}

// CookieConfig controls the auth cookies.
type CookieConfig struct {
	Secure     bool
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

// Handler serves the cookie based auth endpoints.
type Handler struct {
	auth    Service
	logger  *slog.Logger
	cookies CookieConfig
	metrics *authmetrics.Metrics
}

func New(auth Service, logger *slog.Logger, cookies CookieConfig, metrics *authmetrics.Metrics) *Handler {
	return &Handler{auth: auth, logger: logger, cookies: cookies, metrics: metrics}
}

// Register registers the auth routes. None of them sit behind the auth middleware.
func (h *Handler) Register(r chi.Router) {
	r.Post("/api/auth/", h.HandleLogin)
	r.Post("/api/auth/tenant-request/", h.HandleTenantRequest)
	r.Post("/api/auth/verify/", h.HandleVerify)
	r.Post("/api/auth/refresh/", h.HandleRefresh)
	r.Post("/api/auth/logout/", h.HandleLogout)
}

// HandleLogin sets both cookies and returns the user.
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[models.LoginRequest](w, r, h.logger)
	if !ok {
		return
	}

	session, err := h.auth.Login(ctx, req)
	if err != nil {
		h.logger.WarnContext(ctx, "login failed",
			"error", err,
			"email", privacy.MaskEmail(req.Email),
			"client_ip", privacy.AnonymizeIP(privacy.ClientIP(r)),
			"request_id", requestID,
		)
		h.failure("login")
		httputil.WriteError(w, err)
		return
	}

	h.setSessionCookies(w, session)
	httputil.WriteJSON(w, http.StatusOK, session.User.View())
}

// HandleTenantRequest stores a signup request. Validation failures come back as a field map.
func (h *Handler) HandleTenantRequest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	req, ok := httputil.DecodeAndPrepare[models.TenantRequestRequest](w, r, h.logger)
	if !ok {
		return
	}

	record, err := h.auth.RequestTenant(ctx, req)
	if err != nil {
		h.logger.WarnContext(ctx, "tenant request rejected", "error", err, "request_id", requestcontext.RequestID(ctx))
		httputil.WriteError(w, err)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, models.ToTenantRequestResult(record))
}

// HandleVerify answers 200 with an empty body when the access cookie is valid.
func (h *Handler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	cookie, err := r.Cookie(AccessCookieName)
	if err != nil || cookie.Value == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, models.DetailResponse{Detail: MsgAccessMissing})
		return
	}
	if err := h.auth.Verify(ctx, cookie.Value); err != nil {
		h.logger.DebugContext(ctx, "access token rejected", "error", err, "request_id", requestcontext.RequestID(ctx))
		h.failure("verify")
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

// HandleRefresh rotates both cookies and returns the reloaded user.
func (h *Handler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	cookie, err := r.Cookie(RefreshCookieName)
	if err != nil || cookie.Value == "" {
		httputil.WriteJSON(w, http.StatusBadRequest, models.DetailResponse{Detail: MsgRefreshMissing})
		return
	}

	session, err := h.auth.Refresh(ctx, cookie.Value)
	if err != nil {
		h.logger.WarnContext(ctx, "refresh failed", "error", err, "request_id", requestcontext.RequestID(ctx))
		h.failure("refresh")
		httputil.WriteError(w, err)
		return
	}

	h.setSessionCookies(w, session)
	httputil.WriteJSON(w, http.StatusOK, session.User.View())
}

// HandleLogout expires both cookies. It succeeds without any cookie.
func (h *Handler) HandleLogout(w http.ResponseWriter, _ *http.Request) {
	h.expireCookie(w, AccessCookieName)
	h.expireCookie(w, RefreshCookieName)
	httputil.WriteJSON(w, http.StatusOK, models.DetailResponse{Detail: MsgLoggedOut})
}

func (h *Handler) setSessionCookies(w http.ResponseWriter, session *service.Session) {
	h.setCookie(w, AccessCookieName, session.Access.Value, h.cookies.AccessTTL)
	h.setCookie(w, RefreshCookieName, session.Refresh.Value, h.cookies.RefreshTTL)
}

func (h *Handler) setCookie(w http.ResponseWriter, name, value string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   h.cookies.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) expireCookie(w http.ResponseWriter, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   h.cookies.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handler) failure(endpoint string) {
	if h.metrics != nil {
		h.metrics.IncrementAuthFailure(endpoint)
	}
}
