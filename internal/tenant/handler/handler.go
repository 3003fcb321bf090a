package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	pulse "teampulse/internal/models"
	"teampulse/internal/tenant/models"
	dErrors "teampulse/pkg/domain-errors"
	"teampulse/pkg/platform/httputil"
	"teampulse/pkg/requestcontext"
)

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

// Service is the tenant scoped API. Every call names the caller and the
// tenant from the URL.
type Service interface {
	ListTeams(ctx context.Context, callerID, tenantID int) ([]pulse.TeamDetail, error)
	CreateTeam(ctx context.Context, callerID, tenantID int, req *models.TeamRequest) (pulse.Team, error)
	UpdateTeam(ctx context.Context, callerID, tenantID, teamID int, req *models.TeamRequest) (pulse.Team, error)
	DeleteTeam(ctx context.Context, callerID, tenantID, teamID int) error

	ListUsers(ctx context.Context, callerID, tenantID int) ([]pulse.UserDetail, error)
	CreateUser(ctx context.Context, callerID, tenantID int, req *models.UserRequest) (pulse.User, error)
	UpdateUser(ctx context.Context, callerID, tenantID, userID int, req *models.UserRequest) (pulse.User, error)
	DeleteUser(ctx context.Context, callerID, tenantID, userID int) error

	ListEntries(ctx context.Context, callerID, tenantID int) ([]pulse.EntryDetail, error)
	CreateEntry(ctx context.Context, callerID, tenantID int, req *models.EntryRequest) (pulse.Entry, error)
	ListTeamEntries(ctx context.Context, callerID, tenantID int) ([]pulse.TeamEntry, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register registers the tenant routes. The caller wraps them in the auth middleware.
func (h *Handler) Register(r chi.Router) {
	r.Route("/api/tenants/{tenantID}", func(r chi.Router) {
		r.Get("/teams/", h.HandleListTeams)
		r.Post("/teams/", h.HandleCreateTeam)
		r.Put("/teams/{teamID}/", h.HandleUpdateTeam)
		r.Delete("/teams/{teamID}/", h.HandleDeleteTeam)

		r.Get("/users/", h.HandleListUsers)
		r.Post("/users/", h.HandleCreateUser)
		r.Put("/users/{userID}/", h.HandleUpdateUser)
		r.Delete("/users/{userID}/", h.HandleDeleteUser)

		r.Get("/entries/", h.HandleListEntries)
		r.Post("/entries/", h.HandleCreateEntry)
		r.Get("/team-entries/", h.HandleListTeamEntries)
	})
}

// scope resolves the caller and the tenant of the URL. On failure the error
// response is already written.
func (h *Handler) scope(w http.ResponseWriter, r *http.Request) (callerID, tenantID int, ok bool) {
	ctx := r.Context()
	callerID, err := httputil.RequireUserID(ctx, h.logger)
	if err != nil {
		httputil.WriteError(w, err)
		return 0, 0, false
	}
	tenantID, ok = h.pathID(w, r, "tenantID")
	return callerID, tenantID, ok
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request, name string) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil || id <= 0 {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "not found"))
		return 0, false
	}
	return id, true
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, msg string, err error) {
	ctx := r.Context()
	if dErrors.HasCode(err, dErrors.CodeInternal) {
		h.logger.ErrorContext(ctx, msg, "error", err, "request_id", requestcontext.RequestID(ctx))
	} else {
		h.logger.WarnContext(ctx, msg, "error", err, "request_id", requestcontext.RequestID(ctx))
	}
	httputil.WriteError(w, err)
}

func (h *Handler) HandleListTeams(w http.ResponseWriter, r *http.Request) {
	callerID, tenantID, ok := h.scope(w, r)
	if !ok {
		return
	}
	teams, err := h.service.ListTeams(r.Context(), callerID, tenantID)
	if err != nil {
		h.fail(w, r, "list teams failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, teams)
}

func (h *Handler) HandleCreateTeam(w http.ResponseWriter, r *http.Request) {
	callerID, tenantID, ok := h.scope(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[models.TeamRequest](w, r, h.logger)
	if !ok {
		return
	}
	team, err := h.service.CreateTeam(r.Context(), callerID, tenantID, req)
	if err != nil {
		h.fail(w, r, "create team failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, team)
}

func (h *Handler) HandleUpdateTeam(w http.ResponseWriter, r *http.Request) {
	callerID, tenantID, ok := h.scope(w, r)
	if !ok {
		return
	}
	teamID, ok := h.pathID(w, r, "teamID")
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[models.TeamRequest](w, r, h.logger)
	if !ok {
		return
	}
	team, err := h.service.UpdateTeam(r.Context(), callerID, tenantID, teamID, req)
	if err != nil {
		h.fail(w, r, "update team failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, team)
}

func (h *Handler) HandleDeleteTeam(w http.ResponseWriter, r *http.Request) {
	callerID, tenantID, ok := h.scope(w, r)
	if !ok {
		return
	}
	teamID, ok := h.pathID(w, r, "teamID")
	if !ok {
		return
	}
	if err := h.service.DeleteTeam(r.Context(), callerID, tenantID, teamID); err != nil {
		h.fail(w, r, "delete team failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) HandleListUsers(w http.ResponseWriter, r *http.Request) {
	callerID, tenantID, ok := h.scope(w, r)
	if !ok {
		return
	}
	users, err := h.service.ListUsers(r.Context(), callerID, tenantID)
	if err != nil {
		h.fail(w, r, "list users failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, users)
}

func (h *Handler) HandleCreateUser(w http.ResponseWriter, r *http.Request) {
	callerID, tenantID, ok := h.scope(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[models.UserRequest](w, r, h.logger)
	if !ok {
		return
	}
	user, err := h.service.CreateUser(r.Context(), callerID, tenantID, req)
	if err != nil {
		h.fail(w, r, "create user failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, user)
}

func (h *Handler) HandleUpdateUser(w http.ResponseWriter, r *http.Request) {
	callerID, tenantID, ok := h.scope(w, r)
	if !ok {
		return
	}
	userID, ok := h.pathID(w, r, "userID")
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[models.UserRequest](w, r, h.logger)
	if !ok {
		return
	}
	user, err := h.service.UpdateUser(r.Context(), callerID, tenantID, userID, req)
	if err != nil {
		h.fail(w, r, "update user failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, user)
}

func (h *Handler) HandleDeleteUser(w http.ResponseWriter, r *http.Request) {
	callerID, tenantID, ok := h.scope(w, r)
	if !ok {
		return
	}
	userID, ok := h.pathID(w, r, "userID")
	if !ok {
		return
	}
	if err := h.service.DeleteUser(r.Context(), callerID, tenantID, userID); err != nil {
		h.fail(w, r, "delete user failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) HandleListEntries(w http.ResponseWriter, r *http.Request) {
	callerID, tenantID, ok := h.scope(w, r)
	if !ok {
		return
	}
	entries, err := h.service.ListEntries(r.Context(), callerID, tenantID)
	if err != nil {
		h.fail(w, r, "list entries failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, entries)
}

func (h *Handler) HandleCreateEntry(w http.ResponseWriter, r *http.Request) {
	callerID, tenantID, ok := h.scope(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[models.EntryRequest](w, r, h.logger)
	if !ok {
		return
	}
	entry, err := h.service.CreateEntry(r.Context(), callerID, tenantID, req)
	if err != nil {
		h.fail(w, r, "create entry failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, entry)
}

func (h *Handler) HandleListTeamEntries(w http.ResponseWriter, r *http.Request) {
	callerID, tenantID, ok := h.scope(w, r)
	if !ok {
		return
	}
	teams, err := h.service.ListTeamEntries(r.Context(), callerID, tenantID)
	if err != nil {
		h.fail(w, r, "list team entries failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, teams)
}
