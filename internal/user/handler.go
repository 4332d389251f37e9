package user

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cloudmorphix/console/internal"
	"github.com/cloudmorphix/console/internal/auth"
	"github.com/cloudmorphix/console/internal/transport"
	"github.com/cloudmorphix/console/pkg/logger"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	Add(ctx context.Context, companyID string, dto AddUserDTO, actor *auth.AccessProfile) (*User, error)
	ListByCompany(ctx context.Context, companyID string) ([]*User, error)
	ChangeRole(ctx context.Context, companyID, userID string, dto ChangeRoleDTO, actor *auth.AccessProfile) (*User, error)
	Remove(ctx context.Context, companyID, userID string, actor *auth.AccessProfile) error
	UpdateProfile(ctx context.Context, userID string, dto UpdateProfileDTO) (*User, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	companyID := chi.URLParam(r, "companyID")

	profile, ok := auth.ProfileFromContext(r.Context())
	if !ok || profile == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto AddUserDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("Add: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.Service.Add(r.Context(), companyID, dto, profile)
	if err != nil {
		h.Logger.Error("Add: service error", "error", err, "company_id", companyID)
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, created)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	companyID := chi.URLParam(r, "companyID")

	users, err := h.Service.ListByCompany(r.Context(), companyID)
	if err != nil {
		h.Logger.Error("List: service error", "error", err, "company_id", companyID)
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, users)
}

func (h *Handler) ChangeRole(w http.ResponseWriter, r *http.Request) {
	companyID := chi.URLParam(r, "companyID")
	userID := chi.URLParam(r, "userID")

	profile, ok := auth.ProfileFromContext(r.Context())
	if !ok || profile == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto ChangeRoleDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("ChangeRole: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.Service.ChangeRole(r.Context(), companyID, userID, dto, profile)
	if err != nil {
		h.Logger.Error("ChangeRole: service error", "error", err, "company_id", companyID, "user_id", userID)
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, updated)
}

func (h *Handler) Remove(w http.ResponseWriter, r *http.Request) {
	companyID := chi.URLParam(r, "companyID")
	userID := chi.URLParam(r, "userID")

	profile, ok := auth.ProfileFromContext(r.Context())
	if !ok || profile == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	if err := h.Service.Remove(r.Context(), companyID, userID, profile); err != nil {
		h.Logger.Error("Remove: service error", "error", err, "company_id", companyID, "user_id", userID)
		h.WriteAppError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID := internal.UserIDFromContext(r.Context())
	if userID == "" {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto UpdateProfileDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("UpdateProfile: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.Service.UpdateProfile(r.Context(), userID, dto)
	if err != nil {
		h.Logger.Error("UpdateProfile: service error", "error", err, "user_id", userID)
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, updated)
}
