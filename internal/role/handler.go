package role

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cloudmorphix/console/internal/auth"
	"github.com/cloudmorphix/console/internal/transport"
	"github.com/cloudmorphix/console/pkg/logger"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	Create(ctx context.Context, companyID string, dto CreateRoleDTO, actor *auth.AccessProfile) (*Role, error)
	ListByCompany(ctx context.Context, companyID string) ([]*Role, error)
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

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	companyID := chi.URLParam(r, "companyID")

	roles, err := h.Service.ListByCompany(r.Context(), companyID)
	if err != nil {
		h.Logger.Error("List: service error", "error", err, "company_id", companyID)
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, roles)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	companyID := chi.URLParam(r, "companyID")

	profile, ok := auth.ProfileFromContext(r.Context())
	if !ok || profile == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateRoleDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("Create: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.Service.Create(r.Context(), companyID, dto, profile)
	if err != nil {
		h.Logger.Error("Create: service error", "error", err, "company_id", companyID, "role", dto.Name)
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, created)
}
