package invite

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
	Create(ctx context.Context, companyID string, dto CreateInviteDTO, actor *auth.AccessProfile) (*Invite, error)
	Get(ctx context.Context, companyID, inviteID string) (*Invite, error)
	List(ctx context.Context, companyID string, showAll bool) ([]*Invite, error)
	Accept(ctx context.Context, companyID, inviteID string, dto AcceptInviteDTO) (*Invite, error)
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

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	companyID := chi.URLParam(r, "companyID")

	profile, ok := auth.ProfileFromContext(r.Context())
	if !ok || profile == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var dto CreateInviteDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("Create: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.Service.Create(r.Context(), companyID, dto, profile)
	if err != nil {
		h.Logger.Error("Create: service error", "error", err, "company_id", companyID)
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, created)
}

// Get serves the public invite page lookup; no session is required.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	companyID := chi.URLParam(r, "companyID")
	inviteID := chi.URLParam(r, "inviteID")

	found, err := h.Service.Get(r.Context(), companyID, inviteID)
	if err != nil {
		h.Logger.Error("Get: service error", "error", err, "invite_id", inviteID)
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, found)
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	companyID := chi.URLParam(r, "companyID")
	showAll := r.URL.Query().Get("show_all") == "true"

	invites, err := h.Service.List(r.Context(), companyID, showAll)
	if err != nil {
		h.Logger.Error("List: service error", "error", err, "company_id", companyID)
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, invites)
}

func (h *Handler) Accept(w http.ResponseWriter, r *http.Request) {
	companyID := chi.URLParam(r, "companyID")
	inviteID := chi.URLParam(r, "inviteID")

	var dto AcceptInviteDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("Accept: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	accepted, err := h.Service.Accept(r.Context(), companyID, inviteID, dto)
	if err != nil {
		h.Logger.Error("Accept: service error", "error", err, "invite_id", inviteID)
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, accepted)
}
