package dashboard

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/cloudmorphix/console/internal/auth"
	"github.com/cloudmorphix/console/internal/transport"
	"github.com/cloudmorphix/console/pkg/logger"
)

type ServiceAPI interface {
	URLFor(ctx context.Context, profile *auth.AccessProfile) (string, error)
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

func (h *Handler) MyDashboard(w http.ResponseWriter, r *http.Request) {
	profile, ok := auth.ProfileFromContext(r.Context())
	if !ok || profile == nil {
		h.WriteError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	url, err := h.Service.URLFor(r.Context(), profile)
	if err != nil {
		h.Logger.Error("MyDashboard: service error", "error", err, "user_id", profile.UserID)
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"dashboard_url": url})
}
