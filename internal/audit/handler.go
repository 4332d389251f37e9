package audit

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/cloudmorphix/console/internal/transport"
	"github.com/cloudmorphix/console/pkg/logger"
	"github.com/go-chi/chi"
)

type ServiceAPI interface {
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*Entry, error)
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

	limit := 50
	offset := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l <= 200 {
			limit = l
		}
	}
	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		if o, err := strconv.Atoi(offsetStr); err == nil && o >= 0 {
			offset = o
		}
	}

	entries, err := h.Service.ListByCompany(r.Context(), companyID, limit, offset)
	if err != nil {
		h.Logger.Error("List: service error", "error", err, "company_id", companyID)
		h.WriteAppError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, entries)
}
