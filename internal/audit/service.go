package audit

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	auditDatamodel "github.com/cloudmorphix/console/internal/core/datamodel/audit"
	"github.com/cloudmorphix/console/internal/core/events"
)

// Repository defines the data access methods for audit entries. Entries are
// append-only; there is no update or delete path.
type Repository interface {
	Create(entry *auditDatamodel.Entry) error
	ListByCompany(companyID string, limit, offset int) ([]*auditDatamodel.Entry, error)
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// SubscribeTo wires the service to the event bus. Writes are best-effort:
// a failed audit write is logged and swallowed, never surfaced to the
// action that produced it.
func (s *Service) SubscribeTo(bus *events.EventBus) {
	bus.Subscribe(events.AuditEntryRecorded, s.handleEntryRecorded)
}

func (s *Service) handleEntryRecorded(ctx context.Context, event events.Event) error {
	data, ok := event.Payload().(map[string]interface{})
	if !ok {
		s.logger.Warn("audit event with unexpected payload", "event_id", event.EventID())
		return nil
	}

	entry := &auditDatamodel.Entry{
		CompanyID:  stringField(data, "company_id"),
		ActorID:    stringField(data, "actor_id"),
		ActorName:  stringField(data, "actor_name"),
		ActorEmail: stringField(data, "actor_email"),
		Message:    stringField(data, "message"),
		CreatedAt:  event.OccurredAt(),
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	if err := s.repo.Create(entry); err != nil {
		s.logger.Warn("audit write failed", "error", err, "company_id", entry.CompanyID)
	}
	return nil
}

// ListByCompany returns a company's audit trail, newest first.
func (s *Service) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*Entry, error) {
	models, err := s.repo.ListByCompany(companyID, limit, offset)
	if err != nil {
		s.logger.Error("failed to list audit entries", "error", err, "company_id", companyID)
		return nil, fmt.Errorf("list audit entries: %w", err)
	}

	entries := make([]*Entry, 0, len(models))
	for _, m := range models {
		entries = append(entries, FromDataModel(m))
	}
	return entries, nil
}

func stringField(data map[string]interface{}, key string) string {
	if v, ok := data[key].(string); ok {
		return v
	}
	return ""
}
