package role

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cloudmorphix/console/internal"
	"github.com/cloudmorphix/console/internal/auth"
	roleDatamodel "github.com/cloudmorphix/console/internal/core/datamodel/role"
	"github.com/cloudmorphix/console/internal/core/events"
	"github.com/google/uuid"
)

// Repository defines the data access methods for roles.
type Repository interface {
	Create(role *roleDatamodel.Role) error
	GetByName(companyID, name string) (*roleDatamodel.Role, error)
	NameExists(companyID, name string) (bool, error)
	ListByCompany(companyID string) ([]*roleDatamodel.Role, error)
}

type Service struct {
	repo     Repository
	eventBus *events.EventBus
	logger   *slog.Logger
}

func NewService(repo Repository, eventBus *events.EventBus, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		eventBus: eventBus,
		logger:   logger,
	}
}

// Create adds a role to a company. Names are unique per company
// case-insensitively, so a second "admin" next to "Admin" is a conflict.
func (s *Service) Create(ctx context.Context, companyID string, dto CreateRoleDTO, actor *auth.AccessProfile) (*Role, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.repo.NameExists(companyID, dto.Name)
	if err != nil {
		s.logger.Error("role name lookup failed", "error", err, "company_id", companyID)
		return nil, fmt.Errorf("check role name: %w", err)
	}
	if exists {
		return nil, internal.ErrDuplicateRole
	}

	now := time.Now()
	model := &roleDatamodel.Role{
		ID:          uuid.NewString(),
		CompanyID:   companyID,
		Name:        dto.Name,
		Permissions: dto.Permissions,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(model); err != nil {
		s.logger.Error("failed to create role", "error", err, "company_id", companyID, "role", dto.Name)
		return nil, fmt.Errorf("create role: %w", err)
	}

	s.recordAudit(ctx, companyID, actor, fmt.Sprintf("created role %q", dto.Name))

	s.logger.Info("role created", "company_id", companyID, "role", dto.Name)
	return FromDataModel(model), nil
}

func (s *Service) ListByCompany(ctx context.Context, companyID string) ([]*Role, error) {
	models, err := s.repo.ListByCompany(companyID)
	if err != nil {
		s.logger.Error("failed to list roles", "error", err, "company_id", companyID)
		return nil, fmt.Errorf("list roles: %w", err)
	}

	roles := make([]*Role, 0, len(models))
	for _, m := range models {
		roles = append(roles, FromDataModel(m))
	}
	return roles, nil
}

// GetByName returns the role or internal.ErrRoleNotFound.
func (s *Service) GetByName(ctx context.Context, companyID, name string) (*Role, error) {
	model, err := s.repo.GetByName(companyID, name)
	if err != nil {
		return nil, fmt.Errorf("get role: %w", err)
	}
	if model == nil {
		return nil, internal.ErrRoleNotFound
	}
	return FromDataModel(model), nil
}

func (s *Service) recordAudit(ctx context.Context, companyID string, actor *auth.AccessProfile, message string) {
	if s.eventBus == nil || actor == nil {
		return
	}
	event := events.NewAuditEntryRecorded(companyID, actor.UserID, actor.FullName, actor.Email, message)
	if err := s.eventBus.Publish(ctx, event); err != nil {
		s.logger.Warn("audit publish failed", "error", err, "company_id", companyID)
	}
}
