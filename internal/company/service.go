package company

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cloudmorphix/console/internal"
	"github.com/cloudmorphix/console/internal/auth"
	companyDatamodel "github.com/cloudmorphix/console/internal/core/datamodel/company"
	identityDatamodel "github.com/cloudmorphix/console/internal/core/datamodel/identity"
	roleDatamodel "github.com/cloudmorphix/console/internal/core/datamodel/role"
	userDatamodel "github.com/cloudmorphix/console/internal/core/datamodel/user"
	"github.com/cloudmorphix/console/internal/core/events"
	"github.com/cloudmorphix/console/internal/role"
	"github.com/google/uuid"
)

// Registration is the unit written when a company signs up: the identity
// account of the first admin, the company row, the seeded role set, the
// admin's profile and its lookup record. The repository persists all of it
// in a single transaction so a company never exists without an Admin.
type Registration struct {
	Account *identityDatamodel.Account
	Company *companyDatamodel.Company
	Roles   []*roleDatamodel.Role
	Admin   *userDatamodel.User
	Lookup  *userDatamodel.CompanyLookup
}

// Repository defines the data access methods for companies.
type Repository interface {
	CreateWithAdmin(reg *Registration) error
	GetByID(id string) (*companyDatamodel.Company, error)
	Update(model *companyDatamodel.Company) error
	List(limit, offset int) ([]*companyDatamodel.Company, error)
}

// CredentialHasher hashes a plaintext password for storage.
type CredentialHasher interface {
	HashCredentials(password string) (string, error)
}

type Service struct {
	repo     Repository
	hasher   CredentialHasher
	eventBus *events.EventBus
	logger   *slog.Logger
}

func NewService(repo Repository, hasher CredentialHasher, eventBus *events.EventBus, logger *slog.Logger) *Service {
	return &Service{
		repo:     repo,
		hasher:   hasher,
		eventBus: eventBus,
		logger:   logger,
	}
}

// Register provisions a new tenant: company, default roles, first admin and
// lookup record in one transaction. The new company always starts on the
// Trial plan and is never a platform operator; that flag is flipped only by
// an out-of-band administrative action.
func (s *Service) Register(ctx context.Context, dto RegisterDTO) (*Company, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	passwordHash, err := s.hasher.HashCredentials(dto.Password)
	if err != nil {
		s.logger.Error("failed to hash admin credentials", "error", err)
		return nil, internal.NewInternalError("could not process credentials", err)
	}

	now := time.Now()
	companyID := uuid.NewString()
	adminID := uuid.NewString()

	reg := &Registration{
		Account: &identityDatamodel.Account{
			ID:           adminID,
			Email:        dto.AdminEmail,
			PasswordHash: passwordHash,
			IsActive:     true,
		},
		Company: &companyDatamodel.Company{
			ID:              companyID,
			Name:            dto.CompanyName,
			Industry:        dto.Industry,
			CompanySize:     dto.CompanySize,
			RegisteredEmail: dto.AdminEmail,
			PhoneNumber:     dto.PhoneNumber,
			PlanType:        companyDatamodel.PlanTrial,
			IsActive:        true,
			CreatedAt:       now,
			UpdatedAt:       now,
		},
		Roles: role.Defaults(companyID),
		Admin: &userDatamodel.User{
			ID:        adminID,
			CompanyID: companyID,
			FullName:  dto.AdminFullName,
			Email:     dto.AdminEmail,
			RoleName:  role.AdminRoleName,
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
		},
		Lookup: &userDatamodel.CompanyLookup{
			UserID:    adminID,
			CompanyID: companyID,
			CreatedAt: now,
		},
	}

	if err := s.repo.CreateWithAdmin(reg); err != nil {
		s.logger.Error("company registration failed", "error", err, "company_name", dto.CompanyName)
		if _, ok := internal.IsAppError(err); ok {
			return nil, err
		}
		return nil, fmt.Errorf("register company: %w", err)
	}

	s.publishAudit(ctx, companyID, adminID, dto.AdminFullName, dto.AdminEmail,
		fmt.Sprintf("registered company %q", dto.CompanyName))

	s.logger.Info("company registered",
		"company_id", companyID,
		"company_name", dto.CompanyName,
		"admin_id", adminID)

	return FromDataModel(reg.Company), nil
}

// GetByID returns the company or internal.ErrCompanyNotFound.
func (s *Service) GetByID(ctx context.Context, id string) (*Company, error) {
	model, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to get company", "error", err, "company_id", id)
		return nil, fmt.Errorf("get company: %w", err)
	}
	if model == nil {
		return nil, internal.ErrCompanyNotFound
	}
	return FromDataModel(model), nil
}

// Update applies a partial edit to the company profile.
func (s *Service) Update(ctx context.Context, id string, dto UpdateCompanyDTO, actor *auth.AccessProfile) (*Company, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	model, err := s.repo.GetByID(id)
	if err != nil {
		s.logger.Error("failed to get company for update", "error", err, "company_id", id)
		return nil, fmt.Errorf("get company: %w", err)
	}
	if model == nil {
		return nil, internal.ErrCompanyNotFound
	}

	if dto.Name != nil {
		model.Name = *dto.Name
	}
	if dto.Industry != nil {
		model.Industry = *dto.Industry
	}
	if dto.CompanySize != nil {
		model.CompanySize = *dto.CompanySize
	}
	if dto.PhoneNumber != nil {
		model.PhoneNumber = *dto.PhoneNumber
	}
	if dto.PlanType != nil {
		model.PlanType = *dto.PlanType
	}
	if dto.IsActive != nil {
		model.IsActive = *dto.IsActive
	}
	if dto.DashboardURL != nil {
		model.DashboardURL = dto.DashboardURL
	}
	model.UpdatedAt = time.Now()

	if err := s.repo.Update(model); err != nil {
		s.logger.Error("failed to update company", "error", err, "company_id", id)
		return nil, fmt.Errorf("update company: %w", err)
	}

	if actor != nil {
		s.publishAudit(ctx, id, actor.UserID, actor.FullName, actor.Email, "updated company profile")
	}

	return FromDataModel(model), nil
}

// List returns all companies, newest first. Platform-operator scope only;
// the route guard enforces that before the service is reached.
func (s *Service) List(ctx context.Context, limit, offset int) ([]*Company, error) {
	models, err := s.repo.List(limit, offset)
	if err != nil {
		s.logger.Error("failed to list companies", "error", err)
		return nil, fmt.Errorf("list companies: %w", err)
	}

	companies := make([]*Company, 0, len(models))
	for _, m := range models {
		companies = append(companies, FromDataModel(m))
	}
	return companies, nil
}

func (s *Service) publishAudit(ctx context.Context, companyID, actorID, actorName, actorEmail, message string) {
	if s.eventBus == nil {
		return
	}
	event := events.NewAuditEntryRecorded(companyID, actorID, actorName, actorEmail, message)
	if err := s.eventBus.Publish(ctx, event); err != nil {
		s.logger.Warn("audit publish failed", "error", err, "company_id", companyID)
	}
}
