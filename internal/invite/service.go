package invite

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cloudmorphix/console/internal"
	"github.com/cloudmorphix/console/internal/auth"
	companyDatamodel "github.com/cloudmorphix/console/internal/core/datamodel/company"
	inviteDatamodel "github.com/cloudmorphix/console/internal/core/datamodel/invite"
	roleDatamodel "github.com/cloudmorphix/console/internal/core/datamodel/role"
	userDatamodel "github.com/cloudmorphix/console/internal/core/datamodel/user"
	"github.com/cloudmorphix/console/internal/core/events"
	"github.com/cloudmorphix/console/internal/role"
	"github.com/google/uuid"
)

// Repository defines the data access methods for invites.
type Repository interface {
	Create(inv *inviteDatamodel.Invite) error
	GetByID(companyID, inviteID string) (*inviteDatamodel.Invite, error)
	ListByCompany(companyID string, pendingOnly bool) ([]*inviteDatamodel.Invite, error)
	// Accept marks the invite accepted and creates the member in one
	// transaction; a second accept fails with internal.ErrInviteAccepted.
	Accept(inviteID string, acceptedAt time.Time, profile *userDatamodel.User, lookup *userDatamodel.CompanyLookup) error
}

type RoleDirectory interface {
	GetByName(companyID, name string) (*roleDatamodel.Role, error)
}

type CompanyDirectory interface {
	GetByID(id string) (*companyDatamodel.Company, error)
}

type AccountProvisioner interface {
	CreateAccount(email, password string) (string, error)
}

type Service struct {
	repo        Repository
	roles       RoleDirectory
	companies   CompanyDirectory
	provisioner AccountProvisioner
	eventBus    *events.EventBus
	logger      *slog.Logger
}

func NewService(repo Repository, roles RoleDirectory, companies CompanyDirectory, provisioner AccountProvisioner, eventBus *events.EventBus, logger *slog.Logger) *Service {
	return &Service{
		repo:        repo,
		roles:       roles,
		companies:   companies,
		provisioner: provisioner,
		eventBus:    eventBus,
		logger:      logger,
	}
}

// Create records a pending invite. The proposed role must already exist and
// can never be Admin.
func (s *Service) Create(ctx context.Context, companyID string, dto CreateInviteDTO, actor *auth.AccessProfile) (*Invite, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if role.IsAdminRole(dto.RoleName) {
		return nil, internal.ErrAdminRoleLocked
	}

	proposed, err := s.roles.GetByName(companyID, dto.RoleName)
	if err != nil {
		s.logger.Error("role lookup failed", "error", err, "company_id", companyID, "role", dto.RoleName)
		return nil, fmt.Errorf("get role: %w", err)
	}
	if proposed == nil {
		return nil, internal.ErrRoleNotFound
	}

	model := &inviteDatamodel.Invite{
		ID:        uuid.NewString(),
		CompanyID: companyID,
		Email:     dto.Email,
		FullName:  dto.FullName,
		RoleName:  proposed.Name,
		Status:    inviteDatamodel.StatusPending,
		CreatedAt: time.Now(),
	}

	if err := s.repo.Create(model); err != nil {
		s.logger.Error("failed to create invite", "error", err, "company_id", companyID)
		return nil, fmt.Errorf("create invite: %w", err)
	}

	s.recordAudit(ctx, companyID, actor, fmt.Sprintf("invited %s as %q", dto.Email, proposed.Name))

	s.logger.Info("invite created", "company_id", companyID, "invite_id", model.ID, "role", proposed.Name)
	return FromDataModel(model), nil
}

// Get returns the invite with the company display name joined in. It backs
// the public invite page, so it leaks nothing beyond what the invite email
// already contained.
func (s *Service) Get(ctx context.Context, companyID, inviteID string) (*Invite, error) {
	model, err := s.repo.GetByID(companyID, inviteID)
	if err != nil {
		s.logger.Error("failed to get invite", "error", err, "invite_id", inviteID)
		return nil, fmt.Errorf("get invite: %w", err)
	}
	if model == nil {
		return nil, internal.ErrInviteNotFound
	}

	inv := FromDataModel(model)

	comp, err := s.companies.GetByID(companyID)
	if err != nil {
		s.logger.Warn("company join failed for invite", "error", err, "company_id", companyID)
	} else if comp != nil {
		inv.CompanyName = comp.Name
	}

	return inv, nil
}

// List returns a company's invites, pending ones only unless showAll is set.
func (s *Service) List(ctx context.Context, companyID string, showAll bool) ([]*Invite, error) {
	models, err := s.repo.ListByCompany(companyID, !showAll)
	if err != nil {
		s.logger.Error("failed to list invites", "error", err, "company_id", companyID)
		return nil, fmt.Errorf("list invites: %w", err)
	}

	invites := make([]*Invite, 0, len(models))
	for _, m := range models {
		invites = append(invites, FromDataModel(m))
	}
	return invites, nil
}

// Accept redeems a pending invite: provisions the identity account, then
// creates the member and marks the invite accepted in one transaction. A
// second accept of the same invite is a conflict, never a silent success.
func (s *Service) Accept(ctx context.Context, companyID, inviteID string, dto AcceptInviteDTO) (*Invite, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	model, err := s.repo.GetByID(companyID, inviteID)
	if err != nil {
		s.logger.Error("failed to get invite", "error", err, "invite_id", inviteID)
		return nil, fmt.Errorf("get invite: %w", err)
	}
	if model == nil {
		return nil, internal.ErrInviteNotFound
	}
	if model.Status == inviteDatamodel.StatusAccepted {
		return nil, internal.ErrInviteAccepted
	}

	userID, err := s.provisioner.CreateAccount(model.Email, dto.Password)
	if err != nil {
		s.logger.Error("account provisioning failed for invite", "error", err, "invite_id", inviteID)
		if errors.Is(err, auth.ErrEmailTaken) {
			return nil, internal.ErrDuplicateEmail
		}
		return nil, err
	}

	now := time.Now()
	profile := &userDatamodel.User{
		ID:        userID,
		CompanyID: model.CompanyID,
		FullName:  model.FullName,
		Email:     model.Email,
		RoleName:  model.RoleName,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	lookup := &userDatamodel.CompanyLookup{
		UserID:    userID,
		CompanyID: model.CompanyID,
		CreatedAt: now,
	}

	if err := s.repo.Accept(inviteID, now, profile, lookup); err != nil {
		s.logger.Error("failed to accept invite", "error", err, "invite_id", inviteID)
		if _, ok := internal.IsAppError(err); ok {
			return nil, err
		}
		return nil, fmt.Errorf("accept invite: %w", err)
	}

	s.publishAudit(ctx, model.CompanyID, userID, model.FullName, model.Email,
		fmt.Sprintf("accepted invite as %q", model.RoleName))

	s.logger.Info("invite accepted", "invite_id", inviteID, "user_id", userID)

	model.Status = inviteDatamodel.StatusAccepted
	model.AcceptedAt = &now
	model.AcceptedByUserID = &userID
	return FromDataModel(model), nil
}

func (s *Service) recordAudit(ctx context.Context, companyID string, actor *auth.AccessProfile, message string) {
	if actor == nil {
		return
	}
	s.publishAudit(ctx, companyID, actor.UserID, actor.FullName, actor.Email, message)
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
