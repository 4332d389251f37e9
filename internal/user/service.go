package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cloudmorphix/console/internal"
	"github.com/cloudmorphix/console/internal/auth"
	roleDatamodel "github.com/cloudmorphix/console/internal/core/datamodel/role"
	userDatamodel "github.com/cloudmorphix/console/internal/core/datamodel/user"
	"github.com/cloudmorphix/console/internal/core/events"
	"github.com/cloudmorphix/console/internal/role"
)

// Repository defines the data access methods for user profiles.
type Repository interface {
	CreateWithLookup(profile *userDatamodel.User, lookup *userDatamodel.CompanyLookup) error
	GetByID(userID string) (*userDatamodel.User, error)
	ListByCompany(companyID string) ([]*userDatamodel.User, error)
	Update(profile *userDatamodel.User) error
	DeleteWithLookup(userID string) error
}

// RoleDirectory is the slice of the role repository the user service needs
// to validate role assignments and join permission sets.
type RoleDirectory interface {
	GetByName(companyID, name string) (*roleDatamodel.Role, error)
	ListByCompany(companyID string) ([]*roleDatamodel.Role, error)
}

// AccountProvisioner creates identity accounts in a credential context
// isolated from the acting admin's session.
type AccountProvisioner interface {
	CreateAccount(email, password string) (string, error)
}

type Service struct {
	repo        Repository
	roles       RoleDirectory
	provisioner AccountProvisioner
	eventBus    *events.EventBus
	logger      *slog.Logger
}

func NewService(repo Repository, roles RoleDirectory, provisioner AccountProvisioner, eventBus *events.EventBus, logger *slog.Logger) *Service {
	return &Service{
		repo:        repo,
		roles:       roles,
		provisioner: provisioner,
		eventBus:    eventBus,
		logger:      logger,
	}
}

// Add provisions an identity account and the company-scoped profile for a
// new user. The Admin role is only granted at company creation and can
// never be assigned here.
func (s *Service) Add(ctx context.Context, companyID string, dto AddUserDTO, actor *auth.AccessProfile) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if role.IsAdminRole(dto.RoleName) {
		return nil, internal.ErrAdminRoleLocked
	}

	assigned, err := s.roles.GetByName(companyID, dto.RoleName)
	if err != nil {
		s.logger.Error("role lookup failed", "error", err, "company_id", companyID, "role", dto.RoleName)
		return nil, fmt.Errorf("get role: %w", err)
	}
	if assigned == nil {
		return nil, internal.ErrRoleNotFound
	}

	userID, err := s.provisioner.CreateAccount(dto.Email, dto.Password)
	if err != nil {
		s.logger.Error("account provisioning failed", "error", err, "company_id", companyID)
		if errors.Is(err, auth.ErrEmailTaken) {
			return nil, internal.ErrDuplicateEmail
		}
		return nil, err
	}

	now := time.Now()
	profile := &userDatamodel.User{
		ID:           userID,
		CompanyID:    companyID,
		FullName:     dto.FullName,
		Email:        dto.Email,
		RoleName:     assigned.Name,
		PhoneNumber:  dto.PhoneNumber,
		IsActive:     true,
		DashboardURL: dto.DashboardURL,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	lookup := &userDatamodel.CompanyLookup{
		UserID:    userID,
		CompanyID: companyID,
		CreatedAt: now,
	}

	if err := s.repo.CreateWithLookup(profile, lookup); err != nil {
		s.logger.Error("failed to create user profile", "error", err, "company_id", companyID, "user_id", userID)
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.recordAudit(ctx, companyID, actor, fmt.Sprintf("added user %s with role %q", dto.Email, assigned.Name))

	s.logger.Info("user added", "company_id", companyID, "user_id", userID, "role", assigned.Name)

	created := FromDataModel(profile)
	created.Permissions = assigned.Permissions
	return created, nil
}

// ListByCompany joins each user with their role's current permission set.
// A user whose role has gone missing resolves to the empty set.
func (s *Service) ListByCompany(ctx context.Context, companyID string) ([]*User, error) {
	profiles, err := s.repo.ListByCompany(companyID)
	if err != nil {
		s.logger.Error("failed to list users", "error", err, "company_id", companyID)
		return nil, fmt.Errorf("list users: %w", err)
	}

	roles, err := s.roles.ListByCompany(companyID)
	if err != nil {
		s.logger.Error("failed to list roles for join", "error", err, "company_id", companyID)
		return nil, fmt.Errorf("list roles: %w", err)
	}

	permsByRole := make(map[string][]string, len(roles))
	for _, r := range roles {
		permsByRole[r.Name] = r.Permissions
	}

	users := make([]*User, 0, len(profiles))
	for _, p := range profiles {
		u := FromDataModel(p)
		if perms, ok := permsByRole[p.RoleName]; ok {
			u.Permissions = perms
		} else {
			u.Permissions = []string{}
		}
		users = append(users, u)
	}
	return users, nil
}

// ChangeRole moves a user to another existing role. Moves onto or off the
// Admin role are rejected outright.
func (s *Service) ChangeRole(ctx context.Context, companyID, userID string, dto ChangeRoleDTO, actor *auth.AccessProfile) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	profile, err := s.repo.GetByID(userID)
	if err != nil {
		s.logger.Error("failed to get user", "error", err, "user_id", userID)
		return nil, fmt.Errorf("get user: %w", err)
	}
	if profile == nil || profile.CompanyID != companyID {
		return nil, internal.ErrUserNotFound
	}

	if role.IsAdminRole(profile.RoleName) || role.IsAdminRole(dto.RoleName) {
		return nil, internal.ErrAdminRoleLocked
	}

	assigned, err := s.roles.GetByName(companyID, dto.RoleName)
	if err != nil {
		s.logger.Error("role lookup failed", "error", err, "company_id", companyID, "role", dto.RoleName)
		return nil, fmt.Errorf("get role: %w", err)
	}
	if assigned == nil {
		return nil, internal.ErrRoleNotFound
	}

	previous := profile.RoleName
	profile.RoleName = assigned.Name
	profile.UpdatedAt = time.Now()

	if err := s.repo.Update(profile); err != nil {
		s.logger.Error("failed to change role", "error", err, "user_id", userID)
		return nil, fmt.Errorf("change role: %w", err)
	}

	s.recordAudit(ctx, companyID, actor,
		fmt.Sprintf("changed role of %s from %q to %q", profile.Email, previous, assigned.Name))

	updated := FromDataModel(profile)
	updated.Permissions = assigned.Permissions
	return updated, nil
}

// Remove deletes the profile and its lookup record. The identity account is
// left in place; a later sign-in resolves to no profile.
func (s *Service) Remove(ctx context.Context, companyID, userID string, actor *auth.AccessProfile) error {
	profile, err := s.repo.GetByID(userID)
	if err != nil {
		s.logger.Error("failed to get user", "error", err, "user_id", userID)
		return fmt.Errorf("get user: %w", err)
	}
	if profile == nil || profile.CompanyID != companyID {
		return internal.ErrUserNotFound
	}

	if err := s.repo.DeleteWithLookup(userID); err != nil {
		s.logger.Error("failed to remove user", "error", err, "user_id", userID)
		return fmt.Errorf("remove user: %w", err)
	}

	s.recordAudit(ctx, companyID, actor, fmt.Sprintf("removed user %s", profile.Email))

	s.logger.Info("user removed", "company_id", companyID, "user_id", userID)
	return nil
}

// UpdateProfile applies a self-service edit to the caller's own profile.
func (s *Service) UpdateProfile(ctx context.Context, userID string, dto UpdateProfileDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	profile, err := s.repo.GetByID(userID)
	if err != nil {
		s.logger.Error("failed to get user", "error", err, "user_id", userID)
		return nil, fmt.Errorf("get user: %w", err)
	}
	if profile == nil {
		return nil, internal.ErrUserNotFound
	}

	if dto.FullName != nil {
		profile.FullName = *dto.FullName
	}
	if dto.PhoneNumber != nil {
		profile.PhoneNumber = *dto.PhoneNumber
	}
	profile.UpdatedAt = time.Now()

	if err := s.repo.Update(profile); err != nil {
		s.logger.Error("failed to update profile", "error", err, "user_id", userID)
		return nil, fmt.Errorf("update profile: %w", err)
	}

	return FromDataModel(profile), nil
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
