package user

import (
	"net/mail"
	"strings"

	"github.com/cloudmorphix/console/internal"
)

// AddUserDTO carries an admin-initiated user creation: credentials for the
// identity account plus the company-scoped profile fields.
type AddUserDTO struct {
	FullName     string  `json:"full_name" validate:"required"`
	Email        string  `json:"email" validate:"required,email"`
	Password     string  `json:"password" validate:"required,min=8"`
	RoleName     string  `json:"role_name" validate:"required"`
	PhoneNumber  string  `json:"phone_number,omitempty"`
	DashboardURL *string `json:"dashboard_url,omitempty"`
}

func (dto AddUserDTO) Validate() error {
	if strings.TrimSpace(dto.FullName) == "" {
		return internal.NewValidationError("full_name is required", internal.ErrCodeValidationFailed)
	}
	if _, err := mail.ParseAddress(dto.Email); err != nil {
		return internal.NewValidationError("email is not a valid email address", internal.ErrCodeInvalidEmail)
	}
	if len(dto.Password) < 8 {
		return internal.NewValidationError("password must be at least 8 characters", internal.ErrCodeInvalidPassword)
	}
	if strings.TrimSpace(dto.RoleName) == "" {
		return internal.NewValidationError("role_name is required", internal.ErrCodeInvalidRoleName)
	}
	return nil
}

type ChangeRoleDTO struct {
	RoleName string `json:"role_name" validate:"required"`
}

func (dto ChangeRoleDTO) Validate() error {
	if strings.TrimSpace(dto.RoleName) == "" {
		return internal.NewValidationError("role_name is required", internal.ErrCodeInvalidRoleName)
	}
	return nil
}

// UpdateProfileDTO is the self-service profile edit; nil fields are untouched.
type UpdateProfileDTO struct {
	FullName    *string `json:"full_name,omitempty"`
	PhoneNumber *string `json:"phone_number,omitempty"`
}

func (dto UpdateProfileDTO) Validate() error {
	if dto.FullName != nil && strings.TrimSpace(*dto.FullName) == "" {
		return internal.NewValidationError("full_name cannot be empty", internal.ErrCodeValidationFailed)
	}
	return nil
}
