package invite

import (
	"net/mail"
	"strings"

	"github.com/cloudmorphix/console/internal"
)

type CreateInviteDTO struct {
	Email    string `json:"email" validate:"required,email"`
	FullName string `json:"full_name" validate:"required"`
	RoleName string `json:"role_name" validate:"required"`
}

func (dto CreateInviteDTO) Validate() error {
	if _, err := mail.ParseAddress(dto.Email); err != nil {
		return internal.NewValidationError("email is not a valid email address", internal.ErrCodeInvalidEmail)
	}
	if strings.TrimSpace(dto.FullName) == "" {
		return internal.NewValidationError("full_name is required", internal.ErrCodeValidationFailed)
	}
	if strings.TrimSpace(dto.RoleName) == "" {
		return internal.NewValidationError("role_name is required", internal.ErrCodeInvalidRoleName)
	}
	return nil
}

// AcceptInviteDTO carries the password the invitee picks on the invite page;
// name, email and role all come from the invite itself.
type AcceptInviteDTO struct {
	Password string `json:"password" validate:"required,min=8"`
}

func (dto AcceptInviteDTO) Validate() error {
	if len(dto.Password) < 8 {
		return internal.NewValidationError("password must be at least 8 characters", internal.ErrCodeInvalidPassword)
	}
	return nil
}
