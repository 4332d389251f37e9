package role

import (
	"fmt"
	"strings"

	"github.com/cloudmorphix/console/internal"
	"github.com/cloudmorphix/console/internal/auth"
)

type CreateRoleDTO struct {
	Name        string   `json:"name" validate:"required"`
	Permissions []string `json:"permissions"`
}

func (dto CreateRoleDTO) Validate() error {
	if strings.TrimSpace(dto.Name) == "" {
		return internal.NewValidationError("name is required", internal.ErrCodeInvalidRoleName)
	}
	for _, p := range dto.Permissions {
		if !auth.IsValidPermission(p) {
			return internal.NewValidationError(fmt.Sprintf("unknown permission %q", p), internal.ErrCodeValidationFailed)
		}
	}
	return nil
}
