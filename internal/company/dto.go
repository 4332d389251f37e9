package company

import (
	"net/mail"
	"strings"

	"github.com/cloudmorphix/console/internal"
)

// RegisterDTO carries the self-service signup payload: the company profile
// plus the credentials of its first admin.
type RegisterDTO struct {
	CompanyName   string `json:"company_name" validate:"required"`
	Industry      string `json:"industry,omitempty"`
	CompanySize   string `json:"company_size,omitempty"`
	PhoneNumber   string `json:"phone_number,omitempty"`
	AdminFullName string `json:"admin_full_name" validate:"required"`
	AdminEmail    string `json:"admin_email" validate:"required,email"`
	Password      string `json:"password" validate:"required,min=8"`
}

func (dto RegisterDTO) Validate() error {
	if strings.TrimSpace(dto.CompanyName) == "" {
		return internal.NewValidationError("company_name is required", internal.ErrCodeValidationFailed)
	}
	if strings.TrimSpace(dto.AdminFullName) == "" {
		return internal.NewValidationError("admin_full_name is required", internal.ErrCodeValidationFailed)
	}
	if _, err := mail.ParseAddress(dto.AdminEmail); err != nil {
		return internal.NewValidationError("admin_email is not a valid email address", internal.ErrCodeInvalidEmail)
	}
	if len(dto.Password) < 8 {
		return internal.NewValidationError("password must be at least 8 characters", internal.ErrCodeInvalidPassword)
	}
	return nil
}

// UpdateCompanyDTO is a partial update; nil fields are left untouched.
type UpdateCompanyDTO struct {
	Name         *string `json:"name,omitempty"`
	Industry     *string `json:"industry,omitempty"`
	CompanySize  *string `json:"company_size,omitempty"`
	PhoneNumber  *string `json:"phone_number,omitempty"`
	PlanType     *string `json:"plan_type,omitempty"`
	IsActive     *bool   `json:"is_active,omitempty"`
	DashboardURL *string `json:"dashboard_url,omitempty"`
}

func (dto UpdateCompanyDTO) Validate() error {
	if dto.Name != nil && strings.TrimSpace(*dto.Name) == "" {
		return internal.NewValidationError("name cannot be empty", internal.ErrCodeValidationFailed)
	}
	if dto.PlanType != nil && !IsValidPlan(*dto.PlanType) {
		return internal.NewValidationError("plan_type must be one of Trial, Basic, Enterprise", internal.ErrCodeInvalidPlan)
	}
	return nil
}
