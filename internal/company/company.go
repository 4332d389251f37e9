package company

import (
	"time"

	companyDatamodel "github.com/cloudmorphix/console/internal/core/datamodel/company"
)

type Company struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Industry           string    `json:"industry,omitempty"`
	CompanySize        string    `json:"company_size,omitempty"`
	RegisteredEmail    string    `json:"registered_email"`
	PhoneNumber        string    `json:"phone_number,omitempty"`
	PlanType           string    `json:"plan_type"`
	IsActive           bool      `json:"is_active"`
	IsPlatformOperator bool      `json:"is_platform_operator"`
	DashboardURL       *string   `json:"dashboard_url,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func IsValidPlan(plan string) bool {
	switch plan {
	case companyDatamodel.PlanTrial, companyDatamodel.PlanBasic, companyDatamodel.PlanEnterprise:
		return true
	}
	return false
}

func ToDataModel(c *Company) *companyDatamodel.Company {
	return &companyDatamodel.Company{
		ID:                 c.ID,
		Name:               c.Name,
		Industry:           c.Industry,
		CompanySize:        c.CompanySize,
		RegisteredEmail:    c.RegisteredEmail,
		PhoneNumber:        c.PhoneNumber,
		PlanType:           c.PlanType,
		IsActive:           c.IsActive,
		IsPlatformOperator: c.IsPlatformOperator,
		DashboardURL:       c.DashboardURL,
		CreatedAt:          c.CreatedAt,
		UpdatedAt:          c.UpdatedAt,
	}
}

func FromDataModel(m *companyDatamodel.Company) *Company {
	return &Company{
		ID:                 m.ID,
		Name:               m.Name,
		Industry:           m.Industry,
		CompanySize:        m.CompanySize,
		RegisteredEmail:    m.RegisteredEmail,
		PhoneNumber:        m.PhoneNumber,
		PlanType:           m.PlanType,
		IsActive:           m.IsActive,
		IsPlatformOperator: m.IsPlatformOperator,
		DashboardURL:       m.DashboardURL,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}
