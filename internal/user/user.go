package user

import (
	"time"

	userDatamodel "github.com/cloudmorphix/console/internal/core/datamodel/user"
)

// User is a company-scoped profile. Permissions are joined from the user's
// role at read time and never stored on the profile itself.
type User struct {
	ID           string    `json:"id"`
	CompanyID    string    `json:"company_id"`
	FullName     string    `json:"full_name"`
	Email        string    `json:"email"`
	RoleName     string    `json:"role_name"`
	PhoneNumber  string    `json:"phone_number,omitempty"`
	IsActive     bool      `json:"is_active"`
	DashboardURL *string   `json:"dashboard_url,omitempty"`
	Permissions  []string  `json:"permissions,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func ToDataModel(u *User) *userDatamodel.User {
	return &userDatamodel.User{
		ID:           u.ID,
		CompanyID:    u.CompanyID,
		FullName:     u.FullName,
		Email:        u.Email,
		RoleName:     u.RoleName,
		PhoneNumber:  u.PhoneNumber,
		IsActive:     u.IsActive,
		DashboardURL: u.DashboardURL,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func FromDataModel(m *userDatamodel.User) *User {
	return &User{
		ID:           m.ID,
		CompanyID:    m.CompanyID,
		FullName:     m.FullName,
		Email:        m.Email,
		RoleName:     m.RoleName,
		PhoneNumber:  m.PhoneNumber,
		IsActive:     m.IsActive,
		DashboardURL: m.DashboardURL,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
