package role

import (
	"strings"
	"time"

	"github.com/cloudmorphix/console/internal/auth"
	roleDatamodel "github.com/cloudmorphix/console/internal/core/datamodel/role"
	"github.com/google/uuid"
)

// AdminRoleName is reserved: its permission set is fixed at company creation
// and it is never assignable through the standard role paths.
const AdminRoleName = "Admin"

const (
	AnalystRoleName = "Analyst"
	ViewerRoleName  = "Viewer"
)

type Role struct {
	ID          string    `json:"id"`
	CompanyID   string    `json:"company_id"`
	Name        string    `json:"name"`
	Permissions []string  `json:"permissions"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func IsAdminRole(name string) bool {
	return strings.EqualFold(name, AdminRoleName)
}

// Defaults returns the role set seeded for every new company. Admin carries
// every permission flag; the read-only roles see the dashboard and nothing else.
func Defaults(companyID string) []*roleDatamodel.Role {
	now := time.Now()
	seed := []struct {
		name        string
		permissions []string
	}{
		{AdminRoleName, auth.AllPermissions()},
		{AnalystRoleName, []string{auth.PermViewDashboard}},
		{ViewerRoleName, []string{auth.PermViewDashboard}},
	}

	roles := make([]*roleDatamodel.Role, 0, len(seed))
	for _, s := range seed {
		roles = append(roles, &roleDatamodel.Role{
			ID:          uuid.NewString(),
			CompanyID:   companyID,
			Name:        s.name,
			Permissions: s.permissions,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}
	return roles
}

func ToDataModel(r *Role) *roleDatamodel.Role {
	return &roleDatamodel.Role{
		ID:          r.ID,
		CompanyID:   r.CompanyID,
		Name:        r.Name,
		Permissions: r.Permissions,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func FromDataModel(m *roleDatamodel.Role) *Role {
	return &Role{
		ID:          m.ID,
		CompanyID:   m.CompanyID,
		Name:        m.Name,
		Permissions: m.Permissions,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}
