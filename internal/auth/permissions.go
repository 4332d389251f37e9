package auth

// Permission flags are a fixed enumeration; roles bundle them per company.
const (
	PermManageUsers   = "manage_users"
	PermManageRoles   = "manage_roles"
	PermViewDashboard = "view_dashboard"
)

func AllPermissions() []string {
	return []string{PermManageUsers, PermManageRoles, PermViewDashboard}
}

func IsValidPermission(name string) bool {
	for _, p := range AllPermissions() {
		if p == name {
			return true
		}
	}
	return false
}

// AccessProfile is the result of resolving a user id: company membership,
// role, and the role's current permission set. Resolved fresh on each
// request; nothing caches it.
type AccessProfile struct {
	UserID             string   `json:"user_id"`
	Email              string   `json:"email"`
	FullName           string   `json:"full_name"`
	CompanyID          string   `json:"company_id"`
	CompanyName        string   `json:"company_name"`
	RoleName           string   `json:"role"`
	Permissions        []string `json:"permissions"`
	IsPlatformOperator bool     `json:"is_platform_operator"`
}

// Can is the single authorization predicate. Every permission check in the
// codebase goes through it; nothing compares role names inline.
func (p *AccessProfile) Can(permission string) bool {
	if p == nil {
		return false
	}
	for _, granted := range p.Permissions {
		if granted == permission {
			return true
		}
	}
	return false
}

func (p *AccessProfile) CanAny(permissions ...string) bool {
	for _, perm := range permissions {
		if p.Can(perm) {
			return true
		}
	}
	return false
}
