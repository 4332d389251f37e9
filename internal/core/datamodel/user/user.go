package user

import "time"

// User is the company-scoped profile. The id is shared with the identity
// account; removing the profile does not remove the account.
type User struct {
	ID           string    `gorm:"primaryKey;column:id"`
	CompanyID    string    `gorm:"column:company_id;index;not null"`
	FullName     string    `gorm:"column:full_name;not null"`
	Email        string    `gorm:"column:email;not null"`
	RoleName     string    `gorm:"column:role_name;not null"`
	PhoneNumber  string    `gorm:"column:phone_number"`
	IsActive     bool      `gorm:"column:is_active;default:true"`
	DashboardURL *string   `gorm:"column:dashboard_url"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (User) TableName() string {
	return "users"
}

// CompanyLookup maps a user id to its owning company so profile resolution
// never scans the per-company user sets.
type CompanyLookup struct {
	UserID    string    `gorm:"primaryKey;column:user_id"`
	CompanyID string    `gorm:"column:company_id;not null"`
	CreatedAt time.Time `gorm:"column:created_at"`
}

func (CompanyLookup) TableName() string {
	return "user_company_lookup"
}
