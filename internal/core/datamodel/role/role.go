package role

import "time"

// Role is scoped to exactly one company; the name doubles as display label
// and lookup key, unique per company case-insensitively.
type Role struct {
	ID          string    `gorm:"primaryKey;column:id"`
	CompanyID   string    `gorm:"column:company_id;uniqueIndex:idx_roles_company_name;not null"`
	Name        string    `gorm:"column:name;uniqueIndex:idx_roles_company_name;not null"`
	Permissions []string  `gorm:"column:permissions;serializer:json"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (Role) TableName() string {
	return "roles"
}
