package company

import "time"

const (
	PlanTrial      = "Trial"
	PlanBasic      = "Basic"
	PlanEnterprise = "Enterprise"
)

type Company struct {
	ID                 string    `gorm:"primaryKey;column:id"`
	Name               string    `gorm:"column:name;not null"`
	Industry           string    `gorm:"column:industry"`
	CompanySize        string    `gorm:"column:company_size"`
	RegisteredEmail    string    `gorm:"column:registered_email;not null"`
	PhoneNumber        string    `gorm:"column:phone_number"`
	PlanType           string    `gorm:"column:plan_type;default:Trial"`
	IsActive           bool      `gorm:"column:is_active;default:true"`
	IsPlatformOperator bool      `gorm:"column:is_platform_operator;default:false"`
	DashboardURL       *string   `gorm:"column:dashboard_url"`
	CreatedAt          time.Time `gorm:"column:created_at"`
	UpdatedAt          time.Time `gorm:"column:updated_at"`
}

func (Company) TableName() string {
	return "companies"
}
