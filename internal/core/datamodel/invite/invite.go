package invite

import "time"

const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
)

type Invite struct {
	ID               string     `gorm:"primaryKey;column:id"`
	CompanyID        string     `gorm:"column:company_id;index;not null"`
	Email            string     `gorm:"column:email;not null"`
	FullName         string     `gorm:"column:full_name;not null"`
	RoleName         string     `gorm:"column:role_name;not null"`
	Status           string     `gorm:"column:status;default:pending"`
	CreatedAt        time.Time  `gorm:"column:created_at"`
	AcceptedAt       *time.Time `gorm:"column:accepted_at"`
	AcceptedByUserID *string    `gorm:"column:accepted_by_user_id"`
}

func (Invite) TableName() string {
	return "invites"
}
