package audit

import "time"

// Entry is append-only; nothing in the codebase updates or deletes rows.
type Entry struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	CompanyID  string    `gorm:"column:company_id;index;not null"`
	ActorID    string    `gorm:"column:actor_id;not null"`
	ActorName  string    `gorm:"column:actor_name"`
	ActorEmail string    `gorm:"column:actor_email"`
	Message    string    `gorm:"column:message;not null"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (Entry) TableName() string {
	return "audit_logs"
}
