package contact

import "time"

type Submission struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	Name        string    `gorm:"column:name;not null"`
	Email       string    `gorm:"column:email;not null"`
	CompanyName string    `gorm:"column:company_name;not null"`
	Message     string    `gorm:"column:message"`
	SubmittedAt time.Time `gorm:"column:submitted_at"`
}

func (Submission) TableName() string {
	return "contacts"
}
