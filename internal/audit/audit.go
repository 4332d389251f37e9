package audit

import (
	"time"

	auditDatamodel "github.com/cloudmorphix/console/internal/core/datamodel/audit"
)

// Entry is an immutable audit record: who did what in a company, when.
type Entry struct {
	ID         int64     `json:"id"`
	CompanyID  string    `json:"company_id"`
	ActorID    string    `json:"actor_id"`
	ActorName  string    `json:"actor_name"`
	ActorEmail string    `json:"actor_email"`
	Message    string    `json:"message"`
	CreatedAt  time.Time `json:"created_at"`
}

func FromDataModel(m *auditDatamodel.Entry) *Entry {
	return &Entry{
		ID:         m.ID,
		CompanyID:  m.CompanyID,
		ActorID:    m.ActorID,
		ActorName:  m.ActorName,
		ActorEmail: m.ActorEmail,
		Message:    m.Message,
		CreatedAt:  m.CreatedAt,
	}
}
