package contact

import (
	"time"

	contactDatamodel "github.com/cloudmorphix/console/internal/core/datamodel/contact"
)

// Submission is an external-facing contact form entry, readable only by
// platform operators.
type Submission struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	CompanyName string    `json:"company_name,omitempty"`
	Message     string    `json:"message,omitempty"`
	SubmittedAt time.Time `json:"submitted_at"`
}

func FromDataModel(m *contactDatamodel.Submission) *Submission {
	return &Submission{
		ID:          m.ID,
		Name:        m.Name,
		Email:       m.Email,
		CompanyName: m.CompanyName,
		Message:     m.Message,
		SubmittedAt: m.SubmittedAt,
	}
}
