package invite

import (
	"time"

	inviteDatamodel "github.com/cloudmorphix/console/internal/core/datamodel/invite"
)

// Invite is a pending binding of an email address to a future company
// membership and role. CompanyName is joined in for the public invite page.
type Invite struct {
	ID               string     `json:"id"`
	CompanyID        string     `json:"company_id"`
	CompanyName      string     `json:"company_name,omitempty"`
	Email            string     `json:"email"`
	FullName         string     `json:"full_name"`
	RoleName         string     `json:"role_name"`
	Status           string     `json:"status"`
	CreatedAt        time.Time  `json:"created_at"`
	AcceptedAt       *time.Time `json:"accepted_at,omitempty"`
	AcceptedByUserID *string    `json:"accepted_by_user_id,omitempty"`
}

func FromDataModel(m *inviteDatamodel.Invite) *Invite {
	return &Invite{
		ID:               m.ID,
		CompanyID:        m.CompanyID,
		Email:            m.Email,
		FullName:         m.FullName,
		RoleName:         m.RoleName,
		Status:           m.Status,
		CreatedAt:        m.CreatedAt,
		AcceptedAt:       m.AcceptedAt,
		AcceptedByUserID: m.AcceptedByUserID,
	}
}
