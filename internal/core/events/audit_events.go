package events

import (
	"time"

	"github.com/google/uuid"
)

const AuditEntryRecorded = "audit.entry_recorded"

// NewAuditEntryRecorded builds the event carried to the audit log writer.
// Audit recording is fire-and-forget: publishers never wait on the write.
func NewAuditEntryRecorded(companyID, actorID, actorName, actorEmail, message string) BaseEvent {
	return BaseEvent{
		ID:        uuid.NewString(),
		Type:      AuditEntryRecorded,
		Timestamp: time.Now(),
		Data: map[string]interface{}{
			"company_id":  companyID,
			"actor_id":    actorID,
			"actor_name":  actorName,
			"actor_email": actorEmail,
			"message":     message,
		},
	}
}
