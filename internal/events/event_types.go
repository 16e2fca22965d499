package events

import (
	"time"

	"github.com/spec-kit/complaint-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventComplaintCreated       EventType = "complaint_created"
	EventComplaintUpdated       EventType = "complaint_updated"
	EventComplaintStatusChanged EventType = "complaint_status_changed"
	EventApprovalDecided        EventType = "approval_decided"
)

// Event represents a domain event emitted by services. Actor is the display
// name of the person who performed the mutation.
type Event struct {
	ID          string      `json:"id"`
	Type        EventType   `json:"type"`
	ComplaintID string      `json:"complaint_id"`
	Actor       string      `json:"actor"`
	Timestamp   time.Time   `json:"timestamp"`
	Payload     interface{} `json:"payload"`
}

// ComplaintCreatedPayload payload.
type ComplaintCreatedPayload struct {
	Number   string                 `json:"number"`
	Category string                 `json:"category"`
	Status   domain.ComplaintStatus `json:"status"`
}

// ComplaintUpdatedPayload payload.
type ComplaintUpdatedPayload struct {
	Number        string `json:"number"`
	ChangedFields int    `json:"changed_fields"`
}

// ComplaintStatusChangedPayload payload.
type ComplaintStatusChangedPayload struct {
	OldStatus domain.ComplaintStatus `json:"old_status"`
	NewStatus domain.ComplaintStatus `json:"new_status"`
}

// ApprovalDecidedPayload payload. Target is "action" or "conclusion";
// ActionIndex is meaningful only for actions.
type ApprovalDecidedPayload struct {
	Target      string                `json:"target"`
	ActionIndex int                   `json:"action_index,omitempty"`
	Decision    domain.ApprovalStatus `json:"decision"`
	Comments    *string               `json:"comments,omitempty"`
}
