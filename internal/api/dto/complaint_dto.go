package dto

import (
	"time"

	"github.com/spec-kit/complaint-service/internal/domain"
)

// AnalysisPointPayload carries one analysis point in requests and responses.
type AnalysisPointPayload struct {
	Point      string              `json:"point"`
	Conclusion string              `json:"conclusion"`
	Judgment   domain.JudgmentType `json:"judgment"`
}

// InterviewPayload carries one interview.
type InterviewPayload struct {
	Type          domain.InterviewType `json:"type"`
	ScheduledDate string               `json:"scheduled_date"`
	Transcription string               `json:"transcription"`
}

// ApprovalPayload is the embedded approval sub-record.
type ApprovalPayload struct {
	Status   domain.ApprovalStatus `json:"status"`
	Date     *string               `json:"date,omitempty"`
	Comments *string               `json:"comments,omitempty"`
}

// ActionPayload carries one disciplinary action.
type ActionPayload struct {
	Type        domain.ActionType   `json:"type"`
	Description string              `json:"description"`
	Responsible string              `json:"responsible"`
	Status      domain.ActionStatus `json:"status"`
	StartDate   string              `json:"start_date"`
	EndDate     string              `json:"end_date"`
	Observation *string             `json:"observation,omitempty"`
	Approval    ApprovalPayload     `json:"approval"`
}

// ConclusionPayload carries the case conclusion.
type ConclusionPayload struct {
	Procedencia   domain.ProcedenciaType `json:"procedencia"`
	ClosingDate   string                 `json:"closing_date"`
	Justification string                 `json:"justification"`
	Observation   *string                `json:"observation,omitempty"`
	Approval      ApprovalPayload        `json:"approval"`
}

// ComplaintRequest is the full-aggregate payload for create and update.
type ComplaintRequest struct {
	Number              string                 `json:"number"`
	Category            string                 `json:"category"`
	Characteristic      string                 `json:"characteristic"`
	Status              domain.ComplaintStatus `json:"status"`
	ResponsibleInstance string                 `json:"responsible_instance"`
	RemovedMember       *string                `json:"removed_member,omitempty"`
	Responsible1        string                 `json:"responsible1"`
	Responsible2        string                 `json:"responsible2"`
	ReceivedDate        string                 `json:"received_date"`
	Description         string                 `json:"description"`
	ComplaintAttachment *string                `json:"complaint_attachment,omitempty"`
	EvidenceAttachment  *string                `json:"evidence_attachment,omitempty"`
	Procedures          []domain.ProcedureType `json:"procedures"`
	AnalysisPoints      []AnalysisPointPayload `json:"analysis_points"`
	Interviews          []InterviewPayload     `json:"interviews"`
	Actions             []ActionPayload        `json:"actions"`
	Conclusion          *ConclusionPayload     `json:"conclusion,omitempty"`
}

// HistoryEntryResponse is one audit trail record.
type HistoryEntryResponse struct {
	Timestamp time.Time         `json:"timestamp"`
	User      string            `json:"user"`
	Field     string            `json:"field"`
	OldValue  *string           `json:"old_value,omitempty"`
	NewValue  *string           `json:"new_value,omitempty"`
	Type      domain.ChangeType `json:"type"`
}

// ComplaintResponse is the full aggregate.
type ComplaintResponse struct {
	ID                  string                 `json:"id"`
	Number              string                 `json:"number"`
	Category            string                 `json:"category"`
	Characteristic      string                 `json:"characteristic"`
	Status              domain.ComplaintStatus `json:"status"`
	StatusDisplay       string                 `json:"status_display"`
	ResponsibleInstance string                 `json:"responsible_instance"`
	RemovedMember       *string                `json:"removed_member,omitempty"`
	Responsible1        string                 `json:"responsible1"`
	Responsible2        string                 `json:"responsible2"`
	ReceivedDate        string                 `json:"received_date"`
	Description         string                 `json:"description"`
	ComplaintAttachment *string                `json:"complaint_attachment,omitempty"`
	EvidenceAttachment  *string                `json:"evidence_attachment,omitempty"`
	Procedures          []domain.ProcedureType `json:"procedures"`
	AnalysisPoints      []AnalysisPointPayload `json:"analysis_points"`
	Interviews          []InterviewPayload     `json:"interviews"`
	Actions             []ActionPayload        `json:"actions"`
	Conclusion          *ConclusionPayload     `json:"conclusion,omitempty"`
	History             []HistoryEntryResponse `json:"history"`
	SLADays             int                    `json:"sla_days"`
	CreatedAt           time.Time              `json:"created_at"`
	UpdatedAt           time.Time              `json:"updated_at"`
}

// ApprovalRequest is the approver's decision payload.
type ApprovalRequest struct {
	Decision domain.ApprovalStatus `json:"decision"`
	Comments *string               `json:"comments,omitempty"`
}
