package domain

import "time"

// ApprovalStatus tracks the approver's decision on an action or conclusion.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

// DisplayName renders the approval status in its localized form.
func (s ApprovalStatus) DisplayName() string {
	switch s {
	case ApprovalPending:
		return "Pendente"
	case ApprovalApproved:
		return "Aprovado"
	case ApprovalRejected:
		return "Rejeitado"
	}
	return string(s)
}

// Terminal reports whether the approval can no longer change.
func (s ApprovalStatus) Terminal() bool {
	return s == ApprovalApproved || s == ApprovalRejected
}

// Approval is the sub-record embedded in each Action and in the Conclusion.
// New records always start pending; approved and rejected are terminal.
type Approval struct {
	Status   ApprovalStatus
	Date     *time.Time
	Comments *string
}

// NewApproval returns the initial pending state.
func NewApproval() Approval {
	return Approval{Status: ApprovalPending}
}
