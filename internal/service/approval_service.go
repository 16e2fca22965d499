package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/complaint-service/internal/domain"
	"github.com/spec-kit/complaint-service/internal/events"
	"github.com/spec-kit/complaint-service/internal/repository"
	apperrors "github.com/spec-kit/complaint-service/pkg/util/errorutil"
)

// ApprovalService governs the pending → approved | rejected sub-workflow
// attached to each action and to the case conclusion. Both outcomes are
// terminal; there is no path back to pending.
type ApprovalService struct {
	complaints  repository.ComplaintRepository
	actions     repository.ActionRepository
	conclusions repository.ConclusionRepository
	dispatcher  events.Dispatcher
}

// NewApprovalService constructs the service.
func NewApprovalService(
	complaints repository.ComplaintRepository,
	actions repository.ActionRepository,
	conclusions repository.ConclusionRepository,
	dispatcher events.Dispatcher,
) *ApprovalService {
	return &ApprovalService{
		complaints:  complaints,
		actions:     actions,
		conclusions: conclusions,
		dispatcher:  dispatcher,
	}
}

// DecideAction records the approver's decision on the action at the given
// position. Child rows have no stable identity across aggregate replaces, so
// position in the stored ordering is the address.
func (s *ApprovalService) DecideAction(ctx context.Context, actor, complaintID string, position int, decision domain.ApprovalStatus, comments *string) (*domain.Approval, error) {
	if err := s.guardCase(ctx, actor, complaintID); err != nil {
		return nil, err
	}

	actions, err := s.actions.ListByComplaint(ctx, complaintID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if position < 0 || position >= len(actions) {
		return nil, apperrors.NewNotFound("action", map[string]any{"position": position})
	}

	approval, err := decide(actions[position].Approval, decision, comments)
	if err != nil {
		return nil, err
	}

	if err := s.actions.UpdateApproval(ctx, complaintID, position, approval); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, complaintID, actor, events.ApprovalDecidedPayload{
		Target:      "action",
		ActionIndex: position,
		Decision:    approval.Status,
		Comments:    approval.Comments,
	})
	return &approval, nil
}

// DecideConclusion records the approver's decision on the case conclusion.
func (s *ApprovalService) DecideConclusion(ctx context.Context, actor, complaintID string, decision domain.ApprovalStatus, comments *string) (*domain.Approval, error) {
	if err := s.guardCase(ctx, actor, complaintID); err != nil {
		return nil, err
	}

	conclusion, err := s.conclusions.GetByComplaint(ctx, complaintID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("conclusion", map[string]any{"complaint_id": complaintID})
		}
		return nil, apperrors.MapError(err)
	}

	approval, err := decide(conclusion.Approval, decision, comments)
	if err != nil {
		return nil, err
	}

	if err := s.conclusions.UpdateApproval(ctx, complaintID, approval); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publish(ctx, complaintID, actor, events.ApprovalDecidedPayload{
		Target:   "conclusion",
		Decision: approval.Status,
		Comments: approval.Comments,
	})
	return &approval, nil
}

// decide validates the transition and stamps the decision time. Rejections
// without a stated reason are refused before any write.
func decide(current domain.Approval, decision domain.ApprovalStatus, comments *string) (domain.Approval, error) {
	if decision != domain.ApprovalApproved && decision != domain.ApprovalRejected {
		return domain.Approval{}, apperrors.NewValidationError("decision must be approved or rejected",
			map[string]any{"decision": decision})
	}
	if current.Status.Terminal() {
		return domain.Approval{}, apperrors.NewInvalidTransition(current.Status.DisplayName())
	}
	if decision == domain.ApprovalRejected {
		if comments == nil || strings.TrimSpace(*comments) == "" {
			return domain.Approval{}, apperrors.NewMissingComments()
		}
	}
	now := time.Now()
	return domain.Approval{Status: decision, Date: &now, Comments: comments}, nil
}

// guardCase rejects decisions against missing, recused or archived cases. An
// approval stamp is a field change, so the archived freeze covers it, and the
// removed member cannot decide on a case they cannot see.
func (s *ApprovalService) guardCase(ctx context.Context, actor, complaintID string) error {
	stored, err := s.complaints.GetByID(ctx, complaintID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("complaint", map[string]any{"id": complaintID})
		}
		return apperrors.MapError(err)
	}
	if actor != "" && !stored.IsVisibleTo(actor) {
		return apperrors.NewNotFound("complaint", map[string]any{"id": complaintID})
	}
	if stored.IsArchived() {
		return apperrors.NewArchivedImmutable(stored.ID)
	}
	return nil
}

func (s *ApprovalService) publish(ctx context.Context, complaintID, actor string, payload events.ApprovalDecidedPayload) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:          uuid.NewString(),
		Type:        events.EventApprovalDecided,
		ComplaintID: complaintID,
		Actor:       actorOrSystem(actor),
		Timestamp:   time.Now(),
		Payload:     payload,
	})
}
