package service

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/complaint-service/internal/domain"
	"github.com/spec-kit/complaint-service/internal/events"
	"github.com/spec-kit/complaint-service/internal/repository"
	apperrors "github.com/spec-kit/complaint-service/pkg/util/errorutil"
)

// ComplaintService is the persistence synchronizer: it makes a submitted
// aggregate durable while preserving the uniqueness and audit invariants.
// Child collections are replaced wholesale on every update; only header
// fields participate in the history diff.
type ComplaintService struct {
	complaints  repository.ComplaintRepository
	procedures  repository.ProcedureRepository
	analysis    repository.AnalysisPointRepository
	interviews  repository.InterviewRepository
	actions     repository.ActionRepository
	conclusions repository.ConclusionRepository
	history     repository.HistoryRepository
	users       repository.UserRepository
	dispatcher  events.Dispatcher
}

// ComplaintDependencies bundles repositories for the complaint service.
type ComplaintDependencies struct {
	ComplaintRepo  repository.ComplaintRepository
	ProcedureRepo  repository.ProcedureRepository
	AnalysisRepo   repository.AnalysisPointRepository
	InterviewRepo  repository.InterviewRepository
	ActionRepo     repository.ActionRepository
	ConclusionRepo repository.ConclusionRepository
	HistoryRepo    repository.HistoryRepository
	UserRepo       repository.UserRepository
	Dispatcher     events.Dispatcher
}

// NewComplaintService constructs the service.
func NewComplaintService(deps ComplaintDependencies) *ComplaintService {
	return &ComplaintService{
		complaints:  deps.ComplaintRepo,
		procedures:  deps.ProcedureRepo,
		analysis:    deps.AnalysisRepo,
		interviews:  deps.InterviewRepo,
		actions:     deps.ActionRepo,
		conclusions: deps.ConclusionRepo,
		history:     deps.HistoryRepo,
		users:       deps.UserRepo,
		dispatcher:  deps.Dispatcher,
	}
}

// Create persists a new complaint: uniqueness check, header insert, child
// collections as fresh inserts, then the synthetic creation history entry.
func (s *ComplaintService) Create(ctx context.Context, actor string, complaint *domain.Complaint) (*domain.Complaint, error) {
	if strings.TrimSpace(complaint.Number) == "" {
		return nil, apperrors.NewValidationError("number required", nil)
	}
	if complaint.Status == "" {
		complaint.Status = domain.StatusNova
	}
	if !complaint.Status.Valid() {
		return nil, apperrors.NewValidationError("unknown status", map[string]any{"status": complaint.Status})
	}
	applyChildDefaults(complaint)
	if err := s.checkActionResponsibles(ctx, complaint.Actions); err != nil {
		return nil, err
	}

	inUse, err := s.complaints.NumberInUse(ctx, complaint.Number, "")
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if inUse {
		return nil, apperrors.NewDuplicateNumber(complaint.Number)
	}

	if err := s.complaints.Create(ctx, complaint); err != nil {
		return nil, apperrors.MapError(err)
	}
	if err := s.insertChildren(ctx, complaint); err != nil {
		return nil, apperrors.MapError(err)
	}

	entry := CreationEntry(complaint.ID, actor)
	if err := s.history.Create(ctx, &entry); err != nil {
		return nil, apperrors.MapError(err)
	}
	complaint.History = []domain.HistoryEntry{entry}

	s.publishEvent(ctx, events.Event{
		Type:        events.EventComplaintCreated,
		ComplaintID: complaint.ID,
		Actor:       actorOrSystem(actor),
		Payload: events.ComplaintCreatedPayload{
			Number:   complaint.Number,
			Category: complaint.Category,
			Status:   complaint.Status,
		},
	})
	return complaint, nil
}

// Update synchronizes a submitted aggregate against storage: uniqueness check
// excluding the case itself, archived-immutability guard, header write, audit
// diff append, then delete-all-and-reinsert of every child collection.
// Omitted children are removed; the replace is idempotent, so retrying a
// partially failed update is the prescribed recovery path.
func (s *ComplaintService) Update(ctx context.Context, actor string, complaint *domain.Complaint) (*domain.Complaint, error) {
	if complaint.ID == "" {
		return nil, apperrors.NewValidationError("id required", nil)
	}
	if !complaint.Status.Valid() {
		return nil, apperrors.NewValidationError("unknown status", map[string]any{"status": complaint.Status})
	}
	applyChildDefaults(complaint)
	if err := s.checkActionResponsibles(ctx, complaint.Actions); err != nil {
		return nil, err
	}

	inUse, err := s.complaints.NumberInUse(ctx, complaint.Number, complaint.ID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	if inUse {
		return nil, apperrors.NewDuplicateNumber(complaint.Number)
	}

	stored, err := s.complaints.GetByID(ctx, complaint.ID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("complaint", map[string]any{"id": complaint.ID})
		}
		return nil, apperrors.MapError(err)
	}

	// Recusal covers edits as well as reads. The case is hidden, not
	// forbidden, so the removed member cannot infer its existence.
	if actor != "" && !stored.IsVisibleTo(actor) {
		return nil, apperrors.NewNotFound("complaint", map[string]any{"id": complaint.ID})
	}

	if stored.IsArchived() {
		if err := s.checkArchivedEdit(ctx, stored, complaint); err != nil {
			return nil, err
		}
	}

	if err := s.complaints.Update(ctx, complaint); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("complaint", map[string]any{"id": complaint.ID})
		}
		return nil, apperrors.MapError(err)
	}

	entries := DiffHeader(stored, complaint, actor)
	for i := range entries {
		if err := s.history.Create(ctx, &entries[i]); err != nil {
			return nil, apperrors.MapError(err)
		}
	}

	if err := s.replaceChildren(ctx, complaint); err != nil {
		return nil, apperrors.MapError(err)
	}

	s.publishEvent(ctx, events.Event{
		Type:        events.EventComplaintUpdated,
		ComplaintID: complaint.ID,
		Actor:       actorOrSystem(actor),
		Payload: events.ComplaintUpdatedPayload{
			Number:        complaint.Number,
			ChangedFields: len(entries),
		},
	})
	if stored.Status != complaint.Status {
		s.publishEvent(ctx, events.Event{
			Type:        events.EventComplaintStatusChanged,
			ComplaintID: complaint.ID,
			Actor:       actorOrSystem(actor),
			Payload: events.ComplaintStatusChangedPayload{
				OldStatus: stored.Status,
				NewStatus: complaint.Status,
			},
		})
	}

	complaint.History, err = s.history.ListByComplaint(ctx, complaint.ID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return complaint, nil
}

// Get loads one full aggregate.
func (s *ComplaintService) Get(ctx context.Context, id string) (*domain.Complaint, error) {
	complaint, err := s.complaints.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("complaint", map[string]any{"id": id})
		}
		return nil, apperrors.MapError(err)
	}
	if err := s.loadChildren(ctx, complaint); err != nil {
		return nil, apperrors.MapError(err)
	}
	return complaint, nil
}

// List returns all aggregates visible to the viewer. Cases where the viewer
// is the removed member are filtered out before any child loading.
func (s *ComplaintService) List(ctx context.Context, viewerName string) ([]domain.Complaint, error) {
	headers, err := s.complaints.List(ctx)
	if err != nil {
		return nil, apperrors.MapError(err)
	}

	result := make([]domain.Complaint, 0, len(headers))
	for i := range headers {
		if viewerName != "" && !headers[i].IsVisibleTo(viewerName) {
			continue
		}
		if err := s.loadChildren(ctx, &headers[i]); err != nil {
			return nil, apperrors.MapError(err)
		}
		result = append(result, headers[i])
	}
	return result, nil
}

// GetHistory returns the audit trail ordered ascending by timestamp. The
// trail is hidden from the removed member along with the case itself.
func (s *ComplaintService) GetHistory(ctx context.Context, viewerName, complaintID string) ([]domain.HistoryEntry, error) {
	stored, err := s.complaints.GetByID(ctx, complaintID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("complaint", map[string]any{"id": complaintID})
		}
		return nil, apperrors.MapError(err)
	}
	if viewerName != "" && !stored.IsVisibleTo(viewerName) {
		return nil, apperrors.NewNotFound("complaint", map[string]any{"id": complaintID})
	}
	entries, err := s.history.ListByComplaint(ctx, complaintID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return entries, nil
}

// checkArchivedEdit rejects any change to an archived case other than its
// status. Children count as fields: replacing them on an archived case is an
// edit too.
func (s *ComplaintService) checkArchivedEdit(ctx context.Context, stored, submitted *domain.Complaint) error {
	frozen := *submitted
	frozen.Status = stored.Status
	if len(DiffHeader(stored, &frozen, "")) > 0 {
		return apperrors.NewArchivedImmutable(stored.ID)
	}
	if err := s.loadChildren(ctx, stored); err != nil {
		return apperrors.MapError(err)
	}
	if !childrenEqual(stored, submitted) {
		return apperrors.NewArchivedImmutable(stored.ID)
	}
	return nil
}

func childrenEqual(a, b *domain.Complaint) bool {
	return slicesEqual(a.Procedures, b.Procedures) &&
		slicesEqual(a.AnalysisPoints, b.AnalysisPoints) &&
		slicesEqual(a.Interviews, b.Interviews) &&
		slicesEqual(a.Actions, b.Actions) &&
		reflect.DeepEqual(a.Conclusion, b.Conclusion)
}

// slicesEqual treats a nil collection and an empty one as the same thing: a
// decoded `[]` payload must not count as a change against an absent row set.
func slicesEqual[T any](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	if len(a) == 0 {
		return true
	}
	return reflect.DeepEqual(a, b)
}

func (s *ComplaintService) insertChildren(ctx context.Context, complaint *domain.Complaint) error {
	if err := s.procedures.InsertMany(ctx, complaint.ID, complaint.Procedures); err != nil {
		return err
	}
	if err := s.analysis.InsertMany(ctx, complaint.ID, complaint.AnalysisPoints); err != nil {
		return err
	}
	if err := s.interviews.InsertMany(ctx, complaint.ID, complaint.Interviews); err != nil {
		return err
	}
	if err := s.actions.InsertMany(ctx, complaint.ID, complaint.Actions); err != nil {
		return err
	}
	return s.conclusions.Insert(ctx, complaint.ID, complaint.Conclusion)
}

func (s *ComplaintService) replaceChildren(ctx context.Context, complaint *domain.Complaint) error {
	if err := s.procedures.DeleteByComplaint(ctx, complaint.ID); err != nil {
		return err
	}
	if err := s.analysis.DeleteByComplaint(ctx, complaint.ID); err != nil {
		return err
	}
	if err := s.interviews.DeleteByComplaint(ctx, complaint.ID); err != nil {
		return err
	}
	if err := s.actions.DeleteByComplaint(ctx, complaint.ID); err != nil {
		return err
	}
	if err := s.conclusions.DeleteByComplaint(ctx, complaint.ID); err != nil {
		return err
	}
	return s.insertChildren(ctx, complaint)
}

func (s *ComplaintService) loadChildren(ctx context.Context, complaint *domain.Complaint) error {
	var err error
	if complaint.Procedures, err = s.procedures.ListByComplaint(ctx, complaint.ID); err != nil {
		return err
	}
	if complaint.AnalysisPoints, err = s.analysis.ListByComplaint(ctx, complaint.ID); err != nil {
		return err
	}
	if complaint.Interviews, err = s.interviews.ListByComplaint(ctx, complaint.ID); err != nil {
		return err
	}
	if complaint.Actions, err = s.actions.ListByComplaint(ctx, complaint.ID); err != nil {
		return err
	}
	conclusion, err := s.conclusions.GetByComplaint(ctx, complaint.ID)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return err
	}
	complaint.Conclusion = conclusion
	if complaint.History, err = s.history.ListByComplaint(ctx, complaint.ID); err != nil {
		return err
	}
	return nil
}

// checkActionResponsibles enforces that each action names an active person.
func (s *ComplaintService) checkActionResponsibles(ctx context.Context, actions []domain.Action) error {
	if s.users == nil {
		return nil
	}
	for _, action := range actions {
		if strings.TrimSpace(action.Responsible) == "" {
			return apperrors.NewValidationError("action responsible required", nil)
		}
		user, err := s.users.GetByName(ctx, action.Responsible)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.NewValidationError("action responsible unknown",
					map[string]any{"responsible": action.Responsible})
			}
			return apperrors.MapError(err)
		}
		if !user.Active {
			return apperrors.NewValidationError("action responsible inactive",
				map[string]any{"responsible": action.Responsible})
		}
	}
	return nil
}

// applyChildDefaults fills the defaults new child records carry: analysis
// points await an opinion, actions start not-initiated with a pending
// approval, conclusions start pending.
func applyChildDefaults(complaint *domain.Complaint) {
	for i := range complaint.AnalysisPoints {
		if complaint.AnalysisPoints[i].Judgment == "" {
			complaint.AnalysisPoints[i].Judgment = domain.JudgmentInconclusivo
		}
	}
	for i := range complaint.Actions {
		if complaint.Actions[i].Status == "" {
			complaint.Actions[i].Status = domain.ActionNaoIniciado
		}
		if complaint.Actions[i].Approval.Status == "" {
			complaint.Actions[i].Approval = domain.NewApproval()
		}
	}
	if complaint.Conclusion != nil && complaint.Conclusion.Approval.Status == "" {
		complaint.Conclusion.Approval = domain.NewApproval()
	}
}

func (s *ComplaintService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
