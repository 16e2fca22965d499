package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/complaint-service/internal/domain"
	"github.com/spec-kit/complaint-service/internal/events"
)

// In-memory repository fakes mirroring the postgres implementations closely
// enough for service-level tests: copies in, copies out, pgx.ErrNoRows on miss.

type fakeComplaintRepo struct {
	mu    sync.Mutex
	items map[string]*domain.Complaint
}

func newFakeComplaintRepo() *fakeComplaintRepo {
	return &fakeComplaintRepo{items: map[string]*domain.Complaint{}}
}

func (r *fakeComplaintRepo) Create(_ context.Context, complaint *domain.Complaint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if complaint.ID == "" {
		complaint.ID = uuid.NewString()
	}
	complaint.CreatedAt = time.Now()
	complaint.UpdatedAt = complaint.CreatedAt
	stored := headerCopy(complaint)
	r.items[complaint.ID] = &stored
	return nil
}

func (r *fakeComplaintRepo) Update(_ context.Context, complaint *domain.Complaint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[complaint.ID]; !ok {
		return pgx.ErrNoRows
	}
	complaint.UpdatedAt = time.Now()
	stored := headerCopy(complaint)
	r.items[complaint.ID] = &stored
	return nil
}

func (r *fakeComplaintRepo) GetByID(_ context.Context, id string) (*domain.Complaint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.items[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	out := headerCopy(stored)
	return &out, nil
}

func (r *fakeComplaintRepo) List(_ context.Context) ([]domain.Complaint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Complaint, 0, len(r.items))
	for _, stored := range r.items {
		out = append(out, headerCopy(stored))
	}
	return out, nil
}

func (r *fakeComplaintRepo) NumberInUse(_ context.Context, number, excludeID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, stored := range r.items {
		if stored.Number == number && id != excludeID {
			return true, nil
		}
	}
	return false, nil
}

// headerCopy strips child collections the same way the header table would.
func headerCopy(c *domain.Complaint) domain.Complaint {
	out := *c
	out.Procedures = nil
	out.AnalysisPoints = nil
	out.Interviews = nil
	out.Actions = nil
	out.Conclusion = nil
	out.History = nil
	return out
}

type fakeProcedureRepo struct {
	items map[string][]domain.ProcedureType
}

func newFakeProcedureRepo() *fakeProcedureRepo {
	return &fakeProcedureRepo{items: map[string][]domain.ProcedureType{}}
}

func (r *fakeProcedureRepo) DeleteByComplaint(_ context.Context, complaintID string) error {
	delete(r.items, complaintID)
	return nil
}

func (r *fakeProcedureRepo) InsertMany(_ context.Context, complaintID string, procedures []domain.ProcedureType) error {
	r.items[complaintID] = append(r.items[complaintID], procedures...)
	return nil
}

func (r *fakeProcedureRepo) ListByComplaint(_ context.Context, complaintID string) ([]domain.ProcedureType, error) {
	return append([]domain.ProcedureType(nil), r.items[complaintID]...), nil
}

type fakeAnalysisRepo struct {
	items map[string][]domain.AnalysisPoint
}

func newFakeAnalysisRepo() *fakeAnalysisRepo {
	return &fakeAnalysisRepo{items: map[string][]domain.AnalysisPoint{}}
}

func (r *fakeAnalysisRepo) DeleteByComplaint(_ context.Context, complaintID string) error {
	delete(r.items, complaintID)
	return nil
}

func (r *fakeAnalysisRepo) InsertMany(_ context.Context, complaintID string, points []domain.AnalysisPoint) error {
	r.items[complaintID] = append(r.items[complaintID], points...)
	return nil
}

func (r *fakeAnalysisRepo) ListByComplaint(_ context.Context, complaintID string) ([]domain.AnalysisPoint, error) {
	return append([]domain.AnalysisPoint(nil), r.items[complaintID]...), nil
}

type fakeInterviewRepo struct {
	items map[string][]domain.Interview
}

func newFakeInterviewRepo() *fakeInterviewRepo {
	return &fakeInterviewRepo{items: map[string][]domain.Interview{}}
}

func (r *fakeInterviewRepo) DeleteByComplaint(_ context.Context, complaintID string) error {
	delete(r.items, complaintID)
	return nil
}

func (r *fakeInterviewRepo) InsertMany(_ context.Context, complaintID string, interviews []domain.Interview) error {
	r.items[complaintID] = append(r.items[complaintID], interviews...)
	return nil
}

func (r *fakeInterviewRepo) ListByComplaint(_ context.Context, complaintID string) ([]domain.Interview, error) {
	return append([]domain.Interview(nil), r.items[complaintID]...), nil
}

type fakeActionRepo struct {
	items map[string][]domain.Action
}

func newFakeActionRepo() *fakeActionRepo {
	return &fakeActionRepo{items: map[string][]domain.Action{}}
}

func (r *fakeActionRepo) DeleteByComplaint(_ context.Context, complaintID string) error {
	delete(r.items, complaintID)
	return nil
}

func (r *fakeActionRepo) InsertMany(_ context.Context, complaintID string, actions []domain.Action) error {
	r.items[complaintID] = append(r.items[complaintID], actions...)
	return nil
}

func (r *fakeActionRepo) ListByComplaint(_ context.Context, complaintID string) ([]domain.Action, error) {
	return append([]domain.Action(nil), r.items[complaintID]...), nil
}

func (r *fakeActionRepo) UpdateApproval(_ context.Context, complaintID string, position int, approval domain.Approval) error {
	actions := r.items[complaintID]
	if position < 0 || position >= len(actions) {
		return pgx.ErrNoRows
	}
	actions[position].Approval = approval
	return nil
}

type fakeConclusionRepo struct {
	items map[string]*domain.Conclusion
}

func newFakeConclusionRepo() *fakeConclusionRepo {
	return &fakeConclusionRepo{items: map[string]*domain.Conclusion{}}
}

func (r *fakeConclusionRepo) DeleteByComplaint(_ context.Context, complaintID string) error {
	delete(r.items, complaintID)
	return nil
}

func (r *fakeConclusionRepo) Insert(_ context.Context, complaintID string, conclusion *domain.Conclusion) error {
	if conclusion == nil {
		return nil
	}
	stored := *conclusion
	r.items[complaintID] = &stored
	return nil
}

func (r *fakeConclusionRepo) GetByComplaint(_ context.Context, complaintID string) (*domain.Conclusion, error) {
	stored, ok := r.items[complaintID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	out := *stored
	return &out, nil
}

func (r *fakeConclusionRepo) UpdateApproval(_ context.Context, complaintID string, approval domain.Approval) error {
	stored, ok := r.items[complaintID]
	if !ok {
		return pgx.ErrNoRows
	}
	stored.Approval = approval
	return nil
}

type fakeHistoryRepo struct {
	items map[string][]domain.HistoryEntry
	seq   int
}

func newFakeHistoryRepo() *fakeHistoryRepo {
	return &fakeHistoryRepo{items: map[string][]domain.HistoryEntry{}}
}

func (r *fakeHistoryRepo) Create(_ context.Context, entry *domain.HistoryEntry) error {
	r.seq++
	entry.ID = uuid.NewString()
	if entry.Timestamp.IsZero() {
		// Monotonic stamps keep the ascending order deterministic.
		entry.Timestamp = time.Now().Add(time.Duration(r.seq) * time.Millisecond)
	}
	r.items[entry.ComplaintID] = append(r.items[entry.ComplaintID], *entry)
	return nil
}

func (r *fakeHistoryRepo) ListByComplaint(_ context.Context, complaintID string) ([]domain.HistoryEntry, error) {
	return append([]domain.HistoryEntry(nil), r.items[complaintID]...), nil
}

type fakeUserRepo struct {
	byName map[string]*domain.User
}

func newFakeUserRepo(users ...domain.User) *fakeUserRepo {
	repo := &fakeUserRepo{byName: map[string]*domain.User{}}
	for i := range users {
		repo.byName[users[i].Name] = &users[i]
	}
	return repo
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	for _, user := range r.byName {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range r.byName {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) GetByName(_ context.Context, name string) (*domain.User, error) {
	user, ok := r.byName[name]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return user, nil
}

func (r *fakeUserRepo) List(_ context.Context) ([]domain.User, error) {
	out := make([]domain.User, 0, len(r.byName))
	for _, user := range r.byName {
		out = append(out, *user)
	}
	return out, nil
}

type recordingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	return nil
}

func (d *recordingDispatcher) published(eventType events.EventType) []events.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	var out []events.Event
	for _, event := range d.events {
		if event.Type == eventType {
			out = append(out, event)
		}
	}
	return out
}

// testFixture wires a complaint service over fakes.
type testFixture struct {
	complaints  *fakeComplaintRepo
	procedures  *fakeProcedureRepo
	analysis    *fakeAnalysisRepo
	interviews  *fakeInterviewRepo
	actions     *fakeActionRepo
	conclusions *fakeConclusionRepo
	history     *fakeHistoryRepo
	users       *fakeUserRepo
	dispatcher  *recordingDispatcher
	service     *ComplaintService
}

func newTestFixture(users ...domain.User) *testFixture {
	f := &testFixture{
		complaints:  newFakeComplaintRepo(),
		procedures:  newFakeProcedureRepo(),
		analysis:    newFakeAnalysisRepo(),
		interviews:  newFakeInterviewRepo(),
		actions:     newFakeActionRepo(),
		conclusions: newFakeConclusionRepo(),
		history:     newFakeHistoryRepo(),
		users:       newFakeUserRepo(users...),
		dispatcher:  &recordingDispatcher{},
	}
	f.service = NewComplaintService(ComplaintDependencies{
		ComplaintRepo:  f.complaints,
		ProcedureRepo:  f.procedures,
		AnalysisRepo:   f.analysis,
		InterviewRepo:  f.interviews,
		ActionRepo:     f.actions,
		ConclusionRepo: f.conclusions,
		HistoryRepo:    f.history,
		UserRepo:       f.users,
		Dispatcher:     f.dispatcher,
	})
	return f
}

func (f *testFixture) approvals() *ApprovalService {
	return NewApprovalService(f.complaints, f.actions, f.conclusions, f.dispatcher)
}
