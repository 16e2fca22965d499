package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/complaint-service/internal/domain"
	"github.com/spec-kit/complaint-service/internal/events"
)

func strPtr(s string) *string { return &s }

func createWithAction(t *testing.T, f *testFixture) *domain.Complaint {
	t.Helper()
	input := baseComplaintInput()
	input.Actions = []domain.Action{{
		Type:        domain.ActionFeedback,
		Description: "Alinhar conduta",
		Responsible: "Carlos Dias",
		StartDate:   time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2024, 1, 30, 0, 0, 0, 0, time.UTC),
	}}
	created, err := f.service.Create(context.Background(), "Ana Lima", input)
	require.NoError(t, err)
	return created
}

func createWithConclusion(t *testing.T, f *testFixture) *domain.Complaint {
	t.Helper()
	input := baseComplaintInput()
	input.Conclusion = &domain.Conclusion{
		Procedencia:   domain.ProcedenciaProcedente,
		ClosingDate:   time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		Justification: "Fatos confirmados",
	}
	created, err := f.service.Create(context.Background(), "Ana Lima", input)
	require.NoError(t, err)
	return created
}

func TestDecideActionApprove(t *testing.T) {
	f := newTestFixture(domain.User{ID: "u1", Name: "Carlos Dias", Active: true})
	created := createWithAction(t, f)
	approvals := f.approvals()

	before := time.Now()
	approval, err := approvals.DecideAction(context.Background(), "Gestor", created.ID, 0, domain.ApprovalApproved, nil)
	require.NoError(t, err)

	assert.Equal(t, domain.ApprovalApproved, approval.Status)
	require.NotNil(t, approval.Date)
	assert.False(t, approval.Date.Before(before))

	loaded, err := f.service.Get(context.Background(), created.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Actions, 1)
	assert.Equal(t, domain.ApprovalApproved, loaded.Actions[0].Approval.Status)

	published := f.dispatcher.published(events.EventApprovalDecided)
	require.Len(t, published, 1)
	assert.Equal(t, "Gestor", published[0].Actor)
}

func TestDecideActionRejectRequiresComments(t *testing.T) {
	f := newTestFixture(domain.User{ID: "u1", Name: "Carlos Dias", Active: true})
	created := createWithAction(t, f)
	approvals := f.approvals()
	ctx := context.Background()

	_, err := approvals.DecideAction(ctx, "Gestor", created.ID, 0, domain.ApprovalRejected, nil)
	require.Error(t, err)
	assert.Equal(t, "MISSING_COMMENTS", errorCode(t, err))

	_, err = approvals.DecideAction(ctx, "Gestor", created.ID, 0, domain.ApprovalRejected, strPtr("   "))
	require.Error(t, err)
	assert.Equal(t, "MISSING_COMMENTS", errorCode(t, err))

	approval, err := approvals.DecideAction(ctx, "Gestor", created.ID, 0, domain.ApprovalRejected, strPtr("Medida desproporcional"))
	require.NoError(t, err)
	assert.Equal(t, domain.ApprovalRejected, approval.Status)
	require.NotNil(t, approval.Comments)
	assert.Equal(t, "Medida desproporcional", *approval.Comments)
}

func TestDecideActionTerminalStatesAreFinal(t *testing.T) {
	f := newTestFixture(domain.User{ID: "u1", Name: "Carlos Dias", Active: true})
	created := createWithAction(t, f)
	approvals := f.approvals()
	ctx := context.Background()

	_, err := approvals.DecideAction(ctx, "Gestor", created.ID, 0, domain.ApprovalApproved, nil)
	require.NoError(t, err)

	for _, decision := range []domain.ApprovalStatus{domain.ApprovalApproved, domain.ApprovalRejected} {
		_, err = approvals.DecideAction(ctx, "Gestor", created.ID, 0, decision, strPtr("motivo"))
		require.Error(t, err)
		assert.Equal(t, "INVALID_TRANSITION", errorCode(t, err))
	}
}

func TestDecideActionRejectsPendingAsDecision(t *testing.T) {
	f := newTestFixture(domain.User{ID: "u1", Name: "Carlos Dias", Active: true})
	created := createWithAction(t, f)

	_, err := f.approvals().DecideAction(context.Background(), "Gestor", created.ID, 0, domain.ApprovalPending, nil)
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", errorCode(t, err))
}

func TestDecideActionUnknownPosition(t *testing.T) {
	f := newTestFixture(domain.User{ID: "u1", Name: "Carlos Dias", Active: true})
	created := createWithAction(t, f)

	_, err := f.approvals().DecideAction(context.Background(), "Gestor", created.ID, 5, domain.ApprovalApproved, nil)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", errorCode(t, err))
}

func TestDecideActionUnknownCase(t *testing.T) {
	f := newTestFixture()

	_, err := f.approvals().DecideAction(context.Background(), "Gestor", "missing", 0, domain.ApprovalApproved, nil)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", errorCode(t, err))
}

func TestDecideActionArchivedCase(t *testing.T) {
	f := newTestFixture(domain.User{ID: "u1", Name: "Carlos Dias", Active: true})
	created := createWithAction(t, f)
	ctx := context.Background()

	archived := *created
	archived.Status = domain.StatusArquivada
	_, err := f.service.Update(ctx, "", &archived)
	require.NoError(t, err)

	_, err = f.approvals().DecideAction(ctx, "Gestor", created.ID, 0, domain.ApprovalApproved, nil)
	require.Error(t, err)
	assert.Equal(t, "ARCHIVED", errorCode(t, err))
}

func TestDecideActionHiddenFromRemovedMember(t *testing.T) {
	f := newTestFixture(domain.User{ID: "u1", Name: "Carlos Dias", Active: true})
	ctx := context.Background()

	member := "Gestor"
	input := baseComplaintInput()
	input.RemovedMember = &member
	input.Actions = []domain.Action{{
		Type:        domain.ActionFeedback,
		Description: "Alinhar conduta",
		Responsible: "Carlos Dias",
	}}
	created, err := f.service.Create(ctx, "Ana Lima", input)
	require.NoError(t, err)

	_, err = f.approvals().DecideAction(ctx, "Gestor", created.ID, 0, domain.ApprovalApproved, nil)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", errorCode(t, err))

	// A non-recused approver decides normally.
	_, err = f.approvals().DecideAction(ctx, "Diretora", created.ID, 0, domain.ApprovalApproved, nil)
	require.NoError(t, err)
}

func TestDecideConclusion(t *testing.T) {
	f := newTestFixture()
	created := createWithConclusion(t, f)
	approvals := f.approvals()
	ctx := context.Background()

	_, err := approvals.DecideConclusion(ctx, "Gestor", created.ID, domain.ApprovalRejected, nil)
	require.Error(t, err)
	assert.Equal(t, "MISSING_COMMENTS", errorCode(t, err))

	approval, err := approvals.DecideConclusion(ctx, "Gestor", created.ID, domain.ApprovalApproved, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.ApprovalApproved, approval.Status)
	require.NotNil(t, approval.Date)

	_, err = approvals.DecideConclusion(ctx, "Gestor", created.ID, domain.ApprovalRejected, strPtr("rever"))
	require.Error(t, err)
	assert.Equal(t, "INVALID_TRANSITION", errorCode(t, err))

	loaded, err := f.service.Get(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded.Conclusion)
	assert.Equal(t, domain.ApprovalApproved, loaded.Conclusion.Approval.Status)
}

func TestDecideConclusionWithoutConclusion(t *testing.T) {
	f := newTestFixture()
	created, err := f.service.Create(context.Background(), "", baseComplaintInput())
	require.NoError(t, err)

	_, err = f.approvals().DecideConclusion(context.Background(), "Gestor", created.ID, domain.ApprovalApproved, nil)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", errorCode(t, err))
}
