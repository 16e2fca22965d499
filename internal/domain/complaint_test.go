package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatusDisplayName(t *testing.T) {
	assert.Equal(t, "Nova Denúncia", StatusNova.DisplayName())
	assert.Equal(t, "Em Investigação", StatusInvestigacao.DisplayName())
	assert.Equal(t, "Concluída", StatusConcluida.DisplayName())
	assert.Equal(t, "Arquivada", StatusArquivada.DisplayName())
	assert.Equal(t, "desconhecido", ComplaintStatus("desconhecido").DisplayName())
}

func TestStatusValid(t *testing.T) {
	for _, status := range []ComplaintStatus{StatusNova, StatusInvestigacao, StatusConcluida, StatusArquivada} {
		assert.True(t, status.Valid())
	}
	assert.False(t, ComplaintStatus("fechada").Valid())
	assert.False(t, ComplaintStatus("").Valid())
}

func TestIsArchived(t *testing.T) {
	c := Complaint{Status: StatusArquivada}
	assert.True(t, c.IsArchived())

	c.Status = StatusConcluida
	assert.False(t, c.IsArchived())
}

func TestIsVisibleTo(t *testing.T) {
	c := Complaint{}
	assert.True(t, c.IsVisibleTo("Carlos Dias"))

	member := "Carlos Dias"
	c.RemovedMember = &member
	assert.False(t, c.IsVisibleTo("Carlos Dias"))
	assert.True(t, c.IsVisibleTo("Ana Lima"))
}

func TestInterviewTypeValid(t *testing.T) {
	assert.True(t, InterviewTestemunha.Valid())
	assert.True(t, InterviewDenunciado.Valid())
	assert.True(t, InterviewDenunciante.Valid())
	assert.False(t, InterviewType("Convidado").Valid())
}

func TestApprovalTerminal(t *testing.T) {
	assert.False(t, ApprovalPending.Terminal())
	assert.True(t, ApprovalApproved.Terminal())
	assert.True(t, ApprovalRejected.Terminal())
}

func TestNewApprovalStartsPending(t *testing.T) {
	a := NewApproval()
	assert.Equal(t, ApprovalPending, a.Status)
	assert.Nil(t, a.Date)
	assert.Nil(t, a.Comments)
}

func TestApprovalDisplayName(t *testing.T) {
	assert.Equal(t, "Pendente", ApprovalPending.DisplayName())
	assert.Equal(t, "Aprovado", ApprovalApproved.DisplayName())
	assert.Equal(t, "Rejeitado", ApprovalRejected.DisplayName())
}
