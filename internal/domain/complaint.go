package domain

import "time"

// ComplaintStatus enumerates the investigation lifecycle of a complaint.
type ComplaintStatus string

const (
	StatusNova         ComplaintStatus = "nova"
	StatusInvestigacao ComplaintStatus = "investigacao"
	StatusConcluida    ComplaintStatus = "concluida"
	StatusArquivada    ComplaintStatus = "arquivada"
)

var statusDisplayNames = map[ComplaintStatus]string{
	StatusNova:         "Nova Denúncia",
	StatusInvestigacao: "Em Investigação",
	StatusConcluida:    "Concluída",
	StatusArquivada:    "Arquivada",
}

// DisplayName renders the status in its localized form. The audit log stores
// display values, so this is part of the persistence contract, not just UI.
func (s ComplaintStatus) DisplayName() string {
	if name, ok := statusDisplayNames[s]; ok {
		return name
	}
	return string(s)
}

// Valid reports whether the status is one of the known lifecycle states.
func (s ComplaintStatus) Valid() bool {
	_, ok := statusDisplayNames[s]
	return ok
}

// ProcedureType enumerates investigation procedures tracked on a complaint.
type ProcedureType string

const (
	ProcedureEntrevista      ProcedureType = "Entrevista"
	ProcedureDocumentos      ProcedureType = "Análise Documentos"
	ProcedureAudioVideo      ProcedureType = "Análise Áudio e vídeo"
	ProcedureAcessos         ProcedureType = "Análise Acessos"
	ProcedureSistemas        ProcedureType = "Análise Sistemas"
	ProcedurePerito          ProcedureType = "Perito"
)

// InterviewType identifies who is being interviewed.
type InterviewType string

const (
	InterviewTestemunha  InterviewType = "Testemunha"
	InterviewDenunciado  InterviewType = "Denunciado"
	InterviewDenunciante InterviewType = "Denunciante"
)

// Valid reports whether the interview type is known.
func (t InterviewType) Valid() bool {
	switch t {
	case InterviewTestemunha, InterviewDenunciado, InterviewDenunciante:
		return true
	}
	return false
}

// JudgmentType is the verdict attached to an analysis point.
type JudgmentType string

const (
	JudgmentProcedente        JudgmentType = "Procedente"
	JudgmentImprocedente      JudgmentType = "Improcedente"
	JudgmentParcial           JudgmentType = "Parcialmente procedente"
	JudgmentInconclusivo      JudgmentType = "Inconclusivo"
)

// ActionType enumerates the disciplinary/corrective measures.
type ActionType string

const (
	ActionAdvertencia         ActionType = "Advertência"
	ActionTransferencia       ActionType = "Transferência"
	ActionDemissao            ActionType = "Demissão"
	ActionCapacitacaoLider    ActionType = "Capacitação liderança"
	ActionCapacitacaoColab    ActionType = "Capacitação colaborador"
	ActionComunicacaoInterna  ActionType = "Comunicação interna"
	ActionContratacaoColab    ActionType = "Contratação colaborador"
	ActionFeedback            ActionType = "Feedback"
	ActionEsclarecerDuvida    ActionType = "Esclarecer dúvida"
	ActionContratacaoFerr     ActionType = "Contratação ferramenta"
	ActionPolitica            ActionType = "Política"
	ActionProcesso            ActionType = "Processo/Procedimento"
	ActionMonitoramento       ActionType = "Monitoraramento"
	ActionRepasseGG           ActionType = "Repasse Gente e Gestão"
	ActionOutros              ActionType = "Outros"
)

// ActionStatus tracks execution progress of an action.
type ActionStatus string

const (
	ActionNaoIniciado ActionStatus = "Não iniciado"
	ActionEmAndamento ActionStatus = "Em andamento"
	ActionConcluido   ActionStatus = "Concluído"
	ActionCancelado   ActionStatus = "Cancelado"
	ActionParado      ActionStatus = "Parado"
)

// ProcedenciaType is the overall verdict of the case conclusion.
type ProcedenciaType string

const (
	ProcedenciaImprocedente ProcedenciaType = "Improcedente"
	ProcedenciaProcedente   ProcedenciaType = "Procedente"
	ProcedenciaParcial      ProcedenciaType = "Parcialmente procedente"
	ProcedenciaInconclusiva ProcedenciaType = "Inconclusiva"
)

// AnalysisPoint is one investigated allegation with its verdict.
type AnalysisPoint struct {
	Point      string
	Conclusion string
	Judgment   JudgmentType
}

// Interview is immutable once added; edits happen by removal and re-add.
type Interview struct {
	Type          InterviewType
	ScheduledDate time.Time
	Transcription string
}

// Action is a disciplinary or corrective measure with its own approval gate.
type Action struct {
	Type        ActionType
	Description string
	Responsible string
	Status      ActionStatus
	StartDate   time.Time
	EndDate     time.Time
	Observation *string
	Approval    Approval
}

// Conclusion closes the case and carries the same approval gate as actions.
type Conclusion struct {
	Procedencia   ProcedenciaType
	ClosingDate   time.Time
	Justification string
	Observation   *string
	Approval      Approval
}

// Complaint is the aggregate root. It exclusively owns every child collection;
// children have no identity or lifecycle outside their parent.
type Complaint struct {
	ID                  string
	Number              string
	Category            string
	Characteristic      string
	ResponsibleInstance string
	RemovedMember       *string
	Responsible1        string
	Responsible2        string
	ReceivedDate        time.Time
	Status              ComplaintStatus
	Description         string
	ComplaintAttachment *string
	EvidenceAttachment  *string
	Procedures          []ProcedureType
	AnalysisPoints      []AnalysisPoint
	Interviews          []Interview
	Actions             []Action
	Conclusion          *Conclusion
	History             []HistoryEntry
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// IsArchived reports whether the case is frozen. An archived case accepts no
// field change other than status itself.
func (c *Complaint) IsArchived() bool {
	return c.Status == StatusArquivada
}

// IsVisibleTo implements the recusal control: the removed member can neither
// see nor edit the case. This is a conflict-of-interest filter, not deletion.
func (c *Complaint) IsVisibleTo(personName string) bool {
	if c.RemovedMember == nil {
		return true
	}
	return *c.RemovedMember != personName
}
