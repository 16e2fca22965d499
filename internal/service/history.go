package service

import (
	"time"

	"github.com/spec-kit/complaint-service/internal/domain"
)

// SystemActor is the attribution used when no authenticated caller is known.
const SystemActor = "Sistema"

// creationMessage is the fixed value of the synthetic first history entry.
const creationMessage = "Nova denúncia criada"

const dateDisplayLayout = "02/01/2006"

// headerField is one auditable header attribute: a stable key, the localized
// label stored in the audit log, and the serializer producing the display
// value. System-managed fields (id, created_at, updated_at) are absent.
type headerField struct {
	key       string
	label     string
	serialize func(*domain.Complaint) *string
}

func stringField(get func(*domain.Complaint) string) func(*domain.Complaint) *string {
	return func(c *domain.Complaint) *string {
		v := get(c)
		return &v
	}
}

var headerFields = []headerField{
	{"number", "Número", stringField(func(c *domain.Complaint) string { return c.Number })},
	{"category", "Categoria", stringField(func(c *domain.Complaint) string { return c.Category })},
	{"characteristic", "Característica", stringField(func(c *domain.Complaint) string { return c.Characteristic })},
	{"status", "Status", stringField(func(c *domain.Complaint) string { return c.Status.DisplayName() })},
	{"responsible_instance", "Instância Responsável", stringField(func(c *domain.Complaint) string { return c.ResponsibleInstance })},
	{"removed_member", "Membro Afastado", func(c *domain.Complaint) *string { return c.RemovedMember }},
	{"responsible1", "Responsável 1", stringField(func(c *domain.Complaint) string { return c.Responsible1 })},
	{"responsible2", "Responsável 2", stringField(func(c *domain.Complaint) string { return c.Responsible2 })},
	{"received_date", "Data Recebimento", stringField(func(c *domain.Complaint) string { return c.ReceivedDate.Format(dateDisplayLayout) })},
	{"description", "Descrição", stringField(func(c *domain.Complaint) string { return c.Description })},
	{"complaint_attachment", "Anexo Denúncia", func(c *domain.Complaint) *string { return c.ComplaintAttachment }},
	{"evidence_attachment", "Anexo Evidência", func(c *domain.Complaint) *string { return c.EvidenceAttachment }},
}

// DiffHeader compares two header snapshots and produces one audit entry per
// changed field. Values are compared and stored in their serialized display
// form, so the log stays readable independent of the storage encoding.
// Identical serialized values emit nothing.
func DiffHeader(oldSnapshot, newSnapshot *domain.Complaint, actor string) []domain.HistoryEntry {
	actor = actorOrSystem(actor)
	var entries []domain.HistoryEntry
	for _, field := range headerFields {
		oldValue := field.serialize(oldSnapshot)
		newValue := field.serialize(newSnapshot)
		if equalValues(oldValue, newValue) {
			continue
		}
		entries = append(entries, domain.HistoryEntry{
			ComplaintID: newSnapshot.ID,
			User:        actor,
			Field:       field.label,
			OldValue:    oldValue,
			NewValue:    newValue,
			Type:        domain.ChangeTypeUpdate,
		})
	}
	return entries
}

// CreationEntry is the single synthetic entry appended when a case is created.
func CreationEntry(complaintID, actor string) domain.HistoryEntry {
	message := creationMessage
	return domain.HistoryEntry{
		ComplaintID: complaintID,
		Timestamp:   time.Now(),
		User:        actorOrSystem(actor),
		Field:       "Criação",
		NewValue:    &message,
		Type:        domain.ChangeTypeCreate,
	}
}

func equalValues(a, b *string) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func actorOrSystem(actor string) string {
	if actor == "" {
		return SystemActor
	}
	return actor
}
