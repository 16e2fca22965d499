package domain

import "time"

// ChangeType captures what kind of mutation a history entry records.
type ChangeType string

const (
	ChangeTypeCreate ChangeType = "create"
	ChangeTypeUpdate ChangeType = "update"
	ChangeTypeDelete ChangeType = "delete"
)

// HistoryEntry is an immutable audit trail record. Entries are append-only:
// once written they are never mutated or removed.
type HistoryEntry struct {
	ID          string
	ComplaintID string
	Timestamp   time.Time
	User        string
	Field       string
	OldValue    *string
	NewValue    *string
	Type        ChangeType
}
