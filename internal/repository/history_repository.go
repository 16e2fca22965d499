package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/complaint-service/internal/domain"
)

// HistoryRepository stores audit entries. The log is append-only: there is no
// update or delete path here on purpose.
type HistoryRepository interface {
	Create(ctx context.Context, entry *domain.HistoryEntry) error
	ListByComplaint(ctx context.Context, complaintID string) ([]domain.HistoryEntry, error)
}

type historyRepository struct {
	pool *pgxpool.Pool
}

// NewHistoryRepository builds repository.
func NewHistoryRepository(pool *pgxpool.Pool) HistoryRepository {
	return &historyRepository{pool: pool}
}

func (r *historyRepository) Create(ctx context.Context, entry *domain.HistoryEntry) error {
	const query = `
        INSERT INTO complaint_history (complaint_id, user_name, field, old_value, new_value, change_type)
        VALUES ($1,$2,$3,$4,$5,$6)
        RETURNING id, timestamp`
	return r.pool.QueryRow(ctx, query,
		entry.ComplaintID,
		entry.User,
		entry.Field,
		entry.OldValue,
		entry.NewValue,
		entry.Type,
	).Scan(&entry.ID, &entry.Timestamp)
}

func (r *historyRepository) ListByComplaint(ctx context.Context, complaintID string) ([]domain.HistoryEntry, error) {
	const query = `
        SELECT id, complaint_id, timestamp, user_name, field, old_value, new_value, change_type
        FROM complaint_history WHERE complaint_id=$1 ORDER BY timestamp ASC`
	rows, err := r.pool.Query(ctx, query, complaintID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.HistoryEntry
	for rows.Next() {
		var entry domain.HistoryEntry
		if err := rows.Scan(
			&entry.ID,
			&entry.ComplaintID,
			&entry.Timestamp,
			&entry.User,
			&entry.Field,
			&entry.OldValue,
			&entry.NewValue,
			&entry.Type,
		); err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}
