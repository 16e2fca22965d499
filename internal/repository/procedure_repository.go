package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/complaint-service/internal/domain"
)

// ProcedureRepository stores the ordered procedure tags of a complaint.
// The synchronizer replaces the collection wholesale on every update.
type ProcedureRepository interface {
	DeleteByComplaint(ctx context.Context, complaintID string) error
	InsertMany(ctx context.Context, complaintID string, procedures []domain.ProcedureType) error
	ListByComplaint(ctx context.Context, complaintID string) ([]domain.ProcedureType, error)
}

type procedureRepository struct {
	pool *pgxpool.Pool
}

// NewProcedureRepository builds repository.
func NewProcedureRepository(pool *pgxpool.Pool) ProcedureRepository {
	return &procedureRepository{pool: pool}
}

func (r *procedureRepository) DeleteByComplaint(ctx context.Context, complaintID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM complaint_procedures WHERE complaint_id=$1`, complaintID)
	return err
}

func (r *procedureRepository) InsertMany(ctx context.Context, complaintID string, procedures []domain.ProcedureType) error {
	const query = `
        INSERT INTO complaint_procedures (complaint_id, position, procedure_type)
        VALUES ($1,$2,$3)`
	for i, procedure := range procedures {
		if _, err := r.pool.Exec(ctx, query, complaintID, i, procedure); err != nil {
			return err
		}
	}
	return nil
}

func (r *procedureRepository) ListByComplaint(ctx context.Context, complaintID string) ([]domain.ProcedureType, error) {
	const query = `
        SELECT procedure_type FROM complaint_procedures
        WHERE complaint_id=$1 ORDER BY position ASC`
	rows, err := r.pool.Query(ctx, query, complaintID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ProcedureType
	for rows.Next() {
		var procedure domain.ProcedureType
		if err := rows.Scan(&procedure); err != nil {
			return nil, err
		}
		result = append(result, procedure)
	}
	return result, rows.Err()
}
