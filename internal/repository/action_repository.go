package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/complaint-service/internal/domain"
)

// ActionRepository stores the ordered disciplinary actions of a complaint.
// Rows are addressed by (complaint_id, position) because child records have no
// identity that survives a wholesale replace.
type ActionRepository interface {
	DeleteByComplaint(ctx context.Context, complaintID string) error
	InsertMany(ctx context.Context, complaintID string, actions []domain.Action) error
	ListByComplaint(ctx context.Context, complaintID string) ([]domain.Action, error)
	UpdateApproval(ctx context.Context, complaintID string, position int, approval domain.Approval) error
}

type actionRepository struct {
	pool *pgxpool.Pool
}

// NewActionRepository builds repository.
func NewActionRepository(pool *pgxpool.Pool) ActionRepository {
	return &actionRepository{pool: pool}
}

func (r *actionRepository) DeleteByComplaint(ctx context.Context, complaintID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM complaint_actions WHERE complaint_id=$1`, complaintID)
	return err
}

func (r *actionRepository) InsertMany(ctx context.Context, complaintID string, actions []domain.Action) error {
	const query = `
        INSERT INTO complaint_actions (complaint_id, position, action_type, description, responsible,
            status, start_date, end_date, observation, ceo_approval_status, ceo_approval_date, ceo_comments)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`
	for i, action := range actions {
		if _, err := r.pool.Exec(ctx, query,
			complaintID,
			i,
			action.Type,
			action.Description,
			action.Responsible,
			action.Status,
			action.StartDate,
			action.EndDate,
			action.Observation,
			action.Approval.Status,
			action.Approval.Date,
			action.Approval.Comments,
		); err != nil {
			return err
		}
	}
	return nil
}

func (r *actionRepository) ListByComplaint(ctx context.Context, complaintID string) ([]domain.Action, error) {
	const query = `
        SELECT action_type, description, responsible, status, start_date, end_date, observation,
               ceo_approval_status, ceo_approval_date, ceo_comments
        FROM complaint_actions WHERE complaint_id=$1 ORDER BY position ASC`
	rows, err := r.pool.Query(ctx, query, complaintID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Action
	for rows.Next() {
		var action domain.Action
		if err := rows.Scan(
			&action.Type,
			&action.Description,
			&action.Responsible,
			&action.Status,
			&action.StartDate,
			&action.EndDate,
			&action.Observation,
			&action.Approval.Status,
			&action.Approval.Date,
			&action.Approval.Comments,
		); err != nil {
			return nil, err
		}
		result = append(result, action)
	}
	return result, rows.Err()
}

func (r *actionRepository) UpdateApproval(ctx context.Context, complaintID string, position int, approval domain.Approval) error {
	const query = `
        UPDATE complaint_actions SET ceo_approval_status=$1, ceo_approval_date=$2, ceo_comments=$3
        WHERE complaint_id=$4 AND position=$5`
	cmd, err := r.pool.Exec(ctx, query,
		approval.Status, approval.Date, approval.Comments, complaintID, position)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
