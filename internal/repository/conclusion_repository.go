package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/complaint-service/internal/domain"
)

// ConclusionRepository stores the optional case conclusion (at most one row
// per complaint).
type ConclusionRepository interface {
	DeleteByComplaint(ctx context.Context, complaintID string) error
	Insert(ctx context.Context, complaintID string, conclusion *domain.Conclusion) error
	GetByComplaint(ctx context.Context, complaintID string) (*domain.Conclusion, error)
	UpdateApproval(ctx context.Context, complaintID string, approval domain.Approval) error
}

type conclusionRepository struct {
	pool *pgxpool.Pool
}

// NewConclusionRepository builds repository.
func NewConclusionRepository(pool *pgxpool.Pool) ConclusionRepository {
	return &conclusionRepository{pool: pool}
}

func (r *conclusionRepository) DeleteByComplaint(ctx context.Context, complaintID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM complaint_conclusions WHERE complaint_id=$1`, complaintID)
	return err
}

func (r *conclusionRepository) Insert(ctx context.Context, complaintID string, conclusion *domain.Conclusion) error {
	if conclusion == nil {
		return nil
	}
	const query = `
        INSERT INTO complaint_conclusions (complaint_id, procedencia, closing_date, justification,
            observation, ceo_approval_status, ceo_approval_date, ceo_comments)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`
	_, err := r.pool.Exec(ctx, query,
		complaintID,
		conclusion.Procedencia,
		conclusion.ClosingDate,
		conclusion.Justification,
		conclusion.Observation,
		conclusion.Approval.Status,
		conclusion.Approval.Date,
		conclusion.Approval.Comments,
	)
	return err
}

func (r *conclusionRepository) GetByComplaint(ctx context.Context, complaintID string) (*domain.Conclusion, error) {
	const query = `
        SELECT procedencia, closing_date, justification, observation,
               ceo_approval_status, ceo_approval_date, ceo_comments
        FROM complaint_conclusions WHERE complaint_id=$1`
	var conclusion domain.Conclusion
	if err := r.pool.QueryRow(ctx, query, complaintID).Scan(
		&conclusion.Procedencia,
		&conclusion.ClosingDate,
		&conclusion.Justification,
		&conclusion.Observation,
		&conclusion.Approval.Status,
		&conclusion.Approval.Date,
		&conclusion.Approval.Comments,
	); err != nil {
		return nil, err
	}
	return &conclusion, nil
}

func (r *conclusionRepository) UpdateApproval(ctx context.Context, complaintID string, approval domain.Approval) error {
	const query = `
        UPDATE complaint_conclusions SET ceo_approval_status=$1, ceo_approval_date=$2, ceo_comments=$3
        WHERE complaint_id=$4`
	cmd, err := r.pool.Exec(ctx, query, approval.Status, approval.Date, approval.Comments, complaintID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
