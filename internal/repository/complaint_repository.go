package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/complaint-service/internal/domain"
)

// ComplaintRepository persists the aggregate header. Child collections live in
// their own repositories; the synchronizer orchestrates them.
type ComplaintRepository interface {
	Create(ctx context.Context, complaint *domain.Complaint) error
	Update(ctx context.Context, complaint *domain.Complaint) error
	GetByID(ctx context.Context, id string) (*domain.Complaint, error)
	List(ctx context.Context) ([]domain.Complaint, error)
	NumberInUse(ctx context.Context, number, excludeID string) (bool, error)
}

type complaintRepository struct {
	pool *pgxpool.Pool
}

// NewComplaintRepository instantiates repository.
func NewComplaintRepository(pool *pgxpool.Pool) ComplaintRepository {
	return &complaintRepository{pool: pool}
}

const complaintColumns = `id, number, category, characteristic, status, responsible_instance,
               removed_member, responsible1, responsible2, received_date, description,
               complaint_attachment, evidence_attachment, created_at, updated_at`

func (r *complaintRepository) Create(ctx context.Context, complaint *domain.Complaint) error {
	const query = `
        INSERT INTO complaints (number, category, characteristic, status, responsible_instance,
            removed_member, responsible1, responsible2, received_date, description,
            complaint_attachment, evidence_attachment)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		complaint.Number,
		complaint.Category,
		complaint.Characteristic,
		complaint.Status,
		complaint.ResponsibleInstance,
		complaint.RemovedMember,
		complaint.Responsible1,
		complaint.Responsible2,
		complaint.ReceivedDate,
		complaint.Description,
		complaint.ComplaintAttachment,
		complaint.EvidenceAttachment,
	).Scan(&complaint.ID, &complaint.CreatedAt, &complaint.UpdatedAt)
}

func (r *complaintRepository) Update(ctx context.Context, complaint *domain.Complaint) error {
	const query = `
        UPDATE complaints SET number=$1, category=$2, characteristic=$3, status=$4,
            responsible_instance=$5, removed_member=$6, responsible1=$7, responsible2=$8,
            received_date=$9, description=$10, complaint_attachment=$11, evidence_attachment=$12,
            updated_at=NOW()
        WHERE id=$13`
	cmd, err := r.pool.Exec(ctx, query,
		complaint.Number,
		complaint.Category,
		complaint.Characteristic,
		complaint.Status,
		complaint.ResponsibleInstance,
		complaint.RemovedMember,
		complaint.Responsible1,
		complaint.Responsible2,
		complaint.ReceivedDate,
		complaint.Description,
		complaint.ComplaintAttachment,
		complaint.EvidenceAttachment,
		complaint.ID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *complaintRepository) GetByID(ctx context.Context, id string) (*domain.Complaint, error) {
	const query = `SELECT ` + complaintColumns + ` FROM complaints WHERE id=$1`
	var complaint domain.Complaint
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&complaint.ID,
		&complaint.Number,
		&complaint.Category,
		&complaint.Characteristic,
		&complaint.Status,
		&complaint.ResponsibleInstance,
		&complaint.RemovedMember,
		&complaint.Responsible1,
		&complaint.Responsible2,
		&complaint.ReceivedDate,
		&complaint.Description,
		&complaint.ComplaintAttachment,
		&complaint.EvidenceAttachment,
		&complaint.CreatedAt,
		&complaint.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &complaint, nil
}

func (r *complaintRepository) List(ctx context.Context) ([]domain.Complaint, error) {
	const query = `SELECT ` + complaintColumns + ` FROM complaints ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Complaint
	for rows.Next() {
		var complaint domain.Complaint
		if err := rows.Scan(
			&complaint.ID,
			&complaint.Number,
			&complaint.Category,
			&complaint.Characteristic,
			&complaint.Status,
			&complaint.ResponsibleInstance,
			&complaint.RemovedMember,
			&complaint.Responsible1,
			&complaint.Responsible2,
			&complaint.ReceivedDate,
			&complaint.Description,
			&complaint.ComplaintAttachment,
			&complaint.EvidenceAttachment,
			&complaint.CreatedAt,
			&complaint.UpdatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, complaint)
	}
	return result, rows.Err()
}

// NumberInUse reports whether another non-excluded complaint already holds the
// number. The unique index on complaints.number remains the final arbiter.
func (r *complaintRepository) NumberInUse(ctx context.Context, number, excludeID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM complaints WHERE number=$1)`
	args := []any{number}
	if excludeID != "" {
		query = `SELECT EXISTS (SELECT 1 FROM complaints WHERE number=$1 AND id<>$2)`
		args = append(args, excludeID)
	}
	var exists bool
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
