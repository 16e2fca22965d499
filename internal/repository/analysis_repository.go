package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/complaint-service/internal/domain"
)

// AnalysisPointRepository stores the ordered analysis points of a complaint.
type AnalysisPointRepository interface {
	DeleteByComplaint(ctx context.Context, complaintID string) error
	InsertMany(ctx context.Context, complaintID string, points []domain.AnalysisPoint) error
	ListByComplaint(ctx context.Context, complaintID string) ([]domain.AnalysisPoint, error)
}

type analysisPointRepository struct {
	pool *pgxpool.Pool
}

// NewAnalysisPointRepository builds repository.
func NewAnalysisPointRepository(pool *pgxpool.Pool) AnalysisPointRepository {
	return &analysisPointRepository{pool: pool}
}

func (r *analysisPointRepository) DeleteByComplaint(ctx context.Context, complaintID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM complaint_analysis_points WHERE complaint_id=$1`, complaintID)
	return err
}

func (r *analysisPointRepository) InsertMany(ctx context.Context, complaintID string, points []domain.AnalysisPoint) error {
	const query = `
        INSERT INTO complaint_analysis_points (complaint_id, position, point, conclusion, judgment)
        VALUES ($1,$2,$3,$4,$5)`
	for i, point := range points {
		if _, err := r.pool.Exec(ctx, query, complaintID, i, point.Point, point.Conclusion, point.Judgment); err != nil {
			return err
		}
	}
	return nil
}

func (r *analysisPointRepository) ListByComplaint(ctx context.Context, complaintID string) ([]domain.AnalysisPoint, error) {
	const query = `
        SELECT point, conclusion, judgment FROM complaint_analysis_points
        WHERE complaint_id=$1 ORDER BY position ASC`
	rows, err := r.pool.Query(ctx, query, complaintID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.AnalysisPoint
	for rows.Next() {
		var point domain.AnalysisPoint
		if err := rows.Scan(&point.Point, &point.Conclusion, &point.Judgment); err != nil {
			return nil, err
		}
		result = append(result, point)
	}
	return result, rows.Err()
}
