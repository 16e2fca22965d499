package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/complaint-service/internal/domain"
)

// InterviewRepository stores the ordered interviews of a complaint.
type InterviewRepository interface {
	DeleteByComplaint(ctx context.Context, complaintID string) error
	InsertMany(ctx context.Context, complaintID string, interviews []domain.Interview) error
	ListByComplaint(ctx context.Context, complaintID string) ([]domain.Interview, error)
}

type interviewRepository struct {
	pool *pgxpool.Pool
}

// NewInterviewRepository builds repository.
func NewInterviewRepository(pool *pgxpool.Pool) InterviewRepository {
	return &interviewRepository{pool: pool}
}

func (r *interviewRepository) DeleteByComplaint(ctx context.Context, complaintID string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM complaint_interviews WHERE complaint_id=$1`, complaintID)
	return err
}

func (r *interviewRepository) InsertMany(ctx context.Context, complaintID string, interviews []domain.Interview) error {
	const query = `
        INSERT INTO complaint_interviews (complaint_id, position, interview_type, scheduled_date, transcription)
        VALUES ($1,$2,$3,$4,$5)`
	for i, interview := range interviews {
		if _, err := r.pool.Exec(ctx, query,
			complaintID, i, interview.Type, interview.ScheduledDate, interview.Transcription,
		); err != nil {
			return err
		}
	}
	return nil
}

func (r *interviewRepository) ListByComplaint(ctx context.Context, complaintID string) ([]domain.Interview, error) {
	const query = `
        SELECT interview_type, scheduled_date, transcription FROM complaint_interviews
        WHERE complaint_id=$1 ORDER BY position ASC`
	rows, err := r.pool.Query(ctx, query, complaintID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Interview
	for rows.Next() {
		var interview domain.Interview
		if err := rows.Scan(&interview.Type, &interview.ScheduledDate, &interview.Transcription); err != nil {
			return nil, err
		}
		result = append(result, interview)
	}
	return result, rows.Err()
}
