package repository

import (
	"context"
	"fmt"

	"github.com/Freeeeeet/tuition_site/internal/model"
	"github.com/Freeeeeet/tuition_site/internal/repository/base"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const requestColumns = `id, parent_submission_id, parent_name, email, phone, subject, level, urgency,
	budget_min, budget_max, notes, status, matched_tutor_ids, match_summary, created_at, updated_at`

var requestSearch = []string{"parent_name", "email", "phone", "subject", "level"}

type RequestRepository struct {
	*base.Repository
	logger *zap.Logger
}

func NewRequestRepository(pool *pgxpool.Pool, logger *zap.Logger) *RequestRepository {
	return &RequestRepository{
		Repository: base.NewRepository(pool),
		logger:     logger,
	}
}

// Create stores a tutor request.
func (r *RequestRepository) Create(ctx context.Context, req *model.TutorRequest) error {
	query := `
		INSERT INTO tutor_requests (id, parent_submission_id, parent_name, email, phone, subject, level, urgency,
			budget_min, budget_max, notes, status, matched_tutor_ids, match_summary, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	matched := req.MatchedTutorIDs
	if matched == nil {
		matched = []uuid.UUID{}
	}

	_, err := r.Pool().Exec(
		ctx, query,
		req.ID,
		req.ParentSubmissionID,
		req.ParentName,
		req.Email,
		req.Phone,
		req.Subject,
		req.Level,
		req.Urgency,
		req.BudgetMin,
		req.BudgetMax,
		req.Notes,
		req.Status,
		matched,
		req.MatchSummary,
		req.CreatedAt,
		req.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to insert tutor request",
			zap.String("id", req.ID.String()),
			zap.Error(err))
		return fmt.Errorf("create tutor request: %w", err)
	}

	return nil
}

func (r *RequestRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.TutorRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM tutor_requests WHERE id = $1`

	req, err := scanRequest(r.Pool().QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get tutor request by id: %w", err)
	}

	return req, nil
}

func (r *RequestRepository) List(ctx context.Context, filter model.ListFilter) ([]*model.TutorRequest, error) {
	query, args := base.ListQuery(`SELECT `+requestColumns+` FROM tutor_requests`, filter, requestSearch...)

	rows, err := r.Pool().Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tutor requests: %w", err)
	}
	defer rows.Close()

	requests := make([]*model.TutorRequest, 0)
	for rows.Next() {
		req, err := scanRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("scan tutor request: %w", err)
		}
		requests = append(requests, req)
	}

	return requests, rows.Err()
}

func (r *RequestRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.RequestStatus) error {
	query := `UPDATE tutor_requests SET status = $2, updated_at = NOW() WHERE id = $1`

	if err := r.ExecOne(ctx, query, id, status); err != nil {
		return fmt.Errorf("update request status: %w", err)
	}
	return nil
}

// SetMatches records the matching result.
func (r *RequestRepository) SetMatches(ctx context.Context, id uuid.UUID, status model.RequestStatus, tutorIDs []uuid.UUID, summary string) error {
	query := `
		UPDATE tutor_requests
		SET status = $2, matched_tutor_ids = $3, match_summary = $4, updated_at = NOW()
		WHERE id = $1
	`

	if tutorIDs == nil {
		tutorIDs = []uuid.UUID{}
	}
	if err := r.ExecOne(ctx, query, id, status, tutorIDs, summary); err != nil {
		return fmt.Errorf("set request matches: %w", err)
	}

	r.logger.Debug("Request matches saved",
		zap.String("request_id", id.String()),
		zap.Int("tutors", len(tutorIDs)))
	return nil
}

func (r *RequestRepository) CountByStatus(ctx context.Context) (model.StatusCounts, error) {
	counts, err := r.Repository.CountByStatus(ctx, "tutor_requests")
	if err != nil {
		return nil, fmt.Errorf("count tutor requests: %w", err)
	}
	return counts, nil
}

func scanRequest(row pgx.Row) (*model.TutorRequest, error) {
	var req model.TutorRequest
	err := row.Scan(
		&req.ID,
		&req.ParentSubmissionID,
		&req.ParentName,
		&req.Email,
		&req.Phone,
		&req.Subject,
		&req.Level,
		&req.Urgency,
		&req.BudgetMin,
		&req.BudgetMax,
		&req.Notes,
		&req.Status,
		&req.MatchedTutorIDs,
		&req.MatchSummary,
		&req.CreatedAt,
		&req.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &req, nil
}
