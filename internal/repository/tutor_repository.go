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

const tutorColumns = `id, full_name, email, phone, highest_qualification, tutor_type, experience_years,
	subjects, levels, hourly_rate, bio, status, admin_notes, created_at, updated_at`

var tutorSearch = []string{"full_name", "email", "phone", "highest_qualification",
	"array_to_string(subjects, ' ')", "array_to_string(levels, ' ')"}

type TutorRepository struct {
	*base.Repository
	logger *zap.Logger
}

func NewTutorRepository(pool *pgxpool.Pool, logger *zap.Logger) *TutorRepository {
	return &TutorRepository{
		Repository: base.NewRepository(pool),
		logger:     logger,
	}
}

// Create stores a tutor application.
func (r *TutorRepository) Create(ctx context.Context, t *model.TutorSubmission) error {
	query := `
		INSERT INTO tutor_submissions (id, full_name, email, phone, highest_qualification, tutor_type,
			experience_years, subjects, levels, hourly_rate, bio, status, admin_notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`

	_, err := r.Pool().Exec(
		ctx, query,
		t.ID,
		t.FullName,
		t.Email,
		t.Phone,
		t.HighestQualification,
		t.TutorType,
		t.ExperienceYears,
		t.Subjects,
		t.Levels,
		t.HourlyRate,
		t.Bio,
		t.Status,
		t.AdminNotes,
		t.CreatedAt,
		t.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to insert tutor submission",
			zap.String("id", t.ID.String()),
			zap.Error(err))
		return fmt.Errorf("create tutor submission: %w", err)
	}

	return nil
}

func (r *TutorRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.TutorSubmission, error) {
	query := `SELECT ` + tutorColumns + ` FROM tutor_submissions WHERE id = $1`

	t, err := scanTutor(r.Pool().QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get tutor submission by id: %w", err)
	}

	return t, nil
}

func (r *TutorRepository) List(ctx context.Context, filter model.ListFilter) ([]*model.TutorSubmission, error) {
	query, args := base.ListQuery(`SELECT `+tutorColumns+` FROM tutor_submissions`, filter, tutorSearch...)

	rows, err := r.Pool().Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list tutor submissions: %w", err)
	}
	defer rows.Close()

	tutors := make([]*model.TutorSubmission, 0)
	for rows.Next() {
		t, err := scanTutor(rows)
		if err != nil {
			return nil, fmt.Errorf("scan tutor submission: %w", err)
		}
		tutors = append(tutors, t)
	}

	return tutors, rows.Err()
}

func (r *TutorRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.TutorStatus, notes *string) error {
	query := `
		UPDATE tutor_submissions
		SET status = $2, admin_notes = COALESCE($3, admin_notes), updated_at = NOW()
		WHERE id = $1
	`

	if err := r.ExecOne(ctx, query, id, status, notes); err != nil {
		return fmt.Errorf("update tutor status: %w", err)
	}
	return nil
}

func (r *TutorRepository) CountByStatus(ctx context.Context) (model.StatusCounts, error) {
	counts, err := r.Repository.CountByStatus(ctx, "tutor_submissions")
	if err != nil {
		return nil, fmt.Errorf("count tutor submissions: %w", err)
	}
	return counts, nil
}

func scanTutor(row pgx.Row) (*model.TutorSubmission, error) {
	var t model.TutorSubmission
	err := row.Scan(
		&t.ID,
		&t.FullName,
		&t.Email,
		&t.Phone,
		&t.HighestQualification,
		&t.TutorType,
		&t.ExperienceYears,
		&t.Subjects,
		&t.Levels,
		&t.HourlyRate,
		&t.Bio,
		&t.Status,
		&t.AdminNotes,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
