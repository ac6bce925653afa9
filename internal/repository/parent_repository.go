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

const parentColumns = `id, parent_name, email, phone, preferred_contact, child_name, child_level, child_school,
	program, subjects, location, preferences, status, admin_notes, created_at, updated_at`

var parentSearch = []string{"parent_name", "email", "phone", "child_name", "child_level", "location",
	"array_to_string(subjects, ' ')"}

type ParentRepository struct {
	*base.Repository
	logger *zap.Logger
}

func NewParentRepository(pool *pgxpool.Pool, logger *zap.Logger) *ParentRepository {
	return &ParentRepository{
		Repository: base.NewRepository(pool),
		logger:     logger,
	}
}

// Create stores a parent submission.
func (r *ParentRepository) Create(ctx context.Context, p *model.ParentSubmission) error {
	query := `
		INSERT INTO parent_submissions (id, parent_name, email, phone, preferred_contact, child_name, child_level,
			child_school, program, subjects, location, preferences, status, admin_notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
	`

	_, err := r.Pool().Exec(
		ctx, query,
		p.ID,
		p.ParentName,
		p.Email,
		p.Phone,
		p.PreferredContact,
		p.ChildName,
		p.ChildLevel,
		p.ChildSchool,
		p.Program,
		p.Subjects,
		p.Location,
		p.Preferences,
		p.Status,
		p.AdminNotes,
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to insert parent submission",
			zap.String("id", p.ID.String()),
			zap.Error(err))
		return fmt.Errorf("create parent submission: %w", err)
	}

	return nil
}

// GetByID returns nil, nil when the submission does not exist.
func (r *ParentRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.ParentSubmission, error) {
	query := `SELECT ` + parentColumns + ` FROM parent_submissions WHERE id = $1`

	p, err := scanParent(r.Pool().QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get parent submission by id: %w", err)
	}

	return p, nil
}

func (r *ParentRepository) List(ctx context.Context, filter model.ListFilter) ([]*model.ParentSubmission, error) {
	query, args := base.ListQuery(`SELECT `+parentColumns+` FROM parent_submissions`, filter, parentSearch...)

	rows, err := r.Pool().Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list parent submissions: %w", err)
	}
	defer rows.Close()

	parents := make([]*model.ParentSubmission, 0)
	for rows.Next() {
		p, err := scanParent(rows)
		if err != nil {
			return nil, fmt.Errorf("scan parent submission: %w", err)
		}
		parents = append(parents, p)
	}

	return parents, rows.Err()
}

// UpdateStatus sets the status; nil notes keep the current notes.
func (r *ParentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.ParentStatus, notes *string) error {
	query := `
		UPDATE parent_submissions
		SET status = $2, admin_notes = COALESCE($3, admin_notes), updated_at = NOW()
		WHERE id = $1
	`

	if err := r.ExecOne(ctx, query, id, status, notes); err != nil {
		return fmt.Errorf("update parent status: %w", err)
	}
	return nil
}

func (r *ParentRepository) CountByStatus(ctx context.Context) (model.StatusCounts, error) {
	counts, err := r.Repository.CountByStatus(ctx, "parent_submissions")
	if err != nil {
		return nil, fmt.Errorf("count parent submissions: %w", err)
	}
	return counts, nil
}

func scanParent(row pgx.Row) (*model.ParentSubmission, error) {
	var p model.ParentSubmission
	err := row.Scan(
		&p.ID,
		&p.ParentName,
		&p.Email,
		&p.Phone,
		&p.PreferredContact,
		&p.ChildName,
		&p.ChildLevel,
		&p.ChildSchool,
		&p.Program,
		&p.Subjects,
		&p.Location,
		&p.Preferences,
		&p.Status,
		&p.AdminNotes,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
