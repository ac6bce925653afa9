package service

import (
	"context"

	"github.com/Freeeeeet/tuition_site/internal/model"
	"github.com/google/uuid"
)

// ParentStore persists parent submissions. GetByID returns nil, nil when
// the record does not exist; UpdateStatus returns model.ErrNotFound.
type ParentStore interface {
	Create(ctx context.Context, p *model.ParentSubmission) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.ParentSubmission, error)
	List(ctx context.Context, filter model.ListFilter) ([]*model.ParentSubmission, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.ParentStatus, notes *string) error
	CountByStatus(ctx context.Context) (model.StatusCounts, error)
}

type TutorStore interface {
	Create(ctx context.Context, t *model.TutorSubmission) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.TutorSubmission, error)
	List(ctx context.Context, filter model.ListFilter) ([]*model.TutorSubmission, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.TutorStatus, notes *string) error
	CountByStatus(ctx context.Context) (model.StatusCounts, error)
}

type RequestStore interface {
	Create(ctx context.Context, r *model.TutorRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*model.TutorRequest, error)
	List(ctx context.Context, filter model.ListFilter) ([]*model.TutorRequest, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.RequestStatus) error
	SetMatches(ctx context.Context, id uuid.UUID, status model.RequestStatus, tutorIDs []uuid.UUID, summary string) error
	CountByStatus(ctx context.Context) (model.StatusCounts, error)
}

// Stores bundles one backend's three stores.
type Stores struct {
	Parents  ParentStore
	Tutors   TutorStore
	Requests RequestStore
}
