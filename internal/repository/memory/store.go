package memory

import (
	"context"
	"time"

	"github.com/Freeeeeet/tuition_site/internal/model"
	"github.com/Freeeeeet/tuition_site/internal/service"
	"github.com/google/uuid"
)

// ParentStore implements service.ParentStore in memory.
type ParentStore struct {
	t   *table[model.ParentSubmission]
	now func() time.Time
}

func NewParentStore() *ParentStore {
	return &ParentStore{
		now: time.Now,
		t: &table[model.ParentSubmission]{
			id:      func(p *model.ParentSubmission) uuid.UUID { return p.ID },
			status:  func(p *model.ParentSubmission) string { return string(p.Status) },
			created: func(p *model.ParentSubmission) time.Time { return p.CreatedAt },
			search:  (*model.ParentSubmission).SearchFields,
			clone: func(p *model.ParentSubmission) *model.ParentSubmission {
				c := *p
				c.Subjects = append([]string(nil), p.Subjects...)
				return &c
			},
		},
	}
}

func (s *ParentStore) Create(ctx context.Context, p *model.ParentSubmission) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	stamp(&p.ID, &p.CreatedAt, &p.UpdatedAt, s.now)
	s.t.insert(p)
	return nil
}

func (s *ParentStore) GetByID(ctx context.Context, id uuid.UUID) (*model.ParentSubmission, error) {
	return s.t.get(id), ctx.Err()
}

func (s *ParentStore) List(ctx context.Context, filter model.ListFilter) ([]*model.ParentSubmission, error) {
	return s.t.list(ctx, filter)
}

func (s *ParentStore) UpdateStatus(ctx context.Context, id uuid.UUID, status model.ParentStatus, notes *string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.t.update(id, func(p *model.ParentSubmission) {
		p.Status = status
		if notes != nil {
			p.AdminNotes = *notes
		}
		p.UpdatedAt = s.now().UTC()
	})
}

func (s *ParentStore) CountByStatus(ctx context.Context) (model.StatusCounts, error) {
	return s.t.counts(), ctx.Err()
}

// TutorStore implements service.TutorStore in memory.
type TutorStore struct {
	t   *table[model.TutorSubmission]
	now func() time.Time
}

func NewTutorStore() *TutorStore {
	return &TutorStore{
		now: time.Now,
		t: &table[model.TutorSubmission]{
			id:      func(t *model.TutorSubmission) uuid.UUID { return t.ID },
			status:  func(t *model.TutorSubmission) string { return string(t.Status) },
			created: func(t *model.TutorSubmission) time.Time { return t.CreatedAt },
			search:  (*model.TutorSubmission).SearchFields,
			clone: func(t *model.TutorSubmission) *model.TutorSubmission {
				c := *t
				c.Subjects = append([]string(nil), t.Subjects...)
				c.Levels = append([]string(nil), t.Levels...)
				return &c
			},
		},
	}
}

func (s *TutorStore) Create(ctx context.Context, t *model.TutorSubmission) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	stamp(&t.ID, &t.CreatedAt, &t.UpdatedAt, s.now)
	s.t.insert(t)
	return nil
}

func (s *TutorStore) GetByID(ctx context.Context, id uuid.UUID) (*model.TutorSubmission, error) {
	return s.t.get(id), ctx.Err()
}

func (s *TutorStore) List(ctx context.Context, filter model.ListFilter) ([]*model.TutorSubmission, error) {
	return s.t.list(ctx, filter)
}

func (s *TutorStore) UpdateStatus(ctx context.Context, id uuid.UUID, status model.TutorStatus, notes *string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.t.update(id, func(t *model.TutorSubmission) {
		t.Status = status
		if notes != nil {
			t.AdminNotes = *notes
		}
		t.UpdatedAt = s.now().UTC()
	})
}

func (s *TutorStore) CountByStatus(ctx context.Context) (model.StatusCounts, error) {
	return s.t.counts(), ctx.Err()
}

// RequestStore implements service.RequestStore in memory.
type RequestStore struct {
	t   *table[model.TutorRequest]
	now func() time.Time
}

func NewRequestStore() *RequestStore {
	return &RequestStore{
		now: time.Now,
		t: &table[model.TutorRequest]{
			id:      func(r *model.TutorRequest) uuid.UUID { return r.ID },
			status:  func(r *model.TutorRequest) string { return string(r.Status) },
			created: func(r *model.TutorRequest) time.Time { return r.CreatedAt },
			search:  (*model.TutorRequest).SearchFields,
			clone: func(r *model.TutorRequest) *model.TutorRequest {
				c := *r
				c.MatchedTutorIDs = append([]uuid.UUID(nil), r.MatchedTutorIDs...)
				if r.ParentSubmissionID != nil {
					id := *r.ParentSubmissionID
					c.ParentSubmissionID = &id
				}
				return &c
			},
		},
	}
}

func (s *RequestStore) Create(ctx context.Context, r *model.TutorRequest) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	stamp(&r.ID, &r.CreatedAt, &r.UpdatedAt, s.now)
	s.t.insert(r)
	return nil
}

func (s *RequestStore) GetByID(ctx context.Context, id uuid.UUID) (*model.TutorRequest, error) {
	return s.t.get(id), ctx.Err()
}

func (s *RequestStore) List(ctx context.Context, filter model.ListFilter) ([]*model.TutorRequest, error) {
	return s.t.list(ctx, filter)
}

func (s *RequestStore) UpdateStatus(ctx context.Context, id uuid.UUID, status model.RequestStatus) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.t.update(id, func(r *model.TutorRequest) {
		r.Status = status
		r.UpdatedAt = s.now().UTC()
	})
}

func (s *RequestStore) SetMatches(ctx context.Context, id uuid.UUID, status model.RequestStatus, tutorIDs []uuid.UUID, summary string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.t.update(id, func(r *model.TutorRequest) {
		r.Status = status
		r.MatchedTutorIDs = append([]uuid.UUID(nil), tutorIDs...)
		r.MatchSummary = summary
		r.UpdatedAt = s.now().UTC()
	})
}

func (s *RequestStore) CountByStatus(ctx context.Context) (model.StatusCounts, error) {
	return s.t.counts(), ctx.Err()
}

// NewStores returns an empty in-memory backend.
func NewStores() service.Stores {
	return service.Stores{
		Parents:  NewParentStore(),
		Tutors:   NewTutorStore(),
		Requests: NewRequestStore(),
	}
}

// stamp fills id and timestamps the service left empty.
func stamp(id *uuid.UUID, created, updated *time.Time, now func() time.Time) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
	if created.IsZero() {
		*created = now().UTC()
	}
	if updated.IsZero() {
		*updated = *created
	}
}
