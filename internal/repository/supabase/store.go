package supabase

import (
	"context"
	"time"

	"github.com/Freeeeeet/tuition_site/internal/model"
	"github.com/Freeeeeet/tuition_site/internal/service"
	"github.com/google/uuid"
)

const (
	parentsTable  = "parent_submissions"
	tutorsTable   = "tutor_submissions"
	requestsTable = "tutor_requests"
)

type ParentStore struct {
	t table[model.ParentSubmission]
}

func NewParentStore(c *Client) *ParentStore {
	return &ParentStore{t: table[model.ParentSubmission]{
		client: c,
		name:   parentsTable,
		search: []string{"parent_name", "email", "phone", "child_name", "child_level", "location"},
	}}
}

func (s *ParentStore) Create(ctx context.Context, p *model.ParentSubmission) error {
	if p.Subjects == nil {
		p.Subjects = []string{}
	}
	return s.t.insert(ctx, p)
}

func (s *ParentStore) GetByID(ctx context.Context, id uuid.UUID) (*model.ParentSubmission, error) {
	return s.t.get(ctx, id)
}

func (s *ParentStore) List(ctx context.Context, filter model.ListFilter) ([]*model.ParentSubmission, error) {
	return s.t.list(ctx, filter)
}

func (s *ParentStore) UpdateStatus(ctx context.Context, id uuid.UUID, status model.ParentStatus, notes *string) error {
	return s.t.patch(ctx, id, statusFields(string(status), notes))
}

func (s *ParentStore) CountByStatus(ctx context.Context) (model.StatusCounts, error) {
	return s.t.counts(ctx, statusNames(model.ParentStatuses))
}

type TutorStore struct {
	t table[model.TutorSubmission]
}

func NewTutorStore(c *Client) *TutorStore {
	return &TutorStore{t: table[model.TutorSubmission]{
		client: c,
		name:   tutorsTable,
		search: []string{"full_name", "email", "phone", "highest_qualification"},
	}}
}

func (s *TutorStore) Create(ctx context.Context, t *model.TutorSubmission) error {
	if t.Subjects == nil {
		t.Subjects = []string{}
	}
	if t.Levels == nil {
		t.Levels = []string{}
	}
	return s.t.insert(ctx, t)
}

func (s *TutorStore) GetByID(ctx context.Context, id uuid.UUID) (*model.TutorSubmission, error) {
	return s.t.get(ctx, id)
}

func (s *TutorStore) List(ctx context.Context, filter model.ListFilter) ([]*model.TutorSubmission, error) {
	return s.t.list(ctx, filter)
}

func (s *TutorStore) UpdateStatus(ctx context.Context, id uuid.UUID, status model.TutorStatus, notes *string) error {
	return s.t.patch(ctx, id, statusFields(string(status), notes))
}

func (s *TutorStore) CountByStatus(ctx context.Context) (model.StatusCounts, error) {
	return s.t.counts(ctx, statusNames(model.TutorStatuses))
}

type RequestStore struct {
	t table[model.TutorRequest]
}

func NewRequestStore(c *Client) *RequestStore {
	return &RequestStore{t: table[model.TutorRequest]{
		client: c,
		name:   requestsTable,
		search: []string{"parent_name", "email", "phone", "subject", "level"},
	}}
}

func (s *RequestStore) Create(ctx context.Context, r *model.TutorRequest) error {
	if r.MatchedTutorIDs == nil {
		r.MatchedTutorIDs = []uuid.UUID{}
	}
	return s.t.insert(ctx, r)
}

func (s *RequestStore) GetByID(ctx context.Context, id uuid.UUID) (*model.TutorRequest, error) {
	return s.t.get(ctx, id)
}

func (s *RequestStore) List(ctx context.Context, filter model.ListFilter) ([]*model.TutorRequest, error) {
	return s.t.list(ctx, filter)
}

func (s *RequestStore) UpdateStatus(ctx context.Context, id uuid.UUID, status model.RequestStatus) error {
	return s.t.patch(ctx, id, statusFields(string(status), nil))
}

func (s *RequestStore) SetMatches(ctx context.Context, id uuid.UUID, status model.RequestStatus, tutorIDs []uuid.UUID, summary string) error {
	if tutorIDs == nil {
		tutorIDs = []uuid.UUID{}
	}
	fields := statusFields(string(status), nil)
	fields["matched_tutor_ids"] = tutorIDs
	fields["match_summary"] = summary
	return s.t.patch(ctx, id, fields)
}

func (s *RequestStore) CountByStatus(ctx context.Context) (model.StatusCounts, error) {
	return s.t.counts(ctx, statusNames(model.RequestStatuses))
}

// NewStores wires the hosted backend.
func NewStores(c *Client) service.Stores {
	return service.Stores{
		Parents:  NewParentStore(c),
		Tutors:   NewTutorStore(c),
		Requests: NewRequestStore(c),
	}
}

func statusFields(status string, notes *string) map[string]interface{} {
	fields := map[string]interface{}{
		"status":     status,
		"updated_at": time.Now().UTC(),
	}
	if notes != nil {
		fields["admin_notes"] = *notes
	}
	return fields
}

func statusNames[S ~string](statuses []S) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
