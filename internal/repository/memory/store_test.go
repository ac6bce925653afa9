package memory

import (
	"context"
	"testing"
	"time"

	"github.com/Freeeeeet/tuition_site/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParentStore_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	s := NewParentStore()

	p := &model.ParentSubmission{ParentName: "Mrs Tan", Email: "tan@example.com", Subjects: []string{"Math"}, Status: model.ParentStatusPending}
	require.NoError(t, s.Create(ctx, p))
	assert.NotEqual(t, uuid.Nil, p.ID)
	assert.False(t, p.CreatedAt.IsZero())

	got, err := s.GetByID(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Mrs Tan", got.ParentName)

	// returned rows are copies
	got.Subjects[0] = "Art"
	again, _ := s.GetByID(ctx, p.ID)
	assert.Equal(t, "Math", again.Subjects[0])

	missing, err := s.GetByID(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestParentStore_UpdateStatus(t *testing.T) {
	ctx := context.Background()
	s := NewParentStore()
	p := &model.ParentSubmission{ParentName: "Mr Lim", Status: model.ParentStatusPending}
	require.NoError(t, s.Create(ctx, p))

	notes := "called back"
	require.NoError(t, s.UpdateStatus(ctx, p.ID, model.ParentStatusApproved, &notes))
	got, _ := s.GetByID(ctx, p.ID)
	assert.Equal(t, model.ParentStatusApproved, got.Status)
	assert.Equal(t, "called back", got.AdminNotes)

	require.NoError(t, s.UpdateStatus(ctx, p.ID, model.ParentStatusMatched, nil))
	got, _ = s.GetByID(ctx, p.ID)
	assert.Equal(t, model.ParentStatusMatched, got.Status)
	assert.Equal(t, "called back", got.AdminNotes)

	err := s.UpdateStatus(ctx, uuid.New(), model.ParentStatusApproved, nil)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestTutorStore_ListFilters(t *testing.T) {
	ctx := context.Background()
	s := NewTutorStore()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	tutors := []*model.TutorSubmission{
		{FullName: "Alice Ong", Email: "alice@example.com", Subjects: []string{"Math"}, Status: model.TutorStatusActive, CreatedAt: base},
		{FullName: "Ben Koh", Email: "ben@example.com", Subjects: []string{"Chemistry"}, Status: model.TutorStatusPending, CreatedAt: base.Add(time.Hour)},
		{FullName: "Cheryl Ng", Email: "cheryl@example.com", Subjects: []string{"Math", "Physics"}, Status: model.TutorStatusActive, CreatedAt: base.Add(2 * time.Hour)},
	}
	for _, tu := range tutors {
		require.NoError(t, s.Create(ctx, tu))
	}

	all, err := s.List(ctx, model.ListFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Cheryl Ng", all[0].FullName, "newest first")

	active, err := s.List(ctx, model.ListFilter{Status: "active"})
	require.NoError(t, err)
	assert.Len(t, active, 2)

	math, err := s.List(ctx, model.ListFilter{Query: "MATH"})
	require.NoError(t, err)
	assert.Len(t, math, 2)

	page, err := s.List(ctx, model.ListFilter{Limit: 1, Offset: 1})
	require.NoError(t, err)
	require.Len(t, page, 1)
	assert.Equal(t, "Ben Koh", page[0].FullName)

	empty, err := s.List(ctx, model.ListFilter{Offset: 10})
	require.NoError(t, err)
	assert.Empty(t, empty)

	counts, err := s.CountByStatus(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, counts["active"])
	assert.Equal(t, 1, counts["pending"])
}

func TestRequestStore_SetMatches(t *testing.T) {
	ctx := context.Background()
	s := NewRequestStore()
	r := &model.TutorRequest{ParentName: "Mrs Goh", Subject: "Math", Level: "Primary 5", Status: model.RequestStatusAnalyzing}
	require.NoError(t, s.Create(ctx, r))

	ids := []uuid.UUID{uuid.New(), uuid.New()}
	require.NoError(t, s.SetMatches(ctx, r.ID, model.RequestStatusMatched, ids, "Matched 2 tutor(s)"))

	got, err := s.GetByID(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RequestStatusMatched, got.Status)
	assert.Equal(t, ids, got.MatchedTutorIDs)
	assert.Equal(t, "Matched 2 tutor(s)", got.MatchSummary)

	ids[0] = uuid.Nil
	got, _ = s.GetByID(ctx, r.ID)
	assert.NotEqual(t, uuid.Nil, got.MatchedTutorIDs[0])

	assert.ErrorIs(t, s.SetMatches(ctx, uuid.New(), model.RequestStatusMatched, nil, ""), model.ErrNotFound)
}

func TestList_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewRequestStore().List(ctx, model.ListFilter{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCreate_CancelledContextStoresNothing(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	parents := NewParentStore()
	err := parents.Create(ctx, &model.ParentSubmission{ParentName: "Mrs Tan", Status: model.ParentStatusPending})
	assert.ErrorIs(t, err, context.Canceled)
	counts, _ := parents.CountByStatus(context.Background())
	assert.Equal(t, 0, counts.Total())

	tutors := NewTutorStore()
	assert.ErrorIs(t, tutors.Create(ctx, &model.TutorSubmission{FullName: "Alex"}), context.Canceled)
	list, err := tutors.List(context.Background(), model.ListFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)

	requests := NewRequestStore()
	r := &model.TutorRequest{Subject: "Math", Status: model.RequestStatusAnalyzing}
	require.NoError(t, requests.Create(context.Background(), r))
	assert.ErrorIs(t, requests.Create(ctx, &model.TutorRequest{Subject: "Art"}), context.Canceled)
	assert.ErrorIs(t, requests.UpdateStatus(ctx, r.ID, model.RequestStatusCompleted), context.Canceled)

	got, err := requests.GetByID(context.Background(), r.ID)
	require.NoError(t, err)
	assert.Equal(t, model.RequestStatusAnalyzing, got.Status)
}
