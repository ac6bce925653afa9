package matching

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Freeeeeet/tuition_site/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func tutor(name string, status model.TutorStatus, rate, exp int, subjects, levels []string) *model.TutorSubmission {
	return &model.TutorSubmission{
		ID:              uuid.New(),
		FullName:        name,
		Status:          status,
		TutorType:       model.TutorTypePartTime,
		HourlyRate:      rate,
		ExperienceYears: exp,
		Subjects:        subjects,
		Levels:          levels,
	}
}

func TestRuleMatcher_FiltersAndRanks(t *testing.T) {
	req := &model.TutorRequest{ID: uuid.New(), Subject: "Math", Level: "Primary 5", BudgetMin: 30, BudgetMax: 50}

	exact := tutor("Alice", model.TutorStatusActive, 45, 3, []string{"math"}, []string{"Primary 5"})
	band := tutor("Bob", model.TutorStatusVerified, 45, 8, []string{"Math"}, []string{"Primary 3"})
	pricey := tutor("Carol", model.TutorStatusActive, 90, 10, []string{"Math"}, []string{"Primary 5"})
	pending := tutor("Dan", model.TutorStatusPending, 40, 5, []string{"Math"}, []string{"Primary 5"})
	wrongSubject := tutor("Eve", model.TutorStatusActive, 40, 5, []string{"English"}, []string{"Primary 5"})
	wrongBand := tutor("Finn", model.TutorStatusActive, 40, 5, []string{"Math"}, []string{"JC1"})

	got, err := NewRuleMatcher().Match(context.Background(), req,
		[]*model.TutorSubmission{band, pending, wrongSubject, pricey, exact, wrongBand})
	require.NoError(t, err)
	require.Len(t, got, 3)

	// Alice: 40+30+20+3 = 93, Carol: 40+30+10 = 80, Bob: 40+15+20+8 = 83
	assert.Equal(t, exact.ID, got[0].TutorID)
	assert.Equal(t, 93, got[0].Score)
	assert.Equal(t, band.ID, got[1].TutorID)
	assert.Equal(t, pricey.ID, got[2].TutorID)
	assert.Contains(t, got[0].Reasons, "within budget")
}

func TestRuleMatcher_NoBudgetUsesPricingGuide(t *testing.T) {
	req := &model.TutorRequest{Subject: "Chemistry", Level: "Sec 4"}
	inGuide := tutor("A", model.TutorStatusActive, 60, 0, []string{"Chemistry"}, []string{"Sec 4"})
	outGuide := tutor("B", model.TutorStatusActive, 300, 0, []string{"Chemistry"}, []string{"Sec 4"})

	got, err := NewRuleMatcher().Match(context.Background(), req, []*model.TutorSubmission{outGuide, inGuide})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, inGuide.ID, got[0].TutorID)
	assert.Equal(t, 90, got[0].Score)
	assert.Equal(t, 70, got[1].Score)
}

func TestRuleMatcher_UrgentPrefersFullTime(t *testing.T) {
	req := &model.TutorRequest{Subject: "Physics", Level: "JC1", Urgency: model.UrgencyUrgent, BudgetMax: 200}
	pt := tutor("Part", model.TutorStatusActive, 80, 5, []string{"Physics"}, []string{"JC1"})
	ft := tutor("Full", model.TutorStatusActive, 80, 5, []string{"Physics"}, []string{"JC1"})
	ft.TutorType = model.TutorTypeFullTime

	got, err := NewRuleMatcher().Match(context.Background(), req, []*model.TutorSubmission{pt, ft})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, ft.ID, got[0].TutorID)
	assert.Equal(t, got[1].Score+scoreUrgentFTBonus, got[0].Score)
}

func TestSummary(t *testing.T) {
	req := &model.TutorRequest{Subject: "Math", Level: "Sec 1"}
	assert.Equal(t, "Matched 2 tutor(s) for Math Sec 1", Summary(req, make([]Candidate, 2)))
	assert.Equal(t, "No tutor fits Math Sec 1 yet, we will keep looking", Summary(req, nil))
}

func TestRemoteMatcher_ParsesResponse(t *testing.T) {
	active := tutor("A", model.TutorStatusActive, 40, 1, []string{"Math"}, []string{"Sec 1"})
	pending := tutor("B", model.TutorStatusPending, 40, 1, []string{"Math"}, []string{"Sec 1"})

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload remotePayload
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Len(t, payload.Tutors, 1)

		json.NewEncoder(w).Encode(map[string]any{
			"matches": []map[string]any{
				{"tutor_id": active.ID.String(), "score": 88, "reason": "great fit"},
				{"tutor_id": pending.ID.String(), "score": 99},
				{"tutor_id": "not-a-uuid", "score": 50},
			},
		})
	}))
	defer srv.Close()

	m := NewRemoteMatcher(srv.URL, nil, zap.NewNop())
	got, err := m.Match(context.Background(), &model.TutorRequest{Subject: "Math", Level: "Sec 1"},
		[]*model.TutorSubmission{active, pending})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, active.ID, got[0].TutorID)
	assert.Equal(t, 88, got[0].Score)
	assert.Equal(t, []string{"great fit"}, got[0].Reasons)
}

func TestRemoteMatcher_FallsBackOnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusBadGateway)
	}))
	defer srv.Close()

	active := tutor("A", model.TutorStatusActive, 40, 1, []string{"Math"}, []string{"Sec 1"})
	req := &model.TutorRequest{Subject: "Math", Level: "Sec 1"}

	got, err := NewRemoteMatcher(srv.URL, NewRuleMatcher(), zap.NewNop()).
		Match(context.Background(), req, []*model.TutorSubmission{active})
	require.NoError(t, err)
	require.Len(t, got, 1)

	_, err = NewRemoteMatcher(srv.URL, nil, zap.NewNop()).
		Match(context.Background(), req, []*model.TutorSubmission{active})
	assert.ErrorContains(t, err, "status 502")
}
