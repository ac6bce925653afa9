package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseParentStatus(t *testing.T) {
	s, err := ParseParentStatus("  Approved ")
	require.NoError(t, err)
	assert.Equal(t, ParentStatusApproved, s)

	s, err = ParseParentStatus("canceled")
	require.NoError(t, err)
	assert.Equal(t, ParentStatusCancelled, s)

	_, err = ParseParentStatus("verified")
	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, KindParent, statusErr.Kind)
	assert.Contains(t, err.Error(), `unknown parent status "verified"`)
}

func TestParseTutorAndRequestStatus(t *testing.T) {
	ts, err := ParseTutorStatus("active")
	require.NoError(t, err)
	assert.True(t, ts.Matchable())
	assert.False(t, TutorStatusPending.Matchable())

	_, err = ParseTutorStatus("matched")
	assert.Error(t, err)

	rs, err := ParseRequestStatus("MATCHING")
	require.NoError(t, err)
	assert.Equal(t, RequestStatusMatching, rs)

	_, err = ParseRequestStatus("")
	assert.Error(t, err)
}

func TestStatusDisplay(t *testing.T) {
	assert.Equal(t, "🤝 Tutor found", RequestStatusMatched.Display().String())
	assert.Equal(t, unknownDisplay, ParentStatus("nope").Display())
}

func TestListFilterNormalize(t *testing.T) {
	f := ListFilter{Status: " Pending ", Query: " math ", Limit: 10_000, Offset: -3}.Normalize()
	assert.Equal(t, "pending", f.Status)
	assert.Equal(t, "math", f.Query)
	assert.Equal(t, MaxListLimit, f.Limit)
	assert.Equal(t, 0, f.Offset)

	assert.Equal(t, DefaultListLimit, ListFilter{}.Normalize().Limit)
}

func TestListFilterMatchesQuery(t *testing.T) {
	p := &ParentSubmission{ParentName: "Mrs Tan", Email: "tan@example.sg", Subjects: []string{"Mathematics"}}
	assert.True(t, ListFilter{Query: "MATH"}.MatchesQuery(p.SearchFields()...))
	assert.True(t, ListFilter{}.MatchesQuery(p.SearchFields()...))
	assert.False(t, ListFilter{Query: "physics"}.MatchesQuery(p.SearchFields()...))
}

func TestParseKind(t *testing.T) {
	k, ok := ParseKind("Tutors")
	assert.True(t, ok)
	assert.Equal(t, KindTutor, k)
	_, ok = ParseKind("users")
	assert.False(t, ok)
}
