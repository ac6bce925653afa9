package supabase

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Freeeeeet/tuition_site/internal/model"
	"github.com/Freeeeeet/tuition_site/internal/service"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type captured struct {
	method string
	path   string
	query  map[string]string
	header http.Header
	body   map[string]interface{}
}

func newStub(t *testing.T, status int, reply string) (*Client, *captured) {
	t.Helper()
	got := &captured{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got.method = r.Method
		got.path = r.URL.Path
		got.header = r.Header.Clone()
		got.query = map[string]string{}
		for k, v := range r.URL.Query() {
			got.query[k] = v[0]
		}
		if data, _ := io.ReadAll(r.Body); len(data) > 0 {
			_ = json.Unmarshal(data, &got.body)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, reply)
	}))
	t.Cleanup(srv.Close)

	c, err := New(Config{ProjectURL: srv.URL + "/", APIKey: "anon-key", Timeout: time.Second}, zap.NewNop())
	require.NoError(t, err)
	return c, got
}

func TestNew_Validates(t *testing.T) {
	_, err := New(Config{APIKey: "k"}, zap.NewNop())
	assert.Error(t, err)
	_, err = New(Config{ProjectURL: "https://x.supabase.co"}, zap.NewNop())
	assert.Error(t, err)
	_, err = New(Config{ProjectURL: "not a url", APIKey: "k"}, zap.NewNop())
	assert.Error(t, err)
}

func TestParentStore_Create(t *testing.T) {
	id := uuid.New()
	c, got := newStub(t, http.StatusCreated, `[{"id":"`+id.String()+`","parent_name":"Mrs Tan","status":"pending","subjects":["Math"]}]`)

	p := &model.ParentSubmission{ID: id, ParentName: "Mrs Tan", Status: model.ParentStatusPending}
	require.NoError(t, NewParentStore(c).Create(context.Background(), p))

	assert.Equal(t, http.MethodPost, got.method)
	assert.Equal(t, "/rest/v1/parent_submissions", got.path)
	assert.Equal(t, "anon-key", got.header.Get("apikey"))
	assert.Equal(t, "Bearer anon-key", got.header.Get("Authorization"))
	assert.Equal(t, "return=representation", got.header.Get("Prefer"))
	assert.Equal(t, "Mrs Tan", got.body["parent_name"])
	assert.Equal(t, []interface{}{}, got.body["subjects"])
	assert.Equal(t, []string{"Math"}, p.Subjects)
}

func TestTutorStore_ListFilters(t *testing.T) {
	c, got := newStub(t, http.StatusOK, `[{"full_name":"Alice"},{"full_name":"Ben"}]`)

	tutors, err := NewTutorStore(c).List(context.Background(), model.ListFilter{
		Status: "active", Query: "ali(ce)", Limit: 20, Offset: 40,
	})
	require.NoError(t, err)
	require.Len(t, tutors, 2)
	assert.Equal(t, "Alice", tutors[0].FullName)

	assert.Equal(t, http.MethodGet, got.method)
	assert.Equal(t, "eq.active", got.query["status"])
	assert.Equal(t, "(full_name.ilike.*alice*,email.ilike.*alice*,phone.ilike.*alice*,highest_qualification.ilike.*alice*)", got.query["or"])
	assert.Equal(t, "created_at.desc", got.query["order"])
	assert.Equal(t, "20", got.query["limit"])
	assert.Equal(t, "40", got.query["offset"])
}

func TestRequestStore_GetByIDMissing(t *testing.T) {
	c, got := newStub(t, http.StatusOK, `[]`)
	id := uuid.New()

	r, err := NewRequestStore(c).GetByID(context.Background(), id)
	require.NoError(t, err)
	assert.Nil(t, r)
	assert.Equal(t, "eq."+id.String(), got.query["id"])
}

func TestRequestStore_SetMatches(t *testing.T) {
	c, got := newStub(t, http.StatusOK, `[{"id":"x"}]`)
	id, tutor := uuid.New(), uuid.New()

	err := NewRequestStore(c).SetMatches(context.Background(), id, model.RequestStatusMatched, []uuid.UUID{tutor}, "Matched 1 tutor(s)")
	require.NoError(t, err)

	assert.Equal(t, http.MethodPatch, got.method)
	assert.Equal(t, "eq."+id.String(), got.query["id"])
	assert.Equal(t, "matched", got.body["status"])
	assert.Equal(t, []interface{}{tutor.String()}, got.body["matched_tutor_ids"])
	assert.Equal(t, "Matched 1 tutor(s)", got.body["match_summary"])
	assert.NotContains(t, got.body, "admin_notes")
}

func TestUpdateStatus_NotFound(t *testing.T) {
	c, got := newStub(t, http.StatusOK, `[]`)
	notes := "spoke on phone"

	err := NewParentStore(c).UpdateStatus(context.Background(), uuid.New(), model.ParentStatusApproved, &notes)
	assert.ErrorIs(t, err, model.ErrNotFound)
	assert.Equal(t, "spoke on phone", got.body["admin_notes"])
}

func TestCountByStatus_UsesExactCounts(t *testing.T) {
	totals := map[string]string{
		"eq.pending":  "0-999/1500",
		"eq.verified": "*/3",
		"eq.active":   "*/0",
		"eq.rejected": "*/12",
	}
	var methods, prefers []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		methods = append(methods, r.Method)
		prefers = append(prefers, r.Header.Get("Prefer"))
		assert.Equal(t, "/rest/v1/tutor_submissions", r.URL.Path)
		w.Header().Set("Content-Range", totals[r.URL.Query().Get("status")])
		w.WriteHeader(http.StatusPartialContent)
	}))
	t.Cleanup(srv.Close)
	c, err := New(Config{ProjectURL: srv.URL, APIKey: "anon-key"}, zap.NewNop())
	require.NoError(t, err)

	counts, err := NewTutorStore(c).CountByStatus(context.Background())
	require.NoError(t, err)
	assert.Equal(t, model.StatusCounts{"pending": 1500, "verified": 3, "active": 0, "rejected": 12}, counts)

	require.Len(t, methods, 4)
	for i := range methods {
		assert.Equal(t, http.MethodHead, methods[i])
		assert.Equal(t, "count=exact", prefers[i])
	}
}

func TestCountByStatus_BadContentRange(t *testing.T) {
	c, _ := newStub(t, http.StatusOK, "")

	_, err := NewParentStore(c).CountByStatus(context.Background())
	assert.Error(t, err)
}

func TestParseContentRange(t *testing.T) {
	n, err := parseContentRange("0-24/1500")
	require.NoError(t, err)
	assert.Equal(t, 1500, n)

	n, err = parseContentRange("*/0")
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	_, err = parseContentRange("0-24/*")
	assert.Error(t, err)
	_, err = parseContentRange("")
	assert.Error(t, err)
}

func TestRequest_Errors(t *testing.T) {
	c, _ := newStub(t, http.StatusBadRequest, `{"code":"PGRST100","message":"bad filter"}`)
	_, err := NewParentStore(c).List(context.Background(), model.ListFilter{})
	require.Error(t, err)
	assert.True(t, IsAPIError(err, http.StatusBadRequest))
	assert.Contains(t, err.Error(), "bad filter")

	c, _ = newStub(t, http.StatusServiceUnavailable, ``)
	_, err = NewParentStore(c).List(context.Background(), model.ListFilter{})
	assert.ErrorIs(t, err, service.ErrUnavailable)
}

func TestOrFilter(t *testing.T) {
	assert.Empty(t, orFilter([]string{"a"}, "  "))
	assert.Empty(t, orFilter(nil, "x"))
	assert.Equal(t, "(a.ilike.*tan*,b.ilike.*tan*)", orFilter([]string{"a", "b"}, "tan"))
}
