package matching

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Freeeeeet/tuition_site/internal/model"
	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// RemoteMatcher hands the request and the eligible tutors to a hosted
// function and reads back its ranking. On any failure it falls back.
type RemoteMatcher struct {
	url      string
	client   *http.Client
	fallback Matcher
	logger   *zap.Logger
}

func NewRemoteMatcher(url string, fallback Matcher, logger *zap.Logger) *RemoteMatcher {
	return &RemoteMatcher{
		url:      url,
		client:   &http.Client{Timeout: 15 * time.Second},
		fallback: fallback,
		logger:   logger,
	}
}

type remotePayload struct {
	Request *model.TutorRequest      `json:"request"`
	Tutors  []*model.TutorSubmission `json:"tutors"`
	Limit   int                      `json:"limit"`
}

func (m *RemoteMatcher) Match(ctx context.Context, req *model.TutorRequest, tutors []*model.TutorSubmission) ([]Candidate, error) {
	candidates, err := m.call(ctx, req, tutors)
	if err == nil {
		return candidates, nil
	}
	if m.fallback == nil {
		return nil, err
	}
	m.logger.Warn("Remote matcher failed, using fallback",
		zap.String("request_id", req.ID.String()),
		zap.Error(err))
	return m.fallback.Match(ctx, req, tutors)
}

func (m *RemoteMatcher) call(ctx context.Context, req *model.TutorRequest, tutors []*model.TutorSubmission) ([]Candidate, error) {
	eligible := make([]*model.TutorSubmission, 0, len(tutors))
	known := make(map[uuid.UUID]struct{}, len(tutors))
	for _, t := range tutors {
		if t.Status.Matchable() {
			eligible = append(eligible, t)
			known[t.ID] = struct{}{}
		}
	}

	body, err := json.Marshal(remotePayload{Request: req, Tutors: eligible, Limit: MaxCandidates})
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, m.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("call matching function: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("matching function status %d", resp.StatusCode)
	}
	if !gjson.ValidBytes(raw) {
		return nil, fmt.Errorf("matching function returned invalid json")
	}

	var out []Candidate
	for _, item := range gjson.GetBytes(raw, "matches").Array() {
		id, err := uuid.Parse(item.Get("tutor_id").String())
		if err != nil {
			continue
		}
		// the function may only pick from what we sent
		if _, ok := known[id]; !ok {
			continue
		}
		c := Candidate{TutorID: id, Score: int(item.Get("score").Int())}
		if reason := item.Get("reason").String(); reason != "" {
			c.Reasons = []string{reason}
		}
		out = append(out, c)
		if len(out) == MaxCandidates {
			break
		}
	}
	return out, nil
}
