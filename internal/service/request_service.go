package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/tuition_site/internal/matching"
	"github.com/Freeeeeet/tuition_site/internal/metrics"
	"github.com/Freeeeeet/tuition_site/internal/model"
	"github.com/Freeeeeet/tuition_site/internal/notify"
	"github.com/Freeeeeet/tuition_site/internal/validation"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// pendingBatch bounds one ProcessPending pass.
const pendingBatch = 100

// RequestService owns tutor requests and runs the matcher on them.
type RequestService struct {
	requests RequestStore
	tutors   TutorStore
	matcher  matching.Matcher
	notifier notify.Notifier
	validate *validation.Validator
	logger   *zap.Logger
	now      func() time.Time
}

func NewRequestService(
	requests RequestStore,
	tutors TutorStore,
	matcher matching.Matcher,
	notifier notify.Notifier,
	validate *validation.Validator,
	logger *zap.Logger,
) *RequestService {
	return &RequestService{
		requests: requests,
		tutors:   tutors,
		matcher:  matcher,
		notifier: notifier,
		validate: validate,
		logger:   logger,
		now:      time.Now,
	}
}

// CreateRequest stores a request with status analyzing; the scheduler picks
// it up on its next pass.
func (s *RequestService) CreateRequest(ctx context.Context, in RequestInput) (*model.TutorRequest, error) {
	in.normalize()
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}
	if in.BudgetMin > 0 && in.BudgetMax > 0 && in.BudgetMax < in.BudgetMin {
		return nil, validation.FieldError("budget_max", "must not be less than budget_min")
	}

	r := in.toModel()
	r.ID = uuid.New()
	r.CreatedAt = s.now().UTC()
	r.UpdatedAt = r.CreatedAt

	if err := s.requests.Create(ctx, r); err != nil {
		return nil, fmt.Errorf("create tutor request: %w", err)
	}

	s.logger.Info("Tutor request received",
		zap.String("id", r.ID.String()),
		zap.String("subject", r.Subject),
		zap.String("level", r.Level),
		zap.String("urgency", string(r.Urgency)),
	)
	metrics.RecordSubmission(string(model.KindRequest))
	s.notify(ctx, notify.Event{Type: notify.EventRequestCreated, Request: r})

	return r, nil
}

func (s *RequestService) GetRequest(ctx context.Context, id uuid.UUID) (*model.TutorRequest, error) {
	r, err := s.requests.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get tutor request: %w", err)
	}
	if r == nil {
		return nil, fmt.Errorf("tutor request %s: %w", id, ErrNotFound)
	}
	return r, nil
}

func (s *RequestService) ListRequests(ctx context.Context, filter model.ListFilter) ([]*model.TutorRequest, error) {
	filter = filter.Normalize()
	if filter.Status != "" {
		if _, err := model.ParseRequestStatus(filter.Status); err != nil {
			return nil, validation.FieldError("status", err.Error())
		}
	}
	requests, err := s.requests.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list tutor requests: %w", err)
	}
	return requests, nil
}

// UpdateRequestStatus sets any known status; transitions are not restricted.
func (s *RequestService) UpdateRequestStatus(ctx context.Context, id uuid.UUID, upd StatusUpdate) (*model.TutorRequest, error) {
	status, err := model.ParseRequestStatus(upd.Status)
	if err != nil {
		return nil, validation.FieldError("status", err.Error())
	}
	if err := s.requests.UpdateStatus(ctx, id, status); err != nil {
		return nil, fmt.Errorf("update request status: %w", err)
	}

	s.logger.Info("Request status updated",
		zap.String("id", id.String()),
		zap.String("status", string(status)))

	return s.GetRequest(ctx, id)
}

// RunMatching asks the matcher for candidates and records the outcome:
// matched with tutor ids, or matching with a "still looking" summary.
func (s *RequestService) RunMatching(ctx context.Context, id uuid.UUID) (*model.TutorRequest, error) {
	r, err := s.GetRequest(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.Status == model.RequestStatusCompleted {
		return nil, fmt.Errorf("request %s is completed: %w", id, ErrConflict)
	}

	tutors, err := s.matchableTutors(ctx)
	if err != nil {
		metrics.RecordMatching("error")
		return nil, err
	}

	candidates, err := s.matcher.Match(ctx, r, tutors)
	if err != nil {
		metrics.RecordMatching("error")
		return nil, fmt.Errorf("match request %s: %w", id, err)
	}

	status := model.RequestStatusMatching
	if len(candidates) > 0 {
		status = model.RequestStatusMatched
	}
	summary := matching.Summary(r, candidates)
	ids := matching.IDs(candidates)

	if err := s.requests.SetMatches(ctx, id, status, ids, summary); err != nil {
		metrics.RecordMatching("error")
		return nil, fmt.Errorf("save matches: %w", err)
	}

	r.Status = status
	r.MatchedTutorIDs = ids
	r.MatchSummary = summary
	r.UpdatedAt = s.now().UTC()

	s.logger.Info("Matching finished",
		zap.String("request_id", id.String()),
		zap.String("status", string(status)),
		zap.Int("candidates", len(candidates)),
		zap.Int("pool", len(tutors)),
	)

	if status == model.RequestStatusMatched {
		metrics.RecordMatching("matched")
		s.notify(ctx, notify.Event{Type: notify.EventRequestMatched, Request: r})
	} else {
		metrics.RecordMatching("no_match")
	}
	return r, nil
}

// ProcessPending runs the matcher over every request still in analyzing.
// A failing request is logged and skipped.
func (s *RequestService) ProcessPending(ctx context.Context) (int, error) {
	pending, err := s.requests.List(ctx, model.ListFilter{
		Status: string(model.RequestStatusAnalyzing),
		Limit:  pendingBatch,
	}.Normalize())
	if err != nil {
		return 0, fmt.Errorf("list analyzing requests: %w", err)
	}

	processed := 0
	for _, r := range pending {
		if err := ctx.Err(); err != nil {
			return processed, err
		}
		if _, err := s.RunMatching(ctx, r.ID); err != nil {
			s.logger.Error("Failed to match request",
				zap.String("request_id", r.ID.String()),
				zap.Error(err))
			continue
		}
		processed++
	}
	return processed, nil
}

func (s *RequestService) matchableTutors(ctx context.Context) ([]*model.TutorSubmission, error) {
	var out []*model.TutorSubmission
	for _, status := range []model.TutorStatus{model.TutorStatusActive, model.TutorStatusVerified} {
		for offset := 0; ; offset += model.MaxListLimit {
			page, err := s.tutors.List(ctx, model.ListFilter{
				Status: string(status),
				Limit:  model.MaxListLimit,
				Offset: offset,
			})
			if err != nil {
				return nil, fmt.Errorf("list %s tutors: %w", status, err)
			}
			out = append(out, page...)
			if len(page) < model.MaxListLimit {
				break
			}
		}
	}
	return out, nil
}

func (s *RequestService) notify(ctx context.Context, event notify.Event) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(ctx, event); err != nil {
		s.logger.Warn("Failed to send notification",
			zap.String("event", string(event.Type)),
			zap.Error(err))
	}
}
