package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/tuition_site/internal/metrics"
	"github.com/Freeeeeet/tuition_site/internal/model"
	"github.com/Freeeeeet/tuition_site/internal/notify"
	"github.com/Freeeeeet/tuition_site/internal/validation"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SubmissionService handles parent and tutor signups and their admin review.
type SubmissionService struct {
	parents  ParentStore
	tutors   TutorStore
	notifier notify.Notifier
	validate *validation.Validator
	logger   *zap.Logger
	now      func() time.Time
}

func NewSubmissionService(
	parents ParentStore,
	tutors TutorStore,
	notifier notify.Notifier,
	validate *validation.Validator,
	logger *zap.Logger,
) *SubmissionService {
	return &SubmissionService{
		parents:  parents,
		tutors:   tutors,
		notifier: notifier,
		validate: validate,
		logger:   logger,
		now:      time.Now,
	}
}

// SubmitParent validates and stores a parent enquiry with status pending.
func (s *SubmissionService) SubmitParent(ctx context.Context, in ParentInput) (*model.ParentSubmission, error) {
	in.normalize()
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}

	p := in.toModel()
	p.ID = uuid.New()
	p.CreatedAt = s.now().UTC()
	p.UpdatedAt = p.CreatedAt

	if err := s.parents.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("create parent submission: %w", err)
	}

	s.logger.Info("Parent submission received",
		zap.String("id", p.ID.String()),
		zap.String("level", p.ChildLevel),
		zap.Strings("subjects", p.Subjects),
		zap.String("program", string(p.Program)),
	)
	metrics.RecordSubmission(string(model.KindParent))
	s.notify(ctx, notify.Event{Type: notify.EventParentSubmitted, Parent: p})

	return p, nil
}

// SubmitTutor validates and stores a tutor application with status pending.
func (s *SubmissionService) SubmitTutor(ctx context.Context, in TutorInput) (*model.TutorSubmission, error) {
	in.normalize()
	if err := s.validate.Struct(in); err != nil {
		return nil, err
	}

	t := in.toModel()
	t.ID = uuid.New()
	t.CreatedAt = s.now().UTC()
	t.UpdatedAt = t.CreatedAt

	if err := s.tutors.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("create tutor submission: %w", err)
	}

	s.logger.Info("Tutor submission received",
		zap.String("id", t.ID.String()),
		zap.String("tutor_type", string(t.TutorType)),
		zap.Strings("subjects", t.Subjects),
		zap.Strings("levels", t.Levels),
	)
	metrics.RecordSubmission(string(model.KindTutor))
	s.notify(ctx, notify.Event{Type: notify.EventTutorSubmitted, Tutor: t})

	return t, nil
}

func (s *SubmissionService) GetParent(ctx context.Context, id uuid.UUID) (*model.ParentSubmission, error) {
	p, err := s.parents.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get parent submission: %w", err)
	}
	if p == nil {
		return nil, fmt.Errorf("parent submission %s: %w", id, ErrNotFound)
	}
	return p, nil
}

func (s *SubmissionService) GetTutor(ctx context.Context, id uuid.UUID) (*model.TutorSubmission, error) {
	t, err := s.tutors.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get tutor submission: %w", err)
	}
	if t == nil {
		return nil, fmt.Errorf("tutor submission %s: %w", id, ErrNotFound)
	}
	return t, nil
}

func (s *SubmissionService) ListParents(ctx context.Context, filter model.ListFilter) ([]*model.ParentSubmission, error) {
	filter = filter.Normalize()
	if filter.Status != "" {
		if _, err := model.ParseParentStatus(filter.Status); err != nil {
			return nil, validation.FieldError("status", err.Error())
		}
	}
	parents, err := s.parents.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list parent submissions: %w", err)
	}
	return parents, nil
}

func (s *SubmissionService) ListTutors(ctx context.Context, filter model.ListFilter) ([]*model.TutorSubmission, error) {
	filter = filter.Normalize()
	if filter.Status != "" {
		if _, err := model.ParseTutorStatus(filter.Status); err != nil {
			return nil, validation.FieldError("status", err.Error())
		}
	}
	tutors, err := s.tutors.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list tutor submissions: %w", err)
	}
	return tutors, nil
}

// UpdateParentStatus sets any known status; transitions are not restricted.
func (s *SubmissionService) UpdateParentStatus(ctx context.Context, id uuid.UUID, upd StatusUpdate) (*model.ParentSubmission, error) {
	status, err := model.ParseParentStatus(upd.Status)
	if err != nil {
		return nil, validation.FieldError("status", err.Error())
	}
	if err := s.parents.UpdateStatus(ctx, id, status, upd.Notes); err != nil {
		return nil, fmt.Errorf("update parent status: %w", err)
	}

	s.logger.Info("Parent status updated",
		zap.String("id", id.String()),
		zap.String("status", string(status)))

	return s.GetParent(ctx, id)
}

func (s *SubmissionService) UpdateTutorStatus(ctx context.Context, id uuid.UUID, upd StatusUpdate) (*model.TutorSubmission, error) {
	status, err := model.ParseTutorStatus(upd.Status)
	if err != nil {
		return nil, validation.FieldError("status", err.Error())
	}
	if err := s.tutors.UpdateStatus(ctx, id, status, upd.Notes); err != nil {
		return nil, fmt.Errorf("update tutor status: %w", err)
	}

	s.logger.Info("Tutor status updated",
		zap.String("id", id.String()),
		zap.String("status", string(status)))

	return s.GetTutor(ctx, id)
}

// notify never fails the caller: a lead is stored even if nobody hears about it.
func (s *SubmissionService) notify(ctx context.Context, event notify.Event) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(ctx, event); err != nil {
		s.logger.Warn("Failed to send notification",
			zap.String("event", string(event.Type)),
			zap.Error(err))
	}
}
