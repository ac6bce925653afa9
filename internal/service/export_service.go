package service

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/Freeeeeet/tuition_site/internal/model"
	"github.com/google/uuid"
)

const listSep = "; "

// ExportService writes admin table views as CSV, honouring the same filter.
type ExportService struct {
	submissions *SubmissionService
	requests    *RequestService
}

func NewExportService(submissions *SubmissionService, requests *RequestService) *ExportService {
	return &ExportService{submissions: submissions, requests: requests}
}

// Export writes every record of kind matching filter; Limit/Offset are ignored.
func (s *ExportService) Export(ctx context.Context, kind model.Kind, filter model.ListFilter, w io.Writer) (int, error) {
	cw := csv.NewWriter(w)
	var (
		n   int
		err error
	)
	switch kind {
	case model.KindParent:
		n, err = s.exportParents(ctx, filter, cw)
	case model.KindTutor:
		n, err = s.exportTutors(ctx, filter, cw)
	case model.KindRequest:
		n, err = s.exportRequests(ctx, filter, cw)
	default:
		return 0, fmt.Errorf("unknown export kind %q: %w", kind, ErrValidation)
	}
	if err != nil {
		return n, err
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return n, fmt.Errorf("write csv: %w", err)
	}
	return n, nil
}

// Filename suggests a download name like parents-20260102.csv.
func Filename(kind model.Kind, now time.Time) string {
	return fmt.Sprintf("%s-%s.csv", kind, now.Format("20060102"))
}

// paginate pulls pages of MaxListLimit until a short page.
func paginate[T any](ctx context.Context, filter model.ListFilter, list func(context.Context, model.ListFilter) ([]T, error), each func(T) error) (int, error) {
	filter.Limit = model.MaxListLimit
	n := 0
	for filter.Offset = 0; ; filter.Offset += model.MaxListLimit {
		page, err := list(ctx, filter)
		if err != nil {
			return n, err
		}
		for _, item := range page {
			if err := each(item); err != nil {
				return n, err
			}
			n++
		}
		if len(page) < model.MaxListLimit {
			return n, nil
		}
	}
}

func (s *ExportService) exportParents(ctx context.Context, filter model.ListFilter, cw *csv.Writer) (int, error) {
	header := []string{"id", "created_at", "status", "parent_name", "email", "phone", "preferred_contact",
		"child_name", "child_level", "child_school", "program", "subjects", "location", "preferences", "admin_notes"}
	if err := cw.Write(header); err != nil {
		return 0, fmt.Errorf("write csv: %w", err)
	}
	return paginate(ctx, filter, s.submissions.ListParents, func(p *model.ParentSubmission) error {
		return cw.Write([]string{
			p.ID.String(), formatTime(p.CreatedAt), string(p.Status), p.ParentName, p.Email, p.Phone,
			p.PreferredContact, p.ChildName, p.ChildLevel, p.ChildSchool, string(p.Program),
			strings.Join(p.Subjects, listSep), p.Location, p.Preferences, p.AdminNotes,
		})
	})
}

func (s *ExportService) exportTutors(ctx context.Context, filter model.ListFilter, cw *csv.Writer) (int, error) {
	header := []string{"id", "created_at", "status", "full_name", "email", "phone", "highest_qualification",
		"tutor_type", "experience_years", "subjects", "levels", "hourly_rate", "bio", "admin_notes"}
	if err := cw.Write(header); err != nil {
		return 0, fmt.Errorf("write csv: %w", err)
	}
	return paginate(ctx, filter, s.submissions.ListTutors, func(t *model.TutorSubmission) error {
		return cw.Write([]string{
			t.ID.String(), formatTime(t.CreatedAt), string(t.Status), t.FullName, t.Email, t.Phone,
			t.HighestQualification, string(t.TutorType), strconv.Itoa(t.ExperienceYears),
			strings.Join(t.Subjects, listSep), strings.Join(t.Levels, listSep),
			strconv.Itoa(t.HourlyRate), t.Bio, t.AdminNotes,
		})
	})
}

func (s *ExportService) exportRequests(ctx context.Context, filter model.ListFilter, cw *csv.Writer) (int, error) {
	header := []string{"id", "created_at", "status", "parent_submission_id", "parent_name", "email", "phone",
		"subject", "level", "urgency", "budget_min", "budget_max", "notes", "matched_tutor_ids", "match_summary"}
	if err := cw.Write(header); err != nil {
		return 0, fmt.Errorf("write csv: %w", err)
	}
	return paginate(ctx, filter, s.requests.ListRequests, func(r *model.TutorRequest) error {
		parentID := ""
		if r.ParentSubmissionID != nil {
			parentID = r.ParentSubmissionID.String()
		}
		return cw.Write([]string{
			r.ID.String(), formatTime(r.CreatedAt), string(r.Status), parentID, r.ParentName, r.Email, r.Phone,
			r.Subject, r.Level, string(r.Urgency), strconv.Itoa(r.BudgetMin), strconv.Itoa(r.BudgetMax),
			r.Notes, joinIDs(r.MatchedTutorIDs), r.MatchSummary,
		})
	})
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func joinIDs(ids []uuid.UUID) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = id.String()
	}
	return strings.Join(parts, listSep)
}
