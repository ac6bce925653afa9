// Package notify tells the agency about new leads and matches.
package notify

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Freeeeeet/tuition_site/internal/model"
	"go.uber.org/zap"
)

type EventType string

const (
	EventParentSubmitted EventType = "parent_submitted"
	EventTutorSubmitted  EventType = "tutor_submitted"
	EventRequestCreated  EventType = "request_created"
	EventRequestMatched  EventType = "request_matched"
)

// Event carries exactly one of the record pointers, according to Type.
type Event struct {
	Type    EventType
	Parent  *model.ParentSubmission
	Tutor   *model.TutorSubmission
	Request *model.TutorRequest
}

type Notifier interface {
	Notify(ctx context.Context, event Event) error
}

// Title is a one-line summary, used as e-mail subject.
func (e Event) Title() string {
	switch e.Type {
	case EventParentSubmitted:
		return fmt.Sprintf("New parent enquiry: %s (%s)", e.Parent.ParentName, e.Parent.ChildLevel)
	case EventTutorSubmitted:
		return fmt.Sprintf("New tutor application: %s", e.Tutor.FullName)
	case EventRequestCreated:
		return fmt.Sprintf("New tutor request: %s %s", e.Request.Level, e.Request.Subject)
	case EventRequestMatched:
		return fmt.Sprintf("Request matched: %s %s", e.Request.Level, e.Request.Subject)
	}
	return string(e.Type)
}

// Body renders the event as plain text.
func (e Event) Body() string {
	var b strings.Builder
	switch e.Type {
	case EventParentSubmitted:
		p := e.Parent
		fmt.Fprintf(&b, "👨‍👩‍👧 %s\n", e.Title())
		fmt.Fprintf(&b, "📞 %s (%s)\n✉️ %s\n", p.Phone, p.PreferredContact, p.Email)
		fmt.Fprintf(&b, "🎒 %s, %s, %s\n", p.ChildName, p.ChildLevel, p.ChildSchool)
		fmt.Fprintf(&b, "📚 %s (%s)\n", strings.Join(p.Subjects, ", "), p.Program)
		if p.Preferences != "" {
			fmt.Fprintf(&b, "📝 %s\n", p.Preferences)
		}
		fmt.Fprintf(&b, "ID: %s", p.ID)
	case EventTutorSubmitted:
		t := e.Tutor
		fmt.Fprintf(&b, "🎓 %s\n", e.Title())
		fmt.Fprintf(&b, "📞 %s\n✉️ %s\n", t.Phone, t.Email)
		fmt.Fprintf(&b, "🏅 %s, %s, %d yrs\n", t.HighestQualification, t.TutorType, t.ExperienceYears)
		fmt.Fprintf(&b, "📚 %s / %s\n", strings.Join(t.Subjects, ", "), strings.Join(t.Levels, ", "))
		fmt.Fprintf(&b, "💵 $%d/h\n", t.HourlyRate)
		fmt.Fprintf(&b, "ID: %s", t.ID)
	case EventRequestCreated, EventRequestMatched:
		r := e.Request
		fmt.Fprintf(&b, "🔍 %s\n", e.Title())
		fmt.Fprintf(&b, "👤 %s, %s, %s\n", r.ParentName, r.Phone, r.Email)
		fmt.Fprintf(&b, "⏱ %s", r.Urgency)
		if r.HasBudget() {
			fmt.Fprintf(&b, ", 💵 $%d-$%d/h", r.BudgetMin, r.BudgetMax)
		}
		b.WriteString("\n")
		fmt.Fprintf(&b, "📊 %s\n", r.Status.Display())
		if r.MatchSummary != "" {
			fmt.Fprintf(&b, "🤝 %s\n", r.MatchSummary)
		}
		fmt.Fprintf(&b, "ID: %s", r.ID)
	default:
		b.WriteString(string(e.Type))
	}
	return b.String()
}

// Multi fans an event out to every channel. One failing channel does not
// stop the others.
type Multi struct {
	notifiers []Notifier
	logger    *zap.Logger
}

func NewMulti(logger *zap.Logger, notifiers ...Notifier) *Multi {
	return &Multi{notifiers: notifiers, logger: logger}
}

func (m *Multi) Notify(ctx context.Context, event Event) error {
	var errs []error
	for _, n := range m.notifiers {
		if err := n.Notify(ctx, event); err != nil {
			m.logger.Warn("Notification channel failed",
				zap.String("event", string(event.Type)),
				zap.String("channel", fmt.Sprintf("%T", n)),
				zap.Error(err))
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Log writes events to the application log; always enabled.
type Log struct {
	logger *zap.Logger
}

func NewLog(logger *zap.Logger) *Log {
	return &Log{logger: logger}
}

func (l *Log) Notify(ctx context.Context, event Event) error {
	l.logger.Info("Notification", zap.String("event", string(event.Type)), zap.String("title", event.Title()))
	return nil
}
