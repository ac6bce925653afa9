package notify

import (
	"context"
	"errors"
	"testing"

	"github.com/Freeeeeet/tuition_site/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/google/uuid"
	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSender struct {
	sent []*bot.SendMessageParams
	err  error
}

func (f *fakeSender) SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error) {
	f.sent = append(f.sent, params)
	return &models.Message{}, f.err
}

type fakeMail struct {
	sent   []*mail.SGMailV3
	status int
}

func (f *fakeMail) Send(email *mail.SGMailV3) (*rest.Response, error) {
	f.sent = append(f.sent, email)
	return &rest.Response{StatusCode: f.status, Body: "nope"}, nil
}

type failing struct{}

func (failing) Notify(ctx context.Context, event Event) error { return errors.New("boom") }

func parentEvent() Event {
	return Event{
		Type: EventParentSubmitted,
		Parent: &model.ParentSubmission{
			ID:               uuid.New(),
			ParentName:       "Mrs Lim",
			Email:            "lim@example.sg",
			Phone:            "+6591234567",
			PreferredContact: "whatsapp",
			ChildName:        "Ethan",
			ChildLevel:       "Primary 5",
			Program:          model.ProgramTuition,
			Subjects:         []string{"Math", "Science"},
		},
	}
}

func TestEventTitleAndBody(t *testing.T) {
	e := parentEvent()
	assert.Equal(t, "New parent enquiry: Mrs Lim (Primary 5)", e.Title())
	assert.Contains(t, e.Body(), "Math, Science")
	assert.Contains(t, e.Body(), e.Parent.ID.String())

	req := Event{Type: EventRequestMatched, Request: &model.TutorRequest{
		Subject: "Chemistry", Level: "Sec 4", Status: model.RequestStatusMatched,
		BudgetMin: 40, BudgetMax: 60, MatchSummary: "Matched 2 tutor(s)",
	}}
	assert.Equal(t, "Request matched: Sec 4 Chemistry", req.Title())
	assert.Contains(t, req.Body(), "$40-$60/h")
	assert.Contains(t, req.Body(), "Matched 2 tutor(s)")
}

func TestTelegram_SendsToAdminChat(t *testing.T) {
	sender := &fakeSender{}
	n := NewTelegram(sender, -100123)

	require.NoError(t, n.Notify(context.Background(), parentEvent()))
	require.Len(t, sender.sent, 1)
	assert.Equal(t, int64(-100123), sender.sent[0].ChatID)

	sender.err = errors.New("forbidden")
	assert.Error(t, n.Notify(context.Background(), parentEvent()))
}

func TestEmail_StatusCheck(t *testing.T) {
	client := &fakeMail{status: 202}
	n := NewEmail(client, "noreply@example.sg", "admin@example.sg")

	require.NoError(t, n.Notify(context.Background(), parentEvent()))
	require.Len(t, client.sent, 1)
	assert.Equal(t, "New parent enquiry: Mrs Lim (Primary 5)", client.sent[0].Subject)

	client.status = 401
	assert.ErrorContains(t, n.Notify(context.Background(), parentEvent()), "status 401")
}

func TestMulti_ContinuesAfterFailure(t *testing.T) {
	sender := &fakeSender{}
	m := NewMulti(zap.NewNop(), failing{}, NewTelegram(sender, 1), NewLog(zap.NewNop()))

	err := m.Notify(context.Background(), parentEvent())
	assert.ErrorContains(t, err, "boom")
	assert.Len(t, sender.sent, 1)
}
