package handlers

import (
	"context"
	"strings"
	"testing"

	"github.com/Freeeeeet/tuition_site/internal/controller/state"
	"github.com/Freeeeeet/tuition_site/internal/matching"
	"github.com/Freeeeeet/tuition_site/internal/model"
	"github.com/Freeeeeet/tuition_site/internal/notify"
	"github.com/Freeeeeet/tuition_site/internal/repository/memory"
	"github.com/Freeeeeet/tuition_site/internal/service"
	"github.com/Freeeeeet/tuition_site/internal/validation"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const (
	userID      = int64(42)
	adminChatID = int64(-1001)
)

func newTestHandlers(t *testing.T) (*Handlers, service.Stores) {
	t.Helper()
	logger := zap.NewNop()
	stores := memory.NewStores()
	v := validation.New()
	n := notify.NewLog(logger)
	return NewHandlers(
		service.NewSubmissionService(stores.Parents, stores.Tutors, n, v, logger),
		service.NewRequestService(stores.Requests, stores.Tutors, matching.NewRuleMatcher(), n, v, logger),
		service.NewDashboardService(stores),
		v,
		state.NewManager(),
		adminChatID,
		logger,
	), stores
}

func TestFindTutorFlow(t *testing.T) {
	h, stores := newTestHandlers(t)
	ctx := context.Background()

	reply := h.startForm(userID, "request")
	assert.Contains(t, reply.Text, "Step 1 of 9")
	require.NotNil(t, reply.Markup)
	assert.Equal(t, state.StateWizard, h.stateManager.GetState(userID))

	for _, in := range []string{"Mrs Tan", "tan@example.com"} {
		reply = h.answer(ctx, userID, in)
	}
	// optional phone step offers a skip button
	assert.Contains(t, reply.Text, "Step 3 of 9")
	reply = h.callback(ctx, userID, WizardSkip)
	assert.Contains(t, reply.Text, "Step 4 of 9")

	reply = h.answer(ctx, userID, "Math")
	reply = h.answer(ctx, userID, "P5")
	// urgency step renders one button per option
	require.NotNil(t, reply.Markup)
	assert.Equal(t, "wiz:low", reply.Markup.InlineKeyboard[0][0].CallbackData)
	reply = h.callback(ctx, userID, "wiz:urgent")
	assert.Contains(t, reply.Text, "Step 7 of 9")

	for _, in := range []string{"skip", "skip", "skip"} {
		reply = h.answer(ctx, userID, in)
	}
	assert.Contains(t, reply.Text, "Request received")
	assert.Equal(t, state.StateNone, h.stateManager.GetState(userID))

	requests, err := stores.Requests.List(ctx, model.ListFilter{})
	require.NoError(t, err)
	require.Len(t, requests, 1)
	assert.Equal(t, model.UrgencyUrgent, requests[0].Urgency)
	assert.Equal(t, "Primary 5", requests[0].Level)
	assert.Contains(t, reply.Text, requests[0].ID.String())
}

func TestWizard_ValidationKeepsStep(t *testing.T) {
	h, _ := newTestHandlers(t)
	ctx := context.Background()

	h.startForm(userID, "parent")
	h.answer(ctx, userID, "Mrs Tan")
	reply := h.answer(ctx, userID, "nope")
	assert.Contains(t, reply.Text, "⚠️ email must be a valid email address")
	assert.Contains(t, reply.Text, "Step 2 of 11")

	reply = h.callback(ctx, userID, WizardBack)
	assert.Contains(t, reply.Text, "Step 1 of 11")
}

func TestWizard_BudgetErrorReopensFailingStep(t *testing.T) {
	h, stores := newTestHandlers(t)
	ctx := context.Background()

	h.startForm(userID, "request")
	for _, in := range []string{"Mrs Tan", "tan@example.com", "skip", "Math", "Sec 2", "normal", "50", "30"} {
		h.answer(ctx, userID, in)
	}
	reply := h.answer(ctx, userID, "skip")
	assert.Contains(t, reply.Text, "budget max")
	assert.Contains(t, reply.Text, "Step 8 of 9")
	assert.Contains(t, reply.Text, "Maximum budget")
	assert.Equal(t, state.StateWizard, h.stateManager.GetState(userID))

	// a corrected value moves on and the form submits
	reply = h.answer(ctx, userID, "80")
	assert.Contains(t, reply.Text, "Step 9 of 9")
	reply = h.answer(ctx, userID, "skip")
	assert.Contains(t, reply.Text, "Request received")

	requests, err := stores.Requests.List(ctx, model.ListFilter{})
	require.NoError(t, err)
	require.Len(t, requests, 1)
	assert.Equal(t, 50, requests[0].BudgetMin)
	assert.Equal(t, 80, requests[0].BudgetMax)
}

func TestWizard_ExperienceOutOfRangeStaysOnStep(t *testing.T) {
	h, _ := newTestHandlers(t)
	ctx := context.Background()

	h.startForm(userID, "tutor")
	for _, in := range []string{"Alex Ong", "alex@example.com", "98765432", "BSc Chemistry", "full_time"} {
		h.answer(ctx, userID, in)
	}
	reply := h.answer(ctx, userID, "70")
	assert.Contains(t, reply.Text, "experience years must be at most 60")
	assert.Contains(t, reply.Text, "Step 6 of 10")

	reply = h.answer(ctx, userID, "7")
	assert.Contains(t, reply.Text, "Step 7 of 10")
}

func TestCancel(t *testing.T) {
	h, _ := newTestHandlers(t)
	assert.Contains(t, h.cancel(userID).Text, "Nothing to cancel")

	h.startForm(userID, "tutor")
	assert.Contains(t, h.callback(context.Background(), userID, WizardCancel).Text, "cancelled")
	assert.Equal(t, state.StateNone, h.stateManager.GetState(userID))

	assert.Contains(t, h.answer(context.Background(), userID, "hello").Text, "No form is open")
}

func TestStatus(t *testing.T) {
	h, _ := newTestHandlers(t)
	ctx := context.Background()

	assert.Contains(t, h.status(ctx, "/status").Text, "Send the request id")
	assert.Contains(t, h.status(ctx, "/status 123").Text, "does not look like")
	assert.Contains(t, h.status(ctx, "/status "+uuid.NewString()).Text, "not found")

	r, err := h.requests.CreateRequest(ctx, service.RequestInput{
		ParentName: "Mrs Tan", Email: "tan@example.com", Phone: "91234567", Subject: "Math", Level: "JC1",
	})
	require.NoError(t, err)

	text := h.status(ctx, "/status "+r.ID.String()).Text
	assert.Contains(t, text, "JC1 Math")
	assert.Contains(t, text, r.Status.Display().Text)
	assert.NotContains(t, text, "tan@example.com")
	assert.NotContains(t, text, "91234567")
}

func TestPending(t *testing.T) {
	h, _ := newTestHandlers(t)
	ctx := context.Background()

	assert.Contains(t, h.pending(ctx, userID).Text, "only available")

	_, err := h.submissions.SubmitParent(ctx, service.ParentInput{
		ParentName: "Mrs Tan", Email: "tan@example.com", Phone: "91234567", ChildLevel: "P3", Subjects: []string{"English"},
	})
	require.NoError(t, err)

	text := h.pending(ctx, adminChatID).Text
	assert.True(t, strings.HasPrefix(text, "📋 Dashboard"))
	assert.Contains(t, text, "• pending: 1")
	assert.Contains(t, text, "• analyzing: 0")
}
