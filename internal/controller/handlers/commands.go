package handlers

import (
	"context"
	"errors"
	"strings"

	"github.com/Freeeeeet/tuition_site/internal/controller/state"
	"github.com/Freeeeeet/tuition_site/internal/model"
	"github.com/Freeeeeet/tuition_site/internal/service"
	"github.com/Freeeeeet/tuition_site/internal/wizard"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const helpText = "📚 Commands:\n\n" +
	"For parents:\n" +
	"/findtutor - Request a tutor for one subject\n" +
	"/signup - Register your family with the agency\n" +
	"/status <id> - Check a tutor request\n\n" +
	"For tutors:\n" +
	"/becometutor - Apply to join our tutor pool\n\n" +
	"/cancel - Stop the current form\n" +
	"/help - Show this message"

// HandleStart handles /start.
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	name := "there"
	if update.Message.From != nil && update.Message.From.FirstName != "" {
		name = update.Message.From.FirstName
	}

	h.send(ctx, b, update.Message.Chat.ID, Reply{
		Text: "👋 Hi " + name + "!\n\n" +
			"We match Singapore families with home tutors for Primary, Secondary and JC levels, " +
			"and run enrichment programmes for schools.\n\n" + helpText,
	})
}

// HandleHelp handles /help.
func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	h.send(ctx, b, update.Message.Chat.ID, Reply{Text: helpText})
}

// HandleCancel handles /cancel and drops the open form.
func (h *Handlers) HandleCancel(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}
	h.send(ctx, b, update.Message.Chat.ID, h.cancel(update.Message.From.ID))
}

func (h *Handlers) cancel(telegramID int64) Reply {
	if h.stateManager.GetState(telegramID) == state.StateNone {
		return Reply{Text: "❌ Nothing to cancel."}
	}
	h.stateManager.ClearState(telegramID)
	return Reply{Text: "✅ Form cancelled.\n\nUse /help to see what else I can do."}
}

func (h *Handlers) HandleFindTutor(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.handleStartForm(ctx, b, update, wizard.FormRequest)
}

func (h *Handlers) HandleSignup(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.handleStartForm(ctx, b, update, wizard.FormParent)
}

func (h *Handlers) HandleBecomeTutor(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.handleStartForm(ctx, b, update, wizard.FormTutor)
}

func (h *Handlers) handleStartForm(ctx context.Context, b *bot.Bot, update *models.Update, form string) {
	if update.Message == nil || update.Message.From == nil {
		return
	}
	h.logger.Info("Form started",
		zap.Int64("telegram_id", update.Message.From.ID),
		zap.String("form", form))
	h.send(ctx, b, update.Message.Chat.ID, h.startForm(update.Message.From.ID, form))
}

// HandleStatus handles /status <id>.
func (h *Handlers) HandleStatus(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	h.send(ctx, b, update.Message.Chat.ID, h.status(ctx, update.Message.Text))
}

func (h *Handlers) status(ctx context.Context, text string) Reply {
	fields := strings.Fields(text)
	if len(fields) < 2 {
		return Reply{Text: "Send the request id you received, e.g.\n/status 3f2a9c1e-..."}
	}
	id, err := uuid.Parse(fields[1])
	if err != nil {
		return Reply{Text: "❌ That does not look like a request id."}
	}

	r, err := h.requests.GetRequest(ctx, id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			return Reply{Text: "❌ Request not found."}
		}
		h.logger.Error("Failed to get request status", zap.String("id", id.String()), zap.Error(err))
		return Reply{Text: "❌ Something went wrong. Please try again later."}
	}
	return Reply{Text: FormatRequestStatus(r)}
}

// HandlePending shows dashboard counts; only answers in the admin chat.
func (h *Handlers) HandlePending(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	h.send(ctx, b, update.Message.Chat.ID, h.pending(ctx, update.Message.Chat.ID))
}

func (h *Handlers) pending(ctx context.Context, chatID int64) Reply {
	if !h.isAdminChat(chatID) {
		return Reply{Text: "❌ This command is only available to the agency team."}
	}

	stats, err := h.dashboard.Stats(ctx)
	if err != nil {
		h.logger.Error("Failed to load dashboard stats", zap.Error(err))
		return Reply{Text: "❌ Failed to load stats."}
	}

	text := "📋 Dashboard\n\n" +
		FormatCounts("👨‍👩‍👧 Parents", stats.Parents, statusNames(model.ParentStatuses)) + "\n" +
		FormatCounts("🎓 Tutors", stats.Tutors, statusNames(model.TutorStatuses)) + "\n" +
		FormatCounts("🔍 Requests", stats.Requests, statusNames(model.RequestStatuses))
	return Reply{Text: strings.TrimRight(text, "\n")}
}

func statusNames[S ~string](statuses []S) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}
