package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Freeeeeet/tuition_site/internal/controller/keyboard"
	"github.com/Freeeeeet/tuition_site/internal/controller/state"
	"github.com/Freeeeeet/tuition_site/internal/service"
	"github.com/Freeeeeet/tuition_site/internal/wizard"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func (h *Handlers) startForm(telegramID int64, name string) Reply {
	form, ok := wizard.Lookup(name)
	if !ok {
		return Reply{Text: "❌ Unknown form."}
	}

	session := wizard.NewSession(form)
	h.stateManager.ClearState(telegramID)
	h.stateManager.SetState(telegramID, state.StateWizard)
	h.stateManager.SetData(telegramID, state.KeySession, session)

	return prompt(session, "")
}

func (h *Handlers) session(telegramID int64) (*wizard.Session, bool) {
	if h.stateManager.GetState(telegramID) != state.StateWizard {
		return nil, false
	}
	v, ok := h.stateManager.GetData(telegramID, state.KeySession)
	if !ok {
		return nil, false
	}
	session, ok := v.(*wizard.Session)
	return session, ok
}

// prompt renders the current step, with an optional notice above it.
func prompt(session *wizard.Session, notice string) Reply {
	step, ok := session.Current()
	if !ok {
		return Reply{Text: notice}
	}

	var b strings.Builder
	if notice != "" {
		b.WriteString(notice + "\n\n")
	}
	fmt.Fprintf(&b, "📝 %s · %s\n\n%s", session.Form().Title, session.Progress(), step.Prompt)
	if step.Optional {
		fmt.Fprintf(&b, "\n(send \"%s\" to leave empty)", wizard.SkipWord)
	}

	kb := keyboard.NewBuilder()
	for _, o := range step.Options {
		kb.Row(keyboard.Button(o.Label, CallbackWizard+o.Value))
	}
	var nav []models.InlineKeyboardButton
	if step.Optional {
		nav = append(nav, keyboard.Button("⏭ Skip", WizardSkip))
	}
	if session.Position() > 0 {
		nav = append(nav, keyboard.Button("⬅️ Back", WizardBack))
	}
	nav = append(nav, keyboard.Button("✖️ Cancel", WizardCancel))
	kb.Row(nav...)

	return Reply{Text: b.String(), Markup: kb.Build()}
}

// answer feeds one user input into the open form and submits it when the
// last step is done.
func (h *Handlers) answer(ctx context.Context, telegramID int64, input string) Reply {
	session, ok := h.session(telegramID)
	if !ok {
		return Reply{Text: "No form is open. Use /findtutor, /signup or /becometutor to start one."}
	}

	if err := session.Answer(h.validate, input); err != nil {
		if text, ok := validationText(err); ok {
			return prompt(session, text)
		}
		return prompt(session, "⚠️ "+err.Error())
	}

	if !session.Done() {
		return prompt(session, "")
	}
	return h.submit(ctx, telegramID, session)
}

func (h *Handlers) back(telegramID int64) Reply {
	session, ok := h.session(telegramID)
	if !ok {
		return Reply{Text: "No form is open."}
	}
	session.Back()
	return prompt(session, "")
}

func (h *Handlers) submit(ctx context.Context, telegramID int64, session *wizard.Session) Reply {
	answers := session.Answers()

	var (
		id   uuid.UUID
		text string
		err  error
	)
	switch session.Form().Name {
	case wizard.FormParent:
		p, e := h.submissions.SubmitParent(ctx, answers.ParentInput())
		if err = e; err == nil {
			id = p.ID
			text = "✅ Thank you! Our coordinator will contact you by " + p.PreferredContact + " within one working day."
		}
	case wizard.FormTutor:
		t, e := h.submissions.SubmitTutor(ctx, answers.TutorInput())
		if err = e; err == nil {
			id = t.ID
			text = "✅ Application received! We will verify your details and be in touch."
		}
	case wizard.FormRequest:
		r, e := h.requests.CreateRequest(ctx, answers.RequestInput())
		if err = e; err == nil {
			id = r.ID
			text = "✅ Request received! We are analysing it now.\n\nCheck progress any time with\n/status " + r.ID.String()
		}
	default:
		err = fmt.Errorf("unknown form %q", session.Form().Name)
	}

	if err != nil {
		if vtext, ok := validationText(err); ok && errors.Is(err, service.ErrValidation) {
			// reopen the step that failed, or the last one if no step matches
			if !session.RewindToError(err) {
				session.Back()
			}
			return prompt(session, vtext)
		}
		h.logger.Error("Failed to submit form",
			zap.Int64("telegram_id", telegramID),
			zap.String("form", session.Form().Name),
			zap.Error(err))
		h.stateManager.ClearState(telegramID)
		return Reply{Text: "❌ Failed to submit form. Please try again later."}
	}

	h.stateManager.ClearState(telegramID)
	h.logger.Info("Form submitted",
		zap.Int64("telegram_id", telegramID),
		zap.String("form", session.Form().Name),
		zap.String("id", id.String()))
	return Reply{Text: text + "\n\nReference: " + id.String()}
}

// HandleTextMessage routes plain text to the user's open form.
func (h *Handlers) HandleTextMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil || update.Message.Text == "" {
		return
	}
	// commands have their own handlers
	if strings.HasPrefix(update.Message.Text, "/") {
		return
	}

	telegramID := update.Message.From.ID
	if h.stateManager.GetState(telegramID) == state.StateNone {
		h.logger.Debug("No active state, ignoring message", zap.Int64("telegram_id", telegramID))
		return
	}

	h.send(ctx, b, update.Message.Chat.ID, h.answer(ctx, telegramID, update.Message.Text))
}

// HandleCallbackQuery handles the form's inline buttons.
func (h *Handlers) HandleCallbackQuery(ctx context.Context, b *bot.Bot, update *models.Update) {
	callback := update.CallbackQuery
	if callback == nil {
		return
	}
	if _, err := b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{CallbackQueryID: callback.ID}); err != nil {
		h.logger.Warn("Failed to answer callback", zap.Error(err))
	}
	if callback.Message.Message == nil {
		return
	}

	h.send(ctx, b, callback.Message.Message.Chat.ID, h.callback(ctx, callback.From.ID, callback.Data))
}

func (h *Handlers) callback(ctx context.Context, telegramID int64, data string) Reply {
	h.logger.Debug("Routing callback",
		zap.String("data", data),
		zap.Int64("telegram_id", telegramID))

	switch {
	case data == WizardCancel:
		return h.cancel(telegramID)
	case data == WizardBack:
		return h.back(telegramID)
	case data == WizardSkip:
		return h.answer(ctx, telegramID, wizard.SkipWord)
	case strings.HasPrefix(data, CallbackWizard):
		return h.answer(ctx, telegramID, strings.TrimPrefix(data, CallbackWizard))
	}

	h.logger.Warn("Unknown callback", zap.String("data", data))
	return Reply{Text: "❌ This button is no longer active."}
}
