package handlers

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/Freeeeeet/tuition_site/internal/model"
	"github.com/Freeeeeet/tuition_site/internal/validation"
	"github.com/go-telegram/bot"
	"go.uber.org/zap"
)

// send delivers a reply and logs delivery failures.
func (h *Handlers) send(ctx context.Context, b *bot.Bot, chatID int64, reply Reply) {
	params := &bot.SendMessageParams{
		ChatID: chatID,
		Text:   reply.Text,
	}
	if reply.Markup != nil {
		params.ReplyMarkup = reply.Markup
	}

	if _, err := b.SendMessage(ctx, params); err != nil {
		h.logger.Error("Failed to send message",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}
}

func (h *Handlers) isAdminChat(chatID int64) bool {
	return h.adminChatID != 0 && chatID == h.adminChatID
}

// validationText lists field messages one per line.
func validationText(err error) (string, bool) {
	var verr *validation.Error
	if !errors.As(err, &verr) {
		return "", false
	}
	keys := make([]string, 0, len(verr.Fields))
	for k := range verr.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, "⚠️ %s %s\n", strings.ReplaceAll(k, "_", " "), verr.Fields[k])
	}
	return strings.TrimRight(b.String(), "\n"), true
}

// FormatRequestStatus is the public view of a request: no contact details.
func FormatRequestStatus(r *model.TutorRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🔍 Request for %s %s\n\n", r.Level, r.Subject)
	fmt.Fprintf(&b, "📊 Status: %s\n", r.Status.Display())
	if r.MatchSummary != "" {
		fmt.Fprintf(&b, "🤝 %s\n", r.MatchSummary)
	}
	fmt.Fprintf(&b, "📅 Submitted: %s", r.CreatedAt.Format("02 Jan 2006 15:04"))
	return b.String()
}

// FormatCounts renders one dashboard block in status order.
func FormatCounts(title string, counts model.StatusCounts, order []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %d\n", title, counts.Total())
	for _, s := range order {
		fmt.Fprintf(&b, "  • %s: %d\n", s, counts[s])
	}
	return b.String()
}
