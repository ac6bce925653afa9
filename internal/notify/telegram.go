package notify

import (
	"context"
	"fmt"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// MessageSender is the part of *bot.Bot used for notifications.
type MessageSender interface {
	SendMessage(ctx context.Context, params *bot.SendMessageParams) (*models.Message, error)
}

// Telegram posts events into the agency's admin chat.
type Telegram struct {
	sender MessageSender
	chatID int64
}

func NewTelegram(sender MessageSender, chatID int64) *Telegram {
	return &Telegram{sender: sender, chatID: chatID}
}

func (t *Telegram) Notify(ctx context.Context, event Event) error {
	_, err := t.sender.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: t.chatID,
		Text:   event.Body(),
	})
	if err != nil {
		return fmt.Errorf("send telegram message: %w", err)
	}
	return nil
}
