package app

import (
	"github.com/Freeeeeet/tuition_site/internal/config"
	"github.com/Freeeeeet/tuition_site/internal/notify"
	"go.uber.org/zap"
)

// NewNotifier fans events out to the log and whatever channels are
// configured. sender may be nil when the bot is disabled.
func NewNotifier(cfg *config.Config, sender notify.MessageSender, logger *zap.Logger) notify.Notifier {
	notifiers := []notify.Notifier{notify.NewLog(logger)}

	if sender != nil && cfg.TelegramAdminChatID != 0 {
		notifiers = append(notifiers, notify.NewTelegram(sender, cfg.TelegramAdminChatID))
		logger.Info("Telegram notifications enabled", zap.Int64("chat_id", cfg.TelegramAdminChatID))
	}
	if cfg.EmailEnabled() {
		notifiers = append(notifiers, notify.NewSendGridEmail(cfg.SendGridAPIKey, cfg.NotifyEmailFrom, cfg.NotifyEmailTo))
		logger.Info("E-mail notifications enabled", zap.String("to", cfg.NotifyEmailTo))
	}

	return notify.NewMulti(logger, notifiers...)
}
