package controller

import (
	"context"
	"time"

	"github.com/Freeeeeet/tuition_site/internal/controller/handlers"
	"github.com/Freeeeeet/tuition_site/internal/controller/state"
	"github.com/Freeeeeet/tuition_site/internal/service"
	"github.com/Freeeeeet/tuition_site/internal/validation"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Abandoned forms are dropped after this long without input.
const dialogIdleTimeout = 2 * time.Hour

type BotController struct {
	bot          *bot.Bot
	handlers     *handlers.Handlers
	stateManager *state.Manager
	logger       *zap.Logger
}

func NewBotController(
	botInstance *bot.Bot,
	submissions *service.SubmissionService,
	requests *service.RequestService,
	dashboard *service.DashboardService,
	validate *validation.Validator,
	adminChatID int64,
	logger *zap.Logger,
) *BotController {
	// dialog state per user
	stateManager := state.NewManager()

	cmdHandlers := handlers.NewHandlers(
		submissions,
		requests,
		dashboard,
		validate,
		stateManager,
		adminChatID,
		logger,
	)

	return &BotController{
		bot:          botInstance,
		handlers:     cmdHandlers,
		stateManager: stateManager,
		logger:       logger,
	}
}

// RegisterHandlers registers all command handlers.
func (c *BotController) RegisterHandlers(ctx context.Context) error {
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, c.handlers.HandleStart)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypeExact, c.handlers.HandleHelp)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/cancel", bot.MatchTypeExact, c.handlers.HandleCancel)

	// forms
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/findtutor", bot.MatchTypeExact, c.handlers.HandleFindTutor)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/signup", bot.MatchTypeExact, c.handlers.HandleSignup)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/becometutor", bot.MatchTypeExact, c.handlers.HandleBecomeTutor)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/status", bot.MatchTypePrefix, c.handlers.HandleStatus)

	// agency chat only
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/pending", bot.MatchTypeExact, c.handlers.HandlePending)

	// plain text feeds the open form
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "", bot.MatchTypePrefix, c.handlers.HandleTextMessage)

	// inline button presses
	c.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, handlers.CallbackWizard, bot.MatchTypePrefix, c.handlers.HandleCallbackQuery)

	return c.setCommands(ctx)
}

// setCommands publishes the command menu.
func (c *BotController) setCommands(ctx context.Context) error {
	commands := []models.BotCommand{
		{Command: "start", Description: "🚀 Start"},
		{Command: "findtutor", Description: "🔍 Find a tutor"},
		{Command: "signup", Description: "👨‍👩‍👧 Parent signup"},
		{Command: "becometutor", Description: "🎓 Apply as a tutor"},
		{Command: "status", Description: "📊 Check a request"},
		{Command: "cancel", Description: "✖️ Cancel the current form"},
		{Command: "help", Description: "❓ Help"},
	}

	_, err := c.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: commands,
	})

	if err != nil {
		c.logger.Error("Failed to set bot commands", zap.Error(err))
		return err
	}

	c.logger.Info("✅ Bot commands menu set")
	return nil
}

// Start runs the bot and blocks until ctx is cancelled.
func (c *BotController) Start(ctx context.Context) error {
	c.logger.Info("Starting bot...")
	go c.sweepDialogs(ctx)
	c.bot.Start(ctx)
	return nil
}

func (c *BotController) sweepDialogs(ctx context.Context) {
	ticker := time.NewTicker(dialogIdleTimeout / 4)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := c.stateManager.Sweep(dialogIdleTimeout); n > 0 {
				c.logger.Info("Dropped idle dialogs", zap.Int("count", n))
			}
		}
	}
}
