package handlers

import (
	"github.com/Freeeeeet/tuition_site/internal/controller/state"
	"github.com/Freeeeeet/tuition_site/internal/service"
	"github.com/Freeeeeet/tuition_site/internal/validation"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Callback data prefixes
const (
	CallbackWizard = "wiz:" // wiz:<option value>
	WizardBack     = CallbackWizard + "back"
	WizardSkip     = CallbackWizard + "skip"
	WizardCancel   = CallbackWizard + "cancel"
)

// Handlers holds the dependencies of the bot commands.
type Handlers struct {
	submissions  *service.SubmissionService
	requests     *service.RequestService
	dashboard    *service.DashboardService
	validate     *validation.Validator
	stateManager *state.Manager
	adminChatID  int64
	logger       *zap.Logger
}

// NewHandlers builds the command handlers.
func NewHandlers(
	submissions *service.SubmissionService,
	requests *service.RequestService,
	dashboard *service.DashboardService,
	validate *validation.Validator,
	stateManager *state.Manager,
	adminChatID int64,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		submissions:  submissions,
		requests:     requests,
		dashboard:    dashboard,
		validate:     validate,
		stateManager: stateManager,
		adminChatID:  adminChatID,
		logger:       logger,
	}
}

// Reply is what a handler sends back: text plus an optional inline keyboard.
type Reply struct {
	Text   string
	Markup *models.InlineKeyboardMarkup
}
