package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Freeeeeet/tuition_site/internal/app"
	"github.com/Freeeeeet/tuition_site/internal/config"
	"github.com/Freeeeeet/tuition_site/internal/content"
	"github.com/Freeeeeet/tuition_site/internal/controller"
	"github.com/Freeeeeet/tuition_site/internal/httpapi"
	"github.com/Freeeeeet/tuition_site/internal/matching"
	"github.com/Freeeeeet/tuition_site/internal/notify"
	"github.com/Freeeeeet/tuition_site/internal/service"
	"github.com/Freeeeeet/tuition_site/internal/validation"
	"github.com/go-telegram/bot"
	"go.uber.org/zap"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	logger.Info("Starting tuition site",
		zap.String("environment", cfg.Environment),
		zap.String("store", cfg.StoreBackend),
		zap.String("addr", cfg.HTTPAddr))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Fatal("Server stopped with error", zap.Error(err))
	}
	logger.Info("Server stopped")
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	stores, closeStores, err := app.OpenStores(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer closeStores()

	var botInstance *bot.Bot
	if cfg.TelegramEnabled() {
		botInstance, err = bot.New(cfg.TelegramToken)
		if err != nil {
			return err
		}
	}

	var sender notify.MessageSender
	if botInstance != nil {
		sender = botInstance
	}
	notifier := app.NewNotifier(cfg, sender, logger)

	var matcher matching.Matcher = matching.NewRuleMatcher()
	if cfg.MatchingFunctionURL != "" {
		matcher = matching.NewRemoteMatcher(cfg.MatchingFunctionURL, matcher, logger)
		logger.Info("Using remote matching function", zap.String("url", cfg.MatchingFunctionURL))
	}

	validate := validation.New()
	submissions := service.NewSubmissionService(stores.Parents, stores.Tutors, notifier, validate, logger)
	requests := service.NewRequestService(stores.Requests, stores.Tutors, matcher, notifier, validate, logger)
	dashboard := service.NewDashboardService(stores)

	auth, err := service.NewAuthService(service.AuthConfig{
		Password:     cfg.AdminPassword,
		PasswordHash: cfg.AdminPasswordHash,
		APIToken:     cfg.AdminAPIToken,
		JWTSecret:    cfg.JWTSecret,
		TokenTTL:     cfg.JWTTTL,
	}, logger)
	if err != nil {
		return err
	}

	scheduler := app.NewScheduler(requests, cfg.MatchingInterval, logger)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	if botInstance != nil {
		botController := controller.NewBotController(botInstance, submissions, requests, dashboard, validate, cfg.TelegramAdminChatID, logger)
		if err := botController.RegisterHandlers(ctx); err != nil {
			return err
		}
		go botController.Start(ctx)
	}

	limiter := httpapi.NewRateLimiter(cfg.SubmitRatePerMin, logger)
	limiter.StartCleanup(ctx, 5*time.Minute, 10*time.Minute)
	loginLimiter := httpapi.NewRateLimiter(cfg.LoginRatePerMin, logger)
	loginLimiter.StartCleanup(ctx, 5*time.Minute, 10*time.Minute)

	srv := &http.Server{
		Addr: cfg.HTTPAddr,
		Handler: httpapi.NewRouter(httpapi.Deps{
			Pages:       content.DefaultCatalog(),
			Submissions: submissions,
			Requests:    requests,
			Dashboard:   dashboard,
			Auth:        auth,
			Export:      service.NewExportService(submissions, requests),
			Limiter:     limiter,
			LoginLimit:  loginLimiter,
			Logger:      logger,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("HTTP server listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
