package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nkrane/internal/config"
	"nkrane/internal/handler"
	"nkrane/internal/repository/postgres"
	"nkrane/internal/service"
	"nkrane/internal/translator"

	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

func main() {
	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting nkrane bot")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}
	if err := cfg.RequireBot(); err != nil {
		logger.Fatal("Invalid config", zap.Error(err))
	}
	if err := cfg.RequireDatabase(); err != nil {
		logger.Fatal("Invalid config", zap.Error(err))
	}

	logger.Info("Configuration loaded successfully")

	// Connect to database with retries
	db, err := postgres.Connect(cfg.DSN(), 30, 2*time.Second, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connection established")

	if err := postgres.Migrate(db, postgres.MigrationsURL, logger); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Initialize repositories
	userRepo := postgres.NewUserRepo(db)
	termRepo := postgres.NewTermRepo(db)
	historyRepo := postgres.NewHistoryRepo(db)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Terminology: built-in, TERMINOLOGY_DIR and imported terms
	store, err := service.LoadStore(cfg.Terminology, nil, termRepo, logger)
	if err != nil {
		logger.Fatal("Failed to load terminology", zap.Error(err))
	}

	tr, err := translator.New(ctx, cfg.Translator, logger)
	if err != nil {
		logger.Fatal("Failed to create translator", zap.Error(err))
	}

	// Initialize services
	authService := service.NewAuthService(userRepo, cfg.Bot.Password)
	translationService := service.NewTranslationService(store, tr, service.OptionsFromConfig(cfg), logger)
	terminologyService := service.NewTerminologyService(store, termRepo, logger)
	historyService := service.NewHistoryService(historyRepo, logger)

	// Initialize Telegram bot
	bot, err := tele.NewBot(tele.Settings{
		Token:  cfg.Bot.Token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	})
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	logger.Info("Telegram bot initialized", zap.String("provider", tr.Name()))

	h := handler.NewHandler(
		bot,
		authService,
		translationService,
		terminologyService,
		historyService,
		cfg.Terminology.SourceLanguage,
		logger,
	)
	h.RegisterHandlers()

	// Start cleanup job in background
	go runCleanupJob(ctx, historyService, logger)

	go func() {
		logger.Info("Bot started successfully")
		bot.Start()
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan

	logger.Info("Shutdown signal received, stopping bot...")

	bot.Stop()
	cancel()

	logger.Info("Bot stopped gracefully")
}

// runCleanupJob deletes old translation history once a day
func runCleanupJob(ctx context.Context, historyService *service.HistoryService, logger *zap.Logger) {
	if err := historyService.CleanupOldData(); err != nil {
		logger.Error("Failed to run initial cleanup", zap.Error(err))
	}

	ticker := time.NewTicker(24 * time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Cleanup job stopped")
			return
		case <-ticker.C:
			if err := historyService.CleanupOldData(); err != nil {
				logger.Error("Failed to run cleanup", zap.Error(err))
			}
		}
	}
}
