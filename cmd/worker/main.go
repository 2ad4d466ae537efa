package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"nkrane/internal/config"
	"nkrane/internal/queue"
	"nkrane/internal/repository"
	"nkrane/internal/repository/postgres"
	"nkrane/internal/service"
	"nkrane/internal/translator"

	"go.uber.org/zap"
)

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting nkrane worker")

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}
	if err := cfg.RequireQueue(); err != nil {
		logger.Fatal("Invalid config", zap.Error(err))
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Imported terminology is merged when a database is configured
	var termRepo repository.TermRepository
	if cfg.RequireDatabase() == nil {
		db, err := postgres.Connect(cfg.DSN(), 30, 2*time.Second, logger)
		if err != nil {
			logger.Fatal("Failed to connect to database", zap.Error(err))
		}
		defer db.Close()

		if err := postgres.Migrate(db, postgres.MigrationsURL, logger); err != nil {
			logger.Fatal("Failed to run migrations", zap.Error(err))
		}
		termRepo = postgres.NewTermRepo(db)
	} else {
		logger.Info("No database configured, using file terminology only")
	}

	store, err := service.LoadStore(cfg.Terminology, nil, termRepo, logger)
	if err != nil {
		logger.Fatal("Failed to load terminology", zap.Error(err))
	}

	tr, err := translator.New(ctx, cfg.Translator, logger)
	if err != nil {
		logger.Fatal("Failed to create translator", zap.Error(err))
	}
	translationService := service.NewTranslationService(store, tr, service.OptionsFromConfig(cfg), logger)

	producer, err := queue.NewProducer(cfg.Queue.URL)
	if err != nil {
		logger.Fatal("Failed to create producer", zap.Error(err))
	}
	defer producer.Close()

	consumer, err := queue.NewConsumer(cfg.Queue.URL, cfg.Queue.CommandQueue, cfg.Queue.PrefetchCount)
	if err != nil {
		logger.Fatal("Failed to create consumer", zap.Error(err))
	}
	defer consumer.Close()

	deliveries, err := consumer.Consume()
	if err != nil {
		logger.Fatal("Failed to start consuming", zap.Error(err))
	}

	processor := queue.NewProcessor(translationService, producer, cfg.Queue.ResultQueue, logger)

	logger.Info("Worker started",
		zap.String("commands", cfg.Queue.CommandQueue),
		zap.String("results", cfg.Queue.ResultQueue),
		zap.String("provider", tr.Name()),
	)

	done := make(chan struct{})
	go func() {
		defer close(done)
		processor.Serve(ctx, deliveries)
	}()

	select {
	case <-ctx.Done():
		logger.Info("Shutdown signal received, stopping worker...")
	case <-done:
		logger.Warn("Consumer stopped, shutting down")
	}

	cancel()
	<-done

	logger.Info("Worker stopped gracefully")
}
