package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"vibeshelf/internal/bot"
	"vibeshelf/internal/classifier"
	"vibeshelf/internal/config"
	"vibeshelf/internal/domain"
	"vibeshelf/internal/fetcher"
	"vibeshelf/internal/intake"
	"vibeshelf/internal/storage"
)

func main() {
	cfg, err := config.LoadConfig("./configs")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	log.WithFields(logrus.Fields{
		"badgerdb_path": cfg.BadgerDBPath,
		"gemini_model":  cfg.GeminiModel,
	}).Info("Configuration loaded")

	repo, err := storage.NewBadgerRepository(cfg.BadgerDBPath, log)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := repo.Close(); err != nil {
			log.WithError(err).Error("Error closing database")
		}
	}()

	taxonomy := domain.DefaultTaxonomy()
	pageFetcher := fetcher.NewRodFetcher(log)
	gemini := classifier.NewGeminiClient(cfg, taxonomy, log)
	pipeline := intake.NewPipeline(pageFetcher, gemini, taxonomy, log)

	botHandler, err := bot.NewHandler(cfg, repo, pipeline, log)
	if err != nil {
		log.Fatalf("Failed to initialize Telegram bot handler: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go botHandler.Start(ctx)
	log.Info("vibeshelf is running. Press Ctrl+C to exit.")

	<-ctx.Done()
	log.Info("Shutdown signal received, exiting")
}
