package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/blackmichael/aws-newsroom/internal/awsnews"
	"github.com/blackmichael/aws-newsroom/internal/cohere"
	"github.com/blackmichael/aws-newsroom/internal/config"
	"github.com/blackmichael/aws-newsroom/internal/domain"
	"github.com/blackmichael/aws-newsroom/internal/httpserver"
	"github.com/blackmichael/aws-newsroom/internal/postgres"
	"github.com/blackmichael/aws-newsroom/internal/titles"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load environment variables from .env if present (non-fatal if missing)
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// Set up repository (implements the article, link and summary ports)
	repo, err := postgres.NewRepository(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("create repository: %w", err)
	}
	defer repo.Close()
	logger.Info("connected to database")

	client := awsnews.NewClient(cfg.NewsAPIBaseURL, cfg.PageSize, logger)
	resolver := titles.NewResolver(logger)
	ingestion := domain.NewIngestionService(client, client, repo, repo, resolver, logger)

	var summaries *domain.SummaryService
	if cfg.CohereAPIKey != "" {
		summarizer := cohere.NewSummarizer(cfg.CohereAPIKey, cfg.CohereModel)
		summaries = domain.NewSummaryService(repo, summarizer, logger)
	} else {
		logger.Warn("COHERE_API_KEY not set, summary generation disabled")
	}

	// Set up graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	// Optional in-process schedule loop; normally an external scheduler
	// drives the /ingest endpoints instead.
	if cfg.IngestInterval > 0 {
		logger.Info("starting scheduled ingestion", "interval", cfg.IngestInterval)
		go ingestion.StartScheduledIngest(ctx, cfg.IngestInterval)
	}

	server := httpserver.NewServer(cfg, ingestion, summaries, logger)
	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server exited with error", "error", err)
		}
	}()

	logger.Info("server started", "port", cfg.Port)

	// Wait for shutdown signal
	sig := <-sigCh
	logger.Info("received signal, shutting down", "signal", sig)
	cancel()

	if err := server.Shutdown(context.Background()); err != nil {
		logger.Error("error shutting down http server", "error", err)
	}

	return nil
}
