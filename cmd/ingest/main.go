// Command ingest runs one ingestion invocation and prints the result as
// JSON. It exists for manual runs and for external schedulers that prefer a
// process over an HTTP call.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/blackmichael/aws-newsroom/internal/awsnews"
	"github.com/blackmichael/aws-newsroom/internal/cohere"
	"github.com/blackmichael/aws-newsroom/internal/config"
	"github.com/blackmichael/aws-newsroom/internal/domain"
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
	_ = godotenv.Load()

	var (
		source    string
		startDate string
		endDate   string
		daysBack  int
		batchSize int
	)

	flag.StringVar(&source, "source", "news", "What to ingest: news, blog, or summaries")
	flag.StringVar(&startDate, "start", "", "Window start (RFC3339); defaults to -days back from now")
	flag.StringVar(&endDate, "end", "", "Window end (RFC3339); requires -start")
	flag.IntVar(&daysBack, "days", 0, "Days back from now when -start is not given (default 7)")
	flag.IntVar(&batchSize, "batch", 0, "Summary batch size (default 100)")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	repo, err := postgres.NewRepository(cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("create repository: %w", err)
	}
	defer repo.Close()

	client := awsnews.NewClient(cfg.NewsAPIBaseURL, cfg.PageSize, logger)
	resolver := titles.NewResolver(logger)
	ingestion := domain.NewIngestionService(client, client, repo, repo, resolver, logger)

	ctx := context.Background()
	req := domain.WindowRequest{StartDate: startDate, EndDate: endDate, DaysBack: daysBack}

	var result any
	switch source {
	case "news":
		result, err = ingestion.IngestNews(ctx, req)
	case "blog":
		result, err = ingestion.IngestBlog(ctx, req)
	case "summaries":
		if cfg.CohereAPIKey == "" {
			return fmt.Errorf("COHERE_API_KEY is required for -source summaries")
		}
		summarizer := cohere.NewSummarizer(cfg.CohereAPIKey, cfg.CohereModel)
		summaries := domain.NewSummaryService(repo, summarizer, logger)
		result, err = summaries.GenerateSummaries(ctx, batchSize)
	default:
		return fmt.Errorf("unknown source %q: want news, blog, or summaries", source)
	}
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	fmt.Println(string(out))

	return nil
}
