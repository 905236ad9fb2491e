package domain

import (
	"context"
	"log/slog"
	"net/http"
)

const (
	// DefaultSummaryBatchSize bounds one enrichment invocation.
	DefaultSummaryBatchSize = 100

	// maxSummaryInputChars caps the content sent to the summarizer, roughly
	// a thousand tokens.
	maxSummaryInputChars = 4000
)

// SummaryResult is the invocation response for a summary enrichment run.
type SummaryResult struct {
	StatusCode int `json:"statusCode"`
	Processed  int `json:"processed"`
	Errors     int `json:"errors"`
	Remaining  int `json:"remaining"`
}

// SummaryService enriches stored announcements with AI-generated summaries.
type SummaryService struct {
	repo       SummaryRepository
	summarizer Summarizer
	logger     *slog.Logger
}

// NewSummaryService creates a SummaryService.
func NewSummaryService(repo SummaryRepository, summarizer Summarizer, logger *slog.Logger) *SummaryService {
	return &SummaryService{repo: repo, summarizer: summarizer, logger: logger}
}

// GenerateSummaries summarizes up to batchSize announcements that have no
// AI summary yet. A failure for one article is counted and the batch
// continues.
func (s *SummaryService) GenerateSummaries(ctx context.Context, batchSize int) (*SummaryResult, error) {
	if batchSize <= 0 {
		batchSize = DefaultSummaryBatchSize
	}

	candidates, err := s.repo.ListNeedingSummary(ctx, SourceNews, batchSize)
	if err != nil {
		return nil, err
	}
	s.logger.Info("articles needing summaries", "count", len(candidates))

	result := &SummaryResult{StatusCode: http.StatusOK}
	for _, c := range candidates {
		summary, err := s.summarizer.Summarize(ctx, c.Title, truncate(c.Description, maxSummaryInputChars))
		if err != nil {
			s.logger.Error("failed to generate summary", "articleId", c.ArticleID, "error", err)
			result.Errors++
			continue
		}

		if err := s.repo.SetSummary(ctx, c.ArticleID, summary); err != nil {
			s.logger.Error("failed to store summary", "articleId", c.ArticleID, "error", err)
			result.Errors++
			continue
		}
		result.Processed++
	}

	result.Remaining = len(candidates) - result.Processed
	s.logger.Info("summary generation complete", "processed", result.Processed, "errors", result.Errors)
	return result, nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
