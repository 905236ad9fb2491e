package domain

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"
)

// linkDomain is stored alongside cross-reference links; every extracted
// link points at the AWS content platform.
const linkDomain = "aws.amazon.com"

// IngestResult is the invocation response reported back to the scheduler.
type IngestResult struct {
	StatusCode    int       `json:"statusCode"`
	Source        string    `json:"source"`
	Inserted      int       `json:"inserted"`
	Skipped       int       `json:"skipped"`
	Failed        int       `json:"failed"`
	LinksInserted int       `json:"linksInserted,omitempty"`
	DateRange     DateRange `json:"dateRange"`
}

// DateRange echoes the resolved window in the invocation response.
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// IngestionService owns the ingestion business logic: window resolution,
// upstream fetching, and idempotent storage with link enrichment.
type IngestionService struct {
	news     AnnouncementSource
	blogs    BlogSource
	articles ArticleRepository
	links    LinkRepository
	titles   TitleResolver
	logger   *slog.Logger
	now      func() time.Time
}

// NewIngestionService creates an IngestionService.
func NewIngestionService(
	news AnnouncementSource,
	blogs BlogSource,
	articles ArticleRepository,
	links LinkRepository,
	titles TitleResolver,
	logger *slog.Logger,
) *IngestionService {
	return &IngestionService{
		news:     news,
		blogs:    blogs,
		articles: articles,
		links:    links,
		titles:   titles,
		logger:   logger,
		now:      time.Now,
	}
}

// IngestNews fetches "What's New" announcements for the requested window and
// stores them. Individual article and link failures are logged and counted;
// only a failure of the fetch itself aborts the run.
func (s *IngestionService) IngestNews(ctx context.Context, req WindowRequest) (*IngestResult, error) {
	window, err := ResolveWindow(req, s.now())
	if err != nil {
		return nil, err
	}

	s.logger.Info("starting news ingestion",
		"start", window.Start.Format(time.RFC3339),
		"end", window.End.Format(time.RFC3339),
	)

	announcements, diagnostics, err := s.news.FetchAnnouncements(ctx, window)
	if err != nil {
		return nil, fmt.Errorf("fetch announcements: %w", err)
	}
	s.logDiagnostics(diagnostics)

	result := newResult(SourceNews, window)
	for i := range announcements {
		s.storeAnnouncement(ctx, &announcements[i], result)
	}

	s.logger.Info("news ingestion complete",
		"total", len(announcements),
		"inserted", result.Inserted,
		"skipped", result.Skipped,
		"failed", result.Failed,
		"linksInserted", result.LinksInserted,
	)
	return result, nil
}

// IngestBlog fetches AWS News Blog posts for the requested window and stores
// them. Blog posts carry no cross-reference links.
func (s *IngestionService) IngestBlog(ctx context.Context, req WindowRequest) (*IngestResult, error) {
	window, err := ResolveWindow(req, s.now())
	if err != nil {
		return nil, err
	}

	s.logger.Info("starting blog ingestion",
		"start", window.Start.Format(time.RFC3339),
		"end", window.End.Format(time.RFC3339),
	)

	posts, err := s.blogs.FetchBlogPosts(ctx, window)
	if err != nil {
		return nil, fmt.Errorf("fetch blog posts: %w", err)
	}

	result := newResult(SourceBlog, window)
	for i := range posts {
		post := &posts[i]
		article := &Article{
			ID:          DeriveArticleID(post.URL),
			SourceID:    post.SourceID,
			Source:      SourceBlog,
			Title:       post.Title,
			URL:         post.URL,
			Description: post.Excerpt,
			Author:      post.Author,
			Category:    post.Category,
			PublishedAt: post.PublishedAt,
		}

		inserted, err := s.articles.CreateArticle(ctx, article)
		if err != nil {
			s.logger.Error("failed to store blog post", "articleId", article.ID, "url", article.URL, "error", err)
			result.Failed++
			continue
		}
		if inserted {
			result.Inserted++
		} else {
			result.Skipped++
		}
	}

	s.logger.Info("blog ingestion complete",
		"total", len(posts),
		"inserted", result.Inserted,
		"skipped", result.Skipped,
		"failed", result.Failed,
	)
	return result, nil
}

// StartScheduledIngest runs both ingestion streams with the default window
// on a fixed interval. It runs once immediately and blocks until ctx is
// cancelled.
func (s *IngestionService) StartScheduledIngest(ctx context.Context, interval time.Duration) {
	s.runScheduled(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.runScheduled(ctx)
		}
	}
}

func (s *IngestionService) runScheduled(ctx context.Context) {
	if _, err := s.IngestNews(ctx, WindowRequest{}); err != nil {
		s.logger.Error("scheduled news ingestion failed", "error", err)
	}
	if _, err := s.IngestBlog(ctx, WindowRequest{}); err != nil {
		s.logger.Error("scheduled blog ingestion failed", "error", err)
	}
}

// storeAnnouncement writes one announcement and, when it is new, its
// cross-reference links. All failures are absorbed into the result counts.
func (s *IngestionService) storeAnnouncement(ctx context.Context, a *Announcement, result *IngestResult) {
	article := &Article{
		ID:          DeriveArticleID(a.SourceID),
		SourceID:    a.SourceID,
		Source:      SourceNews,
		Title:       a.Headline,
		URL:         a.URL,
		Description: a.Description,
		RawHTML:     a.RawBody,
		PublishedAt: a.PublishedAt,
	}

	inserted, err := s.articles.CreateArticle(ctx, article)
	if err != nil {
		s.logger.Error("failed to store article", "articleId", article.ID, "error", err)
		result.Failed++
		return
	}
	if !inserted {
		result.Skipped++
		return
	}
	result.Inserted++

	// Title fetches are slow; only enrich links for articles we just
	// inserted, never for re-ingested ones.
	for _, blogURL := range a.BlogURLs {
		title := s.titles.ResolveTitle(ctx, blogURL)
		if title == "" {
			continue
		}

		link := &ArticleLink{
			ID:        DeriveLinkID(article.ID, blogURL),
			ArticleID: article.ID,
			URL:       blogURL,
			Title:     title,
			Domain:    linkDomain,
		}
		if _, err := s.links.CreateLink(ctx, link); err != nil {
			s.logger.Warn("failed to store article link", "articleId", article.ID, "url", blogURL, "error", err)
			continue
		}
		result.LinksInserted++
	}
}

func (s *IngestionService) logDiagnostics(d *FetchDiagnostics) {
	if d == nil {
		return
	}
	for _, y := range d.Years {
		s.logger.Info("fetch diagnostics",
			"year", y.Year,
			"tagFormatResults", y.TagFormatResults,
			"totalFetched", y.TotalFetched,
			"duplicatesRemoved", y.DuplicatesRemoved,
			"mismatchedYearTags", len(y.MismatchedYearTags),
		)
		for _, m := range y.MismatchedYearTags {
			s.logger.Debug("item tagged with wrong year",
				"sourceId", m.SourceID,
				"headline", m.Headline,
				"publishedAt", m.PublishedAt.Format(time.RFC3339),
				"queriedYear", m.QueriedYear,
				"taggedYears", m.TaggedYears,
			)
		}
	}
}

func newResult(source string, window FetchWindow) *IngestResult {
	return &IngestResult{
		StatusCode: http.StatusOK,
		Source:     source,
		DateRange: DateRange{
			Start: window.Start.Format(time.RFC3339),
			End:   window.End.Format(time.RFC3339),
		},
	}
}
