package awsnews

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/blackmichael/aws-newsroom/internal/domain"
)

// newsPager and blogPager abstract the page fetch so the pagination logic
// can be exercised without HTTP.
type newsPager interface {
	fetchNewsPage(ctx context.Context, year int, format tagFormat, page int) (*searchResponse, error)
}

type blogPager interface {
	fetchBlogPage(ctx context.Context, page int) (*searchResponse, error)
}

// FetchAnnouncements fetches every announcement in the window, walking year
// partitions most-recent-first and paginating each until the window's start
// bound is proven passed. Implements domain.AnnouncementSource.
func (c *Client) FetchAnnouncements(ctx context.Context, window domain.FetchWindow) ([]domain.Announcement, *domain.FetchDiagnostics, error) {
	return fetchAnnouncements(ctx, c, window, c.now, c.logger)
}

func fetchAnnouncements(ctx context.Context, pager newsPager, window domain.FetchWindow, now func() time.Time, logger *slog.Logger) ([]domain.Announcement, *domain.FetchDiagnostics, error) {
	diagnostics := &domain.FetchDiagnostics{}
	var announcements []domain.Announcement

	for _, year := range window.Years(now()) {
		yearDiag, err := fetchYear(ctx, pager, year, window, &announcements, logger)
		if err != nil {
			return nil, nil, err
		}
		diagnostics.Years = append(diagnostics.Years, *yearDiag)
	}

	return announcements, diagnostics, nil
}

// fetchYear paginates one year partition. Each page fans out across every
// known tag format concurrently; a failed format contributes zero items for
// that page and never aborts its sibling. Pagination stops when a page comes
// back empty, when no item on the page is recent enough for the window
// (results are sorted by publish date descending, so a whole page of
// too-old items proves later pages are only older), or when the reported
// total has been fetched.
func fetchYear(ctx context.Context, pager newsPager, year int, window domain.FetchWindow, out *[]domain.Announcement, logger *slog.Logger) (*domain.YearDiagnostics, error) {
	diag := &domain.YearDiagnostics{
		Year:             year,
		TagFormatResults: make(map[string]int, len(tagFormats)),
	}
	for _, f := range tagFormats {
		diag.TagFormatResults[f.name] = 0
	}

	seen := make(map[string]struct{})
	totalHits := make(map[string]int, len(tagFormats))
	fetched := 0

	for page := 1; ; page++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		results := fetchFormats(ctx, pager, year, page)

		// Merge in tag-format table order so "first occurrence wins" stays
		// deterministic regardless of goroutine completion order.
		var merged []rawItem
		for i, f := range tagFormats {
			if results[i].err != nil {
				logger.Warn("tag format fetch failed",
					"year", year, "format", f.name, "page", page, "error", results[i].err)
				continue
			}
			resp := results[i].resp
			diag.TagFormatResults[f.name] += len(resp.Items)
			totalHits[f.name] = resp.Metadata.TotalHits
			merged = append(merged, resp.Items...)
		}

		fetched += len(merged)
		diag.TotalFetched += len(merged)
		if len(merged) == 0 {
			break
		}

		unique := dedupeAgainst(merged, seen)
		diag.DuplicatesRemoved += len(merged) - len(unique)

		anyInRange := false
		for _, item := range unique {
			a, ok := normalizeAnnouncement(item)
			if !ok {
				continue
			}

			if !a.PublishedAt.IsZero() && a.PublishedAt.Year() != year {
				diag.MismatchedYearTags = append(diag.MismatchedYearTags, domain.MismatchedItem{
					SourceID:    a.SourceID,
					Headline:    a.Headline,
					PublishedAt: a.PublishedAt,
					QueriedYear: year,
					TaggedYears: taggedYears(item.Tags),
				})
			}

			if a.PublishedAt.Before(window.Start) {
				// Too old for the window, but a single stray item does not
				// stop pagination: the descending sort is a tendency, not a
				// guarantee, under loose year tagging.
				continue
			}
			anyInRange = true

			if a.PublishedAt.After(window.End) {
				// Ahead of the window's edge; excluded from output but the
				// page is clearly not exhausted yet.
				continue
			}
			*out = append(*out, a)
		}

		if !anyInRange {
			break
		}

		total := 0
		for _, t := range totalHits {
			total += t
		}
		if total > 0 && fetched >= total {
			break
		}
	}

	return diag, nil
}

type formatResult struct {
	resp *searchResponse
	err  error
}

// fetchFormats fetches the same page under every tag format concurrently.
// Results are slotted by format index so the caller merges in table order.
func fetchFormats(ctx context.Context, pager newsPager, year, page int) []formatResult {
	results := make([]formatResult, len(tagFormats))

	var wg sync.WaitGroup
	for i, f := range tagFormats {
		wg.Add(1)
		go func(i int, f tagFormat) {
			defer wg.Done()
			resp, err := pager.fetchNewsPage(ctx, year, f, page)
			results[i] = formatResult{resp: resp, err: err}
		}(i, f)
	}
	wg.Wait()

	return results
}

// FetchBlogPosts fetches every AWS News Blog post in the window. The blog
// stream is a single query (no year partitions, no tag-format fan-out) with
// the same pagination stop rules. Implements domain.BlogSource.
func (c *Client) FetchBlogPosts(ctx context.Context, window domain.FetchWindow) ([]domain.BlogPost, error) {
	return fetchBlogPosts(ctx, c, window, c.logger)
}

func fetchBlogPosts(ctx context.Context, pager blogPager, window domain.FetchWindow, logger *slog.Logger) ([]domain.BlogPost, error) {
	var posts []domain.BlogPost
	fetched := 0
	filtered := 0

	for page := 1; ; page++ {
		resp, err := pager.fetchBlogPage(ctx, page)
		if err != nil {
			return nil, fmt.Errorf("fetch blog page %d: %w", page, err)
		}

		fetched += len(resp.Items)
		logger.Debug("fetched blog page",
			"page", page, "items", len(resp.Items), "fetched", fetched, "totalHits", resp.Metadata.TotalHits)
		if len(resp.Items) == 0 {
			break
		}

		anyInRange := false
		for _, item := range resp.Items {
			post, ok := normalizeBlogPost(item)
			if !ok {
				filtered++
				continue
			}

			if post.PublishedAt.Before(window.Start) {
				continue
			}
			anyInRange = true

			if post.PublishedAt.After(window.End) {
				continue
			}
			posts = append(posts, post)
		}

		if !anyInRange {
			break
		}
		if resp.Metadata.TotalHits > 0 && fetched >= resp.Metadata.TotalHits {
			break
		}
	}

	logger.Info("blog fetch complete", "inWindow", len(posts), "filteredOut", filtered)
	return posts, nil
}
