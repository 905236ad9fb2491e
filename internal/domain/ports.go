package domain

import "context"

// ArticleRepository defines persistence operations for ingested articles.
type ArticleRepository interface {
	// CreateArticle inserts the article if no row with its id exists.
	// Returns false when the row was already present. A concurrent insert
	// of the same id is reported as "already present", never as an error.
	CreateArticle(ctx context.Context, article *Article) (bool, error)
}

// LinkRepository defines persistence operations for cross-reference links.
type LinkRepository interface {
	// CreateLink inserts the link if no row with its id exists. Returns
	// false on a duplicate.
	CreateLink(ctx context.Context, link *ArticleLink) (bool, error)
}

// SummaryRepository defines the queries backing summary enrichment.
type SummaryRepository interface {
	// ListNeedingSummary returns up to limit articles from the given source
	// that have a usable description and no AI summary yet, newest first.
	ListNeedingSummary(ctx context.Context, source string, limit int) ([]SummaryCandidate, error)

	// SetSummary stores the generated summary for an article.
	SetSummary(ctx context.Context, articleID, summary string) error
}

// AnnouncementSource fetches normalized "What's New" announcements for a
// window, along with diagnostics about upstream tagging consistency.
type AnnouncementSource interface {
	FetchAnnouncements(ctx context.Context, window FetchWindow) ([]Announcement, *FetchDiagnostics, error)
}

// BlogSource fetches normalized AWS News Blog posts for a window.
type BlogSource interface {
	FetchBlogPosts(ctx context.Context, window FetchWindow) ([]BlogPost, error)
}

// TitleResolver fetches a human-readable title for a cross-reference link.
// Implementations are bounded by their own timeout and return "" when no
// title could be resolved; they never fail the caller.
type TitleResolver interface {
	ResolveTitle(ctx context.Context, url string) string
}

// Summarizer produces a short plain-text summary for an article. It is the
// boundary to the AI collaborator; failures are per-article.
type Summarizer interface {
	Summarize(ctx context.Context, title, content string) (string, error)
}
