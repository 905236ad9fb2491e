package domain

import "time"

// Sources identify which ingestion stream produced an article.
const (
	SourceNews = "aws-news"
	SourceBlog = "aws-blog"
)

// Announcement is a normalized "What's New" item. It is produced by the
// upstream normalizer and is the only shape the storage writer sees for the
// news stream; the raw wire item never leaves the client package.
type Announcement struct {
	// SourceID is the upstream-assigned item id, stable across tag formats.
	SourceID string

	// Headline is the announcement title.
	Headline string

	// URL is the canonical announcement URL.
	URL string

	// Description is the HTML-stripped body text. Empty means the item had
	// no body; it is stored as NULL, never as an empty string.
	Description string

	// RawBody is the original HTML body, preserved separately.
	RawBody string

	// PublishedAt is the resolved publish date: the explicit publish
	// timestamp when present, otherwise the upstream creation timestamp.
	PublishedAt time.Time

	// BlogURLs are cross-reference links to AWS blog posts found in the
	// body, deduplicated, in document order.
	BlogURLs []string
}

// BlogPost is a normalized AWS News Blog item. Blog posts carry only an
// excerpt, no full body.
type BlogPost struct {
	SourceID    string
	Title       string
	URL         string
	Excerpt     string
	Author      string
	Category    string
	PublishedAt time.Time
}

// Article is the persisted row shape shared by both streams.
type Article struct {
	// ID is the deterministic derived id used as the storage primary key.
	ID string

	// SourceID is the upstream item id (empty for blog posts, whose
	// identity is their URL).
	SourceID string

	// Source is one of SourceNews or SourceBlog.
	Source string

	Title       string
	URL         string
	Description string
	RawHTML     string
	Author      string
	Category    string
	PublishedAt time.Time
}

// ArticleLink is a cross-reference link extracted from an announcement body
// and enriched with the target page's title.
type ArticleLink struct {
	ID        string
	ArticleID string
	URL       string
	Title     string
	Domain    string
}

// SummaryCandidate is an article awaiting AI summary enrichment.
type SummaryCandidate struct {
	ArticleID   string
	Title       string
	Description string
}
