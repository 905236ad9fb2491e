package awsnews

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/blackmichael/aws-newsroom/internal/domain"
)

const (
	// blogURLMarker identifies cross-reference links to the AWS blog
	// platform inside announcement bodies.
	blogURLMarker = "aws.amazon.com/blogs/"

	// newsBlogPathPrefix restricts blog ingestion to the AWS News Blog;
	// the category tag alone also matches posts from other AWS blogs.
	newsBlogPathPrefix = "/blogs/aws/"

	blogCategoryTagPrefix = "blog-posts#category#"
)

var (
	htmlTagRe = regexp.MustCompile(`<[^>]*>`)
	anchorRe  = regexp.MustCompile(`(?i)<a[^>]+href=["']([^"']+)["']`)
)

// StripHTML removes HTML tags and trims surrounding whitespace. An empty
// result means "no text"; callers treat it as absent, never as an empty
// description.
func StripHTML(html string) string {
	return strings.TrimSpace(htmlTagRe.ReplaceAllString(html, ""))
}

// ExtractBlogURLs scans HTML for anchor hrefs pointing at the AWS blog
// platform, deduplicated, in document order. Links to other domains or to
// non-blog paths on aws.amazon.com are ignored.
func ExtractBlogURLs(html string) []string {
	if html == "" {
		return nil
	}

	var urls []string
	seen := make(map[string]struct{})
	for _, match := range anchorRe.FindAllStringSubmatch(html, -1) {
		u := match[1]
		if !strings.Contains(u, blogURLMarker) {
			continue
		}
		if _, ok := seen[u]; ok {
			continue
		}
		seen[u] = struct{}{}
		urls = append(urls, u)
	}
	return urls
}

// normalizeAnnouncement maps a raw item to an Announcement. Items without a
// headline URL carry nothing we can store or link to; they report ok=false
// and are skipped silently.
func normalizeAnnouncement(item rawItem) (domain.Announcement, bool) {
	fields := item.Item.AdditionalFields
	if fields.HeadlineURL == "" {
		return domain.Announcement{}, false
	}

	return domain.Announcement{
		SourceID:    item.Item.ID,
		Headline:    fields.Headline,
		URL:         fields.HeadlineURL,
		Description: StripHTML(fields.PostBody),
		RawBody:     fields.PostBody,
		PublishedAt: publishedDate(fields.PostDateTime, item.Item.DateCreated),
		BlogURLs:    ExtractBlogURLs(fields.PostBody),
	}, true
}

// normalizeBlogPost maps a raw item to a BlogPost. Posts without a link or
// outside the AWS News Blog path report ok=false.
func normalizeBlogPost(item rawItem) (domain.BlogPost, bool) {
	fields := item.Item.AdditionalFields
	if fields.Link == "" || !strings.Contains(fields.Link, newsBlogPathPrefix) {
		return domain.BlogPost{}, false
	}

	category := ""
	for _, t := range item.Tags {
		if strings.HasPrefix(t.ID, blogCategoryTagPrefix) {
			category = t.Name
			break
		}
	}

	return domain.BlogPost{
		SourceID:    item.Item.ID,
		Title:       fields.Title,
		URL:         fields.Link,
		Excerpt:     StripHTML(fields.PostExcerpt),
		Author:      item.Item.Author,
		Category:    category,
		PublishedAt: publishedDate(fields.CreatedDate, item.Item.DateCreated),
	}, true
}

// publishedDate resolves an item's publish date: the explicit publish field
// when parseable, otherwise the upstream creation timestamp. An item with
// neither resolves to the zero time, which every window excludes.
func publishedDate(explicit, created string) time.Time {
	if t, err := parseUpstreamTime(explicit); err == nil {
		return t
	}
	if t, err := parseUpstreamTime(created); err == nil {
		return t
	}
	return time.Time{}
}

func parseUpstreamTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}
