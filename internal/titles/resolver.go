package titles

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	readability "github.com/go-shiori/go-readability"
)

const (
	// fetchTimeout bounds each title fetch. A slow blog page yields "no
	// title", not a stalled ingestion run.
	fetchTimeout = 5 * time.Second

	userAgent = "AWS-Newsroom-Bot/1.0"
)

// Strips a trailing "| AWS Machine Learning Blog"-style suffix.
var titleSuffixRe = regexp.MustCompile(`\s*\|.*$`)

// Resolver fetches human-readable titles for cross-reference links. It
// implements domain.TitleResolver.
type Resolver struct {
	httpClient *http.Client
	timeout    time.Duration
	logger     *slog.Logger
}

// NewResolver creates a title resolver.
func NewResolver(logger *slog.Logger) *Resolver {
	return &Resolver{
		httpClient: &http.Client{Timeout: fetchTimeout},
		timeout:    fetchTimeout,
		logger:     logger,
	}
}

// ResolveTitle fetches the link target and extracts its page title. Any
// failure (timeout, non-success status, unparseable page) returns "" so
// the caller can skip the link; resolution never fails the ingestion
// batch.
func (r *Resolver) ResolveTitle(ctx context.Context, pageURL string) string {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		r.logger.Debug("invalid link url", "url", pageURL, "error", err)
		return ""
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		r.logger.Debug("title fetch failed", "url", pageURL, "error", err)
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		r.logger.Debug("title fetch failed", "url", pageURL, "status", resp.StatusCode)
		return ""
	}

	parsed, err := url.Parse(pageURL)
	if err != nil {
		return ""
	}
	article, err := readability.FromReader(resp.Body, parsed)
	if err != nil {
		r.logger.Debug("title parse failed", "url", pageURL, "error", err)
		return ""
	}

	return strings.TrimSpace(titleSuffixRe.ReplaceAllString(article.Title, ""))
}
