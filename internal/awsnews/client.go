package awsnews

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const (
	newsDirectoryID = "whats-new-v2"
	blogDirectoryID = "blog-posts"
	blogCategoryTag = "blog-posts#category#news"

	newsSortField = "item.additionalFields.postDateTime"
	blogSortField = "item.additionalFields.createdDate"
)

// Client fetches pages from the AWS content-search API. It implements
// domain.AnnouncementSource and domain.BlogSource.
type Client struct {
	baseURL    string
	pageSize   int
	httpClient *http.Client
	retry      RetryPolicy
	logger     *slog.Logger
	now        func() time.Time
}

// NewClient creates a content-search API client. pageSize is the number of
// items requested per page.
func NewClient(baseURL string, pageSize int, logger *slog.Logger) *Client {
	return &Client{
		baseURL:  baseURL,
		pageSize: pageSize,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		retry:  defaultRetryPolicy,
		logger: logger,
		now:    time.Now,
	}
}

// fetchNewsPage fetches one page of announcements for a (year, tag format)
// pair. page is 1-based; the wire protocol is 0-based.
func (c *Client) fetchNewsPage(ctx context.Context, year int, format tagFormat, page int) (*searchResponse, error) {
	q := url.Values{}
	q.Set("item.directoryId", newsDirectoryID)
	q.Set("sort_by", newsSortField)
	q.Set("sort_order", "desc")
	q.Set("item.locale", "en_US")
	q.Set("size", strconv.Itoa(c.pageSize))
	q.Set("page", strconv.Itoa(page-1))
	q.Set("tags.id", format.tagID(year))
	return c.search(ctx, q)
}

// fetchBlogPage fetches one page of blog posts tagged with the news
// category. Blog queries are not partitioned by year.
func (c *Client) fetchBlogPage(ctx context.Context, page int) (*searchResponse, error) {
	q := url.Values{}
	q.Set("item.directoryId", blogDirectoryID)
	q.Set("sort_by", blogSortField)
	q.Set("sort_order", "desc")
	q.Set("item.locale", "en_US")
	q.Set("size", strconv.Itoa(c.pageSize))
	q.Set("page", strconv.Itoa(page-1))
	q.Set("tags.id", blogCategoryTag)
	return c.search(ctx, q)
}

func (c *Client) search(ctx context.Context, query url.Values) (*searchResponse, error) {
	return doWithRetry(ctx, c.retry, func() (*searchResponse, error) {
		return c.searchOnce(ctx, query)
	})
}

func (c *Client) searchOnce(ctx context.Context, query url.Values) (*searchResponse, error) {
	requestURL := c.baseURL + "?" + query.Encode()
	c.logger.Debug("fetching search page", "url", requestURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("search request failed (status %d)", resp.StatusCode)
	}

	var result searchResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}
	return &result, nil
}
