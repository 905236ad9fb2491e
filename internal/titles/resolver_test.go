package titles

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func blogPage(title string) string {
	return `<!DOCTYPE html><html><head><title>` + title + `</title></head>
<body><article><h1>` + title + `</h1>
<p>Amazon Web Services announced a new capability today. This post walks
through the launch, what it means for existing workloads, and how to get
started with the new feature in your own account.</p>
<p>The feature is available in all commercial regions at no additional
charge. See the documentation for configuration details and limits.</p>
</article></body></html>`
}

func TestResolveTitle(t *testing.T) {
	var gotUserAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserAgent = r.Header.Get("User-Agent")
		_, _ = io.WriteString(w, blogPage("Great Post | AWS News Blog"))
	}))
	defer server.Close()

	resolver := NewResolver(testLogger())
	assert.Equal(t, "Great Post", resolver.ResolveTitle(context.Background(), server.URL))
	assert.Equal(t, "AWS-Newsroom-Bot/1.0", gotUserAgent)
}

func TestResolveTitle_NoSuffix(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, blogPage("Plain Title"))
	}))
	defer server.Close()

	resolver := NewResolver(testLogger())
	assert.Equal(t, "Plain Title", resolver.ResolveTitle(context.Background(), server.URL))
}

func TestResolveTitle_NotFoundReturnsEmpty(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	resolver := NewResolver(testLogger())
	assert.Equal(t, "", resolver.ResolveTitle(context.Background(), server.URL))
}

func TestResolveTitle_UnreachableReturnsEmpty(t *testing.T) {
	resolver := NewResolver(testLogger())
	assert.Equal(t, "", resolver.ResolveTitle(context.Background(), "http://127.0.0.1:1/nope"))
}
