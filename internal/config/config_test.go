package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "DATABASE_URL", "NEWS_API_BASE_URL", "NEWS_PAGE_SIZE",
		"INGEST_INTERVAL", "COHERE_API_KEY", "COHERE_MODEL",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, DefaultAPIBaseURL, cfg.NewsAPIBaseURL)
	assert.Equal(t, DefaultPageSize, cfg.PageSize)
	assert.Equal(t, time.Duration(0), cfg.IngestInterval)
	assert.NotEmpty(t, cfg.DatabaseURL)
	assert.Equal(t, "command-r-08-2024", cfg.CohereModel)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("DATABASE_URL", "postgres://example/db")
	t.Setenv("NEWS_API_BASE_URL", "https://example.com/search")
	t.Setenv("NEWS_PAGE_SIZE", "25")
	t.Setenv("INGEST_INTERVAL", "6h")
	t.Setenv("COHERE_API_KEY", "key")
	t.Setenv("COHERE_MODEL", "command-light")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "postgres://example/db", cfg.DatabaseURL)
	assert.Equal(t, "https://example.com/search", cfg.NewsAPIBaseURL)
	assert.Equal(t, 25, cfg.PageSize)
	assert.Equal(t, 6*time.Hour, cfg.IngestInterval)
	assert.Equal(t, "key", cfg.CohereAPIKey)
	assert.Equal(t, "command-light", cfg.CohereModel)
}

func TestLoad_InvalidValuesRejected(t *testing.T) {
	t.Setenv("PORT", "not-a-port")
	_, err := Load()
	assert.ErrorContains(t, err, "invalid PORT")
}

func TestLoad_InvalidPageSizeRejected(t *testing.T) {
	t.Setenv("NEWS_PAGE_SIZE", "0")
	_, err := Load()
	assert.ErrorContains(t, err, "invalid NEWS_PAGE_SIZE")
}

func TestLoad_InvalidIntervalRejected(t *testing.T) {
	t.Setenv("INGEST_INTERVAL", "soon")
	_, err := Load()
	assert.ErrorContains(t, err, "invalid INGEST_INTERVAL")
}
