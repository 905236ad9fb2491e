package cohere

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	cohereapi "github.com/cohere-ai/cohere-go/v2"
	cohereclient "github.com/cohere-ai/cohere-go/v2/client"
)

const requestTimeout = 60 * time.Second

// Generation settings: summaries should be short and factual.
const (
	maxSummaryTokens = 150
	temperature      = 0.3
)

const promptTemplate = `Summarize the following AWS announcement in 2-3 plain sentences for a technical audience. State what the service or feature is and why it matters. Do not use marketing language.

Title: %s

Content: %s`

// Summarizer implements domain.Summarizer over the Cohere chat API.
type Summarizer struct {
	client *cohereclient.Client
	model  string
}

// NewSummarizer creates a Cohere-backed summarizer.
func NewSummarizer(apiKey, model string) *Summarizer {
	httpClient := &http.Client{
		Timeout: requestTimeout,
	}
	client := cohereclient.NewClient(
		cohereclient.WithToken(apiKey),
		cohereclient.WithHTTPClient(httpClient),
	)
	return &Summarizer{client: client, model: model}
}

// Summarize produces a short plain-text summary of an article. An empty
// model response is an error; the caller counts it against the article and
// moves on.
func (s *Summarizer) Summarize(ctx context.Context, title, content string) (string, error) {
	model := s.model
	maxTokens := maxSummaryTokens
	temp := temperature

	resp, err := s.client.Chat(ctx, &cohereapi.ChatRequest{
		Message:     fmt.Sprintf(promptTemplate, title, content),
		Model:       &model,
		MaxTokens:   &maxTokens,
		Temperature: &temp,
	})
	if err != nil {
		return "", fmt.Errorf("cohere chat: %w", err)
	}

	summary := strings.TrimSpace(resp.Text)
	if summary == "" {
		return "", fmt.Errorf("empty summary from model")
	}
	return summary, nil
}
