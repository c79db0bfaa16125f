package ai

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/JayDad/energy-insight-ui/internal/logger"
	"github.com/JayDad/energy-insight-ui/internal/models"
	"github.com/rs/zerolog"
	openai "github.com/sashabaranov/go-openai"
)

const (
	// MaxSummarizeInput caps how many search results go into one prompt.
	MaxSummarizeInput = 10
	// SummaryItems is how many summarized items the prompt asks for.
	SummaryItems = 6

	summarizeMaxTokens   = 2500
	summarizeTemperature = 0.4
)

// SummarizeClient turns raw search hits into bilingual summaries through the
// OpenAI compatible Perplexity chat completions endpoint.
type SummarizeClient struct {
	client *openai.Client
	model  string
	log    zerolog.Logger
}

func NewSummarizeClient(apiKey, baseURL, model string, timeout time.Duration) *SummarizeClient {
	cc := openai.DefaultConfig(apiKey)
	cc.BaseURL = baseURL
	cc.HTTPClient = &http.Client{Timeout: timeout}
	return &SummarizeClient{
		client: openai.NewClientWithConfig(cc),
		model:  model,
		log:    logger.Component("summarize"),
	}
}

// Summarize condenses the first results into at most a handful of items.
// It returns an empty slice without calling upstream when there is no input.
func (s *SummarizeClient) Summarize(ctx context.Context, results []models.SearchResult, sectorLabel string) ([]models.SummarizedItem, error) {
	if len(results) == 0 {
		s.log.Warn().Msg("No search results to summarize")
		return []models.SummarizedItem{}, nil
	}
	if len(results) > MaxSummarizeInput {
		results = results[:MaxSummarizeInput]
	}

	s.log.Info().
		Int("inputs", len(results)).
		Str("model", s.model).
		Msg("Generating summaries")

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       s.model,
		MaxTokens:   summarizeMaxTokens,
		Temperature: summarizeTemperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: summarizeSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: BuildSummarizePrompt(results, sectorLabel, SummaryItems)},
		},
	})
	if err != nil {
		s.log.Error().Err(err).Msg("Chat API error")
		return nil, toSummarizeError(err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		s.log.Error().Msg("No content in chat response")
		return nil, &SummarizeAPIError{Err: errNoContent}
	}

	content := resp.Choices[0].Message.Content
	items, err := parseSummaries(content)
	if err != nil {
		s.log.Error().
			Err(err).
			Str("content", preview(content)).
			Msg("Failed to parse chat response")
		return nil, err
	}

	s.log.Info().Int("summaries", len(items)).Msg("Summaries generated")
	return items, nil
}

func toSummarizeError(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &SummarizeAPIError{StatusCode: apiErr.HTTPStatusCode, Body: apiErr.Message, Err: err}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &SummarizeAPIError{StatusCode: reqErr.HTTPStatusCode, Body: reqErr.Error(), Err: err}
	}
	return fmt.Errorf("chat request failed: %w", err)
}
