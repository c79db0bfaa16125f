package ai

import (
	"context"
	"fmt"
	"time"

	"github.com/JayDad/energy-insight-ui/internal/logger"
	"github.com/JayDad/energy-insight-ui/internal/models"
	"github.com/JayDad/energy-insight-ui/internal/sector"
	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

const (
	searchMaxResults    = 20
	searchRecencyFilter = "week"
)

// SearchClient calls the Perplexity Search API for raw, unsummarized hits.
type SearchClient struct {
	client *resty.Client
	apiKey string
	log    zerolog.Logger
}

type searchRequest struct {
	Query         string   `json:"query"`
	RecencyFilter string   `json:"search_recency_filter"`
	DomainFilter  []string `json:"search_domain_filter"`
	MaxResults    int      `json:"max_results"`
}

type searchResponse struct {
	Results []struct {
		Title         string  `json:"title"`
		URL           string  `json:"url"`
		Snippet       string  `json:"snippet"`
		Description   string  `json:"description"`
		PublishedDate *string `json:"published_date"`
		Date          *string `json:"date"`
	} `json:"results"`
}

func NewSearchClient(apiKey, baseURL string, timeout time.Duration) *SearchClient {
	return &SearchClient{
		client: resty.New().SetBaseURL(baseURL).SetTimeout(timeout),
		apiKey: apiKey,
		log:    logger.Component("search"),
	}
}

// Search returns up to 20 results from the sector's trusted domains published
// in the last week. An empty upstream result is not an error.
func (s *SearchClient) Search(ctx context.Context, sec sector.Sector) ([]models.SearchResult, error) {
	domains := sec.Domains()
	s.log.Info().
		Str("sector", sec.String()).
		Int("domains", len(domains)).
		Msg("Searching news")

	req := searchRequest{
		Query:         fmt.Sprintf(searchQueryTemplate, sec.Label()),
		RecencyFilter: searchRecencyFilter,
		DomainFilter:  domains,
		MaxResults:    searchMaxResults,
	}

	var out searchResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetAuthToken(s.apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&out).
		Post("/search")
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}

	if code := resp.StatusCode(); code < 200 || code >= 300 {
		s.log.Error().
			Int("status", code).
			Str("body", preview(resp.String())).
			Msg("Search API error")
		return nil, &SearchAPIError{StatusCode: code, Body: resp.String()}
	}

	results := make([]models.SearchResult, 0, len(out.Results))
	for _, r := range out.Results {
		snippet := r.Snippet
		if snippet == "" {
			snippet = r.Description
		}
		published := r.PublishedDate
		if published == nil || *published == "" {
			published = r.Date
		}
		if published != nil && *published == "" {
			published = nil
		}
		results = append(results, models.SearchResult{
			Title:         r.Title,
			URL:           r.URL,
			Snippet:       snippet,
			Source:        sector.SourceName(r.URL),
			PublishedDate: published,
		})
	}

	s.log.Info().
		Str("sector", sec.String()).
		Int("results", len(results)).
		Msg("Search finished")

	return results, nil
}
