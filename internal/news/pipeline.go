package news

import (
	"context"
	"time"

	"github.com/JayDad/energy-insight-ui/internal/ai"
	"github.com/JayDad/energy-insight-ui/internal/logger"
	"github.com/JayDad/energy-insight-ui/internal/models"
	"github.com/JayDad/energy-insight-ui/internal/sector"
	"github.com/rs/zerolog"
)

// rawFallbackItems is how many raw hits are served when summarization yields nothing.
const rawFallbackItems = ai.SummaryItems

// Pipeline runs search, summarization, citation matching and normalization.
// Errors from either stage are returned as is; the caller picks the policy.
type Pipeline struct {
	searcher   Searcher
	summarizer Summarizer
	log        zerolog.Logger
}

func NewPipeline(searcher Searcher, summarizer Summarizer) *Pipeline {
	return &Pipeline{
		searcher:   searcher,
		summarizer: summarizer,
		log:        logger.Component("pipeline"),
	}
}

// NewPerplexityPipeline wires the Perplexity search and chat clients.
func NewPerplexityPipeline(apiKey, baseURL, model string, timeout time.Duration) (*Pipeline, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}
	return NewPipeline(
		ai.NewSearchClient(apiKey, baseURL, timeout),
		ai.NewSummarizeClient(apiKey, baseURL, model, timeout),
	), nil
}

func (p *Pipeline) Fetch(ctx context.Context, sec sector.Sector) ([]models.NewsItem, error) {
	start := time.Now()

	results, err := p.searcher.Search(ctx, sec)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		p.log.Warn().Str("sector", sec.String()).Msg("Search returned no results")
		return []models.NewsItem{}, nil
	}

	summaries, err := p.summarizer.Summarize(ctx, results, sec.Label())
	if err != nil {
		return nil, err
	}

	var items []models.NewsItem
	if len(summaries) == 0 {
		p.log.Warn().
			Str("sector", sec.String()).
			Int("results", len(results)).
			Msg("No summaries, serving raw search results")
		items = fromResults(sec, results)
	} else {
		items = fromSummaries(sec, summaries, results)
	}

	p.log.Info().
		Str("sector", sec.String()).
		Int("items", len(items)).
		Dur("took", time.Since(start)).
		Msg("Pipeline finished")

	return items, nil
}

func fromResults(sec sector.Sector, results []models.SearchResult) []models.NewsItem {
	if len(results) > rawFallbackItems {
		results = results[:rawFallbackItems]
	}
	items := make([]models.NewsItem, 0, len(results))
	for i, r := range results {
		raw := rawItem{Title: r.Title, Link: r.URL, Source: r.Source}
		if r.PublishedDate != nil {
			raw.Date = *r.PublishedDate
		}
		items = append(items, normalize(sec, i, raw))
	}
	return items
}

func fromSummaries(sec sector.Sector, summaries []models.SummarizedItem, results []models.SearchResult) []models.NewsItem {
	items := make([]models.NewsItem, 0, len(summaries))
	for i, s := range summaries {
		ko, en := s.SummaryKO, s.SummaryEN
		items = append(items, normalize(sec, i, rawItem{
			Title:     s.Title,
			Link:      s.URL,
			Source:    s.Source,
			Date:      s.Date,
			SummaryKO: &ko,
			SummaryEN: &en,
			Citations: MatchCitations(s.URL, results),
		}))
	}
	return items
}
