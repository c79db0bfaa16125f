package news

import (
	"context"
	"errors"

	"github.com/JayDad/energy-insight-ui/internal/models"
	"github.com/JayDad/energy-insight-ui/internal/sector"
)

// ErrMissingAPIKey is returned by constructors that need an upstream key.
var ErrMissingAPIKey = errors.New("missing PERPLEXITY_API_KEY")

// Source produces the normalized news list for one sector.
type Source interface {
	Fetch(ctx context.Context, sec sector.Sector) ([]models.NewsItem, error)
}

// Searcher is the search stage of the pipeline.
type Searcher interface {
	Search(ctx context.Context, sec sector.Sector) ([]models.SearchResult, error)
}

// Summarizer is the summarization stage of the pipeline.
type Summarizer interface {
	Summarize(ctx context.Context, results []models.SearchResult, sectorLabel string) ([]models.SummarizedItem, error)
}
