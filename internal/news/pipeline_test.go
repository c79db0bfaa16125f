package news

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/JayDad/energy-insight-ui/internal/models"
	"github.com/JayDad/energy-insight-ui/internal/sector"
	"github.com/go-playground/assert/v2"
)

type fakeSearcher struct {
	results []models.SearchResult
	err     error
	calls   int
}

func (f *fakeSearcher) Search(context.Context, sector.Sector) ([]models.SearchResult, error) {
	f.calls++
	return f.results, f.err
}

type fakeSummarizer struct {
	items []models.SummarizedItem
	err   error
	calls int
	label string
}

func (f *fakeSummarizer) Summarize(_ context.Context, _ []models.SearchResult, label string) ([]models.SummarizedItem, error) {
	f.calls++
	f.label = label
	return f.items, f.err
}

func results(n int) []models.SearchResult {
	out := make([]models.SearchResult, n)
	for i := range out {
		date := "2026-10-0" + fmt.Sprint(i%9+1)
		out[i] = models.SearchResult{
			Title:         fmt.Sprintf("Result %d", i),
			URL:           fmt.Sprintf("https://reuters.com/article-%02d", i),
			Snippet:       "snippet",
			Source:        "Reuters",
			PublishedDate: &date,
		}
	}
	return out
}

func TestPipelineEmptySearchSkipsSummarize(t *testing.T) {
	s := &fakeSearcher{}
	sum := &fakeSummarizer{}

	items, err := NewPipeline(s, sum).Fetch(context.Background(), sector.Wind)

	assert.Equal(t, nil, err)
	assert.Equal(t, 0, len(items))
	assert.Equal(t, true, items != nil)
	assert.Equal(t, 1, s.calls)
	assert.Equal(t, 0, sum.calls)
}

func TestPipelineFallsBackToRawResults(t *testing.T) {
	for _, n := range []int{1, 6, 9} {
		sum := &fakeSummarizer{items: []models.SummarizedItem{}}
		items, err := NewPipeline(&fakeSearcher{results: results(n)}, sum).Fetch(context.Background(), sector.Offshore)

		assert.Equal(t, nil, err)
		want := n
		if want > 6 {
			want = 6
		}
		assert.Equal(t, want, len(items))
		assert.Equal(t, "offshore oil & gas", sum.label)
		for _, it := range items {
			assert.Equal(t, true, it.SummaryKO == nil)
			assert.Equal(t, true, it.SummaryEN == nil)
			assert.Equal(t, 0, len(it.Citations))
			assert.Equal(t, "Reuters", it.Source)
		}
		assert.Equal(t, "offshore-0-m/article-00", items[0].ID)
		assert.Equal(t, "2026-10-01", items[0].Date)
	}
}

func TestPipelineEnrichesSummaries(t *testing.T) {
	raw := []models.SearchResult{
		{Title: "A", URL: "http://a.com/x", Snippet: "sa"},
		{Title: "B", URL: "http://b.com/y"},
		{Title: "no url"},
	}
	sum := &fakeSummarizer{items: []models.SummarizedItem{
		{Title: "A summarized", SummaryKO: "요약", SummaryEN: "summary", Source: "A News", URL: "http://a.com/x?y=1", Date: "2026-10-10"},
		{Title: "", SummaryKO: "", SummaryEN: "only english"},
	}}

	items, err := NewPipeline(&fakeSearcher{results: raw}, sum).Fetch(context.Background(), sector.SMR)
	assert.Equal(t, nil, err)
	assert.Equal(t, 2, len(items))

	first := items[0]
	assert.Equal(t, sector.SMR, first.Sector)
	assert.Equal(t, "요약", *first.SummaryKO)
	assert.Equal(t, []models.Citation{{Title: "A", URL: "http://a.com/x", Snippet: "sa"}}, first.Citations)
	assert.Equal(t, "smr-0-/a.com/x?y=1", first.ID)

	second := items[1]
	assert.Equal(t, "(no title)", second.Title)
	assert.Equal(t, "#", second.Link)
	assert.Equal(t, "Perplexity", second.Source)
	assert.Equal(t, "smr-1-1", second.ID)
	assert.Equal(t, true, second.SummaryKO == nil)
	assert.Equal(t, "only english", *second.SummaryEN)
	assert.Equal(t, 0, len(second.Citations))
}

func TestPipelinePropagatesStageErrors(t *testing.T) {
	boom := errors.New("boom")

	_, err := NewPipeline(&fakeSearcher{err: boom}, &fakeSummarizer{}).Fetch(context.Background(), sector.Wind)
	assert.Equal(t, true, errors.Is(err, boom))

	_, err = NewPipeline(&fakeSearcher{results: results(2)}, &fakeSummarizer{err: boom}).Fetch(context.Background(), sector.Wind)
	assert.Equal(t, true, errors.Is(err, boom))
}

func TestNewPerplexityPipelineNeedsKey(t *testing.T) {
	_, err := NewPerplexityPipeline("", "https://api.perplexity.ai", "sonar-pro", 0)
	assert.Equal(t, ErrMissingAPIKey, err)
}

func TestMockSource(t *testing.T) {
	for _, sec := range sector.All() {
		items, err := MockSource{}.Fetch(context.Background(), sec)
		assert.Equal(t, nil, err)
		assert.Equal(t, 3, len(items))
		for _, it := range items {
			assert.Equal(t, sec, it.Sector)
			assert.Equal(t, true, it.Citations != nil)
		}
	}

	_, err := MockSource{}.Fetch(context.Background(), sector.Sector("solar"))
	assert.Equal(t, sector.ErrInvalidSector, err)
}
