package news

import (
	"strings"

	"github.com/JayDad/energy-insight-ui/internal/models"
)

// MatchCitations returns up to MaxCitations results whose URL contains, or is
// contained in, the summarized item's URL. Results without a URL never match.
func MatchCitations(itemURL string, results []models.SearchResult) []models.Citation {
	citations := []models.Citation{}
	if itemURL == "" {
		return citations
	}
	for _, r := range results {
		if len(citations) == models.MaxCitations {
			break
		}
		if r.URL == "" {
			continue
		}
		if strings.Contains(itemURL, r.URL) || strings.Contains(r.URL, itemURL) {
			citations = append(citations, models.Citation{
				Title:   r.Title,
				URL:     r.URL,
				Snippet: r.Snippet,
			})
		}
	}
	return citations
}
