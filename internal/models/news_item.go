package models

import (
	"time"

	"github.com/JayDad/energy-insight-ui/internal/sector"
)

// MaxCitations caps the supporting sources attached to one item.
const MaxCitations = 3

// NewsItem is the normalized news record returned to the dashboard
type NewsItem struct {
	ID        string        `json:"id"`
	Sector    sector.Sector `json:"sector"`
	Title     string        `json:"title"`
	Link      string        `json:"link"`
	Source    string        `json:"source"`
	Date      string        `json:"date"`
	SummaryKO *string       `json:"summary_ko"`
	SummaryEN *string       `json:"summary_en"`
	Citations []Citation    `json:"citations"`
	CreatedAt *time.Time    `json:"created_at,omitempty"`
}

// Citation links a raw search hit to a summarized item
type Citation struct {
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet"`
}
