package models

// SearchResult is a raw hit from the search stage
type SearchResult struct {
	Title         string  `json:"title"`
	URL           string  `json:"url"`
	Snippet       string  `json:"snippet"`
	Source        string  `json:"source"`
	PublishedDate *string `json:"published_date"`
}

// SummarizedItem is one entry of the summarization stage's JSON payload
type SummarizedItem struct {
	Title     string `json:"title"`
	SummaryKO string `json:"summary_ko"`
	SummaryEN string `json:"summary_en"`
	Source    string `json:"source"`
	URL       string `json:"url"`
	Date      string `json:"date"`
}
