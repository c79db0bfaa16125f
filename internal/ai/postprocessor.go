package ai

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/JayDad/energy-insight-ui/internal/models"
)

var openingFence = regexp.MustCompile("^```\\w*\\n?")

// CleanJSONText strips a surrounding markdown code fence, with or without a
// language tag, that chat models sometimes wrap around JSON payloads.
func CleanJSONText(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if strings.HasPrefix(trimmed, "```") && strings.HasSuffix(trimmed, "```") {
		trimmed = openingFence.ReplaceAllString(trimmed, "")
		trimmed = strings.TrimSuffix(trimmed, "```")
		return strings.TrimSpace(trimmed)
	}
	return trimmed
}

// parseSummaries decodes the {items:[...]} payload of the summarization stage.
func parseSummaries(content string) ([]models.SummarizedItem, error) {
	var parsed struct {
		Items []models.SummarizedItem `json:"items"`
	}
	if err := json.Unmarshal([]byte(CleanJSONText(content)), &parsed); err != nil {
		return nil, &SummarizeAPIError{Body: preview(content), Err: err}
	}

	items := make([]models.SummarizedItem, 0, len(parsed.Items))
	for _, it := range parsed.Items {
		it.Title = cleanText(it.Title)
		it.SummaryKO = strings.TrimSpace(it.SummaryKO)
		it.SummaryEN = strings.TrimSpace(it.SummaryEN)
		it.Source = cleanText(it.Source)
		it.URL = strings.TrimSpace(it.URL)
		it.Date = strings.TrimSpace(it.Date)
		items = append(items, it)
	}
	return items, nil
}

// cleanText normalizes whitespace
func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
