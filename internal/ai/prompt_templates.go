package ai

import (
	"fmt"
	"strings"

	"github.com/JayDad/energy-insight-ui/internal/models"
)

const searchQueryTemplate = "latest %s industry news developments projects announcements"

// summarizeSystemPrompt fixes the JSON contract parsed by parseSummaries.
const summarizeSystemPrompt = `You are a bilingual energy industry analyst. Your task is to analyze news articles and create summaries in both Korean and English.

CRITICAL: Return ONLY valid JSON. No markdown, no code blocks, no explanations.

Required JSON structure:
{
  "items": [
    {
      "title": "original English title",
      "summary_ko": "한글 요약 (2-3문장, 핵심 내용 중심)",
      "summary_en": "English summary (2-3 sentences, key points)",
      "source": "source name",
      "url": "original URL",
      "date": "YYYY-MM-DD"
    }
  ]
}

Korean summary guidelines:
- 2-3 sentences in natural Korean
- Focus on key business impact and developments
- Use professional business Korean terminology
- Be concise but informative

English summary guidelines:
- 2-3 sentences in clear English
- Highlight main developments and implications
- Use industry-standard terminology`

const summarizeUserTemplate = `Based on these %s news articles, create %d news items with Korean and English summaries.

NEWS ARTICLES:
%s

INSTRUCTIONS:
1. Select the %d most important and recent news items
2. For each item, write:
   - title: Keep original English title
   - summary_ko: Korean summary (2-3 sentences explaining key points)
   - summary_en: English summary (2-3 sentences)
   - source: News outlet name
   - url: Original article URL
   - date: Publication date in YYYY-MM-DD format

Return ONLY the JSON object. No markdown code blocks.`

// BuildSummarizePrompt numbers every result so the model can reference it.
func BuildSummarizePrompt(results []models.SearchResult, sectorLabel string, items int) string {
	blocks := make([]string, 0, len(results))
	for i, r := range results {
		title := r.Title
		if title == "" {
			title = "No title"
		}
		blocks = append(blocks, fmt.Sprintf("%d. %s\n   URL: %s\n   Content: %s", i+1, title, r.URL, r.Snippet))
	}
	return fmt.Sprintf(summarizeUserTemplate, sectorLabel, items, strings.Join(blocks, "\n\n"), items)
}
