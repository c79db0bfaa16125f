package news

import (
	"fmt"
	"strconv"

	"github.com/JayDad/energy-insight-ui/internal/models"
	"github.com/JayDad/energy-insight-ui/internal/sector"
)

const (
	idSuffixLen   = 12
	defaultTitle  = "(no title)"
	defaultLink   = "#"
	defaultSource = "Perplexity"
)

// rawItem holds the upstream values before defaults are applied.
type rawItem struct {
	Title     string
	Link      string
	Source    string
	Date      string
	SummaryKO *string
	SummaryEN *string
	Citations []models.Citation
}

// ItemID derives the deterministic id from the raw link, the title or the index.
func ItemID(sec sector.Sector, idx int, link, title string, suffixLen int) string {
	key := link
	if key == "" {
		key = title
	}
	if key == "" {
		key = strconv.Itoa(idx)
	}
	return fmt.Sprintf("%s-%d-%s", sec, idx, lastRunes(key, suffixLen))
}

func lastRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[len(r)-n:])
}

func normalize(sec sector.Sector, idx int, raw rawItem) models.NewsItem {
	item := models.NewsItem{
		ID:        ItemID(sec, idx, raw.Link, raw.Title, idSuffixLen),
		Sector:    sec,
		Title:     orDefault(raw.Title, defaultTitle),
		Link:      orDefault(raw.Link, defaultLink),
		Source:    orDefault(raw.Source, defaultSource),
		Date:      raw.Date,
		SummaryKO: nonEmpty(raw.SummaryKO),
		SummaryEN: nonEmpty(raw.SummaryEN),
		Citations: raw.Citations,
	}
	if item.Citations == nil {
		item.Citations = []models.Citation{}
	}
	return item
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
