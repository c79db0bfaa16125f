package feed

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/JayDad/energy-insight-ui/internal/models"
	"github.com/JayDad/energy-insight-ui/internal/sector"
	"github.com/mmcdole/gofeed"
)

const (
	maxItems      = 10
	idSuffixLen   = 8
	defaultSource = "RSS"
	isoMillis     = "2006-01-02T15:04:05.000Z"
)

var knownEntity = regexp.MustCompile(`^(?:amp;|lt;|gt;|quot;|apos;|#\d+;|#x[0-9a-fA-F]+;)`)

// Parser handles cleaning and normalizing feed items
type Parser struct {
	htmlTagRegex *regexp.Regexp
	feeds        *gofeed.Parser
}

func NewParser() *Parser {
	return &Parser{
		htmlTagRegex: regexp.MustCompile(`<[^>]*>`),
		feeds:        gofeed.NewParser(),
	}
}

// CleanHTML removes HTML tags and normalizes whitespace
func (p *Parser) CleanHTML(input string) string {
	cleaned := p.htmlTagRegex.ReplaceAllString(input, " ")
	cleaned = html.UnescapeString(cleaned)
	return strings.Join(strings.Fields(cleaned), " ")
}

// RepairAmpersands escapes every "&" that does not start one of the five XML
// entities or a numeric character reference.
func RepairAmpersands(xml string) string {
	if !strings.Contains(xml, "&") {
		return xml
	}
	var b strings.Builder
	b.Grow(len(xml) + 16)
	for i := 0; i < len(xml); i++ {
		c := xml[i]
		if c == '&' && !knownEntity.MatchString(xml[i+1:]) {
			b.WriteString("&amp;")
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}

// Parse turns a raw feed document into at most ten news items.
func (p *Parser) Parse(sec sector.Sector, raw string) ([]models.NewsItem, error) {
	feed, err := p.feeds.ParseString(RepairAmpersands(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	source := strings.TrimSpace(feed.Title)
	if source == "" {
		source = defaultSource
	}

	entries := feed.Items
	if len(entries) > maxItems {
		entries = entries[:maxItems]
	}

	items := make([]models.NewsItem, 0, len(entries))
	for idx, e := range entries {
		items = append(items, p.normalize(sec, idx, source, e))
	}
	return items, nil
}

func (p *Parser) normalize(sec sector.Sector, idx int, source string, e *gofeed.Item) models.NewsItem {
	key := e.GUID
	if key == "" {
		key = e.Link
	}

	title := p.CleanHTML(e.Title)
	if title == "" {
		title = "(no title)"
	}
	link := strings.TrimSpace(e.Link)
	if link == "" {
		link = "#"
	}

	item := models.NewsItem{
		ID:        fmt.Sprintf("%s-%d-%s", sec, idx, tail(key, idSuffixLen)),
		Sector:    sec,
		Title:     title,
		Link:      link,
		Source:    source,
		Date:      publishedDate(e),
		Citations: []models.Citation{},
	}
	if desc := p.CleanHTML(e.Description); desc != "" {
		item.SummaryEN = &desc
	}
	return item
}

func publishedDate(e *gofeed.Item) string {
	if e.PublishedParsed != nil {
		return e.PublishedParsed.UTC().Format(isoMillis)
	}
	if e.UpdatedParsed != nil {
		return e.UpdatedParsed.UTC().Format(isoMillis)
	}
	return e.Published
}

func tail(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[len(r)-n:])
}

