package news

import (
	"context"

	"github.com/JayDad/energy-insight-ui/internal/models"
	"github.com/JayDad/energy-insight-ui/internal/sector"
)

type mockHeadline struct {
	title, link, source string
}

var mockHeadlines = map[sector.Sector][]mockHeadline{
	sector.Offshore: {
		{"Operators sanction new deepwater developments in the Gulf of Mexico", "https://www.offshore-mag.com/", "Offshore Magazine"},
		{"FPSO orders climb as Brazil expands pre-salt output", "https://www.upstreamonline.com/", "Upstream"},
		{"North Sea decommissioning spend set to rise", "https://www.energyvoice.com/", "Energy Voice"},
	},
	sector.Wind: {
		{"Floating wind tenders draw record bids", "https://www.offshorewind.biz/", "Offshorewind.biz"},
		{"Turbine makers push 15 MW platforms into serial production", "https://www.rechargenews.com/", "Recharge"},
		{"Installation vessel shortage tightens offshore wind schedules", "https://renews.biz/", "reNEWS"},
	},
	sector.SMR: {
		{"Regulators advance first SMR construction permits", "https://www.world-nuclear-news.org/", "World Nuclear News"},
		{"Utilities sign framework deals for small modular reactor fleets", "https://www.neimagazine.com/", "NEI Magazine"},
		{"Supply chain ramps up for SMR pressure vessel forgings", "https://www.powermag.com/", "POWER"},
	},
}

// MockSource serves static headlines. It backs /api/news when no search key is set.
type MockSource struct{}

func (MockSource) Fetch(_ context.Context, sec sector.Sector) ([]models.NewsItem, error) {
	if !sec.Valid() {
		return nil, sector.ErrInvalidSector
	}
	headlines := mockHeadlines[sec]
	items := make([]models.NewsItem, 0, len(headlines))
	for i, h := range headlines {
		items = append(items, normalize(sec, i, rawItem{Title: h.title, Link: h.link, Source: h.source}))
	}
	return items, nil
}
