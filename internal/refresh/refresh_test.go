package refresh

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/JayDad/energy-insight-ui/internal/cache"
	"github.com/JayDad/energy-insight-ui/internal/models"
	"github.com/JayDad/energy-insight-ui/internal/sector"
	"github.com/JayDad/energy-insight-ui/internal/storage"
	"github.com/go-playground/assert/v2"
)

type stubSource struct {
	items map[sector.Sector][]models.NewsItem
	fail  map[sector.Sector]error
	order []sector.Sector
}

func (s *stubSource) Fetch(_ context.Context, sec sector.Sector) ([]models.NewsItem, error) {
	s.order = append(s.order, sec)
	if err := s.fail[sec]; err != nil {
		return nil, err
	}
	return s.items[sec], nil
}

func newsFor(sec sector.Sector, links ...string) []models.NewsItem {
	var out []models.NewsItem
	for _, l := range links {
		out = append(out, models.NewsItem{Sector: sec, Title: l, Link: l, Citations: []models.Citation{}})
	}
	return out
}

func TestRunRecordsFailuresAndContinues(t *testing.T) {
	src := &stubSource{
		items: map[sector.Sector][]models.NewsItem{
			sector.Offshore: newsFor(sector.Offshore, "https://a", "https://b"),
			sector.SMR:      newsFor(sector.SMR, "https://c"),
		},
		fail: map[sector.Sector]error{sector.Wind: errors.New("search api error 429: slow down")},
	}
	store := storage.NewMemoryStore()
	c := cache.NewMemoryCache(time.Hour)

	report := New(src, store, c, nil).Run(context.Background(), nil)

	assert.Equal(t, false, report.OK)
	assert.Equal(t, []sector.Sector{sector.Offshore, sector.Wind, sector.SMR}, src.order)
	assert.Equal(t, Result{Fetched: 2, Saved: 2, Skipped: 0}, report.Updated["offshore"])
	assert.Equal(t, Result{Fetched: 1, Saved: 1, Skipped: 0}, report.Updated["smr"])
	assert.Equal(t, "search api error 429: slow down", report.Failures["wind"])

	cached, ok, _ := c.Get(context.Background(), sector.Offshore)
	assert.Equal(t, true, ok)
	assert.Equal(t, 2, len(cached))
}

func TestRunInvalidSector(t *testing.T) {
	src := &stubSource{items: map[sector.Sector][]models.NewsItem{sector.Wind: newsFor(sector.Wind, "https://w")}}
	report := New(src, storage.NewMemoryStore(), nil, nil).Run(context.Background(), []string{"Solar", "WIND"})

	assert.Equal(t, false, report.OK)
	assert.Equal(t, "Invalid sector", report.Failures["solar"])
	assert.Equal(t, 1, report.Updated["wind"].Saved)
	assert.Equal(t, []sector.Sector{sector.Wind}, src.order)
}

func TestRunTwiceSkipsDuplicates(t *testing.T) {
	src := &stubSource{items: map[sector.Sector][]models.NewsItem{sector.Wind: newsFor(sector.Wind, "https://w1", "https://w2")}}
	r := New(src, storage.NewMemoryStore(), nil, nil)

	first := r.Run(context.Background(), []string{"wind"})
	second := r.Run(context.Background(), []string{"wind"})

	assert.Equal(t, true, first.OK)
	assert.Equal(t, 2, first.Updated["wind"].Saved)
	assert.Equal(t, Result{Fetched: 2, Saved: 0, Skipped: 2}, second.Updated["wind"])
}

type recordingArchiver struct {
	sectors []sector.Sector
	err     error
}

func (a *recordingArchiver) Archive(_ context.Context, sec sector.Sector, _ []models.NewsItem) (string, error) {
	a.sectors = append(a.sectors, sec)
	return "news/" + sec.String(), a.err
}

func TestRunArchives(t *testing.T) {
	src := &stubSource{items: map[sector.Sector][]models.NewsItem{sector.SMR: newsFor(sector.SMR, "https://s")}}
	arch := &recordingArchiver{}

	report := New(src, storage.NewMemoryStore(), nil, arch).Run(context.Background(), []string{"smr"})
	assert.Equal(t, true, report.OK)
	assert.Equal(t, []sector.Sector{sector.SMR}, arch.sectors)

	arch.err = errors.New("bucket missing")
	report = New(src, storage.NewMemoryStore(), nil, arch).Run(context.Background(), []string{"smr"})
	assert.Equal(t, "bucket missing", report.Failures["smr"])
}

func TestStartStopsOnCancel(t *testing.T) {
	src := &stubSource{}
	r := New(src, storage.NewMemoryStore(), nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		r.Start(ctx, 10*time.Millisecond)
		close(done)
	}()

	time.Sleep(35 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("refresher did not stop")
	}
}
