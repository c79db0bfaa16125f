package feed

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/JayDad/energy-insight-ui/internal/sector"
	"github.com/go-playground/assert/v2"
)

func testSource(url string) *RSSSource {
	s := NewRSSSource(2 * time.Second)
	s.feedURL = func(sector.Sector) string { return url }
	return s
}

func TestRSSSourceFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, userAgent, r.Header.Get("User-Agent"))
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(sampleFeed))
	}))
	defer srv.Close()

	items, err := testSource(srv.URL).Fetch(context.Background(), sector.Offshore)
	assert.Equal(t, nil, err)
	assert.Equal(t, 2, len(items))
	assert.Equal(t, sector.Offshore, items[0].Sector)
}

func TestRSSSourceUpstreamStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := testSource(srv.URL).Fetch(context.Background(), sector.SMR)

	var feedErr *FeedError
	if !errors.As(err, &feedErr) {
		t.Fatalf("expected FeedError, got %v", err)
	}
	assert.Equal(t, http.StatusNotFound, feedErr.StatusCode)
}

func TestRSSSourceInvalidSector(t *testing.T) {
	_, err := NewRSSSource(time.Second).Fetch(context.Background(), sector.Sector("solar"))
	assert.Equal(t, sector.ErrInvalidSector, err)
}
