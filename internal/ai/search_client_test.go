package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/JayDad/energy-insight-ui/internal/sector"
	"github.com/go-playground/assert/v2"
)

func TestSearchBuildsRequestAndMapsResults(t *testing.T) {
	var got searchRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decode request: %v", err)
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"results": []map[string]interface{}{
				{
					"title":          "Floating wind farm reaches FID",
					"url":            "https://www.offshorewind.biz/2026/10/01/fid/",
					"snippet":        "Developers took the final investment decision.",
					"published_date": "2026-10-01",
				},
				{
					"title":       "Turbine order",
					"url":         "https://example.net/turbines",
					"description": "Description fallback",
					"date":        "2026-09-30",
				},
				{
					"title": "No URL",
				},
			},
		})
	}))
	defer srv.Close()

	client := NewSearchClient("test-key", srv.URL, 5*time.Second)
	results, err := client.Search(context.Background(), sector.Wind)

	assert.Equal(t, nil, err)
	assert.Equal(t, "latest offshore wind industry news developments projects announcements", got.Query)
	assert.Equal(t, "week", got.RecencyFilter)
	assert.Equal(t, 20, got.MaxResults)
	assert.Equal(t, sector.Wind.Domains(), got.DomainFilter)

	assert.Equal(t, 3, len(results))
	assert.Equal(t, "Offshorewind.biz", results[0].Source)
	assert.Equal(t, "2026-10-01", *results[0].PublishedDate)
	assert.Equal(t, "Description fallback", results[1].Snippet)
	assert.Equal(t, "example.net", results[1].Source)
	assert.Equal(t, "2026-09-30", *results[1].PublishedDate)
	assert.Equal(t, "Unknown", results[2].Source)
	assert.Equal(t, true, results[2].PublishedDate == nil)
}

func TestSearchEmptyResultsIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results":[]}`))
	}))
	defer srv.Close()

	results, err := NewSearchClient("k", srv.URL, time.Second).Search(context.Background(), sector.SMR)
	assert.Equal(t, nil, err)
	assert.Equal(t, 0, len(results))
}

func TestSearchNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":"rate limited"}`))
	}))
	defer srv.Close()

	_, err := NewSearchClient("k", srv.URL, time.Second).Search(context.Background(), sector.Offshore)

	var apiErr *SearchAPIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected SearchAPIError, got %v", err)
	}
	assert.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
	assert.Equal(t, `{"error":"rate limited"}`, apiErr.Body)
}
