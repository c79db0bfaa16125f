package feed

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
)

const userAgent = "Mozilla/5.0 (EnergyInsightBot/1.0)"

// FeedError reports a non-2xx answer from an RSS endpoint.
type FeedError struct {
	URL        string
	StatusCode int
}

func (e *FeedError) Error() string {
	return fmt.Sprintf("upstream RSS returned %d for %s", e.StatusCode, e.URL)
}

type Fetcher struct {
	client *resty.Client
}

func NewFetcher(timeout time.Duration) *Fetcher {
	return &Fetcher{
		client: resty.New().
			SetTimeout(timeout).
			SetHeader("User-Agent", userAgent).
			SetRetryCount(3).
			SetRetryWaitTime(500 * time.Millisecond).
			SetRetryMaxWaitTime(5 * time.Second).
			AddRetryCondition(func(r *resty.Response, err error) bool {
				return err != nil || r.StatusCode() >= http.StatusInternalServerError
			}),
	}
}

// FetchFeed downloads the raw feed document.
func (f *Fetcher) FetchFeed(ctx context.Context, url string) (string, error) {
	resp, err := f.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/rss+xml, application/xml, text/xml").
		Get(url)
	if err != nil {
		return "", fmt.Errorf("failed to fetch feed from %s: %w", url, err)
	}

	if code := resp.StatusCode(); code < 200 || code >= 300 {
		return "", &FeedError{URL: url, StatusCode: code}
	}

	return resp.String(), nil
}
