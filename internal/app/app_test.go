package app

import (
	"context"
	"testing"

	"github.com/JayDad/energy-insight-ui/internal/cache"
	"github.com/JayDad/energy-insight-ui/internal/config"
	"github.com/JayDad/energy-insight-ui/internal/feed"
	"github.com/JayDad/energy-insight-ui/internal/news"
	"github.com/JayDad/energy-insight-ui/internal/storage"
	"github.com/go-playground/assert/v2"
)

func baseConfig() *config.Config {
	return &config.Config{
		PerplexityBaseURL: "https://api.perplexity.ai",
		PerplexityModel:   "sonar-pro",
		NewsMode:          config.NewsModeLive,
		NewsSource:        config.NewsSourcePerplexity,
	}
}

func TestBuildInMemoryWithoutKey(t *testing.T) {
	a, err := Build(context.Background(), baseConfig())
	assert.Equal(t, nil, err)
	defer a.Close()

	_, isMem := a.Store.(*storage.MemoryStore)
	assert.Equal(t, true, isMem)
	_, isMemCache := a.Cache.(*cache.MemoryCache)
	assert.Equal(t, true, isMemCache)
	assert.Equal(t, true, a.Source == nil)
	assert.Equal(t, true, a.Refresher == nil)
}

func TestBuildSelectsSource(t *testing.T) {
	cfg := baseConfig()
	cfg.PerplexityAPIKey = "pplx"
	a, err := Build(context.Background(), cfg)
	assert.Equal(t, nil, err)
	_, isPipeline := a.Source.(*news.Pipeline)
	assert.Equal(t, true, isPipeline)
	assert.Equal(t, true, a.Refresher != nil)

	cfg = baseConfig()
	cfg.NewsSource = config.NewsSourceRSS
	a, err = Build(context.Background(), cfg)
	assert.Equal(t, nil, err)
	_, isRSS := a.Source.(*feed.RSSSource)
	assert.Equal(t, true, isRSS)
}
