package ingest

import (
	"bizinsights/pkg/news"
	"fmt"
	"log/slog"
	"strings"
)

type SourceKeys struct {
	NewsAPI      string
	NewsAPIURL   string
	Finnhub      string
	AlphaVantage string
	Massive      string
}

// NewSources builds the named headline sources. Sources without an API key
// are skipped with a warning; unknown names are an error.
func NewSources(names []string, keys SourceKeys, query news.HeadlineQuery) ([]news.HeadlineSource, error) {
	var sources []news.HeadlineSource

	for _, name := range names {
		var key string
		var source news.HeadlineSource

		name = strings.ToLower(strings.TrimSpace(name))

		switch name {
		case "newsapi":
			key = keys.NewsAPI
			source = news.NewNewsAPIClient(key, keys.NewsAPIURL, query)
		case "finnhub":
			key = keys.Finnhub
			source = news.NewFinnHubClient(key)
		case "alphavantage":
			key = keys.AlphaVantage
			source = news.NewAlphaVantageClient(key)
		case "massive":
			key = keys.Massive
			source = news.NewMassiveClient(key)
		default:
			return nil, fmt.Errorf("unknown headline source %q", name)
		}

		if key == "" {
			slog.Warn("headline source has no API key, skipping", "source", name)
			continue
		}
		sources = append(sources, source)
	}

	return sources, nil
}
