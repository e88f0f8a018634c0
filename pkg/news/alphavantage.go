package news

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

const (
	alphaVantageURL        = "https://www.alphavantage.co/query"
	alphaVantageTimeLayout = "20060102T150405"
)

var defaultAlphaVantageTopics = []string{"financial_markets", "economy_macro"}

// AlphaVantageClient reads the NEWS_SENTIMENT feed. Tickers tagged in the
// sentiment block become the article symbols.
type AlphaVantageClient struct {
	apiKey     string
	baseURL    string
	topics     []string
	httpClient *http.Client
}

// NewAlphaVantageClient narrows the feed to topics, or to market and macro
// news when none are given.
func NewAlphaVantageClient(apiKey string, topics ...string) *AlphaVantageClient {
	if len(topics) == 0 {
		topics = defaultAlphaVantageTopics
	}
	return &AlphaVantageClient{
		apiKey:     apiKey,
		baseURL:    alphaVantageURL,
		topics:     topics,
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
	}
}

func (c *AlphaVantageClient) Name() string {
	return "AlphaVantage"
}

func (c *AlphaVantageClient) Fetch(ctx context.Context, limit int) ([]Article, error) {
	params := url.Values{
		"function": {"NEWS_SENTIMENT"},
		"sort":     {"LATEST"},
		"limit":    {strconv.Itoa(limit)},
		"apikey":   {c.apiKey},
	}
	if len(c.topics) > 0 {
		params.Set("topics", strings.Join(c.topics, ","))
	}

	var feed sentimentFeed
	status, err := getJSON(ctx, c.httpClient, c.baseURL, params, &feed)
	if err != nil {
		return nil, fmt.Errorf("alphavantage fetch: %w", err)
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("alphavantage fetch: status %d", status)
	}

	// Throttling and bad keys still answer 200, with a notice in place of the feed.
	if feed.Items == nil {
		if notice := feed.notice(); notice != "" {
			return nil, fmt.Errorf("alphavantage error: %s", notice)
		}
	}

	articles := make([]Article, len(feed.Items))
	for i, item := range feed.Items {
		articles[i] = item.toArticle(c.Name())
	}
	return articles, nil
}

type sentimentFeed struct {
	Items       []sentimentItem `json:"feed"`
	Note        string          `json:"Note"`
	Information string          `json:"Information"`
	ErrMessage  string          `json:"Error Message"`
}

func (f sentimentFeed) notice() string {
	for _, s := range []string{f.ErrMessage, f.Information, f.Note} {
		if s != "" {
			return s
		}
	}
	return ""
}

type sentimentItem struct {
	Title         string `json:"title"`
	Summary       string `json:"summary"`
	URL           string `json:"url"`
	BannerImage   string `json:"banner_image"`
	Source        string `json:"source"`
	TimePublished string `json:"time_published"`
	Tickers       []struct {
		Ticker string `json:"ticker"`
	} `json:"ticker_sentiment"`
}

func (it sentimentItem) toArticle(source string) Article {
	var symbols []string
	for _, t := range it.Tickers {
		if t.Ticker != "" {
			symbols = append(symbols, t.Ticker)
		}
	}

	// The feed has no stable id of its own.
	return Article{
		ExternalID:  generateExternalID(it.URL),
		Title:       it.Title,
		Description: it.Summary,
		URL:         it.URL,
		ImageURL:    it.BannerImage,
		Source:      source,
		Publisher:   it.Source,
		PublishedAt: parseTime(alphaVantageTimeLayout, it.TimePublished),
		Symbols:     symbols,
	}
}
