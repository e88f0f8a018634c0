package news

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/assert/v2"
)

const topHeadlinesPayload = `{
	"status": "ok",
	"totalResults": 2,
	"articles": [
		{
			"source": {"id": "reuters", "name": "Reuters"},
			"title": "Stocks edge higher",
			"description": "Wall Street rose on Monday.",
			"url": "https://example.com/markets/stocks-edge-higher",
			"urlToImage": "https://example.com/img.jpg",
			"publishedAt": "2026-10-16T08:30:00Z",
			"content": "Wall Street rose on Monday as investors..."
		},
		{
			"source": {"id": null, "name": "CNBC"},
			"title": "Oil slips",
			"description": "",
			"url": "https://example.com/oil/",
			"urlToImage": null,
			"publishedAt": "not a date",
			"content": null
		}
	]
}`

func TestTopHeadlines(t *testing.T) {
	var gotPath, gotCountry, gotCategory, gotPageSize, gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotCountry = r.URL.Query().Get("country")
		gotCategory = r.URL.Query().Get("category")
		gotPageSize = r.URL.Query().Get("pageSize")
		gotKey = r.URL.Query().Get("apiKey")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(topHeadlinesPayload))
	}))
	defer srv.Close()

	client := NewNewsAPIClient("test-key", srv.URL, HeadlineQuery{Country: "us", Category: "business"})

	articles, err := client.TopHeadlines(context.Background(), HeadlineQuery{PageSize: 2})

	assert.Equal(t, nil, err)
	assert.Equal(t, "/v2/top-headlines", gotPath)
	assert.Equal(t, "us", gotCountry)
	assert.Equal(t, "business", gotCategory)
	assert.Equal(t, "2", gotPageSize)
	assert.Equal(t, "test-key", gotKey)
	assert.Equal(t, 2, len(articles))

	a := articles[0]
	assert.Equal(t, "stocks-edge-higher", a.ExternalID)
	assert.Equal(t, "Stocks edge higher", a.Title)
	assert.Equal(t, "Wall Street rose on Monday.", a.Description)
	assert.Equal(t, "Wall Street rose on Monday as investors...", a.Content)
	assert.Equal(t, "https://example.com/img.jpg", a.ImageURL)
	assert.Equal(t, "Reuters", a.Publisher)
	assert.Equal(t, "NewsAPI", a.Source)
	assert.Equal(t, time.Date(2026, 10, 16, 8, 30, 0, 0, time.UTC), a.PublishedAt)

	b := articles[1]
	assert.Equal(t, generateExternalID("https://example.com/oil/"), b.ExternalID)
	assert.Equal(t, "", b.ImageURL)
	assert.Equal(t, true, b.PublishedAt.IsZero())
}

func TestTopHeadlines_QueryOverridesDefaults(t *testing.T) {
	var gotCountry, gotCategory string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotCountry = r.URL.Query().Get("country")
		gotCategory = r.URL.Query().Get("category")
		w.Write([]byte(`{"status": "ok", "articles": []}`))
	}))
	defer srv.Close()

	client := NewNewsAPIClient("k", srv.URL, HeadlineQuery{Country: "us", Category: "business"})
	articles, err := client.TopHeadlines(context.Background(), HeadlineQuery{Country: "gb", Category: "technology"})

	assert.Equal(t, nil, err)
	assert.Equal(t, 0, len(articles))
	assert.Equal(t, "gb", gotCountry)
	assert.Equal(t, "technology", gotCategory)
}

func TestTopHeadlines_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"status": "error", "code": "apiKeyInvalid", "message": "Your API key is invalid."}`))
	}))
	defer srv.Close()

	client := NewNewsAPIClient("bad", srv.URL, HeadlineQuery{Country: "us"})
	_, err := client.TopHeadlines(context.Background(), HeadlineQuery{})

	assert.NotEqual(t, nil, err)
}

func TestNewsAPIFetch_UsesLimitAsPageSize(t *testing.T) {
	var gotPageSize string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPageSize = r.URL.Query().Get("pageSize")
		w.Write([]byte(`{"status": "ok", "articles": []}`))
	}))
	defer srv.Close()

	client := NewNewsAPIClient("k", srv.URL, HeadlineQuery{Country: "us", PageSize: 50})
	_, err := client.Fetch(context.Background(), 10)

	assert.Equal(t, nil, err)
	assert.Equal(t, "10", gotPageSize)
}
