package news

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const massiveURL = "https://api.massive.com/v2/reference/news"

// MassiveClient reads the reference news endpoint, newest first.
type MassiveClient struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewMassiveClient(apiKey string) *MassiveClient {
	return &MassiveClient{
		apiKey:     apiKey,
		baseURL:    massiveURL,
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
	}
}

func (c *MassiveClient) Name() string {
	return "Massive"
}

func (c *MassiveClient) Fetch(ctx context.Context, limit int) ([]Article, error) {
	params := url.Values{
		"limit":  {strconv.Itoa(limit)},
		"order":  {"desc"},
		"sort":   {"published_utc"},
		"apiKey": {c.apiKey},
	}

	var page referenceNewsPage
	status, err := getJSON(ctx, c.httpClient, c.baseURL, params, &page)
	if err != nil {
		return nil, fmt.Errorf("massive fetch: %w", err)
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("massive fetch: status %d: %s", status, page.Error)
	}

	articles := make([]Article, len(page.Results))
	for i, r := range page.Results {
		articles[i] = r.toArticle(c.Name())
	}
	return articles, nil
}

type referenceNewsPage struct {
	Results []referenceNews `json:"results"`
	Error   string          `json:"error"`
}

type referenceNews struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	ArticleURL   string   `json:"article_url"`
	ImageURL     string   `json:"image_url"`
	PublishedUTC string   `json:"published_utc"`
	Tickers      []string `json:"tickers"`
	Publisher    struct {
		Name string `json:"name"`
	} `json:"publisher"`
}

func (r referenceNews) toArticle(source string) Article {
	id := r.ID
	if id == "" {
		id = generateExternalID(r.ArticleURL)
	}

	return Article{
		ExternalID:  id,
		Title:       r.Title,
		Description: r.Description,
		URL:         r.ArticleURL,
		ImageURL:    r.ImageURL,
		Source:      source,
		Publisher:   r.Publisher.Name,
		PublishedAt: parseTime(time.RFC3339, r.PublishedUTC),
		Symbols:     r.Tickers,
	}
}
