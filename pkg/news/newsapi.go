package news

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const defaultNewsAPIURL = "https://newsapi.org"

type HeadlineQuery struct {
	Country  string
	Category string
	PageSize int
}

type NewsAPIClient struct {
	apiKey     string
	baseURL    string
	defaults   HeadlineQuery
	httpClient *http.Client
}

func NewNewsAPIClient(apiKey, baseURL string, defaults HeadlineQuery) *NewsAPIClient {
	if baseURL == "" {
		baseURL = defaultNewsAPIURL
	}
	return &NewsAPIClient{
		apiKey:     apiKey,
		baseURL:    baseURL,
		defaults:   defaults,
		httpClient: &http.Client{Timeout: defaultHTTPTimeout},
	}
}

func (c *NewsAPIClient) Name() string {
	return "NewsAPI"
}

// Defaults returns the query used when a caller leaves fields empty.
func (c *NewsAPIClient) Defaults() HeadlineQuery {
	return c.defaults
}

func (c *NewsAPIClient) Fetch(ctx context.Context, limit int) ([]Article, error) {
	q := c.defaults
	q.PageSize = limit
	return c.TopHeadlines(ctx, q)
}

func (c *NewsAPIClient) TopHeadlines(ctx context.Context, q HeadlineQuery) ([]Article, error) {
	if q.Country == "" {
		q.Country = c.defaults.Country
	}
	if q.Category == "" {
		q.Category = c.defaults.Category
	}
	if q.PageSize <= 0 {
		q.PageSize = c.defaults.PageSize
	}

	params := url.Values{}
	if q.Country != "" {
		params.Set("country", q.Country)
	}
	if q.Category != "" {
		params.Set("category", q.Category)
	}
	if q.PageSize > 0 {
		params.Set("pageSize", strconv.Itoa(q.PageSize))
	}
	params.Set("apiKey", c.apiKey)

	var raw newsAPIResponse
	status, err := getJSON(ctx, c.httpClient, c.baseURL+"/v2/top-headlines", params, &raw)
	if err != nil {
		return nil, fmt.Errorf("newsapi fetch: %w", err)
	}

	if status != http.StatusOK || raw.Status != "ok" {
		return nil, fmt.Errorf("newsapi error: status %d, code %q: %s", status, raw.Code, raw.Message)
	}

	articles := make([]Article, 0, len(raw.Articles))
	for _, item := range raw.Articles {
		articles = append(articles, Article{
			ExternalID:  ArticleID(item.URL),
			Title:       item.Title,
			Description: item.Description,
			Content:     item.Content,
			URL:         item.URL,
			ImageURL:    item.URLToImage,
			Publisher:   item.Source.Name,
			PublishedAt: parseTime(time.RFC3339, item.PublishedAt),
			Source:      c.Name(),
		})
	}

	return articles, nil
}

type newsAPIResponse struct {
	Status   string           `json:"status"`
	Code     string           `json:"code"`
	Message  string           `json:"message"`
	Articles []newsAPIArticle `json:"articles"`
}

type newsAPIArticle struct {
	Source struct {
		Name string `json:"name"`
	} `json:"source"`
	Title       string `json:"title"`
	Description string `json:"description"`
	URL         string `json:"url"`
	URLToImage  string `json:"urlToImage"`
	PublishedAt string `json:"publishedAt"`
	Content     string `json:"content"`
}
