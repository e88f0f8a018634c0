package news

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	finnhub "github.com/Finnhub-Stock-API/finnhub-go/v2"
)

type CompanyNewsItem struct {
	ID       string
	Headline string
	Summary  string
	Image    string
	Datetime time.Time
	Source   string
	URL      string
	Related  string
}

type Symbol struct {
	Symbol        string `json:"symbol"`
	DisplaySymbol string `json:"displaySymbol"`
	Description   string `json:"description"`
	Type          string `json:"type"`
	Currency      string `json:"currency"`
}

// Candles mirrors Finnhub's column-oriented candle payload.
type Candles struct {
	Close  []float32 `json:"c"`
	High   []float32 `json:"h"`
	Low    []float32 `json:"l"`
	Open   []float32 `json:"o"`
	Status string    `json:"s"`
	Time   []int64   `json:"t"`
	Volume []float32 `json:"v"`
}

type Quote struct {
	Current       float32
	Open          float32
	High          float32
	Low           float32
	PreviousClose float32
	Change        float32
	PercentChange float32
}

type FinnHubClient struct {
	client *finnhub.DefaultApiService
}

func NewFinnHubClient(apiKey string) *FinnHubClient {
	return newFinnHubClient(apiKey, &http.Client{Timeout: 30 * time.Second})
}

func newFinnHubClient(apiKey string, httpClient *http.Client) *FinnHubClient {
	cfg := finnhub.NewConfiguration()
	cfg.AddDefaultHeader("X-Finnhub-Token", apiKey)
	cfg.HTTPClient = httpClient
	client := finnhub.NewAPIClient(cfg).DefaultApi
	return &FinnHubClient{client: client}
}

func (c *FinnHubClient) Name() string {
	return "FinnHub"
}

// Fetch returns general market news as ingestion headlines.
func (c *FinnHubClient) Fetch(ctx context.Context, limit int) ([]Article, error) {
	res, _, err := c.client.MarketNews(ctx).Category("general").Execute()
	if err != nil {
		return nil, fmt.Errorf("finnhub market news: %w", err)
	}

	var articles []Article

	for _, news := range res {
		if limit > 0 && len(articles) >= limit {
			break
		}

		a := Article{
			Source: c.Name(),
		}

		if news.Id != nil {
			a.ExternalID = strconv.FormatInt(*news.Id, 10)
		}

		if news.Headline != nil {
			a.Title = *news.Headline
		}

		if news.Summary != nil {
			a.Description = *news.Summary
		}

		if news.Url != nil {
			a.URL = *news.Url
		}

		if news.Image != nil {
			a.ImageURL = *news.Image
		}

		if news.Datetime != nil {
			a.PublishedAt = time.Unix(*news.Datetime, 0)
		}

		if news.Source != nil {
			a.Publisher = *news.Source
		}

		if news.Related != nil && *news.Related != "" {
			a.Symbols = strings.Split(*news.Related, ",")
		} else {
			a.Symbols = []string{}
		}

		articles = append(articles, a)
	}

	return articles, nil
}

// CompanyNews returns news for symbol published between from and to
// (inclusive, YYYY-MM-DD).
func (c *FinnHubClient) CompanyNews(ctx context.Context, symbol, from, to string) ([]CompanyNewsItem, error) {
	res, _, err := c.client.CompanyNews(ctx).Symbol(symbol).From(from).To(to).Execute()
	if err != nil {
		return nil, fmt.Errorf("finnhub company news: %w", err)
	}

	items := make([]CompanyNewsItem, 0, len(res))
	for _, news := range res {
		var item CompanyNewsItem

		if news.Id != nil && *news.Id != 0 {
			item.ID = strconv.FormatInt(*news.Id, 10)
		}
		if news.Headline != nil {
			item.Headline = *news.Headline
		}
		if news.Summary != nil {
			item.Summary = *news.Summary
		}
		if news.Image != nil {
			item.Image = *news.Image
		}
		if news.Datetime != nil {
			item.Datetime = time.Unix(*news.Datetime, 0)
		}
		if news.Source != nil {
			item.Source = *news.Source
		}
		if news.Url != nil {
			item.URL = *news.Url
		}
		if news.Related != nil {
			item.Related = *news.Related
		}

		items = append(items, item)
	}

	return items, nil
}

func (c *FinnHubClient) StockSymbols(ctx context.Context, exchange string) ([]Symbol, error) {
	res, _, err := c.client.StockSymbols(ctx).Exchange(exchange).Execute()
	if err != nil {
		return nil, fmt.Errorf("finnhub stock symbols: %w", err)
	}

	symbols := make([]Symbol, 0, len(res))
	for _, s := range res {
		symbols = append(symbols, Symbol{
			Symbol:        deref(s.Symbol),
			DisplaySymbol: deref(s.DisplaySymbol),
			Description:   deref(s.Description),
			Type:          deref(s.Type),
			Currency:      deref(s.Currency),
		})
	}

	return symbols, nil
}

func (c *FinnHubClient) Candles(ctx context.Context, symbol, resolution string, from, to time.Time) (*Candles, error) {
	res, _, err := c.client.StockCandles(ctx).
		Symbol(symbol).
		Resolution(resolution).
		From(from.Unix()).
		To(to.Unix()).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("finnhub candles: %w", err)
	}

	candles := &Candles{
		Close:  []float32{},
		High:   []float32{},
		Low:    []float32{},
		Open:   []float32{},
		Time:   []int64{},
		Volume: []float32{},
	}
	if res.C != nil {
		candles.Close = *res.C
	}
	if res.H != nil {
		candles.High = *res.H
	}
	if res.L != nil {
		candles.Low = *res.L
	}
	if res.O != nil {
		candles.Open = *res.O
	}
	if res.T != nil {
		candles.Time = *res.T
	}
	if res.V != nil {
		candles.Volume = *res.V
	}
	candles.Status = deref(res.S)

	return candles, nil
}

func (c *FinnHubClient) Quote(ctx context.Context, symbol string) (*Quote, error) {
	res, _, err := c.client.Quote(ctx).Symbol(symbol).Execute()
	if err != nil {
		return nil, fmt.Errorf("finnhub quote: %w", err)
	}

	q := &Quote{}
	if res.C != nil {
		q.Current = *res.C
	}
	if res.O != nil {
		q.Open = *res.O
	}
	if res.H != nil {
		q.High = *res.H
	}
	if res.L != nil {
		q.Low = *res.L
	}
	if res.Pc != nil {
		q.PreviousClose = *res.Pc
	}
	if res.D != nil {
		q.Change = *res.D
	}
	if res.Dp != nil {
		q.PercentChange = *res.Dp
	}

	return q, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
