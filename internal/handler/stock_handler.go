package handler

import (
	"bizinsights/pkg/news"
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	dateLayout       = "2006-01-02"
	stockLookback    = 30 * 24 * time.Hour
	stockNewsLimit   = 5
	stockSymbolLimit = 100
)

type StockClient interface {
	CompanyNews(ctx context.Context, symbol, from, to string) ([]news.CompanyNewsItem, error)
	StockSymbols(ctx context.Context, exchange string) ([]news.Symbol, error)
	Candles(ctx context.Context, symbol, resolution string, from, to time.Time) (*news.Candles, error)
	Quote(ctx context.Context, symbol string) (*news.Quote, error)
}

type StockHandler struct {
	client     StockClient
	summarizer Summarizer
	opts       Options
	now        func() time.Time
}

func NewStockHandler(client StockClient, summarizer Summarizer, opts Options) *StockHandler {
	return &StockHandler{
		client:     client,
		summarizer: summarizer,
		opts:       opts,
		now:        time.Now,
	}
}

func (h *StockHandler) GetStockNews(c *gin.Context) {
	symbol := strings.ToUpper(c.Param("symbol"))
	ctx := c.Request.Context()

	now := h.now()
	from := c.DefaultQuery("from", now.Add(-stockLookback).Format(dateLayout))
	to := c.DefaultQuery("to", now.Format(dateLayout))

	if !validDate(from) || !validDate(to) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "from and to must be YYYY-MM-DD dates"})
		return
	}

	items, err := h.client.CompanyNews(ctx, symbol, from, to)
	if err != nil {
		serverError(c, "Error fetching stock news", err)
		return
	}

	if len(items) > stockNewsLimit {
		items = items[:stockNewsLimit]
	}

	texts := make([]string, len(items))
	for i, item := range items {
		texts[i] = item.Summary
		if texts[i] == "" {
			texts[i] = item.Headline
		}
	}
	summaries := h.summarizer.SummarizeAll(ctx, texts, h.opts.SummaryConcurrency)

	res := make([]StockNewsResponse, len(items))
	for i, item := range items {
		id := item.ID
		if id == "" {
			id = uuid.NewString()
		}

		related := item.Related
		if related == "" {
			related = symbol
		}

		res[i] = StockNewsResponse{
			ID:       id,
			Headline: item.Headline,
			Summary:  summaries[i],
			ImageURL: item.Image,
			Datetime: unixMilli(item.Datetime),
			Source:   item.Source,
			URL:      item.URL,
			Related:  related,
		}
	}

	c.JSON(http.StatusOK, res)
}

func (h *StockHandler) GetSymbols(c *gin.Context) {
	exchange := strings.ToUpper(c.DefaultQuery("exchange", "US"))
	ctx := c.Request.Context()

	key := "symbols:" + exchange

	var res []news.Symbol
	if cacheGet(ctx, h.opts, key, &res) {
		c.JSON(http.StatusOK, res)
		return
	}

	symbols, err := h.client.StockSymbols(ctx, exchange)
	if err != nil {
		serverError(c, "Error fetching stock symbols", err)
		return
	}

	if len(symbols) > stockSymbolLimit {
		symbols = symbols[:stockSymbolLimit]
	}

	cacheSet(ctx, h.opts, key, symbols)

	c.JSON(http.StatusOK, symbols)
}

func (h *StockHandler) GetPrice(c *gin.Context) {
	symbol := strings.ToUpper(c.Param("symbol"))
	resolution := c.DefaultQuery("resolution", "D")

	to := h.now()
	from := to.Add(-stockLookback)

	candles, err := h.client.Candles(c.Request.Context(), symbol, resolution, from, to)
	if err != nil {
		serverError(c, "Error fetching stock price data", err)
		return
	}

	c.JSON(http.StatusOK, candles)
}

func (h *StockHandler) GetQuote(c *gin.Context) {
	symbol := strings.ToUpper(c.Param("symbol"))

	quote, err := h.client.Quote(c.Request.Context(), symbol)
	if err != nil {
		serverError(c, "Error fetching stock quote", err)
		return
	}

	c.JSON(http.StatusOK, QuoteResponse{
		Symbol:        symbol,
		Current:       quote.Current,
		Open:          quote.Open,
		High:          quote.High,
		Low:           quote.Low,
		PreviousClose: quote.PreviousClose,
		Change:        quote.Change,
		PercentChange: quote.PercentChange,
	})
}

func validDate(s string) bool {
	_, err := time.Parse(dateLayout, s)
	return err == nil
}
