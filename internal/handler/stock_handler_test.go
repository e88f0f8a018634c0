package handler

import (
	"bizinsights/pkg/news"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/assert/v2"
)

type fakeStockClient struct {
	items   []news.CompanyNewsItem
	symbols []news.Symbol
	candles *news.Candles
	quote   *news.Quote
	err     error

	symbolCalls int
	lastSymbol  string
	lastFrom    string
	lastTo      string
	lastRange   [2]time.Time
}

func (f *fakeStockClient) CompanyNews(ctx context.Context, symbol, from, to string) ([]news.CompanyNewsItem, error) {
	f.lastSymbol, f.lastFrom, f.lastTo = symbol, from, to
	return f.items, f.err
}

func (f *fakeStockClient) StockSymbols(ctx context.Context, exchange string) ([]news.Symbol, error) {
	f.symbolCalls++
	return f.symbols, f.err
}

func (f *fakeStockClient) Candles(ctx context.Context, symbol, resolution string, from, to time.Time) (*news.Candles, error) {
	f.lastSymbol = symbol
	f.lastRange = [2]time.Time{from, to}
	return f.candles, f.err
}

func (f *fakeStockClient) Quote(ctx context.Context, symbol string) (*news.Quote, error) {
	return f.quote, f.err
}

var testNow = time.Date(2024, 6, 30, 12, 0, 0, 0, time.UTC)

func newTestStockRouter(client StockClient, opts Options) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewStockHandler(client, &fakeSummarizer{}, opts)
	h.now = func() time.Time { return testNow }
	r.GET("/stocks/news/:symbol", h.GetStockNews)
	r.GET("/stocks/symbols", h.GetSymbols)
	r.GET("/stocks/price/:symbol", h.GetPrice)
	r.GET("/stocks/quote/:symbol", h.GetQuote)
	return r
}

func TestGetStockNews(t *testing.T) {
	var items []news.CompanyNewsItem
	for i := 1; i <= 7; i++ {
		items = append(items, news.CompanyNewsItem{
			ID:       strconv.Itoa(i),
			Headline: "Headline " + strconv.Itoa(i),
			Datetime: time.Unix(1700000000, 0),
			Related:  "AAPL,MSFT",
		})
	}
	items[0].Summary = "Apple beat estimates"
	items[1].ID = ""
	items[1].Related = ""
	items[2].Datetime = time.Time{}

	client := &fakeStockClient{items: items}
	r := newTestStockRouter(client, Options{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/stocks/news/aapl", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "AAPL", client.lastSymbol)
	assert.Equal(t, "2024-05-31", client.lastFrom)
	assert.Equal(t, "2024-06-30", client.lastTo)

	var res []StockNewsResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, 5, len(res))
	assert.Equal(t, []string{"sum: Apple beat estimates"}, res[0].Summary)
	assert.Equal(t, []string{"sum: Headline 2"}, res[1].Summary)
	assert.Equal(t, int64(1700000000000), res[0].Datetime)
	assert.Equal(t, int64(0), res[2].Datetime)
	assert.NotEqual(t, "", res[1].ID)
	assert.Equal(t, "AAPL", res[1].Related)
	assert.Equal(t, "AAPL,MSFT", res[0].Related)
}

func TestGetStockNews_BadDate(t *testing.T) {
	r := newTestStockRouter(&fakeStockClient{}, Options{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/stocks/news/AAPL?from=yesterday", nil))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestGetStockNews_UpstreamError(t *testing.T) {
	r := newTestStockRouter(&fakeStockClient{err: errors.New("429 Too Many Requests")}, Options{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/stocks/news/AAPL", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var res map[string]string
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, "Error fetching stock news", res["message"])
}

func TestGetSymbols_CapsAndCaches(t *testing.T) {
	symbols := make([]news.Symbol, 150)
	for i := range symbols {
		symbols[i] = news.Symbol{Symbol: "S" + strconv.Itoa(i)}
	}
	client := &fakeStockClient{symbols: symbols}
	r := newTestStockRouter(client, Options{Cache: newFakeCache(), CacheTTL: time.Hour})

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest("GET", "/stocks/symbols", nil))
		assert.Equal(t, http.StatusOK, w.Code)

		var res []news.Symbol
		json.Unmarshal(w.Body.Bytes(), &res)
		assert.Equal(t, 100, len(res))
		assert.Equal(t, "S99", res[99].Symbol)
	}

	assert.Equal(t, 1, client.symbolCalls)
}

func TestGetPrice(t *testing.T) {
	client := &fakeStockClient{candles: &news.Candles{
		Close:  []float32{189.5},
		High:   []float32{190},
		Low:    []float32{188},
		Open:   []float32{188.5},
		Status: "ok",
		Time:   []int64{1719705600},
		Volume: []float32{1000},
	}}
	r := newTestStockRouter(client, Options{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/stocks/price/msft", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "MSFT", client.lastSymbol)
	assert.Equal(t, testNow.Add(-30*24*time.Hour), client.lastRange[0])
	assert.Equal(t, testNow, client.lastRange[1])

	var res map[string]any
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, "ok", res["s"])
	assert.Equal(t, []any{189.5}, res["c"])
}

func TestGetQuote(t *testing.T) {
	client := &fakeStockClient{quote: &news.Quote{Current: 190.25, PreviousClose: 188, Change: 2.25, PercentChange: 1.1968}}
	r := newTestStockRouter(client, Options{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("GET", "/stocks/quote/aapl", nil))

	assert.Equal(t, http.StatusOK, w.Code)

	var res QuoteResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, "AAPL", res.Symbol)
	assert.Equal(t, float32(190.25), res.Current)
	assert.Equal(t, float32(2.25), res.Change)
	assert.Equal(t, float32(1.1968), res.PercentChange)
}
