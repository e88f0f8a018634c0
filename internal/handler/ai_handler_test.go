package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/assert/v2"
)

func newTestAIRouter(s Summarizer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/ai/summarize", NewAIHandler(s).Summarize)
	return r
}

func TestSummarize(t *testing.T) {
	r := newTestAIRouter(&fakeSummarizer{})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, jsonRequest("POST", "/ai/summarize", `{"text":"Stocks rallied on Friday."}`))

	assert.Equal(t, http.StatusOK, w.Code)

	var res SummarizeResponse
	json.Unmarshal(w.Body.Bytes(), &res)
	assert.Equal(t, []string{"sum: Stocks rallied on Friday."}, res.Summary)
}

func TestSummarize_TextRequired(t *testing.T) {
	summarizer := &fakeSummarizer{}
	r := newTestAIRouter(summarizer)

	for _, body := range []string{`{}`, `{"text":""}`, `{"text":"   "}`} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, jsonRequest("POST", "/ai/summarize", body))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, `{"message":"Text is required"}`, w.Body.String())
	}
	assert.Equal(t, 0, summarizer.calls)
}
