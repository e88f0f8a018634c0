package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type AIHandler struct {
	summarizer Summarizer
}

func NewAIHandler(summarizer Summarizer) *AIHandler {
	return &AIHandler{summarizer: summarizer}
}

func (h *AIHandler) Summarize(c *gin.Context) {
	var req SummarizeRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Text) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Text is required"})
		return
	}

	c.JSON(http.StatusOK, SummarizeResponse{
		Summary: h.summarizer.Summarize(c.Request.Context(), req.Text),
	})
}
