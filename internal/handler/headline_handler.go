package handler

import (
	"bizinsights/internal/model"
	"bizinsights/internal/repository"
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type HeadlineStore interface {
	List(ctx context.Context, bucket string) ([]model.Headline, error)
	Buckets(ctx context.Context) ([]string, error)
}

// HeadlineHandler serves the daily buckets written by the ingestion job.
type HeadlineHandler struct {
	repository HeadlineStore
}

func NewHeadlineHandler(repository HeadlineStore) *HeadlineHandler {
	return &HeadlineHandler{repository: repository}
}

func (h *HeadlineHandler) GetBuckets(c *gin.Context) {
	buckets, err := h.repository.Buckets(c.Request.Context())
	if err != nil {
		serverError(c, "Error fetching headline buckets", err)
		return
	}

	c.JSON(http.StatusOK, buckets)
}

func (h *HeadlineHandler) GetHeadlines(c *gin.Context) {
	headlines, err := h.repository.List(c.Request.Context(), c.Param("bucket"))
	if errors.Is(err, repository.ErrInvalidBucket) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Bucket must be a YYYYMMDD date"})
		return
	}
	if errors.Is(err, repository.ErrBucketNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"message": "Bucket not found"})
		return
	}
	if err != nil {
		serverError(c, "Error fetching headlines", err)
		return
	}

	c.JSON(http.StatusOK, headlines)
}
