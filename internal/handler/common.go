package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// Summarizer turns free text into bullet points. It never fails; errors
// surface as a fallback bullet.
type Summarizer interface {
	Summarize(ctx context.Context, text string) []string
	SummarizeAll(ctx context.Context, texts []string, limit int) [][]string
}

type Cache interface {
	GetJSON(ctx context.Context, key string, dst any) (bool, error)
	SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error
}

// Options tunes the upstream-backed handlers. A nil Cache disables caching.
type Options struct {
	Cache              Cache
	CacheTTL           time.Duration
	SummaryConcurrency int
}

func serverError(c *gin.Context, message string, err error) {
	slog.Error(message, "error", err, "path", c.FullPath())
	c.JSON(http.StatusInternalServerError, gin.H{"message": message, "error": err.Error()})
}

func cacheGet(ctx context.Context, opts Options, key string, dst any) bool {
	if opts.Cache == nil {
		return false
	}

	found, err := opts.Cache.GetJSON(ctx, key, dst)
	if err != nil {
		slog.Warn("cache read failed", "key", key, "error", err)
		return false
	}
	return found
}

func cacheSet(ctx context.Context, opts Options, key string, v any) {
	if opts.Cache == nil || opts.CacheTTL <= 0 {
		return
	}

	if err := opts.Cache.SetJSON(ctx, key, v, opts.CacheTTL); err != nil {
		slog.Warn("cache write failed", "key", key, "error", err)
	}
}

func getQueryInt(name string, defaultValue int, c *gin.Context) int {
	paramValue := c.Query(name)

	if paramValue == "" {
		return defaultValue
	}

	parsedValue, err := strconv.Atoi(paramValue)
	if err != nil {
		slog.Warn("invalid query parameter, using default", "param", name, "value", paramValue, "error", err)
		return defaultValue
	}

	return parsedValue
}

func getQueryPageSize(c *gin.Context) int {
	const maxPageSize = 100

	pageSize := getQueryInt("pageSize", 0, c)
	if pageSize < 0 {
		slog.Warn("invalid query parameter, using default", "param", "pageSize", "value", pageSize)
		return 0
	}

	if pageSize > maxPageSize {
		slog.Warn("query parameter exceeds max, clamping", "param", "pageSize", "value", pageSize, "max", maxPageSize)
		return maxPageSize
	}

	return pageSize
}
