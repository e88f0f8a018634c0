package news

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultHTTPTimeout = 30 * time.Second

type Article struct {
	ExternalID  string
	Title       string
	Description string
	Content     string
	URL         string
	ImageURL    string
	Source      string
	Publisher   string
	PublishedAt time.Time
	Symbols     []string
}

// HeadlineSource is an upstream the ingestion job can pull headlines from.
type HeadlineSource interface {
	Fetch(ctx context.Context, limit int) ([]Article, error)
	Name() string
}

// ArticleID derives the public id of an article from its URL: the last path
// segment, or a stable hash when the URL ends with a slash.
func ArticleID(url string) string {
	if i := strings.LastIndex(url, "/"); i >= 0 {
		if seg := url[i+1:]; seg != "" {
			return seg
		}
	} else if url != "" {
		return url
	}
	return generateExternalID(url)
}

func generateExternalID(url string) string {
	sum := sha256.Sum256([]byte(url))
	return fmt.Sprintf("%x", sum)[:16]
}

// getJSON issues a GET against endpoint and decodes the body into dst
// regardless of status, since the upstreams report failures in the body.
func getJSON(ctx context.Context, hc *http.Client, endpoint string, params url.Values, dst any) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return 0, fmt.Errorf("request: %w", err)
	}

	resp, err := hc.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(dst); err != nil {
		return resp.StatusCode, fmt.Errorf("decode (status %d): %w", resp.StatusCode, err)
	}

	return resp.StatusCode, nil
}

// parseTime returns the zero time for values that do not match layout.
func parseTime(layout, value string) time.Time {
	t, err := time.Parse(layout, value)
	if err != nil {
		return time.Time{}
	}
	return t
}
