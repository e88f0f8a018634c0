package handler

import (
	"bizinsights/internal/model"
	"time"
)

type NewsArticleResponse struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Summary     []string `json:"summary"`
	Content     string   `json:"content"`
	ImageURL    string   `json:"imageUrl"`
	PublishedAt string   `json:"publishedAt"`
	Source      string   `json:"source"`
	URL         string   `json:"url"`
}

type SaveNewsRequest struct {
	NewsID string `json:"newsId"`
	UserID string `json:"userId"`
}

type StockNewsResponse struct {
	ID       string   `json:"id"`
	Headline string   `json:"headline"`
	Summary  []string `json:"summary"`
	ImageURL string   `json:"imageUrl"`
	Datetime int64    `json:"datetime"`
	Source   string   `json:"source"`
	URL      string   `json:"url"`
	Related  string   `json:"related"`
}

type QuoteResponse struct {
	Symbol        string  `json:"symbol"`
	Current       float32 `json:"current"`
	Open          float32 `json:"open"`
	High          float32 `json:"high"`
	Low           float32 `json:"low"`
	PreviousClose float32 `json:"previousClose"`
	Change        float32 `json:"change"`
	PercentChange float32 `json:"percentChange"`
}

type CreateUserRequest struct {
	UID         string `json:"uid"`
	Email       string `json:"email"`
	DisplayName string `json:"displayName"`
	PhotoURL    string `json:"photoURL"`
}

type UpdateProfileRequest struct {
	DisplayName   string                    `json:"displayName"`
	Notifications *model.NotificationsPatch `json:"notifications"`
}

type SummarizeRequest struct {
	Text string `json:"text"`
}

type SummarizeResponse struct {
	Summary []string `json:"summary"`
}

// unixMilli reports t in epoch milliseconds, or 0 when t is unset.
func unixMilli(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}
	return t.UnixMilli()
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
