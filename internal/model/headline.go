package model

import "time"

// Headline is one document of a daily bucket.
type Headline struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	ImageURL    *string   `json:"imageUrl"`
	PublishedAt time.Time `json:"publishedAt"`
	SavedAt     time.Time `json:"savedAt"`
}
