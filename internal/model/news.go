package model

import "time"

const (
	CategoryBusiness = "business"
	CategoryStock    = "stock"
	CategoryGeneral  = "general"
)

// News is an article persisted because a user saved or liked it.
type News struct {
	ID          int64     `json:"_id"`
	ExternalID  string    `json:"id"`
	Title       string    `json:"title"`
	Summary     []string  `json:"summary"`
	Content     string    `json:"content,omitempty"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	PublishedAt time.Time `json:"publishedAt"`
	Source      string    `json:"source"`
	URL         string    `json:"url"`
	Category    string    `json:"category"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func ValidCategory(category string) bool {
	switch category {
	case CategoryBusiness, CategoryStock, CategoryGeneral:
		return true
	}
	return false
}
