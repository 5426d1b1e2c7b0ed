package models

import (
	"time"
)

// Article represents a news article ingested from an RSS feed.
// PubDate keeps the raw site-specific timestamp string; normalization into
// an absolute time happens at aggregation time, not at ingest.
type Article struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	GUID         string    `gorm:"uniqueIndex:idx_guid" json:"guid"`
	Title        string    `gorm:"index:idx_title" json:"title"`
	Description  string    `json:"description"`
	Link         string    `json:"link"`
	FeedURL      string    `json:"feed_url"`
	PubDate      string    `json:"pub_date"`
	Category     string    `gorm:"index:idx_category" json:"category"`
	DownloadedAt time.Time `gorm:"index:idx_downloaded" json:"downloaded_at"`
}

// CategoryUnknown is the sentinel used when an article carries no category.
const CategoryUnknown = "unknown"

// ArticleResponse is the API-facing article shape.
type ArticleResponse struct {
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Link         string    `json:"link"`
	PubDate      string    `json:"pub_date"`
	Category     string    `json:"category"`
	DownloadedAt time.Time `json:"downloaded_at"`
}

// ToResponse converts an Article to its API representation.
func (a *Article) ToResponse() ArticleResponse {
	return ArticleResponse{
		Title:        a.Title,
		Description:  a.Description,
		Link:         a.Link,
		PubDate:      a.PubDate,
		Category:     a.Category,
		DownloadedAt: a.DownloadedAt,
	}
}
