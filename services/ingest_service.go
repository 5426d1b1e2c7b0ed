package services

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"time"

	"trends-backend/config"
	"trends-backend/models"

	"github.com/mmcdole/gofeed"
	"gorm.io/gorm"
)

// categoryPattern extracts the editorial category from a feed URL,
// e.g. "https://vnexpress.net/rss/the-gioi.rss" -> "the-gioi".
var categoryPattern = regexp.MustCompile(`/([^/]+)\.rss$`)

// IngestService polls the configured RSS feeds and stores new articles.
// The raw pubDate string is kept untouched; normalization is the
// aggregation pipeline's job.
type IngestService struct {
	db     *gorm.DB
	cfg    *config.Config
	parser *gofeed.Parser
}

// NewIngestService creates an ingest service instance.
func NewIngestService(db *gorm.DB, cfg *config.Config) *IngestService {
	return &IngestService{
		db:     db,
		cfg:    cfg,
		parser: gofeed.NewParser(),
	}
}

// FetchFeeds downloads every configured feed once and inserts articles not
// seen before. A failing feed is logged and skipped; the run only errors
// when the store itself is unreachable.
func (s *IngestService) FetchFeeds(ctx context.Context) error {
	inserted := 0

	for _, feedURL := range s.cfg.FeedURLs {
		feed, err := s.parser.ParseURLWithContext(feedURL, ctx)
		if err != nil {
			log.Printf("RSS error for %s: %v", feedURL, err)
			continue
		}

		category := CategoryFromFeedURL(feedURL)

		for _, item := range feed.Items {
			guid := item.GUID
			if guid == "" {
				guid = item.Link
			}
			if guid == "" {
				continue
			}

			var exists int64
			err := s.db.WithContext(ctx).
				Model(&models.Article{}).
				Where("guid = ?", guid).
				Count(&exists).Error
			if err != nil {
				return fmt.Errorf("duplicate check failed: %w", err)
			}
			if exists > 0 {
				continue
			}

			article := models.Article{
				GUID:         guid,
				Title:        item.Title,
				Description:  item.Description,
				Link:         item.Link,
				FeedURL:      feedURL,
				PubDate:      item.Published,
				Category:     category,
				DownloadedAt: time.Now().UTC(),
			}
			if err := s.db.WithContext(ctx).Create(&article).Error; err != nil {
				log.Printf("Insert failed for guid %s: %v", guid, err)
				continue
			}
			inserted++
		}
	}

	log.Printf("Feed ingest completed: %d new articles from %d feeds",
		inserted, len(s.cfg.FeedURLs))
	return nil
}

// CategoryFromFeedURL derives the editorial category from the feed URL,
// falling back to the unknown sentinel.
func CategoryFromFeedURL(feedURL string) string {
	if m := categoryPattern.FindStringSubmatch(feedURL); m != nil {
		return m[1]
	}
	return models.CategoryUnknown
}
