package services

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"trends-backend/config"
	"trends-backend/models"
)

func TestCategoryFromFeedURL(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want string
	}{
		{
			name: "Category in path",
			url:  "https://vnexpress.net/rss/the-gioi.rss",
			want: "the-gioi",
		},
		{
			name: "Nested path",
			url:  "https://nhandan.vn/rss/khoahoc-congnghe-1292.rss",
			want: "khoahoc-congnghe-1292",
		},
		{
			name: "No rss suffix",
			url:  "https://example.com/feed.xml",
			want: models.CategoryUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CategoryFromFeedURL(tt.url); got != tt.want {
				t.Errorf("CategoryFromFeedURL(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}

const testFeedXML = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Thời sự</title>
    <item>
      <title>Bầu cử quốc hội khóa mới</title>
      <link>https://example.com/a1</link>
      <guid>guid-1</guid>
      <description>Tin bầu cử</description>
      <pubDate>Mon, 15 Jan 2024 14:30:00 +0700</pubDate>
    </item>
    <item>
      <title>Giá xăng tăng</title>
      <link>https://example.com/a2</link>
      <guid>guid-2</guid>
      <description>Tin kinh tế</description>
      <pubDate>Mon, 15 Jan 2024 09:00:00 GMT+7</pubDate>
    </item>
  </channel>
</rss>`

func TestFetchFeeds_InsertsAndDeduplicates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		fmt.Fprint(w, testFeedXML)
	}))
	defer server.Close()

	db := newTestDB(t)
	cfg := &config.Config{FeedURLs: []string{server.URL + "/thoi-su.rss"}}
	svc := NewIngestService(db, cfg)

	if err := svc.FetchFeeds(context.Background()); err != nil {
		t.Fatalf("FetchFeeds error: %v", err)
	}

	var articles []models.Article
	if err := db.Order("guid").Find(&articles).Error; err != nil {
		t.Fatal(err)
	}
	if len(articles) != 2 {
		t.Fatalf("expected 2 articles, got %d", len(articles))
	}

	first := articles[0]
	if first.GUID != "guid-1" {
		t.Errorf("guid = %q, want guid-1", first.GUID)
	}
	if first.Category != "thoi-su" {
		t.Errorf("category = %q, want thoi-su", first.Category)
	}
	// The raw pubDate string is stored untouched.
	if first.PubDate != "Mon, 15 Jan 2024 14:30:00 +0700" {
		t.Errorf("pubDate = %q, want raw feed value", first.PubDate)
	}

	// A second run over the same feed inserts nothing new.
	if err := svc.FetchFeeds(context.Background()); err != nil {
		t.Fatalf("second FetchFeeds error: %v", err)
	}
	var count int64
	db.Model(&models.Article{}).Count(&count)
	if count != 2 {
		t.Errorf("expected 2 articles after rerun, got %d", count)
	}
}

func TestFetchFeeds_BadFeedSkipped(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	db := newTestDB(t)
	cfg := &config.Config{FeedURLs: []string{server.URL + "/broken.rss"}}
	svc := NewIngestService(db, cfg)

	if err := svc.FetchFeeds(context.Background()); err != nil {
		t.Fatalf("a failing feed must not fail the run: %v", err)
	}
}
