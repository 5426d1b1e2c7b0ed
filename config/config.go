package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Server Configuration
	ServerPort string

	// Database Configuration
	DatabasePath string

	// Annotator Configuration
	AnnotatorURL     string
	AnnotatorTimeout time.Duration

	// Stopword Configuration
	StopwordsPath string

	// Extraction Cache Configuration (Redis is optional)
	RedisAddr     string
	ExtractionTTL time.Duration

	// Feed Ingest Configuration
	FeedURLs            []string
	FeedRefreshInterval time.Duration

	// Trending Configuration
	RecentWindowDays        int
	MaxGlobalKeywords       int
	MaxCategoryKeywords     int
	GlobalRefreshInterval   time.Duration
	CategoryRefreshInterval time.Duration

	// News Listing Configuration
	MaxArticlesReturn int
}

// defaultFeedURLs seeds the ingest job when FEED_URLS is not set.
var defaultFeedURLs = []string{
	"https://vnexpress.net/rss/the-gioi.rss",
	"https://vnexpress.net/rss/thoi-su.rss",
	"https://vnexpress.net/rss/kinh-doanh.rss",
	"https://vnexpress.net/rss/khoa-hoc.rss",
	"https://vnexpress.net/rss/the-thao.rss",
	"https://vnexpress.net/rss/phap-luat.rss",
	"https://vnexpress.net/rss/giao-duc.rss",
	"https://thanhnien.vn/rss/the-gioi.rss",
	"https://thanhnien.vn/rss/thoi-su.rss",
	"https://thanhnien.vn/rss/kinh-te.rss",
	"https://thanhnien.vn/rss/suc-khoe.rss",
}

func LoadConfig() *Config {
	return &Config{
		ServerPort:              getEnv("PORT", "9999"),
		DatabasePath:            getEnv("DB_PATH", "trends.db"),
		AnnotatorURL:            getEnv("ANNOTATOR_URL", "http://localhost:9000"),
		AnnotatorTimeout:        getEnvDuration("ANNOTATOR_TIMEOUT", 10*time.Second),
		StopwordsPath:           getEnv("STOPWORDS_PATH", "data/vietnamese_stopwords.txt"),
		RedisAddr:               os.Getenv("REDIS_ADDR"),
		ExtractionTTL:           getEnvDuration("EXTRACTION_CACHE_TTL", 6*time.Hour),
		FeedURLs:                getEnvList("FEED_URLS", defaultFeedURLs),
		FeedRefreshInterval:     getEnvDuration("FEED_REFRESH_INTERVAL", 15*time.Minute),
		RecentWindowDays:        getEnvInt("RECENT_WINDOW_DAYS", 7),
		MaxGlobalKeywords:       getEnvInt("MAX_GLOBAL_KEYWORDS", 2000),
		MaxCategoryKeywords:     getEnvInt("MAX_CATEGORY_KEYWORDS", 500),
		GlobalRefreshInterval:   getEnvDuration("GLOBAL_REFRESH_INTERVAL", 3*time.Minute),
		CategoryRefreshInterval: getEnvDuration("CATEGORY_REFRESH_INTERVAL", 20*time.Minute),
		MaxArticlesReturn:       getEnvInt("MAX_ARTICLES", 100),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
