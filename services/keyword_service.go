package services

import (
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"unicode/utf8"

	"trends-backend/config"
	"trends-backend/models"
	"trends-backend/utils"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"
)

// Supported aggregation intervals.
const (
	IntervalDay  = "day"
	IntervalWeek = "week"
)

// KeywordService extracts candidate keywords from article titles and
// aggregates them into time buckets across the whole corpus.
type KeywordService struct {
	db        *gorm.DB
	cfg       *config.Config
	annotator Annotator
	stopwords utils.StopwordSet

	// extractionCache memoizes title -> extracted tokens. Redis fronts it
	// when configured so repeated batch scans skip re-annotation across
	// process restarts; otherwise the in-process map alone serves.
	extractionCache sync.Map
	rdb             *redis.Client
}

// NewKeywordService creates a keyword service instance. The Redis client
// is nil when no REDIS_ADDR is configured; extraction then caches
// in-process only.
func NewKeywordService(db *gorm.DB, cfg *config.Config, annotator Annotator, stopwords utils.StopwordSet) *KeywordService {
	var rdb *redis.Client
	if cfg.RedisAddr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	}

	return &KeywordService{
		db:        db,
		cfg:       cfg,
		annotator: annotator,
		stopwords: stopwords,
		rdb:       rdb,
	}
}

// ExtractKeywords converts a title into its filtered keyword tokens. A
// token survives iff it is named-entity tagged or a (proper) noun, longer
// than 2 code points, and not a stopword. Duplicates within a title are
// kept. Annotator failures degrade to an empty result so a single bad
// title never aborts a corpus scan.
func (s *KeywordService) ExtractKeywords(ctx context.Context, title string) []string {
	if title == "" {
		return nil
	}

	if tokens, ok := s.cachedExtraction(ctx, title); ok {
		return tokens
	}

	annotation, err := s.annotator.Annotate(ctx, title)
	if err != nil {
		log.Printf("Annotation failed for title %q: %v", title, err)
		return nil
	}

	tokens := []string{}
	for _, sentence := range annotation.Sentences {
		for _, tok := range sentence {
			nerLabel := tok.NerLabel
			if nerLabel == "" {
				nerLabel = "O"
			}
			if nerLabel == "O" && tok.PosTag != "N" && tok.PosTag != "Np" {
				continue
			}
			if utf8.RuneCountInString(tok.Form) <= 2 {
				continue
			}
			if s.stopwords.Contains(tok.Form) {
				continue
			}
			tokens = append(tokens, tok.Form)
		}
	}

	s.storeExtraction(ctx, title, tokens)
	return tokens
}

// KeywordsByTime scans the corpus and buckets keyword occurrence counts by
// day or ISO week. Articles without a title or a parseable pubDate are
// skipped. This is a full-scan batch operation.
func (s *KeywordService) KeywordsByTime(ctx context.Context, interval string) (map[string]map[string]int, error) {
	if interval != IntervalDay && interval != IntervalWeek {
		return nil, fmt.Errorf("unsupported time interval: choose 'day' or 'week'")
	}

	keywordsByTime := make(map[string]map[string]int)
	scanned := 0
	skipped := 0

	var batch []models.Article
	result := s.db.WithContext(ctx).
		Where("title <> '' AND pub_date <> ''").
		FindInBatches(&batch, 500, func(tx *gorm.DB, _ int) error {
			for _, article := range batch {
				scanned++

				pubDate, err := utils.ParsePubDate(article.PubDate)
				if err != nil {
					log.Printf("Failed to parse pubDate: %s", article.PubDate)
					skipped++
					continue
				}

				bucket := utils.DayBucket(pubDate)
				if interval == IntervalWeek {
					bucket = utils.WeekBucket(pubDate)
				}

				counter := keywordsByTime[bucket]
				if counter == nil {
					counter = make(map[string]int)
					keywordsByTime[bucket] = counter
				}
				for _, keyword := range s.ExtractKeywords(ctx, article.Title) {
					counter[keyword]++
				}
			}
			return nil
		})
	if result.Error != nil {
		return nil, fmt.Errorf("failed to scan articles: %w", result.Error)
	}

	log.Printf("Bucketed %d articles into %d %s intervals (%d unparseable dates skipped)",
		scanned, len(keywordsByTime), interval, skipped)

	return keywordsByTime, nil
}

// cachedExtraction looks up memoized tokens, local map first, then Redis.
func (s *KeywordService) cachedExtraction(ctx context.Context, title string) ([]string, bool) {
	if cached, ok := s.extractionCache.Load(title); ok {
		return cached.([]string), true
	}

	if s.rdb == nil {
		return nil, false
	}
	raw, err := s.rdb.Get(ctx, extractionKey(title)).Result()
	if err != nil {
		if err != redis.Nil {
			log.Printf("Extraction cache read error: %v", err)
		}
		return nil, false
	}

	var tokens []string
	if err := json.Unmarshal([]byte(raw), &tokens); err != nil {
		return nil, false
	}
	s.extractionCache.Store(title, tokens)
	return tokens, true
}

// storeExtraction memoizes a successful extraction. Failed annotations are
// never cached so the next scan retries them.
func (s *KeywordService) storeExtraction(ctx context.Context, title string, tokens []string) {
	s.extractionCache.Store(title, tokens)

	if s.rdb == nil {
		return
	}
	raw, err := json.Marshal(tokens)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, extractionKey(title), raw, s.cfg.ExtractionTTL).Err(); err != nil {
		log.Printf("Extraction cache write error: %v", err)
	}
}

func extractionKey(title string) string {
	return fmt.Sprintf("extract:%x", sha256.Sum256([]byte(title)))
}
