package services

import (
	"context"
	"fmt"
	"log"
	"sort"
	"time"

	"trends-backend/config"
	"trends-backend/models"
	"trends-backend/utils"

	"gorm.io/gorm"
)

// TrendingService computes trending keyword rankings and owns the
// precomputed snapshots in the store. The scheduler is the only writer;
// the HTTP read path only ever fetches the latest snapshot.
type TrendingService struct {
	db             *gorm.DB
	cfg            *config.Config
	keywordService *KeywordService
}

// NewTrendingService creates a trending service instance.
func NewTrendingService(db *gorm.DB, cfg *config.Config, keywordService *KeywordService) *TrendingService {
	return &TrendingService{
		db:             db,
		cfg:            cfg,
		keywordService: keywordService,
	}
}

// =============================================================================
// Trend Scoring
// =============================================================================

// IdentifyTrending splits interval buckets into a recent window (the last
// recentWindow intervals) and the full remaining history, then ranks every
// keyword present in the recent window by its trending score. When
// recentWindow covers all intervals the history is empty and every score
// falls back to the raw recent count.
func IdentifyTrending(keywordsByTime map[string]map[string]int, recentWindow int) []models.KeywordScore {
	intervals := make([]string, 0, len(keywordsByTime))
	for interval := range keywordsByTime {
		intervals = append(intervals, interval)
	}
	// Bucket keys are "2006-01-02" strings, so lexicographic order is
	// chronological order.
	sort.Strings(intervals)

	split := len(intervals) - recentWindow
	if split < 0 {
		split = 0
	}

	recent := make(map[string]int)
	historical := make(map[string]int)
	for _, interval := range intervals[split:] {
		utils.MergeCounts(recent, keywordsByTime[interval])
	}
	for _, interval := range intervals[:split] {
		utils.MergeCounts(historical, keywordsByTime[interval])
	}

	ranked := utils.RankKeywords(recent, historical)
	scores := make([]models.KeywordScore, len(ranked))
	for i, rk := range ranked {
		scores[i] = models.KeywordScore{Keyword: rk.Keyword, Score: rk.Score}
	}
	return scores
}

// KeywordsByTime exposes the aggregator's interval buckets for the
// on-demand endpoint.
func (s *TrendingService) KeywordsByTime(ctx context.Context, interval string) (map[string]map[string]int, error) {
	return s.keywordService.KeywordsByTime(ctx, interval)
}

// ComputeTrending runs the full aggregation and scoring pipeline on demand.
func (s *TrendingService) ComputeTrending(ctx context.Context, interval string, recentWindow int) ([]models.KeywordScore, error) {
	keywordsByTime, err := s.keywordService.KeywordsByTime(ctx, interval)
	if err != nil {
		return nil, err
	}
	return IdentifyTrending(keywordsByTime, recentWindow), nil
}

// =============================================================================
// Precomputation Jobs
// =============================================================================

// PrecomputeGlobal recomputes the global trending ranking and replaces the
// stored snapshot. The replace runs in one transaction so readers see
// either the old record or the new one, never an empty store.
func (s *TrendingService) PrecomputeGlobal(ctx context.Context) error {
	started := time.Now()
	log.Println("Starting precomputation of trending keywords...")

	ranked, err := s.ComputeTrending(ctx, IntervalDay, s.cfg.RecentWindowDays)
	if err != nil {
		return fmt.Errorf("global precompute failed: %w", err)
	}

	if len(ranked) > s.cfg.MaxGlobalKeywords {
		ranked = ranked[:s.cfg.MaxGlobalKeywords]
	}

	record := models.GlobalRanking{
		Timestamp: time.Now().UTC(),
		Keywords:  ranked,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.GlobalRanking{}).Error; err != nil {
			return err
		}
		return tx.Create(&record).Error
	})
	if err != nil {
		return fmt.Errorf("failed to store global ranking: %w", err)
	}

	log.Printf("Trending keywords precomputation completed: %d keywords in %.2fs",
		len(ranked), time.Since(started).Seconds())
	return nil
}

// PrecomputeCategories recomputes per-category rankings restricted to the
// current global top-keyword set. Documents inside the last 7 days count
// as recent, documents in the 14-to-7-day band as historical, everything
// else is ignored. Articles without a category fall into the "unknown"
// bucket. Skips with a log line when no global snapshot exists yet.
func (s *TrendingService) PrecomputeCategories(ctx context.Context) error {
	started := time.Now()
	log.Println("Starting keyword categorization...")

	global, err := s.LatestGlobal(ctx)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			log.Println("No precomputed keywords available yet, skipping categorization")
			return nil
		}
		return fmt.Errorf("failed to load global ranking: %w", err)
	}
	allowList := global.KeywordSet()
	log.Printf("Categorizing against %d global keywords", len(allowList))

	now := time.Now().UTC()
	recentCutoff := now.AddDate(0, 0, -7)
	historicalCutoff := now.AddDate(0, 0, -14)

	recentByCategory := make(map[string]map[string]int)
	historicalByCategory := make(map[string]map[string]int)

	var batch []models.Article
	result := s.db.WithContext(ctx).
		Where("title <> '' AND pub_date <> ''").
		FindInBatches(&batch, 500, func(tx *gorm.DB, _ int) error {
			for _, article := range batch {
				pubDate, err := utils.ParsePubDate(article.PubDate)
				if err != nil {
					continue
				}

				var target map[string]map[string]int
				switch {
				case !pubDate.Before(recentCutoff):
					target = recentByCategory
				case !pubDate.Before(historicalCutoff):
					target = historicalByCategory
				default:
					continue
				}

				category := article.Category
				if category == "" {
					category = models.CategoryUnknown
				}

				counter := target[category]
				if counter == nil {
					counter = make(map[string]int)
					target[category] = counter
				}

				// Intersection with the allow-list is a set operation:
				// within one title each keyword counts at most once here,
				// unlike the per-occurrence global aggregation.
				seen := make(map[string]struct{})
				for _, keyword := range s.keywordService.ExtractKeywords(ctx, article.Title) {
					if _, ok := allowList[keyword]; !ok {
						continue
					}
					if _, dup := seen[keyword]; dup {
						continue
					}
					seen[keyword] = struct{}{}
					counter[keyword]++
				}
			}
			return nil
		})
	if result.Error != nil {
		return fmt.Errorf("failed to scan articles: %w", result.Error)
	}

	records := make([]models.CategoryRanking, 0, len(recentByCategory))
	timestamp := time.Now().UTC()
	for category, recent := range recentByCategory {
		ranked := utils.RankKeywords(recent, historicalByCategory[category])
		if len(ranked) > s.cfg.MaxCategoryKeywords {
			ranked = ranked[:s.cfg.MaxCategoryKeywords]
		}

		scores := make([]models.KeywordScore, len(ranked))
		for i, rk := range ranked {
			scores[i] = models.KeywordScore{Keyword: rk.Keyword, Score: rk.Score}
		}
		records = append(records, models.CategoryRanking{
			Category:  category,
			Timestamp: timestamp,
			Keywords:  scores,
		})
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.CategoryRanking{}).Error; err != nil {
			return err
		}
		if len(records) == 0 {
			return nil
		}
		return tx.Create(&records).Error
	})
	if err != nil {
		return fmt.Errorf("failed to store category rankings: %w", err)
	}

	log.Printf("Keyword categorization completed: %d categories in %.2fs",
		len(records), time.Since(started).Seconds())
	return nil
}

// =============================================================================
// Snapshot Reads
// =============================================================================

// LatestGlobal returns the most recent global ranking snapshot, or
// gorm.ErrRecordNotFound before the first scheduled run completes.
func (s *TrendingService) LatestGlobal(ctx context.Context) (*models.GlobalRanking, error) {
	var record models.GlobalRanking
	err := s.db.WithContext(ctx).Order("timestamp DESC").First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// CategoryRanking returns the current ranking snapshot for one category,
// or gorm.ErrRecordNotFound when none exists.
func (s *TrendingService) CategoryRanking(ctx context.Context, category string) (*models.CategoryRanking, error) {
	var record models.CategoryRanking
	err := s.db.WithContext(ctx).
		Where("category = ?", category).
		Order("timestamp DESC").
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}
