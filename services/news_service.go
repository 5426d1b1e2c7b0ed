package services

import (
	"context"
	"strings"

	"trends-backend/config"
	"trends-backend/models"

	"gorm.io/gorm"
)

// NewsService serves article browsing queries. It is read-only over the
// corpus the ingest job maintains.
type NewsService struct {
	db  *gorm.DB
	cfg *config.Config
}

// NewNewsService creates a news service instance.
func NewNewsService(db *gorm.DB, cfg *config.Config) *NewsService {
	return &NewsService{
		db:  db,
		cfg: cfg,
	}
}

// editorialCategories is the fixed set exposed by the categories endpoint.
var editorialCategories = map[string]struct{}{
	"the-gioi":   {},
	"thoi-su":    {},
	"kinh-te":    {},
	"kinh-doanh": {},
	"giai-tri":   {},
	"the-thao":   {},
	"phap-luat":  {},
	"giao-duc":   {},
	"suc-khoe":   {},
	"du-lich":    {},
	"khoa-hoc":   {},
	"cong-nghe":  {},
	"xe":         {},
	"van-hoa":    {},
	"doi-song":   {},
}

// Categories returns the distinct article categories present in the store,
// filtered to the editorial set.
func (s *NewsService) Categories(ctx context.Context) ([]string, error) {
	var categories []string
	err := s.db.WithContext(ctx).
		Model(&models.Article{}).
		Distinct("category").
		Order("category").
		Pluck("category", &categories).Error
	if err != nil {
		return nil, err
	}

	filtered := make([]string, 0, len(categories))
	for _, c := range categories {
		if _, ok := editorialCategories[c]; ok {
			filtered = append(filtered, c)
		}
	}
	return filtered, nil
}

// ByCategory returns the newest articles in one category.
func (s *NewsService) ByCategory(ctx context.Context, category string) ([]models.Article, error) {
	var articles []models.Article
	err := s.db.WithContext(ctx).
		Where("category = ?", category).
		Order("downloaded_at DESC").
		Limit(s.cfg.MaxArticlesReturn).
		Find(&articles).Error
	return articles, err
}

// Search matches a keyword against title and description,
// case-insensitively.
func (s *NewsService) Search(ctx context.Context, keyword string) ([]models.Article, error) {
	pattern := "%" + strings.ToLower(keyword) + "%"
	var articles []models.Article
	err := s.db.WithContext(ctx).
		Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern).
		Order("downloaded_at DESC").
		Limit(s.cfg.MaxArticlesReturn).
		Find(&articles).Error
	return articles, err
}

// All returns the newest articles across every category.
func (s *NewsService) All(ctx context.Context) ([]models.Article, error) {
	var articles []models.Article
	err := s.db.WithContext(ctx).
		Order("downloaded_at DESC").
		Limit(s.cfg.MaxArticlesReturn).
		Find(&articles).Error
	return articles, err
}
