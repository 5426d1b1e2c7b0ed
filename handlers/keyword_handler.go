package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"trends-backend/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type KeywordHandler struct {
	trendingService *services.TrendingService
	recentWindow    int
	maxKeywords     int
}

// NewKeywordHandler creates a keyword handler.
func NewKeywordHandler(trendingService *services.TrendingService, recentWindow, maxKeywords int) *KeywordHandler {
	return &KeywordHandler{
		trendingService: trendingService,
		recentWindow:    recentWindow,
		maxKeywords:     maxKeywords,
	}
}

// GetTrendingKeywords serves the precomputed global ranking.
// GET /api/trending_keywords
func (h *KeywordHandler) GetTrendingKeywords(c *gin.Context) {
	record, err := h.trendingService.LatestGlobal(c.Request.Context())
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			respondNotFound(c, "No precomputed keywords available.")
			return
		}
		respondInternalError(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"timestamp": record.Timestamp,
		"keywords":  record.Keywords,
	})
}

// GetKeywordsByCategory serves the precomputed ranking for one category.
// GET /api/keywords_by_category?category=the-gioi
func (h *KeywordHandler) GetKeywordsByCategory(c *gin.Context) {
	category := c.Query("category")
	if category == "" {
		respondBadRequest(c, "Category parameter is required.")
		return
	}

	record, err := h.trendingService.CategoryRanking(c.Request.Context(), category)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			respondNotFound(c, fmt.Sprintf("No keywords found for category: %s.", category))
			return
		}
		respondInternalError(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"category":  record.Category,
		"timestamp": record.Timestamp,
		"keywords":  record.Keywords,
	})
}

// GetKeywordsByTime recomputes the interval buckets on demand. Synchronous
// and uncached; the precomputed snapshots are not involved.
// GET /api/keywords_by_time?time_interval=day|week
func (h *KeywordHandler) GetKeywordsByTime(c *gin.Context) {
	interval := c.DefaultQuery("time_interval", services.IntervalDay)

	keywordsByTime, err := h.trendingService.KeywordsByTime(c.Request.Context(), interval)
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"keywords_by_time": keywordsByTime})
}

// GetTop10Keywords recomputes trending keywords on demand and returns the
// top 10.
// GET /api/top_10_keywords?time_interval=day&recent_days=7
func (h *KeywordHandler) GetTop10Keywords(c *gin.Context) {
	h.serveTopKeywords(c, 10)
}

// GetTopKeywords recomputes trending keywords on demand and returns the
// top N.
// GET /api/top_keywords?limit=50&time_interval=day&recent_days=7
func (h *KeywordHandler) GetTopKeywords(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit <= 0 {
		respondBadRequest(c, "Limit must be a positive integer.")
		return
	}
	if limit > h.maxKeywords {
		limit = h.maxKeywords
	}
	h.serveTopKeywords(c, limit)
}

func (h *KeywordHandler) serveTopKeywords(c *gin.Context, limit int) {
	interval := c.DefaultQuery("time_interval", services.IntervalDay)

	recentDays := h.recentWindow
	if raw := c.Query("recent_days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			respondBadRequest(c, "recent_days must be a positive integer.")
			return
		}
		recentDays = parsed
	}

	ranked, err := h.trendingService.ComputeTrending(c.Request.Context(), interval, recentDays)
	if err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	c.JSON(http.StatusOK, gin.H{"top_keywords": ranked})
}
