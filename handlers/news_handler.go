package handlers

import (
	"net/http"

	"trends-backend/services"

	"github.com/gin-gonic/gin"
)

type NewsHandler struct {
	newsService *services.NewsService
}

// NewNewsHandler creates a news handler.
func NewNewsHandler(newsService *services.NewsService) *NewsHandler {
	return &NewsHandler{
		newsService: newsService,
	}
}

// GetCategories lists the editorial categories present in the corpus.
// GET /api/news/categories
func (h *NewsHandler) GetCategories(c *gin.Context) {
	categories, err := h.newsService.Categories(c.Request.Context())
	if err != nil {
		respondInternalError(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, categories)
}

// GetByCategory lists articles in one category.
// GET /api/news?category=the-gioi
func (h *NewsHandler) GetByCategory(c *gin.Context) {
	category := c.Query("category")
	if category == "" {
		respondBadRequest(c, "Category parameter is required.")
		return
	}

	articles, err := h.newsService.ByCategory(c.Request.Context(), category)
	if err != nil {
		respondInternalError(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, articlesToResponses(articles))
}

// Search matches a keyword against article titles and descriptions.
// GET /api/news/search?q=...
func (h *NewsHandler) Search(c *gin.Context) {
	keyword := c.Query("q")
	if keyword == "" {
		respondBadRequest(c, "Missing search keyword")
		return
	}

	articles, err := h.newsService.Search(c.Request.Context(), keyword)
	if err != nil {
		respondInternalError(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, articlesToResponses(articles))
}

// GetAll lists the newest articles across all categories.
// GET /api/news/all
func (h *NewsHandler) GetAll(c *gin.Context) {
	articles, err := h.newsService.All(c.Request.Context())
	if err != nil {
		respondInternalError(c, err.Error())
		return
	}
	c.JSON(http.StatusOK, articlesToResponses(articles))
}
