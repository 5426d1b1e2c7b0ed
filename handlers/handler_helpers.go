package handlers

import (
	"net/http"

	"trends-backend/models"

	"github.com/gin-gonic/gin"
)

// =============================================================================
// Response Helpers
// =============================================================================

// respondError sends the flat {"error": ...} body every endpoint uses.
func respondError(c *gin.Context, code int, message string) {
	c.JSON(code, models.ErrorResponse{Error: message})
}

func respondBadRequest(c *gin.Context, message string) {
	respondError(c, http.StatusBadRequest, message)
}

func respondNotFound(c *gin.Context, message string) {
	respondError(c, http.StatusNotFound, message)
}

func respondInternalError(c *gin.Context, message string) {
	respondError(c, http.StatusInternalServerError, message)
}

// articlesToResponses converts a slice of Articles to their API shape.
func articlesToResponses(articles []models.Article) []models.ArticleResponse {
	responses := make([]models.ArticleResponse, len(articles))
	for i := range articles {
		responses[i] = articles[i].ToResponse()
	}
	return responses
}
