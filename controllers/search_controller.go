package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/stitch-n-style/stitch-n-style-api/config"
	"github.com/stitch-n-style/stitch-n-style-api/models"
)

const suggestionLimit = 5

// Search handles GET /api/search?q= - case-insensitive lookup across
// products and designers
func Search(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Search query is required",
		})
		return
	}

	pattern := "%" + strings.ToLower(query) + "%"

	var products []models.Product
	if err := config.GetDB().
		Where("LOWER(name) LIKE ? OR LOWER(category) LIKE ?", pattern, pattern).
		Order("created_at DESC").
		Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Search failed",
		})
		return
	}

	var designers []models.Designer
	if err := config.GetDB().
		Where("LOWER(name) LIKE ?", pattern).
		Order("is_top_designer DESC").
		Find(&designers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Search failed",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"query":     query,
		"products":  products,
		"designers": designers,
	})
}

// Suggestions handles GET /api/search/suggestions?q= - short typeahead list
// of matching product and designer names
func Suggestions(c *gin.Context) {
	query := strings.TrimSpace(c.Query("q"))
	if query == "" {
		c.JSON(http.StatusOK, gin.H{
			"success":     true,
			"suggestions": []string{},
		})
		return
	}

	pattern := "%" + strings.ToLower(query) + "%"
	suggestions := make([]string, 0, suggestionLimit)

	var productNames []string
	if err := config.GetDB().Model(&models.Product{}).
		Where("LOWER(name) LIKE ?", pattern).
		Order("name ASC").
		Limit(suggestionLimit).
		Pluck("name", &productNames).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to fetch suggestions",
		})
		return
	}
	suggestions = append(suggestions, productNames...)

	if len(suggestions) < suggestionLimit {
		var designerNames []string
		if err := config.GetDB().Model(&models.Designer{}).
			Where("LOWER(name) LIKE ?", pattern).
			Order("name ASC").
			Limit(suggestionLimit-len(suggestions)).
			Pluck("name", &designerNames).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": "Failed to fetch suggestions",
			})
			return
		}
		suggestions = append(suggestions, designerNames...)
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"suggestions": suggestions,
	})
}
