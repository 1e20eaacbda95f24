package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/stitch-n-style/stitch-n-style-api/config"
	"github.com/stitch-n-style/stitch-n-style-api/middleware"
	"github.com/stitch-n-style/stitch-n-style-api/models"
	"github.com/stitch-n-style/stitch-n-style-api/services"
	"github.com/stitch-n-style/stitch-n-style-api/utils"
)

// AddDesign handles POST /api/design/add - designer publishes a portfolio piece
func AddDesign(c *gin.Context) {
	designerID, err := middleware.GetPrincipalID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "Authentication required",
		})
		return
	}

	name := c.PostForm("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Design name is required",
		})
		return
	}

	price, _ := strconv.ParseFloat(c.PostForm("price"), 64)

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid form data",
		})
		return
	}

	files := form.File["images"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "At least one design image is required",
		})
		return
	}

	assets, err := services.GetImageService().UploadImages(files, "designs")
	if err != nil {
		var uploadErr *utils.FileUploadError
		if errors.As(err, &uploadErr) {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"message": uploadErr.Message,
			})
			return
		}
		c.JSON(http.StatusBadGateway, gin.H{
			"success": false,
			"message": "Failed to upload design images",
		})
		return
	}

	images := make(models.StringSlice, 0, len(assets))
	for _, asset := range assets {
		images = append(images, asset.URL)
	}

	design := models.Design{
		DesignerID: designerID,
		Name:       name,
		Category:   c.PostForm("category"),
		Price:      price,
		Images:     images,
	}

	if err := config.GetDB().Create(&design).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to add design",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Design added successfully",
		"design":  design,
	})
}

// ListDesigns handles GET /api/design/list - the public design gallery
func ListDesigns(c *gin.Context) {
	db := config.GetDB().Order("created_at DESC")
	if category := c.Query("category"); category != "" {
		db = db.Where("category = ?", category)
	}

	var designs []models.Design
	if err := db.Preload("Designer").Find(&designs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to fetch designs",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(designs),
		"designs": designs,
	})
}

// ListMyDesigns handles GET /api/design/my-designs - the signed-in
// designer's own portfolio
func ListMyDesigns(c *gin.Context) {
	designerID, err := middleware.GetPrincipalID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "Authentication required",
		})
		return
	}

	var designs []models.Design
	if err := config.GetDB().
		Where("designer_id = ?", designerID).
		Order("created_at DESC").
		Find(&designs).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to fetch designs",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(designs),
		"designs": designs,
	})
}

// RemoveDesign handles DELETE /api/design/:designId - designer removes one of
// their own portfolio pieces
func RemoveDesign(c *gin.Context) {
	designerID, err := middleware.GetPrincipalID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "Authentication required",
		})
		return
	}

	id, err := strconv.ParseUint(c.Param("designId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Valid design ID is required",
		})
		return
	}

	result := config.GetDB().
		Where("id = ? AND designer_id = ?", id, designerID).
		Delete(&models.Design{})
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to delete design",
		})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": "Design not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Design deleted successfully",
	})
}
