package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/stitch-n-style/stitch-n-style-api/config"
	"github.com/stitch-n-style/stitch-n-style-api/middleware"
	"github.com/stitch-n-style/stitch-n-style-api/models"
	"github.com/stitch-n-style/stitch-n-style-api/services"
)

// portfolioPreviewSize is how many recent designs appear on a public profile
const portfolioPreviewSize = 4

// ListDesigners handles GET /api/designer/list - the public designer
// directory, top designers first
func ListDesigners(c *gin.Context) {
	var designers []models.Designer
	if err := config.GetDB().
		Order("is_top_designer DESC, created_at ASC").
		Find(&designers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to fetch designers",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"count":     len(designers),
		"designers": designers,
	})
}

// GetDesignerDetails handles GET /api/designer/:designerId - public profile
// with a short portfolio preview
func GetDesignerDetails(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("designerId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Valid designer ID is required",
		})
		return
	}

	var designer models.Designer
	if err := config.GetDB().First(&designer, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": "Designer not found",
		})
		return
	}

	var portfolio []models.Design
	if err := config.GetDB().
		Where("designer_id = ?", designer.ID).
		Order("created_at DESC").
		Limit(portfolioPreviewSize).
		Find(&portfolio).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to fetch designer portfolio",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"designer":  designer,
		"portfolio": portfolio,
	})
}

// UpdateDesignerProfileRequest is the body for profile updates
type UpdateDesignerProfileRequest struct {
	Name                   string   `json:"name"`
	Bio                    string   `json:"bio"`
	ProfessionalBackground string   `json:"professional_background"`
	Skills                 []string `json:"skills"`
	Awards                 []string `json:"awards"`
	Experience             *int     `json:"experience"`
	Services               []string `json:"services"`
}

// UpdateDesignerProfile handles PUT /api/designer/profile - the signed-in
// designer edits their own profile
func UpdateDesignerProfile(c *gin.Context) {
	designerID, err := middleware.GetPrincipalID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "Authentication required",
		})
		return
	}

	var req UpdateDesignerProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid request body",
		})
		return
	}

	var designer models.Designer
	if err := config.GetDB().First(&designer, designerID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": "Designer not found",
		})
		return
	}

	if req.Name != "" {
		designer.Name = req.Name
	}
	if req.Bio != "" {
		designer.Bio = req.Bio
	}
	if req.ProfessionalBackground != "" {
		designer.ProfessionalBackground = req.ProfessionalBackground
	}
	if req.Skills != nil {
		designer.Skills = req.Skills
	}
	if req.Awards != nil {
		designer.Awards = req.Awards
	}
	if req.Experience != nil {
		designer.Experience = *req.Experience
	}
	if req.Services != nil {
		designer.Services = req.Services
	}

	if err := config.GetDB().Save(&designer).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to update profile",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "Profile updated successfully",
		"designer": designer,
	})
}

// UpdateDesignerProfileImage handles PUT /api/designer/profile-image -
// multipart upload of a new profile picture
func UpdateDesignerProfileImage(c *gin.Context) {
	designerID, err := middleware.GetPrincipalID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "Authentication required",
		})
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Profile image is required",
		})
		return
	}

	asset, err := services.GetImageService().UploadImage(file, "designers")
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"success": false,
			"message": "Failed to upload profile image",
		})
		return
	}

	if err := config.GetDB().Model(&models.Designer{}).
		Where("id = ?", designerID).
		Update("profile_image", asset.URL).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to update profile image",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"message":       "Profile image updated successfully",
		"profile_image": asset.URL,
	})
}
