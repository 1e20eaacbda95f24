package controllers

import (
	"errors"
	"net/http"
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/stitch-n-style/stitch-n-style-api/config"
	"github.com/stitch-n-style/stitch-n-style-api/models"
	"github.com/stitch-n-style/stitch-n-style-api/services"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// RegisterRequest represents the request body for user and designer registration
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest represents the request body for all login endpoints
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// isStrongPassword requires at least 8 characters with upper, lower, digit
// and special characters
func isStrongPassword(password string) bool {
	if len(password) < 8 {
		return false
	}
	var upper, lower, digit, special bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			special = true
		}
	}
	return upper && lower && digit && special
}

// RegisterUser handles POST /api/user/register - creates a customer account
func RegisterUser(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Name, email and password are required",
		})
		return
	}

	if !isStrongPassword(req.Password) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Password must be at least 8 characters and include uppercase, lowercase, number, and special character",
		})
		return
	}

	db := config.GetDB()
	var existing models.User
	if err := db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "User already exists",
		})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to register user",
		})
		return
	}

	user := models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		Role:         "customer",
		CartData:     models.CartData{},
	}
	if err := db.Create(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to register user",
		})
		return
	}

	token, err := services.NewTokenService(config.GetConfig()).Issue(user.ID, services.PrincipalUser)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to issue token",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"token":   token,
		"message": "User registered successfully",
	})
}

// LoginUser handles POST /api/user/login - authenticates a customer
func LoginUser(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Email and password are required",
		})
		return
	}

	db := config.GetDB()
	var user models.User
	if err := db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "User doesn't exist",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to log in",
		})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid credentials",
		})
		return
	}

	token, err := services.NewTokenService(config.GetConfig()).Issue(user.ID, services.PrincipalUser)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to issue token",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"token":    token,
		"userType": "user",
	})
}

// RegisterDesigner handles POST /api/designer/register
func RegisterDesigner(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Name, email and password are required",
		})
		return
	}

	if !isStrongPassword(req.Password) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Password must be at least 8 characters and include uppercase, lowercase, number, and special character",
		})
		return
	}

	db := config.GetDB()
	var existing models.Designer
	if err := db.Where("email = ?", req.Email).First(&existing).Error; err == nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Designer already exists",
		})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to register designer",
		})
		return
	}

	designer := models.Designer{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
	}
	if err := db.Create(&designer).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to register designer",
		})
		return
	}

	token, err := services.NewTokenService(config.GetConfig()).Issue(designer.ID, services.PrincipalDesigner)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to issue token",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"token":   token,
		"message": "Designer registered successfully",
	})
}

// LoginDesigner handles POST /api/designer/login
func LoginDesigner(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Email and password are required",
		})
		return
	}

	db := config.GetDB()
	var designer models.Designer
	if err := db.Where("email = ?", req.Email).First(&designer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "Designer not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to log in",
		})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(designer.PasswordHash), []byte(req.Password)); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid credentials",
		})
		return
	}

	token, err := services.NewTokenService(config.GetConfig()).Issue(designer.ID, services.PrincipalDesigner)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to issue token",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"token":    token,
		"userType": "designer",
	})
}

// AdminLogin handles POST /api/user/admin - authenticates against the
// configured admin credentials
func AdminLogin(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Email and password are required",
		})
		return
	}

	cfg := config.GetConfig()
	if cfg.AdminEmail == "" || req.Email != cfg.AdminEmail || req.Password != cfg.AdminPassword {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "Invalid admin credentials",
		})
		return
	}

	token, err := services.NewTokenService(cfg).Issue(0, services.PrincipalAdmin)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to issue token",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   token,
	})
}
