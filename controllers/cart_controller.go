package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stitch-n-style/stitch-n-style-api/config"
	"github.com/stitch-n-style/stitch-n-style-api/middleware"
	"github.com/stitch-n-style/stitch-n-style-api/models"
)

// CartItemRequest identifies one product/size entry in the cart
type CartItemRequest struct {
	ItemID   string `json:"itemId" binding:"required"`
	Size     string `json:"size" binding:"required"`
	Quantity *int   `json:"quantity"`
}

func loadCartUser(c *gin.Context) (*models.User, bool) {
	userID, err := middleware.GetPrincipalID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "Authentication required",
		})
		return nil, false
	}

	var user models.User
	if err := config.GetDB().First(&user, userID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": "User not found",
		})
		return nil, false
	}

	if user.CartData == nil {
		user.CartData = models.CartData{}
	}
	return &user, true
}

func saveCart(c *gin.Context, user *models.User) {
	if err := config.GetDB().Model(&models.User{}).
		Where("id = ?", user.ID).
		Update("cart_data", user.CartData).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to update cart",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"message":  "Cart updated",
		"cartData": user.CartData,
	})
}

// AddToCart handles POST /api/cart/add - increments the quantity for a
// product/size pair
func AddToCart(c *gin.Context) {
	var req CartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Item ID and size are required",
		})
		return
	}

	user, ok := loadCartUser(c)
	if !ok {
		return
	}

	if user.CartData[req.ItemID] == nil {
		user.CartData[req.ItemID] = map[string]int{}
	}
	user.CartData[req.ItemID][req.Size]++

	saveCart(c, user)
}

// UpdateCart handles POST /api/cart/update - sets an exact quantity; zero
// removes the entry
func UpdateCart(c *gin.Context) {
	var req CartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Quantity == nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Item ID, size and quantity are required",
		})
		return
	}
	if *req.Quantity < 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Quantity cannot be negative",
		})
		return
	}

	user, ok := loadCartUser(c)
	if !ok {
		return
	}

	if *req.Quantity == 0 {
		if sizes, exists := user.CartData[req.ItemID]; exists {
			delete(sizes, req.Size)
			if len(sizes) == 0 {
				delete(user.CartData, req.ItemID)
			}
		}
	} else {
		if user.CartData[req.ItemID] == nil {
			user.CartData[req.ItemID] = map[string]int{}
		}
		user.CartData[req.ItemID][req.Size] = *req.Quantity
	}

	saveCart(c, user)
}

// GetCart handles GET /api/cart/get - returns the user's current cart
func GetCart(c *gin.Context) {
	user, ok := loadCartUser(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"cartData": user.CartData,
	})
}
