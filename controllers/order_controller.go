package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stitch-n-style/stitch-n-style-api/config"
	"github.com/stitch-n-style/stitch-n-style-api/middleware"
	"github.com/stitch-n-style/stitch-n-style-api/models"
	"github.com/stitch-n-style/stitch-n-style-api/services"
	"gorm.io/gorm"
)

// PlaceOrderRequest represents the request body for placing a standard order
type PlaceOrderRequest struct {
	Items   models.OrderItems      `json:"items" binding:"required"`
	Amount  float64                `json:"amount" binding:"required,gt=0"`
	Address models.ShippingAddress `json:"address" binding:"required"`
}

// PlaceOrderCOD handles POST /api/order/place - places a cash-on-delivery
// order and clears the customer's cart
func PlaceOrderCOD(c *gin.Context) {
	userID, err := middleware.GetPrincipalID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "Could not extract user information",
		})
		return
	}

	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Missing required fields: items, amount, and address are required",
		})
		return
	}

	order := models.Order{
		UserID:        userID,
		Items:         req.Items,
		Amount:        req.Amount,
		Address:       req.Address,
		PaymentMethod: models.OrderPaymentCOD,
		Payment:       false,
		Status:        models.OrderStatusPlaced,
	}

	err = config.GetDB().Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).
			Where("id = ?", userID).
			Update("cart_data", models.CartData{}).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to place order",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Order placed",
		"order":   order,
	})
}

// PlaceOrderStripe handles POST /api/order/stripe - creates the order and a
// hosted checkout session, returning the redirect URL
func PlaceOrderStripe(c *gin.Context) {
	userID, err := middleware.GetPrincipalID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "Could not extract user information",
		})
		return
	}

	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Missing required fields: items, amount, and address are required",
		})
		return
	}

	order := models.Order{
		UserID:        userID,
		Items:         req.Items,
		Amount:        req.Amount,
		Address:       req.Address,
		PaymentMethod: models.OrderPaymentStripe,
		Payment:       false,
		Status:        models.OrderStatusPlaced,
	}
	if err := config.GetDB().Create(&order).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to place order",
		})
		return
	}

	origin := c.GetHeader("Origin")
	if origin == "" {
		origin = config.GetConfig().FrontendOrigin
	}

	session, err := services.GetStripeService().CreateCheckoutSession(order.ID, req.Items, origin)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"success": false,
			"message": "Payment gateway is unavailable",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     true,
		"session_url": session.URL,
		"orderId":     order.ID,
	})
}

// VerifyStripeRequest represents the hosted-checkout callback body
type VerifyStripeRequest struct {
	OrderID uint   `json:"orderId" binding:"required"`
	Success string `json:"success" binding:"required"`
}

// VerifyStripe handles POST /api/order/verify-stripe - the success/cancel
// callback after a hosted checkout. Success marks the order paid and clears
// the cart; cancellation marks the order cancelled (never deletes it).
func VerifyStripe(c *gin.Context) {
	userID, err := middleware.GetPrincipalID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "Could not extract user information",
		})
		return
	}

	var req VerifyStripeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Order ID and success flag are required",
		})
		return
	}

	db := config.GetDB()
	var order models.Order
	if err := db.Where("id = ? AND user_id = ?", req.OrderID, userID).First(&order).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": "Order not found",
		})
		return
	}

	if req.Success != "true" {
		if err := db.Model(&order).Update("status", models.OrderStatusCancelled).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{
				"success": false,
				"message": "Failed to update order",
			})
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": false})
		return
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&order).Updates(map[string]interface{}{
			"payment": true,
			"status":  models.OrderStatusProcessing,
		}).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).
			Where("id = ?", userID).
			Update("cart_data", models.CartData{}).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to confirm payment",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// PlaceOrderRazorpay handles POST /api/order/razorpay - creates the order and
// a gateway order whose id the client pays against
func PlaceOrderRazorpay(c *gin.Context) {
	userID, err := middleware.GetPrincipalID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "Could not extract user information",
		})
		return
	}

	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Missing required fields: items, amount, and address are required",
		})
		return
	}

	order := models.Order{
		UserID:        userID,
		Items:         req.Items,
		Amount:        req.Amount,
		Address:       req.Address,
		PaymentMethod: models.OrderPaymentRazorpay,
		Payment:       false,
		Status:        models.OrderStatusPlaced,
	}
	if err := config.GetDB().Create(&order).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to place order",
		})
		return
	}

	gatewayOrder, err := services.GetRazorpayService().CreateOrder(req.Amount, fmt.Sprintf("order-%d", order.ID))
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{
			"success": false,
			"message": "Payment gateway is unavailable",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"order":   gatewayOrder,
		"orderId": order.ID,
	})
}

// VerifyRazorpayOrderPayment handles POST /api/order/verify-razorpay -
// signature-verified confirmation for a standard order. Replays against an
// already-paid order are rejected before any state changes.
func VerifyRazorpayOrderPayment(c *gin.Context) {
	var req VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Missing required fields for payment verification",
		})
		return
	}

	db := config.GetDB()
	var order models.Order
	if err := db.First(&order, req.OrderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"message": "Order not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to load order",
		})
		return
	}

	if order.Payment {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Order has already been paid",
		})
		return
	}

	if !services.GetRazorpayService().VerifySignature(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid payment signature",
		})
		return
	}

	// Payment flag and cart clear commit together
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&order).Updates(map[string]interface{}{
			"payment":           true,
			"payment_id":        req.RazorpayPaymentID,
			"payment_order_id":  req.RazorpayOrderID,
			"payment_signature": req.RazorpaySignature,
			"status":            models.OrderStatusProcessing,
		}).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).
			Where("id = ?", order.UserID).
			Update("cart_data", models.CartData{}).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "An error occurred during payment verification",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Payment verified successfully",
		"orderId": order.ID,
	})
}

// ListUserOrders handles GET /api/order/user-orders - the authenticated user's orders
func ListUserOrders(c *gin.Context) {
	userID, err := middleware.GetPrincipalID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "Could not extract user information",
		})
		return
	}

	var orders []models.Order
	if err := config.GetDB().
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to fetch orders",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"orders":  orders,
	})
}

// ListAllOrders handles GET /api/order/list - all orders, for the admin panel
func ListAllOrders(c *gin.Context) {
	var orders []models.Order
	if err := config.GetDB().Order("created_at DESC").Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to fetch orders",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"orders":  orders,
	})
}

// UpdateOrderStatusRequest represents the admin status update body
type UpdateOrderStatusRequest struct {
	OrderID uint   `json:"orderId" binding:"required"`
	Status  string `json:"status" binding:"required"`
}

// UpdateOrderStatus handles POST /api/order/status - admin status updates for
// standard orders
func UpdateOrderStatus(c *gin.Context) {
	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Order ID and status are required",
		})
		return
	}

	validStatuses := map[string]bool{
		models.OrderStatusPlaced:     true,
		models.OrderStatusProcessing: true,
		models.OrderStatusShipped:    true,
		models.OrderStatusDelivered:  true,
		models.OrderStatusCancelled:  true,
	}
	if !validStatuses[req.Status] {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid status value",
		})
		return
	}

	db := config.GetDB()
	result := db.Model(&models.Order{}).Where("id = ?", req.OrderID).Update("status", req.Status)
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to update order status",
		})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": "Order not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Order status updated",
	})
}
