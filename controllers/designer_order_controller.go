package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/stitch-n-style/stitch-n-style-api/config"
	"github.com/stitch-n-style/stitch-n-style-api/middleware"
	"github.com/stitch-n-style/stitch-n-style-api/models"
)

// ListPendingCustomOrders handles GET /api/custom-order/designer/pending - open
// orders any designer may bid on, newest first
func ListPendingCustomOrders(c *gin.Context) {
	var orders []models.CustomOrder
	if err := config.GetDB().
		Where("status = ?", models.StatusPending).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to fetch custom orders",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"orders":  orders,
	})
}

// ListActiveCustomOrders handles GET /api/custom-order/designer/active - the
// requesting designer's in-flight orders
func ListActiveCustomOrders(c *gin.Context) {
	designerID, err := middleware.GetPrincipalID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "Could not extract designer information",
		})
		return
	}

	activeStatuses := []string{
		models.StatusAccepted,
		models.StatusInProgress,
		models.StatusCompleted,
		models.StatusShipped,
	}

	var orders []models.CustomOrder
	if err := config.GetDB().
		Where("assigned_designer_id = ? AND status IN ?", designerID, activeStatuses).
		Order("updated_at DESC").
		Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to fetch accepted orders",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"orders":  orders,
	})
}

// AcceptBidRequest represents the request body for bidding on an order
type AcceptBidRequest struct {
	Price float64 `json:"price" binding:"required,gt=0"`
}

// AcceptCustomOrderBid handles POST /api/custom-order/:orderId/accept -
// the designer sets a price and takes the order
func AcceptCustomOrderBid(c *gin.Context) {
	designerID, err := middleware.GetPrincipalID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "Could not extract designer information",
		})
		return
	}

	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}

	var req AcceptBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Valid price is required",
		})
		return
	}

	order, err := newLifecycleService().AcceptBid(orderID, designerID, req.Price)
	if err != nil {
		respondLifecycleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Order accepted successfully",
		"order":   order,
	})
}

// UpdateProgressRequest represents the request body for progress updates
type UpdateProgressRequest struct {
	Progress *int `json:"progress" binding:"required"`
}

// UpdateCustomOrderProgress handles PUT /api/custom-order/:orderId/progress -
// advances the assigned designer's progress, deriving the status from it
func UpdateCustomOrderProgress(c *gin.Context) {
	designerID, err := middleware.GetPrincipalID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "Could not extract designer information",
		})
		return
	}

	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}

	var req UpdateProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Valid progress percentage (0-100) is required",
		})
		return
	}

	order, err := newLifecycleService().UpdateProgress(orderID, designerID, *req.Progress)
	if err != nil {
		respondLifecycleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Order progress updated successfully",
		"order":   order,
	})
}

// UpdateStatusRequest represents the request body for manual status moves
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateCustomOrderStatus handles PUT /api/custom-order/:orderId/status -
// manual transitions along the lifecycle table (completed -> shipped -> delivered)
func UpdateCustomOrderStatus(c *gin.Context) {
	designerID, err := middleware.GetPrincipalID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "Could not extract designer information",
		})
		return
	}

	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Status is required",
		})
		return
	}

	// Only the assigned designer may drive the order through its lifecycle
	db := config.GetDB()
	var order models.CustomOrder
	if err := db.First(&order, orderID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": "Order not found",
		})
		return
	}
	if order.AssignedDesignerID == nil || *order.AssignedDesignerID != designerID {
		c.JSON(http.StatusForbidden, gin.H{
			"success": false,
			"message": "Not authorized to modify this order",
		})
		return
	}

	updated, err := newLifecycleService().UpdateStatus(orderID, req.Status)
	if err != nil {
		respondLifecycleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Order status updated successfully",
		"order":   updated,
	})
}

// SetTrackingRequest represents the request body for shipment tracking info
type SetTrackingRequest struct {
	TrackingNumber string `json:"trackingNumber" binding:"required"`
	Carrier        string `json:"carrier" binding:"required"`
}

// SetCustomOrderTracking handles PUT /api/custom-order/:orderId/tracking -
// records tracking details; a completed order advances to shipped
func SetCustomOrderTracking(c *gin.Context) {
	designerID, err := middleware.GetPrincipalID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "Could not extract designer information",
		})
		return
	}

	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}

	var req SetTrackingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Tracking number and carrier are required",
		})
		return
	}

	order, err := newLifecycleService().SetTracking(orderID, designerID, req.TrackingNumber, req.Carrier)
	if err != nil {
		respondLifecycleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Tracking information updated successfully",
		"order":   order,
	})
}
