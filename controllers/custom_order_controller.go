package controllers

import (
	"encoding/json"
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

// newLifecycleService builds a lifecycle service on the current DB handle and
// payment gateway
func newLifecycleService() *services.LifecycleService {
	return services.NewLifecycleService(config.GetDB(), services.GetRazorpayService())
}

// respondLifecycleError maps lifecycle service failures to HTTP responses
func respondLifecycleError(c *gin.Context, err error) {
	var transitionErr *services.InvalidTransitionError
	if errors.As(err, &transitionErr) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": transitionErr.Error(),
		})
		return
	}

	var lifecycleErr *services.LifecycleError
	if errors.As(err, &lifecycleErr) {
		status := http.StatusBadRequest
		switch lifecycleErr.Code {
		case services.ErrOrderNotFound.Code:
			status = http.StatusNotFound
		case services.ErrNotAuthorized.Code:
			status = http.StatusForbidden
		}
		c.JSON(status, gin.H{
			"success": false,
			"message": lifecycleErr.Message,
		})
		return
	}

	c.JSON(http.StatusInternalServerError, gin.H{
		"success": false,
		"message": "Internal server error",
	})
}

// orderIDParam parses the :orderId path parameter
func orderIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("orderId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Valid order ID is required",
		})
		return 0, false
	}
	return uint(id), true
}

// CreateCustomOrder handles POST /api/custom-order/create - creates a tailoring
// order from multipart form data with up to 5 reference images
func CreateCustomOrder(c *gin.Context) {
	customerID, err := middleware.GetPrincipalID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "Could not extract user information",
		})
		return
	}

	var measurements models.Measurements
	if err := json.Unmarshal([]byte(c.PostForm("measurements")), &measurements); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Valid measurements JSON is required",
		})
		return
	}

	var design models.DesignSpec
	if err := json.Unmarshal([]byte(c.PostForm("design")), &design); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Valid design JSON is required",
		})
		return
	}

	if fieldErrors := utils.ValidateMeasurements(measurements); len(fieldErrors) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid measurements",
			"errors":  fieldErrors,
		})
		return
	}

	if design.Style == "" || design.Fabric == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Design style and fabric are required",
		})
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Invalid multipart form data",
		})
		return
	}

	files := form.File["referenceImages"]
	if err := utils.ValidateReferenceImages(files); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": err.Error(),
		})
		return
	}

	// Upload the reference images before touching the database; a failed
	// upload aborts the whole creation
	assets, err := services.GetImageService().UploadImages(files, "custom-orders")
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
			"message": "Failed to upload reference images",
		})
		return
	}

	imageURLs := make(models.StringSlice, 0, len(assets))
	for _, asset := range assets {
		imageURLs = append(imageURLs, asset.URL)
	}

	order := models.CustomOrder{
		CustomerID:      customerID,
		Measurements:    measurements,
		Design:          design,
		ReferenceImages: imageURLs,
		Status:          models.StatusPending,
		Progress:        0,
		Notes:           c.PostForm("notes"),
	}

	if err := config.GetDB().Create(&order).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to create custom order",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"order":   order,
	})
}

// CheckoutRequest represents the request body for starting payment on an
// accepted custom order
type CheckoutRequest struct {
	ShippingAddress models.ShippingAddress `json:"shippingAddress" binding:"required"`
	PaymentMethod   string                 `json:"paymentMethod" binding:"required"`
}

// CheckoutCustomOrder handles POST /api/custom-order/:orderId/checkout - the
// customer supplies shipping details and a payment method. COD orders go
// straight to production; razorpay orders return a gateway order to pay.
func CheckoutCustomOrder(c *gin.Context) {
	customerID, err := middleware.GetPrincipalID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "Could not extract user information",
		})
		return
	}

	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}

	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Shipping address and payment method are required",
		})
		return
	}

	order, gatewayOrder, err := newLifecycleService().Checkout(orderID, customerID, req.ShippingAddress, req.PaymentMethod)
	if err != nil {
		var lifecycleErr *services.LifecycleError
		if !errors.As(err, &lifecycleErr) {
			c.JSON(http.StatusBadGateway, gin.H{
				"success": false,
				"message": "Payment gateway is unavailable",
			})
			return
		}
		respondLifecycleError(c, err)
		return
	}

	if gatewayOrder != nil {
		c.JSON(http.StatusOK, gin.H{
			"success":      true,
			"order":        order,
			"gatewayOrder": gatewayOrder,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Order accepted successfully (COD)",
		"order":   order,
	})
}

// VerifyPaymentRequest represents the gateway payment confirmation body
type VerifyPaymentRequest struct {
	OrderID           uint   `json:"orderId" binding:"required"`
	RazorpayPaymentID string `json:"razorpay_payment_id" binding:"required"`
	RazorpayOrderID   string `json:"razorpay_order_id" binding:"required"`
	RazorpaySignature string `json:"razorpay_signature" binding:"required"`
}

// VerifyCustomOrderPayment handles POST /api/custom-order/verify-payment -
// signature-verified confirmation of an online payment
func VerifyCustomOrderPayment(c *gin.Context) {
	var req VerifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"message": "Missing required fields for payment verification",
		})
		return
	}

	order, err := newLifecycleService().VerifyPayment(req.OrderID, req.RazorpayPaymentID, req.RazorpayOrderID, req.RazorpaySignature)
	if err != nil {
		respondLifecycleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Payment verified successfully",
		"order":   order,
	})
}

// ListMyCustomOrders handles GET /api/custom-order/my-orders - the customer's orders,
// newest first
func ListMyCustomOrders(c *gin.Context) {
	customerID, err := middleware.GetPrincipalID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "Could not extract user information",
		})
		return
	}

	var orders []models.CustomOrder
	if err := config.GetDB().
		Where("customer_id = ?", customerID).
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

// GetCustomOrderDetails handles GET /api/custom-order/:orderId - owner-scoped
// order details
func GetCustomOrderDetails(c *gin.Context) {
	customerID, err := middleware.GetPrincipalID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "Could not extract user information",
		})
		return
	}

	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}

	var order models.CustomOrder
	if err := config.GetDB().
		Where("id = ? AND customer_id = ?", orderID, customerID).
		First(&order).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"message": "Order not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"order":   order,
	})
}

// CancelCustomOrder handles POST /api/custom-order/:orderId/cancel -
// cancellation of a pre-payment order
func CancelCustomOrder(c *gin.Context) {
	customerID, err := middleware.GetPrincipalID(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"message": "Could not extract user information",
		})
		return
	}

	orderID, ok := orderIDParam(c)
	if !ok {
		return
	}

	order, err := newLifecycleService().Cancel(orderID, customerID)
	if err != nil {
		respondLifecycleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Order cancelled successfully",
		"order":   order,
	})
}
