package controllers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stitch-n-style/stitch-n-style-api/models"
	"github.com/stitch-n-style/stitch-n-style-api/services"
)

func orderRouter(userID uint) *gin.Engine {
	router := gin.New()
	auth := asPrincipal(userID, services.PrincipalUser)
	router.POST("/api/order/place", auth, PlaceOrderCOD)
	router.POST("/api/order/stripe", auth, PlaceOrderStripe)
	router.POST("/api/order/verify-stripe", auth, VerifyStripe)
	router.POST("/api/order/razorpay", auth, PlaceOrderRazorpay)
	router.POST("/api/order/verify-razorpay", auth, VerifyRazorpayOrderPayment)
	router.GET("/api/order/user-orders", auth, ListUserOrders)
	return router
}

func sampleOrderRequest() PlaceOrderRequest {
	return PlaceOrderRequest{
		Items: models.OrderItems{
			{ProductID: 1, Name: "Kurta", Price: 1200, Size: "M", Quantity: 2},
		},
		Amount: 2400,
		Address: models.ShippingAddress{
			FirstName: "Asha", LastName: "Rao", AddressLine1: "12 MG Road",
			City: "Bengaluru", State: "KA", PostalCode: "560001", Country: "IN",
		},
	}
}

func TestPlaceOrderCOD(t *testing.T) {
	t.Run("creates the order and clears the cart", func(t *testing.T) {
		db, _ := setupControllerTest(t)
		user := createUser(t, db, "buyer@example.com")
		router := orderRouter(user.ID)

		w := jsonRequest(router, http.MethodPost, "/api/order/place", sampleOrderRequest())
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

		var order models.Order
		require.NoError(t, db.First(&order).Error)
		assert.Equal(t, models.OrderPaymentCOD, order.PaymentMethod)
		assert.False(t, order.Payment)
		assert.Equal(t, models.OrderStatusPlaced, order.Status)
		assert.Len(t, order.Items, 1)

		var reloaded models.User
		require.NoError(t, db.First(&reloaded, user.ID).Error)
		assert.Empty(t, reloaded.CartData)
	})

	t.Run("missing fields are rejected", func(t *testing.T) {
		db, _ := setupControllerTest(t)
		user := createUser(t, db, "buyer@example.com")
		router := orderRouter(user.ID)

		w := jsonRequest(router, http.MethodPost, "/api/order/place", gin.H{"amount": 100})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestPlaceOrderStripe(t *testing.T) {
	t.Run("returns a hosted checkout URL", func(t *testing.T) {
		db, _ := setupControllerTest(t)
		user := createUser(t, db, "buyer@example.com")
		router := orderRouter(user.ID)

		w := jsonRequest(router, http.MethodPost, "/api/order/stripe", sampleOrderRequest())
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		resp := parseResponse(t, w)
		assert.NotEmpty(t, resp["session_url"])
		assert.NotZero(t, resp["orderId"])
	})

	t.Run("gateway outage returns 502", func(t *testing.T) {
		db, _ := setupControllerTest(t)
		user := createUser(t, db, "buyer@example.com")
		stripeMock := services.NewMockStripeService()
		stripeMock.FailSessions(true)
		stripeMock.SetAsMockForTesting()
		router := orderRouter(user.ID)

		w := jsonRequest(router, http.MethodPost, "/api/order/stripe", sampleOrderRequest())
		assert.Equal(t, http.StatusBadGateway, w.Code)
	})
}

func TestVerifyStripe(t *testing.T) {
	placeStripeOrder := func(t *testing.T, router *gin.Engine) uint {
		w := jsonRequest(router, http.MethodPost, "/api/order/stripe", sampleOrderRequest())
		require.Equal(t, http.StatusOK, w.Code)
		resp := parseResponse(t, w)
		return uint(resp["orderId"].(float64))
	}

	t.Run("success marks the order paid and clears the cart", func(t *testing.T) {
		db, _ := setupControllerTest(t)
		user := createUser(t, db, "buyer@example.com")
		router := orderRouter(user.ID)
		orderID := placeStripeOrder(t, router)

		w := jsonRequest(router, http.MethodPost, "/api/order/verify-stripe", VerifyStripeRequest{
			OrderID: orderID,
			Success: "true",
		})
		require.Equal(t, http.StatusOK, w.Code)

		var order models.Order
		require.NoError(t, db.First(&order, orderID).Error)
		assert.True(t, order.Payment)
		assert.Equal(t, models.OrderStatusProcessing, order.Status)

		var reloaded models.User
		require.NoError(t, db.First(&reloaded, user.ID).Error)
		assert.Empty(t, reloaded.CartData)
	})

	t.Run("cancellation marks the order cancelled but keeps the row", func(t *testing.T) {
		db, _ := setupControllerTest(t)
		user := createUser(t, db, "buyer@example.com")
		router := orderRouter(user.ID)
		orderID := placeStripeOrder(t, router)

		w := jsonRequest(router, http.MethodPost, "/api/order/verify-stripe", VerifyStripeRequest{
			OrderID: orderID,
			Success: "false",
		})
		require.Equal(t, http.StatusOK, w.Code)

		var order models.Order
		require.NoError(t, db.First(&order, orderID).Error)
		assert.False(t, order.Payment)
		assert.Equal(t, models.OrderStatusCancelled, order.Status)
	})

	t.Run("another user's order is not found", func(t *testing.T) {
		db, _ := setupControllerTest(t)
		owner := createUser(t, db, "owner@example.com")
		other := createUser(t, db, "other@example.com")
		orderID := placeStripeOrder(t, orderRouter(owner.ID))

		w := jsonRequest(orderRouter(other.ID), http.MethodPost, "/api/order/verify-stripe", VerifyStripeRequest{
			OrderID: orderID,
			Success: "true",
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestRazorpayOrderFlow(t *testing.T) {
	t.Run("placement returns a gateway order to pay", func(t *testing.T) {
		db, gateway := setupControllerTest(t)
		user := createUser(t, db, "buyer@example.com")
		router := orderRouter(user.ID)

		w := jsonRequest(router, http.MethodPost, "/api/order/razorpay", sampleOrderRequest())
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		resp := parseResponse(t, w)
		gatewayOrderID := resp["order"].(map[string]interface{})["id"].(string)
		assert.Contains(t, gateway.CreatedOrders(), gatewayOrderID)
	})

	t.Run("verified payment marks the order paid exactly once", func(t *testing.T) {
		db, gateway := setupControllerTest(t)
		user := createUser(t, db, "buyer@example.com")
		router := orderRouter(user.ID)

		w := jsonRequest(router, http.MethodPost, "/api/order/razorpay", sampleOrderRequest())
		require.Equal(t, http.StatusOK, w.Code)
		resp := parseResponse(t, w)
		orderID := uint(resp["orderId"].(float64))
		gatewayOrderID := resp["order"].(map[string]interface{})["id"].(string)

		verify := VerifyPaymentRequest{
			OrderID:           orderID,
			RazorpayPaymentID: "pay_789",
			RazorpayOrderID:   gatewayOrderID,
			RazorpaySignature: gateway.Sign(gatewayOrderID, "pay_789"),
		}

		w = jsonRequest(router, http.MethodPost, "/api/order/verify-razorpay", verify)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())

		var order models.Order
		require.NoError(t, db.First(&order, orderID).Error)
		assert.True(t, order.Payment)
		assert.Equal(t, "pay_789", order.PaymentID)
		assert.Equal(t, models.OrderStatusProcessing, order.Status)

		// A replay against the already-paid order is refused
		w = jsonRequest(router, http.MethodPost, "/api/order/verify-razorpay", verify)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("forged signature is rejected", func(t *testing.T) {
		db, _ := setupControllerTest(t)
		user := createUser(t, db, "buyer@example.com")
		router := orderRouter(user.ID)

		w := jsonRequest(router, http.MethodPost, "/api/order/razorpay", sampleOrderRequest())
		require.Equal(t, http.StatusOK, w.Code)
		resp := parseResponse(t, w)
		orderID := uint(resp["orderId"].(float64))
		gatewayOrderID := resp["order"].(map[string]interface{})["id"].(string)

		w = jsonRequest(router, http.MethodPost, "/api/order/verify-razorpay", VerifyPaymentRequest{
			OrderID:           orderID,
			RazorpayPaymentID: "pay_789",
			RazorpayOrderID:   gatewayOrderID,
			RazorpaySignature: "forged",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)

		var order models.Order
		require.NoError(t, db.First(&order, orderID).Error)
		assert.False(t, order.Payment)
	})
}

func TestListOrders(t *testing.T) {
	db, _ := setupControllerTest(t)
	mine := createUser(t, db, "mine@example.com")
	other := createUser(t, db, "other@example.com")

	for _, userID := range []uint{mine.ID, mine.ID, other.ID} {
		require.NoError(t, db.Create(&models.Order{
			UserID:        userID,
			Items:         models.OrderItems{{ProductID: 1, Name: "Kurta", Price: 100, Quantity: 1}},
			Amount:        100,
			PaymentMethod: models.OrderPaymentCOD,
			Status:        models.OrderStatusPlaced,
		}).Error)
	}

	w := jsonRequest(orderRouter(mine.ID), http.MethodGet, "/api/order/user-orders", nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := parseResponse(t, w)
	assert.Len(t, resp["orders"].([]interface{}), 2)
}

func TestUpdateOrderStatusAdmin(t *testing.T) {
	adminRouter := func() *gin.Engine {
		router := gin.New()
		auth := asPrincipal(0, services.PrincipalAdmin)
		router.GET("/api/order/list", auth, ListAllOrders)
		router.POST("/api/order/status", auth, UpdateOrderStatus)
		return router
	}

	t.Run("valid status update", func(t *testing.T) {
		db, _ := setupControllerTest(t)
		user := createUser(t, db, "buyer@example.com")
		order := models.Order{
			UserID:        user.ID,
			Items:         models.OrderItems{{ProductID: 1, Name: "Kurta", Price: 100, Quantity: 1}},
			Amount:        100,
			PaymentMethod: models.OrderPaymentCOD,
			Status:        models.OrderStatusPlaced,
		}
		require.NoError(t, db.Create(&order).Error)

		w := jsonRequest(adminRouter(), http.MethodPost, "/api/order/status", UpdateOrderStatusRequest{
			OrderID: order.ID,
			Status:  models.OrderStatusShipped,
		})
		require.Equal(t, http.StatusOK, w.Code)

		var reloaded models.Order
		require.NoError(t, db.First(&reloaded, order.ID).Error)
		assert.Equal(t, models.OrderStatusShipped, reloaded.Status)
	})

	t.Run("unknown status value is rejected", func(t *testing.T) {
		setupControllerTest(t)

		w := jsonRequest(adminRouter(), http.MethodPost, "/api/order/status", UpdateOrderStatusRequest{
			OrderID: 1,
			Status:  "teleported",
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("unknown order is not found", func(t *testing.T) {
		setupControllerTest(t)

		w := jsonRequest(adminRouter(), http.MethodPost, "/api/order/status", UpdateOrderStatusRequest{
			OrderID: 424242,
			Status:  models.OrderStatusShipped,
		})
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
