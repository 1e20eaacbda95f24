package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/stitch-n-style/stitch-n-style-api/controllers"
	"github.com/stitch-n-style/stitch-n-style-api/middleware"
	"github.com/stitch-n-style/stitch-n-style-api/models"
	"github.com/stitch-n-style/stitch-n-style-api/services"
	"github.com/stitch-n-style/stitch-n-style-api/tests/testutil"
)

// ShoppingIntegrationTestSuite wires controllers, middleware, database and
// mock gateways together and walks the storefront flows: admin stocks the
// catalog, a customer fills a cart and checks out.
type ShoppingIntegrationTestSuite struct {
	suite.Suite
	router  *gin.Engine
	db      *gorm.DB
	gateway *services.MockRazorpayService
}

func (suite *ShoppingIntegrationTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)
}

func (suite *ShoppingIntegrationTestSuite) SetupTest() {
	suite.db = testutil.SetupTestDB(suite.T())

	suite.gateway = services.NewMockRazorpayService("test-secret")
	suite.gateway.SetAsMockForTesting()
	services.NewMockImageService().SetAsMockForTesting()
	services.NewMockStripeService().SetAsMockForTesting()

	router := gin.New()
	router.Use(gin.Recovery())

	user := router.Group("/api/user")
	{
		user.POST("/register", controllers.RegisterUser)
		user.POST("/admin", controllers.AdminLogin)
	}
	product := router.Group("/api/product")
	{
		product.GET("/list", controllers.ListProducts)
		product.POST("/add", middleware.AuthAdmin(), controllers.AddProduct)
	}
	cart := router.Group("/api/cart", middleware.AuthUser())
	{
		cart.POST("/add", controllers.AddToCart)
		cart.POST("/update", controllers.UpdateCart)
		cart.GET("/get", controllers.GetCart)
	}
	order := router.Group("/api/order")
	{
		order.POST("/place", middleware.AuthUser(), controllers.PlaceOrderCOD)
		order.POST("/razorpay", middleware.AuthUser(), controllers.PlaceOrderRazorpay)
		order.POST("/verify-razorpay", middleware.AuthUser(), controllers.VerifyRazorpayOrderPayment)
		order.GET("/user-orders", middleware.AuthUser(), controllers.ListUserOrders)
		order.POST("/status", middleware.AuthAdmin(), controllers.UpdateOrderStatus)
	}
	search := router.Group("/api/search")
	{
		search.GET("", controllers.Search)
	}

	suite.router = router
}

func (suite *ShoppingIntegrationTestSuite) jsonRequest(method, path, token string, body interface{}) (*httptest.ResponseRecorder, map[string]interface{}) {
	var buf bytes.Buffer
	if body != nil {
		suite.NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	var parsed map[string]interface{}
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &parsed))
	return w, parsed
}

// addProduct creates a catalog item through the admin endpoint and returns its ID
func (suite *ShoppingIntegrationTestSuite) addProduct(adminToken, name string, price float64) uint {
	form := url.Values{}
	form.Set("name", name)
	form.Set("description", "Handloom cotton, slim fit")
	form.Set("price", fmt.Sprintf("%g", price))
	form.Set("category", "Men")
	form.Set("subCategory", "Topwear")
	form.Set("sizes", `["S","M","L"]`)

	req := httptest.NewRequest(http.MethodPost, "/api/product/add", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+adminToken)

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	require.Equal(suite.T(), http.StatusCreated, w.Code, w.Body.String())

	var parsed struct {
		Product struct {
			ID uint `json:"id"`
		} `json:"product"`
	}
	suite.NoError(json.Unmarshal(w.Body.Bytes(), &parsed))
	return parsed.Product.ID
}

func (suite *ShoppingIntegrationTestSuite) registerCustomer(email string) string {
	w, parsed := suite.jsonRequest(http.MethodPost, "/api/user/register", "", gin.H{
		"name":     "Asha Rao",
		"email":    email,
		"password": "Password123!",
	})
	require.Equal(suite.T(), http.StatusCreated, w.Code, w.Body.String())
	return parsed["token"].(string)
}

// TestStorefrontWorkflow covers catalog, cart and a COD checkout end to end
func (suite *ShoppingIntegrationTestSuite) TestStorefrontWorkflow() {
	t := suite.T()
	adminToken := testutil.IssueToken(t, 1, services.PrincipalAdmin)

	productID := suite.addProduct(adminToken, "Linen Kurta", 1200)

	w, parsed := suite.jsonRequest(http.MethodGet, "/api/product/list", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), parsed["count"])

	customerToken := suite.registerCustomer("asha@example.com")

	// Two of the same item land in one cart entry
	itemID := fmt.Sprintf("%d", productID)
	for i := 0; i < 2; i++ {
		w, _ = suite.jsonRequest(http.MethodPost, "/api/cart/add", customerToken,
			gin.H{"itemId": itemID, "size": "M"})
		require.Equal(t, http.StatusOK, w.Code)
	}
	w, parsed = suite.jsonRequest(http.MethodGet, "/api/cart/get", customerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	cartData := parsed["cartData"].(map[string]interface{})
	assert.Equal(t, float64(2), cartData[itemID].(map[string]interface{})["M"])

	// Checkout
	w, _ = suite.jsonRequest(http.MethodPost, "/api/order/place", customerToken, gin.H{
		"items": []gin.H{
			{"product_id": productID, "name": "Linen Kurta", "price": 1200, "size": "M", "quantity": 2},
		},
		"amount": 2400,
		"address": gin.H{
			"first_name": "Asha", "last_name": "Rao", "address_line1": "12 MG Road",
			"city": "Bengaluru", "state": "KA", "postal_code": "560001", "country": "IN",
		},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	// The cart is emptied by the purchase
	w, parsed = suite.jsonRequest(http.MethodGet, "/api/cart/get", customerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, parsed["cartData"])

	// The order is visible to its owner
	w, parsed = suite.jsonRequest(http.MethodGet, "/api/order/user-orders", customerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	orders := parsed["orders"].([]interface{})
	require.Len(t, orders, 1)
	orderID := uint(orders[0].(map[string]interface{})["id"].(float64))

	// Admin moves it along
	w, _ = suite.jsonRequest(http.MethodPost, "/api/order/status", adminToken, gin.H{
		"orderId": orderID,
		"status":  models.OrderStatusShipped,
	})
	require.Equal(t, http.StatusOK, w.Code)

	var order models.Order
	suite.NoError(suite.db.First(&order, orderID).Error)
	assert.Equal(t, models.OrderStatusShipped, order.Status)
}

// TestOnlinePaymentWorkflow covers a gateway-backed checkout with signature
// verification.
func (suite *ShoppingIntegrationTestSuite) TestOnlinePaymentWorkflow() {
	t := suite.T()
	customerToken := suite.registerCustomer("asha@example.com")

	w, parsed := suite.jsonRequest(http.MethodPost, "/api/order/razorpay", customerToken, gin.H{
		"items": []gin.H{
			{"product_id": 1, "name": "Silk Saree", "price": 5600, "size": "", "quantity": 1},
		},
		"amount": 5600,
		"address": gin.H{
			"first_name": "Asha", "last_name": "Rao", "address_line1": "12 MG Road",
			"city": "Bengaluru", "state": "KA", "postal_code": "560001", "country": "IN",
		},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	orderID := uint(parsed["orderId"].(float64))
	gatewayOrderID := parsed["order"].(map[string]interface{})["id"].(string)

	// The gateway order is denominated in paise
	created := suite.gateway.CreatedOrders()
	assert.Equal(t, int64(560000), created[gatewayOrderID].Amount)

	w, _ = suite.jsonRequest(http.MethodPost, "/api/order/verify-razorpay", customerToken, gin.H{
		"orderId":             orderID,
		"razorpay_payment_id": "pay_workflow_1",
		"razorpay_order_id":   gatewayOrderID,
		"razorpay_signature":  suite.gateway.Sign(gatewayOrderID, "pay_workflow_1"),
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var order models.Order
	suite.NoError(suite.db.First(&order, orderID).Error)
	assert.True(t, order.Payment)
	assert.Equal(t, models.OrderStatusProcessing, order.Status)
}

// TestSearchFindsCatalog verifies search picks up newly added products
func (suite *ShoppingIntegrationTestSuite) TestSearchFindsCatalog() {
	t := suite.T()
	adminToken := testutil.IssueToken(t, 1, services.PrincipalAdmin)
	suite.addProduct(adminToken, "Banarasi Saree", 5600)
	suite.addProduct(adminToken, "Linen Kurta", 1200)

	w, parsed := suite.jsonRequest(http.MethodGet, "/api/search?q=saree", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	products := parsed["products"].([]interface{})
	require.Len(t, products, 1)
	assert.Equal(t, "Banarasi Saree", products[0].(map[string]interface{})["name"])
}

func TestShoppingIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(ShoppingIntegrationTestSuite))
}
