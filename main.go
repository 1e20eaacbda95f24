package main

import (
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/stitch-n-style/stitch-n-style-api/config"
	"github.com/stitch-n-style/stitch-n-style-api/controllers"
	"github.com/stitch-n-style/stitch-n-style-api/middleware"
	"github.com/stitch-n-style/stitch-n-style-api/models"
	"github.com/stitch-n-style/stitch-n-style-api/services"
)

func main() {
	log.Println("Starting Stitch N Style API server...")

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := migrateDatabase(); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed successfully")

	if err := initServices(cfg); err != nil {
		log.Fatalf("Failed to initialize services: %v", err)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := setupRouter(cfg)

	addr := ":" + cfg.Port
	log.Printf("Server is running on http://localhost%s", addr)
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// migrateDatabase auto-migrates all marketplace models
func migrateDatabase() error {
	return config.GetDB().AutoMigrate(
		&models.User{},
		&models.Designer{},
		&models.Product{},
		&models.Design{},
		&models.Order{},
		&models.CustomOrder{},
	)
}

// initServices wires up the media host and the payment gateways
func initServices(cfg *config.Config) error {
	s3Service, err := services.InitS3Service()
	if err != nil {
		return err
	}
	services.InitImageService(s3Service)
	services.InitRazorpayService()
	services.InitStripeService()
	return nil
}

// setupRouter builds the Gin engine with CORS and all API routes
func setupRouter(cfg *config.Config) *gin.Engine {
	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.FrontendOrigin}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	router.GET("/api/health", healthCheck)

	user := router.Group("/api/user")
	{
		user.POST("/register", controllers.RegisterUser)
		user.POST("/login", controllers.LoginUser)
		user.POST("/admin", controllers.AdminLogin)
	}

	product := router.Group("/api/product")
	{
		product.GET("/list", controllers.ListProducts)
		product.GET("/:productId", controllers.SingleProduct)
		product.POST("/add", middleware.AuthAdmin(), controllers.AddProduct)
		product.PUT("/:productId", middleware.AuthAdmin(), controllers.EditProduct)
		product.DELETE("/:productId", middleware.AuthAdmin(), controllers.RemoveProduct)
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
		order.POST("/stripe", middleware.AuthUser(), controllers.PlaceOrderStripe)
		order.POST("/verify-stripe", middleware.AuthUser(), controllers.VerifyStripe)
		order.POST("/razorpay", middleware.AuthUser(), controllers.PlaceOrderRazorpay)
		order.POST("/verify-razorpay", middleware.AuthUser(), controllers.VerifyRazorpayOrderPayment)
		order.GET("/user-orders", middleware.AuthUser(), controllers.ListUserOrders)
		order.GET("/list", middleware.AuthAdmin(), controllers.ListAllOrders)
		order.POST("/status", middleware.AuthAdmin(), controllers.UpdateOrderStatus)
	}

	designer := router.Group("/api/designer")
	{
		designer.POST("/register", controllers.RegisterDesigner)
		designer.POST("/login", controllers.LoginDesigner)
		designer.GET("/list", controllers.ListDesigners)
		designer.GET("/:designerId", controllers.GetDesignerDetails)
		designer.PUT("/profile", middleware.AuthDesigner(), controllers.UpdateDesignerProfile)
		designer.PUT("/profile-image", middleware.AuthDesigner(), controllers.UpdateDesignerProfileImage)
	}

	design := router.Group("/api/design")
	{
		design.GET("/list", controllers.ListDesigns)
		design.POST("/add", middleware.AuthDesigner(), controllers.AddDesign)
		design.GET("/my-designs", middleware.AuthDesigner(), controllers.ListMyDesigns)
		design.DELETE("/:designId", middleware.AuthDesigner(), controllers.RemoveDesign)
	}

	customOrder := router.Group("/api/custom-order")
	{
		customOrder.POST("/create", middleware.AuthUser(), controllers.CreateCustomOrder)
		customOrder.GET("/my-orders", middleware.AuthUser(), controllers.ListMyCustomOrders)
		customOrder.GET("/:orderId", middleware.AuthUser(), controllers.GetCustomOrderDetails)
		customOrder.POST("/:orderId/checkout", middleware.AuthUser(), controllers.CheckoutCustomOrder)
		customOrder.POST("/verify-payment", middleware.AuthUser(), controllers.VerifyCustomOrderPayment)
		customOrder.POST("/:orderId/cancel", middleware.AuthUser(), controllers.CancelCustomOrder)

		customOrder.GET("/designer/pending", middleware.AuthDesigner(), controllers.ListPendingCustomOrders)
		customOrder.GET("/designer/active", middleware.AuthDesigner(), controllers.ListActiveCustomOrders)
		customOrder.POST("/:orderId/accept", middleware.AuthDesigner(), controllers.AcceptCustomOrderBid)
		customOrder.PUT("/:orderId/progress", middleware.AuthDesigner(), controllers.UpdateCustomOrderProgress)
		customOrder.PUT("/:orderId/status", middleware.AuthDesigner(), controllers.UpdateCustomOrderStatus)
		customOrder.PUT("/:orderId/tracking", middleware.AuthDesigner(), controllers.SetCustomOrderTracking)
	}

	search := router.Group("/api/search")
	{
		search.GET("", controllers.Search)
		search.GET("/suggestions", controllers.Suggestions)
	}

	return router
}

// healthCheck handles the health check endpoint
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Stitch N Style API is running",
	})
}
