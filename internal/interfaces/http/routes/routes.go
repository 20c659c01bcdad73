// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/your-org/marketplace-backend/internal/config"
	"github.com/your-org/marketplace-backend/internal/domain/cart"
	"github.com/your-org/marketplace-backend/internal/domain/checkout"
	"github.com/your-org/marketplace-backend/internal/domain/metrics"
	"github.com/your-org/marketplace-backend/internal/domain/order"
	"github.com/your-org/marketplace-backend/internal/domain/user"
	"github.com/your-org/marketplace-backend/internal/interfaces/http/handlers"
	"github.com/your-org/marketplace-backend/internal/interfaces/http/middleware"
)

// SetupRoutes wires all API routes and the services behind them. publisher
// may be nil when event publishing is disabled.
func SetupRoutes(rg *gin.RouterGroup, db *gorm.DB, redisClient *redis.Client, cfg *config.Config, logger *logrus.Logger, publisher checkout.EventPublisher) {
	// Shared services
	userService := user.NewService(db, cfg)
	cartService := cart.NewService(db, cfg)
	orderService := order.NewService(db, cfg, logger)
	metricsService := metrics.NewService(db, redisClient, cfg, logger)

	// Fulfillment updates feed the seller dashboard counters.
	orderService.SetStatusListener(metricsService)

	locker := checkout.NewRedisLocker(redisClient, "lock")
	checkoutService := checkout.NewService(cfg, logger, cartService, orderService, metricsService, locker, publisher)

	// Handlers
	authHandler := handlers.NewAuthHandler(db, cfg)
	storeHandler := handlers.NewStoreHandler(db, redisClient, cfg, logger)
	productHandler := handlers.NewProductHandler(db, cfg)
	cartHandler := handlers.NewCartHandler(db, cfg)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutService, userService, cfg)
	orderHandler := handlers.NewOrderHandler(orderService, cfg)

	// Auth routes
	auth := rg.Group("/auth")
	{
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.RefreshToken)

		protected := auth.Group("")
		protected.Use(middleware.AuthMiddleware(cfg))
		{
			protected.GET("/profile", authHandler.GetProfile)
			protected.PUT("/profile", authHandler.UpdateProfile)
		}
	}

	// Store routes
	stores := rg.Group("/stores")
	{
		stores.GET("", storeHandler.GetStores)

		authedStores := stores.Group("")
		authedStores.Use(middleware.AuthMiddleware(cfg))
		{
			authedStores.POST("", storeHandler.CreateStore)
			authedStores.GET("/following", storeHandler.GetFollowedStores)
			authedStores.POST("/:id/follow", storeHandler.FollowStore)
			authedStores.DELETE("/:id/follow", storeHandler.UnfollowStore)
			authedStores.PUT("/:id", storeHandler.UpdateStore)
		}

		stores.GET("/:id", storeHandler.GetStore)
	}

	// Product routes (public browsing)
	products := rg.Group("/products")
	products.Use(middleware.OptionalAuthMiddleware(cfg))
	{
		products.GET("", productHandler.GetProducts)
		products.GET("/:id", productHandler.GetProduct)
	}

	// Cart routes
	cartRoutes := rg.Group("/cart")
	cartRoutes.Use(middleware.AuthMiddleware(cfg))
	{
		cartRoutes.GET("", cartHandler.GetCart)
		cartRoutes.POST("/items", cartHandler.AddToCart)
		cartRoutes.PUT("/items/:id", cartHandler.UpdateCartItem)
		cartRoutes.DELETE("/items/:id", cartHandler.RemoveCartItem)
		cartRoutes.DELETE("", cartHandler.ClearCart)
	}

	// Checkout
	checkoutRoutes := rg.Group("/checkout")
	checkoutRoutes.Use(middleware.AuthMiddleware(cfg))
	{
		checkoutRoutes.POST("", checkoutHandler.Checkout)
	}

	// Buyer order routes
	orders := rg.Group("/orders")
	orders.Use(middleware.AuthMiddleware(cfg))
	{
		orders.GET("", orderHandler.GetOrders)
		orders.GET("/:id", orderHandler.GetOrder)
	}

	// Seller routes
	seller := rg.Group("/seller")
	seller.Use(middleware.AuthMiddleware(cfg))
	seller.Use(middleware.SellerMiddleware())
	{
		seller.GET("/dashboard", storeHandler.GetDashboard)

		seller.GET("/orders", orderHandler.GetStoreOrders)
		seller.GET("/orders/:id", orderHandler.GetStoreOrder)
		seller.PUT("/orders/:id/status", orderHandler.UpdateStoreOrderStatus)

		seller.POST("/products", productHandler.CreateProduct)
		seller.PUT("/products/:id", productHandler.UpdateProduct)
		seller.DELETE("/products/:id", productHandler.DeleteProduct)
	}
}
