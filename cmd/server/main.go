package main

import (
	"log"
	"time"

	"laundry_app/internal/config"
	"laundry_app/internal/database"
	"laundry_app/internal/handlers"
	"laundry_app/internal/middleware"
	"laundry_app/internal/models"
	"laundry_app/internal/redis"
	"laundry_app/internal/repository"
	"laundry_app/internal/services"
	"laundry_app/pkg/geocode"

	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.Initialize(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Initialize Redis
	redisClient, err := redis.Initialize(cfg.RedisURL)
	if err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}
	defer redisClient.Close()

	// Initialize geocoding client
	geocoder := geocode.NewClient(cfg.GeocodeAPIURL)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	historyRepo := repository.NewStatusHistoryRepository(db)
	catalogRepo := repository.NewCatalogRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, cfg.JWTSecret)
	userService := services.NewUserService(userRepo)
	settingsService := services.NewSettingsService(settingsRepo, redisClient, time.Duration(cfg.SettingsCacheTTL)*time.Second)
	catalogService := services.NewCatalogService(catalogRepo)
	orderService := services.NewOrderService(orderRepo, historyRepo, userRepo, redisClient, redisClient, cfg.RecentOrdersMax)
	intakeService := services.NewIntakeService(redisClient, geocoder, orderService, settingsService, catalogService, time.Duration(cfg.DraftTTL)*time.Second)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService, userService)
	contentHandler := handlers.NewContentHandler(settingsService, catalogService)
	intakeHandler := handlers.NewIntakeHandler(intakeService)
	orderHandler := handlers.NewOrderHandler(orderService, userService)
	merchantHandler := handlers.NewMerchantHandler(orderService, redisClient)
	adminHandler := handlers.NewAdminHandler(orderService, userService, settingsService, catalogService)

	// Setup routes
	router := gin.Default()

	api := router.Group("/api")
	{
		// Public
		api.POST("/auth/register", authHandler.Register)
		api.POST("/auth/login", authHandler.Login)
		api.GET("/settings", contentHandler.GetSettings)
		api.GET("/services", contentHandler.ListActiveServices)

		// Authenticated
		authed := api.Group("", middleware.Auth(cfg.JWTSecret))
		{
			authed.GET("/auth/profile", authHandler.Profile)
			authed.PUT("/auth/profile", authHandler.UpdateProfile)

			authed.GET("/merchants/nearest", orderHandler.NearestMerchant)

			// Intake wizard
			authed.POST("/intake", intakeHandler.Start)
			authed.GET("/intake/:draft_id", intakeHandler.Get)
			authed.POST("/intake/:draft_id/location", intakeHandler.ResolveLocation)
			authed.PUT("/intake/:draft_id/order-type", intakeHandler.SelectOrderType)
			authed.PUT("/intake/:draft_id/service-speed", intakeHandler.SelectServiceSpeed)
			authed.PUT("/intake/:draft_id/quantity", intakeHandler.AdjustQuantity)
			authed.PUT("/intake/:draft_id/weight", intakeHandler.AdjustWeight)
			authed.PUT("/intake/:draft_id/item-detail", intakeHandler.SetItemDetail)
			authed.PUT("/intake/:draft_id/contact", intakeHandler.SetContact)
			authed.POST("/intake/:draft_id/next", intakeHandler.Next)
			authed.POST("/intake/:draft_id/back", intakeHandler.Back)
			authed.GET("/intake/:draft_id/quote", intakeHandler.Quote)
			authed.POST("/intake/:draft_id/submit", intakeHandler.Submit)

			// Customer order history
			authed.GET("/orders", orderHandler.ListMyOrders)
			authed.GET("/orders/:id", orderHandler.GetOrder)
			authed.GET("/orders/:id/history", orderHandler.GetOrderHistory)

			// Merchant dashboard
			merchant := authed.Group("/merchant", middleware.RequireRole(string(models.RoleMerchant)))
			{
				merchant.GET("/orders", merchantHandler.ListOrders)
				merchant.PUT("/orders/:id/status", merchantHandler.UpdateStatus)
				merchant.GET("/orders/subscribe", merchantHandler.Subscribe)
			}

			// Admin console
			admin := authed.Group("/admin", middleware.RequireRole(string(models.RoleAdmin)))
			{
				admin.GET("/orders", adminHandler.ListOrders)
				admin.PUT("/orders/:id/status", adminHandler.UpdateOrderStatus)
				admin.PUT("/orders/:id/merchant", adminHandler.AssignMerchant)

				admin.GET("/users", adminHandler.ListUsers)
				admin.PUT("/users/:id/role", adminHandler.UpdateUserRole)
				admin.PUT("/users/:id/active", adminHandler.SetUserActive)
				admin.DELETE("/users/:id", adminHandler.DeleteUser)

				admin.PUT("/settings", adminHandler.UpdateSettings)

				admin.GET("/services", adminHandler.ListServices)
				admin.POST("/services", adminHandler.CreateService)
				admin.PUT("/services/:id", adminHandler.UpdateService)
				admin.PUT("/services/:id/toggle", adminHandler.ToggleService)
				admin.DELETE("/services/:id", adminHandler.DeleteService)
			}
		}
	}

	// Start server
	log.Printf("Server starting on port %s", cfg.ServerPort)
	if err := router.Run(":" + cfg.ServerPort); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
