package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"storefront-service/internal/catalog"
	"storefront-service/internal/chat"
	"storefront-service/internal/checkout"
	"storefront-service/internal/config"
	"storefront-service/internal/events"
	"storefront-service/internal/handlers"
	"storefront-service/internal/middleware"
	"storefront-service/internal/store"
)

// @title TechZone Storefront API
// @version 1.0.0
// @description Backend for the TechZone mini app storefront: catalog, cart, checkout and support chat

// @host localhost:8087
// @BasePath /api/v1

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	// Initialize configuration
	cfg := config.Load()

	// Initialize logger
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	if cfg.Environment == "production" {
		logger.SetLevel(logrus.InfoLevel)
	} else {
		logger.SetLevel(logrus.DebugLevel)
	}

	// Load the embedded catalog
	cat, err := catalog.Load()
	if err != nil {
		log.Fatal("Failed to load catalog:", err)
	}
	log.Printf("✓ Catalog loaded (%d products)", len(cat.Products()))

	// Initialize persistence only if Redis is configured
	var persister store.Persister = store.NewMemoryPersister()
	if cfg.RedisURL != "" {
		redisOpts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Printf("WARNING: Failed to parse Redis URL: %v (falling back to in-memory persistence)", err)
		} else {
			redisClient := redis.NewClient(redisOpts)
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			if err := redisClient.Ping(ctx).Err(); err != nil {
				log.Printf("WARNING: Failed to connect to Redis: %v (falling back to in-memory persistence)", err)
			} else {
				persister = store.NewRedisPersister(redisClient, cfg.StorageKey)
				log.Println("✓ Redis connected successfully")
			}
			cancel()
		}
	} else {
		log.Println("REDIS_URL not set, using in-memory persistence")
	}

	// Initialize store and restore the persisted subset
	st := store.NewStore(cfg, persister)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := st.Hydrate(ctx); err != nil {
		log.Printf("WARNING: Failed to restore persisted state: %v (starting empty)", err)
	}
	cancel()

	// Initialize event publisher only if NATS_URL is set
	var eventsPublisher *events.Publisher
	if cfg.NATSURL != "" {
		eventsPublisher, err = events.NewPublisher(cfg.NATSURL, logger)
		if err != nil {
			log.Printf("WARNING: Failed to initialize events publisher: %v (continuing without event publishing)", err)
		} else {
			log.Println("✓ Events publisher initialized (NATS connected)")
		}
	} else {
		log.Println("NATS_URL not set, skipping event publishing initialization")
	}
	defer func() {
		if eventsPublisher != nil {
			eventsPublisher.Close()
		}
	}()

	// Initialize services
	var checkoutPublisher checkout.EventPublisher
	if eventsPublisher != nil {
		checkoutPublisher = eventsPublisher
	}
	checkoutSvc := checkout.NewService(cfg, st, cat, checkoutPublisher, logger)
	chatSvc := chat.NewService(chat.DefaultDelays(), logger)
	defer chatSvc.Close()

	// Initialize handlers
	catalogHandler := handlers.NewCatalogHandler(cat, st)
	cartHandler := handlers.NewCartHandler(cfg, cat, st, eventsPublisher, logger)
	profileHandler := handlers.NewProfileHandler(cat, st, logger)
	checkoutHandler := handlers.NewCheckoutHandler(checkoutSvc)
	ordersHandler := handlers.NewOrdersHandler(st)
	chatHandler := handlers.NewChatHandler(chatSvc)
	callbackHandler := handlers.NewCallbackHandler(logger)
	exportHandler := handlers.NewExportHandler(cat, logger)

	// Initialize Gin router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS())

	// Health check endpoints
	router.GET("/health", handlers.HealthCheck)
	router.GET("/ready", handlers.HealthCheck)

	// API routes
	v1 := router.Group("/api/v1")
	{
		v1.GET("/home", catalogHandler.GetHome)

		products := v1.Group("/products")
		{
			products.GET("", catalogHandler.SearchProducts)
			products.GET("/:id", catalogHandler.GetProduct)
		}

		v1.GET("/categories", catalogHandler.GetCategories)
		v1.GET("/filters", catalogHandler.GetFilterOptions)
		v1.GET("/delivery-points", catalogHandler.GetDeliveryPoints)

		cart := v1.Group("/cart")
		{
			cart.GET("", cartHandler.GetCart)
			cart.DELETE("", cartHandler.ClearCart)
			cart.POST("/items", cartHandler.AddToCart)
			cart.PUT("/items/:id", cartHandler.UpdateQuantity)
			cart.DELETE("/items/:id", cartHandler.RemoveFromCart)
			cart.POST("/promo", cartHandler.ApplyPromo)
			cart.DELETE("/promo", cartHandler.RemovePromo)
		}

		profile := v1.Group("/profile")
		{
			profile.GET("", profileHandler.GetProfile)
			profile.POST("/init", profileHandler.Init)
			profile.PUT("/theme", profileHandler.SetTheme)
			profile.PUT("/language", profileHandler.SetLanguage)
		}

		v1.GET("/favorites", profileHandler.GetFavorites)
		v1.POST("/favorites/:id/toggle", profileHandler.ToggleFavorite)
		v1.GET("/compare", profileHandler.GetCompare)
		v1.POST("/compare/:id/toggle", profileHandler.ToggleCompare)
		v1.GET("/recently-viewed", profileHandler.GetRecentlyViewed)
		v1.POST("/quiz", profileHandler.CompleteQuiz)

		co := v1.Group("/checkout")
		{
			co.POST("", checkoutHandler.Begin)
			co.GET("", checkoutHandler.GetSession)
			co.POST("/contact", checkoutHandler.SubmitContact)
			co.POST("/delivery", checkoutHandler.SubmitDelivery)
			co.POST("/back", checkoutHandler.Back)
			co.POST("/submit", checkoutHandler.Submit)
		}

		orders := v1.Group("/orders")
		{
			orders.GET("", ordersHandler.ListOrders)
			orders.GET("/:id", ordersHandler.GetOrder)
		}

		chatRoutes := v1.Group("/chat")
		{
			chatRoutes.GET("", chatHandler.GetChat)
			chatRoutes.POST("/messages", chatHandler.SendMessage)
		}

		v1.POST("/callback", callbackHandler.RequestCallback)
		v1.GET("/export/catalog", exportHandler.ExportCatalog)
	}

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Graceful shutdown handling
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Printf("Storefront service starting on port %s", cfg.Port)
		if err := router.Run(":" + cfg.Port); err != nil {
			log.Fatal("Failed to start server:", err)
		}
	}()

	<-quit
	log.Println("Shutting down storefront-service...")
	log.Println("Storefront service stopped")
}
