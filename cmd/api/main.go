package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"cardfolio/internal/config"
	"cardfolio/internal/database"
	"cardfolio/internal/handlers"
	"cardfolio/internal/logger"
	"cardfolio/internal/middleware"
	"cardfolio/internal/pricing"
	"cardfolio/internal/services"
	"cardfolio/internal/validator"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"golang.org/x/time/rate"

	_ "cardfolio/internal/docs" // Import swagger docs
)

// @title           Cardfolio API
// @version         1.0
// @description     Cardfolio tracks trading card collections: inventory, grading submissions, market prices, sales, and the tax reports that follow from them.

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Initialize logger (use ENV var if available, default to development)
	logger.Init(os.Getenv("ENV"))
	defer logger.Sync()

	if err := run(); err != nil {
		logger.Get().Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	log := logger.Get()

	// Load configuration
	appConfig, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Register custom validation tags
	validator.Register()

	// Initialize database configuration
	dbConfig, err := database.NewConfig()
	if err != nil {
		return fmt.Errorf("failed to load database configuration: %w", err)
	}

	// Create database manager
	dbManager, err := database.NewManager(dbConfig)
	if err != nil {
		return fmt.Errorf("failed to create database manager: %w", err)
	}

	// Run migrations
	if err := dbManager.RunMigrations(); err != nil {
		return fmt.Errorf("failed to run database migrations: %w", err)
	}

	// Initialize services
	db := dbManager.DB()
	auditService := services.NewAuditService(db)
	userService := services.NewUserService(db)
	cardService := services.NewCardService(db)
	reportService := services.NewTaxReportService(db, appConfig.ReportCacheTTL)
	saleService := services.NewSaleService(db, reportService)
	gradingService := services.NewGradingService(db)

	providers := []pricing.Provider{
		pricing.NewPokemonTCGProvider(appConfig.PokemonTCGAPIKey),
		pricing.NewJustTCGProvider(appConfig.JustTCGAPIKey),
	}
	priceService := services.NewPriceService(db, providers, appConfig.PriceCacheTTL)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(userService, auditService)
	cardHandler := handlers.NewCardHandler(cardService, auditService)
	saleHandler := handlers.NewSaleHandler(saleService, auditService)
	gradingHandler := handlers.NewGradingHandler(gradingService, auditService)
	taxHandler := handlers.NewTaxHandler(reportService)
	priceHandler := handlers.NewPriceHandler(priceService)

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API v1 group
	v1 := router.Group("/api/v1")

	// Public routes, rate limited against credential stuffing
	auth := v1.Group("/auth")
	auth.Use(middleware.RateLimit(rate.Every(time.Second), 10))
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)

	// Protected routes
	protected := v1.Group("/")
	protected.Use(middleware.AuthMiddleware())

	// User profile
	protected.GET("/profile", authHandler.GetProfile)

	// Card routes
	cards := protected.Group("/cards")
	cards.POST("", cardHandler.CreateCard)
	cards.GET("", cardHandler.ListCards)
	cards.GET("/stats", cardHandler.GetCollectionStats)
	cards.GET("/:id", cardHandler.GetCard)
	cards.PUT("/:id", cardHandler.UpdateCard)
	cards.DELETE("/:id", cardHandler.DeleteCard)
	cards.GET("/:id/price", priceHandler.GetPrice)
	cards.GET("/:id/price/history", priceHandler.GetPriceHistory)

	// Sale routes
	sales := protected.Group("/sales")
	sales.POST("", saleHandler.RecordSale)
	sales.GET("", saleHandler.ListSales)
	sales.GET("/:id", saleHandler.GetSale)
	sales.DELETE("/:id", saleHandler.DeleteSale)

	// Grading routes
	grading := protected.Group("/grading")
	grading.POST("", gradingHandler.CreateSubmission)
	grading.GET("", gradingHandler.ListSubmissions)
	grading.GET("/:id", gradingHandler.GetSubmission)
	grading.PUT("/:id/status", gradingHandler.MoveSubmission)
	grading.POST("/:id/grades", gradingHandler.RecordGrades)
	grading.DELETE("/:id", gradingHandler.DeleteSubmission)

	// Report routes
	reports := protected.Group("/reports")
	reports.GET("/tax", taxHandler.GetSummary)
	reports.GET("/tax/years", taxHandler.GetAvailableYears)
	reports.GET("/tax/export", taxHandler.ExportCSV)
	reports.GET("/tax/export.xlsx", taxHandler.ExportXLSX)
	reports.GET("/profit-loss", taxHandler.GetProfitLoss)

	log.Infof("Starting Cardfolio backend server on port %s", appConfig.Port)
	log.Infof("Swagger documentation available at http://localhost:%s/swagger/index.html", appConfig.Port)
	return router.Run(":" + appConfig.Port)
}
