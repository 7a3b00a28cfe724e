// Package server assembles the HTTP API that the spendly client syncs with.
package server

import (
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"spendly/internal/config"
	_ "spendly/internal/docs" // registers the swagger spec
	"spendly/internal/handlers"
	"spendly/internal/middleware"
	"spendly/internal/services"
)

// Services are the business services behind the API. A nil Assistant
// disables the gpt-query endpoint.
type Services struct {
	Users      services.UserServicer
	Categories services.CategoryServicer
	Spendings  services.SpendingServicer
	Receipts   services.ReceiptServicer
	Assistant  services.Assistant
}

// NewServices builds the database-backed services for cfg.
func NewServices(db *gorm.DB, cfg *config.Config) Services {
	svc := Services{
		Users:      services.NewUserService(db),
		Categories: services.NewCategoryService(db),
		Spendings:  services.NewSpendingService(db),
		Receipts:   services.NewReceiptService(db, cfg.ReceiptDir),
	}
	if cfg.Assistant == "summary" {
		svc.Assistant = services.NewSummaryAssistant(svc.Spendings)
	}
	return svc
}

// New returns the router serving the API under /api.
func New(cfg *config.Config, svc Services) *gin.Engine {
	authHandler := handlers.NewAuthHandler(svc.Users)
	categoryHandler := handlers.NewCategoryHandler(svc.Categories)
	spendingHandler := handlers.NewSpendingHandler(svc.Spendings)
	receiptHandler := handlers.NewReceiptHandler(svc.Receipts)
	assistantHandler := handlers.NewAssistantHandler(svc.Assistant)

	router := gin.New()
	router.MaxMultipartMemory = handlers.MaxReceiptSize
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogging())
	router.Use(middleware.ErrorHandler())
	router.Use(cors.New(corsConfig(cfg.CORSAllowOrigins)))

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")

	// Public routes
	auth := api.Group("/auth")
	auth.POST("/registration/", authHandler.Register)
	auth.POST("/login/", authHandler.Login)

	// Protected routes
	protected := api.Group("/")
	protected.Use(middleware.AuthMiddleware())

	protected.POST("/auth/logout/", authHandler.Logout)
	protected.GET("/auth/user/", authHandler.GetProfile)

	transactions := protected.Group("/transactions")
	transactions.POST("/upload-receipt/", receiptHandler.UploadReceipt)
	transactions.POST("/gpt-query/", assistantHandler.Query)

	categories := transactions.Group("/categories")
	categories.GET("/", categoryHandler.ListCategories)
	categories.POST("/", categoryHandler.CreateCategory)
	categories.GET("/:id/", categoryHandler.GetCategory)
	categories.PATCH("/:id/", categoryHandler.UpdateCategory)
	categories.DELETE("/:id/", categoryHandler.DeleteCategory)

	spendings := transactions.Group("/spendings")
	spendings.GET("/", spendingHandler.ListSpendings)
	spendings.POST("/", spendingHandler.CreateSpending)
	spendings.GET("/:id/", spendingHandler.GetSpending)
	spendings.PATCH("/:id/", spendingHandler.UpdateSpending)
	spendings.DELETE("/:id/", spendingHandler.DeleteSpending)

	return router
}

// corsConfig allows the configured origins, or any origin when the list is
// empty or contains "*".
func corsConfig(origins []string) cors.Config {
	c := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders: []string{"X-Total-Count", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		c.AllowAllOrigins = true
	} else {
		c.AllowOrigins = origins
	}
	return c
}
