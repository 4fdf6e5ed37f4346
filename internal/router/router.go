// internal/router/router.go
package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/brianstore/store-backend/internal/config"
	"github.com/brianstore/store-backend/internal/handlers"
	"github.com/brianstore/store-backend/internal/middleware"
	"github.com/brianstore/store-backend/internal/services"
)

// Dependencies are the services the HTTP surface is built on.
type Dependencies struct {
	Store        *services.StoreService
	AI           *services.AIService
	Integrations *services.IntegrationService
	RateLimiter  *middleware.RateLimiter
	Logger       *logrus.Logger
}

func Initialize(cfg *config.Config, deps Dependencies) *gin.Engine {
	// Initialize handlers
	productHandler := handlers.NewProductHandler(deps.Store, deps.AI)
	saleHandler := handlers.NewSaleHandler(deps.Store)
	alertHandler := handlers.NewAlertHandler(deps.Store)
	staffHandler := handlers.NewStaffHandler(deps.Store)
	settingsHandler := handlers.NewSettingsHandler(deps.Store, deps.Integrations)
	insightsHandler := handlers.NewInsightsHandler(deps.Store)
	assistantHandler := handlers.NewAssistantHandler(deps.AI)
	adminHandler := handlers.NewAdminHandler(deps.Store)
	eventHandler := handlers.NewEventHandler(deps.Store)

	logger := deps.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	// Initialize Gin router
	r := gin.New()

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(logger))
	r.Use(middleware.CORS(cfg.CORS))
	if deps.RateLimiter != nil {
		r.Use(deps.RateLimiter.Middleware())
	}

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "healthy",
			"version":   "1.0.0",
			"storage":   cfg.Storage.Backend,
			"ai_online": deps.AI.Enabled(),
		})
	})

	// API v1 routes
	v1 := r.Group("/v1")
	{
		products := v1.Group("/products")
		{
			products.GET("", productHandler.GetProducts)
			products.POST("", productHandler.CreateProduct)
			products.GET("/:id", productHandler.GetProduct)
			products.POST("/:id/restock", productHandler.RestockProduct)
			products.POST("/:id/marketing-message", productHandler.GenerateMarketingMessage)
		}

		sales := v1.Group("/sales")
		{
			sales.GET("", saleHandler.GetSales)
			sales.POST("", saleHandler.RecordSale)
		}

		alerts := v1.Group("/alerts")
		{
			alerts.GET("", alertHandler.GetAlerts)
			alerts.POST("/:id/read", alertHandler.MarkRead)
		}

		v1.GET("/staff", staffHandler.GetStaff)

		settings := v1.Group("/settings")
		{
			settings.GET("", settingsHandler.GetSettings)
			settings.PATCH("", settingsHandler.UpdateSettings)

			integrations := settings.Group("/integrations")
			{
				integrations.POST("/quickbooks/connect", settingsHandler.ConnectQuickBooks)
				integrations.POST("/quickbooks/disconnect", settingsHandler.DisconnectQuickBooks)
				integrations.POST("/payment-processor/connect", settingsHandler.ConnectPaymentProcessor)
			}
		}

		insights := v1.Group("/insights")
		{
			insights.GET("/dashboard", insightsHandler.GetDashboard)
			insights.GET("/health", insightsHandler.GetHealth)
		}

		assistant := v1.Group("/assistant")
		{
			assistant.GET("", assistantHandler.GetGreeting)
			assistant.POST("/chat", assistantHandler.Chat)
		}

		v1.POST("/admin/reset", adminHandler.ResetData)
		v1.GET("/events", eventHandler.Stream)
	}

	return r
}
