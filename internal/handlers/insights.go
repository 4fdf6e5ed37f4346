// internal/handlers/insights.go
package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/brianstore/store-backend/internal/services"
	"github.com/brianstore/store-backend/internal/utils"
)

type InsightsHandler struct {
	store *services.StoreService
}

func NewInsightsHandler(store *services.StoreService) *InsightsHandler {
	return &InsightsHandler{store: store}
}

// GET /insights/dashboard
func (h *InsightsHandler) GetDashboard(c *gin.Context) {
	utils.SuccessResponse(c, gin.H{
		"dashboard": h.store.Dashboard(time.Now().UTC()),
	})
}

// GET /insights/health
func (h *InsightsHandler) GetHealth(c *gin.Context) {
	utils.SuccessResponse(c, gin.H{
		"summary": h.store.RefreshAIInsights(c.Request.Context()),
	})
}
