// internal/handlers/alert.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/brianstore/store-backend/internal/models"
	"github.com/brianstore/store-backend/internal/services"
	"github.com/brianstore/store-backend/internal/utils"
)

type AlertHandler struct {
	store *services.StoreService
}

func NewAlertHandler(store *services.StoreService) *AlertHandler {
	return &AlertHandler{store: store}
}

// GET /alerts
func (h *AlertHandler) GetAlerts(c *gin.Context) {
	alerts := h.store.Alerts()

	if queryBool(c, "unread") {
		unread := make([]models.Alert, 0, len(alerts))
		for _, a := range alerts {
			if !a.IsRead {
				unread = append(unread, a)
			}
		}
		alerts = unread
	}

	utils.SuccessResponse(c, gin.H{
		"alerts": alerts,
	})
}

// POST /alerts/:id/read
func (h *AlertHandler) MarkRead(c *gin.Context) {
	if !h.store.MarkAlertRead(c.Request.Context(), c.Param("id")) {
		utils.NotFoundResponse(c, "Alert")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": "Alert marked as read",
	})
}
