// internal/handlers/settings.go
package handlers

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/brianstore/store-backend/internal/models"
	"github.com/brianstore/store-backend/internal/services"
	"github.com/brianstore/store-backend/internal/utils"
)

type SettingsHandler struct {
	store        *services.StoreService
	integrations *services.IntegrationService
}

func NewSettingsHandler(store *services.StoreService, integrations *services.IntegrationService) *SettingsHandler {
	return &SettingsHandler{
		store:        store,
		integrations: integrations,
	}
}

// GET /settings
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	utils.SuccessResponse(c, gin.H{
		"settings": h.store.Settings(),
	})
}

// PATCH /settings
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	var req models.SettingsUpdate
	if !bindJSON(c, &req) {
		return
	}

	utils.SuccessResponse(c, gin.H{
		"settings": h.store.UpdateSettings(c.Request.Context(), req),
	})
}

// POST /settings/integrations/quickbooks/connect
func (h *SettingsHandler) ConnectQuickBooks(c *gin.Context) {
	settings, err := h.integrations.ConnectQuickBooks(c.Request.Context())
	if err != nil {
		integrationError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":  "QuickBooks connected",
		"settings": settings,
	})
}

// POST /settings/integrations/quickbooks/disconnect
func (h *SettingsHandler) DisconnectQuickBooks(c *gin.Context) {
	var req services.ConfirmRequest
	if !bindJSON(c, &req) {
		return
	}
	if !req.Confirm {
		utils.BadRequestResponse(c, "Disconnecting QuickBooks requires confirmation", nil)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":  "QuickBooks disconnected",
		"settings": h.integrations.DisconnectQuickBooks(c.Request.Context()),
	})
}

// POST /settings/integrations/payment-processor/connect
func (h *SettingsHandler) ConnectPaymentProcessor(c *gin.Context) {
	settings, err := h.integrations.ConnectPaymentProcessor(c.Request.Context())
	if err != nil {
		integrationError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":  "Payment processor connected",
		"settings": settings,
	})
}

func integrationError(c *gin.Context, err error) {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		utils.GatewayTimeoutResponse(c, err.Error())
		return
	}
	utils.BadGatewayResponse(c, err.Error())
}
