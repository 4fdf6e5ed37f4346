// internal/handlers/admin.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/brianstore/store-backend/internal/services"
	"github.com/brianstore/store-backend/internal/utils"
)

type AdminHandler struct {
	store *services.StoreService
}

func NewAdminHandler(store *services.StoreService) *AdminHandler {
	return &AdminHandler{store: store}
}

// POST /admin/reset
func (h *AdminHandler) ResetData(c *gin.Context) {
	var req services.ConfirmRequest
	if !bindJSON(c, &req) {
		return
	}
	if !req.Confirm {
		utils.BadRequestResponse(c, "Reset requires confirmation", nil)
		return
	}

	h.store.ResetData(c.Request.Context())

	utils.SuccessResponse(c, gin.H{
		"message": "Store data reset to defaults",
		"state":   h.store.Snapshot(),
	})
}
