// internal/handlers/staff.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/brianstore/store-backend/internal/services"
	"github.com/brianstore/store-backend/internal/utils"
)

type StaffHandler struct {
	store *services.StoreService
}

func NewStaffHandler(store *services.StoreService) *StaffHandler {
	return &StaffHandler{store: store}
}

// GET /staff
func (h *StaffHandler) GetStaff(c *gin.Context) {
	staff := h.store.StaffMetrics()
	if queryBool(c, "high_risk") {
		staff = h.store.HighRiskStaff()
	}

	utils.SuccessResponse(c, gin.H{
		"staff": staff,
	})
}
