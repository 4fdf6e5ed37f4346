// internal/handlers/sale.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/brianstore/store-backend/internal/services"
	"github.com/brianstore/store-backend/internal/utils"
)

type SaleHandler struct {
	store *services.StoreService
}

func NewSaleHandler(store *services.StoreService) *SaleHandler {
	return &SaleHandler{store: store}
}

// GET /sales
func (h *SaleHandler) GetSales(c *gin.Context) {
	params := utils.GetPaginationParams(c)
	utils.PaginatedResponse(c, utils.Paginate(h.store.Sales(), params))
}

// POST /sales
func (h *SaleHandler) RecordSale(c *gin.Context) {
	var req services.RecordSaleRequest
	if !bindJSON(c, &req) {
		return
	}

	result, ok := h.store.RecordSale(c.Request.Context(), req.ToSale())
	if !ok {
		utils.ConflictResponse(c, "Sale rejected: "+result.Reason, gin.H{
			"reason":     result.Reason,
			"product_id": result.ProductID,
		})
		return
	}

	utils.CreatedResponse(c, gin.H{
		"sale":   result.Sale,
		"alerts": result.NewAlerts,
	})
}
