// internal/handlers/product.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/brianstore/store-backend/internal/models"
	"github.com/brianstore/store-backend/internal/services"
	"github.com/brianstore/store-backend/internal/utils"
)

type ProductHandler struct {
	store *services.StoreService
	ai    *services.AIService
}

func NewProductHandler(store *services.StoreService, ai *services.AIService) *ProductHandler {
	return &ProductHandler{
		store: store,
		ai:    ai,
	}
}

// GET /products
func (h *ProductHandler) GetProducts(c *gin.Context) {
	products := h.store.SearchProducts(c.Query("search"))

	if queryBool(c, "low_stock") {
		filtered := make([]models.Product, 0, len(products))
		for _, p := range products {
			if p.IsLowStock() {
				filtered = append(filtered, p)
			}
		}
		products = filtered
	}

	utils.SuccessResponse(c, gin.H{
		"products": products,
	})
}

// POST /products
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req services.CreateProductRequest
	if !bindJSON(c, &req) {
		return
	}

	if req.ID != "" {
		if _, exists := h.store.Product(req.ID); exists {
			utils.ConflictResponse(c, "Product id already exists", gin.H{"product_id": req.ID})
			return
		}
	}

	product := h.store.AddProduct(c.Request.Context(), req.ToProduct())

	utils.CreatedResponse(c, gin.H{
		"message": "Product created",
		"product": product,
	})
}

// GET /products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	product, ok := h.store.Product(c.Param("id"))
	if !ok {
		utils.NotFoundResponse(c, "Product")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"product": product,
	})
}

// POST /products/:id/restock
func (h *ProductHandler) RestockProduct(c *gin.Context) {
	var req services.RestockRequest
	if !bindJSON(c, &req) {
		return
	}

	product, err := h.store.RestockProduct(c.Request.Context(), c.Param("id"), req.Quantity)
	if err != nil {
		if errors.Is(err, services.ErrProductNotFound) {
			utils.NotFoundResponse(c, "Product")
			return
		}
		utils.BadRequestResponse(c, err.Error(), nil)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"product": product,
	})
}

// POST /products/:id/marketing-message
func (h *ProductHandler) GenerateMarketingMessage(c *gin.Context) {
	product, ok := h.store.Product(c.Param("id"))
	if !ok {
		utils.NotFoundResponse(c, "Product")
		return
	}

	utils.SuccessResponse(c, gin.H{
		"product_id": product.ID,
		"message":    h.ai.GenerateMarketingMessage(c.Request.Context(), product),
	})
}
