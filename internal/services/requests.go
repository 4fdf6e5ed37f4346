// internal/services/requests.go
package services

import (
	"time"

	"github.com/brianstore/store-backend/internal/models"
)

type CreateProductRequest struct {
	ID       string  `json:"id,omitempty" validate:"omitempty,max=64"`
	Name     string  `json:"name" validate:"required,max=200"`
	Category string  `json:"category" validate:"required,max=100"`
	Price    float64 `json:"price" validate:"gte=0"`
	Cost     float64 `json:"cost" validate:"gte=0"`
	Stock    int     `json:"stock" validate:"gte=0"`
	MinStock int     `json:"min_stock" validate:"gte=0"`
}

func (r CreateProductRequest) ToProduct() models.Product {
	return models.Product{
		ID:       r.ID,
		Name:     r.Name,
		Category: r.Category,
		Price:    r.Price,
		Cost:     r.Cost,
		Stock:    r.Stock,
		MinStock: r.MinStock,
	}
}

type RestockRequest struct {
	Quantity int `json:"quantity" validate:"required,gt=0"`
}

type SaleItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"gt=0"`
}

type RecordSaleRequest struct {
	ID            string            `json:"id,omitempty" validate:"omitempty,max=64"`
	Total         float64           `json:"total" validate:"gte=0"`
	Date          *time.Time        `json:"date,omitempty"`
	PaymentMethod string            `json:"payment_method" validate:"required,payment_method"`
	Items         []SaleItemRequest `json:"items" validate:"required,min=1,dive"`
}

func (r RecordSaleRequest) ToSale() models.Sale {
	sale := models.Sale{
		ID:            r.ID,
		Total:         r.Total,
		PaymentMethod: models.PaymentMethod(r.PaymentMethod),
		Items:         make([]models.SaleItem, len(r.Items)),
	}
	if r.Date != nil {
		sale.Date = r.Date.UTC()
	}
	for i, item := range r.Items {
		sale.Items[i] = models.SaleItem{ProductID: item.ProductID, Quantity: item.Quantity}
	}
	return sale
}

type ChatRequest struct {
	Message string `json:"message" validate:"required,max=2000"`
}

// ConfirmRequest guards destructive operations.
type ConfirmRequest struct {
	Confirm bool `json:"confirm"`
}
