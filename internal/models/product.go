// internal/models/product.go
package models

import "time"

type Product struct {
	ID       string     `json:"id"`
	Name     string     `json:"name"`
	Category string     `json:"category"`
	Price    float64    `json:"price"`
	Cost     float64    `json:"cost"`
	Stock    int        `json:"stock"`
	MinStock int        `json:"min_stock"`
	LastSold *time.Time `json:"last_sold,omitempty"`
}

// IsLowStock reports whether on-hand units are at or below the reorder threshold.
func (p Product) IsLowStock() bool {
	return p.Stock <= p.MinStock
}

// BelowMinimum is the strict variant used when briefing the assistant.
func (p Product) BelowMinimum() bool {
	return p.Stock < p.MinStock
}
