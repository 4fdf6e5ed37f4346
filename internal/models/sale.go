// internal/models/sale.go
package models

import "time"

type SaleItem struct {
	ProductID string  `json:"product_id"`
	Quantity  int     `json:"quantity"`
	Name      string  `json:"name,omitempty"`
	UnitPrice float64 `json:"unit_price,omitempty"`
}

type Sale struct {
	ID            string        `json:"id"`
	Total         float64       `json:"total"`
	Date          time.Time     `json:"date"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	Items         []SaleItem    `json:"items"`
	Status        SaleStatus    `json:"status,omitempty"`
}

// Quantities returns the requested units per product, summing repeated lines.
func (s Sale) Quantities() map[string]int {
	quantities := make(map[string]int, len(s.Items))
	for _, item := range s.Items {
		quantities[item.ProductID] += item.Quantity
	}
	return quantities
}

func (s Sale) clone() Sale {
	if s.Items != nil {
		s.Items = append([]SaleItem{}, s.Items...)
	}
	return s
}
