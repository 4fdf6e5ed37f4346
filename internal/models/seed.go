// internal/models/seed.go
package models

import "time"

// DefaultState is the demo catalog a fresh store starts with.
func DefaultState(now time.Time) StoreState {
	return StoreState{
		Products: DefaultProducts(),
		Sales:    DefaultSales(now),
		Alerts:   DefaultAlerts(now),
		Staff:    DefaultStaff(),
		Settings: DefaultSettings(),
	}
}

func DefaultProducts() []Product {
	return []Product{
		{ID: "1", Name: "Blue Band Margarine 500g", Category: "Pantry", Price: 4.50, Cost: 3.50, Stock: 12, MinStock: 20},
		{ID: "2", Name: "Coca Cola 500ml", Category: "Beverages", Price: 1.00, Cost: 0.70, Stock: 145, MinStock: 50},
		{ID: "3", Name: "Indomie Noodles (Chicken)", Category: "Pantry", Price: 0.50, Cost: 0.35, Stock: 8, MinStock: 50},
		{ID: "4", Name: "Pampers Diapers (Size 4)", Category: "Baby", Price: 15.00, Cost: 11.00, Stock: 5, MinStock: 10},
		{ID: "5", Name: "Dangote Sugar 1kg", Category: "Pantry", Price: 2.20, Cost: 1.80, Stock: 40, MinStock: 15},
		{ID: "6", Name: "Guinness Stout", Category: "Alcohol", Price: 2.50, Cost: 1.90, Stock: 2, MinStock: 24},
	}
}

func DefaultSales(now time.Time) []Sale {
	return []Sale{
		{ID: "101", Total: 12.50, Date: now, PaymentMethod: PaymentMethodMobileMoney, Items: []SaleItem{}, Status: SaleStatusCompleted},
		{ID: "102", Total: 4.00, Date: now, PaymentMethod: PaymentMethodCash, Items: []SaleItem{}, Status: SaleStatusCompleted},
		{ID: "103", Total: 22.00, Date: now.Add(-24 * time.Hour), PaymentMethod: PaymentMethodCard, Items: []SaleItem{}, Status: SaleStatusCompleted},
	}
}

func DefaultAlerts(now time.Time) []Alert {
	return []Alert{
		{ID: "a1", Type: AlertTypeCritical, Category: AlertCategoryInventory, Message: "Indomie Noodles stock critical (8 units)", Timestamp: "10 mins ago", CreatedAt: now.Add(-10 * time.Minute)},
		{ID: "a2", Type: AlertTypeWarning, Category: AlertCategoryStaff, Message: "Cash drawer open for > 5 mins without sale", Timestamp: "1 hour ago", CreatedAt: now.Add(-time.Hour)},
		{ID: "a3", Type: AlertTypeInfo, Category: AlertCategoryInventory, Message: "Delivery from Supplier B expected tomorrow", Timestamp: "2 hours ago", CreatedAt: now.Add(-2 * time.Hour)},
	}
}

func DefaultStaff() []StaffMetric {
	return []StaffMetric{
		{Name: "Samuel O.", Shift: "Morning", RiskScore: 12, VoidedTransactions: 1, CashDiscrepancy: 0},
		{Name: "Grace K.", Shift: "Afternoon", RiskScore: 65, VoidedTransactions: 8, CashDiscrepancy: 15.50},
		{Name: "David M.", Shift: "Night", RiskScore: 24, VoidedTransactions: 2, CashDiscrepancy: 2.00},
	}
}
