// internal/services/store_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/brianstore/store-backend/internal/models"
	"github.com/brianstore/store-backend/internal/persistence"
)

var ErrProductNotFound = errors.New("product not found")

// Sale rejection reasons.
const (
	RejectNoItems           = "sale has no items"
	RejectUnknownProduct    = "unknown product"
	RejectInsufficientStock = "insufficient stock"
	RejectInvalidQuantity   = "quantity must be positive"
	RejectTotalMismatch     = "total does not match line items"
)

type ChangeKind string

const (
	ChangeSaleRecorded    ChangeKind = "sale_recorded"
	ChangeProductAdded    ChangeKind = "product_added"
	ChangeProductRestock  ChangeKind = "product_restocked"
	ChangeAlertRead       ChangeKind = "alert_read"
	ChangeSettingsUpdated ChangeKind = "settings_updated"
	ChangeReset           ChangeKind = "reset"
)

type ChangeEvent struct {
	Kind ChangeKind `json:"kind"`
	At   time.Time  `json:"at"`
}

// Observer is notified after every successful mutation.
type Observer func(ChangeEvent)

// StoreAnalyst produces the owner-facing health summary.
type StoreAnalyst interface {
	AnalyzeStoreHealth(ctx context.Context, products []models.Product, staff []models.StaffMetric) string
}

type SaleResult struct {
	Sale      models.Sale    `json:"sale"`
	NewAlerts []models.Alert `json:"new_alerts"`
	Reason    string         `json:"reason,omitempty"`
	ProductID string         `json:"product_id,omitempty"`
}

type DashboardMetrics struct {
	TodaySales         float64 `json:"today_sales"`
	TodayProfit        float64 `json:"today_profit"`
	TodayTransactions  int     `json:"today_transactions"`
	CriticalStockCount int     `json:"critical_stock_count"`
	HighRiskStaffCount int     `json:"high_risk_staff_count"`
	UnreadAlertCount   int     `json:"unread_alert_count"`
}

// StoreService owns the products, sales, alerts, staff metrics and settings.
// All mutations go through it; the persistence adapter only mirrors its state.
type StoreService struct {
	mu    sync.RWMutex
	state models.StoreState

	adapter *persistence.Adapter
	analyst StoreAnalyst
	now     func() time.Time

	obsMu     sync.Mutex
	observers map[int]Observer
	nextObsID int

	log *logrus.Entry
}

// NewStoreService loads the persisted state, falling back to seed data per key.
func NewStoreService(ctx context.Context, adapter *persistence.Adapter, analyst StoreAnalyst) *StoreService {
	s := &StoreService{
		adapter:   adapter,
		analyst:   analyst,
		now:       func() time.Time { return time.Now().UTC() },
		observers: make(map[int]Observer),
		log:       logrus.WithField("component", "store"),
	}
	s.state = adapter.LoadState(ctx, models.DefaultState(s.now()))
	s.log.WithFields(logrus.Fields{
		"products": len(s.state.Products),
		"sales":    len(s.state.Sales),
		"alerts":   len(s.state.Alerts),
	}).Info("Store state loaded")
	return s
}

// Subscribe registers an observer and returns a function that removes it.
func (s *StoreService) Subscribe(observer Observer) func() {
	s.obsMu.Lock()
	defer s.obsMu.Unlock()

	id := s.nextObsID
	s.nextObsID++
	s.observers[id] = observer

	return func() {
		s.obsMu.Lock()
		defer s.obsMu.Unlock()
		delete(s.observers, id)
	}
}

func (s *StoreService) notify(kind ChangeKind) {
	s.obsMu.Lock()
	observers := make([]Observer, 0, len(s.observers))
	for _, o := range s.observers {
		observers = append(observers, o)
	}
	s.obsMu.Unlock()

	event := ChangeEvent{Kind: kind, At: s.now()}
	for _, o := range observers {
		o(event)
	}
}

// persist must be called with the write lock held. The write outlives a
// cancelled caller so the backend does not miss a committed change.
func (s *StoreService) persist(ctx context.Context) {
	s.adapter.SaveState(context.WithoutCancel(ctx), s.state)
}

func (s *StoreService) findProduct(id string) int {
	for i, p := range s.state.Products {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// RecordSale admits a sale only if every line can be served from current stock.
// Quantities for a product appearing on several lines are checked together.
// On rejection nothing changes and the returned result carries the reason.
func (s *StoreService) RecordSale(ctx context.Context, sale models.Sale) (SaleResult, bool) {
	s.mu.Lock()

	result, ok := s.validateSale(&sale)
	if !ok {
		s.mu.Unlock()
		s.log.WithFields(logrus.Fields{
			"sale_id":    sale.ID,
			"reason":     result.Reason,
			"product_id": result.ProductID,
		}).Info("Sale rejected")
		return result, false
	}

	now := s.now()
	if sale.ID == "" {
		sale.ID = uuid.NewString()
	}
	if sale.Date.IsZero() {
		sale.Date = now
	}
	sale.Status = models.SaleStatusCompleted

	s.state.Sales = append([]models.Sale{sale}, s.state.Sales...)

	quantities := sale.Quantities()
	var alerts []models.Alert
	for i := range s.state.Products {
		p := &s.state.Products[i]
		qty, touched := quantities[p.ID]
		if !touched {
			continue
		}
		p.Stock -= qty
		lastSold := now
		p.LastSold = &lastSold

		if p.IsLowStock() {
			alerts = append(alerts, models.Alert{
				ID:        uuid.NewString(),
				Type:      models.AlertTypeCritical,
				Category:  models.AlertCategoryInventory,
				Message:   fmt.Sprintf("%s is low on stock (%d remaining)", p.Name, p.Stock),
				Timestamp: models.TimestampJustNow,
				CreatedAt: now,
			})
		}
	}
	if len(alerts) > 0 {
		s.state.Alerts = append(append([]models.Alert{}, alerts...), s.state.Alerts...)
	}

	s.persist(ctx)
	s.mu.Unlock()

	s.log.WithFields(logrus.Fields{
		"sale_id": sale.ID,
		"total":   sale.Total,
		"items":   len(sale.Items),
		"alerts":  len(alerts),
	}).Info("Sale recorded")
	s.notify(ChangeSaleRecorded)

	return SaleResult{Sale: sale, NewAlerts: alerts}, true
}

// validateSale checks the whole sale against current stock and fills in item
// snapshots and a missing total. It must be called with the write lock held.
func (s *StoreService) validateSale(sale *models.Sale) (SaleResult, bool) {
	if len(sale.Items) == 0 {
		return SaleResult{Reason: RejectNoItems}, false
	}

	items := make([]models.SaleItem, len(sale.Items))
	copy(items, sale.Items)

	requested := make(map[string]int, len(items))
	sum := decimal.Zero
	for i, item := range items {
		if item.Quantity <= 0 {
			return SaleResult{Reason: RejectInvalidQuantity, ProductID: item.ProductID}, false
		}
		idx := s.findProduct(item.ProductID)
		if idx < 0 {
			return SaleResult{Reason: RejectUnknownProduct, ProductID: item.ProductID}, false
		}
		product := s.state.Products[idx]

		requested[item.ProductID] += item.Quantity
		if product.Stock < requested[item.ProductID] {
			return SaleResult{Reason: RejectInsufficientStock, ProductID: item.ProductID}, false
		}

		if items[i].Name == "" {
			items[i].Name = product.Name
		}
		if items[i].UnitPrice == 0 {
			items[i].UnitPrice = product.Price
		}
		sum = sum.Add(decimal.NewFromFloat(items[i].UnitPrice).Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	sum = sum.Round(2)
	if sale.Total == 0 {
		sale.Total = sum.InexactFloat64()
	} else if !decimal.NewFromFloat(sale.Total).Round(2).Equal(sum) {
		return SaleResult{Reason: RejectTotalMismatch}, false
	}

	sale.Items = items
	return SaleResult{}, true
}

// AddProduct appends a product to the catalog. An id is generated only when missing.
func (s *StoreService) AddProduct(ctx context.Context, product models.Product) models.Product {
	if product.ID == "" {
		product.ID = uuid.NewString()
	}

	s.mu.Lock()
	s.state.Products = append(s.state.Products, product)
	s.persist(ctx)
	s.mu.Unlock()

	s.log.WithField("product_id", product.ID).Info("Product added")
	s.notify(ChangeProductAdded)
	return product
}

// RestockProduct adds delivered units to a product's stock.
func (s *StoreService) RestockProduct(ctx context.Context, id string, quantity int) (models.Product, error) {
	if quantity <= 0 {
		return models.Product{}, fmt.Errorf("restock quantity must be positive, got %d", quantity)
	}

	s.mu.Lock()
	idx := s.findProduct(id)
	if idx < 0 {
		s.mu.Unlock()
		return models.Product{}, ErrProductNotFound
	}
	s.state.Products[idx].Stock += quantity
	product := s.state.Products[idx]
	s.persist(ctx)
	s.mu.Unlock()

	s.log.WithFields(logrus.Fields{"product_id": id, "quantity": quantity}).Info("Product restocked")
	s.notify(ChangeProductRestock)
	return product, nil
}

// MarkAlertRead flags an alert as read. It reports false for unknown ids.
func (s *StoreService) MarkAlertRead(ctx context.Context, id string) bool {
	s.mu.Lock()
	found := false
	for i := range s.state.Alerts {
		if s.state.Alerts[i].ID == id {
			s.state.Alerts[i].IsRead = true
			found = true
			break
		}
	}
	if found {
		s.persist(ctx)
	}
	s.mu.Unlock()

	if found {
		s.notify(ChangeAlertRead)
	}
	return found
}

// UpdateSettings merges the present fields of update into the settings.
func (s *StoreService) UpdateSettings(ctx context.Context, update models.SettingsUpdate) models.StoreSettings {
	s.mu.Lock()
	s.state.Settings = s.state.Settings.Merge(update)
	settings := s.state.Settings
	s.persist(ctx)
	s.mu.Unlock()

	s.notify(ChangeSettingsUpdated)
	return settings
}

// RefreshAIInsights asks the analyst about the current catalog and staff.
func (s *StoreService) RefreshAIInsights(ctx context.Context) string {
	s.mu.RLock()
	products := append([]models.Product(nil), s.state.Products...)
	staff := append([]models.StaffMetric(nil), s.state.Staff...)
	s.mu.RUnlock()

	if s.analyst == nil {
		return HealthOffline
	}
	return s.analyst.AnalyzeStoreHealth(ctx, products, staff)
}

// ResetData wipes persisted state and starts over from seed data.
func (s *StoreService) ResetData(ctx context.Context) {
	s.mu.Lock()
	s.adapter.Clear(context.WithoutCancel(ctx))
	s.state = models.DefaultState(s.now())
	s.persist(ctx)
	s.mu.Unlock()

	s.log.Warn("Store data reset to defaults")
	s.notify(ChangeReset)
}

func (s *StoreService) Snapshot() models.StoreState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

func (s *StoreService) Product(id string) (models.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if idx := s.findProduct(id); idx >= 0 {
		return s.state.Products[idx], true
	}
	return models.Product{}, false
}

func (s *StoreService) Products() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Product{}, s.state.Products...)
}

// SearchProducts matches term case-insensitively against name or category.
func (s *StoreService) SearchProducts(term string) []models.Product {
	term = strings.ToLower(strings.TrimSpace(term))

	s.mu.RLock()
	defer s.mu.RUnlock()

	matches := []models.Product{}
	for _, p := range s.state.Products {
		if term == "" ||
			strings.Contains(strings.ToLower(p.Name), term) ||
			strings.Contains(strings.ToLower(p.Category), term) {
			matches = append(matches, p)
		}
	}
	return matches
}

// Sales returns the sales history, newest first.
func (s *StoreService) Sales() []models.Sale {
	return s.Snapshot().Sales
}

// Alerts returns all alerts, newest first.
func (s *StoreService) Alerts() []models.Alert {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.Alert{}, s.state.Alerts...)
}

func (s *StoreService) StaffMetrics() []models.StaffMetric {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]models.StaffMetric{}, s.state.Staff...)
}

func (s *StoreService) HighRiskStaff() []models.StaffMetric {
	s.mu.RLock()
	defer s.mu.RUnlock()

	risky := []models.StaffMetric{}
	for _, m := range s.state.Staff {
		if m.IsHighRisk() {
			risky = append(risky, m)
		}
	}
	return risky
}

func (s *StoreService) Settings() models.StoreSettings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Settings
}

// Dashboard summarises the calendar day containing now (in now's location).
// Profit uses the price captured on each sale line and the product's current cost.
func (s *StoreService) Dashboard(now time.Time) DashboardMetrics {
	s.mu.RLock()
	defer s.mu.RUnlock()

	year, month, day := now.Date()
	var metrics DashboardMetrics
	sales := decimal.Zero
	profit := decimal.Zero

	for _, sale := range s.state.Sales {
		y, m, d := sale.Date.In(now.Location()).Date()
		if y != year || m != month || d != day {
			continue
		}
		metrics.TodayTransactions++
		sales = sales.Add(decimal.NewFromFloat(sale.Total))

		for _, item := range sale.Items {
			idx := s.findProduct(item.ProductID)
			if idx < 0 {
				continue
			}
			margin := decimal.NewFromFloat(item.UnitPrice).Sub(decimal.NewFromFloat(s.state.Products[idx].Cost))
			profit = profit.Add(margin.Mul(decimal.NewFromInt(int64(item.Quantity))))
		}
	}
	metrics.TodaySales = sales.Round(2).InexactFloat64()
	metrics.TodayProfit = profit.Round(2).InexactFloat64()

	for _, p := range s.state.Products {
		if p.IsLowStock() {
			metrics.CriticalStockCount++
		}
	}
	for _, m := range s.state.Staff {
		if m.IsHighRisk() {
			metrics.HighRiskStaffCount++
		}
	}
	for _, a := range s.state.Alerts {
		if !a.IsRead {
			metrics.UnreadAlertCount++
		}
	}
	return metrics
}
