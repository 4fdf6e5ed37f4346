// internal/services/store_service_test.go
package services

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/brianstore/store-backend/internal/models"
	"github.com/brianstore/store-backend/internal/persistence"
)

type recordingAnalyst struct {
	mu       sync.Mutex
	products []models.Product
	staff    []models.StaffMetric
	reply    string
}

func (a *recordingAnalyst) AnalyzeStoreHealth(_ context.Context, products []models.Product, staff []models.StaffMetric) string {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.products = products
	a.staff = staff
	return a.reply
}

// cancelAwareBackend fails writes on a cancelled context like a network backend would.
type cancelAwareBackend struct {
	*persistence.MemoryBackend
}

func (b cancelAwareBackend) Put(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return b.MemoryBackend.Put(ctx, key, value)
}

type StoreServiceTestSuite struct {
	suite.Suite
	ctx     context.Context
	backend *persistence.MemoryBackend
	adapter *persistence.Adapter
	analyst *recordingAnalyst
	store   *StoreService
	now     time.Time
}

func (suite *StoreServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.backend = persistence.NewMemoryBackend()
	suite.adapter = persistence.NewAdapter(suite.backend)
	suite.analyst = &recordingAnalyst{reply: "All good, Chief."}
	suite.now = time.Date(2026, 10, 17, 14, 30, 0, 0, time.UTC)

	suite.store = NewStoreService(suite.ctx, suite.adapter, suite.analyst)
	suite.store.now = func() time.Time { return suite.now }
	// Reseed so the demo sales are dated relative to the fixed clock.
	suite.store.ResetData(suite.ctx)
}

// seedProducts replaces the catalog with the given products.
func (suite *StoreServiceTestSuite) seedProducts(products ...models.Product) {
	suite.store.mu.Lock()
	suite.store.state.Products = products
	suite.store.mu.Unlock()
}

func (suite *StoreServiceTestSuite) persisted(key string, out any) {
	raw, err := suite.backend.Get(suite.ctx, key)
	require.NoError(suite.T(), err)
	require.NoError(suite.T(), json.Unmarshal(raw, out))
}

func (suite *StoreServiceTestSuite) TestStartsFromSeedData() {
	snapshot := suite.store.Snapshot()
	assert.Len(suite.T(), snapshot.Products, 6)
	assert.Len(suite.T(), snapshot.Sales, 3)
	assert.Len(suite.T(), snapshot.Alerts, 3)
	assert.Len(suite.T(), snapshot.Staff, 3)
	assert.Equal(suite.T(), models.DefaultSettings(), snapshot.Settings)
}

func (suite *StoreServiceTestSuite) TestLoadsPersistedState() {
	suite.store.AddProduct(suite.ctx, models.Product{ID: "p-new", Name: "Milo 400g", Price: 5, Stock: 3, MinStock: 1})

	reloaded := NewStoreService(suite.ctx, suite.adapter, suite.analyst)
	_, ok := reloaded.Product("p-new")
	assert.True(suite.T(), ok)
}

func (suite *StoreServiceTestSuite) TestRecordSaleLowStockAlert() {
	suite.seedProducts(models.Product{ID: "P", Name: "Pampers", Price: 15, Cost: 11, Stock: 5, MinStock: 10})
	alertsBefore := len(suite.store.Alerts())

	result, ok := suite.store.RecordSale(suite.ctx, models.Sale{
		ID:            "s1",
		Total:         45,
		PaymentMethod: models.PaymentMethodCash,
		Items:         []models.SaleItem{{ProductID: "P", Quantity: 3}},
	})
	require.True(suite.T(), ok)

	product, _ := suite.store.Product("P")
	assert.Equal(suite.T(), 2, product.Stock)
	require.NotNil(suite.T(), product.LastSold)
	assert.Equal(suite.T(), suite.now, *product.LastSold)

	require.Len(suite.T(), result.NewAlerts, 1)
	alert := result.NewAlerts[0]
	assert.Contains(suite.T(), alert.Message, "2 remaining")
	assert.Equal(suite.T(), "Pampers is low on stock (2 remaining)", alert.Message)
	assert.Equal(suite.T(), models.AlertTypeCritical, alert.Type)
	assert.Equal(suite.T(), models.AlertCategoryInventory, alert.Category)
	assert.Equal(suite.T(), models.TimestampJustNow, alert.Timestamp)
	assert.False(suite.T(), alert.IsRead)

	alerts := suite.store.Alerts()
	assert.Len(suite.T(), alerts, alertsBefore+1)
	assert.Equal(suite.T(), alert.ID, alerts[0].ID)

	sales := suite.store.Sales()
	assert.Equal(suite.T(), "s1", sales[0].ID)
	assert.Equal(suite.T(), models.SaleStatusCompleted, sales[0].Status)
	assert.Equal(suite.T(), "Pampers", sales[0].Items[0].Name)
	assert.Equal(suite.T(), 15.0, sales[0].Items[0].UnitPrice)
}

func (suite *StoreServiceTestSuite) TestRecordSaleInsufficientStockChangesNothing() {
	suite.seedProducts(models.Product{ID: "Q", Name: "Guinness", Price: 2.5, Stock: 2, MinStock: 24})
	before := suite.store.Snapshot()

	result, ok := suite.store.RecordSale(suite.ctx, models.Sale{
		Items: []models.SaleItem{{ProductID: "Q", Quantity: 5}},
	})
	assert.False(suite.T(), ok)
	assert.Equal(suite.T(), RejectInsufficientStock, result.Reason)
	assert.Equal(suite.T(), "Q", result.ProductID)
	assert.Equal(suite.T(), before, suite.store.Snapshot())
}

func (suite *StoreServiceTestSuite) TestRecordSaleIsAllOrNothing() {
	suite.seedProducts(
		models.Product{ID: "A", Name: "Sugar", Price: 2, Stock: 10, MinStock: 1},
		models.Product{ID: "B", Name: "Salt", Price: 1, Stock: 1, MinStock: 1},
	)
	before := suite.store.Snapshot()

	_, ok := suite.store.RecordSale(suite.ctx, models.Sale{
		Items: []models.SaleItem{{ProductID: "A", Quantity: 2}, {ProductID: "B", Quantity: 2}},
	})
	assert.False(suite.T(), ok)
	assert.Equal(suite.T(), before, suite.store.Snapshot())
}

func (suite *StoreServiceTestSuite) TestRecordSaleCombinesRepeatedProducts() {
	suite.seedProducts(models.Product{ID: "A", Name: "Sugar", Price: 2, Stock: 3, MinStock: 0})

	result, ok := suite.store.RecordSale(suite.ctx, models.Sale{
		Items: []models.SaleItem{{ProductID: "A", Quantity: 2}, {ProductID: "A", Quantity: 2}},
	})
	assert.False(suite.T(), ok)
	assert.Equal(suite.T(), RejectInsufficientStock, result.Reason)

	_, ok = suite.store.RecordSale(suite.ctx, models.Sale{
		Items: []models.SaleItem{{ProductID: "A", Quantity: 1}, {ProductID: "A", Quantity: 2}},
	})
	require.True(suite.T(), ok)
	product, _ := suite.store.Product("A")
	assert.Equal(suite.T(), 0, product.Stock)
}

func (suite *StoreServiceTestSuite) TestRecordSaleRejections() {
	suite.seedProducts(models.Product{ID: "A", Name: "Sugar", Price: 2.2, Stock: 10, MinStock: 1})

	tests := []struct {
		name   string
		sale   models.Sale
		reason string
	}{
		{"no items", models.Sale{Total: 50, PaymentMethod: models.PaymentMethodCash}, RejectNoItems},
		{"empty items", models.Sale{Items: []models.SaleItem{}}, RejectNoItems},
		{"unknown product", models.Sale{Items: []models.SaleItem{{ProductID: "nope", Quantity: 1}}}, RejectUnknownProduct},
		{"zero quantity", models.Sale{Items: []models.SaleItem{{ProductID: "A", Quantity: 0}}}, RejectInvalidQuantity},
		{"negative quantity", models.Sale{Items: []models.SaleItem{{ProductID: "A", Quantity: -1}}}, RejectInvalidQuantity},
		{"total mismatch", models.Sale{Total: 10, Items: []models.SaleItem{{ProductID: "A", Quantity: 2}}}, RejectTotalMismatch},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			result, ok := suite.store.RecordSale(suite.ctx, tt.sale)
			assert.False(suite.T(), ok)
			assert.Equal(suite.T(), tt.reason, result.Reason)
		})
	}

	product, _ := suite.store.Product("A")
	assert.Equal(suite.T(), 10, product.Stock)
	assert.Len(suite.T(), suite.store.Sales(), 3)
}

func (suite *StoreServiceTestSuite) TestRecordSaleFillsDefaults() {
	suite.seedProducts(models.Product{ID: "A", Name: "Sugar", Price: 2.2, Stock: 10, MinStock: 1})

	result, ok := suite.store.RecordSale(suite.ctx, models.Sale{
		PaymentMethod: models.PaymentMethodMobileMoney,
		Items:         []models.SaleItem{{ProductID: "A", Quantity: 3}},
	})
	require.True(suite.T(), ok)
	assert.NotEmpty(suite.T(), result.Sale.ID)
	assert.Equal(suite.T(), suite.now, result.Sale.Date)
	assert.Equal(suite.T(), 6.6, result.Sale.Total)
	assert.Empty(suite.T(), result.NewAlerts)
}

func (suite *StoreServiceTestSuite) TestRecordSaleAlertsOnlyForTouchedProducts() {
	suite.seedProducts(
		models.Product{ID: "A", Name: "Sugar", Price: 1, Stock: 2, MinStock: 5},
		models.Product{ID: "B", Name: "Salt", Price: 1, Stock: 20, MinStock: 5},
		models.Product{ID: "C", Name: "Rice", Price: 1, Stock: 6, MinStock: 5},
	)

	result, ok := suite.store.RecordSale(suite.ctx, models.Sale{
		Items: []models.SaleItem{{ProductID: "C", Quantity: 1}, {ProductID: "B", Quantity: 1}},
	})
	require.True(suite.T(), ok)
	require.Len(suite.T(), result.NewAlerts, 1)
	assert.Equal(suite.T(), "Rice is low on stock (5 remaining)", result.NewAlerts[0].Message)
}

func (suite *StoreServiceTestSuite) TestRecordSalePersistsSnapshot() {
	suite.seedProducts(models.Product{ID: "A", Name: "Sugar", Price: 1, Stock: 4, MinStock: 2})

	_, ok := suite.store.RecordSale(suite.ctx, models.Sale{ID: "s9", Items: []models.SaleItem{{ProductID: "A", Quantity: 3}}})
	require.True(suite.T(), ok)

	var products []models.Product
	suite.persisted(persistence.KeyProducts, &products)
	require.Len(suite.T(), products, 1)
	assert.Equal(suite.T(), 1, products[0].Stock)

	var sales []models.Sale
	suite.persisted(persistence.KeySales, &sales)
	assert.Equal(suite.T(), "s9", sales[0].ID)

	var alerts []models.Alert
	suite.persisted(persistence.KeyAlerts, &alerts)
	assert.Equal(suite.T(), "Sugar is low on stock (1 remaining)", alerts[0].Message)
}

func (suite *StoreServiceTestSuite) TestAddProduct() {
	kept := suite.store.AddProduct(suite.ctx, models.Product{ID: "custom", Name: "Milo"})
	assert.Equal(suite.T(), "custom", kept.ID)

	generated := suite.store.AddProduct(suite.ctx, models.Product{Name: "Bournvita"})
	assert.NotEmpty(suite.T(), generated.ID)

	products := suite.store.Products()
	assert.Equal(suite.T(), generated.ID, products[len(products)-1].ID)
	assert.Equal(suite.T(), "custom", products[len(products)-2].ID)
}

func (suite *StoreServiceTestSuite) TestUpdateSettingsMerges() {
	name := "Brian Mart"
	settings := suite.store.UpdateSettings(suite.ctx, models.SettingsUpdate{StoreName: &name})
	assert.Equal(suite.T(), "Brian Mart", settings.StoreName)
	assert.Equal(suite.T(), "USD", settings.Currency)

	var persisted models.StoreSettings
	suite.persisted(persistence.KeySettings, &persisted)
	assert.Equal(suite.T(), settings, persisted)
}

func (suite *StoreServiceTestSuite) TestRefreshAIInsightsDoesNotMutate() {
	before := suite.store.Snapshot()

	summary := suite.store.RefreshAIInsights(suite.ctx)
	assert.Equal(suite.T(), "All good, Chief.", summary)
	assert.Len(suite.T(), suite.analyst.products, 6)
	assert.Len(suite.T(), suite.analyst.staff, 3)
	assert.Equal(suite.T(), before, suite.store.Snapshot())
}

func (suite *StoreServiceTestSuite) TestRefreshAIInsightsWithoutAnalyst() {
	store := NewStoreService(suite.ctx, suite.adapter, nil)
	assert.Equal(suite.T(), HealthOffline, store.RefreshAIInsights(suite.ctx))
}

func (suite *StoreServiceTestSuite) TestPersistsAfterCallerCancels() {
	ctx, cancel := context.WithCancel(suite.ctx)
	cancel()

	store := NewStoreService(suite.ctx, persistence.NewAdapter(cancelAwareBackend{suite.backend}), suite.analyst)
	store.AddProduct(ctx, models.Product{ID: "late", Name: "Milo"})

	var products []models.Product
	suite.persisted(persistence.KeyProducts, &products)
	assert.Equal(suite.T(), "late", products[len(products)-1].ID)
}

func (suite *StoreServiceTestSuite) TestResetData() {
	suite.store.AddProduct(suite.ctx, models.Product{ID: "extra", Name: "Extra"})
	suite.store.MarkAlertRead(suite.ctx, "a1")

	suite.store.ResetData(suite.ctx)

	snapshot := suite.store.Snapshot()
	assert.Equal(suite.T(), models.DefaultProducts(), snapshot.Products)
	assert.False(suite.T(), snapshot.Alerts[0].IsRead)

	var products []models.Product
	suite.persisted(persistence.KeyProducts, &products)
	assert.Equal(suite.T(), models.DefaultProducts(), products)
}

func (suite *StoreServiceTestSuite) TestRestockProduct() {
	product, err := suite.store.RestockProduct(suite.ctx, "4", 20)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 25, product.Stock)

	_, err = suite.store.RestockProduct(suite.ctx, "missing", 1)
	assert.ErrorIs(suite.T(), err, ErrProductNotFound)

	_, err = suite.store.RestockProduct(suite.ctx, "4", 0)
	assert.Error(suite.T(), err)
}

func (suite *StoreServiceTestSuite) TestMarkAlertRead() {
	assert.True(suite.T(), suite.store.MarkAlertRead(suite.ctx, "a2"))
	assert.False(suite.T(), suite.store.MarkAlertRead(suite.ctx, "missing"))

	for _, a := range suite.store.Alerts() {
		assert.Equal(suite.T(), a.ID == "a2", a.IsRead, a.ID)
	}
}

func (suite *StoreServiceTestSuite) TestSearchProducts() {
	assert.Len(suite.T(), suite.store.SearchProducts("pantry"), 3)
	assert.Len(suite.T(), suite.store.SearchProducts("COCA"), 1)
	assert.Len(suite.T(), suite.store.SearchProducts(""), 6)
	assert.Empty(suite.T(), suite.store.SearchProducts("caviar"))
}

func (suite *StoreServiceTestSuite) TestHighRiskStaff() {
	risky := suite.store.HighRiskStaff()
	require.Len(suite.T(), risky, 1)
	assert.Equal(suite.T(), "Grace K.", risky[0].Name)
}

func (suite *StoreServiceTestSuite) TestDashboard() {
	_, ok := suite.store.RecordSale(suite.ctx, models.Sale{
		Items: []models.SaleItem{{ProductID: "2", Quantity: 10}},
	})
	require.True(suite.T(), ok)

	metrics := suite.store.Dashboard(suite.now)
	// Seed sales 101 and 102 are dated today; 103 is yesterday.
	assert.Equal(suite.T(), 26.5, metrics.TodaySales)
	assert.Equal(suite.T(), 3, metrics.TodayTransactions)
	assert.Equal(suite.T(), 3.0, metrics.TodayProfit)
	assert.Equal(suite.T(), 4, metrics.CriticalStockCount)
	assert.Equal(suite.T(), 1, metrics.HighRiskStaffCount)
	assert.Equal(suite.T(), 3, metrics.UnreadAlertCount)
}

func (suite *StoreServiceTestSuite) TestObserversNotifiedAfterMutation() {
	var events []ChangeEvent
	unsubscribe := suite.store.Subscribe(func(e ChangeEvent) {
		// Reads must not deadlock inside a notification.
		_ = suite.store.Products()
		events = append(events, e)
	})

	suite.store.AddProduct(suite.ctx, models.Product{Name: "Milo"})
	_, ok := suite.store.RecordSale(suite.ctx, models.Sale{Items: []models.SaleItem{{ProductID: "missing", Quantity: 1}}})
	assert.False(suite.T(), ok)
	suite.store.MarkAlertRead(suite.ctx, "a1")

	require.Len(suite.T(), events, 2)
	assert.Equal(suite.T(), ChangeProductAdded, events[0].Kind)
	assert.Equal(suite.T(), ChangeAlertRead, events[1].Kind)

	unsubscribe()
	suite.store.ResetData(suite.ctx)
	assert.Len(suite.T(), events, 2)
}

func (suite *StoreServiceTestSuite) TestConcurrentSalesNeverOversell() {
	suite.seedProducts(models.Product{ID: "A", Name: "Sugar", Price: 1, Stock: 50, MinStock: 0})

	var wg sync.WaitGroup
	var mu sync.Mutex
	accepted := 0
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, ok := suite.store.RecordSale(suite.ctx, models.Sale{Items: []models.SaleItem{{ProductID: "A", Quantity: 1}}}); ok {
				mu.Lock()
				accepted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	product, _ := suite.store.Product("A")
	assert.Equal(suite.T(), 50, accepted)
	assert.Equal(suite.T(), 0, product.Stock)
}

func TestStoreServiceSuite(t *testing.T) {
	suite.Run(t, new(StoreServiceTestSuite))
}
