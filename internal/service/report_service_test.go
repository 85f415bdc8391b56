package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boticaplus/backend/internal/domain"
	"github.com/boticaplus/backend/internal/report"
)

var manila = time.FixedZone("PHT", 8*3600)

func fixedNow() time.Time {
	return time.Date(2025, time.March, 15, 14, 30, 0, 0, manila)
}

type stubSalesRepo struct {
	sales []domain.SaleRecord
	items map[string][]domain.SaleLineItem
	calls int
}

func (r *stubSalesRepo) GetSalesInRange(ctx context.Context, start, end time.Time) ([]domain.SaleRecord, error) {
	r.calls++
	out := []domain.SaleRecord{}
	for _, s := range r.sales {
		if !s.CreatedAt.Before(start) && !s.CreatedAt.After(end) {
			out = append(out, s)
		}
	}
	return out, nil
}

func (r *stubSalesRepo) GetLineItems(ctx context.Context, saleIDs []string) (map[string][]domain.SaleLineItem, error) {
	out := map[string][]domain.SaleLineItem{}
	for _, id := range saleIDs {
		if items, ok := r.items[id]; ok {
			out[id] = items
		}
	}
	return out, nil
}

type stubProductRepo struct {
	products []domain.Product
}

func (r *stubProductRepo) GetProducts(ctx context.Context) ([]domain.Product, error) {
	return r.products, nil
}

type memoryCache struct {
	store map[string][]byte
	hits  int
}

func (c *memoryCache) Get(ctx context.Context, key string, dest any) (bool, error) {
	if _, ok := c.store[key]; !ok {
		return false, nil
	}
	c.hits++
	return false, nil // decode skipped; hit counting is enough for the test
}

func (c *memoryCache) Set(ctx context.Context, key string, value any) error {
	c.store[key] = []byte("x")
	return nil
}

func (c *memoryCache) InvalidateAll(ctx context.Context) error {
	c.store = map[string][]byte{}
	return nil
}

func costPtr(v float64) *float64 { return &v }

func newTestReportService() (*ReportService, *stubSalesRepo) {
	salesRepo := &stubSalesRepo{
		sales: []domain.SaleRecord{
			{
				ID:            "s1",
				CreatedAt:     time.Date(2025, time.March, 14, 9, 0, 0, 0, manila),
				Status:        domain.SaleStatusCompleted,
				TotalAmount:   100,
				PaymentMethod: domain.PaymentCash,
			},
			{
				ID:            "s2",
				CreatedAt:     time.Date(2025, time.March, 14, 10, 0, 0, 0, manila),
				Status:        domain.SaleStatusVoided,
				TotalAmount:   500,
				PaymentMethod: domain.PaymentCash,
			},
		},
		items: map[string][]domain.SaleLineItem{
			"s1": {{SaleID: "s1", ProductID: "p1", Quantity: 1, UnitPrice: 100, TotalPrice: 100}},
		},
	}
	productRepo := &stubProductRepo{
		products: []domain.Product{
			{ID: "p1", Name: "Paracetamol 500mg", CostPrice: costPtr(30), PricePerPiece: 50, StockInPieces: 20},
		},
	}

	svc := NewReportService(salesRepo, productRepo, nil)
	svc.now = fixedNow
	return svc, salesRepo
}

func TestSalesReportFiltersAndDerives(t *testing.T) {
	svc, _ := newTestReportService()

	rep, err := svc.SalesReport(context.Background(), report.PeriodSpec{Range: "7days"}, 0)
	require.NoError(t, err)

	assert.Equal(t, 100.0, rep.Summary.TotalRevenue)
	assert.Equal(t, 1, rep.Summary.TransactionCount)
	assert.Equal(t, 30.0, rep.Summary.TotalCost)
	assert.Equal(t, 70.0, rep.Summary.GrossProfit)
	assert.Len(t, rep.DailyTrends, 7)
}

func TestDashboardBundlesAllReports(t *testing.T) {
	svc, salesRepo := newTestReportService()

	dash, err := svc.Dashboard(context.Background(), report.PeriodSpec{Range: "30days"}, 5)
	require.NoError(t, err)

	// one row fetch serves all three reports
	assert.Equal(t, 1, salesRepo.calls)
	assert.Equal(t, 100.0, dash.Sales.Summary.TotalRevenue)
	assert.Equal(t, 100.0, dash.Financial.Summary.TotalRevenue)
	assert.Equal(t, 1, dash.Inventory.TotalProducts)
}

func TestInventoryReportStandalone(t *testing.T) {
	svc, _ := newTestReportService()

	rep, err := svc.InventoryReport(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, rep.TotalProducts)
	assert.Equal(t, 600.0, rep.StockValueAtCost)
	assert.Equal(t, 1000.0, rep.StockValueAtRetail)
}

func TestSalesReportWritesCache(t *testing.T) {
	svc, _ := newTestReportService()
	mc := &memoryCache{store: map[string][]byte{}}
	svc.cache = mc

	_, err := svc.SalesReport(context.Background(), report.PeriodSpec{Range: "7days"}, 0)
	require.NoError(t, err)
	require.Len(t, mc.store, 1)

	_, err = svc.SalesReport(context.Background(), report.PeriodSpec{Range: "7days"}, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, mc.hits)
}
