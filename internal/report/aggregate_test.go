package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/boticaplus/backend/internal/domain"
)

func strPtr(s string) *string { return &s }

func f64Ptr(f float64) *float64 { return &f }

func intPtr(i int) *int { return &i }

func datePtr(t time.Time) *time.Time { return &t }

func testPeriod(t *testing.T) Period {
	t.Helper()
	return ResolvePeriod(fixedNow(), PeriodSpec{Range: "7days"})
}

func saleAt(id string, day time.Time, status domain.SaleStatus, amount float64, method domain.PaymentMethod) domain.SaleRecord {
	return domain.SaleRecord{
		ID:            id,
		CreatedAt:     day,
		Status:        status,
		TotalAmount:   amount,
		PaymentMethod: method,
	}
}

func TestAggregateCompletedOnly(t *testing.T) {
	period := testPeriod(t)
	day := time.Date(2025, time.March, 14, 10, 0, 0, 0, manila)

	sales := []domain.SaleRecord{
		saleAt("s1", day, domain.SaleStatusCompleted, 100, domain.PaymentCash),
		saleAt("s2", day, domain.SaleStatusVoided, 500, domain.PaymentCash),
		saleAt("s3", day, domain.SaleStatusPending, 250, domain.PaymentCard),
		saleAt("s4", day, domain.SaleStatusRefunded, 80, domain.PaymentGCash),
	}
	items := map[string][]domain.SaleLineItem{
		"s1": {{SaleID: "s1", ProductID: "p1", Quantity: 1, UnitPrice: 100, TotalPrice: 100}},
		// items of the voided sale must not leak into any per-item sum
		"s2": {{SaleID: "s2", ProductID: "p1", Quantity: 5, UnitPrice: 100, TotalPrice: 500}},
	}
	products := map[string]domain.Product{
		"p1": {ID: "p1", Name: "Paracetamol 500mg", Category: strPtr("Analgesic"), CostPrice: f64Ptr(30)},
	}

	sums := Aggregate(sales, items, products, period)

	assert.Equal(t, 100.0, sums.TotalRevenue)
	assert.Equal(t, 30.0, sums.TotalCost)
	assert.Equal(t, 1, sums.TransactionCount)
	require.Len(t, sums.Products, 1)
	assert.Equal(t, 1, sums.Products[0].Quantity)
}

func TestAggregateVoidedSaleContributesNothing(t *testing.T) {
	period := testPeriod(t)
	day := time.Date(2025, time.March, 14, 10, 0, 0, 0, manila)

	sums := Aggregate(
		[]domain.SaleRecord{saleAt("s1", day, domain.SaleStatusVoided, 500, domain.PaymentCash)},
		nil, nil, period,
	)

	assert.Zero(t, sums.TotalRevenue)
	assert.Zero(t, sums.TransactionCount)
	assert.Empty(t, sums.Payments)
}

func TestAggregateDenseDaySeries(t *testing.T) {
	period := testPeriod(t)

	sales := []domain.SaleRecord{
		saleAt("s1", time.Date(2025, time.March, 9, 9, 0, 0, 0, manila), domain.SaleStatusCompleted, 50, domain.PaymentCash),
		saleAt("s2", time.Date(2025, time.March, 12, 20, 0, 0, 0, manila), domain.SaleStatusCompleted, 75, domain.PaymentGCash),
	}

	sums := Aggregate(sales, nil, nil, period)

	require.Len(t, sums.DailyTrends, 7)
	for i, trend := range sums.DailyTrends {
		expected := time.Date(2025, time.March, 9+i, 0, 0, 0, 0, manila).Format("2006-01-02")
		assert.Equal(t, expected, trend.Date)
	}
	assert.Equal(t, 50.0, sums.DailyTrends[0].Revenue)
	assert.Equal(t, 1, sums.DailyTrends[0].Transactions)
	// zero-activity days are synthesized, not omitted
	assert.Zero(t, sums.DailyTrends[1].Revenue)
	assert.Equal(t, 75.0, sums.DailyTrends[3].Revenue)
}

func TestAggregateOutOfPeriodSaleIgnored(t *testing.T) {
	period := testPeriod(t)

	sums := Aggregate([]domain.SaleRecord{
		saleAt("s1", time.Date(2025, time.March, 8, 23, 59, 0, 0, manila), domain.SaleStatusCompleted, 40, domain.PaymentCash),
		saleAt("s2", time.Date(2025, time.March, 16, 0, 1, 0, 0, manila), domain.SaleStatusCompleted, 60, domain.PaymentCash),
	}, nil, nil, period)

	assert.Zero(t, sums.TotalRevenue)
	assert.Zero(t, sums.TransactionCount)
}

func TestAggregateDefaultsForMalformedRows(t *testing.T) {
	period := testPeriod(t)
	day := time.Date(2025, time.March, 13, 11, 0, 0, 0, manila)

	sales := []domain.SaleRecord{saleAt("s1", day, domain.SaleStatusCompleted, 120, domain.PaymentDigital)}
	items := map[string][]domain.SaleLineItem{
		"s1": {
			// product with no category and no cost price
			{SaleID: "s1", ProductID: "p1", Quantity: 2, UnitPrice: 40, TotalPrice: 80},
			// product missing from the lookup entirely
			{SaleID: "s1", ProductID: "ghost", Quantity: 1, UnitPrice: 40, TotalPrice: 40},
		},
	}
	products := map[string]domain.Product{
		"p1": {ID: "p1", Name: "Generic Syrup"},
	}

	sums := Aggregate(sales, items, products, period)

	assert.Equal(t, 120.0, sums.TotalRevenue)
	assert.Zero(t, sums.TotalCost)
	require.Len(t, sums.Categories, 1)
	assert.Equal(t, "Uncategorized", sums.Categories[0].Category)
	assert.Equal(t, 120.0, sums.Categories[0].Revenue)
	assert.Equal(t, 3, sums.Categories[0].Quantity)
}

func TestAggregatePaymentBreakdown(t *testing.T) {
	period := testPeriod(t)
	day := time.Date(2025, time.March, 14, 10, 0, 0, 0, manila)

	sums := Aggregate([]domain.SaleRecord{
		saleAt("s1", day, domain.SaleStatusCompleted, 100, domain.PaymentCash),
		saleAt("s2", day, domain.SaleStatusCompleted, 200, domain.PaymentGCash),
		saleAt("s3", day, domain.SaleStatusCompleted, 50, domain.PaymentCash),
	}, nil, nil, period)

	require.Len(t, sums.Payments, 2)
	assert.Equal(t, "cash", sums.Payments[0].Method)
	assert.Equal(t, 150.0, sums.Payments[0].Amount)
	assert.Equal(t, "gcash", sums.Payments[1].Method)
	assert.Equal(t, 200.0, sums.Payments[1].Amount)
}

func TestRankProductsDescendingCapped(t *testing.T) {
	period := testPeriod(t)
	day := time.Date(2025, time.March, 14, 10, 0, 0, 0, manila)

	sales := []domain.SaleRecord{saleAt("s1", day, domain.SaleStatusCompleted, 600, domain.PaymentCash)}
	items := map[string][]domain.SaleLineItem{
		"s1": {
			{SaleID: "s1", ProductID: "p1", Quantity: 1, UnitPrice: 100, TotalPrice: 100},
			{SaleID: "s1", ProductID: "p2", Quantity: 3, UnitPrice: 100, TotalPrice: 300},
			{SaleID: "s1", ProductID: "p3", Quantity: 2, UnitPrice: 100, TotalPrice: 200},
		},
	}

	sums := Aggregate(sales, items, nil, period)

	top := rankProducts(sums.Products, 2)
	require.Len(t, top, 2)
	assert.Equal(t, "p2", top[0].ProductID)
	assert.Equal(t, "p3", top[1].ProductID)

	// ties keep insertion order: p1 before p3 if revenues are equal
	tied := rankProducts([]ProductBucket{
		{ProductID: "a", Revenue: 100},
		{ProductID: "b", Revenue: 100},
		{ProductID: "c", Revenue: 200},
	}, 0)
	require.Len(t, tied, 3)
	assert.Equal(t, "c", tied[0].ProductID)
	assert.Equal(t, "a", tied[1].ProductID)
	assert.Equal(t, "b", tied[2].ProductID)
}
