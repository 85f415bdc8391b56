package report

import (
	"sort"

	"github.com/boticaplus/backend/internal/domain"
)

// DefaultTopProducts caps the product ranking when the caller does not supply
// a limit.
const DefaultTopProducts = 10

// BuildSalesReport runs the full pipeline for the sales report: aggregate,
// derive metrics, rank breakdowns. products supplies both the per-item cost
// lookup and the current inventory value used by the turnover metric.
func BuildSalesReport(
	period Period,
	sales []domain.SaleRecord,
	itemsBySale map[string][]domain.SaleLineItem,
	products []domain.Product,
	topLimit int,
) domain.SalesReport {
	sums := Aggregate(sales, itemsBySale, ProductIndex(products), period)
	summary := DeriveMetrics(sums, period.Days, InventoryValueAtCost(products))

	return domain.SalesReport{
		Period:            period.Info(),
		Summary:           summary,
		CategoryBreakdown: rankCategories(sums.Categories),
		DailyTrends:       sums.DailyTrends,
		PaymentBreakdown:  sums.Payments,
		TopProducts:       rankProducts(sums.Products, topLimit),
	}
}

// BuildFinancialReport derives the performance view: the same metric set plus
// qualitative ratings and the linear trend projection over daily revenue.
func BuildFinancialReport(
	period Period,
	sales []domain.SaleRecord,
	itemsBySale map[string][]domain.SaleLineItem,
	products []domain.Product,
) domain.FinancialReport {
	sums := Aggregate(sales, itemsBySale, ProductIndex(products), period)
	summary := DeriveMetrics(sums, period.Days, InventoryValueAtCost(products))

	return domain.FinancialReport{
		Period:         period.Info(),
		Summary:        summary,
		MarginRating:   MarginRating(summary.ProfitMargin),
		TurnoverRating: TurnoverRating(summary.InventoryTurnover),
		Trend:          ProjectTrend(sums.DailyTrends),
		HistoricalData: sums.DailyTrends,
	}
}

// ProductIndex keys products by ID for the aggregation pass.
func ProductIndex(products []domain.Product) map[string]domain.Product {
	index := make(map[string]domain.Product, len(products))
	for _, p := range products {
		index[p.ID] = p
	}
	return index
}

// rankCategories orders categories by revenue descending. The sort is stable
// so revenue ties keep aggregation insertion order; no secondary key exists.
func rankCategories(buckets []CategoryBucket) []domain.CategoryBreakdown {
	out := make([]domain.CategoryBreakdown, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, domain.CategoryBreakdown{
			Category: b.Category,
			Revenue:  b.Revenue,
			Cost:     b.Cost,
			Profit:   b.Revenue - b.Cost,
			Quantity: b.Quantity,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Revenue > out[j].Revenue
	})
	return out
}

// rankProducts orders products by revenue descending and caps the list.
func rankProducts(buckets []ProductBucket, limit int) []domain.TopProduct {
	if limit <= 0 {
		limit = DefaultTopProducts
	}

	out := make([]domain.TopProduct, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, domain.TopProduct{
			ProductID: b.ProductID,
			Name:      b.Name,
			Quantity:  b.Quantity,
			Revenue:   b.Revenue,
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Revenue > out[j].Revenue
	})

	if len(out) > limit {
		out = out[:limit]
	}
	return out
}
