package report

import (
	"github.com/boticaplus/backend/internal/domain"
)

// CategoryBucket accumulates line-item activity for one product category.
type CategoryBucket struct {
	Category string
	Revenue  float64
	Cost     float64
	Quantity int
}

// ProductBucket accumulates sold quantity and revenue for one product.
type ProductBucket struct {
	ProductID string
	Name      string
	Quantity  int
	Revenue   float64
}

// Sums is the output of a single aggregation pass. Breakdown slices keep
// insertion order; ranking/sorting happens in the report builders so that
// revenue ties preserve this order.
type Sums struct {
	TotalRevenue     float64
	TotalCost        float64
	TransactionCount int

	// DailyTrends is dense over the full period: every calendar day appears,
	// zero-valued when no sales occurred. Trend consumers rely on a gap-free
	// series indexed by day.
	DailyTrends []domain.DailyTrend
	Categories  []CategoryBucket
	Products    []ProductBucket
	Payments    []domain.PaymentBreakdown
}

type accumulator struct {
	period Period

	totalRevenue     float64
	totalCost        float64
	transactionCount int

	dayIndex map[string]int
	days     []domain.DailyTrend

	categoryIndex map[string]int
	categories    []CategoryBucket

	productIndex map[string]int
	products     []ProductBucket

	paymentIndex map[domain.PaymentMethod]int
	payments     []domain.PaymentBreakdown
}

// Aggregate runs the single-pass accumulation over the supplied rows. Sales
// are re-filtered to completed status and to the period window defensively;
// the source is expected to have filtered by range already. Inputs are never
// mutated.
func Aggregate(
	sales []domain.SaleRecord,
	itemsBySale map[string][]domain.SaleLineItem,
	productsByID map[string]domain.Product,
	period Period,
) Sums {
	acc := newAccumulator(period)

	for _, sale := range sales {
		// Hard invariant: only completed sales contribute to any sum,
		// including the nested per-item sums below.
		if !sale.IsCompleted() {
			continue
		}
		if sale.CreatedAt.Before(period.Start) || sale.CreatedAt.After(period.End) {
			continue
		}

		acc.addSale(sale)

		for _, item := range itemsBySale[sale.ID] {
			acc.addLineItem(item, productsByID[item.ProductID])
		}
	}

	return acc.finish()
}

func newAccumulator(period Period) *accumulator {
	acc := &accumulator{
		period:        period,
		dayIndex:      make(map[string]int),
		categoryIndex: make(map[string]int),
		productIndex:  make(map[string]int),
		paymentIndex:  make(map[domain.PaymentMethod]int),
	}

	// Pre-seed every calendar day in [start,end] so the trend series comes
	// out dense and ordered without a separate fill pass.
	loc := period.Start.Location()
	for d := period.Start; !d.After(period.End); d = d.AddDate(0, 0, 1) {
		key := DayKey(d, loc)
		acc.dayIndex[key] = len(acc.days)
		acc.days = append(acc.days, domain.DailyTrend{Date: key})
	}

	return acc
}

func (acc *accumulator) addSale(sale domain.SaleRecord) {
	acc.totalRevenue += sale.TotalAmount
	acc.transactionCount++

	key := DayKey(sale.CreatedAt, acc.period.Start.Location())
	if idx, ok := acc.dayIndex[key]; ok {
		acc.days[idx].Revenue += sale.TotalAmount
		acc.days[idx].Transactions++
	}

	if idx, ok := acc.paymentIndex[sale.PaymentMethod]; ok {
		acc.payments[idx].Amount += sale.TotalAmount
	} else {
		acc.paymentIndex[sale.PaymentMethod] = len(acc.payments)
		acc.payments = append(acc.payments, domain.PaymentBreakdown{
			Method: string(sale.PaymentMethod),
			Amount: sale.TotalAmount,
		})
	}
}

func (acc *accumulator) addLineItem(item domain.SaleLineItem, product domain.Product) {
	// A line item whose product is unknown still aggregates: cost defaults
	// to 0 and category to "Uncategorized". One malformed row must not
	// abort the rest of the batch.
	itemCost := product.CostPriceValue() * float64(item.Quantity)
	acc.totalCost += itemCost

	category := product.CategoryName()
	if idx, ok := acc.categoryIndex[category]; ok {
		acc.categories[idx].Revenue += item.TotalPrice
		acc.categories[idx].Cost += itemCost
		acc.categories[idx].Quantity += item.Quantity
	} else {
		acc.categoryIndex[category] = len(acc.categories)
		acc.categories = append(acc.categories, CategoryBucket{
			Category: category,
			Revenue:  item.TotalPrice,
			Cost:     itemCost,
			Quantity: item.Quantity,
		})
	}

	name := product.Name
	if name == "" {
		name = item.ProductID
	}
	if idx, ok := acc.productIndex[item.ProductID]; ok {
		acc.products[idx].Quantity += item.Quantity
		acc.products[idx].Revenue += item.TotalPrice
	} else {
		acc.productIndex[item.ProductID] = len(acc.products)
		acc.products = append(acc.products, ProductBucket{
			ProductID: item.ProductID,
			Name:      name,
			Quantity:  item.Quantity,
			Revenue:   item.TotalPrice,
		})
	}
}

func (acc *accumulator) finish() Sums {
	return Sums{
		TotalRevenue:     acc.totalRevenue,
		TotalCost:        acc.totalCost,
		TransactionCount: acc.transactionCount,
		DailyTrends:      acc.days,
		Categories:       acc.categories,
		Products:         acc.products,
		Payments:         acc.payments,
	}
}
