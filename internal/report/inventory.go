package report

import (
	"time"

	"github.com/boticaplus/backend/internal/domain"
)

// ExpiringWindowDays is the look-ahead window for the "expiring" bucket.
const ExpiringWindowDays = 30

// StockStatusOf classifies a product's on-hand quantity. The buckets are
// mutually exclusive: zero stock is out-of-stock, never low-stock.
func StockStatusOf(p domain.Product) domain.StockStatus {
	switch {
	case p.StockInPieces == 0:
		return domain.StockOut
	case p.StockInPieces <= p.ReorderThreshold():
		return domain.StockLow
	default:
		return domain.StockNormal
	}
}

// ExpiryStatusOf classifies a product against its expiry date. Products with
// no expiry date count as valid. Comparison is by calendar day.
func ExpiryStatusOf(p domain.Product, today time.Time) domain.ExpiryStatus {
	if p.ExpiryDate == nil {
		return domain.ExpiryValid
	}

	day := startOfDay(today)
	expiry := startOfDay(p.ExpiryDate.In(today.Location()))

	switch {
	case expiry.Before(day):
		return domain.ExpiryExpired
	case !expiry.After(day.AddDate(0, 0, ExpiringWindowDays)):
		return domain.ExpiryExpiring
	default:
		return domain.ExpiryValid
	}
}

// InventoryValueAtCost values the current stock snapshot at cost price.
func InventoryValueAtCost(products []domain.Product) float64 {
	var total float64
	for _, p := range products {
		total += p.CostPriceValue() * float64(p.StockInPieces)
	}
	return total
}

// BuildInventoryReport classifies every product and totals the stock values.
func BuildInventoryReport(products []domain.Product, now time.Time) domain.InventoryReport {
	rep := domain.InventoryReport{
		GeneratedAt:      now.Format(time.RFC3339),
		TotalProducts:    len(products),
		StockValueAtCost: InventoryValueAtCost(products),
		LowStock:         []domain.ProductStockInfo{},
		OutOfStock:       []domain.ProductStockInfo{},
		Expiring:         []domain.ProductStockInfo{},
		Expired:          []domain.ProductStockInfo{},
	}

	for _, p := range products {
		rep.StockValueAtRetail += p.PricePerPiece * float64(p.StockInPieces)

		info := domain.ProductStockInfo{
			ProductID:     p.ID,
			Name:          p.Name,
			Category:      p.CategoryName(),
			StockInPieces: p.StockInPieces,
			ReorderLevel:  p.ReorderThreshold(),
			StockStatus:   StockStatusOf(p),
			ExpiryStatus:  ExpiryStatusOf(p, now),
		}
		if p.ExpiryDate != nil {
			info.ExpiryDate = p.ExpiryDate.In(now.Location()).Format(dayKeyLayout)
		}

		switch info.StockStatus {
		case domain.StockOut:
			rep.OutOfStockCount++
			rep.OutOfStock = append(rep.OutOfStock, info)
		case domain.StockLow:
			rep.LowStockCount++
			rep.LowStock = append(rep.LowStock, info)
		default:
			rep.NormalStockCount++
		}

		switch info.ExpiryStatus {
		case domain.ExpiryExpired:
			rep.ExpiredCount++
			rep.Expired = append(rep.Expired, info)
		case domain.ExpiryExpiring:
			rep.ExpiringCount++
			rep.Expiring = append(rep.Expiring, info)
		}
	}

	return rep
}
