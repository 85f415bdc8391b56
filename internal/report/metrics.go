package report

import "github.com/boticaplus/backend/internal/domain"

// Qualitative rating labels. The cut points are fixed business rules, not
// tunable constants.
const (
	RatingExcellent        = "Excellent"
	RatingGood             = "Good"
	RatingFair             = "Fair"
	RatingNeedsImprovement = "Needs Improvement"
	RatingSlow             = "Slow"
	RatingPoor             = "Poor"
)

// DeriveMetrics computes every ratio and composite metric from the
// aggregation sums. Every division is guarded: a zero denominator yields 0,
// never NaN or Infinity, so an empty period still produces a well-formed
// summary.
//
// inventoryValue is the CURRENT stock-at-cost snapshot, not a period-start
// snapshot. That is the consistently used business formula across all report
// types; see DESIGN.md before changing it.
func DeriveMetrics(sums Sums, days int, inventoryValue float64) domain.ReportSummary {
	if days < 1 {
		days = 1
	}

	s := domain.ReportSummary{
		TotalRevenue:     sums.TotalRevenue,
		TotalCost:        sums.TotalCost,
		GrossProfit:      sums.TotalRevenue - sums.TotalCost,
		TransactionCount: sums.TransactionCount,
	}

	if s.TotalRevenue > 0 {
		s.ProfitMargin = s.GrossProfit / s.TotalRevenue * 100
	}
	if s.TransactionCount > 0 {
		s.AverageTransaction = s.TotalRevenue / float64(s.TransactionCount)
		s.AverageCost = s.TotalCost / float64(s.TransactionCount)
	}

	s.DailyRevenue = s.TotalRevenue / float64(days)
	s.DailyCost = s.TotalCost / float64(days)
	s.DailyProfit = s.GrossProfit / float64(days)

	if s.TotalCost > 0 {
		s.ROI = s.GrossProfit / s.TotalCost * 100
	}
	if inventoryValue > 0 {
		s.InventoryTurnover = s.TotalCost / inventoryValue
	}
	if s.InventoryTurnover > 0 {
		s.DaysInventory = 365 / s.InventoryTurnover
	}

	return s
}

// MarginRating labels a profit margin percentage.
// >=30 Excellent, 20-29 Good, 15-19 Fair, <15 Needs Improvement.
func MarginRating(marginPercent float64) string {
	switch {
	case marginPercent >= 30:
		return RatingExcellent
	case marginPercent >= 20:
		return RatingGood
	case marginPercent >= 15:
		return RatingFair
	default:
		return RatingNeedsImprovement
	}
}

// TurnoverRating labels an annualized inventory turnover ratio,
// from >=12/yr Excellent down to <3/yr Poor.
func TurnoverRating(turnover float64) string {
	switch {
	case turnover >= 12:
		return RatingExcellent
	case turnover >= 8:
		return RatingGood
	case turnover >= 5:
		return RatingFair
	case turnover >= 3:
		return RatingSlow
	default:
		return RatingPoor
	}
}
