package report

import "github.com/boticaplus/backend/internal/domain"

// flatSlopeEpsilon separates a genuinely flat series from float noise when
// labeling the trend direction.
const flatSlopeEpsilon = 0.01

// ProjectTrend fits a least-squares line through the daily revenue series and
// extrapolates revenue over an equally long following window. This is a naive
// linear projection, not a forecast model; anything smarter is out of scope.
func ProjectTrend(trends []domain.DailyTrend) domain.TrendProjection {
	n := len(trends)
	if n == 0 {
		return domain.TrendProjection{Direction: "flat"}
	}

	var sumX, sumY, sumXY, sumXX float64
	for i, t := range trends {
		x := float64(i)
		sumX += x
		sumY += t.Revenue
		sumXY += x * t.Revenue
		sumXX += x * x
	}

	var slope float64
	denom := float64(n)*sumXX - sumX*sumX
	if denom != 0 {
		slope = (float64(n)*sumXY - sumX*sumY) / denom
	}
	intercept := (sumY - slope*sumX) / float64(n)

	// Project the next n days, clamping each day at zero: revenue cannot
	// extrapolate negative.
	var projected float64
	for i := n; i < 2*n; i++ {
		day := intercept + slope*float64(i)
		if day > 0 {
			projected += day
		}
	}

	direction := "flat"
	switch {
	case slope > flatSlopeEpsilon:
		direction = "up"
	case slope < -flatSlopeEpsilon:
		direction = "down"
	}

	return domain.TrendProjection{
		SlopePerDay:       slope,
		NextPeriodRevenue: projected,
		Direction:         direction,
	}
}
