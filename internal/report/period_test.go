package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var manila = time.FixedZone("PHT", 8*3600)

func fixedNow() time.Time {
	// Saturday afternoon, mid-month, non-leap year
	return time.Date(2025, time.March, 15, 14, 30, 45, 0, manila)
}

func TestResolvePeriodSevenDays(t *testing.T) {
	p := ResolvePeriod(fixedNow(), PeriodSpec{Range: "7days"})

	assert.Equal(t, time.Date(2025, time.March, 9, 0, 0, 0, 0, manila), p.Start)
	assert.Equal(t, time.Date(2025, time.March, 15, 23, 59, 59, 999999999, manila), p.End)
	assert.Equal(t, 7, p.Days)
}

func TestResolvePeriodThisYear(t *testing.T) {
	p := ResolvePeriod(fixedNow(), PeriodSpec{Range: "thisYear"})

	assert.Equal(t, time.Date(2025, time.January, 1, 0, 0, 0, 0, manila), p.Start)
	// Jan 31 + Feb 28 + Mar 15
	assert.Equal(t, 74, p.Days)
}

func TestResolvePeriodExplicitPairNormalizesDayBounds(t *testing.T) {
	p := ResolvePeriod(fixedNow(), PeriodSpec{
		StartDate: "2025-02-01 08:15:00",
		EndDate:   "2025-02-10 12:00:00",
	})

	assert.Equal(t, time.Date(2025, time.February, 1, 0, 0, 0, 0, manila), p.Start)
	assert.Equal(t, time.Date(2025, time.February, 10, 23, 59, 59, 999999999, manila), p.End)
	assert.Equal(t, 10, p.Days)
}

func TestResolvePeriodSingleDay(t *testing.T) {
	p := ResolvePeriod(fixedNow(), PeriodSpec{
		StartDate: "2025-03-15",
		EndDate:   "2025-03-15",
	})

	require.Equal(t, 1, p.Days)
}

func TestResolvePeriodUnknownTokenFallsBackToThirtyDays(t *testing.T) {
	for _, token := range []string{"", "lastCentury", "14days", "weekly"} {
		p := ResolvePeriod(fixedNow(), PeriodSpec{Range: token})
		assert.Equal(t, 30, p.Days, "token %q", token)
		assert.Equal(t, time.Date(2025, time.February, 14, 0, 0, 0, 0, manila), p.Start, "token %q", token)
	}
}

func TestResolvePeriodInvalidPairFallsBackToRange(t *testing.T) {
	p := ResolvePeriod(fixedNow(), PeriodSpec{
		Range:     "90days",
		StartDate: "not-a-date",
		EndDate:   "2025-03-15",
	})

	assert.Equal(t, 90, p.Days)
}
