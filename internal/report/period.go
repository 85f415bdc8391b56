// Package report implements the aggregation and financial metrics engine.
// It is pure computation over rows already fetched by the repository layer:
// no I/O, no shared state, safe to invoke concurrently.
package report

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/boticaplus/backend/internal/domain"
)

// DefaultRangeDays is the fallback window applied when a period spec carries
// an unknown symbolic range. The fallback is deliberate: an unknown token
// must never produce an invalid range.
const DefaultRangeDays = 30

// PeriodSpec is the caller-supplied period selection: either a symbolic
// range ("7days", "30days", "90days", "365days", "thisYear") or an explicit
// start/end date pair. The explicit pair wins when both are present.
type PeriodSpec struct {
	Range     string `json:"range"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

// Period is a resolved reporting window, inclusive on both ends after
// day-boundary normalization. Days is always >= 1 so downstream per-day
// averages never divide by zero.
type Period struct {
	Start time.Time
	End   time.Time
	Days  int
}

const dayKeyLayout = "2006-01-02"

var dateLayouts = []string{
	dayKeyLayout,
	time.RFC3339,
	"2006-01-02 15:04:05",
}

// ResolvePeriod turns a period spec into concrete timestamps relative to now.
// Start is floored to 00:00:00 and end ceiled to the last instant of the day
// in now's location, regardless of any time-of-day in the input.
func ResolvePeriod(now time.Time, spec PeriodSpec) Period {
	loc := now.Location()

	if spec.StartDate != "" && spec.EndDate != "" {
		start, okStart := parseDate(spec.StartDate, loc)
		end, okEnd := parseDate(spec.EndDate, loc)
		if okStart && okEnd && !end.Before(start) {
			return newPeriod(startOfDay(start), endOfDay(end))
		}
	}

	end := endOfDay(now)

	if strings.EqualFold(spec.Range, "thisYear") {
		start := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, loc)
		return newPeriod(start, end)
	}

	days := rangeDays(spec.Range)
	// N calendar days inclusive of today, so step back N-1 days
	start := startOfDay(now.AddDate(0, 0, -(days - 1)))
	return newPeriod(start, end)
}

// Info renders the period for report payloads.
func (p Period) Info() domain.PeriodInfo {
	return domain.PeriodInfo{
		StartDate: p.Start.Format(time.RFC3339),
		EndDate:   p.End.Format(time.RFC3339),
		Days:      p.Days,
	}
}

// DayKey formats a timestamp as the local calendar-day bucket key.
func DayKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(dayKeyLayout)
}

func newPeriod(start, end time.Time) Period {
	days := int(math.Ceil(end.Sub(start).Hours() / 24))
	if days < 1 {
		days = 1
	}
	return Period{Start: start, End: end, Days: days}
}

func rangeDays(token string) int {
	raw := strings.TrimSuffix(strings.ToLower(strings.TrimSpace(token)), "days")
	if raw == "" {
		return DefaultRangeDays
	}
	switch raw {
	case "7", "30", "90", "365":
		n, _ := strconv.Atoi(raw)
		return n
	}
	return DefaultRangeDays
}

func parseDate(value string, loc *time.Location) (time.Time, bool) {
	value = strings.TrimSpace(value)
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t.In(loc), true
		}
	}
	return time.Time{}, false
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}
