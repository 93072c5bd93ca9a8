package lottery

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/j-veylop/lotto-dashboard-tui/internal/models"
)

const (
	// DefaultLookbackPeriods is the window size used when none is chosen.
	DefaultLookbackPeriods = 30
	// DefaultTopCount is how many numbers TopNumbers returns by default.
	DefaultTopCount = 5
)

// FilterRecordsByDate selects the statistics window.
//
// With an empty selectedDate the first lookback records are returned. When
// selectedDate matches a record's Date at index i, records[i:i+lookback] is
// returned: the selected draw followed by up to lookback-1 older draws. An
// unknown date falls back to the first lookback records. A negative lookback
// is treated as 0.
func FilterRecordsByDate(records []models.DrawRecord, selectedDate string, lookback int) models.Window {
	lookback = max(lookback, 0)

	if selectedDate != "" {
		_, idx, found := lo.FindIndexOf(records, func(r models.DrawRecord) bool {
			return r.Date == selectedDate
		})
		if found {
			end := min(idx+lookback, len(records))
			return models.Window{
				Records:      records[idx:end],
				Title:        fmt.Sprintf("Statistics (%s looking back %d periods)", selectedDate, lookback),
				SelectedDate: selectedDate,
				Lookback:     lookback,
			}
		}
	}

	return models.Window{
		Records:  records[:min(lookback, len(records))],
		Title:    fmt.Sprintf("Statistics (most recent %d periods)", lookback),
		Lookback: lookback,
	}
}

// TopNumbers returns the count most frequent numbers in records, in the same
// order CalculateNumberStatistics ranks them.
func TopNumbers(records []models.DrawRecord, count int) []int {
	ranked := CalculateNumberStatistics(records)
	count = min(max(count, 0), len(ranked))

	return lo.Map(ranked[:count], func(s models.NumberStat, _ int) int {
		return s.Number
	})
}

// TopCombination returns the most frequent pair in records. The boolean is
// false when records is empty or when no pair occurred at all.
func TopCombination(records []models.DrawRecord) (models.Pair, bool) {
	if len(records) == 0 {
		return models.Pair{}, false
	}

	ranked := CalculateCombinationStatistics(records)
	if len(ranked) == 0 || ranked[0].Count == 0 {
		return models.Pair{}, false
	}
	return ranked[0].Pair, true
}

// IsClearTop reports whether the first n entries of ranked stats form an
// unambiguous top-n: at least n numbers occurred and the number ranked n+1
// has a strictly lower count than the number ranked n.
func IsClearTop(ranked []models.NumberStat, n int) bool {
	if n <= 0 || len(ranked) < n {
		return false
	}
	if ranked[n-1].Count == 0 {
		return false
	}
	if len(ranked) == n {
		return true
	}
	return ranked[n].Count < ranked[n-1].Count
}
