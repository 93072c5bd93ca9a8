// Package lottery computes frequency statistics over 539 draw history.
//
// Every function is pure: it reads its input, allocates fresh output and
// keeps no state between calls, so callers may use it from any goroutine.
// History slices are expected newest-first and are never re-sorted.
package lottery

import (
	"cmp"
	"slices"

	"github.com/montanaflynn/stats"

	"github.com/j-veylop/lotto-dashboard-tui/internal/models"
)

const (
	// MinNumber is the smallest number that can be drawn.
	MinNumber = 1
	// MaxNumber is the largest number that can be drawn.
	MaxNumber = 39
	// NumbersPerDraw is how many numbers each draw contains.
	NumbersPerDraw = 5
	// PairCount is C(39,2), the number of distinct two-number combinations.
	PairCount = MaxNumber * (MaxNumber - 1) / 2
)

// CalculateNumberStatistics counts how often each number appears in records.
//
// Every number 1..39 is present in the result even with a zero count. Numbers
// are counted as given: an out-of-range value gets its own entry and a
// duplicate inside one draw is counted twice. The result is ordered by count
// descending, then by number ascending.
func CalculateNumberStatistics(records []models.DrawRecord) []models.NumberStat {
	counts := make(map[int]int, MaxNumber)
	for n := MinNumber; n <= MaxNumber; n++ {
		counts[n] = 0
	}

	for _, record := range records {
		for _, n := range record.Numbers {
			counts[n]++
		}
	}

	result := make([]models.NumberStat, 0, len(counts))
	for n, c := range counts {
		result = append(result, models.NumberStat{
			Number:     n,
			Count:      c,
			Percentage: percentage(c, len(records)),
		})
	}

	slices.SortFunc(result, func(a, b models.NumberStat) int {
		if a.Count != b.Count {
			return cmp.Compare(b.Count, a.Count)
		}
		return cmp.Compare(a.Number, b.Number)
	})

	return result
}

// CalculateCombinationStatistics counts how often each two-number pair
// appears together in a draw.
//
// All 741 pairs are always returned. Pairs with a value outside 1..39 or with
// two equal values are skipped rather than counted. The result is ordered by
// count descending, then by (Low, High) ascending.
func CalculateCombinationStatistics(records []models.DrawRecord) []models.CombinationStat {
	var counts [MaxNumber + 1][MaxNumber + 1]int

	for _, record := range records {
		numbers := slices.Clone(record.Numbers)
		slices.Sort(numbers)

		for i := 0; i < len(numbers); i++ {
			for j := i + 1; j < len(numbers); j++ {
				a, b := numbers[i], numbers[j]
				if !isPairKey(a, b) {
					continue
				}
				counts[a][b]++
			}
		}
	}

	result := make([]models.CombinationStat, 0, PairCount)
	for a := MinNumber; a <= MaxNumber; a++ {
		for b := a + 1; b <= MaxNumber; b++ {
			result = append(result, models.CombinationStat{
				Pair:       models.Pair{Low: a, High: b},
				Count:      counts[a][b],
				Percentage: percentage(counts[a][b], len(records)),
			})
		}
	}

	// Pairs were generated in (Low, High) order, so a stable sort on count
	// keeps that order for ties.
	slices.SortStableFunc(result, func(x, y models.CombinationStat) int {
		return cmp.Compare(y.Count, x.Count)
	})

	return result
}

// isPairKey reports whether (a, b) is one of the 741 known combinations.
func isPairKey(a, b int) bool {
	return a >= MinNumber && b <= MaxNumber && a < b
}

// percentage returns count/total as a percentage rounded to two decimals,
// or 0 when total is 0.
func percentage(count, total int) float64 {
	if total == 0 {
		return 0
	}
	rounded, err := stats.Round(float64(count)/float64(total)*100, 2)
	if err != nil {
		return 0
	}
	return rounded
}
