package lottery

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/j-veylop/lotto-dashboard-tui/internal/models"
)

func mockRecords() []models.DrawRecord {
	return []models.DrawRecord{
		{Date: "2024/01/10", Numbers: []int{1, 2, 3, 4, 5}, Timestamp: "2024-01-10T00:00:00"},
		{Date: "2024/01/09", Numbers: []int{1, 2, 6, 7, 8}, Timestamp: "2024-01-09T00:00:00"},
		{Date: "2024/01/08", Numbers: []int{1, 3, 9, 10, 11}, Timestamp: "2024-01-08T00:00:00"},
		{Date: "2024/01/07", Numbers: []int{2, 3, 12, 13, 14}, Timestamp: "2024-01-07T00:00:00"},
		{Date: "2024/01/06", Numbers: []int{4, 5, 15, 16, 17}, Timestamp: "2024-01-06T00:00:00"},
	}
}

func randomRecords(n int) []models.DrawRecord {
	rng := rand.New(rand.NewPCG(539, 39))
	records := make([]models.DrawRecord, n)
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range records {
		perm := rng.Perm(MaxNumber)[:NumbersPerDraw]
		numbers := make([]int, NumbersPerDraw)
		for j, p := range perm {
			numbers[j] = p + 1
		}
		day := start.AddDate(0, 0, -i)
		records[i] = models.DrawRecord{
			Date:      day.Format("2006/01/02"),
			Numbers:   numbers,
			Timestamp: day.Format("2006-01-02T15:04:05"),
		}
	}
	return records
}

func statByNumber(stats []models.NumberStat) map[int]models.NumberStat {
	m := make(map[int]models.NumberStat, len(stats))
	for _, s := range stats {
		m[s.Number] = s
	}
	return m
}

func TestCalculateNumberStatistics(t *testing.T) {
	t.Run("mock history", func(t *testing.T) {
		stats := CalculateNumberStatistics(mockRecords())
		require.Len(t, stats, MaxNumber)

		byNumber := statByNumber(stats)
		tests := []struct {
			number     int
			count      int
			percentage float64
		}{
			{1, 3, 60},
			{2, 3, 60},
			{3, 3, 60},
			{4, 2, 40},
			{5, 2, 40},
			{6, 1, 20},
			{17, 1, 20},
			{18, 0, 0},
			{39, 0, 0},
		}
		for _, tt := range tests {
			got := byNumber[tt.number]
			assert.Equal(t, tt.count, got.Count, "count of %d", tt.number)
			assert.InDelta(t, tt.percentage, got.Percentage, 0.001, "percentage of %d", tt.number)
		}

		top := []int{stats[0].Number, stats[1].Number, stats[2].Number, stats[3].Number, stats[4].Number}
		assert.Equal(t, []int{1, 2, 3, 4, 5}, top)
	})

	t.Run("empty input", func(t *testing.T) {
		stats := CalculateNumberStatistics(nil)
		require.Len(t, stats, MaxNumber)
		for i, s := range stats {
			assert.Equal(t, 0, s.Count)
			assert.Zero(t, s.Percentage)
			assert.Equal(t, i+1, s.Number, "zero counts are ordered by number")
		}
	})

	t.Run("single record", func(t *testing.T) {
		stats := CalculateNumberStatistics([]models.DrawRecord{
			{Date: "2024/01/01", Numbers: []int{5, 10, 15, 20, 25}, Timestamp: "2024-01-01T00:00:00"},
		})
		drawn := map[int]bool{5: true, 10: true, 15: true, 20: true, 25: true}
		for _, s := range stats {
			if drawn[s.Number] {
				assert.Equal(t, 1, s.Count)
				assert.InDelta(t, 100.0, s.Percentage, 0.001)
			} else {
				assert.Equal(t, 0, s.Count)
				assert.Zero(t, s.Percentage)
			}
		}
	})

	t.Run("sum of counts", func(t *testing.T) {
		records := randomRecords(200)
		total := 0
		for _, s := range CalculateNumberStatistics(records) {
			total += s.Count
		}
		assert.Equal(t, NumbersPerDraw*len(records), total)
	})

	t.Run("percentages are rounded to two decimals", func(t *testing.T) {
		records := mockRecords()[:3]
		byNumber := statByNumber(CalculateNumberStatistics(records))
		assert.Equal(t, 33.33, byNumber[4].Percentage)
		assert.Equal(t, 66.67, byNumber[2].Percentage)
	})

	t.Run("duplicate numbers are counted twice", func(t *testing.T) {
		records := []models.DrawRecord{{Date: "d", Numbers: []int{7, 7, 8, 9, 10}}}
		byNumber := statByNumber(CalculateNumberStatistics(records))
		assert.Equal(t, 2, byNumber[7].Count)
		assert.Equal(t, 200.0, byNumber[7].Percentage)
	})

	t.Run("out of range numbers get their own entry", func(t *testing.T) {
		records := []models.DrawRecord{{Date: "d", Numbers: []int{0, 40, 1, 2, 3}}}
		stats := CalculateNumberStatistics(records)
		assert.Len(t, stats, MaxNumber+2, "tolerant counting adds entries for 0 and 40")
		byNumber := statByNumber(stats)
		assert.Equal(t, 1, byNumber[0].Count)
		assert.Equal(t, 1, byNumber[40].Count)
	})

	t.Run("ranking is count descending then number ascending", func(t *testing.T) {
		stats := CalculateNumberStatistics(randomRecords(100))
		for i := 1; i < len(stats); i++ {
			prev, cur := stats[i-1], stats[i]
			if prev.Count == cur.Count {
				assert.Less(t, prev.Number, cur.Number)
			} else {
				assert.Greater(t, prev.Count, cur.Count)
			}
		}
	})
}

func TestCalculateCombinationStatistics(t *testing.T) {
	t.Run("mock history", func(t *testing.T) {
		stats := CalculateCombinationStatistics(mockRecords())
		require.Len(t, stats, PairCount)

		want := []models.Pair{{Low: 1, High: 2}, {Low: 1, High: 3}, {Low: 2, High: 3}, {Low: 4, High: 5}}
		for i, pair := range want {
			assert.Equal(t, pair, stats[i].Pair)
			assert.Equal(t, 2, stats[i].Count)
			assert.InDelta(t, 40.0, stats[i].Percentage, 0.001)
		}
		assert.Equal(t, 1, stats[len(want)].Count)
	})

	t.Run("empty input", func(t *testing.T) {
		stats := CalculateCombinationStatistics(nil)
		require.Len(t, stats, PairCount)
		assert.Equal(t, models.Pair{Low: 1, High: 2}, stats[0].Pair)
		assert.Equal(t, models.Pair{Low: 38, High: 39}, stats[len(stats)-1].Pair)
		for _, s := range stats {
			assert.Equal(t, 0, s.Count)
			assert.Zero(t, s.Percentage)
		}
	})

	t.Run("every pair is present exactly once", func(t *testing.T) {
		seen := make(map[models.Pair]bool, PairCount)
		for _, s := range CalculateCombinationStatistics(randomRecords(50)) {
			assert.Less(t, s.Pair.Low, s.Pair.High)
			assert.False(t, seen[s.Pair], "duplicate pair %s", s.Pair)
			seen[s.Pair] = true
		}
		assert.Len(t, seen, PairCount)
	})

	t.Run("sum of counts", func(t *testing.T) {
		records := randomRecords(200)
		total := 0
		for _, s := range CalculateCombinationStatistics(records) {
			total += s.Count
		}
		assert.Equal(t, 10*len(records), total)
	})

	t.Run("unsorted input is counted and left untouched", func(t *testing.T) {
		records := []models.DrawRecord{{Date: "d", Numbers: []int{25, 5, 20, 10, 15}}}
		stats := CalculateCombinationStatistics(records)
		assert.Equal(t, []int{25, 5, 20, 10, 15}, records[0].Numbers)
		assert.Equal(t, models.Pair{Low: 5, High: 10}, stats[0].Pair)
		assert.Equal(t, 1, stats[0].Count)
	})

	t.Run("duplicates and out of range values are skipped", func(t *testing.T) {
		records := []models.DrawRecord{
			{Date: "a", Numbers: []int{1, 1, 2, 3, 4}},
			{Date: "b", Numbers: []int{0, 40, 1, 2, 3}},
		}
		var stats []models.CombinationStat
		require.NotPanics(t, func() { stats = CalculateCombinationStatistics(records) })
		require.Len(t, stats, PairCount)

		total := 0
		for _, s := range stats {
			total += s.Count
		}
		// [1,1,2,3,4] yields 9 distinct-value pairs, [0,1,2,3,40] yields 3.
		assert.Equal(t, 12, total)
		assert.Equal(t, models.Pair{Low: 1, High: 2}, stats[0].Pair)
		assert.Equal(t, 3, stats[0].Count)
	})
}

func TestStatisticsPerformance(t *testing.T) {
	records := randomRecords(1000)

	start := time.Now()
	CalculateNumberStatistics(records)
	CalculateCombinationStatistics(records)
	elapsed := time.Since(start)

	assert.Less(t, elapsed, time.Second)
}

func BenchmarkCalculateCombinationStatistics(b *testing.B) {
	records := randomRecords(1000)
	for b.Loop() {
		CalculateCombinationStatistics(records)
	}
}
