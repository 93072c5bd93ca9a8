package lottery

import (
	"github.com/montanaflynn/stats"
	"github.com/samber/lo"

	"github.com/j-veylop/lotto-dashboard-tui/internal/models"
)

// hotColdSize is how many numbers are listed as hot and cold.
const hotColdSize = 5

// Summary describes the spread of per-number counts in a statistics window.
type Summary struct {
	Mean   float64
	Median float64
	StdDev float64
	Min    float64
	Max    float64
	// Hot holds the most frequent numbers, most frequent first.
	Hot []int
	// Cold holds the least frequent numbers, least frequent first.
	Cold []int
}

// Summarize computes descriptive statistics over ranked number stats as
// returned by CalculateNumberStatistics. An empty input yields a zero Summary.
func Summarize(ranked []models.NumberStat) Summary {
	if len(ranked) == 0 {
		return Summary{}
	}

	data := stats.Float64Data(lo.Map(ranked, func(s models.NumberStat, _ int) float64 {
		return float64(s.Count)
	}))

	var sum Summary
	sum.Mean, _ = data.Mean()
	sum.Median, _ = data.Median()
	sum.StdDev, _ = data.StandardDeviation()
	sum.Min, _ = data.Min()
	sum.Max, _ = data.Max()

	sum.Mean = round2(sum.Mean)
	sum.Median = round2(sum.Median)
	sum.StdDev = round2(sum.StdDev)

	n := min(hotColdSize, len(ranked))
	sum.Hot = lo.Map(ranked[:n], func(s models.NumberStat, _ int) int { return s.Number })
	sum.Cold = lo.Map(lo.Reverse(append([]models.NumberStat(nil), ranked[len(ranked)-n:]...)),
		func(s models.NumberStat, _ int) int { return s.Number })

	return sum
}

func round2(v float64) float64 {
	r, err := stats.Round(v, 2)
	if err != nil {
		return v
	}
	return r
}
