package backtest

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/montanaflynn/stats"
	"github.com/samber/lo"

	"github.com/j-veylop/lotto-dashboard-tui/internal/models"
)

// ErrInvalidLookback is returned when the lookback window is not positive.
var ErrInvalidLookback = errors.New("lookback must be positive")

// Bet is one simulated ticket, or a skipped draw when Skipped is set.
type Bet struct {
	Period  int
	Date    string
	Numbers []int
	Winning []int
	Matches int
	Cost    int
	Prize   int
	Skipped bool
	Reason  string
}

// NetGain returns prize minus cost for the bet.
func (b Bet) NetGain() int {
	return b.Prize - b.Cost
}

// Won reports whether the bet paid out.
func (b Bet) Won() bool {
	return b.Prize > 0
}

// Result is the outcome of replaying one strategy. Bets are newest-first.
type Result struct {
	Strategy   Strategy
	Lookback   int
	Bets       []Bet
	TotalCost  int
	TotalPrize int
	Wins       int
	Skipped    int
}

// Placed returns how many bets were actually placed.
func (r Result) Placed() int {
	return len(r.Bets) - r.Skipped
}

// NetGain returns total prize minus total cost.
func (r Result) NetGain() int {
	return r.TotalPrize - r.TotalCost
}

// WinRate returns the share of placed bets that paid out, in percent.
func (r Result) WinRate() float64 {
	if r.Placed() == 0 {
		return 0
	}
	return float64(r.Wins) / float64(r.Placed()) * 100
}

// ROI returns net gain over total cost, in percent.
func (r Result) ROI() float64 {
	if r.TotalCost == 0 {
		return 0
	}
	return float64(r.NetGain()) / float64(r.TotalCost) * 100
}

// BetRate returns the share of eligible draws that were bet on, in percent.
func (r Result) BetRate() float64 {
	if len(r.Bets) == 0 {
		return 0
	}
	return float64(r.Placed()) / float64(len(r.Bets)) * 100
}

// NetGainStats returns the mean and standard deviation of per-bet net gain
// over placed bets.
func (r Result) NetGainStats() (mean, stddev float64) {
	gains := lo.FilterMap(r.Bets, func(b Bet, _ int) (float64, bool) {
		return float64(b.NetGain()), !b.Skipped
	})
	if len(gains) == 0 {
		return 0, 0
	}
	mean, _ = stats.Mean(gains)
	stddev, _ = stats.StandardDeviation(gains)
	return mean, stddev
}

// MatchCounts returns how many placed bets matched each number of drawn numbers.
func (r Result) MatchCounts() map[int]int {
	counts := make(map[int]int)
	for _, b := range r.Bets {
		if !b.Skipped {
			counts[b.Matches]++
		}
	}
	return counts
}

// MonthStat aggregates placed bets for one calendar month.
type MonthStat struct {
	Month   string
	Bets    int
	Wins    int
	Cost    int
	NetGain int
}

// Monthly groups placed bets by the "YYYY/MM" prefix of their draw date,
// oldest month first.
func (r Result) Monthly() []MonthStat {
	byMonth := lo.GroupBy(lo.Reject(r.Bets, func(b Bet, _ int) bool { return b.Skipped }),
		func(b Bet) string { return monthOf(b.Date) })

	months := lo.Keys(byMonth)
	slices.Sort(months)

	return lo.Map(months, func(m string, _ int) MonthStat {
		bets := byMonth[m]
		return MonthStat{
			Month:   m,
			Bets:    len(bets),
			Wins:    lo.CountBy(bets, Bet.Won),
			Cost:    lo.SumBy(bets, func(b Bet) int { return b.Cost }),
			NetGain: lo.SumBy(bets, Bet.NetGain),
		}
	})
}

func monthOf(date string) string {
	parts := strings.SplitN(date, "/", 3)
	if len(parts) < 2 {
		return date
	}
	return parts[0] + "/" + parts[1]
}

// Run replays strategy over records, which must be newest-first.
//
// The bet for the draw at index i is chosen from the lookback draws strictly
// older than it, records[i+1:i+1+lookback], so the target never informs its
// own bet. Draws without a full window behind them are not simulated.
func Run(records []models.DrawRecord, strategy Strategy, lookback int) (Result, error) {
	if lookback <= 0 {
		return Result{}, fmt.Errorf("%w: %d", ErrInvalidLookback, lookback)
	}
	if _, err := ParseStrategy(string(strategy)); err != nil {
		return Result{}, err
	}

	result := Result{Strategy: strategy, Lookback: lookback}

	for i := 0; i+1+lookback <= len(records); i++ {
		target := records[i]
		window := records[i+1 : i+1+lookback]

		bet := Bet{
			Period:  len(records) - i,
			Date:    target.Date,
			Winning: slices.Clone(target.Numbers),
		}

		numbers, reason := strategy.pick(window)
		if reason != "" {
			bet.Skipped = true
			bet.Reason = reason
			result.Skipped++
			result.Bets = append(result.Bets, bet)
			continue
		}

		bet.Numbers = numbers
		bet.Matches = countMatches(numbers, target.Numbers)
		bet.Cost = strategy.Cost()
		bet.Prize = strategy.Prize(bet.Matches)

		result.TotalCost += bet.Cost
		result.TotalPrize += bet.Prize
		if bet.Won() {
			result.Wins++
		}
		result.Bets = append(result.Bets, bet)
	}

	return result, nil
}

// RunAll replays every known strategy with the same lookback.
func RunAll(records []models.DrawRecord, lookback int) ([]Result, error) {
	results := make([]Result, 0, len(Strategies()))
	for _, s := range Strategies() {
		r, err := Run(records, s, lookback)
		if err != nil {
			return nil, fmt.Errorf("failed to run %s: %w", s, err)
		}
		results = append(results, r)
	}
	return results, nil
}

func countMatches(bet, winning []int) int {
	return len(lo.Intersect(lo.Uniq(bet), lo.Uniq(winning)))
}
