// Package backtest replays "bet the hottest numbers" strategies over draw
// history and reports what they would have cost and won.
package backtest

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/j-veylop/lotto-dashboard-tui/internal/lottery"
	"github.com/j-veylop/lotto-dashboard-tui/internal/models"
)

// ErrUnknownStrategy is returned by ParseStrategy for names it does not know.
var ErrUnknownStrategy = errors.New("unknown strategy")

// Strategy names a betting rule.
type Strategy string

const (
	// StrategyTop5 bets the five most frequent numbers of the window on a 539 ticket.
	StrategyTop5 Strategy = "top5"
	// StrategyClearTop5 is StrategyTop5 but sits out draws whose top five is tied.
	StrategyClearTop5 Strategy = "clear-top5"
	// StrategyTop2Pair bets the two most frequent numbers as a 39 lotto two-number ticket.
	StrategyTop2Pair Strategy = "top2-pair"
	// StrategyTopCombination bets the most frequent pair as a 39 lotto two-number ticket.
	StrategyTopCombination Strategy = "top-combination"
)

const (
	// TicketCost539 is the price of one five-number 539 ticket.
	TicketCost539 = 50
	// TicketCostPair is the price of one two-number 39 lotto ticket.
	TicketCostPair = 25
	// PairPrize is paid when both numbers of a pair ticket are drawn.
	PairPrize = 1125
)

// prizes539 maps matched numbers to the 539 prize.
var prizes539 = map[int]int{
	5: 8_000_000,
	4: 20_000,
	3: 300,
	2: 50,
}

// Strategies returns every known strategy in display order.
func Strategies() []Strategy {
	return []Strategy{StrategyTop5, StrategyClearTop5, StrategyTop2Pair, StrategyTopCombination}
}

// ParseStrategy resolves a strategy name, ignoring case and surrounding space.
func ParseStrategy(name string) (Strategy, error) {
	s := Strategy(strings.ToLower(strings.TrimSpace(name)))
	if lo.Contains(Strategies(), s) {
		return s, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}

// Description returns a one-line explanation of the strategy.
func (s Strategy) Description() string {
	switch s {
	case StrategyTop5:
		return "Bet the 5 most frequent numbers of the lookback window (539, 50 per ticket)"
	case StrategyClearTop5:
		return "Bet the 5 most frequent numbers only when the top 5 is not tied (539, 50 per ticket)"
	case StrategyTop2Pair:
		return "Bet the 2 most frequent numbers as a pair (39 lotto, 25 per ticket)"
	case StrategyTopCombination:
		return "Bet the most frequent pair of the lookback window (39 lotto, 25 per ticket)"
	default:
		return string(s)
	}
}

// Cost returns the ticket price for the strategy.
func (s Strategy) Cost() int {
	switch s {
	case StrategyTop2Pair, StrategyTopCombination:
		return TicketCostPair
	default:
		return TicketCost539
	}
}

// Prize returns the payout for a ticket with the given number of matches.
func (s Strategy) Prize(matches int) int {
	switch s {
	case StrategyTop2Pair, StrategyTopCombination:
		if matches == 2 {
			return PairPrize
		}
		return 0
	default:
		return prizes539[matches]
	}
}

// pick chooses the numbers to bet from a lookback window. An empty reason
// means a bet is placed; otherwise the draw is skipped for that reason.
func (s Strategy) pick(window []models.DrawRecord) (numbers []int, reason string) {
	switch s {
	case StrategyTop5:
		return lottery.TopNumbers(window, lottery.DefaultTopCount), ""
	case StrategyClearTop5:
		ranked := lottery.CalculateNumberStatistics(window)
		if !lottery.IsClearTop(ranked, lottery.DefaultTopCount) {
			return nil, "top 5 is tied with the next number"
		}
		return lo.Map(ranked[:lottery.DefaultTopCount], func(st models.NumberStat, _ int) int {
			return st.Number
		}), ""
	case StrategyTop2Pair:
		return lottery.TopNumbers(window, 2), ""
	case StrategyTopCombination:
		pair, ok := lottery.TopCombination(window)
		if !ok {
			return nil, "no pair was drawn in the window"
		}
		return pair.Numbers(), ""
	default:
		return nil, "unknown strategy"
	}
}
