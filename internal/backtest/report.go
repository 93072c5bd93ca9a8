package backtest

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/samber/lo"
)

const rule = "============================================================"

// windowNote states how the lookback window is taken. Replays that count the
// target draw, or draws after it, in their window report different figures.
const windowNote = "Windows hold only draws older than the bet; results are not comparable with replays whose window includes the target draw."

// RenderReport writes a plain-text report of r to w: prize table, match
// breakdown, financial summary, monthly breakdown and every bet newest-first.
func RenderReport(w io.Writer, r Result) error {
	var b strings.Builder

	fmt.Fprintf(&b, "Strategy backtest report: %s\n", r.Strategy)
	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "Strategy: %s\n", r.Strategy.Description())
	fmt.Fprintf(&b, "Lookback: %d periods before each draw\n", r.Lookback)
	b.WriteString(windowNote + "\n\n")

	b.WriteString("Prizes:\n")
	switch r.Strategy {
	case StrategyTop2Pair, StrategyTopCombination:
		fmt.Fprintf(&b, "  both numbers drawn: %s\n", humanize.Comma(PairPrize))
	default:
		for _, m := range []int{5, 4, 3, 2} {
			fmt.Fprintf(&b, "  %d matched: %s\n", m, humanize.Comma(int64(prizes539[m])))
		}
	}
	fmt.Fprintf(&b, "  ticket cost: %d\n\n", r.Strategy.Cost())

	b.WriteString("Matches (placed bets only):\n")
	counts := r.MatchCounts()
	matches := lo.Keys(counts)
	slices.Sort(matches)
	slices.Reverse(matches)
	for _, m := range matches {
		if prize := r.Strategy.Prize(m); prize > 0 {
			fmt.Fprintf(&b, "  %d matched: %d times, %s each\n", m, counts[m], humanize.Comma(int64(prize)))
		} else {
			fmt.Fprintf(&b, "  %d matched: %d times, no prize\n", m, counts[m])
		}
	}
	b.WriteString("\n")

	mean, stddev := r.NetGainStats()
	b.WriteString("Summary:\n")
	fmt.Fprintf(&b, "  draws simulated: %d\n", len(r.Bets))
	fmt.Fprintf(&b, "  bets placed:     %d\n", r.Placed())
	fmt.Fprintf(&b, "  draws skipped:   %d\n", r.Skipped)
	fmt.Fprintf(&b, "  wins:            %d (%.2f%%)\n", r.Wins, r.WinRate())
	fmt.Fprintf(&b, "  total cost:      %s\n", humanize.Comma(int64(r.TotalCost)))
	fmt.Fprintf(&b, "  total prize:     %s\n", humanize.Comma(int64(r.TotalPrize)))
	fmt.Fprintf(&b, "  net gain:        %s\n", humanize.Comma(int64(r.NetGain())))
	fmt.Fprintf(&b, "  ROI:             %.2f%%\n", r.ROI())
	fmt.Fprintf(&b, "  bet rate:        %.2f%%\n", r.BetRate())
	fmt.Fprintf(&b, "  net gain / bet:  mean %.2f, stddev %.2f\n\n", mean, stddev)

	if monthly := r.Monthly(); len(monthly) > 0 {
		b.WriteString("Monthly:\n")
		fmt.Fprintf(&b, "  %-8s %6s %6s %8s %10s\n", "month", "bets", "wins", "win %", "net")
		for _, m := range monthly {
			rate := 0.0
			if m.Bets > 0 {
				rate = float64(m.Wins) / float64(m.Bets) * 100
			}
			fmt.Fprintf(&b, "  %-8s %6d %6d %7.1f%% %10s\n",
				m.Month, m.Bets, m.Wins, rate, humanize.Comma(int64(m.NetGain)))
		}
		b.WriteString("\n")
	}

	b.WriteString("Bets:\n")
	b.WriteString(strings.Repeat("-", len(rule)) + "\n")
	for _, bet := range r.Bets {
		fmt.Fprintf(&b, "#%d (%s)\n", bet.Period, bet.Date)
		if bet.Skipped {
			fmt.Fprintf(&b, "  skipped: %s\n", bet.Reason)
			fmt.Fprintf(&b, "  drawn:   %s\n\n", formatNumbers(bet.Winning))
			continue
		}
		fmt.Fprintf(&b, "  bet:     %s\n", formatNumbers(bet.Numbers))
		fmt.Fprintf(&b, "  drawn:   %s\n", formatNumbers(bet.Winning))
		fmt.Fprintf(&b, "  matched: %d\n", bet.Matches)
		fmt.Fprintf(&b, "  prize:   %s\n", humanize.Comma(int64(bet.Prize)))
		fmt.Fprintf(&b, "  net:     %s\n\n", humanize.Comma(int64(bet.NetGain())))
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// RenderSummaryTable writes one line per result, for comparing strategies.
func RenderSummaryTable(w io.Writer, results []Result) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%-16s %6s %6s %6s %12s %12s %9s\n",
		"strategy", "bets", "skip", "wins", "cost", "net", "ROI")
	for _, r := range results {
		fmt.Fprintf(&b, "%-16s %6d %6d %6d %12s %12s %8.2f%%\n",
			r.Strategy, r.Placed(), r.Skipped, r.Wins,
			humanize.Comma(int64(r.TotalCost)), humanize.Comma(int64(r.NetGain())), r.ROI())
	}
	b.WriteString("\n" + windowNote + "\n")
	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}
	return nil
}

func formatNumbers(nums []int) string {
	return strings.Join(lo.Map(nums, func(n int, _ int) string {
		return fmt.Sprintf("%02d", n)
	}), " ")
}
