// Package models defines data structures and domain types.
package models

import "fmt"

// LookbackRange is the statistics period selected in the UI.
type LookbackRange int

const (
	// Lookback10 covers the last 10 draws.
	Lookback10 LookbackRange = iota
	// Lookback30 covers the last 30 draws.
	Lookback30
	// Lookback50 covers the last 50 draws.
	Lookback50
	// Lookback100 covers the last 100 draws.
	Lookback100
	// LookbackAll covers every draw in the dataset.
	LookbackAll
)

const lookbackRangeCount = 5

// String returns the display name for a lookback range.
func (l LookbackRange) String() string {
	switch l {
	case Lookback10, Lookback30, Lookback50, Lookback100:
		return fmt.Sprintf("%d Periods", l.Periods())
	case LookbackAll:
		return "All Periods"
	default:
		return "Unknown"
	}
}

// Periods returns the number of draws covered (0 = unlimited).
func (l LookbackRange) Periods() int {
	switch l {
	case Lookback10:
		return 10
	case Lookback30:
		return 30
	case Lookback50:
		return 50
	case Lookback100:
		return 100
	case LookbackAll:
		return 0
	default:
		return 30
	}
}

// Resolve returns the lookback to pass to the aggregator for a history of
// the given size. LookbackAll resolves to the whole history.
func (l LookbackRange) Resolve(historyLen int) int {
	if p := l.Periods(); p > 0 {
		return p
	}
	return max(historyLen, 1)
}

// Next cycles to the next lookback range.
func (l LookbackRange) Next() LookbackRange {
	return (l + 1) % lookbackRangeCount
}

// LookbackRangeFor maps a period count to the closest fixed range, falling
// back to LookbackAll for counts above the largest range.
func LookbackRangeFor(periods int) LookbackRange {
	switch {
	case periods <= 0:
		return LookbackAll
	case periods <= 10:
		return Lookback10
	case periods <= 30:
		return Lookback30
	case periods <= 50:
		return Lookback50
	case periods <= 100:
		return Lookback100
	default:
		return LookbackAll
	}
}
