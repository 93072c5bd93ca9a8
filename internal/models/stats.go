// Package models defines data structures and domain types.
package models

import "fmt"

// NumberStat is the frequency of one number over a window of draws.
type NumberStat struct {
	Number     int     `json:"number"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// Pair is an unordered two-number combination stored as (Low, High).
type Pair struct {
	Low  int `json:"low"`
	High int `json:"high"`
}

// String formats the pair as "03-17".
func (p Pair) String() string {
	return fmt.Sprintf("%02d-%02d", p.Low, p.High)
}

// Numbers returns the pair as a two element slice.
func (p Pair) Numbers() []int {
	return []int{p.Low, p.High}
}

// CombinationStat is the frequency of one pair over a window of draws.
type CombinationStat struct {
	Pair       Pair    `json:"combination"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// Window is a slice of draw history selected for statistics, with the
// heading shown above it.
type Window struct {
	Records      []DrawRecord
	Title        string
	SelectedDate string
	Lookback     int
}

// Len returns the number of draws in the window.
func (w Window) Len() int {
	return len(w.Records)
}
