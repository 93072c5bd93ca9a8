// Package models defines data structures and domain types.
package models

import "time"

// DrawRecord is a single 539 draw as stored in the dataset document.
type DrawRecord struct {
	Date      string `json:"date"`
	Numbers   []int  `json:"numbers"`
	Timestamp string `json:"timestamp"`
}

// Time parses the record timestamp. The zero time is returned when the
// timestamp is not in one of the formats the scraper writes.
func (d DrawRecord) Time() time.Time {
	for _, layout := range []string{"2006-01-02T15:04:05", time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, d.Timestamp); err == nil {
			return t
		}
	}
	return time.Time{}
}

// Clone returns a copy that does not share the numbers slice.
func (d DrawRecord) Clone() DrawRecord {
	nums := make([]int, len(d.Numbers))
	copy(nums, d.Numbers)
	d.Numbers = nums
	return d
}

// Dataset is the JSON document produced by the scraper and consumed by the
// dashboard. Data is ordered newest-first.
type Dataset struct {
	LastUpdated  string       `json:"last_updated"`
	TotalRecords int          `json:"total_records"`
	Data         []DrawRecord `json:"data"`
}

// Latest returns the most recent draw, or nil for an empty dataset.
func (d Dataset) Latest() *DrawRecord {
	if len(d.Data) == 0 {
		return nil
	}
	return &d.Data[0]
}
