package models

import "testing"

func TestDataset_Latest(t *testing.T) {
	if got := (Dataset{}).Latest(); got != nil {
		t.Errorf("Latest() on empty dataset = %+v, want nil", got)
	}

	ds := Dataset{Data: []DrawRecord{
		{Date: "2024/01/11", Numbers: []int{7, 8, 9, 10, 11}},
		{Date: "2024/01/10", Numbers: []int{1, 2, 3, 4, 5}},
	}}
	snapshot := func() Dataset { return ds }

	// Callable on a non-addressable value such as a function result.
	if latest := snapshot().Latest(); latest == nil || latest.Date != "2024/01/11" {
		t.Errorf("Latest() = %+v, want 2024/01/11", latest)
	}
}
