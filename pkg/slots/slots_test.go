package slots

import (
	"testing"
	"time"
)

var day = time.Date(2026, 3, 4, 0, 0, 0, 0, time.UTC)

func testUnits() []TimeUnit {
	return []TimeUnit{
		{Name: "Period 1", Start: 800, End: 850},
		{Name: "Period 2", Start: 850, End: 940},
		{Name: "Period 3", Start: 955, End: 1045},
	}
}

func sel(u TimeUnit) Selection {
	return Selection{Unit: u, Day: day}
}

func TestBreakGaps(t *testing.T) {
	gaps := BreakGaps(testUnits())

	if len(gaps) != 1 {
		t.Fatalf("Expected 1 gap, got %d", len(gaps))
	}
	if gaps[0].Start != 940 || gaps[0].End != 955 {
		t.Errorf("Expected gap [940,955), got [%d,%d)", gaps[0].Start, gaps[0].End)
	}
}

func TestBreakGaps_IgnoresBreakUnits(t *testing.T) {
	units := []TimeUnit{
		{Name: "Period 1", Start: 800, End: 850},
		{Name: "Break", Start: 850, End: 900, IsBreak: true},
		{Name: "Period 2", Start: 900, End: 950},
	}

	gaps := BreakGaps(units)
	if len(gaps) != 1 {
		t.Fatalf("Expected the explicit break to surface as one gap, got %d", len(gaps))
	}
	if gaps[0].Start != 850 || gaps[0].End != 900 {
		t.Errorf("Expected gap [850,900), got [%d,%d)", gaps[0].Start, gaps[0].End)
	}
}

func TestMergeSelections_BridgesBreak(t *testing.T) {
	units := testUnits()
	sels := []Selection{sel(units[0]), sel(units[1]), sel(units[2])}

	ranges := MergeSelections(sels, units, true)

	if len(ranges) != 1 {
		t.Fatalf("Expected a single bridged range, got %d", len(ranges))
	}
	if !ranges[0].Start.Equal(ClockTime(day, 800)) || !ranges[0].End.Equal(ClockTime(day, 1045)) {
		t.Errorf("Expected [800,1045), got %v - %v", ranges[0].Start, ranges[0].End)
	}
}

func TestMergeSelections_NoBridgeWithoutBreaks(t *testing.T) {
	units := testUnits()
	sels := []Selection{sel(units[0]), sel(units[1]), sel(units[2])}

	ranges := MergeSelections(sels, units, false)

	if len(ranges) != 2 {
		t.Fatalf("Expected two ranges split at the break, got %d", len(ranges))
	}
	if !ranges[0].End.Equal(ClockTime(day, 940)) {
		t.Errorf("Expected first range to end at 940, got %v", ranges[0].End)
	}
	if !ranges[1].Start.Equal(ClockTime(day, 955)) {
		t.Errorf("Expected second range to start at 955, got %v", ranges[1].Start)
	}
}

func TestMergeSelections_SingleSelection(t *testing.T) {
	units := testUnits()
	ranges := MergeSelections([]Selection{sel(units[0])}, units, false)

	if len(ranges) != 1 {
		t.Fatalf("Expected 1 range, got %d", len(ranges))
	}
	if !ranges[0].Start.Equal(ClockTime(day, 800)) || !ranges[0].End.Equal(ClockTime(day, 850)) {
		t.Errorf("Expected the selection's own bounds, got %v - %v", ranges[0].Start, ranges[0].End)
	}
}

func TestMergeSelections_EmptyInput(t *testing.T) {
	if ranges := MergeSelections(nil, testUnits(), true); ranges != nil {
		t.Errorf("Expected nil for empty input, got %v", ranges)
	}
}

func TestMergeSelections_SortsBeforeMerging(t *testing.T) {
	units := testUnits()
	// Reverse order in, chronological ranges out.
	sels := []Selection{sel(units[1]), sel(units[0])}

	ranges := MergeSelections(sels, units, false)

	if len(ranges) != 1 {
		t.Fatalf("Expected contiguous selections to merge regardless of order, got %d ranges", len(ranges))
	}
	if !ranges[0].Start.Equal(ClockTime(day, 800)) || !ranges[0].End.Equal(ClockTime(day, 940)) {
		t.Errorf("Expected [800,940), got %v - %v", ranges[0].Start, ranges[0].End)
	}
}

func TestMergeSelections_SeparateDays(t *testing.T) {
	units := testUnits()
	nextDay := day.AddDate(0, 0, 1)
	sels := []Selection{
		{Unit: units[0], Day: day},
		{Unit: units[0], Day: nextDay},
	}

	ranges := MergeSelections(sels, units, false)

	if len(ranges) != 2 {
		t.Fatalf("Expected one range per day, got %d", len(ranges))
	}
	if !ranges[1].Start.Equal(ClockTime(nextDay, 800)) {
		t.Errorf("Expected second range on the next day, got %v", ranges[1].Start)
	}
}

func TestMergeSelections_NoBackwardBridging(t *testing.T) {
	units := testUnits()
	// Only the slot after the break: the preceding break must not attach.
	ranges := MergeSelections([]Selection{sel(units[2])}, units, true)

	if len(ranges) != 1 {
		t.Fatalf("Expected 1 range, got %d", len(ranges))
	}
	if !ranges[0].Start.Equal(ClockTime(day, 955)) {
		t.Errorf("Break before a range must not extend it backward, got start %v", ranges[0].Start)
	}
}

func TestClockTime(t *testing.T) {
	got := ClockTime(day, 1330)
	want := time.Date(2026, 3, 4, 13, 30, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("Expected %v, got %v", want, got)
	}
}

func TestDefaultUnits_Consistent(t *testing.T) {
	units := DefaultUnits()
	prevEnd := 0
	for _, u := range units {
		if u.Start >= u.End {
			t.Errorf("Unit %s has start %d >= end %d", u.Name, u.Start, u.End)
		}
		if u.Start < prevEnd {
			t.Errorf("Unit %s overlaps the previous unit", u.Name)
		}
		prevEnd = u.End
	}
}
