package slots

import (
	"sort"
	"time"

	"github.com/responderhub/coverage-api-go/pkg/models"
)

// TimeUnit is a fixed daily time unit, e.g. a class period. Start and
// End are clock times encoded as HHMM integers (800 = 08:00).
type TimeUnit struct {
	Name    string `json:"name"`
	Start   int    `json:"start"`
	End     int    `json:"end"`
	IsBreak bool   `json:"is_break"`
}

// Selection is one (unit, day) cell chosen in a drag-selection.
type Selection struct {
	Unit TimeUnit  `json:"unit"`
	Day  time.Time `json:"day"`
}

// StartAt returns the selection's concrete start instant.
func (s Selection) StartAt() time.Time {
	return ClockTime(s.Day, s.Unit.Start)
}

// EndAt returns the selection's concrete end instant.
func (s Selection) EndAt() time.Time {
	return ClockTime(s.Day, s.Unit.End)
}

// ClockTime combines a day with an HHMM clock value.
func ClockTime(day time.Time, hhmm int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hhmm/100, hhmm%100, 0, 0, day.Location())
}

// Gap is a non-selectable interval between two consecutive units, in
// HHMM bounds.
type Gap struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// BreakGaps derives the daily break intervals from the configured
// units: every pair of consecutive selectable units with empty time
// between them contributes one gap.
func BreakGaps(units []TimeUnit) []Gap {
	selectable := make([]TimeUnit, 0, len(units))
	for _, u := range units {
		if !u.IsBreak {
			selectable = append(selectable, u)
		}
	}
	sort.Slice(selectable, func(i, j int) bool {
		return selectable[i].Start < selectable[j].Start
	})

	var gaps []Gap
	for i := 0; i+1 < len(selectable); i++ {
		if selectable[i].End < selectable[i+1].Start {
			gaps = append(gaps, Gap{Start: selectable[i].End, End: selectable[i+1].Start})
		}
	}
	return gaps
}

// MergeSelections merges a finished drag-selection into minimal date
// ranges. Touching or overlapping selections coalesce. With
// includeBreaks set, a range whose end lands exactly on a break start
// is extended through the break; bridging is forward-only, a break
// immediately before a range never attaches to it.
func MergeSelections(sels []Selection, units []TimeUnit, includeBreaks bool) []models.DateRange {
	if len(sels) == 0 {
		return nil
	}

	sorted := make([]Selection, len(sels))
	copy(sorted, sels)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].StartAt().Before(sorted[j].StartAt())
	})

	var gaps []Gap
	if includeBreaks {
		gaps = BreakGaps(units)
	}

	var ranges []models.DateRange
	curStart := sorted[0].StartAt()
	curEnd := bridge(sorted[0].EndAt(), gaps)

	for _, sel := range sorted[1:] {
		start := sel.StartAt()
		if !start.After(curEnd) {
			if end := sel.EndAt(); end.After(curEnd) {
				curEnd = end
			}
			curEnd = bridge(curEnd, gaps)
			continue
		}
		ranges = append(ranges, models.DateRange{Start: curStart, End: curEnd})
		curStart = start
		curEnd = bridge(sel.EndAt(), gaps)
	}

	return append(ranges, models.DateRange{Start: curStart, End: curEnd})
}

// bridge extends an accumulated end through a break whose start it
// exactly touches. The end instant itself carries the day the break
// belongs to.
func bridge(end time.Time, gaps []Gap) time.Time {
	hhmm := end.Hour()*100 + end.Minute()
	for _, g := range gaps {
		if g.Start == hhmm {
			return ClockTime(end, g.End)
		}
	}
	return end
}

// DefaultUnits is the canonical daily plan used when no configuration
// has been stored: seven 50-minute periods with a morning break and a
// lunch gap.
func DefaultUnits() []TimeUnit {
	return []TimeUnit{
		{Name: "Period 1", Start: 800, End: 850},
		{Name: "Period 2", Start: 850, End: 940},
		{Name: "Break", Start: 940, End: 955, IsBreak: true},
		{Name: "Period 3", Start: 955, End: 1045},
		{Name: "Period 4", Start: 1045, End: 1135},
		{Name: "Lunch", Start: 1135, End: 1220, IsBreak: true},
		{Name: "Period 5", Start: 1220, End: 1310},
		{Name: "Period 6", Start: 1310, End: 1400},
		{Name: "Period 7", Start: 1400, End: 1450},
	}
}
