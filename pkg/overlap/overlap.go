package overlap

import (
	"fmt"
	"time"

	"github.com/responderhub/coverage-api-go/pkg/models"
)

// Detector finds the regions where two or more availability windows
// overlap. It is built fresh per computation; results from a previous
// pass are never carried over.
type Detector struct {
	Windows []models.AvailabilityWindow
	Now     time.Time

	regions []models.OverlapRegion
	index   map[boundsKey]int
}

type boundsKey struct {
	start int64
	end   int64
}

// NewDetector creates a detector over the given windows. The reference
// instant decides which windows count as already past; tests pass a
// fixed instant so results are reproducible.
func NewDetector(windows []models.AvailabilityWindow, now time.Time) *Detector {
	return &Detector{
		Windows: windows,
		Now:     now,
		index:   make(map[boundsKey]int),
	}
}

// Overlap checks if two time ranges overlap. Ranges are half-open, so
// touching endpoints do not count.
func Overlap(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// isPast reports whether a window should be skipped entirely because it
// starts at or before the reference instant. Applied to both members of
// a candidate pair.
func (d *Detector) isPast(w *models.AvailabilityWindow) bool {
	return !w.Start.After(d.Now)
}

// Compute runs the pairwise scan and returns every overlap region found,
// in first-discovery order. Regions with identical bounds are merged:
// the contributing window set grows and the label is refreshed, but no
// second region is created.
func (d *Detector) Compute() []models.OverlapRegion {
	if len(d.Windows) < 2 {
		return nil
	}

	for i := 0; i < len(d.Windows); i++ {
		a := &d.Windows[i]
		if d.isPast(a) {
			continue
		}
		for j := i + 1; j < len(d.Windows); j++ {
			b := &d.Windows[j]
			if d.isPast(b) {
				continue
			}
			d.record(a, b)
		}
	}

	return d.regions
}

// record computes the intersection of a pair and folds it into the
// region list.
func (d *Detector) record(a, b *models.AvailabilityWindow) {
	start := maxTime(a.Start, b.Start)
	end := minTime(a.End, b.End)

	if !start.Before(end) {
		return
	}
	// Invariant: the candidate bounds must lie inside both windows.
	// Always true by construction; kept as a guard.
	if start.Before(a.Start) || start.Before(b.Start) || end.After(a.End) || end.After(b.End) {
		return
	}

	key := boundsKey{start: start.UnixNano(), end: end.UnixNano()}
	pos, ok := d.index[key]
	if !ok {
		d.index[key] = len(d.regions)
		d.regions = append(d.regions, models.OverlapRegion{
			ID:        a.ID + "+" + b.ID,
			Start:     start,
			End:       end,
			WindowIDs: []string{a.ID, b.ID},
			Label:     regionLabel(2),
		})
		return
	}

	region := &d.regions[pos]
	grown := false
	for _, id := range []string{a.ID, b.ID} {
		if !containsID(region.WindowIDs, id) {
			region.WindowIDs = append(region.WindowIDs, id)
			grown = true
		}
	}
	if grown {
		region.Label = regionLabel(len(region.WindowIDs))
	}
}

func regionLabel(count int) string {
	return fmt.Sprintf("Overlap | Users #: %d", count)
}

func containsID(ids []string, id string) bool {
	for _, existing := range ids {
		if existing == id {
			return true
		}
	}
	return false
}

func maxTime(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}

func minTime(a, b time.Time) time.Time {
	if a.Before(b) {
		return a
	}
	return b
}
