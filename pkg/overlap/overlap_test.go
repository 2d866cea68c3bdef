package overlap

import (
	"testing"
	"time"

	"github.com/responderhub/coverage-api-go/pkg/models"
)

var base = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)

func window(id string, startHour, endHour int) models.AvailabilityWindow {
	return models.AvailabilityWindow{
		ID:      id,
		Start:   base.Add(time.Duration(startHour) * time.Hour),
		End:     base.Add(time.Duration(endHour) * time.Hour),
		OwnerID: "owner-" + id,
	}
}

func TestCompute_PairOverlap(t *testing.T) {
	windows := []models.AvailabilityWindow{
		window("a", 9, 12),
		window("b", 10, 14),
	}

	regions := NewDetector(windows, base).Compute()

	if len(regions) != 1 {
		t.Fatalf("Expected 1 region, got %d", len(regions))
	}

	r := regions[0]
	if !r.Start.Equal(base.Add(10 * time.Hour)) {
		t.Errorf("Expected region to start at max of the two starts, got %v", r.Start)
	}
	if !r.End.Equal(base.Add(12 * time.Hour)) {
		t.Errorf("Expected region to end at min of the two ends, got %v", r.End)
	}
	if len(r.WindowIDs) != 2 {
		t.Errorf("Expected 2 contributing windows, got %d", len(r.WindowIDs))
	}
	if r.Label != "Overlap | Users #: 2" {
		t.Errorf("Unexpected label %q", r.Label)
	}
}

func TestCompute_OrderIndependentBounds(t *testing.T) {
	forward := []models.AvailabilityWindow{window("a", 9, 12), window("b", 10, 14)}
	reversed := []models.AvailabilityWindow{window("b", 10, 14), window("a", 9, 12)}

	r1 := NewDetector(forward, base).Compute()
	r2 := NewDetector(reversed, base).Compute()

	if len(r1) != 1 || len(r2) != 1 {
		t.Fatalf("Expected 1 region each, got %d and %d", len(r1), len(r2))
	}
	if !r1[0].Start.Equal(r2[0].Start) || !r1[0].End.Equal(r2[0].End) {
		t.Errorf("Region bounds depend on input order: %v-%v vs %v-%v",
			r1[0].Start, r1[0].End, r2[0].Start, r2[0].End)
	}
}

func TestCompute_DedupIdenticalBounds(t *testing.T) {
	// Three windows whose pairwise intersections all share the same bounds:
	// one region must carry all three contributors.
	windows := []models.AvailabilityWindow{
		window("a", 10, 12),
		window("b", 10, 12),
		window("c", 10, 12),
	}

	regions := NewDetector(windows, base).Compute()

	if len(regions) != 1 {
		t.Fatalf("Expected a single deduplicated region, got %d", len(regions))
	}
	if len(regions[0].WindowIDs) != 3 {
		t.Errorf("Expected 3 contributing windows, got %d", len(regions[0].WindowIDs))
	}
	if regions[0].Label != "Overlap | Users #: 3" {
		t.Errorf("Expected label to track the grown set, got %q", regions[0].Label)
	}
}

func TestCompute_DisjointWindows(t *testing.T) {
	windows := []models.AvailabilityWindow{
		window("a", 9, 10),
		window("b", 11, 12),
	}

	if regions := NewDetector(windows, base).Compute(); len(regions) != 0 {
		t.Errorf("Expected no regions for disjoint windows, got %d", len(regions))
	}
}

func TestCompute_TouchingWindowsDoNotOverlap(t *testing.T) {
	windows := []models.AvailabilityWindow{
		window("a", 9, 10),
		window("b", 10, 12),
	}

	if regions := NewDetector(windows, base).Compute(); len(regions) != 0 {
		t.Errorf("Expected no regions for touching windows, got %d", len(regions))
	}
}

func TestCompute_SkipsPastWindows(t *testing.T) {
	now := base.Add(11 * time.Hour)
	windows := []models.AvailabilityWindow{
		window("past", 9, 20),    // starts before now, must not seed regions
		window("future1", 12, 16),
		window("future2", 14, 18),
	}

	regions := NewDetector(windows, now).Compute()

	if len(regions) != 1 {
		t.Fatalf("Expected only the future pair's region, got %d", len(regions))
	}
	for _, id := range regions[0].WindowIDs {
		if id == "past" {
			t.Errorf("Past window must not contribute to new regions")
		}
	}
}

func TestCompute_FewerThanTwoWindows(t *testing.T) {
	if regions := NewDetector(nil, base).Compute(); regions != nil {
		t.Errorf("Expected nil for empty input, got %v", regions)
	}

	one := []models.AvailabilityWindow{window("a", 9, 12)}
	if regions := NewDetector(one, base).Compute(); regions != nil {
		t.Errorf("Expected nil for a single window, got %v", regions)
	}
}

func TestCompute_Idempotent(t *testing.T) {
	windows := []models.AvailabilityWindow{
		window("a", 9, 12),
		window("b", 10, 14),
		window("c", 11, 13),
	}

	first := NewDetector(windows, base).Compute()
	second := NewDetector(windows, base).Compute()

	if len(first) != len(second) {
		t.Fatalf("Region counts differ across passes: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID ||
			!first[i].Start.Equal(second[i].Start) ||
			!first[i].End.Equal(second[i].End) ||
			len(first[i].WindowIDs) != len(second[i].WindowIDs) {
			t.Errorf("Region %d differs across passes: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestCompute_NestedWindows(t *testing.T) {
	windows := []models.AvailabilityWindow{
		window("outer", 9, 18),
		window("inner", 11, 13),
	}

	regions := NewDetector(windows, base).Compute()

	if len(regions) != 1 {
		t.Fatalf("Expected 1 region, got %d", len(regions))
	}
	if !regions[0].Start.Equal(base.Add(11*time.Hour)) || !regions[0].End.Equal(base.Add(13*time.Hour)) {
		t.Errorf("Nested overlap must equal the inner window, got %v-%v", regions[0].Start, regions[0].End)
	}
}
