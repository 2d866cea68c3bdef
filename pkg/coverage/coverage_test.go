package coverage

import "testing"

func TestClassify_DecisionTable(t *testing.T) {
	cases := []struct {
		name           string
		assigned       int
		minUsers       int
		maxUsers       int
		viewerAssigned bool
		want           Classification
	}{
		{"covered with viewer", 5, 3, 5, true, CoveredWithViewer},
		{"covered without viewer", 5, 5, 5, false, CoveredWithoutViewer},
		{"over-covered still covered", 7, 3, 5, false, CoveredWithoutViewer},
		{"below minimum with viewer", 2, 3, 5, true, LessThanMinWithViewer},
		{"below minimum without viewer", 2, 3, 5, false, LessThanMinWithoutViewer},
		{"in band with viewer", 4, 3, 5, true, MinUsersWithViewer},
		{"in band without viewer", 3, 3, 5, false, MinUsersWithoutViewer},
		{"zero assigned", 0, 1, 4, false, LessThanMinWithoutViewer},
	}

	for _, tc := range cases {
		got := Classify(tc.assigned, tc.minUsers, tc.maxUsers, tc.viewerAssigned)
		if got.Classification != tc.want {
			t.Errorf("%s: expected %s, got %s", tc.name, tc.want, got.Classification)
		}
	}
}

func TestClassify_CoveredTakesPrecedence(t *testing.T) {
	// With inconsistent bounds (min > max) the covered check still wins.
	got := Classify(4, 5, 3, true)
	if got.Classification != CoveredWithViewer {
		t.Errorf("Expected coveredWithViewer, got %s", got.Classification)
	}
}

func TestClassify_Selectable(t *testing.T) {
	if got := Classify(2, 3, 5, false); !got.Selectable {
		t.Errorf("Shift with room and viewer unassigned must be selectable")
	}
	if got := Classify(5, 3, 5, false); got.Selectable {
		t.Errorf("Fully covered shift must not be selectable")
	}
	if got := Classify(5, 3, 5, true); got.Selectable {
		t.Errorf("Fully covered shift must not be selectable even for an assignee")
	}
	if got := Classify(2, 3, 5, true); got.Selectable {
		t.Errorf("Viewer already assigned must not re-select")
	}
}

func TestClassify_ColorMappingIsTotal(t *testing.T) {
	all := []Classification{
		CoveredWithViewer, CoveredWithoutViewer,
		MinUsersWithViewer, MinUsersWithoutViewer,
		NotCoveredWithViewer, NotCoveredWithoutViewer,
		LessThanMinWithViewer, LessThanMinWithoutViewer,
	}
	for _, c := range all {
		if _, ok := colors[c]; !ok {
			t.Errorf("Classification %s has no color", c)
		}
	}
	if len(colors) != len(all) {
		t.Errorf("Expected %d color entries, got %d", len(all), len(colors))
	}
}

func TestClassify_ColorSeverity(t *testing.T) {
	if got := Classify(5, 3, 5, false); got.Color != ColorGreen {
		t.Errorf("Covered shift should be green, got %s", got.Color)
	}
	if got := Classify(4, 3, 5, false); got.Color != ColorYellow {
		t.Errorf("In-band shift should be yellow, got %s", got.Color)
	}
	if got := Classify(1, 3, 5, false); got.Color != ColorRed {
		t.Errorf("Under-minimum shift should be red, got %s", got.Color)
	}
}

func TestClassify_TotalOverOddInputs(t *testing.T) {
	// Negative and inconsistent counts are upstream errors; Classify must
	// still return a mapped classification rather than fail.
	odd := []struct{ assigned, min, max int }{
		{-1, 3, 5},
		{0, 0, 0},
		{3, 5, 3},
		{-2, -1, -3},
	}
	for _, in := range odd {
		got := Classify(in.assigned, in.min, in.max, false)
		if got.Classification == "" || got.Color == "" {
			t.Errorf("Classify(%d, %d, %d) produced an unmapped result", in.assigned, in.min, in.max)
		}
	}
}
