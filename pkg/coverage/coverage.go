package coverage

// Classification is the derived judgment of how well a shift's staffing
// meets its team's min/max constraints, split by whether the viewer is
// among the assignees.
type Classification string

const (
	CoveredWithViewer        Classification = "coveredWithViewer"
	CoveredWithoutViewer     Classification = "coveredWithoutViewer"
	MinUsersWithViewer       Classification = "minUsersWithViewer"
	MinUsersWithoutViewer    Classification = "minUsersWithoutViewer"
	NotCoveredWithViewer     Classification = "notCoveredWithViewer"
	NotCoveredWithoutViewer  Classification = "notCoveredWithoutViewer"
	LessThanMinWithViewer    Classification = "lessThanMinWithViewer"
	LessThanMinWithoutViewer Classification = "lessThanMinWithoutViewer"
)

// Color is the display severity paired with each classification.
type Color string

const (
	ColorGreen  Color = "green"  // fully covered
	ColorYellow Color = "yellow" // at or above minimum, room left
	ColorRed    Color = "red"    // below minimum
	ColorGray   Color = "gray"   // inconsistent team bounds
)

// colors maps every classification to exactly one color. The map is
// total; Classify never produces a value outside it.
var colors = map[Classification]Color{
	CoveredWithViewer:        ColorGreen,
	CoveredWithoutViewer:     ColorGreen,
	MinUsersWithViewer:       ColorYellow,
	MinUsersWithoutViewer:    ColorYellow,
	LessThanMinWithViewer:    ColorRed,
	LessThanMinWithoutViewer: ColorRed,
	NotCoveredWithViewer:     ColorGray,
	NotCoveredWithoutViewer:  ColorGray,
}

// Result is the full classification of one shift for one viewer.
type Result struct {
	Classification Classification `json:"classification"`
	Color          Color          `json:"color"`
	// Selectable is true when the shift still accepts a self-assignment
	// from the viewer: not fully covered and the viewer not already in it.
	Selectable bool `json:"selectable"`
}

// Classify places a shift into one of eight coverage states. First match
// wins: fully covered, then below minimum, then the min..max band. The
// notCovered fallback is only reachable when minUsers exceeds maxUsers,
// which is a data error upstream; the function stays total rather than
// rejecting it.
func Classify(assigned, minUsers, maxUsers int, viewerAssigned bool) Result {
	var c Classification
	switch {
	case assigned >= maxUsers:
		c = pick(viewerAssigned, CoveredWithViewer, CoveredWithoutViewer)
	case assigned < minUsers:
		c = pick(viewerAssigned, LessThanMinWithViewer, LessThanMinWithoutViewer)
	case assigned >= minUsers && assigned < maxUsers:
		c = pick(viewerAssigned, MinUsersWithViewer, MinUsersWithoutViewer)
	default:
		c = pick(viewerAssigned, NotCoveredWithViewer, NotCoveredWithoutViewer)
	}

	return Result{
		Classification: c,
		Color:          colors[c],
		Selectable:     assigned < maxUsers && !viewerAssigned,
	}
}

func pick(viewerAssigned bool, with, without Classification) Classification {
	if viewerAssigned {
		return with
	}
	return without
}
