package calendar

import (
	"fmt"
	"sort"
	"time"

	"github.com/responderhub/coverage-api-go/pkg/coverage"
	"github.com/responderhub/coverage-api-go/pkg/models"
	"github.com/responderhub/coverage-api-go/pkg/overlap"
)

// Kind tags an event with its payload variant. Exactly one of the
// detail pointers on Event is set, matching the kind.
type Kind string

const (
	KindOverlap      Kind = "overlap"
	KindShift        Kind = "shift"
	KindAvailability Kind = "availability"
)

// Event is one renderable entry in the weekly calendar.
type Event struct {
	ID    string    `json:"id"`
	Kind  Kind      `json:"kind"`
	Title string    `json:"title"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`

	Overlap      *OverlapDetail      `json:"overlap,omitempty"`
	Shift        *ShiftDetail        `json:"shift,omitempty"`
	Availability *AvailabilityDetail `json:"availability,omitempty"`
}

// OverlapDetail carries the contributing windows of an overlap region.
type OverlapDetail struct {
	WindowIDs    []string `json:"window_ids"`
	Participants int      `json:"participants"`
}

// ShiftDetail carries a shift's staffing and its coverage judgment for
// the viewing user.
type ShiftDetail struct {
	TeamID          string                  `json:"team_id"`
	TeamName        string                  `json:"team_name"`
	AssignedUserIDs []string                `json:"assigned_user_ids"`
	Positions       []string                `json:"positions"`
	Classification  coverage.Classification `json:"classification"`
	Color           coverage.Color          `json:"color"`
	Selectable      bool                    `json:"selectable"`
}

// AvailabilityDetail marks one of the viewer's own windows.
type AvailabilityDetail struct {
	OwnerID string `json:"owner_id"`
}

// BuildInput is everything one calendar refresh needs.
type BuildInput struct {
	Windows  []models.AvailabilityWindow
	Shifts   []models.ShiftAssignment
	Teams    []models.Team
	ViewerID string
	Now      time.Time
}

// BuildEvents assembles the combined event list for one viewer: overlap
// regions across all windows, every shift classified against its team's
// constraints, and the viewer's own availability windows. Events are
// returned in chronological order with ties broken by kind then ID so
// repeated refreshes render identically.
func BuildEvents(in BuildInput) []Event {
	teams := make(map[string]models.Team, len(in.Teams))
	for _, t := range in.Teams {
		teams[t.ID] = t
	}

	var events []Event

	regions := overlap.NewDetector(in.Windows, in.Now).Compute()
	for i := range regions {
		r := &regions[i]
		events = append(events, Event{
			ID:    r.ID,
			Kind:  KindOverlap,
			Title: r.Label,
			Start: r.Start,
			End:   r.End,
			Overlap: &OverlapDetail{
				WindowIDs:    r.WindowIDs,
				Participants: r.Participants(),
			},
		})
	}

	for i := range in.Shifts {
		sh := &in.Shifts[i]
		team := teams[sh.TeamID]
		res := coverage.Classify(len(sh.AssignedUserIDs), team.MinUsers, team.MaxUsers, sh.HasUser(in.ViewerID))
		events = append(events, Event{
			ID:    sh.ID,
			Kind:  KindShift,
			Title: shiftTitle(team, len(sh.AssignedUserIDs)),
			Start: sh.Start,
			End:   sh.End,
			Shift: &ShiftDetail{
				TeamID:          sh.TeamID,
				TeamName:        team.Name,
				AssignedUserIDs: sh.AssignedUserIDs,
				Positions:       sh.Positions,
				Classification:  res.Classification,
				Color:           res.Color,
				Selectable:      res.Selectable,
			},
		})
	}

	for i := range in.Windows {
		w := &in.Windows[i]
		if w.OwnerID != in.ViewerID {
			continue
		}
		events = append(events, Event{
			ID:           w.ID,
			Kind:         KindAvailability,
			Title:        "Available",
			Start:        w.Start,
			End:          w.End,
			Availability: &AvailabilityDetail{OwnerID: w.OwnerID},
		})
	}

	sort.SliceStable(events, func(i, j int) bool {
		if !events[i].Start.Equal(events[j].Start) {
			return events[i].Start.Before(events[j].Start)
		}
		if events[i].Kind != events[j].Kind {
			return events[i].Kind < events[j].Kind
		}
		return events[i].ID < events[j].ID
	})

	return events
}

func shiftTitle(team models.Team, assigned int) string {
	name := team.Name
	if name == "" {
		name = "Shift"
	}
	return fmt.Sprintf("%s (%d/%d)", name, assigned, team.MaxUsers)
}
