package models

import "time"

// AvailabilityWindow is a time range during which a person has declared
// themselves available for assignment. Created externally; read-only here.
type AvailabilityWindow struct {
	ID      string    `json:"id"`
	Start   time.Time `json:"start"`
	End     time.Time `json:"end"`
	OwnerID string    `json:"owner_id"`
}

// OverlapRegion is a time range during which two or more availability
// windows simultaneously hold. Identity within one computation pass is
// the (Start, End) bounds pair.
type OverlapRegion struct {
	ID        string    `json:"id"`
	Start     time.Time `json:"start"`
	End       time.Time `json:"end"`
	WindowIDs []string  `json:"window_ids"`
	Label     string    `json:"label"`
}

// Participants returns the number of windows contributing to the region.
func (r *OverlapRegion) Participants() int {
	return len(r.WindowIDs)
}

// ShiftAssignment is a scheduled assignment of people to positions within
// a team. AssignedUserIDs and Positions correspond positionally:
// Positions[i] is the position held by AssignedUserIDs[i].
type ShiftAssignment struct {
	ID              string    `json:"id"`
	Start           time.Time `json:"start"`
	End             time.Time `json:"end"`
	TeamID          string    `json:"team_id"`
	AssignedUserIDs []string  `json:"assigned_user_ids"`
	Positions       []string  `json:"positions"`
}

// HasUser reports whether the given user is among the shift's assignees.
func (s *ShiftAssignment) HasUser(userID string) bool {
	for _, id := range s.AssignedUserIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// Team holds the staffing constraints a shift is classified against.
type Team struct {
	ID                string   `json:"id"`
	Name              string   `json:"name"`
	MinUsers          int      `json:"min_users"`
	MaxUsers          int      `json:"max_users"`
	PossiblePositions []string `json:"possible_positions"`
}

// DateRange is a merged block of selected calendar time.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// OverlapInput is the data structure for the overlap endpoint.
type OverlapInput struct {
	Windows []AvailabilityWindow `json:"windows"`
	// ReferenceTime pins the past-window cutoff; zero means the current time.
	ReferenceTime time.Time `json:"reference_time,omitempty"`
}

// CoverageInput is the data structure for the coverage endpoint.
type CoverageInput struct {
	Shifts   []ShiftAssignment `json:"shifts"`
	Teams    []Team            `json:"teams"`
	ViewerID string            `json:"viewer_id"`
}

// CalendarInput is the data structure for the combined calendar endpoint.
type CalendarInput struct {
	Windows       []AvailabilityWindow `json:"windows"`
	Shifts        []ShiftAssignment    `json:"shifts"`
	Teams         []Team               `json:"teams"`
	ViewerID      string               `json:"viewer_id"`
	ReferenceTime time.Time            `json:"reference_time,omitempty"`
}

// ValidateInput is the data structure for the validation endpoint.
type ValidateInput struct {
	Windows []AvailabilityWindow `json:"windows"`
	Shifts  []ShiftAssignment    `json:"shifts"`
	Teams   []Team               `json:"teams"`
}
