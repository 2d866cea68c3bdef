package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/responderhub/coverage-api-go/pkg/models"
)

// ValidateInput handles the JSON-based validation request. This is the
// gate for the precondition violations the engines themselves never
// check: malformed intervals, inconsistent team bounds, broken parallel
// arrays.
func (h *Handler) ValidateInput(c *gin.Context) {
	var input models.ValidateInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"valid": false,
			"error": err.Error(),
		})
		return
	}

	// Teams first: shifts are validated against them
	teams := make(map[string]models.Team)
	teamNames := make(map[string]bool)
	for _, t := range input.Teams {
		if teamNames[t.Name] {
			c.JSON(http.StatusOK, gin.H{"valid": false, "error": "Duplicate team name: " + t.Name})
			return
		}
		teamNames[t.Name] = true

		if t.MinUsers > t.MaxUsers {
			c.JSON(http.StatusOK, gin.H{"valid": false, "error": "Team " + t.Name + " has min_users greater than max_users"})
			return
		}
		if len(t.PossiblePositions) != t.MaxUsers {
			c.JSON(http.StatusOK, gin.H{"valid": false, "error": "Team " + t.Name + " must define exactly max_users positions"})
			return
		}
		teams[t.ID] = t
	}

	windowIDs := make(map[string]bool)
	for _, w := range input.Windows {
		if windowIDs[w.ID] {
			c.JSON(http.StatusOK, gin.H{"valid": false, "error": "Duplicate window ID: " + w.ID})
			return
		}
		windowIDs[w.ID] = true

		if !w.Start.Before(w.End) {
			c.JSON(http.StatusOK, gin.H{"valid": false, "error": "Window " + w.ID + " must start before it ends"})
			return
		}
	}

	shiftIDs := make(map[string]bool)
	for _, s := range input.Shifts {
		if shiftIDs[s.ID] {
			c.JSON(http.StatusOK, gin.H{"valid": false, "error": "Duplicate shift ID: " + s.ID})
			return
		}
		shiftIDs[s.ID] = true

		if !s.Start.Before(s.End) {
			c.JSON(http.StatusOK, gin.H{"valid": false, "error": "Shift " + s.ID + " must start before it ends"})
			return
		}
		if len(s.AssignedUserIDs) != len(s.Positions) {
			c.JSON(http.StatusOK, gin.H{"valid": false, "error": "Shift " + s.ID + " has mismatched users and positions"})
			return
		}

		seenUsers := make(map[string]bool)
		for _, uid := range s.AssignedUserIDs {
			if seenUsers[uid] {
				c.JSON(http.StatusOK, gin.H{"valid": false, "error": "Shift " + s.ID + " assigns user " + uid + " twice"})
				return
			}
			seenUsers[uid] = true
		}

		team, hasTeam := teams[s.TeamID]
		vocabulary := make(map[string]bool)
		if hasTeam {
			for _, p := range team.PossiblePositions {
				vocabulary[p] = true
			}
		}

		seenPositions := make(map[string]bool)
		for _, p := range s.Positions {
			if seenPositions[p] {
				c.JSON(http.StatusOK, gin.H{"valid": false, "error": "Shift " + s.ID + " fills position " + p + " twice"})
				return
			}
			seenPositions[p] = true

			if hasTeam && !vocabulary[p] {
				c.JSON(http.StatusOK, gin.H{"valid": false, "error": "Shift " + s.ID + " uses unknown position " + p})
				return
			}
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"valid": true,
		"stats": gin.H{
			"window_count": len(input.Windows),
			"shift_count":  len(input.Shifts),
			"team_count":   len(input.Teams),
		},
	})
}
