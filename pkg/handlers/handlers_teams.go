package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/responderhub/coverage-api-go/pkg/database"
	"gorm.io/gorm"
)

// CreateTeam stores a new team after checking its staffing constraints
func (h *Handler) CreateTeam(c *gin.Context) {
	var req struct {
		Name      string   `json:"name"`
		MinUsers  int      `json:"min_users"`
		MaxUsers  int      `json:"max_users"`
		Positions []string `json:"positions"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}
	if req.MinUsers < 1 || req.MinUsers > req.MaxUsers {
		c.JSON(http.StatusBadRequest, gin.H{"error": "min_users must be between 1 and max_users"})
		return
	}
	if len(req.Positions) != req.MaxUsers {
		c.JSON(http.StatusBadRequest, gin.H{"error": "exactly max_users positions are required"})
		return
	}
	seen := make(map[string]bool)
	for _, p := range req.Positions {
		if p == "" || seen[p] {
			c.JSON(http.StatusBadRequest, gin.H{"error": "positions must be unique and non-empty"})
			return
		}
		seen[p] = true
	}

	team := database.Team{
		Name:      req.Name,
		MinUsers:  req.MinUsers,
		MaxUsers:  req.MaxUsers,
		Positions: strings.Join(req.Positions, "|"),
	}
	if err := h.DB.Create(&team).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create team"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"team": team})
}

// ListTeams returns all stored teams with their position lists expanded
func (h *Handler) ListTeams(c *gin.Context) {
	var teams []database.Team
	h.DB.Find(&teams)

	out := make([]gin.H, 0, len(teams))
	for i := range teams {
		t := &teams[i]
		out = append(out, gin.H{
			"id":        t.ID,
			"name":      t.Name,
			"min_users": t.MinUsers,
			"max_users": t.MaxUsers,
			"positions": t.PositionList(),
		})
	}
	c.JSON(http.StatusOK, gin.H{"teams": out})
}

// DeleteTeam removes a team
func (h *Handler) DeleteTeam(c *gin.Context) {
	id := c.Param("id")
	if err := h.DB.Delete(&database.Team{}, id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not delete team"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Team deleted"})
}

// ListTimeUnits returns the configured daily slot plan
func (h *Handler) ListTimeUnits(c *gin.Context) {
	var units []database.TimeUnit
	h.DB.Order("ordinal asc").Find(&units)
	c.JSON(http.StatusOK, gin.H{"units": units})
}

// ReplaceTimeUnits swaps the daily slot plan wholesale. Units must be
// ascending and internally consistent on the HHMM axis.
func (h *Handler) ReplaceTimeUnits(c *gin.Context) {
	var req struct {
		Units []struct {
			Name    string `json:"name"`
			Start   int    `json:"start"`
			End     int    `json:"end"`
			IsBreak bool   `json:"is_break"`
		} `json:"units"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(req.Units) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "at least one unit is required"})
		return
	}

	prevEnd := -1
	for _, u := range req.Units {
		if u.Start >= u.End {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unit " + u.Name + " must start before it ends"})
			return
		}
		if u.Start < prevEnd {
			c.JSON(http.StatusBadRequest, gin.H{"error": "units must be sorted and non-overlapping"})
			return
		}
		prevEnd = u.End
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&database.TimeUnit{}).Error; err != nil {
			return err
		}
		for i, u := range req.Units {
			unit := database.TimeUnit{
				Name:    u.Name,
				Start:   u.Start,
				End:     u.End,
				IsBreak: u.IsBreak,
				Ordinal: i,
			}
			if err := tx.Create(&unit).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not replace time units"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Time units replaced"})
}
