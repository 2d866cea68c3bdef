package handlers

import (
	"embed"
	"encoding/csv"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/responderhub/coverage-api-go/pkg/auth"
	"github.com/responderhub/coverage-api-go/pkg/calendar"
	"github.com/responderhub/coverage-api-go/pkg/coverage"
	"github.com/responderhub/coverage-api-go/pkg/database"
	"github.com/responderhub/coverage-api-go/pkg/models"
	"github.com/responderhub/coverage-api-go/pkg/overlap"
	"github.com/responderhub/coverage-api-go/pkg/slots"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:embed static/*
var staticEmbed embed.FS

// Handler contains dependencies for the route handlers
type Handler struct {
	DB *gorm.DB
}

// AuthMiddleware verifies the JWT token for admin routes
func (h *Handler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.GetHeader("Authorization")
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		// Strip "Bearer " if present
		if len(token) > 7 && token[:7] == "Bearer " {
			token = token[7:]
		}

		claims, err := auth.VerifyToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		c.Set("username", claims.Username)
		c.Next()
	}
}

// APIKeyMiddleware verifies the API key for calendar routes using HMAC
func (h *Handler) APIKeyMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader("Authorization")
		if key == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "API Key required"})
			c.Abort()
			return
		}

		if len(key) > 7 && key[:7] == "Bearer " {
			key = key[7:]
		}

		userID, err := auth.VerifyHMACKey(key)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid API Key signature"})
			c.Abort()
			return
		}

		// Fetch or create API key record to track usage
		var apiKey database.APIKey
		h.DB.Where(database.APIKey{Key: key}).FirstOrCreate(&apiKey, database.APIKey{
			Key:       key,
			Name:      userID,
			RateLimit: 10000,
		})
		auth.TouchKey(h.DB, &apiKey)

		c.Set("apiKey", &apiKey)
		c.Set("userID", userID)
		c.Next()
	}
}

// referenceTime pins the past-window cutoff; zero falls back to now.
func referenceTime(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now()
	}
	return t
}

// ComputeOverlaps handles the JSON-based overlap detection request
func (h *Handler) ComputeOverlaps(c *gin.Context) {
	var input models.OverlapInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	regions := overlap.NewDetector(input.Windows, referenceTime(input.ReferenceTime)).Compute()

	h.RecordUsage(c, len(input.Windows), 0)

	if regions == nil {
		regions = []models.OverlapRegion{}
	}
	c.JSON(http.StatusOK, gin.H{
		"regions": regions,
		"count":   len(regions),
	})
}

// ClassifyCoverage handles the shift coverage classification request
func (h *Handler) ClassifyCoverage(c *gin.Context) {
	var input models.CoverageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	teams := make(map[string]models.Team, len(input.Teams))
	for _, t := range input.Teams {
		teams[t.ID] = t
	}

	type classified struct {
		ShiftID string          `json:"shift_id"`
		Result  coverage.Result `json:"result"`
	}

	results := make([]classified, 0, len(input.Shifts))
	for i := range input.Shifts {
		sh := &input.Shifts[i]
		team := teams[sh.TeamID]
		results = append(results, classified{
			ShiftID: sh.ID,
			Result:  coverage.Classify(len(sh.AssignedUserIDs), team.MinUsers, team.MaxUsers, sh.HasUser(input.ViewerID)),
		})
	}

	h.RecordUsage(c, 0, len(input.Shifts))

	c.JSON(http.StatusOK, gin.H{"shifts": results})
}

// MergeSlots handles the drag-selection merge request. When no units are
// supplied the stored daily plan is used.
func (h *Handler) MergeSlots(c *gin.Context) {
	var input struct {
		Selections    []slots.Selection `json:"selections"`
		Units         []slots.TimeUnit  `json:"units"`
		IncludeBreaks bool              `json:"include_breaks"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	units := input.Units
	if len(units) == 0 {
		stored, err := database.LoadTimeUnits(h.DB)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load time units"})
			return
		}
		units = stored
	}

	ranges := slots.MergeSelections(input.Selections, units, input.IncludeBreaks)
	if ranges == nil {
		ranges = []models.DateRange{}
	}
	c.JSON(http.StatusOK, gin.H{"ranges": ranges})
}

// BuildCalendar handles the combined event-list request
func (h *Handler) BuildCalendar(c *gin.Context) {
	var input models.CalendarInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	events := calendar.BuildEvents(calendar.BuildInput{
		Windows:  input.Windows,
		Shifts:   input.Shifts,
		Teams:    input.Teams,
		ViewerID: input.ViewerID,
		Now:      referenceTime(input.ReferenceTime),
	})

	h.RecordUsage(c, len(input.Windows), len(input.Shifts))

	if events == nil {
		events = []calendar.Event{}
	}
	c.JSON(http.StatusOK, gin.H{"events": events})
}

// RecordUsage records API usage in the database using an efficient upsert
func (h *Handler) RecordUsage(c *gin.Context, windowCount, shiftCount int) {
	apiKeyRaw, exists := c.Get("apiKey")
	if !exists {
		return
	}
	apiKey := apiKeyRaw.(*database.APIKey)

	today := time.Now().Format("2006-01-02")

	// Use OnConflict for a single-query upsert (supported by both Postgres and SQLite)
	h.DB.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "key_id"}, {Name: "date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"request_count": gorm.Expr("request_count + ?", 1),
			"total_windows": gorm.Expr("total_windows + ?", windowCount),
			"total_shifts":  gorm.Expr("total_shifts + ?", shiftCount),
		}),
	}).Create(&database.APIUsage{
		KeyID:        apiKey.ID,
		Date:         today,
		RequestCount: 1,
		TotalWindows: windowCount,
		TotalShifts:  shiftCount,
	})
}

// OverlapsCSV handles CSV uploads of availability windows and returns
// the detected overlap regions as CSV
func (h *Handler) OverlapsCSV(c *gin.Context) {
	windowsFile, _ := c.FormFile("windows_file")
	if windowsFile == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "windows_file is required"})
		return
	}

	wFile, err := windowsFile.Open()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to open windows file"})
		return
	}
	defer wFile.Close()

	wReader := csv.NewReader(wFile)
	wHeader, err := wReader.Read()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read windows header"})
		return
	}
	wCols := make(map[string]int)
	for i, name := range wHeader {
		wCols[name] = i
	}

	var windows []models.AvailabilityWindow
	for {
		record, err := wReader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}
		windows = append(windows, models.AvailabilityWindow{
			ID:      record[wCols["id"]],
			Start:   parseStamp(record[wCols["start"]]),
			End:     parseStamp(record[wCols["end"]]),
			OwnerID: record[wCols["owner_id"]],
		})
	}

	now := time.Now()
	if raw := c.Query("reference_time"); raw != "" {
		if t := parseStamp(raw); !t.IsZero() {
			now = t
		}
	}

	regions := overlap.NewDetector(windows, now).Compute()

	h.RecordUsage(c, len(windows), 0)

	var outCSV strings.Builder
	writer := csv.NewWriter(&outCSV)
	writer.Write([]string{"id", "start", "end", "participants", "window_ids", "label"})
	for i := range regions {
		r := &regions[i]
		writer.Write([]string{
			r.ID,
			r.Start.Format(time.RFC3339),
			r.End.Format(time.RFC3339),
			fmt.Sprintf("%d", r.Participants()),
			strings.Join(r.WindowIDs, "|"),
			r.Label,
		})
	}
	writer.Flush()

	c.JSON(http.StatusOK, gin.H{"csv": outCSV.String()})
}

// parseStamp accepts both full RFC3339 and minute-precision stamps
func parseStamp(raw string) time.Time {
	t, _ := time.Parse("2006-01-02T15:04:05Z", raw)
	if t.IsZero() {
		t, _ = time.Parse("2006-01-02T15:04", raw)
	}
	return t
}

// Login handles admin login
func (h *Handler) Login(c *gin.Context) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user database.MasterUser
	if err := h.DB.Where("username = ?", req.Username).First(&user).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := auth.CreateToken(user.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"access_token": token, "token_type": "bearer"})
}

// GenerateKey creates a new API key using the HMAC strategy
func (h *Handler) GenerateKey(c *gin.Context) {
	var req struct {
		Name      string `json:"name"`
		RateLimit int    `json:"rate_limit"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	if req.RateLimit == 0 {
		req.RateLimit = 10000
	}

	// Generate key using HMAC
	key := auth.GenerateHMACKey(req.Name)

	// Create preview (e.g., sk_...****)
	preview := ""
	if len(key) > 8 {
		preview = key[:3] + "..." + key[len(key)-4:]
	} else {
		preview = "****"
	}

	apiKey := database.APIKey{
		Key:        key,
		Name:       req.Name,
		KeyPreview: preview,
		RateLimit:  req.RateLimit,
	}

	if err := h.DB.Create(&apiKey).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create key record"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"name": req.Name,
		"key":  key,
	})
}

// ListKeys returns all API keys
func (h *Handler) ListKeys(c *gin.Context) {
	var keys []database.APIKey
	h.DB.Find(&keys)
	c.JSON(http.StatusOK, gin.H{"keys": keys})
}

// RevokeKey deletes an API key
func (h *Handler) RevokeKey(c *gin.Context) {
	id := c.Param("id")
	if err := h.DB.Delete(&database.APIKey{}, id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not delete key"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Key revoked"})
}

// UpdateKeyLimit updates the rate limit for a key
func (h *Handler) UpdateKeyLimit(c *gin.Context) {
	id := c.Param("id")
	var req struct {
		RateLimit int `json:"rate_limit" form:"rate_limit"`
	}

	// Try JSON first, then Form/Query
	if err := c.ShouldBindJSON(&req); err != nil {
		if err := c.ShouldBindQuery(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "rate_limit is required"})
			return
		}
	}

	if req.RateLimit == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid rate limit"})
		return
	}

	if err := h.DB.Model(&database.APIKey{}).Where("id = ?", id).Update("rate_limit", req.RateLimit).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update key limit"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Rate limit updated successfully"})
}

// GetUsage returns usage stats for a key
func (h *Handler) GetUsage(c *gin.Context) {
	id := c.Param("id")
	var usage []database.APIUsage
	h.DB.Where("key_id = ?", id).Order("date desc").Limit(30).Find(&usage)
	c.JSON(http.StatusOK, gin.H{"usage": usage})
}

// AdminInterface serves the admin web interface from embedded files
func (h *Handler) AdminInterface(c *gin.Context) {
	_ = auth.EnsureAdminExists(h.DB)

	data, err := staticEmbed.ReadFile("static/index.html")
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "static/index.html not found in embedded FS"})
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", data)
}

// GetStaticFS returns the embedded filesystem for static assets
func (h *Handler) GetStaticFS() http.FileSystem {
	sub, err := fs.Sub(staticEmbed, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}
