package main

import (
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/responderhub/coverage-api-go/pkg/auth"
	"github.com/responderhub/coverage-api-go/pkg/database"
	"github.com/responderhub/coverage-api-go/pkg/handlers"
)

func main() {
	// Load .env if it exists
	// Try root and parent directories for flexibility
	envPaths := []string{".env", "../.env", "../../.env"}
	for _, p := range envPaths {
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Load(p)
			break
		}
	}

	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	db := database.InitDB()
	_ = auth.EnsureAdminExists(db)
	if err := database.EnsureDefaultTimeUnits(db); err != nil {
		log.Printf("could not seed time units: %v", err)
	}
	h := &handlers.Handler{DB: db}

	r := gin.Default()

	// Admin interface - serve static files from embedded FS
	r.StaticFS("/static", h.GetStaticFS())

	// Routes
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Shift Coverage API",
			"version": "1.3.0",
		})
	})

	r.GET("/admin", h.AdminInterface)
	r.POST("/admin/login", h.Login)

	// Admin Endpoints
	admin := r.Group("/admin")
	admin.Use(h.AuthMiddleware())
	{
		admin.POST("/keys", h.GenerateKey)
		admin.GET("/keys", h.ListKeys)
		admin.PUT("/keys/:id", h.UpdateKeyLimit)
		admin.DELETE("/keys/:id", h.RevokeKey)
		admin.GET("/usage/:id", h.GetUsage)

		admin.POST("/teams", h.CreateTeam)
		admin.GET("/teams", h.ListTeams)
		admin.DELETE("/teams/:id", h.DeleteTeam)

		admin.GET("/timeunits", h.ListTimeUnits)
		admin.PUT("/timeunits", h.ReplaceTimeUnits)
	}

	// Calendar Endpoints
	api := r.Group("/api")
	api.Use(h.APIKeyMiddleware())
	{
		api.POST("/overlaps", h.ComputeOverlaps)
		api.POST("/overlaps/csv", h.OverlapsCSV)
		api.POST("/coverage", h.ClassifyCoverage)
		api.POST("/slots/merge", h.MergeSlots)
		api.POST("/calendar", h.BuildCalendar)
		api.POST("/validate", h.ValidateInput)
		api.GET("/usage", h.GetMyUsage)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	log.Printf("Server starting on port %s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("could not run server: %v", err)
	}
}
