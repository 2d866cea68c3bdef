package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/responderhub/coverage-api-go/pkg/auth"
	"github.com/responderhub/coverage-api-go/pkg/database"
	"github.com/responderhub/coverage-api-go/pkg/handlers"
)

var r *gin.Engine

func init() {
	// Load .env if it exists (for local testing with vercel dev)
	_ = godotenv.Load(".env")
	_ = godotenv.Load("../.env")

	// Initialize DB
	db := database.InitDB()
	_ = auth.EnsureAdminExists(db)
	_ = database.EnsureDefaultTimeUnits(db)
	h := &handlers.Handler{DB: db}

	// Initialize Gin
	gin.SetMode(gin.ReleaseMode)
	r = gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	// Static files served from embedded FS
	r.StaticFS("/static", h.GetStaticFS())

	// Routes
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Shift Coverage API (Vercel)",
			"version": "1.3.0",
		})
	})

	r.GET("/admin", h.AdminInterface)
	r.POST("/admin/login", h.Login)

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
}

// Handler is the entry point for Vercel Go Runtime
func Handler(w http.ResponseWriter, r_req *http.Request) {
	r.ServeHTTP(w, r_req)
}
