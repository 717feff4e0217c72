package main

import (
	"log"
	"net/http"
	"os"

	controller "github.com/Cubic-Network-RCA/rca-dashboard-mvp/controller"
	"github.com/Cubic-Network-RCA/rca-dashboard-mvp/initializers"
	middleware "github.com/Cubic-Network-RCA/rca-dashboard-mvp/middleware"
	service "github.com/Cubic-Network-RCA/rca-dashboard-mvp/service"

	"github.com/gin-gonic/gin"
)

func init() {
	if err := initializers.LoadEnv(); err != nil {
		log.Printf("[WARN] No .env file loaded: %s", err)
	}
	if err := initializers.ConnectDB(); err != nil {
		log.Fatalf("[CRITICAL] Failed to initialize database connection: %s", err)
	}
	if err := initializers.Migrate(); err != nil {
		log.Fatalf("[CRITICAL] Failed to run database migrations: %s", err)
	}
}

func main() {
	trackerService, err := service.NewTrackerService(initializers.DB)
	if err != nil {
		log.Fatalf("Failed to initialize tracker service: %s", err)
	}

	trackerController := controller.NewTrackerController(trackerService)

	router := gin.Default()
	router.Use(middleware.CORSMiddleware())

	// Global rate limiter for most routes
	router.Use(middleware.GlobalRateLimiter.Limit())

	// Healthcheck endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	// RCA store operations
	router.POST("/rcas",
		middleware.StrictRateLimiter.Limit(),
		trackerController.CreateRCA)
	router.GET("/rcas", trackerController.QueryRCAs)
	router.GET("/rcas/:id", trackerController.GetRCADetail)
	router.PUT("/rcas/:id/status",
		middleware.StrictRateLimiter.Limit(),
		trackerController.UpdateRCAStatus)
	router.DELETE("/rcas/:id",
		middleware.StrictRateLimiter.Limit(),
		trackerController.DeleteRCA)

	// Action lifecycle
	router.POST("/rcas/:id/actions",
		middleware.StrictRateLimiter.Limit(),
		trackerController.CreateAction)
	router.PUT("/actions/:id/status",
		middleware.StrictRateLimiter.Limit(),
		trackerController.UpdateActionStatus)
	router.POST("/actions/:id/evidence",
		middleware.StrictRateLimiter.Limit(),
		trackerController.AddEvidence)
	router.GET("/action-items", trackerController.GetActionTracker)

	// Incidents and recurrence matching
	router.POST("/incidents",
		middleware.StrictRateLimiter.Limit(),
		trackerController.LogIncident)
	router.GET("/incidents", trackerController.ListIncidents)
	router.PUT("/incidents/:id/link",
		middleware.StrictRateLimiter.Limit(),
		trackerController.LinkIncident)
	router.GET("/incidents/match", trackerController.MatchIncident)

	// Compliance dashboard
	router.GET("/kpis", trackerController.ComputeKPIs)
	router.GET("/audit", trackerController.GetAuditTable)
	router.GET("/audit-log", trackerController.GetAuditLog)

	// Keyword search over the RCA index
	router.GET("/search", trackerController.SearchRCAs)

	// Demo data for local evaluation
	router.POST("/admin/seed",
		middleware.StrictRateLimiter.Limit(),
		trackerController.SeedDemoData)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	router.Run(":" + port)
}
