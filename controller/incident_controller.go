package controller

import (
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Cubic-Network-RCA/rca-dashboard-mvp/models"
)

// LogIncident records a new incident report
func (c *TrackerController) LogIncident(ctx *gin.Context) {
	var incident models.Incident
	if err := ctx.ShouldBindJSON(&incident); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	incidentID, err := c.service.LogIncident(&incident)
	if err != nil {
		log.Printf("[LogIncident] Error logging incident: %v", err)
		ctx.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{
		"message":     "Incident logged successfully",
		"incident_id": incidentID,
	})
}

// ListIncidents returns every incident, newest first
func (c *TrackerController) ListIncidents(ctx *gin.Context) {
	incidents, err := c.service.ListIncidents()
	if err != nil {
		ctx.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"incidents": incidents,
		"total":     len(incidents),
	})
}

// LinkIncident marks an incident as a recurrence of an RCA
func (c *TrackerController) LinkIncident(ctx *gin.Context) {
	incidentID := ctx.Param("id")
	if incidentID == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Incident ID required"})
		return
	}

	var req struct {
		RCAID string `json:"rca_id" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := c.service.LinkIncident(incidentID, req.RCAID); err != nil {
		log.Printf("[LinkIncident] Error linking incident %s: %v", incidentID, err)
		ctx.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Incident linked to RCA"})
}

// MatchIncident ranks existing RCAs by similarity to a new incident
// description to surface probable recurrences
func (c *TrackerController) MatchIncident(ctx *gin.Context) {
	query := ctx.Query("q")
	if query == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter 'q' is required"})
		return
	}

	topK := 0
	if raw := ctx.Query("top_k"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "top_k must be an integer"})
			return
		}
		topK = parsed
	}

	matches, err := c.service.FindSimilarRCAs(query, topK)
	if err != nil {
		ctx.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"matches": matches,
		"total":   len(matches),
	})
}

// SeedDemoData loads the demo dataset
func (c *TrackerController) SeedDemoData(ctx *gin.Context) {
	if err := c.service.SeedDemoData(); err != nil {
		log.Printf("[SeedDemoData] Error seeding demo data: %v", err)
		ctx.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Demo data seeded"})
}
