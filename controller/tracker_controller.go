package controller

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Cubic-Network-RCA/rca-dashboard-mvp/errs"
	"github.com/Cubic-Network-RCA/rca-dashboard-mvp/models"
	service "github.com/Cubic-Network-RCA/rca-dashboard-mvp/service"
)

// TrackerController manages HTTP requests for the RCA closed-loop tracker.
type TrackerController struct {
	service *service.TrackerService
}

// NewTrackerController initializes the controller with the service
func NewTrackerController(service *service.TrackerService) *TrackerController {
	return &TrackerController{service}
}

// statusFor maps service errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errs.IsValidation(err):
		return http.StatusBadRequest
	case errs.IsNotFound(err):
		return http.StatusNotFound
	case errs.IsConstraint(err):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// CreateRCA handles RCA creation requests
func (c *TrackerController) CreateRCA(ctx *gin.Context) {
	var rca models.RCA
	if err := ctx.ShouldBindJSON(&rca); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rcaID, err := c.service.CreateRCA(&rca)
	if err != nil {
		log.Printf("[CreateRCA] Error creating RCA: %v", err)
		ctx.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{
		"message": "RCA created successfully",
		"rca_id":  rcaID,
	})
}

// QueryRCAs returns the RCAs matching the query-string filter
func (c *TrackerController) QueryRCAs(ctx *gin.Context) {
	var filter service.RCAFilter
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rcas, err := c.service.QueryRCAs(filter)
	if err != nil {
		ctx.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"rcas":  rcas,
		"total": len(rcas),
	})
}

// GetRCADetail returns one RCA with its actions and evidence
func (c *TrackerController) GetRCADetail(ctx *gin.Context) {
	rcaID := ctx.Param("id")
	if rcaID == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "RCA ID required"})
		return
	}

	detail, err := c.service.GetRCADetail(rcaID)
	if err != nil {
		ctx.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, detail)
}

// UpdateRCAStatus sets an RCA status (Open, Closed, Reopened)
func (c *TrackerController) UpdateRCAStatus(ctx *gin.Context) {
	rcaID := ctx.Param("id")
	if rcaID == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "RCA ID required"})
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := c.service.UpdateRCAStatus(rcaID, req.Status); err != nil {
		log.Printf("[UpdateRCAStatus] Error updating RCA %s: %v", rcaID, err)
		ctx.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "RCA status updated"})
}

// DeleteRCA removes an RCA and cascades to its actions and evidence
func (c *TrackerController) DeleteRCA(ctx *gin.Context) {
	rcaID := ctx.Param("id")
	if rcaID == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "RCA ID required"})
		return
	}

	if err := c.service.DeleteRCA(rcaID); err != nil {
		ctx.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "RCA deleted"})
}

// SearchRCAs runs full-text keyword search over indexed RCAs
func (c *TrackerController) SearchRCAs(ctx *gin.Context) {
	query := ctx.Query("q")
	if query == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Query parameter 'q' is required"})
		return
	}

	results, err := c.service.SearchRCAs(query)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"message": "Search completed successfully",
		"results": results,
	})
}
