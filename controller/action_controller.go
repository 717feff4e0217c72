package controller

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Cubic-Network-RCA/rca-dashboard-mvp/models"
	service "github.com/Cubic-Network-RCA/rca-dashboard-mvp/service"
)

// CreateAction adds a remedial action to an RCA
func (c *TrackerController) CreateAction(ctx *gin.Context) {
	rcaID := ctx.Param("id")
	if rcaID == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "RCA ID required"})
		return
	}

	var action models.Action
	if err := ctx.ShouldBindJSON(&action); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	action.RCAID = rcaID

	actionID, err := c.service.CreateAction(&action)
	if err != nil {
		log.Printf("[CreateAction] Error creating action for RCA %s: %v", rcaID, err)
		ctx.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{
		"message":   "Action created successfully",
		"action_id": actionID,
	})
}

// UpdateActionStatus applies a caller-directed status change with
// optional verifier identity and notes
func (c *TrackerController) UpdateActionStatus(ctx *gin.Context) {
	actionID := ctx.Param("id")
	if actionID == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Action ID required"})
		return
	}

	var update service.StatusUpdate
	if err := ctx.ShouldBindJSON(&update); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := c.service.UpdateActionStatus(actionID, update); err != nil {
		log.Printf("[UpdateActionStatus] Error updating action %s: %v", actionID, err)
		ctx.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "Action status updated"})
}

// AddEvidence appends an evidence record to an action
func (c *TrackerController) AddEvidence(ctx *gin.Context) {
	actionID := ctx.Param("id")
	if actionID == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Action ID required"})
		return
	}

	var evidence models.Evidence
	if err := ctx.ShouldBindJSON(&evidence); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	evidence.ActionID = actionID

	evidenceID, err := c.service.AddEvidence(&evidence)
	if err != nil {
		log.Printf("[AddEvidence] Error adding evidence to action %s: %v", actionID, err)
		ctx.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{
		"message":     "Evidence added successfully",
		"evidence_id": evidenceID,
	})
}

// GetActionTracker lists the actions of the filtered RCA scope with
// evidence flags
func (c *TrackerController) GetActionTracker(ctx *gin.Context) {
	var filter service.RCAFilter
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	items, err := c.service.GetActionTracker(filter)
	if err != nil {
		log.Printf("[GetActionTracker] Error fetching action tracker: %v", err)
		ctx.JSON(statusFor(err), gin.H{
			"error":   "Failed to retrieve action items",
			"details": err.Error(),
		})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"message": "Action items retrieved successfully",
		"items":   items,
	})
}
