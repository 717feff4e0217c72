package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	service "github.com/Cubic-Network-RCA/rca-dashboard-mvp/service"
)

// ComputeKPIs returns the compliance KPI record for the filtered scope
func (c *TrackerController) ComputeKPIs(ctx *gin.Context) {
	var filter service.RCAFilter
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := c.service.ComputeKPIs(filter)
	if err != nil {
		ctx.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, report)
}

// GetAuditTable returns per-RCA rollups for the audit view
func (c *TrackerController) GetAuditTable(ctx *gin.Context) {
	var filter service.RCAFilter
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	rows, err := c.service.AuditRollups(filter)
	if err != nil {
		ctx.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"rows":  rows,
		"total": len(rows),
	})
}

// GetAuditLog returns the audit trail, optionally for one entity id
func (c *TrackerController) GetAuditLog(ctx *gin.Context) {
	events, err := c.service.ListAuditEvents(ctx.Query("entity_id"))
	if err != nil {
		ctx.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, gin.H{
		"events": events,
		"total":  len(events),
	})
}
