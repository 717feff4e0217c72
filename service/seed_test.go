package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedDemoData(t *testing.T) {
	svc := setupTracker(t)
	require.NoError(t, svc.SeedDemoData())

	rcas, err := svc.QueryRCAs(RCAFilter{})
	require.NoError(t, err)
	assert.Len(t, rcas, 5)

	// The audit view picks up exactly the seeded Pre-Live RCAs.
	auditRows, err := svc.AuditRollups(RCAFilter{AuditView: true})
	require.NoError(t, err)
	assert.Len(t, auditRows, 4)
	for _, row := range auditRows {
		assert.Equal(t, "Pre-Live", row.Environment)
		assert.GreaterOrEqual(t, row.ActionsTotal, 1)
	}

	// The seeded Production incident counts as a recent recurrence.
	report, err := svc.ComputeKPIs(RCAFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Recurrence30)
	assert.GreaterOrEqual(t, report.OpenActions, 1)

	// Matching the incident text surfaces the seeded timeout RCA first.
	incidents, err := svc.ListIncidents()
	require.NoError(t, err)
	require.Len(t, incidents, 1)

	matches, err := svc.FindSimilarRCAs(incidents[0].Summary, 5)
	require.NoError(t, err)
	require.NotEmpty(t, matches)
	assert.Equal(t, "Nissan", matches[0].OEM)
	assert.Equal(t, "UAT", matches[0].Environment)
	assert.Greater(t, matches[0].Similarity, 0.0)
}
