package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	model "github.com/Cubic-Network-RCA/rca-dashboard-mvp/models"
)

func TestComputeKPIsEmptyScope(t *testing.T) {
	svc := setupTracker(t)

	report, err := svc.ComputeKPIs(RCAFilter{})
	require.NoError(t, err)
	assert.Equal(t, &model.KPIReport{}, report)

	// RCAs exist but the filter selects none: still all zeros (aside
	// from recurrence, which ignores scope).
	mustCreateRCA(t, svc, model.RCA{OEM: "Nissan"})
	report, err = svc.ComputeKPIs(RCAFilter{OEMContains: "Toyota"})
	require.NoError(t, err)
	assert.Equal(t, &model.KPIReport{}, report)
}

func TestComputeKPIsClosedLoop(t *testing.T) {
	svc := setupTracker(t)
	rcaID := mustCreateRCA(t, svc, model.RCA{})
	actionID := mustCreateAction(t, svc, model.Action{
		RCAID:   rcaID,
		Status:  "In Progress",
		DueDate: daysAgo(10),
	})

	// Open, past due, no evidence attached yet.
	report, err := svc.ComputeKPIs(RCAFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, report.OpenActions)
	assert.Equal(t, 1, report.Overdue)
	assert.Equal(t, 1, report.MissingEvidence)
	assert.InDelta(t, 0.0, report.EvidencedPct, 1e-9)
	assert.InDelta(t, 0.0, report.VerifiedPct, 1e-9)
	assert.Equal(t, 0, report.Recurrence30)

	// Attaching evidence clears missing_evidence; the action is still
	// open and overdue.
	_, err = svc.AddEvidence(&model.Evidence{
		ActionID: actionID, EvidenceType: "Link", EvidenceRef: "https://ci.example/run/42",
	})
	require.NoError(t, err)
	report, err = svc.ComputeKPIs(RCAFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, report.OpenActions)
	assert.Equal(t, 1, report.Overdue)
	assert.Equal(t, 0, report.MissingEvidence)
	assert.InDelta(t, 100.0, report.EvidencedPct, 1e-9)

	// Verified with a named verifier closes the loop.
	require.NoError(t, svc.UpdateActionStatus(actionID, StatusUpdate{NewStatus: "Verified", VerifiedBy: "QA Lead"}))
	report, err = svc.ComputeKPIs(RCAFilter{})
	require.NoError(t, err)
	assert.Equal(t, 0, report.OpenActions)
	assert.Equal(t, 0, report.Overdue)
	assert.Equal(t, 0, report.MissingEvidence)
	assert.InDelta(t, 100.0, report.VerifiedPct, 1e-9)
}

func TestVerifiedPctRequiresNamedVerifier(t *testing.T) {
	svc := setupTracker(t)
	rcaID := mustCreateRCA(t, svc, model.RCA{})
	actionID := mustCreateAction(t, svc, model.Action{RCAID: rcaID})

	// Status alone is not enough: without a verifier on record the
	// action never counts toward verified_pct.
	require.NoError(t, svc.UpdateActionStatus(actionID, StatusUpdate{NewStatus: "Verified"}))
	report, err := svc.ComputeKPIs(RCAFilter{})
	require.NoError(t, err)
	assert.InDelta(t, 0.0, report.VerifiedPct, 1e-9)

	require.NoError(t, svc.UpdateActionStatus(actionID, StatusUpdate{NewStatus: "Verified", VerifiedBy: "QA Lead"}))
	report, err = svc.ComputeKPIs(RCAFilter{})
	require.NoError(t, err)
	assert.InDelta(t, 100.0, report.VerifiedPct, 1e-9)
}

func TestOverdueIgnoresEmptyDueDate(t *testing.T) {
	svc := setupTracker(t)
	rcaID := mustCreateRCA(t, svc, model.RCA{})
	mustCreateAction(t, svc, model.Action{RCAID: rcaID, Status: "To Do"})

	report, err := svc.ComputeKPIs(RCAFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, report.OpenActions)
	assert.Equal(t, 0, report.Overdue)
}

func TestRecurrenceCountIgnoresFilterScope(t *testing.T) {
	svc := setupTracker(t)
	_, err := svc.LogIncident(&model.Incident{
		Summary: "Gateway timeout observed again", OEM: "Nissan", Environment: "Production",
	})
	require.NoError(t, err)
	_, err = svc.LogIncident(&model.Incident{
		Summary: "Old duplicate record issue", OEM: "Nissan", Environment: "UAT",
		CreatedAt: daysAgo(45),
	})
	require.NoError(t, err)

	// A filter matching no RCAs still reports the 30-day incident count.
	report, err := svc.ComputeKPIs(RCAFilter{OEMContains: "nobody"})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Recurrence30)
	assert.Equal(t, 0, report.OpenActions)
}

func TestOverdueBoundaryAtFixedDate(t *testing.T) {
	svc := setupTracker(t)
	rcaID := mustCreateRCA(t, svc, model.RCA{})
	mustCreateAction(t, svc, model.Action{RCAID: rcaID, DueDate: "2025-03-05"})
	mustCreateAction(t, svc, model.Action{RCAID: rcaID, DueDate: "2025-03-04"})

	// Due exactly on the computation date is not overdue; strictly
	// before it is.
	report, err := svc.computeKPIsAt(RCAFilter{}, time.Date(2025, time.March, 5, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 2, report.OpenActions)
	assert.Equal(t, 1, report.Overdue)
}

func TestComputeKPIsIdempotent(t *testing.T) {
	svc := setupTracker(t)
	rcaID := mustCreateRCA(t, svc, model.RCA{})
	mustCreateAction(t, svc, model.Action{RCAID: rcaID, DueDate: daysAgo(2)})
	mustCreateAction(t, svc, model.Action{RCAID: rcaID, Status: "Closed", VerifiedBy: "QA", VerifiedAt: daysAgo(1)})

	first, err := svc.ComputeKPIs(RCAFilter{})
	require.NoError(t, err)
	second, err := svc.ComputeKPIs(RCAFilter{})
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.InDelta(t, 50.0, first.VerifiedPct, 1e-9)
}

func TestAuditRollups(t *testing.T) {
	svc := setupTracker(t)

	prodID := mustCreateRCA(t, svc, model.RCA{Environment: "Production", CreatedAt: daysAgo(5)})
	uatID := mustCreateRCA(t, svc, model.RCA{Environment: "UAT", CreatedAt: daysAgo(3)})
	bareID := mustCreateRCA(t, svc, model.RCA{Environment: "UAT", CreatedAt: daysAgo(1)})

	a1 := mustCreateAction(t, svc, model.Action{RCAID: prodID, Status: "In Progress"})
	mustCreateAction(t, svc, model.Action{RCAID: prodID, Status: "Closed", VerifiedBy: "QA", VerifiedAt: daysAgo(1)})
	mustCreateAction(t, svc, model.Action{RCAID: uatID})
	_, err := svc.AddEvidence(&model.Evidence{ActionID: a1, EvidenceType: "Screenshot note", EvidenceRef: "dashboard capture"})
	require.NoError(t, err)

	rows, err := svc.AuditRollups(RCAFilter{})
	require.NoError(t, err)
	require.Len(t, rows, 3)

	// Environment ascending, then created_at descending within it.
	assert.Equal(t, prodID, rows[0].RCAID)
	assert.Equal(t, bareID, rows[1].RCAID)
	assert.Equal(t, uatID, rows[2].RCAID)

	assert.Equal(t, 2, rows[0].ActionsTotal)
	assert.Equal(t, 1, rows[0].ActionsOpen)
	assert.Equal(t, 1, rows[0].ActionsMissingEvidence)

	// An RCA with no actions still appears with zero counts.
	assert.Equal(t, 0, rows[1].ActionsTotal)

	assert.Equal(t, 1, rows[2].ActionsTotal)
	assert.Equal(t, 1, rows[2].ActionsOpen)
	assert.Equal(t, 1, rows[2].ActionsMissingEvidence)
}
