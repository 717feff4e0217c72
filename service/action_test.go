package services

import (
	"testing"
	"time"

	"github.com/agiledragon/gomonkey/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Cubic-Network-RCA/rca-dashboard-mvp/errs"
	model "github.com/Cubic-Network-RCA/rca-dashboard-mvp/models"
)

// FixedTime is used to patch time.Now in tests.
var FixedTime = time.Date(2025, time.March, 5, 0, 0, 0, 0, time.UTC)

func TestCreateActionValidation(t *testing.T) {
	svc := setupTracker(t)
	rcaID := mustCreateRCA(t, svc, model.RCA{})

	t.Run("empty action text", func(t *testing.T) {
		_, err := svc.CreateAction(&model.Action{RCAID: rcaID, VerificationMethod: "review"})
		assert.True(t, errs.IsValidation(err), "expected ValidationError, got %v", err)
	})

	t.Run("empty verification method", func(t *testing.T) {
		_, err := svc.CreateAction(&model.Action{RCAID: rcaID, ActionText: "fix it"})
		assert.True(t, errs.IsValidation(err), "expected ValidationError, got %v", err)
	})

	t.Run("invalid status", func(t *testing.T) {
		_, err := svc.CreateAction(&model.Action{
			RCAID: rcaID, ActionText: "fix it", VerificationMethod: "review", Status: "Done",
		})
		assert.True(t, errs.IsValidation(err), "expected ValidationError, got %v", err)
	})

	t.Run("nonexistent RCA", func(t *testing.T) {
		_, err := svc.CreateAction(&model.Action{
			RCAID: "RCA-MISSING", ActionText: "fix it", VerificationMethod: "review",
		})
		assert.True(t, errs.IsNotFound(err), "expected NotFoundError, got %v", err)
	})

	t.Run("valid action defaults to To Do and is fetchable", func(t *testing.T) {
		actionID, err := svc.CreateAction(&model.Action{
			RCAID: rcaID, ActionText: "fix it", VerificationMethod: "review",
		})
		require.NoError(t, err)
		assert.Regexp(t, `^ACT-[A-Z0-9]{7}$`, actionID)

		detail, err := svc.GetRCADetail(rcaID)
		require.NoError(t, err)
		require.Len(t, detail.Actions, 1)
		assert.Equal(t, "To Do", detail.Actions[0].Status)
		assert.False(t, detail.Actions[0].EvidencePresent)
	})
}

func TestUpdateActionStatusStampsVerifiedAt(t *testing.T) {
	svc := setupTracker(t)
	rcaID := mustCreateRCA(t, svc, model.RCA{})
	actionID := mustCreateAction(t, svc, model.Action{RCAID: rcaID})

	// Patch time.Now for a deterministic verification date.
	patches := gomonkey.ApplyFunc(time.Now, func() time.Time {
		return FixedTime
	})
	defer patches.Reset()

	require.NoError(t, svc.UpdateActionStatus(actionID, StatusUpdate{NewStatus: "Verified", VerifiedBy: "QA Lead"}))
	wantDate := time.Now().Format("2006-01-02")

	detail, err := svc.GetRCADetail(rcaID)
	require.NoError(t, err)
	require.Len(t, detail.Actions, 1)
	action := detail.Actions[0].Action
	assert.Equal(t, "Verified", action.Status)
	assert.Equal(t, "QA Lead", action.VerifiedBy)
	assert.Equal(t, wantDate, action.VerifiedAt)
	assert.True(t, action.IndependentlyVerified())
}

func TestUpdateActionStatusMergeIfPresent(t *testing.T) {
	svc := setupTracker(t)
	rcaID := mustCreateRCA(t, svc, model.RCA{})
	actionID := mustCreateAction(t, svc, model.Action{
		RCAID:      rcaID,
		Status:     "Evidence Submitted",
		VerifiedBy: "QA Lead",
		VerifiedAt: "2025-01-15",
	})

	// A later update without verifier or notes must not blank either
	// field, and an existing verified_at is never restamped.
	require.NoError(t, svc.UpdateActionStatus(actionID, StatusUpdate{NewStatus: "Closed"}))

	detail, err := svc.GetRCADetail(rcaID)
	require.NoError(t, err)
	action := detail.Actions[0].Action
	assert.Equal(t, "Closed", action.Status)
	assert.Equal(t, "QA Lead", action.VerifiedBy)
	assert.Equal(t, "2025-01-15", action.VerifiedAt)

	// Explicitly provided values do overwrite.
	require.NoError(t, svc.UpdateActionStatus(actionID, StatusUpdate{
		NewStatus: "Closed", VerifiedBy: "Second Reviewer", Notes: "re-checked",
	}))
	detail, err = svc.GetRCADetail(rcaID)
	require.NoError(t, err)
	action = detail.Actions[0].Action
	assert.Equal(t, "Second Reviewer", action.VerifiedBy)
	assert.Equal(t, "re-checked", action.VerificationNotes)
}

func TestUpdateActionStatusErrors(t *testing.T) {
	svc := setupTracker(t)
	rcaID := mustCreateRCA(t, svc, model.RCA{})
	actionID := mustCreateAction(t, svc, model.Action{RCAID: rcaID})

	err := svc.UpdateActionStatus("ACT-MISSING", StatusUpdate{NewStatus: "Closed"})
	assert.True(t, errs.IsNotFound(err), "expected NotFoundError, got %v", err)

	err = svc.UpdateActionStatus(actionID, StatusUpdate{NewStatus: "Finished"})
	assert.True(t, errs.IsValidation(err), "expected ValidationError, got %v", err)
}

func TestAddEvidence(t *testing.T) {
	svc := setupTracker(t)
	rcaID := mustCreateRCA(t, svc, model.RCA{})
	actionID := mustCreateAction(t, svc, model.Action{RCAID: rcaID})

	t.Run("empty reference rejected", func(t *testing.T) {
		_, err := svc.AddEvidence(&model.Evidence{ActionID: actionID, EvidenceType: "Link"})
		assert.True(t, errs.IsValidation(err), "expected ValidationError, got %v", err)
	})

	t.Run("invalid type rejected", func(t *testing.T) {
		_, err := svc.AddEvidence(&model.Evidence{ActionID: actionID, EvidenceType: "Video", EvidenceRef: "x"})
		assert.True(t, errs.IsValidation(err), "expected ValidationError, got %v", err)
	})

	t.Run("nonexistent action rejected", func(t *testing.T) {
		_, err := svc.AddEvidence(&model.Evidence{ActionID: "ACT-MISSING", EvidenceType: "Link", EvidenceRef: "x"})
		assert.True(t, errs.IsNotFound(err), "expected NotFoundError, got %v", err)
	})

	t.Run("valid evidence flips the tracker flag", func(t *testing.T) {
		evidenceID, err := svc.AddEvidence(&model.Evidence{
			ActionID: actionID, EvidenceType: "Test run note", EvidenceRef: "regression suite green", SubmittedBy: "Owner A",
		})
		require.NoError(t, err)
		assert.Regexp(t, `^EVD-[A-Z0-9]{7}$`, evidenceID)

		items, err := svc.GetActionTracker(RCAFilter{})
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, true, items[0]["evidence_present"])
	})
}
