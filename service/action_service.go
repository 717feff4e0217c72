package services

import (
	"fmt"
	"log"
	"strings"

	"github.com/Cubic-Network-RCA/rca-dashboard-mvp/errs"
	model "github.com/Cubic-Network-RCA/rca-dashboard-mvp/models"
)

// CreateAction validates and persists a remedial action under an
// existing RCA. Action text and a verification method are hard
// requirements; the initial status defaults to "To Do".
func (s *TrackerService) CreateAction(action *model.Action) (string, error) {
	if strings.TrimSpace(action.ActionText) == "" {
		return "", errs.NewValidation("action_text", "must not be empty")
	}
	if strings.TrimSpace(action.VerificationMethod) == "" {
		return "", errs.NewValidation("verification_method", "must not be empty")
	}
	if action.Status == "" {
		action.Status = "To Do"
	}
	if !model.ValidActionStatus(action.Status) {
		return "", errs.NewValidation("status", fmt.Sprintf("%q is not one of %v", action.Status, model.ActionStatuses))
	}

	// The owning RCA must exist before anything is written.
	var rca model.RCA
	if err := s.db.First(&rca, "rca_id = ?", action.RCAID).Error; err != nil {
		log.Printf("[CreateAction] Error fetching RCA %s: %v", action.RCAID, err)
		return "", storeErr("CreateAction", "RCA", action.RCAID, err)
	}

	action.ActionID = genID("ACT")
	if err := s.db.Create(action).Error; err != nil {
		log.Printf("[CreateAction] Error saving action: %v", err)
		return "", storeErr("CreateAction", "action", action.ActionID, err)
	}
	log.Printf("[CreateAction] Action %s created for RCA %s", action.ActionID, action.RCAID)

	s.recordAudit("action", action.ActionID, "created", map[string]interface{}{
		"rca_id": action.RCAID, "status": action.Status, "due_date": action.DueDate,
	})
	return action.ActionID, nil
}

// StatusUpdate carries a caller-directed action status change. Verifier
// identity and notes are optional: empty values never overwrite fields
// already recorded on the action.
type StatusUpdate struct {
	NewStatus  string `json:"status" binding:"required"`
	VerifiedBy string `json:"verified_by"`
	Notes      string `json:"notes"`
}

// UpdateActionStatus applies a status change under the governance
// contract: any status may be set (forward-only progression is a
// reporting gate, not a write-time constraint), reaching Verified or
// Closed stamps verified_at with the current date when not already set,
// and verifier/notes merge-if-present.
func (s *TrackerService) UpdateActionStatus(actionID string, update StatusUpdate) error {
	if !model.ValidActionStatus(update.NewStatus) {
		return errs.NewValidation("status", fmt.Sprintf("%q is not one of %v", update.NewStatus, model.ActionStatuses))
	}

	var action model.Action
	if err := s.db.First(&action, "action_id = ?", actionID).Error; err != nil {
		log.Printf("[UpdateActionStatus] Error fetching action %s: %v", actionID, err)
		return storeErr("UpdateActionStatus", "action", actionID, err)
	}

	previous := action.Status
	fields := map[string]interface{}{"status": update.NewStatus}
	if (update.NewStatus == "Verified" || update.NewStatus == "Closed") && action.VerifiedAt == "" {
		fields["verified_at"] = today()
	}
	if strings.TrimSpace(update.VerifiedBy) != "" {
		fields["verified_by"] = strings.TrimSpace(update.VerifiedBy)
	}
	if strings.TrimSpace(update.Notes) != "" {
		fields["verification_notes"] = strings.TrimSpace(update.Notes)
	}

	if err := s.db.Model(&action).Updates(fields).Error; err != nil {
		log.Printf("[UpdateActionStatus] Error updating action %s: %v", actionID, err)
		return storeErr("UpdateActionStatus", "action", actionID, err)
	}
	log.Printf("[UpdateActionStatus] Action %s: %s -> %s", actionID, previous, update.NewStatus)

	s.recordAudit("action", actionID, "status_changed", map[string]interface{}{
		"from": previous, "to": update.NewStatus, "verified_by": update.VerifiedBy,
	})
	return nil
}

// AddEvidence appends an evidence record to an existing action. The
// reference text is required; evidence is append-only.
func (s *TrackerService) AddEvidence(evidence *model.Evidence) (string, error) {
	if strings.TrimSpace(evidence.EvidenceRef) == "" {
		return "", errs.NewValidation("evidence_ref", "must not be empty")
	}
	if !model.ValidEvidenceType(evidence.EvidenceType) {
		return "", errs.NewValidation("evidence_type", fmt.Sprintf("%q is not one of %v", evidence.EvidenceType, model.EvidenceTypes))
	}

	var action model.Action
	if err := s.db.First(&action, "action_id = ?", evidence.ActionID).Error; err != nil {
		log.Printf("[AddEvidence] Error fetching action %s: %v", evidence.ActionID, err)
		return "", storeErr("AddEvidence", "action", evidence.ActionID, err)
	}

	evidence.EvidenceID = genID("EVD")
	if evidence.SubmittedAt == "" {
		evidence.SubmittedAt = today()
	}
	if err := s.db.Create(evidence).Error; err != nil {
		log.Printf("[AddEvidence] Error saving evidence: %v", err)
		return "", storeErr("AddEvidence", "evidence", evidence.EvidenceID, err)
	}
	log.Printf("[AddEvidence] Evidence %s added to action %s", evidence.EvidenceID, evidence.ActionID)

	s.recordAudit("evidence", evidence.EvidenceID, "created", map[string]interface{}{
		"action_id": evidence.ActionID, "evidence_type": evidence.EvidenceType,
	})
	return evidence.EvidenceID, nil
}

// GetActionTracker retrieves the actions belonging to the filtered RCA
// scope, each flagged with whether any evidence is attached.
func (s *TrackerService) GetActionTracker(filter RCAFilter) ([]map[string]interface{}, error) {
	var rcaIDs []string
	if err := s.scopedRCAs(filter).Pluck("rca_id", &rcaIDs).Error; err != nil {
		log.Printf("[GetActionTracker] Error fetching RCA scope: %v", err)
		return nil, storeErr("GetActionTracker", "RCA", "", err)
	}
	if len(rcaIDs) == 0 {
		return []map[string]interface{}{}, nil
	}

	var actions []model.Action
	if err := s.db.Where("rca_id IN ?", rcaIDs).Order("due_date ASC, action_id ASC").Find(&actions).Error; err != nil {
		log.Printf("[GetActionTracker] Error fetching actions: %v", err)
		return nil, storeErr("GetActionTracker", "action", "", err)
	}

	evidenced, err := s.evidencedActionIDs()
	if err != nil {
		return nil, err
	}

	result := make([]map[string]interface{}, 0, len(actions))
	for _, action := range actions {
		result = append(result, map[string]interface{}{
			"action_id":           action.ActionID,
			"rca_id":              action.RCAID,
			"action_text":         action.ActionText,
			"owner_team":          action.OwnerTeam,
			"owner_person":        action.OwnerPerson,
			"due_date":            action.DueDate,
			"status":              action.Status,
			"evidence_present":    evidenced[action.ActionID],
			"verification_method": action.VerificationMethod,
			"verified_by":         action.VerifiedBy,
			"verified_at":         action.VerifiedAt,
		})
	}
	return result, nil
}

// evidencedActionIDs returns the set of action ids that have at least
// one evidence record.
func (s *TrackerService) evidencedActionIDs() (map[string]bool, error) {
	var ids []string
	if err := s.db.Model(&model.Evidence{}).Distinct("action_id").Pluck("action_id", &ids).Error; err != nil {
		log.Printf("[evidencedActionIDs] Error fetching evidence ids: %v", err)
		return nil, storeErr("evidencedActionIDs", "evidence", "", err)
	}
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set, nil
}
