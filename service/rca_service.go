package services

import (
	"fmt"
	"log"
	"strings"

	"gorm.io/gorm"

	"github.com/Cubic-Network-RCA/rca-dashboard-mvp/errs"
	model "github.com/Cubic-Network-RCA/rca-dashboard-mvp/models"
)

// RCAFilter narrows a query to a compliance/audit scope. Zero or more
// predicates combine with AND; the zero value matches everything.
type RCAFilter struct {
	// OEMContains matches OEM names by substring.
	OEMContains string `form:"oem" json:"oem"`

	// Environments and Statuses restrict by set membership when non-empty.
	Environments []string `form:"environment" json:"environment"`
	Statuses     []string `form:"status" json:"status"`

	// CreatedFrom / CreatedTo bound created_at (inclusive ISO dates).
	CreatedFrom string `form:"created_from" json:"created_from"`
	CreatedTo   string `form:"created_to" json:"created_to"`

	// AuditView is the named reusable audit scope: Pre-Live RCAs
	// created within the trailing 183 days.
	AuditView bool `form:"audit_view" json:"audit_view"`
}

// CreateRCA validates and persists a new RCA record, assigning its id
// and defaulting creation date and status. The record is indexed for
// full-text search on success.
func (s *TrackerService) CreateRCA(rca *model.RCA) (string, error) {
	if strings.TrimSpace(rca.OEM) == "" {
		return "", errs.NewValidation("oem", "must not be empty")
	}
	if strings.TrimSpace(rca.Title) == "" {
		return "", errs.NewValidation("title", "must not be empty")
	}
	if !model.ValidEnvironment(rca.Environment) {
		return "", errs.NewValidation("environment", fmt.Sprintf("%q is not one of %v", rca.Environment, model.Environments))
	}
	if rca.Status == "" {
		rca.Status = "Open"
	}
	if !model.ValidRCAStatus(rca.Status) {
		return "", errs.NewValidation("status", fmt.Sprintf("%q is not one of %v", rca.Status, model.RCAStatuses))
	}
	if rca.CreatedAt == "" {
		rca.CreatedAt = today()
	}

	rca.RCAID = genID("RCA")
	if err := s.db.Create(rca).Error; err != nil {
		log.Printf("[CreateRCA] Error saving RCA: %v", err)
		return "", storeErr("CreateRCA", "RCA", rca.RCAID, err)
	}
	log.Printf("[CreateRCA] RCA %s created (%s, %s)", rca.RCAID, rca.OEM, rca.Environment)

	s.recordAudit("rca", rca.RCAID, "created", map[string]interface{}{
		"oem": rca.OEM, "environment": rca.Environment, "title": rca.Title, "status": rca.Status,
	})
	s.indexRCA(rca)
	return rca.RCAID, nil
}

// QueryRCAs returns the RCAs matching the filter as an ordered snapshot:
// environment ascending, creation date descending, id as tiebreak.
func (s *TrackerService) QueryRCAs(filter RCAFilter) ([]model.RCA, error) {
	query := s.scopedRCAs(filter)

	var rcas []model.RCA
	if err := query.Order("environment ASC, created_at DESC, rca_id ASC").Find(&rcas).Error; err != nil {
		log.Printf("[QueryRCAs] Error fetching RCAs: %v", err)
		return nil, storeErr("QueryRCAs", "RCA", "", err)
	}
	return rcas, nil
}

// scopedRCAs builds the filtered RCA query shared by QueryRCAs, the
// compliance engine and the action tracker.
func (s *TrackerService) scopedRCAs(filter RCAFilter) *gorm.DB {
	query := s.db.Model(&model.RCA{})
	if oem := strings.TrimSpace(filter.OEMContains); oem != "" {
		query = query.Where("oem LIKE ?", "%"+oem+"%")
	}
	if len(filter.Environments) > 0 {
		query = query.Where("environment IN ?", filter.Environments)
	}
	if len(filter.Statuses) > 0 {
		query = query.Where("status IN ?", filter.Statuses)
	}
	if filter.CreatedFrom != "" {
		query = query.Where("created_at >= ?", filter.CreatedFrom)
	}
	if filter.CreatedTo != "" {
		query = query.Where("created_at <= ?", filter.CreatedTo)
	}
	if filter.AuditView {
		query = query.Where("environment = ?", "Pre-Live").
			Where("created_at >= ?", daysAgo(183))
	}
	return query
}

// ActionWithEvidence decorates an action with an evidence-present flag
// for the tracker and detail views.
type ActionWithEvidence struct {
	model.Action
	EvidencePresent bool `json:"evidence_present"`
}

// RCADetail is the detail view of one RCA: the record, its actions with
// evidence flags, and every evidence row attached through its actions.
type RCADetail struct {
	RCA      model.RCA            `json:"rca"`
	Actions  []ActionWithEvidence `json:"actions"`
	Evidence []model.Evidence     `json:"evidence"`
}

// GetRCADetail loads one RCA with its actions and evidence.
func (s *TrackerService) GetRCADetail(rcaID string) (*RCADetail, error) {
	var rca model.RCA
	if err := s.db.First(&rca, "rca_id = ?", rcaID).Error; err != nil {
		log.Printf("[GetRCADetail] Error fetching RCA %s: %v", rcaID, err)
		return nil, storeErr("GetRCADetail", "RCA", rcaID, err)
	}

	var actions []model.Action
	if err := s.db.Where("rca_id = ?", rcaID).Order("due_date ASC, action_id ASC").Find(&actions).Error; err != nil {
		return nil, storeErr("GetRCADetail", "action", "", err)
	}

	detail := &RCADetail{RCA: rca, Actions: make([]ActionWithEvidence, 0, len(actions))}
	for _, action := range actions {
		var count int64
		if err := s.db.Model(&model.Evidence{}).Where("action_id = ?", action.ActionID).Count(&count).Error; err != nil {
			return nil, storeErr("GetRCADetail", "evidence", "", err)
		}
		detail.Actions = append(detail.Actions, ActionWithEvidence{Action: action, EvidencePresent: count > 0})

		var rows []model.Evidence
		if err := s.db.Where("action_id = ?", action.ActionID).Order("submitted_at ASC, evidence_id ASC").Find(&rows).Error; err != nil {
			return nil, storeErr("GetRCADetail", "evidence", "", err)
		}
		detail.Evidence = append(detail.Evidence, rows...)
	}
	return detail, nil
}

// UpdateRCAStatus sets an RCA's status (Open, Closed or Reopened).
func (s *TrackerService) UpdateRCAStatus(rcaID, newStatus string) error {
	if !model.ValidRCAStatus(newStatus) {
		return errs.NewValidation("status", fmt.Sprintf("%q is not one of %v", newStatus, model.RCAStatuses))
	}

	var rca model.RCA
	if err := s.db.First(&rca, "rca_id = ?", rcaID).Error; err != nil {
		log.Printf("[UpdateRCAStatus] Error fetching RCA %s: %v", rcaID, err)
		return storeErr("UpdateRCAStatus", "RCA", rcaID, err)
	}

	previous := rca.Status
	if err := s.db.Model(&rca).Update("status", newStatus).Error; err != nil {
		log.Printf("[UpdateRCAStatus] Error updating RCA %s: %v", rcaID, err)
		return storeErr("UpdateRCAStatus", "RCA", rcaID, err)
	}

	s.recordAudit("rca", rcaID, "status_changed", map[string]interface{}{
		"from": previous, "to": newStatus,
	})
	return nil
}

// DeleteRCA removes an RCA with full referential cleanup in one
// transaction: its actions and their evidence are cascade-deleted and
// any incident link to it is nulled. RCAs are normally never deleted;
// this exists for the cascade contract.
func (s *TrackerService) DeleteRCA(rcaID string) error {
	var rca model.RCA
	if err := s.db.First(&rca, "rca_id = ?", rcaID).Error; err != nil {
		log.Printf("[DeleteRCA] Error fetching RCA %s: %v", rcaID, err)
		return storeErr("DeleteRCA", "RCA", rcaID, err)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var actionIDs []string
		if err := tx.Model(&model.Action{}).Where("rca_id = ?", rcaID).Pluck("action_id", &actionIDs).Error; err != nil {
			return err
		}
		if len(actionIDs) > 0 {
			if err := tx.Where("action_id IN ?", actionIDs).Delete(&model.Evidence{}).Error; err != nil {
				return err
			}
			if err := tx.Where("rca_id = ?", rcaID).Delete(&model.Action{}).Error; err != nil {
				return err
			}
		}
		if err := tx.Model(&model.Incident{}).Where("linked_rca_id = ?", rcaID).
			Update("linked_rca_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&model.RCA{}, "rca_id = ?", rcaID).Error
	})
	if err != nil {
		log.Printf("[DeleteRCA] Error deleting RCA %s: %v", rcaID, err)
		return storeErr("DeleteRCA", "RCA", rcaID, err)
	}

	s.recordAudit("rca", rcaID, "deleted", map[string]interface{}{"title": rca.Title})
	return nil
}
