package services

import (
	"encoding/json"
	"log"

	"gorm.io/datatypes"

	model "github.com/Cubic-Network-RCA/rca-dashboard-mvp/models"
)

// recordAudit appends an audit trail row for a mutating operation. The
// trail is best-effort: a failure to write it is logged but never fails
// the operation that triggered it.
func (s *TrackerService) recordAudit(entityKind, entityID, event string, payload map[string]interface{}) {
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("[recordAudit] Error marshaling payload for %s %s: %v", entityKind, entityID, err)
		body = []byte("{}")
	}

	row := model.AuditEvent{
		EventID:    genID("AUD"),
		EntityKind: entityKind,
		EntityID:   entityID,
		Event:      event,
		Payload:    datatypes.JSON(body),
		CreatedAt:  today(),
	}
	if err := s.db.Create(&row).Error; err != nil {
		log.Printf("[recordAudit] Error writing audit event for %s %s: %v", entityKind, entityID, err)
	}
}

// ListAuditEvents returns the audit trail, newest first, optionally
// restricted to one entity id.
func (s *TrackerService) ListAuditEvents(entityID string) ([]model.AuditEvent, error) {
	query := s.db.Model(&model.AuditEvent{})
	if entityID != "" {
		query = query.Where("entity_id = ?", entityID)
	}
	var events []model.AuditEvent
	if err := query.Order("created_at DESC, event_id").Find(&events).Error; err != nil {
		log.Printf("[ListAuditEvents] Error fetching audit events: %v", err)
		return nil, storeErr("ListAuditEvents", "audit event", entityID, err)
	}
	return events, nil
}
