package models

import "gorm.io/datatypes"

// AuditEvent is an append-only trail row recorded for every mutating
// operation: who changed what, on which record, with the changed fields
// captured as JSON.
type AuditEvent struct {
	EventID    string         `gorm:"column:event_id;primaryKey" json:"event_id"`
	EntityKind string         `gorm:"column:entity_kind;not null" json:"entity_kind"`
	EntityID   string         `gorm:"column:entity_id;not null;index" json:"entity_id"`
	Event      string         `gorm:"column:event;not null" json:"event"`
	Payload    datatypes.JSON `gorm:"column:payload" json:"payload"`
	CreatedAt  string         `gorm:"column:created_at;not null" json:"created_at"`
}

func (AuditEvent) TableName() string { return "audit_events" }
