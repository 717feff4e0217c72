package models

// Evidence is an append-only reference or note substantiating that an
// action was performed. Cascade-deleted with its action. Evidence is a
// reference, never binary content.
type Evidence struct {
	EvidenceID   string `gorm:"column:evidence_id;primaryKey" json:"evidence_id"`
	ActionID     string `gorm:"column:action_id;not null;index" json:"action_id"`
	EvidenceType string `gorm:"column:evidence_type;not null" json:"evidence_type"`
	EvidenceRef  string `gorm:"column:evidence_ref;not null" json:"evidence_ref"`
	SubmittedBy  string `gorm:"column:submitted_by" json:"submitted_by"`
	SubmittedAt  string `gorm:"column:submitted_at;not null" json:"submitted_at"`
}

func (Evidence) TableName() string { return "evidence" }
