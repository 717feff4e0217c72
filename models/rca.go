package models

// RCA is a root-cause-analysis record documenting an incident's cause.
type RCA struct {
	// RCAID is an opaque prefixed token, e.g. "RCA-7KQ2M9X", unique
	// within the relation and generated on creation.
	RCAID string `gorm:"column:rca_id;primaryKey" json:"rca_id"`

	// OEM is the customer/manufacturer the defect was raised for.
	OEM string `gorm:"column:oem;not null" json:"oem"`

	// Environment is one of the closed environment set (Pre-Live, UAT,
	// Production).
	Environment string `gorm:"column:environment;not null" json:"environment"`

	// SystemComponent names the affected system or component.
	SystemComponent string `gorm:"column:system_component" json:"system_component"`

	// Severity is the priority label (P1..P4).
	Severity string `gorm:"column:severity" json:"severity"`

	// Title is a short defect summary, required.
	Title string `gorm:"column:title;not null" json:"title"`

	// RootCause is the narrative; optional, treated as empty string
	// when absent so it can always be concatenated into the corpus.
	RootCause string `gorm:"column:root_cause" json:"root_cause"`

	CreatedBy string `gorm:"column:created_by" json:"created_by"`

	// CreatedAt is an ISO-8601 calendar date (YYYY-MM-DD) stored as
	// text so lexical comparison equals chronological comparison.
	CreatedAt string `gorm:"column:created_at;not null" json:"created_at"`

	// Status is one of Open, Closed, Reopened.
	Status string `gorm:"column:status;not null;default:Open" json:"status"`
}

func (RCA) TableName() string { return "rcas" }
