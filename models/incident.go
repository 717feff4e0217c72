package models

// Incident is a free-text report created independently of any RCA. It
// may later be linked to an RCA surfaced by the recurrence matcher;
// deleting that RCA nulls the link rather than deleting the incident.
type Incident struct {
	IncidentID      string `gorm:"column:incident_id;primaryKey" json:"incident_id"`
	OEM             string `gorm:"column:oem;not null" json:"oem"`
	Environment     string `gorm:"column:environment;not null" json:"environment"`
	SystemComponent string `gorm:"column:system_component" json:"system_component"`
	Severity        string `gorm:"column:severity" json:"severity"`
	Summary         string `gorm:"column:summary;not null" json:"summary"`
	CreatedAt       string `gorm:"column:created_at;not null" json:"created_at"`

	// LinkedRCAID is nullable; set-null on RCA deletion.
	LinkedRCAID *string `gorm:"column:linked_rca_id" json:"linked_rca_id"`
}

func (Incident) TableName() string { return "incidents" }
