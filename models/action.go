package models

// Action is a remedial task tied to an RCA. Its lifetime is bound to
// the owning RCA (cascade-deleted with it).
type Action struct {
	ActionID   string `gorm:"column:action_id;primaryKey" json:"action_id"`
	RCAID      string `gorm:"column:rca_id;not null;index" json:"rca_id"`
	ActionText string `gorm:"column:action_text;not null" json:"action_text"`
	ActionType string `gorm:"column:action_type" json:"action_type"`

	OwnerTeam   string `gorm:"column:owner_team" json:"owner_team"`
	OwnerPerson string `gorm:"column:owner_person" json:"owner_person"`

	// DueDate is an ISO date; empty means no due date, never overdue.
	DueDate string `gorm:"column:due_date" json:"due_date"`

	Status string `gorm:"column:status;not null;default:To Do" json:"status"`

	// VerificationMethod is a hard creation-time requirement: an action
	// without one is rejected.
	VerificationMethod string `gorm:"column:verification_method" json:"verification_method"`

	// VerifiedBy, VerifiedAt and VerificationNotes record the
	// independent verification. Updates merge-if-present: a blank value
	// in an update never clears a previously recorded one.
	VerifiedBy        string `gorm:"column:verified_by" json:"verified_by"`
	VerifiedAt        string `gorm:"column:verified_at" json:"verified_at"`
	VerificationNotes string `gorm:"column:verification_notes" json:"verification_notes"`
}

func (Action) TableName() string { return "actions" }

// Open reports whether the action is still open (not yet verified or
// closed) for compliance counting.
func (a Action) Open() bool { return IsOpenActionStatus(a.Status) }

// IndependentlyVerified reports whether the action satisfies the
// closed-loop governance contract: status Verified or Closed and both
// verifier identity and verification date recorded.
func (a Action) IndependentlyVerified() bool {
	return (a.Status == "Verified" || a.Status == "Closed") &&
		a.VerifiedBy != "" && a.VerifiedAt != ""
}
