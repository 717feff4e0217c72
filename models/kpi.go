package models

// KPIReport aggregates closed-loop compliance over a filtered RCA scope.
// Percentages are 0 when the scoped action set is empty.
type KPIReport struct {
	// OpenActions counts actions in To Do / In Progress / Evidence Submitted.
	OpenActions int `json:"open_actions"`

	// Overdue counts open actions whose due date is strictly before the
	// computation date.
	Overdue int `json:"overdue"`

	// MissingEvidence counts open actions with no evidence records.
	MissingEvidence int `json:"missing_evidence"`

	// EvidencedPct is the percentage of scoped actions (any status)
	// with at least one evidence record.
	EvidencedPct float64 `json:"evidenced_pct"`

	// VerifiedPct is the percentage of scoped actions that are truly
	// resolved: status Verified/Closed with verifier and date recorded.
	VerifiedPct float64 `json:"verified_pct"`

	// Recurrence30 counts incidents created within the trailing 30
	// days, independent of the RCA scope.
	Recurrence30 int `json:"recurrence_30"`
}

// RCAAuditRow is one row of the audit table: an RCA plus rollup counts
// over its actions.
type RCAAuditRow struct {
	RCA
	ActionsTotal           int `json:"actions_total"`
	ActionsOpen            int `json:"actions_open"`
	ActionsMissingEvidence int `json:"actions_missing_evidence"`
}

// RCAMatch pairs an RCA with its similarity score in [0,1] against a
// new incident description.
type RCAMatch struct {
	RCA
	Similarity float64 `json:"similarity"`
}
