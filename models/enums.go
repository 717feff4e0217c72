package models

// Closed enumerations for the four relations. Values outside these sets
// are rejected at the service boundary before any write; the SQL schema
// repeats them as CHECK constraints.

// Environments an RCA or incident can belong to.
var Environments = []string{"Pre-Live", "UAT", "Production"}

// RCAStatuses an RCA can carry.
var RCAStatuses = []string{"Open", "Closed", "Reopened"}

// ActionStatuses an action moves through. The first three are "open";
// Verified and Closed count toward the verified percentage once the
// action is independently verified.
var ActionStatuses = []string{"To Do", "In Progress", "Evidence Submitted", "Verified", "Closed"}

// OpenActionStatuses is the subset of ActionStatuses treated as open by
// the compliance engine.
var OpenActionStatuses = []string{"To Do", "In Progress", "Evidence Submitted"}

// EvidenceTypes an evidence record can carry.
var EvidenceTypes = []string{"Link", "File note", "Screenshot note", "Test run note", "Monitoring note"}

// ValidEnvironment reports whether env is one of the closed environment set.
func ValidEnvironment(env string) bool { return inSet(Environments, env) }

// ValidRCAStatus reports whether status is a valid RCA status.
func ValidRCAStatus(status string) bool { return inSet(RCAStatuses, status) }

// ValidActionStatus reports whether status is a valid action status.
func ValidActionStatus(status string) bool { return inSet(ActionStatuses, status) }

// IsOpenActionStatus reports whether status counts as open.
func IsOpenActionStatus(status string) bool { return inSet(OpenActionStatuses, status) }

// ValidEvidenceType reports whether t is a valid evidence type.
func ValidEvidenceType(t string) bool { return inSet(EvidenceTypes, t) }

func inSet(set []string, v string) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
