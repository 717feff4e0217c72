package services

import (
	"log"
	"time"

	model "github.com/Cubic-Network-RCA/rca-dashboard-mvp/models"
)

// ComputeKPIs audits closed-loop compliance over the filtered RCA
// scope. It always recomputes from current store state; running it
// twice with no intervening writes returns identical results.
func (s *TrackerService) ComputeKPIs(filter RCAFilter) (*model.KPIReport, error) {
	return s.computeKPIsAt(filter, time.Now())
}

func (s *TrackerService) computeKPIsAt(filter RCAFilter, now time.Time) (*model.KPIReport, error) {
	todayISO := now.Format("2006-01-02")
	report := &model.KPIReport{}

	// Recurrence is computed over all incidents regardless of scope.
	cutoff := now.AddDate(0, 0, -30).Format("2006-01-02")
	var recent int64
	if err := s.db.Model(&model.Incident{}).Where("created_at >= ?", cutoff).Count(&recent).Error; err != nil {
		log.Printf("[ComputeKPIs] Error counting recent incidents: %v", err)
		return nil, storeErr("ComputeKPIs", "incident", "", err)
	}
	report.Recurrence30 = int(recent)

	var rcaIDs []string
	if err := s.scopedRCAs(filter).Pluck("rca_id", &rcaIDs).Error; err != nil {
		log.Printf("[ComputeKPIs] Error fetching RCA scope: %v", err)
		return nil, storeErr("ComputeKPIs", "RCA", "", err)
	}
	if len(rcaIDs) == 0 {
		return report, nil
	}

	var actions []model.Action
	if err := s.db.Where("rca_id IN ?", rcaIDs).Find(&actions).Error; err != nil {
		log.Printf("[ComputeKPIs] Error fetching scoped actions: %v", err)
		return nil, storeErr("ComputeKPIs", "action", "", err)
	}
	if len(actions) == 0 {
		return report, nil
	}

	evidenced, err := s.evidencedActionIDs()
	if err != nil {
		return nil, err
	}

	var verifiedCount, evidencedCount int
	for _, action := range actions {
		if action.Open() {
			report.OpenActions++
			// An empty due date never counts as overdue; ISO dates
			// compare lexically.
			if action.DueDate != "" && action.DueDate < todayISO {
				report.Overdue++
			}
			if !evidenced[action.ActionID] {
				report.MissingEvidence++
			}
		}
		if evidenced[action.ActionID] {
			evidencedCount++
		}
		if action.IndependentlyVerified() {
			verifiedCount++
		}
	}

	total := float64(len(actions))
	report.EvidencedPct = float64(evidencedCount) / total * 100.0
	report.VerifiedPct = float64(verifiedCount) / total * 100.0
	return report, nil
}

// AuditRollups builds the audit table: every RCA in the filtered scope
// with its action totals, open counts and missing-evidence counts,
// sorted by environment ascending then creation date descending.
func (s *TrackerService) AuditRollups(filter RCAFilter) ([]model.RCAAuditRow, error) {
	rcas, err := s.QueryRCAs(filter)
	if err != nil {
		return nil, err
	}
	if len(rcas) == 0 {
		return []model.RCAAuditRow{}, nil
	}

	rcaIDs := make([]string, 0, len(rcas))
	for _, rca := range rcas {
		rcaIDs = append(rcaIDs, rca.RCAID)
	}

	var actions []model.Action
	if err := s.db.Where("rca_id IN ?", rcaIDs).Find(&actions).Error; err != nil {
		log.Printf("[AuditRollups] Error fetching actions: %v", err)
		return nil, storeErr("AuditRollups", "action", "", err)
	}

	evidenced, err := s.evidencedActionIDs()
	if err != nil {
		return nil, err
	}

	type rollup struct{ total, open, missing int }
	byRCA := make(map[string]*rollup, len(rcas))
	for _, action := range actions {
		r := byRCA[action.RCAID]
		if r == nil {
			r = &rollup{}
			byRCA[action.RCAID] = r
		}
		r.total++
		if action.Open() {
			r.open++
		}
		if !evidenced[action.ActionID] {
			r.missing++
		}
	}

	// QueryRCAs already orders (environment ASC, created_at DESC).
	rows := make([]model.RCAAuditRow, 0, len(rcas))
	for _, rca := range rcas {
		row := model.RCAAuditRow{RCA: rca}
		if r := byRCA[rca.RCAID]; r != nil {
			row.ActionsTotal = r.total
			row.ActionsOpen = r.open
			row.ActionsMissingEvidence = r.missing
		}
		rows = append(rows, row)
	}
	return rows, nil
}
