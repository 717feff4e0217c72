package services

import (
	"fmt"
	"log"
	"strings"

	"github.com/Cubic-Network-RCA/rca-dashboard-mvp/errs"
	model "github.com/Cubic-Network-RCA/rca-dashboard-mvp/models"
)

// LogIncident validates and persists a new incident report. Incidents
// are created unlinked; the recurrence matcher can suggest an RCA to
// link afterwards.
func (s *TrackerService) LogIncident(incident *model.Incident) (string, error) {
	if strings.TrimSpace(incident.Summary) == "" {
		return "", errs.NewValidation("summary", "must not be empty")
	}
	if strings.TrimSpace(incident.OEM) == "" {
		return "", errs.NewValidation("oem", "must not be empty")
	}
	if !model.ValidEnvironment(incident.Environment) {
		return "", errs.NewValidation("environment", fmt.Sprintf("%q is not one of %v", incident.Environment, model.Environments))
	}

	incident.IncidentID = genID("INC")
	if incident.CreatedAt == "" {
		incident.CreatedAt = today()
	}
	incident.LinkedRCAID = nil

	if err := s.db.Create(incident).Error; err != nil {
		log.Printf("[LogIncident] Error saving incident: %v", err)
		return "", storeErr("LogIncident", "incident", incident.IncidentID, err)
	}
	log.Printf("[LogIncident] Incident %s logged (%s, %s)", incident.IncidentID, incident.OEM, incident.Environment)

	s.recordAudit("incident", incident.IncidentID, "created", map[string]interface{}{
		"oem": incident.OEM, "environment": incident.Environment,
	})
	return incident.IncidentID, nil
}

// LinkIncident marks an incident as a recurrence of an existing RCA by
// setting its linked_rca_id. Both records must exist.
func (s *TrackerService) LinkIncident(incidentID, rcaID string) error {
	var incident model.Incident
	if err := s.db.First(&incident, "incident_id = ?", incidentID).Error; err != nil {
		log.Printf("[LinkIncident] Error fetching incident %s: %v", incidentID, err)
		return storeErr("LinkIncident", "incident", incidentID, err)
	}
	var rca model.RCA
	if err := s.db.First(&rca, "rca_id = ?", rcaID).Error; err != nil {
		log.Printf("[LinkIncident] Error fetching RCA %s: %v", rcaID, err)
		return storeErr("LinkIncident", "RCA", rcaID, err)
	}

	if err := s.db.Model(&incident).Update("linked_rca_id", rcaID).Error; err != nil {
		log.Printf("[LinkIncident] Error linking incident %s to RCA %s: %v", incidentID, rcaID, err)
		return storeErr("LinkIncident", "incident", incidentID, err)
	}
	log.Printf("[LinkIncident] Incident %s linked to RCA %s", incidentID, rcaID)

	s.recordAudit("incident", incidentID, "linked", map[string]interface{}{"rca_id": rcaID})
	return nil
}

// ListIncidents returns every incident, newest first.
func (s *TrackerService) ListIncidents() ([]model.Incident, error) {
	var incidents []model.Incident
	if err := s.db.Order("created_at DESC, incident_id ASC").Find(&incidents).Error; err != nil {
		log.Printf("[ListIncidents] Error fetching incidents: %v", err)
		return nil, storeErr("ListIncidents", "incident", "", err)
	}
	return incidents, nil
}
