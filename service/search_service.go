package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"

	model "github.com/Cubic-Network-RCA/rca-dashboard-mvp/models"
)

const rcaIndex = "rcas"

// indexRCA indexes an RCA for keyword search. Indexing is best-effort:
// search is an auxiliary surface, so failures are logged and never
// break the write path.
func (s *TrackerService) indexRCA(rca *model.RCA) {
	if s.esClient == nil {
		return
	}

	doc := map[string]interface{}{
		"rca_id":           rca.RCAID,
		"oem":              rca.OEM,
		"environment":      rca.Environment,
		"system_component": rca.SystemComponent,
		"title":            rca.Title,
		"root_cause":       rca.RootCause,
		"created_at":       rca.CreatedAt,
		"status":           rca.Status,
	}
	body, err := json.Marshal(doc)
	if err != nil {
		log.Printf("[indexRCA] Error marshaling RCA %s: %v", rca.RCAID, err)
		return
	}

	res, err := s.esClient.Index(
		rcaIndex,
		bytes.NewReader(body),
		s.esClient.Index.WithDocumentID(rca.RCAID),
		s.esClient.Index.WithContext(context.Background()),
	)
	if err != nil {
		log.Printf("[indexRCA] Elasticsearch indexing error: %v", err)
		return
	}
	defer res.Body.Close()

	if res.IsError() {
		log.Printf("[indexRCA] Elasticsearch indexing failed: %s", res.String())
		return
	}
	log.Printf("[indexRCA] RCA %s indexed", rca.RCAID)
}

// SearchRCAs runs a full-text query over indexed RCA titles, root
// causes, OEMs and components. This is keyword search over the index,
// distinct from the in-process TF-IDF recurrence matcher.
func (s *TrackerService) SearchRCAs(query string) ([]map[string]interface{}, error) {
	if s.esClient == nil {
		return nil, fmt.Errorf("elasticsearch client is not initialized")
	}

	searchQuery := map[string]interface{}{
		"query": map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  query,
				"fields": []string{"title", "root_cause", "oem", "system_component"},
			},
		},
	}
	body, err := json.Marshal(searchQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal search query: %w", err)
	}

	res, err := s.esClient.Search(
		s.esClient.Search.WithContext(context.Background()),
		s.esClient.Search.WithIndex(rcaIndex),
		s.esClient.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("elasticsearch search failed: %s", res.String())
	}

	var result map[string]interface{}
	if err := json.NewDecoder(res.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	hitsMap, ok := result["hits"].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("invalid hits structure in search response")
	}
	hitsArray, ok := hitsMap["hits"].([]interface{})
	if !ok {
		return nil, fmt.Errorf("invalid hits array in search response")
	}

	var rcas []map[string]interface{}
	for _, hit := range hitsArray {
		hitMap, ok := hit.(map[string]interface{})
		if !ok {
			continue
		}
		source, ok := hitMap["_source"].(map[string]interface{})
		if !ok {
			continue
		}
		rcas = append(rcas, source)
	}
	return rcas, nil
}
