package services

import (
	"log"
	"sort"
	"strings"

	model "github.com/Cubic-Network-RCA/rca-dashboard-mvp/models"
	"github.com/Cubic-Network-RCA/rca-dashboard-mvp/similarity"
)

// DefaultTopK is the default number of recurrence candidates returned.
const DefaultTopK = 5

// buildCorpus assembles one document per RCA: title, root-cause
// narrative and the pipe-joined text of its actions, concatenated with
// spaces. Missing narrative or actions contribute empty strings, never
// nulls. Documents are ordered by RCA id so corpus order is identical
// on every call, which is what makes equal-score tie-breaking stable.
func (s *TrackerService) buildCorpus() ([]model.RCA, []string, error) {
	var rcas []model.RCA
	if err := s.db.Order("rca_id ASC").Find(&rcas).Error; err != nil {
		log.Printf("[buildCorpus] Error fetching RCAs: %v", err)
		return nil, nil, storeErr("buildCorpus", "RCA", "", err)
	}
	if len(rcas) == 0 {
		return nil, nil, nil
	}

	var actions []model.Action
	if err := s.db.Order("action_id ASC").Find(&actions).Error; err != nil {
		log.Printf("[buildCorpus] Error fetching actions: %v", err)
		return nil, nil, storeErr("buildCorpus", "action", "", err)
	}
	actionText := make(map[string][]string)
	for _, action := range actions {
		actionText[action.RCAID] = append(actionText[action.RCAID], action.ActionText)
	}

	docs := make([]string, 0, len(rcas))
	for _, rca := range rcas {
		doc := rca.Title + " " + rca.RootCause + " " + strings.Join(actionText[rca.RCAID], " | ")
		docs = append(docs, doc)
	}
	return rcas, docs, nil
}

// FindSimilarRCAs ranks existing RCAs by TF-IDF cosine similarity
// against free text describing a new incident and returns the top-K
// with their scores. The vectorizer is refitted over corpus plus query
// on every call; no model is persisted. An empty corpus returns an
// empty list and no error.
func (s *TrackerService) FindSimilarRCAs(queryText string, topK int) ([]model.RCAMatch, error) {
	if topK <= 0 {
		topK = DefaultTopK
	}

	rcas, docs, err := s.buildCorpus()
	if err != nil {
		return nil, err
	}
	if len(rcas) == 0 {
		return []model.RCAMatch{}, nil
	}

	scores := similarity.Similarities(docs, queryText)

	matches := make([]model.RCAMatch, 0, len(rcas))
	for i, rca := range rcas {
		matches = append(matches, model.RCAMatch{RCA: rca, Similarity: scores[i]})
	}
	// Stable sort keeps corpus insertion order among equal scores.
	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Similarity > matches[j].Similarity
	})
	if len(matches) > topK {
		matches = matches[:topK]
	}
	log.Printf("[FindSimilarRCAs] Ranked %d RCAs, returning top %d", len(rcas), len(matches))
	return matches, nil
}
