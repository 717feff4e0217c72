package services

import (
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"gorm.io/gorm"

	"github.com/Cubic-Network-RCA/rca-dashboard-mvp/errs"
)

// TrackerService handles the RCA closed-loop tracking logic: the store
// operations, the compliance engine, the recurrence matcher and the
// action lifecycle rules.
type TrackerService struct {
	db       *gorm.DB
	esClient *elasticsearch.Client
}

// NewTrackerService initializes the service with the database handle and,
// when ELASTICSEARCH_URL is configured, an Elasticsearch client for the
// full-text RCA search index.
func NewTrackerService(db *gorm.DB) (*TrackerService, error) {
	if db == nil {
		return nil, fmt.Errorf("database handle is required")
	}

	esURL := os.Getenv("ELASTICSEARCH_URL")
	var esClient *elasticsearch.Client
	if esURL != "" {
		esConfig := elasticsearch.Config{
			Addresses: []string{esURL},
		}
		var err error
		esClient, err = elasticsearch.NewClient(esConfig)
		if err != nil {
			log.Printf("Warning: Failed to create Elasticsearch client: %v", err)
		}
	}

	return &TrackerService{db: db, esClient: esClient}, nil
}

const idAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// genID builds an opaque prefixed token like "RCA-7KQ2M9X": the prefix,
// a dash, and 7 characters from the uppercase alphanumeric alphabet.
func genID(prefix string) string {
	b := make([]byte, 7)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand never fails on supported platforms; fall back to
		// a time-derived suffix rather than returning a partial id.
		return fmt.Sprintf("%s-%07d", prefix, time.Now().UnixNano()%10000000)
	}
	for i := range b {
		b[i] = idAlphabet[int(b[i])%len(idAlphabet)]
	}
	return prefix + "-" + string(b)
}

// today returns the current calendar date as an ISO-8601 string. All
// persisted timestamps have day granularity.
func today() string {
	return time.Now().Format("2006-01-02")
}

// daysAgo returns the ISO date n days before today.
func daysAgo(n int) string {
	return time.Now().AddDate(0, 0, -n).Format("2006-01-02")
}

// storeErr maps raw storage failures onto the error taxonomy: record
// misses become NotFoundError, integrity breaches become
// ConstraintViolation, anything else is surfaced wrapped.
func storeErr(op, kind, id string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NewNotFound(kind, id)
	}
	if isConstraintErr(err) {
		return errs.NewConstraint(op, err)
	}
	return errs.Wrapf(err, "%s failed", op)
}

// isConstraintErr recognizes foreign-key, uniqueness and CHECK failures
// from both the postgres and the sqlite drivers.
func isConstraintErr(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "constraint") ||
		strings.Contains(msg, "sqlstate 23") ||
		strings.Contains(msg, "unique") ||
		strings.Contains(msg, "foreign key")
}
