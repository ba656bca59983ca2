package types

import (
	"errors"
	"fmt"
)

const (
	// StatusActive is the status assigned to every pipeline-produced entry
	StatusActive = "active"
	// EntryVersion is the schema version stamped on every entry
	EntryVersion = "v1"
	// MaxSummaryLength is the maximum mini-summary length in characters
	MaxSummaryLength = 200
)

// Provenance identifies exactly which chunk text produced an entry
type Provenance struct {
	// SourceHash is the content fingerprint of the chunk text,
	// rendered as an algorithm-prefixed hex string ("sha256:...")
	SourceHash string
}

// IndexEntry is the unit stored in the index. Entries are immutable once
// serialized; scoring is modeled as a transformation producing a new value
// rather than in-place mutation.
type IndexEntry struct {
	// Identification
	ID     string // derived from sanitized file basename + chunk ordinal
	Title  string
	Domain string
	Source string // path relative to the indexed root

	// Content
	MiniSummary string
	Tags        []string // sorted, unique; may be empty

	// Signals
	Timestamp       string  // ISO-8601, from revision history
	FreshnessScore  float64 // [0,1]
	ImportanceScore float64 // [0,1], computed after creation

	// Schema
	Status     string
	Version    string
	Provenance Provenance
}

// WithImportance returns a copy of the entry with the importance score set.
func (e IndexEntry) WithImportance(score float64) IndexEntry {
	e.ImportanceScore = score
	return e
}

// Validate performs comprehensive validation of the entry
func (e *IndexEntry) Validate() error {
	if e.ID == "" {
		return errors.New("entry ID is required")
	}
	if e.Title == "" {
		return errors.New("entry title is required")
	}
	if e.Domain == "" {
		return errors.New("entry domain is required")
	}
	if e.Source == "" {
		return errors.New("entry source is required")
	}

	if e.FreshnessScore < 0 || e.FreshnessScore > 1 {
		return fmt.Errorf("freshness score %f out of range [0,1]", e.FreshnessScore)
	}
	if e.ImportanceScore < 0 || e.ImportanceScore > 1 {
		return fmt.Errorf("importance score %f out of range [0,1]", e.ImportanceScore)
	}

	if len(e.MiniSummary) > MaxSummaryLength {
		return fmt.Errorf("mini summary exceeds %d characters", MaxSummaryLength)
	}

	return nil
}

// Equal reports field-level equality with another entry. Used by the
// round-trip property: serialized string equality is not required, only
// structural equality.
func (e *IndexEntry) Equal(other *IndexEntry) bool {
	if e.ID != other.ID || e.Title != other.Title || e.Domain != other.Domain ||
		e.Source != other.Source || e.MiniSummary != other.MiniSummary ||
		e.Timestamp != other.Timestamp || e.Status != other.Status ||
		e.Version != other.Version || e.Provenance != other.Provenance {
		return false
	}
	if e.FreshnessScore != other.FreshnessScore || e.ImportanceScore != other.ImportanceScore {
		return false
	}
	if len(e.Tags) != len(other.Tags) {
		return false
	}
	for i := range e.Tags {
		if e.Tags[i] != other.Tags[i] {
			return false
		}
	}
	return true
}
