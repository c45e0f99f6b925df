package model

import (
	"regexp"
	"strings"
)

// Status tracks a record's position in the downstream inventory workflow.
// The extraction core only ever produces StatusPending; transitions beyond
// that belong to the consuming application.
type Status string

const (
	// StatusPending marks a freshly extracted record awaiting review.
	StatusPending Status = "pending"
	// StatusConfirmed marks a record accepted into inventory.
	StatusConfirmed Status = "confirmed"
	// StatusRejected marks a record discarded during review.
	StatusRejected Status = "rejected"
)

var (
	// SKUPattern matches a well-formed stock-keeping-unit identifier.
	SKUPattern = regexp.MustCompile(`^[A-Za-z0-9-]+$`)

	// LocationPattern matches a storage location code, which must start
	// with an uppercase letter followed by a digit (e.g. "A1", "B3-02").
	LocationPattern = regexp.MustCompile(`^[A-Z][0-9]`)
)

// CandidateRecord is a structured extraction produced by one parsing
// strategy. It has not been validated and may duplicate candidates from
// other strategies.
type CandidateRecord struct {
	SKU         string
	Name        string
	Quantity    int
	Location    string
	Category    string
	Subcategory string

	// Source names the strategy that produced this candidate.
	Source string
}

// Key returns the composite deduplication key: the SKU joined with the
// lowercased name.
func (c CandidateRecord) Key() string {
	return c.SKU + "-" + strings.ToLower(c.Name)
}

// Valid reports whether the candidate satisfies the record schema:
// a pattern-conforming SKU, a name of at least three characters, a
// positive quantity, and (when present) a location with a letter-digit
// prefix.
func (c CandidateRecord) Valid() bool {
	if !SKUPattern.MatchString(c.SKU) {
		return false
	}
	if len(strings.TrimSpace(c.Name)) < 3 {
		return false
	}
	if c.Quantity <= 0 {
		return false
	}
	if c.Location != "" && !LocationPattern.MatchString(c.Location) {
		return false
	}
	return true
}

// Record is a validated inventory record. Records are unique by
// (SKU, lowercase name) within one extraction run.
type Record struct {
	SKU         string
	Name        string
	Quantity    int
	Location    string
	Category    string
	Subcategory string
	Status      Status
}

// NewRecord promotes a validated candidate to a Record with the workflow
// status initialized to StatusPending.
func NewRecord(c CandidateRecord) Record {
	return Record{
		SKU:         c.SKU,
		Name:        c.Name,
		Quantity:    c.Quantity,
		Location:    c.Location,
		Category:    c.Category,
		Subcategory: c.Subcategory,
		Status:      StatusPending,
	}
}
