package extract

import (
	"errors"

	"github.com/tsawler/stocklens/model"
)

// ErrNoRecords is the terminal signal that the heuristics found nothing
// usable: after deduplication and validation the record set is empty.
var ErrNoRecords = errors.New("no records found")

// Reconcile merges candidates from all strategies into the final record
// set. Candidates are deduplicated by their (SKU, lowercased name) key —
// the first occurrence wins, so earlier strategies take precedence — and
// the surviving candidates are validated against the record schema.
// Failing candidates are dropped silently; only an empty final set is
// reported, as ErrNoRecords.
func Reconcile(candidates []model.CandidateRecord) ([]model.Record, error) {
	seen := make(map[string]bool, len(candidates))

	var records []model.Record
	for _, c := range candidates {
		key := c.Key()
		if seen[key] {
			continue
		}
		seen[key] = true

		if !c.Valid() {
			continue
		}
		records = append(records, model.NewRecord(c))
	}

	if len(records) == 0 {
		return nil, ErrNoRecords
	}
	return records, nil
}

// Run normalizes raw recognized text, applies the given strategies (the
// default set when nil), and reconciles the output into final records.
func Run(text string, strats []Strategy) ([]model.Record, error) {
	if strats == nil {
		strats = DefaultStrategies()
	}
	normalized := Normalize(text)
	return Reconcile(ExtractAll(normalized, strats))
}
