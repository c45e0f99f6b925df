package extract

import (
	"strings"

	"github.com/tsawler/stocklens/model"
)

// FixedWidthTable parses strictly tabular listings: an optional header
// line followed by rows whose columns are separated by runs of two or
// more spaces or by tabs. Rows with fewer than three columns are skipped;
// columns map positionally to identifier, description, quantity, and
// (when present) location.
type FixedWidthTable struct{}

// Name returns "fixed-width-table".
func (FixedWidthTable) Name() string { return "fixed-width-table" }

// Extract implements Strategy.
func (s FixedWidthTable) Extract(text string) []model.CandidateRecord {
	lines := strings.Split(text, "\n")

	start := 0
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if isHeader(line) {
			start = i + 1
		}
		break
	}

	var records []model.CandidateRecord
	for _, line := range lines[start:] {
		cols := splitColumns(line)
		if len(cols) < 3 {
			continue
		}

		rec := model.CandidateRecord{
			SKU:      cols[0],
			Name:     cols[1],
			Quantity: parseQuantity(cols[2]),
			Source:   s.Name(),
		}
		if len(cols) > 3 {
			rec.Location = cols[3]
		}
		records = append(records, rec)
	}
	return records
}
