package extract

import (
	"regexp"
	"strings"

	"github.com/tsawler/stocklens/model"
)

// structuredLine captures identifier, description, quantity, and an
// optional location code in a single pass. A line either matches
// completely or contributes nothing.
var structuredLine = regexp.MustCompile(
	`^([A-Za-z0-9-]+)\s+(.+?)\s+([0-9]+)(?:\s+([A-Z][0-9][A-Za-z0-9-]*))?\s*$`,
)

// StructuredPattern parses lines that follow the common
// "identifier description quantity [location]" shape with one regular
// expression per line.
type StructuredPattern struct{}

// Name returns "structured-pattern".
func (StructuredPattern) Name() string { return "structured-pattern" }

// Extract implements Strategy.
func (s StructuredPattern) Extract(text string) []model.CandidateRecord {
	var records []model.CandidateRecord
	for _, line := range strings.Split(text, "\n") {
		m := structuredLine.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}
		records = append(records, model.CandidateRecord{
			SKU:      m[1],
			Name:     strings.TrimSpace(m[2]),
			Quantity: parseQuantity(m[3]),
			Location: m[4],
			Source:   s.Name(),
		})
	}
	return records
}
