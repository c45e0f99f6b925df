package extract

import (
	"strings"

	"github.com/tsawler/stocklens/model"
)

// LineContext recovers records from captures where the identifier and
// description ended up on separate lines. When a line starts with an
// identifier-shaped token, the description is taken from the following
// line if it is present and non-empty — consuming both lines — otherwise
// from the remainder of the current line.
type LineContext struct{}

// Name returns "line-context".
func (LineContext) Name() string { return "line-context" }

// Extract implements Strategy.
func (s LineContext) Extract(text string) []model.CandidateRecord {
	lines := strings.Split(text, "\n")

	var records []model.CandidateRecord
	for i := 0; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		fields := strings.Fields(line)
		if len(fields) == 0 || !looksLikeSKU(fields[0]) {
			continue
		}

		rec := model.CandidateRecord{
			SKU:      fields[0],
			Quantity: 1,
			Source:   s.Name(),
		}

		if i+1 < len(lines) && strings.TrimSpace(lines[i+1]) != "" {
			rec.Name = strings.TrimSpace(lines[i+1])
			i++ // the borrowed line is consumed
		} else {
			rec.Name = strings.TrimSpace(strings.TrimPrefix(line, fields[0]))
		}
		if rec.Name == "" {
			continue
		}
		records = append(records, rec)
	}
	return records
}
