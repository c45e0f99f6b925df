package extract

import (
	"strings"

	"github.com/tsawler/stocklens/model"
)

// maxCategoryLen bounds the token length treated as a category by the
// direct-column strategy.
const maxCategoryLen = 20

// DirectColumn parses loosely columnar listings. It optionally locates a
// header line, splits subsequent lines on column gaps (re-splitting with
// quote awareness when too few columns emerge), and assigns fields
// heuristically: the first identifier-shaped token becomes the SKU, the
// first purely numeric token the quantity, a short leftover token the
// category, and everything else joins into the description.
type DirectColumn struct{}

// Name returns "direct-column".
func (DirectColumn) Name() string { return "direct-column" }

// Extract implements Strategy.
func (s DirectColumn) Extract(text string) []model.CandidateRecord {
	lines := strings.Split(text, "\n")

	start := 0
	for i, line := range lines {
		if isHeader(line) {
			start = i + 1
			break
		}
	}

	var records []model.CandidateRecord
	for _, line := range lines[start:] {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		cols := splitColumns(line)
		columnar := len(cols) >= 3
		if !columnar {
			cols = splitQuoted(line)
		}

		if rec, ok := s.assign(cols, columnar); ok {
			records = append(records, rec)
		}
	}
	return records
}

// assign distributes columns over the record fields. The category
// heuristic only applies to genuinely columnar lines; after a quote-aware
// re-split every word would qualify as a "short token".
func (s DirectColumn) assign(cols []string, columnar bool) (model.CandidateRecord, bool) {
	rec := model.CandidateRecord{Quantity: 1, Source: s.Name()}

	var rest []string
	qtySet := false
	for _, col := range cols {
		switch {
		case !qtySet && numericToken.MatchString(col):
			rec.Quantity = parseQuantity(col)
			qtySet = true
		case rec.SKU == "" && looksLikeSKU(col):
			rec.SKU = col
		default:
			rest = append(rest, col)
		}
	}
	if rec.SKU == "" {
		return model.CandidateRecord{}, false
	}

	// A short single-word leftover is taken as the category; the rest is
	// the description. The category is only split off when a description
	// remains.
	if columnar && len(rest) > 1 {
		last := rest[len(rest)-1]
		if len(last) < maxCategoryLen && !strings.Contains(last, " ") {
			// Slash-separated categories carry a subcategory ("Wine/Red").
			if cat, sub, found := strings.Cut(last, "/"); found && cat != "" {
				rec.Category = cat
				rec.Subcategory = sub
			} else {
				rec.Category = last
			}
			rest = rest[:len(rest)-1]
		}
	}
	rec.Name = strings.TrimSpace(strings.Join(rest, " "))
	if rec.Name == "" {
		return model.CandidateRecord{}, false
	}
	return rec, true
}
