package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/tsawler/stocklens/model"
)

// Strategy is a single parsing approach over normalized text. Strategies
// are pure functions: they hold no mutable state, never depend on another
// strategy's output, and may therefore run in any order, or concurrently,
// with identical results.
type Strategy interface {
	// Name returns the strategy's identifier.
	Name() string

	// Extract scans the text line by line and returns zero or more
	// candidate records.
	Extract(text string) []model.CandidateRecord
}

// strategies holds the registered strategies in registration order.
// Evaluation order matters: during deduplication the first occurrence of
// a key wins, and "first" means the earlier strategy in this order.
var strategies []Strategy

// Register appends a strategy to the global evaluation order.
func Register(s Strategy) {
	strategies = append(strategies, s)
}

// Get retrieves a registered strategy by name, or nil.
func Get(name string) Strategy {
	for _, s := range strategies {
		if s.Name() == name {
			return s
		}
	}
	return nil
}

// DefaultStrategies returns the registered strategies in their fixed
// evaluation order: direct-column, structured-pattern, fixed-width-table,
// line-context.
func DefaultStrategies() []Strategy {
	out := make([]Strategy, len(strategies))
	copy(out, strategies)
	return out
}

// ExtractAll runs each strategy over the full text and concatenates the
// results in strategy order, ready for Reconcile.
func ExtractAll(text string, strats []Strategy) []model.CandidateRecord {
	var candidates []model.CandidateRecord
	for _, s := range strats {
		candidates = append(candidates, s.Extract(text)...)
	}
	return candidates
}

func init() {
	Register(DirectColumn{})
	Register(StructuredPattern{})
	Register(FixedWidthTable{})
	Register(LineContext{})
}

var (
	// columnGap splits table-formatted lines on runs of two or more
	// spaces or on tabs.
	columnGap = regexp.MustCompile(` {2,}|\t+`)

	// numericToken matches a purely numeric token (a quantity).
	numericToken = regexp.MustCompile(`^[0-9]+$`)

	// skuToken matches an identifier-shaped token: alphanumerics and
	// hyphens, at least one digit, at least three characters. A purely
	// numeric token is treated as a quantity instead.
	skuToken = regexp.MustCompile(`^[A-Za-z0-9-]*[0-9][A-Za-z0-9-]*$`)

	headerIDWords   = regexp.MustCompile(`(?i)\b(sku|item|code|id|product|article)\b`)
	headerDescWords = regexp.MustCompile(`(?i)\b(desc|description|name|qty|quantity|category|location)\b`)
)

// isHeader reports whether a line looks like a table header: it carries a
// recognizable identifier column name plus a description-like column name.
func isHeader(line string) bool {
	return headerIDWords.MatchString(line) && headerDescWords.MatchString(line)
}

// looksLikeSKU reports whether a token is identifier-shaped. Purely
// numeric tokens are excluded so quantities are not mistaken for SKUs.
func looksLikeSKU(tok string) bool {
	return len(tok) >= 3 && skuToken.MatchString(tok) && !numericToken.MatchString(tok)
}

// splitColumns splits a line on column gaps, dropping empty cells.
func splitColumns(line string) []string {
	parts := columnGap.Split(strings.TrimSpace(line), -1)
	cols := parts[:0]
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			cols = append(cols, p)
		}
	}
	return cols
}

// splitQuoted splits a line on single spaces while keeping double-quoted
// phrases together as one token, quotes removed.
func splitQuoted(line string) []string {
	var (
		cols     []string
		current  strings.Builder
		inQuotes bool
	)
	flush := func() {
		if current.Len() > 0 {
			cols = append(cols, current.String())
			current.Reset()
		}
	}
	for _, r := range line {
		switch {
		case r == '"':
			inQuotes = !inQuotes
		case (r == ' ' || r == '\t') && !inQuotes:
			flush()
		default:
			current.WriteRune(r)
		}
	}
	flush()
	return cols
}

// parseQuantity parses a numeric token, falling back to the default
// quantity of one when the token is not a number at all.
func parseQuantity(tok string) int {
	n, err := strconv.Atoi(strings.TrimSpace(tok))
	if err != nil {
		return 1
	}
	return n
}
