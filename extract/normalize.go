package extract

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// allowedPunct is the punctuation retained by normalization. Everything
// outside letters, digits, whitespace, and this set is assumed to be
// recognition noise.
const allowedPunct = `-.,/#&()'"`

// minLineLen is the shortest trimmed line kept by normalization; anything
// shorter is assumed noise.
const minLineLen = 3

var whitespaceRun = regexp.MustCompile(`[ \t]+`)

// confusions maps glyphs commonly misread in digit contexts to the digit
// they were mistaken for. The substitution applies only when the glyph is
// immediately followed by a digit; in word contexts the glyphs are left
// alone.
var confusions = map[rune]rune{
	'O': '0',
	'l': '1',
	'I': '1',
	'S': '5',
	'Z': '2',
}

// Normalize cleans raw recognized text. It folds Unicode compatibility
// forms, strips characters outside the allow-list, bounds whitespace runs,
// drops short noise lines, and corrects digit-context glyph confusions.
//
// Normalize is deterministic and idempotent: normalizing already
// normalized text is a fixed point. Column gaps (runs of two or more
// spaces, or tabs) are preserved as exactly two spaces so that
// table-oriented parsing strategies can still find them.
func Normalize(text string) string {
	text = norm.NFKC.String(text)

	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = stripDisallowed(line)
		line = boundWhitespace(line)
		line = strings.TrimSpace(line)
		if len([]rune(line)) < minLineLen {
			continue
		}
		out = append(out, fixConfusions(line))
	}
	return strings.Join(out, "\n")
}

// stripDisallowed removes characters outside the allow-list of letters,
// digits, spaces, tabs, and a small punctuation set.
func stripDisallowed(line string) string {
	var b strings.Builder
	b.Grow(len(line))
	for _, r := range line {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case r == ' ' || r == '\t':
			b.WriteRune(r)
		case strings.ContainsRune(allowedPunct, r):
			b.WriteRune(r)
		}
	}
	return b.String()
}

// boundWhitespace rewrites whitespace runs: a single space stays a single
// space, anything longer (or containing a tab) becomes exactly two spaces.
func boundWhitespace(line string) string {
	return whitespaceRun.ReplaceAllStringFunc(line, func(run string) string {
		if run == " " {
			return " "
		}
		return "  "
	})
}

// fixConfusions substitutes confusable glyphs that sit immediately before
// a digit. The scan runs right to left so chains like "OO1" resolve to
// "001" in one pass, keeping Normalize idempotent.
func fixConfusions(line string) string {
	runes := []rune(line)
	for i := len(runes) - 2; i >= 0; i-- {
		if sub, ok := confusions[runes[i]]; ok && unicode.IsDigit(runes[i+1]) {
			runes[i] = sub
		}
	}
	return string(runes)
}
