package clean

import (
	"html"
	"regexp"
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
)

var disallowedTextPattern = regexp.MustCompile(`[^a-z0-9\s\v.,!?]`)

// TextNormalizer cleans free-text columns.
type TextNormalizer struct {
	naValues []string
	fill     string
	policy   *bluemonday.Policy
}

// NewTextNormalizer builds a normalizer. With stripMarkup set, HTML tags are
// removed before any other step.
func NewTextNormalizer(naValues []string, fill string, stripMarkup bool) *TextNormalizer {
	n := &TextNormalizer{naValues: naValues, fill: fill}
	if stripMarkup {
		n.policy = bluemonday.StrictPolicy()
	}
	return n
}

// Normalize trims and lower-cases value, maps placeholder values to the fill
// text, removes characters outside [a-z0-9], whitespace and .,!? and
// capitalizes the first letter.
func (n *TextNormalizer) Normalize(cell Cell) string {
	value := cell.Value
	if cell.Missing {
		value = "nan"
	}
	if n.policy != nil {
		value = html.UnescapeString(n.policy.Sanitize(value))
	}

	value = strings.ToLower(strings.TrimSpace(value))
	if slices.Contains(n.naValues, value) {
		return n.fill
	}

	value = disallowedTextPattern.ReplaceAllString(value, "")
	return capitalize(value)
}

// NormalizeColumn rewrites column in place and reports how many cells were filled.
func (t *Table) NormalizeColumn(column string, n *TextNormalizer) int {
	j := t.Index(column)
	if j < 0 {
		return 0
	}

	filled := 0
	for _, row := range t.Rows {
		value := n.Normalize(row[j])
		if value == n.fill && row[j].Value != n.fill {
			filled++
		}
		row[j] = Cell{Value: value}
	}
	return filled
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
