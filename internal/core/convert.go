package core

// convert.go provides the cell-level conversions used by the row parser.
//
// CSV cells arrive as loosely formatted strings. These helpers deal with:
//   - surrounding whitespace and quotes
//   - Excel formula prefixes (="value")
//   - numeric text that must be a finite decimal number
//   - abilities lists separated by ';' or ','
//
// Numeric helpers report absence separately from failure so that optional
// columns can yield nil while required ones fail.

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// numericRegex validates that a string is a plain decimal number after cleanup.
// Matches integers, decimals, and scientific notation.
var numericRegex = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// CleanCell removes common CSV artifacts from a cell value:
//   - Trims whitespace
//   - Removes Excel formula prefix (="...")
//   - Removes surrounding quotes
func CleanCell(s string) string {
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "=\"") && strings.HasSuffix(s, "\"") && len(s) >= 3 {
		s = s[2 : len(s)-1]
	} else if strings.HasPrefix(s, "=") {
		s = s[1:]
	}

	return strings.TrimSpace(strings.Trim(s, `"'`))
}

// ParseNumber converts a cell to a finite float64.
// ok is false when the cell is empty after cleanup; err is set when the
// cell has content that is not a finite decimal number.
func ParseNumber(s string) (v float64, ok bool, err error) {
	s = CleanCell(s)
	if s == "" {
		return 0, false, nil
	}

	if !numericRegex.MatchString(s) {
		return 0, true, fmt.Errorf("%w: %q", ErrInvalidNumber, s)
	}

	v, err = strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, true, fmt.Errorf("%w: %q", ErrInvalidNumber, s)
	}
	return v, true, nil
}

// ParseInteger converts a cell to an int. Integral floats such as "45.0" are accepted.
func ParseInteger(s string) (v int, ok bool, err error) {
	f, ok, err := ParseNumber(s)
	if !ok || err != nil {
		return 0, ok, err
	}
	if f != math.Trunc(f) || f > math.MaxInt32 || f < math.MinInt32 {
		return 0, true, fmt.Errorf("%w: %q", ErrNotInteger, CleanCell(s))
	}
	return int(f), true, nil
}

// ParseAbilities splits a raw abilities cell on ';' or ','.
// Tokens are trimmed, empties dropped, and duplicates removed case-insensitively
// keeping the first-seen casing and the original order.
func ParseAbilities(raw string) []string {
	tokens := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ';' || r == ','
	})

	out := make([]string, 0, len(tokens))
	seen := make(map[string]bool, len(tokens))
	for _, tok := range tokens {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		key := strings.ToLower(tok)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, tok)
	}
	return out
}
