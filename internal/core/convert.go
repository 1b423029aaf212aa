package core

// convert.go turns raw cell text into typed values.
//
// Numbers are plain integers, decimals, or scientific notation. Currency
// symbols, thousands separators and "NaN"/"Inf" are not numbers here, so a
// column holding them stays text.

import (
	"regexp"
	"strconv"
	"strings"
)

// numericRegex validates that a string is a plain numeric literal.
// Matches integers, decimals, and scientific notation.
var numericRegex = regexp.MustCompile(`^[+-]?(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)

// naTokens are cell texts that delimited and spreadsheet sources use for
// a missing value.
var naTokens = map[string]struct{}{
	"":         {},
	"#N/A":     {},
	"#N/A N/A": {},
	"#NA":      {},
	"-1.#IND":  {},
	"-1.#QNAN": {},
	"-NaN":     {},
	"-nan":     {},
	"1.#IND":   {},
	"1.#QNAN":  {},
	"<NA>":     {},
	"N/A":      {},
	"NA":       {},
	"NULL":     {},
	"NaN":      {},
	"None":     {},
	"n/a":      {},
	"nan":      {},
	"null":     {},
}

// ParseNumber parses s as an integer or floating-point literal.
// Surrounding whitespace is ignored.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	if s == "" || !numericRegex.MatchString(s) {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		// Out of range literals such as 1e999
		return 0, false
	}
	return f, true
}

// IsNAToken reports whether s spells a missing value.
func IsNAToken(s string) bool {
	_, ok := naTokens[s]
	return ok
}

// sourceCell converts delimited or spreadsheet text into a Cell,
// treating NA tokens as absent.
func sourceCell(s string) Cell {
	if IsNAToken(s) {
		return AbsentCell()
	}
	return TextCell(s)
}

// inferKind classifies a column: numeric when every present cell parses
// as a number. A column with no present cells is numeric.
func inferKind(cells []Cell) ColumnKind {
	for _, c := range cells {
		if !c.Valid {
			continue
		}
		if _, ok := ParseNumber(c.Text); !ok {
			return ColumnText
		}
	}
	return ColumnNumeric
}

// buildColumn types the cells once and stores them immutably.
func buildColumn(name string, cells []Cell) Column {
	col := Column{
		Name:    name,
		Kind:    inferKind(cells),
		present: make([]bool, len(cells)),
	}

	if col.Kind == ColumnNumeric {
		col.numbers = make([]float64, len(cells))
	} else {
		col.texts = make([]string, len(cells))
	}

	for i, c := range cells {
		if !c.Valid {
			continue
		}
		col.present[i] = true
		if col.Kind == ColumnNumeric {
			col.numbers[i], _ = ParseNumber(c.Text)
		} else {
			col.texts[i] = c.Text
		}
	}
	return col
}
