package engine

import (
	"math"
	"strconv"
	"strings"
)

var (
	truthyTokens = map[string]struct{}{
		"true": {}, "t": {}, "1": {}, "sim": {}, "s": {}, "yes": {}, "y": {}, "ok": {},
	}
	falsyTokens = map[string]struct{}{
		"false": {}, "f": {}, "0": {}, "nao": {}, "não": {}, "n": {}, "no": {},
	}
)

// ParseFlag reads a "met indicator" cell. It never fails: blank and
// unrecognized cells yield def, numeric cells are met when non-zero.
func ParseFlag(cell string, def bool) bool {
	s := strings.ToLower(strings.TrimSpace(cell))
	switch s {
	case "", "none", "nan":
		return def
	}
	if _, ok := truthyTokens[s]; ok {
		return true
	}
	if _, ok := falsyTokens[s]; ok {
		return false
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f != 0
	}
	return def
}

// ParseAmount reads a monetary cell such as "1000", "1000.50", "R$ 1.000,50",
// "R$ 2.500" or "1000,50". Dots grouping digits in threes are thousands
// separators. Anything it cannot read is NaN.
func ParseAmount(cell string) float64 {
	s := strings.TrimSpace(cell)
	s = strings.TrimPrefix(strings.ToUpper(s), "R$")
	s = strings.TrimPrefix(s, "$")
	s = strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\u00a0', '\t':
			return -1
		}
		return r
	}, s)
	if s == "" {
		return math.NaN()
	}

	comma, dot := strings.LastIndex(s, ","), strings.LastIndex(s, ".")
	switch {
	case comma >= 0 && dot >= 0 && comma > dot:
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	case comma >= 0 && dot >= 0:
		s = strings.ReplaceAll(s, ",", "")
	case comma >= 0 && strings.Count(s, ",") == 1:
		s = strings.Replace(s, ",", ".", 1)
	case comma >= 0:
		s = strings.ReplaceAll(s, ",", "")
	case dot >= 0 && thousandsGrouped(s):
		s = strings.ReplaceAll(s, ".", "")
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return math.NaN()
	}
	return f
}

// thousandsGrouped reports whether s is dot-grouped in threes, as in
// "2.500" or "1.234.567".
func thousandsGrouped(s string) bool {
	groups := strings.Split(strings.TrimPrefix(s, "-"), ".")
	if len(groups[0]) == 0 || len(groups[0]) > 3 || !allDigits(groups[0]) {
		return false
	}
	for _, g := range groups[1:] {
		if len(g) != 3 || !allDigits(g) {
			return false
		}
	}
	return true
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// CleanNote trims a note cell and blanks the placeholder texts spreadsheets
// emit for empty cells.
func CleanNote(cell string) string {
	s := strings.TrimSpace(cell)
	switch strings.ToLower(s) {
	case "", "none", "nan":
		return ""
	}
	return s
}
