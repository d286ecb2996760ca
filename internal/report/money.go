// Package report renders bonus reports as text tables, JSON or CSV.
package report

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var brl = message.NewPrinter(language.BrazilianPortuguese)

// Money formats v in Brazilian reais, e.g. "R$ 1.234,56".
func Money(v float64) string {
	return brl.Sprintf("R$ %.2f", v)
}

// Percent formats a percentage with one decimal.
func Percent(v float64) string {
	return fmt.Sprintf("%.1f%%", v)
}
