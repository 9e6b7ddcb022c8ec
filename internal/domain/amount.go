package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatWholeAmount renders an amount rounded to whole pounds with thousands
// separators (125140 -> "125,140", -3029 -> "-3,029").
func FormatWholeAmount(amount decimal.Decimal) string {
	rounded := amount.Round(0)
	s := rounded.Abs().String()

	var b strings.Builder
	if rounded.IsNegative() {
		b.WriteByte('-')
	}
	for i, r := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}
	return b.String()
}
