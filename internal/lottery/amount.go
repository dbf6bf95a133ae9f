package lottery

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"lotteryweb/internal/workbook"
)

var (
	plainAmount   = regexp.MustCompile(`^(\d+(\.\d*)?|\.\d+)([eE][+-]?\d+)?$`)
	groupedAmount = regexp.MustCompile(`^\d{1,3}(,\d{3})+(\.\d*)?$`)
)

// ParseAmount parses a cell as an invariant-culture decimal: a leading or
// trailing sign, "," thousands grouping in the integer part and "." as the
// decimal point. Exponent forms are accepted ungrouped, since raw xlsx numbers
// use them. Currency symbols are rejected.
func ParseAmount(text string) (decimal.Decimal, bool) {
	text = strings.TrimSpace(text)
	sign := ""
	switch {
	case strings.HasPrefix(text, "-"), strings.HasPrefix(text, "+"):
		sign, text = text[:1], text[1:]
	case strings.HasSuffix(text, "-"), strings.HasSuffix(text, "+"):
		sign, text = text[len(text)-1:], text[:len(text)-1]
	}

	switch {
	case plainAmount.MatchString(text):
	case groupedAmount.MatchString(text):
		text = strings.ReplaceAll(text, ",", "")
	default:
		return decimal.Zero, false
	}
	if sign == "-" {
		text = "-" + text
	}

	d, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// FormatAmount renders d keeping its fractional scale, so 35.750 stays
// "35.750" and an integral total prints without a point.
func FormatAmount(d decimal.Decimal) string {
	if exp := d.Exponent(); exp < 0 {
		return d.StringFixed(-exp)
	}
	return d.String()
}

// Total sums the amount column over every data row. Cells that do not parse
// add nothing.
func Total(sheet *workbook.Sheet, cols Columns) decimal.Decimal {
	total := decimal.Zero
	for _, row := range sheet.DataRows() {
		if amount, ok := ParseAmount(sheet.Text(row, cols.Amount)); ok {
			total = total.Add(amount)
		}
	}
	return total
}
