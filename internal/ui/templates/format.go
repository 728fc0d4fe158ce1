package templates

import (
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.AmericanEnglish)

// FormatCount renders n with thousands separators, e.g. 1,234.
func FormatCount(n int) string {
	return printer.Sprintf("%d", n)
}

// FormatUSD renders d as US dollars rounded to cents, e.g. $1,234.50.
func FormatUSD(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}

	fixed := d.StringFixed(2)
	whole, cents, _ := strings.Cut(fixed, ".")

	units, err := decimal.NewFromString(whole)
	if err != nil {
		return sign + "$" + fixed
	}

	return sign + "$" + printer.Sprintf("%d", units.IntPart()) + "." + cents
}
