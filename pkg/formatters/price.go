package formatters

import (
	"fmt"
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// DefaultLocale is used when the caller passes an empty or unparsable locale.
var DefaultLocale = language.AmericanEnglish

// FormatPrice renders an amount given in cents with the currency symbol and
// the locale's digit grouping, e.g. "$1,234.50" or "€1.234,50". Currencies
// without minor units (JPY) are printed without decimals. An unknown
// currency code falls back to "1234.50 XYZ".
func FormatPrice(amountInCents int64, currencyCode, locale string) string {
	amount := float64(amountInCents) / 100

	unit, err := currency.ParseISO(currencyCode)
	if err != nil {
		return fmt.Sprintf("%.2f %s", amount, strings.ToUpper(currencyCode))
	}

	scale, _ := currency.Standard.Rounding(unit)
	p := message.NewPrinter(parseLocale(locale))
	return p.Sprintf("%v%v", currency.Symbol(unit), number.Decimal(amount, number.Scale(scale)))
}

func parseLocale(locale string) language.Tag {
	if locale == "" {
		return DefaultLocale
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return DefaultLocale
	}
	return tag
}
