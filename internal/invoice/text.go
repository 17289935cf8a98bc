package invoice

import (
	"fmt"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/unicode/norm"
)

// NormalizeNumber returns the NFC form of an invoice number. Numbers are
// stored in this form and command arguments are normalized the same way, so
// lookups can compare bytes. Whitespace is significant.
func NormalizeNumber(number string) string {
	return norm.NFC.String(number)
}

// FormatAmount renders amount in the given ISO 4217 currency using the
// number conventions of lang. Unknown currencies fall back to
// "<amount> <code>" with two decimals.
func FormatAmount(amount float64, code, lang string) string {
	unit, err := currency.ParseISO(code)
	if err != nil {
		return fmt.Sprintf("%.2f %s", finite(amount), code)
	}
	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.English
	}
	p := message.NewPrinter(tag)
	return p.Sprint(currency.Symbol(unit.Amount(finite(amount))))
}
