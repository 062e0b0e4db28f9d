// Package report turns ledger snapshots into markdown and renders it for the
// terminal.
package report

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Money formats amount in the given currency, code first: "LKR 20,000.00".
// Unknown currencies are shown with two decimals.
func Money(amount decimal.Decimal, currency string) string {
	fraction, dec, thousand := 2, ".", ","
	if cur := money.GetCurrency(currency); cur != nil {
		fraction, dec, thousand = cur.Fraction, cur.Decimal, cur.Thousand
	}
	f := money.NewFormatter(fraction, dec, thousand, currency, "$ 1")
	return f.Format(amount.Shift(int32(fraction)).Round(0).IntPart())
}

// Percent formats p with one decimal: "66.7%".
func Percent(p decimal.Decimal) string {
	return p.StringFixed(1) + "%"
}

// Change formats a period-over-period change with its sign: "+50.0%".
func Change(p decimal.Decimal) string {
	if p.IsPositive() {
		return "+" + Percent(p)
	}
	return Percent(p)
}
