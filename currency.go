package payapi

import "github.com/shopspring/decimal"

// Currency is a lowercase three-letter ISO 4217 currency code.
type Currency string

const (
	CurrencyAUD Currency = "aud"
	CurrencyCAD Currency = "cad"
	CurrencyCHF Currency = "chf"
	CurrencyEUR Currency = "eur"
	CurrencyGBP Currency = "gbp"
	CurrencyJPY Currency = "jpy"
	CurrencyUSD Currency = "usd"
)

// minorUnitExponents lists currencies whose minor-unit exponent is not 2.
var minorUnitExponents = map[Currency]int32{
	CurrencyJPY: 0,
}

// Exponent returns the number of minor-unit digits for the currency.
func (c Currency) Exponent() int32 {
	if exp, ok := minorUnitExponents[c]; ok {
		return exp
	}
	return 2
}

// AmountDecimal converts a minor-unit amount into a decimal in major units,
// e.g. 1050 usd minor units become 10.50.
func AmountDecimal(amount int64, currency Currency) decimal.Decimal {
	return decimal.New(amount, -currency.Exponent())
}
