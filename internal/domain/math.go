package domain

import "github.com/shopspring/decimal"

const (
	currencyPrecision = 2
	weightPrecision   = 5
	percentPrecision  = 1
)

// RoundCurrency rounds a dollar amount to 2 decimal places.
func RoundCurrency(v float64) float64 {
	return roundTo(v, currencyPrecision)
}

// RoundWeight rounds a troy-ounce weight to 5 decimal places.
func RoundWeight(v float64) float64 {
	return roundTo(v, weightPrecision)
}

// RoundPercent rounds a percentage to 1 decimal place.
func RoundPercent(v float64) float64 {
	return roundTo(v, percentPrecision)
}

// roundTo rounds half away from zero via decimal to avoid the usual
// float drift on currency values.
func roundTo(v float64, places int32) float64 {
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}
