// Package estimate builds the customer-facing low/high spread around the
// final price, shown pending final confirmation.
package estimate

import (
	"github.com/shopspring/decimal"
)

// BandPercent is the display band below and above the final price
const BandPercent = 10

var (
	lowFactor  = decimal.NewFromInt(100 - BandPercent).Div(decimal.NewFromInt(100))
	highFactor = decimal.NewFromInt(100 + BandPercent).Div(decimal.NewFromInt(100))
)

// BuildRange produces the displayed range for a final monthly price in
// whole dollars. Both ends round half away from zero to whole dollars and
// the result always satisfies low <= final <= high, with low at least 1.
func BuildRange(finalPrice int64) (low, high int64) {
	price := decimal.NewFromInt(finalPrice)

	low = price.Mul(lowFactor).Round(0).IntPart()
	high = price.Mul(highFactor).Round(0).IntPart()

	if low < 1 {
		low = 1
	}
	if low > finalPrice {
		low = finalPrice
	}
	if high < finalPrice {
		high = finalPrice
	}
	return low, high
}
