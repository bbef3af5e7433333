package invoice

import "github.com/shopspring/decimal"

// LineAmount returns quantity * rate less the percentage discount,
// unrounded. Callers accumulate the unrounded value into the subtotal and
// store the 2-decimal rounding per line.
func LineAmount(quantity int64, rate, discountPercentage float64) decimal.Decimal {
	gross := decimal.NewFromInt(quantity).Mul(decimal.NewFromFloat(rate))
	discount := gross.Mul(decimal.NewFromFloat(discountPercentage)).Div(decimal.NewFromInt(100))
	return gross.Sub(discount)
}

// Round2 rounds to two decimal places, half away from zero.
func Round2(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}

// GrandTotal applies the round-off adjustment to the subtotal and rounds
// the result to two decimal places.
func GrandTotal(subTotal decimal.Decimal, roundOff float64) float64 {
	return Round2(subTotal.Add(decimal.NewFromFloat(roundOff)))
}
