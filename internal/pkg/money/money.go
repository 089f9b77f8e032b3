// Package money holds the flat-rate loan arithmetic. All intermediate math
// runs on decimals so the rounding of interest and installments matches what
// the ledger stores in its two-decimal columns.
package money

import "github.com/shopspring/decimal"

// Round2 rounds an amount to two decimal places (half away from zero).
func Round2(amount float64) float64 {
	v, _ := decimal.NewFromFloat(amount).Round(2).Float64()
	return v
}

// FlatInterest computes principal * rate/100 rounded to two decimals.
func FlatInterest(principal, ratePercent float64) float64 {
	p := decimal.NewFromFloat(principal)
	r := decimal.NewFromFloat(ratePercent).Div(decimal.NewFromInt(100))
	v, _ := p.Mul(r).Round(2).Float64()
	return v
}

// Installment divides a total over duration months, rounded to two decimals.
func Installment(total float64, durationMonths int) float64 {
	t := decimal.NewFromFloat(total)
	d := decimal.NewFromInt(int64(durationMonths))
	v, _ := t.DivRound(d, 2).Float64()
	return v
}

// Sub subtracts b from a at two-decimal precision. Balance arithmetic goes
// through here so repeated repayments cannot accumulate float drift.
func Sub(a, b float64) float64 {
	v, _ := decimal.NewFromFloat(a).Sub(decimal.NewFromFloat(b)).Round(2).Float64()
	return v
}

// Add adds two amounts at two-decimal precision.
func Add(a, b float64) float64 {
	v, _ := decimal.NewFromFloat(a).Add(decimal.NewFromFloat(b)).Round(2).Float64()
	return v
}
