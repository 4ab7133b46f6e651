package domain

import "github.com/shopspring/decimal"

// ComputeTotal returns the tax on subtotal, rounded half away from zero to the
// nearest whole unit, and subtotal + tax + shipping.
func ComputeTotal(subtotal, shipping int64, taxRate float64) (tax, total int64) {
	tax = decimal.NewFromInt(subtotal).
		Mul(decimal.NewFromFloat(taxRate)).
		Round(0).
		IntPart()
	return tax, subtotal + tax + shipping
}
