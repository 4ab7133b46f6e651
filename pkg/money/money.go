// Package money does whole-unit arithmetic on prices without silent int64
// wrap-around.
package money

import (
	"errors"

	"github.com/shopspring/decimal"
)

var ErrOverflow = errors.New("amount out of range")

// Mul returns unit * qty, or ErrOverflow when the product does not fit in int64.
func Mul(unit, qty int64) (int64, error) {
	return fit(decimal.NewFromInt(unit).Mul(decimal.NewFromInt(qty)))
}

// Sum adds the amounts, or returns ErrOverflow when the total does not fit in int64.
func Sum(amounts ...int64) (int64, error) {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(decimal.NewFromInt(a))
	}
	return fit(total)
}

func fit(d decimal.Decimal) (int64, error) {
	if !d.BigInt().IsInt64() {
		return 0, ErrOverflow
	}
	return d.IntPart(), nil
}
