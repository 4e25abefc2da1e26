package internal

import (
	"fmt"

	"github.com/cockroachdb/apd/v3"

	"github.com/chrisconley/cltv/specs"
)

// decimalPrecision is the number of significant digits kept by every operation.
const decimalPrecision = 34

type Decimal struct {
	value apd.Decimal
}

func NewDecimal(s string) (Decimal, error) {
	var d apd.Decimal
	_, _, err := d.SetString(s)
	if err != nil {
		return Decimal{}, fmt.Errorf("invalid decimal: %w", err)
	}
	if d.Form != apd.Finite {
		return Decimal{}, fmt.Errorf("invalid decimal: %q is not finite", s)
	}
	return Decimal{value: d}, nil
}

func NewDecimalFromInt64(i int64) Decimal {
	var d apd.Decimal
	d.SetInt64(i)
	return Decimal{value: d}
}

// String renders d in plain notation, never with an exponent.
func (d Decimal) String() string {
	return d.value.Text('f')
}

func (d Decimal) IsZero() bool {
	return d.value.IsZero()
}

func (d Decimal) Sign() int {
	return d.value.Sign()
}

func (d Decimal) Cmp(other Decimal) int {
	return d.value.Cmp(&other.value)
}

// Add returns the sum of d and other.
func (d Decimal) Add(other Decimal) (Decimal, error) {
	ctx := apd.BaseContext.WithPrecision(decimalPrecision)
	return arithmetic("add", ctx.Add, d, other)
}

// Sub returns the difference of d and other.
func (d Decimal) Sub(other Decimal) (Decimal, error) {
	ctx := apd.BaseContext.WithPrecision(decimalPrecision)
	return arithmetic("subtract", ctx.Sub, d, other)
}

// Mul returns the product of d and other.
func (d Decimal) Mul(other Decimal) (Decimal, error) {
	ctx := apd.BaseContext.WithPrecision(decimalPrecision)
	return arithmetic("multiply", ctx.Mul, d, other)
}

// Div returns the quotient of d divided by other.
// Returns error if other is zero.
func (d Decimal) Div(other Decimal) (Decimal, error) {
	if other.IsZero() {
		return Decimal{}, fmt.Errorf("%w: division by zero: %s / %s", specs.ErrArithmetic, d, other)
	}
	ctx := apd.BaseContext.WithPrecision(decimalPrecision)
	return arithmetic("divide", ctx.Quo, d, other)
}

// arithmetic runs op and fails on any trapped condition or non-finite result.
// Overflow and underflow are trapped by apd.BaseContext.
func arithmetic(name string, op func(d, x, y *apd.Decimal) (apd.Condition, error), x, y Decimal) (Decimal, error) {
	var result apd.Decimal
	if _, err := op(&result, &x.value, &y.value); err != nil {
		return Decimal{}, fmt.Errorf("%w: %s %s and %s: %v", specs.ErrArithmetic, name, x, y, err)
	}
	if result.Form != apd.Finite {
		return Decimal{}, fmt.Errorf("%w: %s %s and %s is not finite", specs.ErrArithmetic, name, x, y)
	}
	return Decimal{value: result}, nil
}
