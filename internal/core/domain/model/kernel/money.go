package kernel

import (
	"fmt"

	"devis/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// moneyScale is the number of decimal places kept for amounts.
const moneyScale = 2

// Money is a non-negative amount in the shop currency, rounded to cents.
// The zero value is a valid zero amount.
type Money struct {
	amount decimal.Decimal
}

// ZeroMoney returns a zero amount.
func ZeroMoney() Money {
	return Money{amount: decimal.Zero}
}

// NewMoney validates that amount is not negative and rounds it to cents.
func NewMoney(amount decimal.Decimal) (Money, error) {
	if amount.IsNegative() {
		return Money{}, errs.NewValueIsInvalidErrorWithCause(
			"amount", fmt.Errorf("%s is negative", amount.String()))
	}
	return Money{amount: amount.Round(moneyScale)}, nil
}

// MoneyFromString parses a decimal string such as "129.90".
func MoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, errs.NewValueIsInvalidErrorWithCause("amount", err)
	}
	return NewMoney(d)
}

// MustMoney is NewMoney for literals known to be valid.
func MustMoney(s string) Money {
	m, err := MoneyFromString(s)
	if err != nil {
		panic(err)
	}
	return m
}

func (m Money) Decimal() decimal.Decimal {
	return m.amount
}

func (m Money) Add(other Money) Money {
	return Money{amount: m.amount.Add(other.amount)}
}

// Times multiplies by a non-negative quantity.
func (m Money) Times(quantity int) Money {
	if quantity <= 0 {
		return ZeroMoney()
	}
	return Money{amount: m.amount.Mul(decimal.NewFromInt(int64(quantity)))}
}

// SubClamped returns m - other, or zero when other exceeds m.
func (m Money) SubClamped(other Money) Money {
	diff := m.amount.Sub(other.amount)
	if diff.IsNegative() {
		return ZeroMoney()
	}
	return Money{amount: diff}
}

func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

func (m Money) Equal(other Money) bool {
	return m.amount.Equal(other.amount)
}

// String renders the amount with exactly two decimals.
func (m Money) String() string {
	return m.amount.StringFixed(moneyScale)
}
