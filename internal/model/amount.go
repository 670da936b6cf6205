// Package model defines the financial domain types shared across the application.
package model

import (
	"fmt"
	"math"

	"github.com/cashcast/cashcast/internal/common"
)

// Amount is a currency-tagged monetary value. Arithmetic across different
// currencies fails rather than silently mixing them. Values keep full float
// precision; rounding to two decimals happens only at presentation.
type Amount struct {
	Value    float64
	Currency string
}

// NewAmount builds an amount in the given currency.
func NewAmount(value float64, currency string) Amount {
	return Amount{Value: value, Currency: currency}
}

// EUR builds a euro amount, the default currency for accounts.
func EUR(value float64) Amount {
	return Amount{Value: value, Currency: "EUR"}
}

// Add returns a + b, failing on a currency mismatch.
func (a Amount) Add(b Amount) (Amount, error) {
	if a.Currency != b.Currency {
		return Amount{}, fmt.Errorf("%w: cannot add %s and %s", common.ErrCurrencyMismatch, a.Currency, b.Currency)
	}
	return Amount{Value: a.Value + b.Value, Currency: a.Currency}, nil
}

// Sub returns a - b, failing on a currency mismatch.
func (a Amount) Sub(b Amount) (Amount, error) {
	if a.Currency != b.Currency {
		return Amount{}, fmt.Errorf("%w: cannot subtract %s from %s", common.ErrCurrencyMismatch, b.Currency, a.Currency)
	}
	return Amount{Value: a.Value - b.Value, Currency: a.Currency}, nil
}

// Neg returns the amount with its sign flipped.
func (a Amount) Neg() Amount {
	return Amount{Value: -a.Value, Currency: a.Currency}
}

// Mul scales the amount by a dimensionless factor.
func (a Amount) Mul(factor float64) Amount {
	return Amount{Value: a.Value * factor, Currency: a.Currency}
}

// Abs returns the magnitude of the amount.
func (a Amount) Abs() Amount {
	return Amount{Value: math.Abs(a.Value), Currency: a.Currency}
}

func (a Amount) String() string {
	return fmt.Sprintf("%.2f %s", a.Value, a.Currency)
}
