package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAmount_Arithmetic(t *testing.T) {
	a := EUR(-800)
	b := EUR(150)

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.InDelta(t, -650, sum.Value, 1e-9)
	assert.Equal(t, "EUR", sum.Currency)

	diff, err := a.Sub(b)
	require.NoError(t, err)
	assert.InDelta(t, -950, diff.Value, 1e-9)

	assert.InDelta(t, 800, a.Neg().Value, 1e-9)
	assert.InDelta(t, 800, a.Abs().Value, 1e-9)
	assert.InDelta(t, -400, a.Mul(0.5).Value, 1e-9)
}

func TestAmount_CurrencyMismatch(t *testing.T) {
	usd := NewAmount(100, "USD")

	_, err := EUR(100).Add(usd)
	assert.Error(t, err)
	_, err = EUR(100).Sub(usd)
	assert.Error(t, err)
}

func TestAmount_String(t *testing.T) {
	assert.Equal(t, "-800.00 EUR", EUR(-800).String())
	assert.Equal(t, "33.21 EUR", EUR(33.209).String())
}
