package operation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTolerance_Allows(t *testing.T) {
	tests := []struct {
		name           string
		tol            Tolerance
		actual, target float64
		want           bool
	}{
		{name: "exact amount", tol: Ratio(0.05), actual: -800, target: -800, want: true},
		{name: "within ratio", tol: Ratio(0.05), actual: -830, target: -800, want: true},
		{name: "at the bound", tol: Ratio(0.05), actual: -840, target: -800, want: true},
		{name: "past the bound", tol: Ratio(0.05), actual: -841, target: -800, want: false},
		{name: "deviation below", tol: Ratio(0.05), actual: -760, target: -800, want: true},
		{name: "zero ratio requires equality", tol: Ratio(0), actual: -800.01, target: -800, want: false},
		{name: "zero target tolerates nothing", tol: Ratio(0.05), actual: 1, target: 0, want: false},
		{name: "unbounded accepts anything", tol: Unbounded(), actual: 1e9, target: -1, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.tol.Allows(tt.actual, tt.target))
		})
	}
}

func TestTolerance_Kind(t *testing.T) {
	assert.True(t, Unbounded().IsUnbounded())
	assert.False(t, Ratio(0.05).IsUnbounded())
	assert.InDelta(t, 0.05, Ratio(0.05).Ratio(), 1e-12)
}
