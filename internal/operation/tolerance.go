package operation

import "math"

// Tolerance bounds how far a transaction amount may deviate from a target
// amount, as a ratio of the target's magnitude. The unbounded variant always
// passes; budgets use it to accept any amount inside their interval. It is a
// distinct state rather than an infinite ratio so no Inf or NaN ever enters
// the comparison arithmetic.
type Tolerance struct {
	ratio     float64
	unbounded bool
}

// Ratio builds a tolerance allowing deviations up to |target| * r.
func Ratio(r float64) Tolerance {
	return Tolerance{ratio: r}
}

// Unbounded builds a tolerance that accepts every amount.
func Unbounded() Tolerance {
	return Tolerance{unbounded: true}
}

// IsUnbounded reports whether the tolerance accepts every amount.
func (t Tolerance) IsUnbounded() bool { return t.unbounded }

// Ratio returns the configured ratio; meaningless when unbounded.
func (t Tolerance) Ratio() float64 { return t.ratio }

// Allows reports whether actual is within tolerance of target.
func (t Tolerance) Allows(actual, target float64) bool {
	if t.unbounded {
		return true
	}
	return math.Abs(actual-target) <= math.Abs(target)*t.ratio
}
