package operation

import (
	"fmt"
	"time"

	"github.com/cashcast/cashcast/internal/interval"
	"github.com/cashcast/cashcast/internal/model"
)

// Budget is a spending envelope: an amount allocated to a category over an
// interval, one-off or renewed every period. Transactions consume it for as
// long as the current iteration lasts. An ID of zero means the budget has not
// been persisted yet.
type Budget struct {
	matcher *Matcher
	Range
	ID int64
}

// NewBudget builds a budget with default matcher parameters: transactions
// must fall strictly inside the budget's interval, at any amount.
func NewBudget(id int64, description string, amount model.Amount, category model.Category, iv interval.Interval) Budget {
	b := Budget{
		Range: NewRange(description, amount, category, iv),
		ID:    id,
	}
	b.matcher = mustMatcher(b.Range, DefaultBudgetParams())
	return b
}

// Matcher returns the heuristic matcher attached to this budget.
func (b Budget) Matcher() *Matcher { return b.matcher }

// MatcherParams returns the matching configuration.
func (b Budget) MatcherParams() MatcherParams { return b.matcher.Params() }

// WithMatcherParams returns a copy matched with the given parameters.
func (b Budget) WithMatcherParams(params MatcherParams) Budget {
	b.matcher = mustMatcher(b.Range, params)
	return b
}

// WithInterval returns a copy over the given interval.
func (b Budget) WithInterval(iv interval.Interval) Budget {
	b.Range = b.Range.WithInterval(iv)
	b.matcher = mustMatcher(b.Range, b.matcher.Params())
	return b
}

// WithAmount returns a copy worth the given amount.
func (b Budget) WithAmount(amount model.Amount) Budget {
	b.Range = b.Range.WithAmount(amount)
	b.matcher = mustMatcher(b.Range, b.matcher.Params())
	return b
}

// WithID returns a copy carrying the given persisted id.
func (b Budget) WithID(id int64) Budget {
	b.ID = id
	return b
}

// SplitAt cuts a recurring budget at the given date. The terminated half
// keeps the persisted id; the continuation carries the matcher configuration
// and has no id yet. Callers adjust the continuation's amount or cadence with
// the With methods when the envelope changes going forward.
func (b Budget) SplitAt(at time.Time) (Budget, Budget, error) {
	terminatedRange, continuationRange, err := interval.Split(b.Interval, at)
	if err != nil {
		return Budget{}, Budget{}, fmt.Errorf("splitting budget %q: %w", b.Description, err)
	}

	terminated := b.WithInterval(terminatedRange)
	continuation := NewBudget(0, b.Description, b.Amount, b.Category, continuationRange).
		WithMatcherParams(b.matcher.Params())

	return terminated, continuation, nil
}
