package operation

import (
	"fmt"
	"time"

	"github.com/cashcast/cashcast/internal/common"
	"github.com/cashcast/cashcast/internal/interval"
	"github.com/cashcast/cashcast/internal/model"
)

// PlannedOperation is a financial operation expected to happen, either once
// or at a recurring cadence. Its interval is restricted to a single day or a
// daily recurrence, enforced at construction. An ID of zero means the
// operation has not been persisted yet.
type PlannedOperation struct {
	matcher *Matcher
	Range
	ID       int64
	Archived bool
}

// NewPlannedOperation builds a planned operation with default matcher
// parameters. The interval must be an interval.Day or interval.RecurringDay.
func NewPlannedOperation(id int64, description string, amount model.Amount, category model.Category, iv interval.Interval) (PlannedOperation, error) {
	if err := checkPlannedInterval(iv); err != nil {
		return PlannedOperation{}, err
	}
	op := PlannedOperation{
		Range: NewRange(description, amount, category, iv),
		ID:    id,
	}
	op.matcher = mustMatcher(op.Range, DefaultOperationParams())
	return op, nil
}

func checkPlannedInterval(iv interval.Interval) error {
	switch iv.(type) {
	case interval.Day, interval.RecurringDay:
		return nil
	default:
		return fmt.Errorf("%w: planned operation interval must be a single day or a daily recurrence, got %T",
			common.ErrInvalidConfig, iv)
	}
}

// mustMatcher builds a link-free matcher, which cannot fail: only link
// validation produces errors.
func mustMatcher(rng Range, params MatcherParams) *Matcher {
	m, err := NewMatcher(rng, params)
	if err != nil {
		panic(err)
	}
	return m
}

// Matcher returns the heuristic matcher attached to this operation. Link
// scoping is handled by the matcher registry, not here.
func (p PlannedOperation) Matcher() *Matcher { return p.matcher }

// MatcherParams returns the matching configuration.
func (p PlannedOperation) MatcherParams() MatcherParams { return p.matcher.Params() }

// WithMatcherParams returns a copy matched with the given parameters.
func (p PlannedOperation) WithMatcherParams(params MatcherParams) PlannedOperation {
	p.matcher = mustMatcher(p.Range, params)
	return p
}

// WithInterval returns a copy over the given interval, which must satisfy the
// planned-operation interval restriction.
func (p PlannedOperation) WithInterval(iv interval.Interval) (PlannedOperation, error) {
	if err := checkPlannedInterval(iv); err != nil {
		return PlannedOperation{}, err
	}
	p.Range = p.Range.WithInterval(iv)
	p.matcher = mustMatcher(p.Range, p.matcher.Params())
	return p, nil
}

// WithAmount returns a copy worth the given amount.
func (p PlannedOperation) WithAmount(amount model.Amount) PlannedOperation {
	p.Range = p.Range.WithAmount(amount)
	p.matcher = mustMatcher(p.Range, p.matcher.Params())
	return p
}

// WithID returns a copy carrying the given persisted id.
func (p PlannedOperation) WithID(id int64) PlannedOperation {
	p.ID = id
	return p
}

// WithArchived returns a copy with the archived flag set.
func (p PlannedOperation) WithArchived(archived bool) PlannedOperation {
	p.Archived = archived
	return p
}

// SplitAt cuts a recurring planned operation at the given date. The
// terminated half keeps the persisted id and ends the day before the first
// iteration at or after the date; the continuation starts there, carries the
// matcher configuration, and has no id yet.
func (p PlannedOperation) SplitAt(at time.Time) (PlannedOperation, PlannedOperation, error) {
	recurring, ok := p.Interval.(interval.RecurringDay)
	if !ok {
		return PlannedOperation{}, PlannedOperation{}, fmt.Errorf(
			"%w: planned operation %q is not recurring", common.ErrNotPeriodic, p.Description)
	}

	terminatedRange, continuationRange, err := recurring.SplitAt(at)
	if err != nil {
		return PlannedOperation{}, PlannedOperation{}, err
	}

	terminated, err := p.WithInterval(terminatedRange)
	if err != nil {
		return PlannedOperation{}, PlannedOperation{}, err
	}

	continuation, err := NewPlannedOperation(0, p.Description, p.Amount, p.Category, continuationRange)
	if err != nil {
		return PlannedOperation{}, PlannedOperation{}, err
	}
	continuation = continuation.WithMatcherParams(p.matcher.Params())

	return terminated, continuation, nil
}
