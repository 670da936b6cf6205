// Package operation models money assigned to a category over an interval:
// the operation range base type, the planned operations and budgets built on
// it, and the matcher deciding which historic transactions belong to them.
package operation

import (
	"fmt"
	"time"

	"github.com/cashcast/cashcast/internal/interval"
	"github.com/cashcast/cashcast/internal/model"
)

// Range is an amount of money allocated to a category over an interval.
// A negative amount is an expense, a positive one an income. Ranges are
// immutable values; the With methods return modified copies.
type Range struct {
	Interval    interval.Interval
	Description string
	Category    model.Category
	Amount      model.Amount
}

// NewRange builds an operation range.
func NewRange(description string, amount model.Amount, category model.Category, iv interval.Interval) Range {
	return Range{
		Description: description,
		Amount:      amount,
		Category:    category,
		Interval:    iv,
	}
}

// AmountOnPeriod returns the money this range contributes between start and
// end, inclusive. Complete occurrences count in full; partially overlapping
// ones are pro-rated linearly by whole days. Returns 0 when the window misses
// the range entirely or is inverted.
func (r Range) AmountOnPeriod(start, end time.Time) float64 {
	if start.After(end) {
		return 0
	}
	if r.Interval.IsExpired(start) || r.Interval.IsFuture(end) {
		return 0
	}

	total := 0.0
	for occurrence := range r.Interval.Iterate(time.Time{}) {
		if occurrence.IsExpired(start) {
			continue
		}
		if occurrence.IsFuture(end) {
			break
		}

		if !occurrence.StartDate().Before(start) && !occurrence.LastDate().After(end) {
			total += r.Amount.Value
			continue
		}

		overlapStart := occurrence.StartDate()
		if overlapStart.Before(start) {
			overlapStart = start
		}
		overlapEnd := occurrence.LastDate()
		if overlapEnd.After(end) {
			overlapEnd = end
		}
		days := interval.DaysBetween(overlapStart, overlapEnd) + 1
		total += r.Amount.Value / float64(occurrence.TotalDays()) * float64(days)
	}
	return total
}

// WithInterval returns a copy spanning the given interval.
func (r Range) WithInterval(iv interval.Interval) Range {
	r.Interval = iv
	return r
}

// WithAmount returns a copy worth the given amount.
func (r Range) WithAmount(amount model.Amount) Range {
	r.Amount = amount
	return r
}

// WithCategory returns a copy filed under the given category.
func (r Range) WithCategory(category model.Category) Range {
	r.Category = category
	return r
}

// WithDescription returns a copy described by the given text.
func (r Range) WithDescription(description string) Range {
	r.Description = description
	return r
}

func (r Range) String() string {
	return fmt.Sprintf("%s - %s - %s - %s", r.Interval, r.Category, r.Description, r.Amount)
}
