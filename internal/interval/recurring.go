package interval

import (
	"fmt"
	"iter"
	"time"

	"github.com/cashcast/cashcast/internal/common"
)

// Recurring repeats a base range at a calendar period, optionally bounded by
// an expiration date. Occurrence n always starts at base start + n periods,
// computed from the initial date rather than by repeated stepping, so a
// monthly recurrence anchored on the 31st keeps returning to the 31st
// whenever the month allows instead of drifting after a short month.
type Recurring struct {
	base       Range
	period     Duration
	expiration time.Time
}

// NewRecurring builds a recurrence of base at the given period. A zero
// expiration means the recurrence never expires.
func NewRecurring(base Range, period Duration, expiration time.Time) Recurring {
	if expiration.IsZero() {
		expiration = MaxDate
	}
	return Recurring{base: base, period: period, expiration: Normalize(expiration)}
}

func (r Recurring) StartDate() time.Time { return r.base.StartDate() }

// LastDate is the expiration bound, MaxDate when unbounded.
func (r Recurring) LastDate() time.Time { return r.expiration }

func (r Recurring) TotalDays() int {
	return DaysBetween(r.base.StartDate(), r.expiration) + 1
}

// Duration is the calendar duration of one occurrence.
func (r Recurring) Duration() Duration { return r.base.Duration() }

// Period is the calendar step between occurrence starts.
func (r Recurring) Period() Duration { return r.period }

// Base returns the repeated range.
func (r Recurring) Base() Range { return r.base }

// Unbounded reports whether the recurrence has no expiration.
func (r Recurring) Unbounded() bool { return r.expiration.Equal(MaxDate) }

func (r Recurring) IsExpired(target time.Time) bool {
	return r.expiration.Before(target)
}

func (r Recurring) IsFuture(target time.Time) bool {
	return r.base.IsFuture(target)
}

func (r Recurring) Contains(target time.Time, beforeDays, afterDays int) bool {
	return r.Current(target, beforeDays, afterDays) != nil
}

// Iterate yields occurrences in ascending order, stopping once an occurrence
// would end past the expiration date. When from is set, the starting index is
// estimated with maximum per-unit day counts (366 per year, 31 per month) and
// then corrected forward. The estimate can only undershoot, so the walk never
// skips an occurrence; the sequence may begin one occurrence before from so a
// span containing from is still produced.
func (r Recurring) Iterate(from time.Time) iter.Seq[Interval] {
	return func(yield func(Interval) bool) {
		start := r.base.StartDate()

		n := 0
		if !from.IsZero() && from.After(start) {
			if approx := r.period.MaxDays(); approx > 0 {
				n = DaysBetween(start, from)/approx - 1
				if n < 0 {
					n = 0
				}
			}
			for r.period.Times(n + 1).AddTo(start).Before(from) {
				n++
			}
		}

		for ; ; n++ {
			occurrence := NewRange(r.period.Times(n).AddTo(start), r.base.Duration())
			if occurrence.LastDate().After(r.expiration) {
				return
			}
			if !yield(occurrence) {
				return
			}
		}
	}
}

func (r Recurring) Current(target time.Time, beforeDays, afterDays int) Interval {
	for occurrence := range r.Iterate(target) {
		if occurrence.Contains(target, beforeDays, afterDays) {
			return occurrence
		}
		if occurrence.IsFuture(target) {
			break
		}
	}
	return nil
}

func (r Recurring) Next(target time.Time) Interval {
	for occurrence := range r.Iterate(target) {
		if occurrence.IsFuture(target) {
			return occurrence
		}
	}
	return nil
}

func (r Recurring) Last(target time.Time) Interval {
	var previous Interval
	for occurrence := range r.Iterate(target) {
		if occurrence.Contains(target, 0, 0) {
			return occurrence
		}
		if occurrence.IsFuture(target) {
			return previous
		}
		previous = occurrence
	}
	return previous
}

func (r Recurring) WithStart(start time.Time) Interval {
	return NewRecurring(NewRange(start, r.base.Duration()), r.period, r.expiration)
}

// WithExpiration returns a copy bounded by the given date.
func (r Recurring) WithExpiration(expiration time.Time) Recurring {
	return NewRecurring(r.base, r.period, expiration)
}

// WithPeriod returns a copy stepping at the given period.
func (r Recurring) WithPeriod(period Duration) Recurring {
	return NewRecurring(r.base, period, r.expiration)
}

// SplitAt cuts the recurrence at the first occurrence starting at or after
// the given date. The terminated half keeps the original start and expires
// the day before that occurrence; the continuation starts there and keeps the
// original expiration.
func (r Recurring) SplitAt(at time.Time) (Recurring, Recurring, error) {
	if !at.After(r.base.StartDate()) {
		return Recurring{}, Recurring{}, fmt.Errorf(
			"%w: %s is not after the first occurrence", common.ErrInvalidSplit, at.Format(time.DateOnly))
	}

	var firstNew time.Time
	for occurrence := range r.Iterate(at) {
		if !occurrence.StartDate().Before(at) {
			firstNew = occurrence.StartDate()
			break
		}
	}
	if firstNew.IsZero() {
		return Recurring{}, Recurring{}, fmt.Errorf(
			"%w: no occurrence at or after %s", common.ErrInvalidSplit, at.Format(time.DateOnly))
	}

	terminated := r.WithExpiration(AddDays(firstNew, -1))
	continuation := NewRecurring(NewRange(firstNew, r.base.Duration()), r.period, r.expiration)
	return terminated, continuation, nil
}

func (r Recurring) String() string {
	until := "forever"
	if !r.Unbounded() {
		until = r.expiration.Format(time.DateOnly)
	}
	return fmt.Sprintf("%s every %s until %s", r.base, r.period, until)
}

// RecurringDay repeats a single day at a calendar period.
type RecurringDay struct {
	Recurring
}

// NewRecurringDay builds a single-day recurrence. A zero expiration means the
// recurrence never expires.
func NewRecurringDay(start time.Time, period Duration, expiration time.Time) RecurringDay {
	return RecurringDay{NewRecurring(NewRange(start, Days(1)), period, expiration)}
}

func (r RecurringDay) WithStart(start time.Time) Interval {
	return NewRecurringDay(start, r.period, r.expiration)
}

// WithExpiration returns a copy bounded by the given date.
func (r RecurringDay) WithExpiration(expiration time.Time) RecurringDay {
	return NewRecurringDay(r.base.StartDate(), r.period, expiration)
}

// SplitAt cuts the single-day recurrence, preserving the subtype on both halves.
func (r RecurringDay) SplitAt(at time.Time) (RecurringDay, RecurringDay, error) {
	terminated, continuation, err := r.Recurring.SplitAt(at)
	if err != nil {
		return RecurringDay{}, RecurringDay{}, err
	}
	return RecurringDay{terminated}, RecurringDay{continuation}, nil
}
