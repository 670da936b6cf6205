package interval

import (
	"fmt"
	"iter"
	"time"

	"github.com/cashcast/cashcast/internal/common"
)

// Interval is a span of calendar days, possibly repeating. Implementations
// are immutable value types: every mutating operation returns a new value.
//
// Iteration sequences are lazy and restartable. A recurring interval without
// expiration is conceptually infinite, so its sequence must only ever be
// consumed lazily.
type Interval interface {
	// StartDate is the first day of the interval.
	StartDate() time.Time
	// LastDate is the final day covered. For a recurrence this is the
	// expiration date (MaxDate when unbounded).
	LastDate() time.Time
	// TotalDays is the whole-day length from start to last, inclusive.
	TotalDays() int
	// Duration is the calendar duration of a single span.
	Duration() Duration

	// IsExpired reports whether the interval ends strictly before target.
	IsExpired(target time.Time) bool
	// IsFuture reports whether the interval starts strictly after target.
	IsFuture(target time.Time) bool
	// Contains reports whether target falls inside the interval widened by
	// the given tolerances in days.
	Contains(target time.Time, beforeDays, afterDays int) bool

	// Iterate yields the interval's occurrences in ascending start order,
	// seeking near from when it is non-zero. The sequence may begin one
	// occurrence before from so that a span containing from is not lost;
	// it never skips past it.
	Iterate(from time.Time) iter.Seq[Interval]
	// Current returns the occurrence containing target, widened by the
	// tolerances, or nil.
	Current(target time.Time, beforeDays, afterDays int) Interval
	// Next returns the first occurrence starting strictly after target, or nil.
	Next(target time.Time) Interval
	// Last returns the latest occurrence not after target, or nil.
	Last(target time.Time) Interval

	// WithStart returns a copy of the interval moved to the given start date.
	WithStart(start time.Time) Interval
}

// Range is a single contiguous run of days: a start date plus a calendar
// duration. The last covered day is start + duration - 1 day.
type Range struct {
	start time.Time
	dur   Duration
}

// NewRange builds a range from a start date and duration.
func NewRange(start time.Time, dur Duration) Range {
	return Range{start: Normalize(start), dur: dur}
}

func (r Range) StartDate() time.Time { return r.start }

func (r Range) LastDate() time.Time {
	return AddDays(r.dur.AddTo(r.start), -1)
}

func (r Range) TotalDays() int {
	return DaysBetween(r.start, r.LastDate()) + 1
}

func (r Range) Duration() Duration { return r.dur }

func (r Range) IsExpired(target time.Time) bool {
	return r.LastDate().Before(target)
}

func (r Range) IsFuture(target time.Time) bool {
	return r.start.After(target)
}

func (r Range) Contains(target time.Time, beforeDays, afterDays int) bool {
	return !target.Before(AddDays(r.start, -beforeDays)) &&
		!target.After(AddDays(r.LastDate(), afterDays))
}

func (r Range) Iterate(_ time.Time) iter.Seq[Interval] {
	return func(yield func(Interval) bool) {
		yield(r)
	}
}

func (r Range) Current(target time.Time, beforeDays, afterDays int) Interval {
	if r.Contains(target, beforeDays, afterDays) {
		return r
	}
	return nil
}

func (r Range) Next(target time.Time) Interval {
	if r.IsFuture(target) {
		return r
	}
	return nil
}

func (r Range) Last(target time.Time) Interval {
	if r.IsFuture(target) {
		return nil
	}
	return r
}

func (r Range) WithStart(start time.Time) Interval {
	return NewRange(start, r.dur)
}

// WithDuration returns a copy of the range with a new duration.
func (r Range) WithDuration(dur Duration) Range {
	return NewRange(r.start, dur)
}

func (r Range) String() string {
	return fmt.Sprintf("%s - %s", r.start.Format(time.DateOnly), r.LastDate().Format(time.DateOnly))
}

// Day is a range lasting exactly one day.
type Day struct {
	Range
}

// NewDay builds a single-day interval.
func NewDay(date time.Time) Day {
	return Day{NewRange(date, Days(1))}
}

func (d Day) WithStart(start time.Time) Interval {
	return NewDay(start)
}

func (d Day) Iterate(_ time.Time) iter.Seq[Interval] {
	return func(yield func(Interval) bool) {
		yield(d)
	}
}

func (d Day) Current(target time.Time, beforeDays, afterDays int) Interval {
	if d.Contains(target, beforeDays, afterDays) {
		return d
	}
	return nil
}

func (d Day) Next(target time.Time) Interval {
	if d.IsFuture(target) {
		return d
	}
	return nil
}

func (d Day) Last(target time.Time) Interval {
	if d.IsFuture(target) {
		return nil
	}
	return d
}

// Split cuts a recurring interval in two at the given date. It fails with
// ErrNotPeriodic for non-recurring intervals.
func Split(iv Interval, at time.Time) (Interval, Interval, error) {
	switch r := iv.(type) {
	case RecurringDay:
		return splitReturn(r.SplitAt(at))
	case Recurring:
		return splitReturn(r.SplitAt(at))
	default:
		return nil, nil, fmt.Errorf("%w: cannot split %T", common.ErrNotPeriodic, iv)
	}
}

func splitReturn[T Interval](terminated, continuation T, err error) (Interval, Interval, error) {
	if err != nil {
		return nil, nil, err
	}
	return terminated, continuation, nil
}
