package interval

import (
	"fmt"
	"time"

	"github.com/cashcast/cashcast/internal/common"
)

// Encoded is the flat representation persistence collaborators store for an
// interval: a start date, a (value, unit) duration, and for recurrences a
// (value, unit) period plus an optional end date. A nil end on a recurrence
// means it never expires.
type Encoded struct {
	Start         time.Time
	DurationValue int
	DurationUnit  string
	PeriodValue   *int
	PeriodUnit    *string
	End           *time.Time
}

// Encode flattens an interval into its stored form. The round trip through
// Decode reproduces the interval exactly.
func Encode(iv Interval) Encoded {
	durValue, durUnit := iv.Duration().Unit()
	e := Encoded{
		Start:         iv.StartDate(),
		DurationValue: durValue,
		DurationUnit:  durUnit,
	}

	if r, ok := asRecurring(iv); ok {
		value, unit := r.Period().Unit()
		e.PeriodValue = &value
		e.PeriodUnit = &unit
		if !r.Unbounded() {
			end := r.LastDate()
			e.End = &end
		}
	}
	return e
}

// Decode rebuilds an interval from its stored form. A period value paired
// with missing recurrence fields is a shape violation and fails.
func Decode(e Encoded) (Interval, error) {
	dur, err := DurationFromUnit(e.DurationValue, e.DurationUnit)
	if err != nil {
		return nil, fmt.Errorf("decoding duration: %w", err)
	}
	if e.PeriodValue == nil && e.PeriodUnit == nil {
		if dur == Days(1) {
			return NewDay(e.Start), nil
		}
		return NewRange(e.Start, dur), nil
	}

	if e.PeriodValue == nil || e.PeriodUnit == nil {
		return nil, fmt.Errorf("%w: recurrence has a partial period", common.ErrInvalidConfig)
	}
	period, err := DurationFromUnit(*e.PeriodValue, *e.PeriodUnit)
	if err != nil {
		return nil, fmt.Errorf("decoding period: %w", err)
	}
	if period.IsZero() {
		return nil, fmt.Errorf("%w: recurrence period is zero", common.ErrInvalidConfig)
	}

	expiration := MaxDate
	if e.End != nil {
		expiration = Normalize(*e.End)
	}
	if dur == Days(1) {
		return NewRecurringDay(e.Start, period, expiration), nil
	}
	return NewRecurring(NewRange(e.Start, dur), period, expiration), nil
}

func asRecurring(iv Interval) (Recurring, bool) {
	switch r := iv.(type) {
	case Recurring:
		return r, true
	case RecurringDay:
		return r.Recurring, true
	default:
		return Recurring{}, false
	}
}
