package interval

import (
	"fmt"
	"time"

	"github.com/cashcast/cashcast/internal/common"
)

// Duration is a calendar-aware span. Unlike time.Duration it counts calendar
// units, so adding one month to January 15th lands on February 15th no matter
// how many days January has.
type Duration struct {
	Years  int
	Months int
	Weeks  int
	Days   int
}

// Convenience constructors for single-unit durations.
func Years(n int) Duration  { return Duration{Years: n} }
func Months(n int) Duration { return Duration{Months: n} }
func Weeks(n int) Duration  { return Duration{Weeks: n} }
func Days(n int) Duration   { return Duration{Days: n} }

// IsZero reports whether the duration spans no time at all.
func (d Duration) IsZero() bool {
	return d.Years == 0 && d.Months == 0 && d.Weeks == 0 && d.Days == 0
}

// Times scales every component by n.
func (d Duration) Times(n int) Duration {
	return Duration{
		Years:  d.Years * n,
		Months: d.Months * n,
		Weeks:  d.Weeks * n,
		Days:   d.Days * n,
	}
}

// AddTo advances t by the duration. Year and month components preserve the
// day-of-month, clamping to the last day when the target month is shorter:
// January 31st plus one month is February 28th (or 29th), not March 2nd.
// Week and day components are applied afterwards as plain day arithmetic.
func (d Duration) AddTo(t time.Time) time.Time {
	year, month, day := t.Date()

	monthIndex := int(month) - 1 + d.Months + 12*d.Years
	year += monthIndex / 12
	monthIndex %= 12
	if monthIndex < 0 {
		monthIndex += 12
		year--
	}
	targetMonth := time.Month(monthIndex + 1)

	if limit := daysInMonth(year, targetMonth); day > limit {
		day = limit
	}

	return Date(year, targetMonth, day).AddDate(0, 0, 7*d.Weeks+d.Days)
}

// MaxDays returns a conservative upper bound on the duration's length in
// days (31 per month, 366 per year). Overestimating here underestimates how
// many periods fit in a span, which the iteration seek corrects by walking
// forward. Underestimating would make the seek skip iterations.
func (d Duration) MaxDays() int {
	return 366*d.Years + 31*d.Months + 7*d.Weeks + d.Days
}

// Unit reduces the duration to a (value, unit) pair for persistence.
// Components are checked in the order years, months, days, weeks; days must
// win over weeks so an explicit day count is never reported as a truncated
// number of weeks. A mixed-unit duration keeps only its first non-zero
// component, matching what the storage schema can represent.
func (d Duration) Unit() (int, string) {
	switch {
	case d.Years != 0:
		return d.Years, "years"
	case d.Months != 0:
		return d.Months, "months"
	case d.Days != 0:
		return d.Days + 7*d.Weeks, "days"
	case d.Weeks != 0:
		return d.Weeks, "weeks"
	default:
		return 0, "days"
	}
}

// DurationFromUnit rebuilds a Duration from its persisted (value, unit) form.
func DurationFromUnit(value int, unit string) (Duration, error) {
	switch unit {
	case "years":
		return Years(value), nil
	case "months":
		return Months(value), nil
	case "weeks":
		return Weeks(value), nil
	case "days":
		return Days(value), nil
	default:
		return Duration{}, fmt.Errorf("%w: unknown duration unit %q", common.ErrInvalidConfig, unit)
	}
}

func (d Duration) String() string {
	value, unit := d.Unit()
	return fmt.Sprintf("%d %s", value, unit)
}
