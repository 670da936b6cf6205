// Package interval provides calendar-aware date intervals and recurrences.
//
// All dates are represented as time.Time values at midnight UTC. Helper
// functions in this package produce and expect that normal form; mixing in
// times with other clocks or locations is a caller error.
package interval

import "time"

// MaxDate is the sentinel for "no expiration". A recurrence bounded by
// MaxDate repeats forever.
var MaxDate = Date(9999, time.December, 31)

// Date builds a normalized date at midnight UTC.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// Normalize truncates a timestamp to its date at midnight UTC.
func Normalize(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return Date(y, m, d)
}

// DaysBetween returns the number of whole days from a to b. Negative when b
// precedes a. Both values must be normalized dates. Computed from Unix
// seconds because time.Duration saturates on spans past ~292 years, which a
// MaxDate bound would exceed.
func DaysBetween(a, b time.Time) int {
	return int((b.Unix() - a.Unix()) / 86400)
}

// AddDays returns the date n days after t.
func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

func daysInMonth(year int, month time.Month) int {
	// day 0 of the next month normalizes to the last day of this one
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
