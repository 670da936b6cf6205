package interval

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cashcast/cashcast/internal/common"
)

func TestRange_Bounds(t *testing.T) {
	r := NewRange(Date(2025, time.January, 1), Months(1))

	assert.Equal(t, Date(2025, time.January, 1), r.StartDate())
	assert.Equal(t, Date(2025, time.January, 31), r.LastDate())
	assert.Equal(t, 31, r.TotalDays())

	february := NewRange(Date(2025, time.February, 1), Months(1))
	assert.Equal(t, Date(2025, time.February, 28), february.LastDate())
	assert.Equal(t, 28, february.TotalDays())
}

func TestRange_Contains(t *testing.T) {
	r := NewRange(Date(2025, time.January, 10), Days(5))

	tests := []struct {
		name          string
		target        time.Time
		before, after int
		want          bool
	}{
		{name: "first day", target: Date(2025, time.January, 10), want: true},
		{name: "last day", target: Date(2025, time.January, 14), want: true},
		{name: "day before", target: Date(2025, time.January, 9), want: false},
		{name: "day after", target: Date(2025, time.January, 15), want: false},
		{name: "day before inside tolerance", target: Date(2025, time.January, 9), before: 1, want: true},
		{name: "day after inside tolerance", target: Date(2025, time.January, 16), after: 2, want: true},
		{name: "tolerance on the wrong side", target: Date(2025, time.January, 16), before: 5, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Contains(tt.target, tt.before, tt.after))
		})
	}
}

func TestRange_Queries(t *testing.T) {
	r := NewRange(Date(2025, time.June, 1), Months(1))

	assert.True(t, r.IsExpired(Date(2025, time.July, 1)))
	assert.False(t, r.IsExpired(Date(2025, time.June, 30)))
	assert.True(t, r.IsFuture(Date(2025, time.May, 31)))
	assert.False(t, r.IsFuture(Date(2025, time.June, 1)))

	assert.Equal(t, r, r.Current(Date(2025, time.June, 15), 0, 0))
	assert.Nil(t, r.Current(Date(2025, time.July, 2), 0, 0))

	assert.Equal(t, r, r.Next(Date(2025, time.May, 1)))
	assert.Nil(t, r.Next(Date(2025, time.June, 1)))

	assert.Equal(t, r, r.Last(Date(2025, time.June, 1)))
	assert.Nil(t, r.Last(Date(2025, time.May, 31)))
}

func TestRange_IterateYieldsItselfOnce(t *testing.T) {
	r := NewRange(Date(2025, time.June, 1), Days(10))

	var got []Interval
	for occurrence := range r.Iterate(Date(2020, time.January, 1)) {
		got = append(got, occurrence)
	}
	require.Len(t, got, 1)
	assert.Equal(t, r, got[0])
}

func TestDay(t *testing.T) {
	d := NewDay(Date(2025, time.March, 5))

	assert.Equal(t, Date(2025, time.March, 5), d.StartDate())
	assert.Equal(t, Date(2025, time.March, 5), d.LastDate())
	assert.Equal(t, 1, d.TotalDays())

	moved := d.WithStart(Date(2025, time.April, 1))
	require.IsType(t, Day{}, moved)
	assert.Equal(t, Date(2025, time.April, 1), moved.StartDate())
}

func TestSplit_NotPeriodic(t *testing.T) {
	_, _, err := Split(NewRange(Date(2025, time.January, 1), Months(1)), Date(2025, time.January, 15))
	assert.ErrorIs(t, err, common.ErrNotPeriodic)

	_, _, err = Split(NewDay(Date(2025, time.January, 1)), Date(2025, time.January, 15))
	assert.ErrorIs(t, err, common.ErrNotPeriodic)
}

func TestSplit_Recurring(t *testing.T) {
	r := NewRecurringDay(Date(2025, time.January, 1), Months(1), time.Time{})

	terminated, continuation, err := Split(r, Date(2025, time.March, 15))
	require.NoError(t, err)

	require.IsType(t, RecurringDay{}, terminated)
	require.IsType(t, RecurringDay{}, continuation)
	assert.Equal(t, Date(2025, time.March, 31), terminated.LastDate())
	assert.Equal(t, Date(2025, time.April, 1), continuation.StartDate())
}
