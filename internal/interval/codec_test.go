package interval

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cashcast/cashcast/internal/common"
)

func TestCodec_RoundTrip(t *testing.T) {
	end := Date(2026, time.June, 30)

	tests := []struct {
		name string
		iv   Interval
	}{
		{name: "single day", iv: NewDay(Date(2025, time.March, 5))},
		{name: "plain range", iv: NewRange(Date(2025, time.March, 1), Months(1))},
		{name: "unbounded day recurrence", iv: NewRecurringDay(Date(2025, time.January, 31), Months(1), time.Time{})},
		{name: "bounded day recurrence", iv: NewRecurringDay(Date(2025, time.January, 31), Months(1), end)},
		{name: "bounded range recurrence", iv: NewRecurring(NewRange(Date(2025, time.January, 1), Months(1)), Months(1), end)},
		{name: "weekly recurrence", iv: NewRecurringDay(Date(2025, time.January, 6), Weeks(2), time.Time{})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decoded, err := Decode(Encode(tt.iv))
			require.NoError(t, err)
			assert.Equal(t, tt.iv, decoded)
		})
	}
}

func TestEncode_Shapes(t *testing.T) {
	e := Encode(NewDay(Date(2025, time.March, 5)))
	assert.Equal(t, 1, e.DurationValue)
	assert.Equal(t, "days", e.DurationUnit)
	assert.Nil(t, e.PeriodValue)
	assert.Nil(t, e.End)

	e = Encode(NewRecurringDay(Date(2025, time.January, 31), Months(1), time.Time{}))
	require.NotNil(t, e.PeriodValue)
	assert.Equal(t, 1, *e.PeriodValue)
	assert.Equal(t, "months", *e.PeriodUnit)
	assert.Nil(t, e.End, "unbounded recurrences store no end")

	end := Date(2026, time.June, 30)
	e = Encode(NewRecurringDay(Date(2025, time.January, 31), Months(1), end))
	require.NotNil(t, e.End)
	assert.Equal(t, end, *e.End)
}

func TestDecode_Errors(t *testing.T) {
	value := 1
	unit := "months"

	tests := []struct {
		name string
		e    Encoded
	}{
		{
			name: "period value without unit",
			e:    Encoded{Start: Date(2025, time.January, 1), DurationValue: 1, DurationUnit: "days", PeriodValue: &value},
		},
		{
			name: "period unit without value",
			e:    Encoded{Start: Date(2025, time.January, 1), DurationValue: 1, DurationUnit: "days", PeriodUnit: &unit},
		},
		{
			name: "unknown duration unit",
			e:    Encoded{Start: Date(2025, time.January, 1), DurationValue: 1, DurationUnit: "decades"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(tt.e)
			assert.ErrorIs(t, err, common.ErrInvalidConfig)
		})
	}

	zero := 0
	unitDays := "days"
	_, err := Decode(Encoded{
		Start: Date(2025, time.January, 1), DurationValue: 1, DurationUnit: "days",
		PeriodValue: &zero, PeriodUnit: &unitDays,
	})
	assert.ErrorIs(t, err, common.ErrInvalidConfig, "zero period")
}
