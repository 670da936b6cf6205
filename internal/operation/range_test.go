package operation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/cashcast/cashcast/internal/interval"
	"github.com/cashcast/cashcast/internal/model"
)

func monthlyRange(amount float64) Range {
	iv := interval.NewRecurring(
		interval.NewRange(interval.Date(2025, time.January, 1), interval.Months(1)),
		interval.Months(1),
		interval.MaxDate,
	)
	return NewRange("groceries", model.EUR(amount), model.CategoryGroceries, iv)
}

func TestRange_AmountOnPeriod(t *testing.T) {
	r := monthlyRange(-310)

	tests := []struct {
		name       string
		start, end time.Time
		want       float64
	}{
		{
			name:  "one complete occurrence",
			start: interval.Date(2025, time.January, 1),
			end:   interval.Date(2025, time.January, 31),
			want:  -310,
		},
		{
			name:  "three complete occurrences",
			start: interval.Date(2025, time.January, 1),
			end:   interval.Date(2025, time.March, 31),
			want:  -930,
		},
		{
			name:  "tail overlap is pro-rated",
			start: interval.Date(2025, time.January, 22),
			end:   interval.Date(2025, time.January, 31),
			want:  -100, // 10 of 31 days
		},
		{
			name:  "head overlap is pro-rated",
			start: interval.Date(2025, time.January, 1),
			end:   interval.Date(2025, time.January, 10),
			want:  -100,
		},
		{
			name:  "window inside one occurrence",
			start: interval.Date(2025, time.January, 11),
			end:   interval.Date(2025, time.January, 20),
			want:  -100,
		},
		{
			name:  "window before the range",
			start: interval.Date(2024, time.November, 1),
			end:   interval.Date(2024, time.December, 31),
			want:  0,
		},
		{
			name:  "inverted window",
			start: interval.Date(2025, time.March, 1),
			end:   interval.Date(2025, time.January, 1),
			want:  0,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, r.AmountOnPeriod(tt.start, tt.end), 1e-9)
		})
	}
}

func TestRange_AmountOnPeriod_Conservation(t *testing.T) {
	// Splitting a window must not create or destroy money.
	r := monthlyRange(-310)

	whole := r.AmountOnPeriod(interval.Date(2025, time.January, 1), interval.Date(2025, time.March, 31))
	head := r.AmountOnPeriod(interval.Date(2025, time.January, 1), interval.Date(2025, time.February, 14))
	tail := r.AmountOnPeriod(interval.Date(2025, time.February, 15), interval.Date(2025, time.March, 31))
	assert.InDelta(t, whole, head+tail, 1e-9)
}

func TestRange_AmountOnPeriod_BoundedRecurrence(t *testing.T) {
	iv := interval.NewRecurring(
		interval.NewRange(interval.Date(2025, time.January, 1), interval.Months(1)),
		interval.Months(1),
		interval.Date(2025, time.February, 28),
	)
	r := NewRange("groceries", model.EUR(-100), model.CategoryGroceries, iv)

	got := r.AmountOnPeriod(interval.Date(2025, time.January, 1), interval.Date(2025, time.December, 31))
	assert.InDelta(t, -200, got, 1e-9, "only the occurrences before expiration contribute")
}

func TestRange_With(t *testing.T) {
	r := monthlyRange(-310)

	assert.Equal(t, model.EUR(-50), r.WithAmount(model.EUR(-50)).Amount)
	assert.Equal(t, model.CategoryRent, r.WithCategory(model.CategoryRent).Category)
	assert.Equal(t, "rent", r.WithDescription("rent").Description)

	day := interval.NewDay(interval.Date(2025, time.May, 1))
	assert.Equal(t, interval.Date(2025, time.May, 1), r.WithInterval(day).Interval.StartDate())

	// The receiver is unchanged.
	assert.Equal(t, model.EUR(-310), r.Amount)
	assert.Equal(t, "groceries", r.Description)
}
