package interval

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDate(t *testing.T) {
	d := Date(2025, time.March, 14)
	assert.Equal(t, time.UTC, d.Location())
	assert.Equal(t, 0, d.Hour())
	assert.Equal(t, "2025-03-14", d.Format(time.DateOnly))
}

func TestNormalize(t *testing.T) {
	paris, err := time.LoadLocation("Europe/Paris")
	if err != nil {
		t.Skip("tzdata unavailable")
	}

	stamped := time.Date(2025, time.March, 14, 18, 30, 12, 500, paris)
	assert.Equal(t, Date(2025, time.March, 14), Normalize(stamped))
	assert.Equal(t, Date(2025, time.March, 14), Normalize(Date(2025, time.March, 14)))
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		name string
		a, b time.Time
		want int
	}{
		{name: "same day", a: Date(2025, time.January, 1), b: Date(2025, time.January, 1), want: 0},
		{name: "adjacent days", a: Date(2025, time.January, 1), b: Date(2025, time.January, 2), want: 1},
		{name: "across leap february", a: Date(2024, time.February, 1), b: Date(2024, time.March, 1), want: 29},
		{name: "whole year", a: Date(2025, time.January, 1), b: Date(2026, time.January, 1), want: 365},
		{name: "negative when reversed", a: Date(2025, time.January, 10), b: Date(2025, time.January, 1), want: -9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DaysBetween(tt.a, tt.b))
		})
	}
}

func TestDaysBetween_MaxDateSpan(t *testing.T) {
	// Spans to the open-ended sentinel exceed time.Duration's range and must
	// still come out exact.
	got := DaysBetween(Date(2025, time.January, 1), MaxDate)
	assert.Greater(t, got, 365*7000)
	assert.Equal(t, 0, DaysBetween(MaxDate, MaxDate))
}

func TestAddDays(t *testing.T) {
	assert.Equal(t, Date(2025, time.March, 1), AddDays(Date(2025, time.February, 28), 1))
	assert.Equal(t, Date(2024, time.February, 29), AddDays(Date(2024, time.March, 1), -1))
}
