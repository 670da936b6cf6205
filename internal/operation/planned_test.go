package operation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cashcast/cashcast/internal/common"
	"github.com/cashcast/cashcast/internal/interval"
	"github.com/cashcast/cashcast/internal/model"
)

func TestNewPlannedOperation_IntervalRestriction(t *testing.T) {
	amount := model.EUR(-800)

	_, err := NewPlannedOperation(1, "rent", amount, model.CategoryRent,
		interval.NewDay(interval.Date(2025, time.January, 1)))
	assert.NoError(t, err)

	_, err = NewPlannedOperation(1, "rent", amount, model.CategoryRent,
		interval.NewRecurringDay(interval.Date(2025, time.January, 1), interval.Months(1), time.Time{}))
	assert.NoError(t, err)

	_, err = NewPlannedOperation(1, "rent", amount, model.CategoryRent,
		interval.NewRange(interval.Date(2025, time.January, 1), interval.Months(1)))
	assert.ErrorIs(t, err, common.ErrInvalidConfig)

	_, err = NewPlannedOperation(1, "rent", amount, model.CategoryRent,
		interval.NewRecurring(
			interval.NewRange(interval.Date(2025, time.January, 1), interval.Months(1)),
			interval.Months(1), time.Time{}))
	assert.ErrorIs(t, err, common.ErrInvalidConfig)
}

func TestPlannedOperation_Defaults(t *testing.T) {
	op, err := NewPlannedOperation(1, "rent", model.EUR(-800), model.CategoryRent,
		interval.NewDay(interval.Date(2025, time.January, 1)))
	require.NoError(t, err)

	params := op.MatcherParams()
	assert.Equal(t, 5, params.DateToleranceDays)
	assert.False(t, params.AmountTolerance.IsUnbounded())
	assert.Empty(t, params.Hints)
}

func TestPlannedOperation_WithInterval(t *testing.T) {
	op, err := NewPlannedOperation(1, "rent", model.EUR(-800), model.CategoryRent,
		interval.NewDay(interval.Date(2025, time.January, 1)))
	require.NoError(t, err)

	moved, err := op.WithInterval(interval.NewDay(interval.Date(2025, time.February, 1)))
	require.NoError(t, err)
	assert.Equal(t, interval.Date(2025, time.February, 1), moved.Interval.StartDate())

	_, err = op.WithInterval(interval.NewRange(interval.Date(2025, time.February, 1), interval.Weeks(1)))
	assert.ErrorIs(t, err, common.ErrInvalidConfig)
}

func TestPlannedOperation_SplitAt(t *testing.T) {
	params := MatcherParams{Hints: []string{"landlord"}, AmountTolerance: Ratio(0.1), DateToleranceDays: 3}
	op, err := NewPlannedOperation(7, "rent", model.EUR(-800), model.CategoryRent,
		interval.NewRecurringDay(interval.Date(2025, time.January, 1), interval.Months(1), time.Time{}))
	require.NoError(t, err)
	op = op.WithMatcherParams(params)

	terminated, continuation, err := op.SplitAt(interval.Date(2025, time.March, 15))
	require.NoError(t, err)

	assert.Equal(t, int64(7), terminated.ID)
	assert.Equal(t, interval.Date(2025, time.March, 31), terminated.Interval.LastDate())

	assert.Zero(t, continuation.ID, "the continuation is not persisted yet")
	assert.Equal(t, interval.Date(2025, time.April, 1), continuation.Interval.StartDate())
	assert.Equal(t, params, continuation.MatcherParams(), "matcher configuration carries over")
}

func TestPlannedOperation_SplitAt_OneOff(t *testing.T) {
	op, err := NewPlannedOperation(7, "rent", model.EUR(-800), model.CategoryRent,
		interval.NewDay(interval.Date(2025, time.January, 1)))
	require.NoError(t, err)

	_, _, err = op.SplitAt(interval.Date(2025, time.March, 15))
	assert.ErrorIs(t, err, common.ErrNotPeriodic)
}
