package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cashcast/cashcast/internal/forecast"
	"github.com/cashcast/cashcast/internal/model"
	"github.com/cashcast/cashcast/internal/operation"
	"github.com/cashcast/cashcast/internal/testutil"
)

func TestParseDate(t *testing.T) {
	got, err := parseDate("2025-03-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC), got)

	_, err = parseDate("03/01/2025")
	assert.ErrorContains(t, err, "expected YYYY-MM-DD")

	_, err = parseDate("2025-02-30")
	assert.Error(t, err)
}

func TestParseTargetType(t *testing.T) {
	got, err := parseTargetType("operation")
	require.NoError(t, err)
	assert.Equal(t, model.LinkPlannedOperation, got)

	got, err = parseTargetType("budget")
	require.NoError(t, err)
	assert.Equal(t, model.LinkBudget, got)

	_, err = parseTargetType("envelope")
	assert.ErrorContains(t, err, "invalid target type")
}

func TestActiveForecast(t *testing.T) {
	f := forecast.Forecast{
		Operations: []operation.PlannedOperation{
			testutil.MonthlyOp(t, 1, "rent", -800, testutil.Day(2025, time.January, 1)),
			testutil.MonthlyOp(t, 2, "old gym", -30, testutil.Day(2025, time.January, 5)).WithArchived(true),
		},
		Budgets: []operation.Budget{
			testutil.MonthlyBudget(3, "groceries", -300, model.CategoryGroceries, testutil.Day(2025, time.January, 1)),
		},
	}
	active := activeForecast(f)
	require.Len(t, active.Operations, 1)
	assert.Equal(t, int64(1), active.Operations[0].ID)
	assert.Len(t, active.Budgets, 1, "budgets are never archived")
	assert.Len(t, f.Operations, 2, "input is not modified")
}
