package config

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cashcast/cashcast/internal/common"
	"github.com/cashcast/cashcast/internal/forecast"
	"github.com/cashcast/cashcast/internal/interval"
	"github.com/cashcast/cashcast/internal/model"
	"github.com/cashcast/cashcast/internal/testutil"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := OpenStore(writeLedger(t, ledgerYAML))
	require.NoError(t, err)
	return store
}

func TestStore_GetAccount(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	account, err := store.GetAccount(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, "checking", account.Name)

	account, err = store.GetAccount(ctx, "checking")
	require.NoError(t, err)
	assert.Equal(t, "checking", account.Name)

	_, err = store.GetAccount(ctx, "savings")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestStore_SaveTransactions(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	err := store.SaveTransactions(ctx, "", []model.Transaction{
		testutil.Txn(0, testutil.Day(2025, time.January, 14), "LIDL", -12.40),
	})
	require.NoError(t, err)

	account, err := store.GetAccount(ctx, "")
	require.NoError(t, err)
	require.Len(t, account.Transactions, 3)
	assert.Equal(t, int64(3), account.Transactions[2].ID, "unpersisted transactions get the next free id")
}

func TestStore_UpdateTransactionCategory(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	require.NoError(t, store.UpdateTransactionCategory(ctx, 2, model.CategoryGroceries))

	account, err := store.GetAccount(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, model.CategoryGroceries, account.Transactions[1].Category)

	assert.ErrorIs(t, store.UpdateTransactionCategory(ctx, 99, model.CategoryOther), common.ErrNotFound)
}

func TestStore_UpsertPlannedOperation(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	draft := testutil.MonthlyOp(t, 0, "internet", -39.99, testutil.Day(2025, time.February, 5))
	id, err := store.UpsertPlannedOperation(ctx, draft)
	require.NoError(t, err)
	assert.Equal(t, int64(2), id, "ids continue from the highest stored one")

	ops, err := store.GetPlannedOperations(ctx)
	require.NoError(t, err)
	require.Len(t, ops, 2)

	// Replacing by id rewrites in place.
	updated := ops[0].WithAmount(model.EUR(-850))
	_, err = store.UpsertPlannedOperation(ctx, updated)
	require.NoError(t, err)

	ops, err = store.GetPlannedOperations(ctx)
	require.NoError(t, err)
	require.Len(t, ops, 2)
	assert.InDelta(t, -850, ops[0].Amount.Value, 1e-9)
}

func TestStore_DeletePlannedOperation_CascadesLinks(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	require.NoError(t, store.DeletePlannedOperation(ctx, 1))

	ops, err := store.GetPlannedOperations(ctx)
	require.NoError(t, err)
	assert.Empty(t, ops)

	_, ok, err := store.GetLinkForTransaction(ctx, 1)
	require.NoError(t, err)
	assert.False(t, ok, "links to the deleted operation are removed")

	assert.ErrorIs(t, store.DeletePlannedOperation(ctx, 99), common.ErrNotFound)
}

func TestStore_LinkCRUD(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	err := store.CreateLink(ctx, testutil.Link(1, 1, testutil.Day(2025, time.February, 1)))
	assert.ErrorIs(t, err, common.ErrDuplicateLink, "transaction 1 is already linked in the fixture")

	link := testutil.Link(2, 1, testutil.Day(2025, time.February, 1))
	require.NoError(t, store.CreateLink(ctx, link))

	links, err := store.GetLinksForTarget(ctx, model.LinkPlannedOperation, 1)
	require.NoError(t, err)
	assert.Len(t, links, 2)

	require.NoError(t, store.DeleteHeuristicLinksForTarget(ctx, model.LinkPlannedOperation, 1))
	links, err = store.GetLinksForTarget(ctx, model.LinkPlannedOperation, 1)
	require.NoError(t, err)
	require.Len(t, links, 1, "the fixture's manual link survives")
	assert.True(t, links[0].Manual)

	require.NoError(t, store.DeleteLink(ctx, 1))
	_, ok, err := store.GetLinkForTransaction(ctx, 1)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_ReplaceForecast(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	account, err := store.GetAccount(ctx, "")
	require.NoError(t, err)
	f, err := store.GetForecast(ctx)
	require.NoError(t, err)

	actual, err := forecast.NewActualizer(account, store.Ledger().ToLinks()).Actualize(f)
	require.NoError(t, err)
	require.NoError(t, store.ReplaceForecast(ctx, actual))

	stored, err := store.GetForecast(ctx)
	require.NoError(t, err)
	require.Len(t, stored.Operations, 1)
	assert.Equal(t, interval.Date(2025, time.February, 1), stored.Operations[0].Interval.StartDate(),
		"the advanced recurrence is persisted")

	// The current iteration's remainder and the renewal both survive, under
	// distinct ids.
	require.Len(t, stored.Budgets, 2)
	renewal, remainder := stored.Budgets[0], stored.Budgets[1]
	assert.Equal(t, int64(2), renewal.ID)
	assert.Equal(t, interval.Date(2025, time.February, 1), renewal.Interval.StartDate())
	assert.Equal(t, int64(3), remainder.ID, "the remainder is persisted as a new entity")
	assert.Equal(t, interval.Date(2025, time.January, 16), remainder.Interval.StartDate())
	assert.Equal(t, interval.Date(2025, time.January, 31), remainder.Interval.LastDate())
	assert.InDelta(t, -400, remainder.Amount.Value, 1e-9)

	_, ok, err := store.GetLinkForTransaction(ctx, 1)
	require.NoError(t, err)
	assert.False(t, ok, "the consumed iteration's link is pruned with the advance")
}

func TestStore_ReplaceForecast_KeepsPostponedIteration(t *testing.T) {
	// An overdue unexplained iteration must survive persistence next to the
	// advanced recurrence, each under its own id.
	const lateLedger = `account:
  name: checking
  currency: EUR
  balance: 900
  balance_date: 2025-01-03
operations:
  - id: 1
    description: rent
    category: rent
    amount: -800
    interval:
      start: 2025-01-01
      duration: 1
      duration_unit: days
      period: 1
      period_unit: months
    hints: [landlord]
    amount_tolerance: 0.05
    date_tolerance_days: 5
`
	ctx := context.Background()
	store, err := OpenStore(writeLedger(t, lateLedger))
	require.NoError(t, err)

	account, err := store.GetAccount(ctx, "")
	require.NoError(t, err)
	f, err := store.GetForecast(ctx)
	require.NoError(t, err)

	actual, err := forecast.NewActualizer(account, nil).Actualize(f)
	require.NoError(t, err)
	require.NoError(t, store.ReplaceForecast(ctx, actual))

	stored, err := store.GetForecast(ctx)
	require.NoError(t, err)
	require.Len(t, stored.Operations, 2)

	advanced := stored.Operations[0]
	assert.Equal(t, int64(1), advanced.ID)
	require.IsType(t, interval.RecurringDay{}, advanced.Interval)
	assert.Equal(t, interval.Date(2025, time.February, 1), advanced.Interval.StartDate())

	postponed := stored.Operations[1]
	assert.Equal(t, int64(2), postponed.ID, "the postponed occurrence gets a fresh id")
	require.IsType(t, interval.Day{}, postponed.Interval)
	assert.Equal(t, interval.Date(2025, time.January, 4), postponed.Interval.StartDate())
	assert.InDelta(t, -800, postponed.Amount.Value, 1e-9)
}

func TestStore_SaveRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := openTestStore(t)

	require.NoError(t, store.UpdateTransactionCategory(ctx, 2, model.CategoryGroceries))
	require.NoError(t, store.Save())

	reopened, err := OpenStore(store.path)
	require.NoError(t, err)
	account, err := reopened.GetAccount(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, model.CategoryGroceries, account.Transactions[1].Category)
}
