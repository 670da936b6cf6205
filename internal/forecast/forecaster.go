package forecast

import (
	"time"

	"github.com/cashcast/cashcast/internal/interval"
	"github.com/cashcast/cashcast/internal/model"
	"github.com/cashcast/cashcast/internal/operation"
)

// Forecaster materializes the state of an account at any date: reconstructing
// the past by unwinding recorded transactions, or projecting the future by
// synthesizing per-day transactions from an actualized forecast.
type Forecaster struct {
	account  model.Account
	forecast Forecast
	nextID   int64
}

// NewForecaster builds a forecaster over an account snapshot and its
// actualized forecast.
func NewForecaster(account model.Account, f Forecast) *Forecaster {
	var lastID int64
	for _, txn := range account.Transactions {
		if txn.ID > lastID {
			lastID = txn.ID
		}
	}
	return &Forecaster{account: account, forecast: f, nextID: lastID}
}

// At returns the account as it was, or is expected to be, on the target date.
func (f *Forecaster) At(target time.Time) model.Account {
	balance := f.account.BalanceDate
	switch {
	case target.Equal(balance):
		return f.account
	case target.Before(balance):
		return f.pastState(target)
	default:
		return f.futureState(target)
	}
}

// pastState unwinds every transaction recorded after the target date.
func (f *Forecaster) pastState(target time.Time) model.Account {
	pastBalance := f.account.Balance
	var past []model.Transaction
	for _, txn := range f.account.Transactions {
		if txn.Date.After(target) && !txn.Date.After(f.account.BalanceDate) {
			pastBalance -= txn.Amount.Value
			continue
		}
		past = append(past, txn)
	}

	state := f.account
	state.Balance = pastBalance
	state.BalanceDate = target
	state.Transactions = past
	return state
}

// futureState appends synthetic per-day transactions for every forecast
// entity up to the target date.
func (f *Forecaster) futureState(target time.Time) model.Account {
	futureBalance := f.account.Balance
	future := make([]model.Transaction, len(f.account.Transactions))
	copy(future, f.account.Transactions)

	for _, op := range f.forecast.Operations {
		for _, txn := range f.materialize(op.Range, target) {
			future = append(future, txn)
			futureBalance += txn.Amount.Value
		}
	}
	for _, budget := range f.forecast.Budgets {
		for _, txn := range f.materialize(budget.Range, target) {
			future = append(future, txn)
			futureBalance += txn.Amount.Value
		}
	}

	state := f.account
	state.Balance = futureBalance
	state.BalanceDate = target
	state.Transactions = future
	return state
}

// materialize spreads each upcoming occurrence of the range linearly over its
// days, one synthetic transaction per day, from the day after the balance
// date through the target date.
func (f *Forecaster) materialize(rng operation.Range, target time.Time) []model.Transaction {
	balance := f.account.BalanceDate

	var txns []model.Transaction
	for occurrence := range rng.Interval.Iterate(balance) {
		if occurrence.IsFuture(target) {
			break
		}
		if occurrence.IsExpired(balance) {
			continue
		}

		perDay := rng.Amount.Value / float64(occurrence.TotalDays())
		from := occurrence.StartDate()
		if earliest := interval.AddDays(balance, 1); from.Before(earliest) {
			from = earliest
		}
		to := occurrence.LastDate()
		if to.After(target) {
			to = target
		}
		for day := from; !day.After(to); day = interval.AddDays(day, 1) {
			f.nextID++
			txns = append(txns, model.Transaction{
				ID:          f.nextID,
				Date:        day,
				Description: rng.Description,
				Amount:      model.NewAmount(perDay, rng.Amount.Currency),
				Category:    rng.Category,
			})
		}
	}
	return txns
}
