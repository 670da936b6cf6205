// Package testutil provides fixture builders shared across the cashcast test
// suites: deterministic dates, accounts with seeded histories, and forecast
// entities that fail the test on invalid construction.
package testutil

import (
	"testing"
	"time"

	"github.com/cashcast/cashcast/internal/interval"
	"github.com/cashcast/cashcast/internal/model"
	"github.com/cashcast/cashcast/internal/operation"
)

// Day is shorthand for a UTC midnight date.
func Day(year int, month time.Month, day int) time.Time {
	return interval.Date(year, month, day)
}

// Txn builds a historic transaction.
func Txn(id int64, date time.Time, description string, amount float64) model.Transaction {
	return model.Transaction{
		ID:          id,
		Date:        date,
		Description: description,
		Amount:      model.EUR(amount),
	}
}

// CategorizedTxn builds a historic transaction with a category.
func CategorizedTxn(id int64, date time.Time, description string, amount float64, category model.Category) model.Transaction {
	txn := Txn(id, date, description, amount)
	txn.Category = category
	return txn
}

// Account builds an account snapshot with the given balance date and history.
func Account(balance float64, balanceDate time.Time, txns ...model.Transaction) model.Account {
	return model.Account{
		Name:         "checking",
		Currency:     "EUR",
		Balance:      balance,
		BalanceDate:  balanceDate,
		Transactions: txns,
	}
}

// MonthlyOp builds a persisted planned operation recurring monthly from
// start, never expiring.
func MonthlyOp(t *testing.T, id int64, description string, amount float64, start time.Time) operation.PlannedOperation {
	t.Helper()
	iv := interval.NewRecurringDay(start, interval.Months(1), interval.MaxDate)
	op, err := operation.NewPlannedOperation(id, description, model.EUR(amount), model.CategoryUncategorized, iv)
	if err != nil {
		t.Fatalf("building planned operation %q: %v", description, err)
	}
	return op
}

// OneOffOp builds a persisted single-day planned operation.
func OneOffOp(t *testing.T, id int64, description string, amount float64, date time.Time) operation.PlannedOperation {
	t.Helper()
	op, err := operation.NewPlannedOperation(id, description, model.EUR(amount), model.CategoryUncategorized, interval.NewDay(date))
	if err != nil {
		t.Fatalf("building planned operation %q: %v", description, err)
	}
	return op
}

// MonthlyBudget builds a persisted budget renewed every month, never
// expiring. The budget spans whole months starting at start.
func MonthlyBudget(id int64, description string, amount float64, category model.Category, start time.Time) operation.Budget {
	iv := interval.NewRecurring(
		interval.NewRange(start, interval.Months(1)),
		interval.Months(1),
		interval.MaxDate,
	)
	return operation.NewBudget(id, description, model.EUR(amount), category, iv)
}

// Link builds an operation link to a planned operation iteration.
func Link(txnID, opID int64, iteration time.Time) model.OperationLink {
	return model.OperationLink{
		TransactionID: txnID,
		TargetType:    model.LinkPlannedOperation,
		TargetID:      opID,
		IterationDate: iteration,
	}
}

// BudgetLink builds an operation link to a budget iteration.
func BudgetLink(txnID, budgetID int64, iteration time.Time) model.OperationLink {
	return model.OperationLink{
		TransactionID: txnID,
		TargetType:    model.LinkBudget,
		TargetID:      budgetID,
		IterationDate: iteration,
	}
}
