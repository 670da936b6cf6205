package model

import (
	"fmt"
	"time"
)

// Transaction is a single historic operation on an account: money that
// actually moved. A negative amount is an expense, a positive one an income.
type Transaction struct {
	Date        time.Time
	Description string
	Category    Category
	Amount      Amount
	ID          int64
}

func (t Transaction) String() string {
	return fmt.Sprintf("%d - %s - %s - %s - %s",
		t.ID, t.Date.Format(time.DateOnly), t.Category, t.Description, t.Amount)
}

// Account is a snapshot of a bank account: its balance at a reference date
// and the ordered history of transactions leading up to it.
type Account struct {
	Name         string
	Currency     string
	BalanceDate  time.Time
	Transactions []Transaction
	Balance      float64
}

// TransactionsByID indexes the account history by transaction id.
func (a Account) TransactionsByID() map[int64]Transaction {
	byID := make(map[int64]Transaction, len(a.Transactions))
	for _, txn := range a.Transactions {
		byID[txn.ID] = txn
	}
	return byID
}
