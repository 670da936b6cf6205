// Package forecast reconciles a forecast against an account's history and
// projects the account's balance into the past or future.
package forecast

import "github.com/cashcast/cashcast/internal/operation"

// Forecast is the set of planned operations and budgets describing expected
// money movements.
type Forecast struct {
	Operations []operation.PlannedOperation
	Budgets    []operation.Budget
}
