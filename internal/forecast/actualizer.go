package forecast

import (
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/cashcast/cashcast/internal/interval"
	"github.com/cashcast/cashcast/internal/model"
	"github.com/cashcast/cashcast/internal/operation"
)

// Actualizer advances a forecast past the iterations already explained by an
// account's history and its operation links. It is a pure computation over
// the snapshot it was built with: inputs are never mutated, and unexplained
// past iterations always surface as postponed one-off operations rather than
// silently disappearing.
//
// Entities dropped from the returned forecast (exhausted operations, fully
// consumed budgets) are the caller's signal to delete them from persistence.
// When one entity actualizes into several, exactly one keeps the persisted id
// (the advanced recurrence, or the renewed budget); the postponed one-off
// copies and the confined budget remainder come back unpersisted.
type Actualizer struct {
	linkedIterations map[int64]map[int64]struct{}
	plannedTxns      map[iterationKey][]int64
	budgetTxns       map[iterationKey][]int64
	txnDates         map[int64]time.Time
	account          model.Account
	links            []model.OperationLink
}

// iterationKey identifies one iteration of one target: the target's
// persisted id plus the iteration start as a Unix timestamp.
type iterationKey struct {
	targetID  int64
	iteration int64
}

// NewActualizer builds an actualizer over an account snapshot and the links
// scoped to it.
func NewActualizer(account model.Account, links []model.OperationLink) *Actualizer {
	a := &Actualizer{
		account:          account,
		links:            links,
		linkedIterations: make(map[int64]map[int64]struct{}),
		plannedTxns:      make(map[iterationKey][]int64),
		budgetTxns:       make(map[iterationKey][]int64),
		txnDates:         make(map[int64]time.Time, len(account.Transactions)),
	}
	for _, txn := range account.Transactions {
		a.txnDates[txn.ID] = txn.Date
	}
	for _, link := range links {
		key := iterationKey{targetID: link.TargetID, iteration: link.IterationDate.Unix()}
		switch link.TargetType {
		case model.LinkPlannedOperation:
			iterations, ok := a.linkedIterations[link.TargetID]
			if !ok {
				iterations = make(map[int64]struct{})
				a.linkedIterations[link.TargetID] = iterations
			}
			iterations[key.iteration] = struct{}{}
			a.plannedTxns[key] = append(a.plannedTxns[key], link.TransactionID)
		case model.LinkBudget:
			a.budgetTxns[key] = append(a.budgetTxns[key], link.TransactionID)
		}
	}
	slog.Debug("built actualizer indexes",
		"links", len(links),
		"planned_targets", len(a.linkedIterations),
		"budget_iterations", len(a.budgetTxns))
	return a
}

// Actualize resolves every past or current iteration of the forecast against
// the account history and returns the advanced forecast.
func (a *Actualizer) Actualize(f Forecast) (Forecast, error) {
	operations, err := a.actualizeOperations(f.Operations)
	if err != nil {
		return Forecast{}, err
	}
	return Forecast{
		Operations: operations,
		Budgets:    a.actualizeBudgets(f.Budgets),
	}, nil
}

// Planned operations

func (a *Actualizer) actualizeOperations(ops []operation.PlannedOperation) ([]operation.PlannedOperation, error) {
	sorted := make([]operation.PlannedOperation, len(ops))
	copy(sorted, ops)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Interval.StartDate().Before(sorted[j].Interval.StartDate())
	})

	var actualized []operation.PlannedOperation
	for _, op := range sorted {
		late := a.lateIterations(op)
		if len(late) > 0 {
			postponed, err := a.postponeLate(op, late)
			if err != nil {
				return nil, err
			}
			actualized = append(actualized, postponed...)
			continue
		}

		updated, keep, err := a.advanceOperation(op)
		if err != nil {
			return nil, err
		}
		if keep {
			actualized = append(actualized, updated)
		}
	}
	return actualized, nil
}

// lateIterations returns iteration starts that are due (strictly before the
// balance date, within the operation's tolerance window) with no link
// explaining them. Unpersisted operations cannot carry links and report none.
func (a *Actualizer) lateIterations(op operation.PlannedOperation) []time.Time {
	if op.ID == 0 {
		return nil
	}
	balance := a.account.BalanceDate
	tol := op.MatcherParams().DateToleranceDays
	linked := a.linkedIterations[op.ID]

	var late []time.Time
	for occurrence := range op.Interval.Iterate(interval.AddDays(balance, -tol)) {
		start := occurrence.StartDate()
		if !start.Before(balance) {
			break
		}
		if !occurrence.Contains(balance, 0, tol) {
			continue
		}
		if _, ok := linked[start.Unix()]; !ok {
			late = append(late, start)
		}
	}
	return late
}

// postponeLate defers each late iteration to the day after the balance date
// as a one-off occurrence, and advances the periodic operation past the
// postponed date. Nothing is dropped: a missed occurrence stays visible until
// a transaction or link explains it.
func (a *Actualizer) postponeLate(op operation.PlannedOperation, late []time.Time) ([]operation.PlannedOperation, error) {
	postponedDate := interval.AddDays(a.account.BalanceDate, 1)

	// Exactly one returned copy carries the persisted id: the advanced
	// recurrence when it survives, otherwise the first postponed one-off.
	result := make([]operation.PlannedOperation, 0, len(late)+1)
	for range late {
		postponed, err := op.WithInterval(interval.NewDay(postponedDate))
		if err != nil {
			return nil, fmt.Errorf("postponing %q: %w", op.Description, err)
		}
		result = append(result, postponed.WithID(0))
	}

	if next := op.Interval.Next(postponedDate); next != nil {
		advanced, err := op.WithInterval(op.Interval.WithStart(next.StartDate()))
		if err != nil {
			return nil, fmt.Errorf("advancing %q: %w", op.Description, err)
		}
		result = append(result, advanced)
	} else {
		result[0] = result[0].WithID(op.ID)
	}

	slog.Debug("postponed late iterations",
		"operation", op.Description,
		"late", len(late),
		"postponed_to", postponedDate.Format(time.DateOnly))
	return result, nil
}

// iterationActualized reports whether an iteration has been executed: either
// its date has passed, or a transaction linked to it has (the transaction
// happened early, before the planned date).
func (a *Actualizer) iterationActualized(opID int64, iteration time.Time) bool {
	balance := a.account.BalanceDate
	if !iteration.After(balance) {
		return true
	}
	key := iterationKey{targetID: opID, iteration: iteration.Unix()}
	for _, txnID := range a.plannedTxns[key] {
		if date, ok := a.txnDates[txnID]; ok && !date.After(balance) {
			return true
		}
	}
	return false
}

// advanceOperation moves the operation past its latest actualized iteration.
// The second return value is false when the operation is exhausted and should
// be dropped.
func (a *Actualizer) advanceOperation(op operation.PlannedOperation) (operation.PlannedOperation, bool, error) {
	if op.ID == 0 {
		return op, true, nil
	}
	balance := a.account.BalanceDate

	var lastActualized time.Time
	for iteration := range a.linkedIterations[op.ID] {
		date := time.Unix(iteration, 0).UTC()
		if a.iterationActualized(op.ID, date) && date.After(lastActualized) {
			lastActualized = date
		}
	}

	if lastActualized.IsZero() {
		if op.Interval.IsFuture(balance) {
			return op, true, nil
		}
		return a.advancePast(op, balance)
	}
	return a.advancePast(op, lastActualized)
}

func (a *Actualizer) advancePast(op operation.PlannedOperation, date time.Time) (operation.PlannedOperation, bool, error) {
	next := op.Interval.Next(date)
	if next == nil {
		slog.Debug("planned operation exhausted", "operation", op.Description)
		return operation.PlannedOperation{}, false, nil
	}
	advanced, err := op.WithInterval(op.Interval.WithStart(next.StartDate()))
	if err != nil {
		return operation.PlannedOperation{}, false, fmt.Errorf("advancing %q: %w", op.Description, err)
	}
	return advanced, true, nil
}

// Budgets

func (a *Actualizer) actualizeBudgets(budgets []operation.Budget) []operation.Budget {
	sorted := make([]operation.Budget, len(budgets))
	copy(sorted, budgets)
	sort.SliceStable(sorted, func(i, j int) bool {
		si, sj := sorted[i].Interval.StartDate(), sorted[j].Interval.StartDate()
		if !si.Equal(sj) {
			return si.Before(sj)
		}
		return sorted[i].Interval.LastDate().Before(sorted[j].Interval.LastDate())
	})

	balance := a.account.BalanceDate
	var actualized []operation.Budget
	for _, budget := range sorted {
		if budget.Interval.IsExpired(balance) {
			slog.Debug("discarding expired budget", "budget", budget.Description)
			continue
		}

		if current := budget.Interval.Current(balance, 0, 0); current != nil {
			// The renewal carries the budget's id forward; the confined
			// remainder only keeps it when no renewal follows.
			next := budget.Interval.Next(balance)
			if consumed, keep := a.consumeBudget(budget.WithInterval(current)); keep {
				if next != nil {
					consumed = consumed.WithID(0)
				}
				actualized = append(actualized, consumed)
			}
			if next != nil {
				actualized = append(actualized, budget.WithInterval(budget.Interval.WithStart(next.StartDate())))
			}
			continue
		}

		if budget.Interval.IsFuture(balance) {
			actualized = append(actualized, budget)
		}
	}
	return actualized
}

// consumeBudget reduces the budget's amount by the transactions linked to its
// current iteration and confines what remains to the days left in it. Each
// consumption is clamped so the remaining amount never crosses zero; a budget
// consumed to exactly zero is dropped. The second return value is false when
// nothing remains.
func (a *Actualizer) consumeBudget(budget operation.Budget) (operation.Budget, bool) {
	linked := a.budgetTxns[iterationKey{
		targetID:  budget.ID,
		iteration: budget.Interval.StartDate().Unix(),
	}]
	// Link sets have no inherent order; consume oldest transaction first so
	// clamping is deterministic.
	txnIDs := make([]int64, len(linked))
	copy(txnIDs, linked)
	sort.Slice(txnIDs, func(i, j int) bool { return txnIDs[i] < txnIDs[j] })

	byID := a.account.TransactionsByID()
	remaining := budget.Amount.Value
	for _, txnID := range txnIDs {
		txn, ok := byID[txnID]
		if !ok {
			continue
		}
		if txn.Amount.Value*remaining < 0 {
			// A transaction of the opposite sign does not consume the envelope.
			continue
		}
		remaining -= clampConsumed(txn.Amount.Value, remaining)
		if remaining == 0 {
			slog.Debug("budget fully consumed", "budget", budget.Description)
			return operation.Budget{}, false
		}
	}
	if remaining == 0 {
		return operation.Budget{}, false
	}

	slog.Debug("budget consumption",
		"budget", budget.Description,
		"consumed", budget.Amount.Value-remaining,
		"remaining", remaining)

	newStart := interval.AddDays(a.account.BalanceDate, 1)
	lastDate := budget.Interval.LastDate()
	if newStart.After(lastDate) {
		// The balance date was the iteration's final day.
		return operation.Budget{}, false
	}

	days := interval.DaysBetween(newStart, lastDate) + 1
	shrunk := budget.
		WithInterval(interval.NewRange(newStart, interval.Days(days))).
		WithAmount(model.NewAmount(remaining, budget.Amount.Currency))
	return shrunk, true
}

// clampConsumed limits how much of a transaction the budget absorbs so the
// remaining amount keeps its sign: min for positive envelopes, max for
// negative ones.
func clampConsumed(txnAmount, remaining float64) float64 {
	if remaining > 0 {
		return min(txnAmount, remaining)
	}
	return max(txnAmount, remaining)
}
