package operation

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/cashcast/cashcast/internal/common"
	"github.com/cashcast/cashcast/internal/interval"
	"github.com/cashcast/cashcast/internal/model"
)

// MatcherParams configures heuristic matching for an operation range.
type MatcherParams struct {
	// Hints are substrings looked up case-insensitively in transaction
	// descriptions. A heuristic match requires at least one hint to be
	// present; a matcher without hints never matches heuristically.
	Hints []string
	// AmountTolerance bounds the deviation from the range's amount.
	AmountTolerance Tolerance
	// DateToleranceDays widens each occurrence window on both sides.
	DateToleranceDays int
}

// DefaultOperationParams are the matching defaults for planned operations:
// five days of slack and five percent on the amount.
func DefaultOperationParams() MatcherParams {
	return MatcherParams{DateToleranceDays: 5, AmountTolerance: Ratio(0.05)}
}

// DefaultBudgetParams are the matching defaults for budgets: transactions
// must fall strictly inside the budget's own interval, at any amount.
func DefaultBudgetParams() MatcherParams {
	return MatcherParams{DateToleranceDays: 0, AmountTolerance: Unbounded()}
}

// Matcher decides whether historic transactions belong to an operation
// range's iterations. Links always take priority over heuristics: a linked
// transaction matches unconditionally and belongs to exactly the linked
// iteration. Matchers are immutable once built.
type Matcher struct {
	linkByTxn map[int64]model.OperationLink
	rng       Range
	params    MatcherParams
	links     []model.OperationLink
}

// NewMatcher builds a matcher over the given range. Every link's iteration
// date must be a valid iteration start of the range's interval; a link off
// the grid fails with ErrInvalidIteration.
func NewMatcher(rng Range, params MatcherParams, links ...model.OperationLink) (*Matcher, error) {
	byTxn := make(map[int64]model.OperationLink, len(links))
	for _, link := range links {
		if err := validateIteration(rng, link.IterationDate); err != nil {
			return nil, err
		}
		byTxn[link.TransactionID] = link
	}
	return &Matcher{
		rng:       rng,
		params:    params,
		links:     links,
		linkByTxn: byTxn,
	}, nil
}

func validateIteration(rng Range, iterationDate time.Time) error {
	current := rng.Interval.Current(iterationDate, 0, 0)
	if current == nil || !current.StartDate().Equal(iterationDate) {
		return fmt.Errorf("%w: %s is not an iteration of %q",
			common.ErrInvalidIteration, iterationDate.Format(time.DateOnly), rng.Description)
	}
	return nil
}

// Range returns the operation range being matched.
func (m *Matcher) Range() Range { return m.rng }

// Params returns the heuristic configuration.
func (m *Matcher) Params() MatcherParams { return m.params }

// Links returns the links scoped to this matcher.
func (m *Matcher) Links() []model.OperationLink { return m.links }

// IsLinked reports whether the transaction has a link to this range.
func (m *Matcher) IsLinked(txn model.Transaction) bool {
	_, ok := m.linkByTxn[txn.ID]
	return ok
}

// IterationFor returns the iteration date the transaction is linked to.
// Heuristic matches have no pinned iteration and report false.
func (m *Matcher) IterationFor(txn model.Transaction) (time.Time, bool) {
	link, ok := m.linkByTxn[txn.ID]
	if !ok {
		return time.Time{}, false
	}
	return link.IterationDate, true
}

// MatchDescription reports whether the description contains at least one
// hint, case-insensitively. Without hints there is nothing to recognize a
// transaction by, so this never passes.
func (m *Matcher) MatchDescription(txn model.Transaction) bool {
	if len(m.params.Hints) == 0 {
		return false
	}
	description := strings.ToLower(txn.Description)
	for _, hint := range m.params.Hints {
		if strings.Contains(description, strings.ToLower(hint)) {
			return true
		}
	}
	return false
}

// MatchAmount reports whether the transaction amount is within tolerance of
// the range's amount.
func (m *Matcher) MatchAmount(txn model.Transaction) bool {
	return m.params.AmountTolerance.Allows(txn.Amount.Value, m.rng.Amount.Value)
}

// MatchCategory reports whether the transaction is filed under the range's
// category.
func (m *Matcher) MatchCategory(txn model.Transaction) bool {
	return txn.Category == m.rng.Category
}

// MatchDateRange reports whether the transaction date falls inside an
// iteration widened by the date tolerance.
func (m *Matcher) MatchDateRange(txn model.Transaction) bool {
	return m.rng.Interval.Contains(txn.Date, m.params.DateToleranceDays, m.params.DateToleranceDays)
}

func (m *Matcher) outOfRange(txn model.Transaction) bool {
	tol := m.params.DateToleranceDays
	if txn.Date.Before(interval.AddDays(m.rng.Interval.StartDate(), -tol)) {
		return true
	}
	last := m.rng.Interval.LastDate()
	if last.Equal(interval.MaxDate) {
		// No slack past an unbounded recurrence; everything is before it anyway.
		tol = 0
	}
	return txn.Date.After(interval.AddDays(last, tol))
}

func (m *Matcher) matchHeuristic(txn model.Transaction) bool {
	return !m.outOfRange(txn) &&
		m.MatchDescription(txn) &&
		m.MatchAmount(txn) &&
		m.MatchCategory(txn) &&
		m.MatchDateRange(txn)
}

// Match reports whether the transaction belongs to this range, via link or
// heuristics.
func (m *Matcher) Match(txn model.Transaction) bool {
	if m.IsLinked(txn) {
		return true
	}
	return m.matchHeuristic(txn)
}

// Matches filters the pool down to matching transactions, preserving order.
func (m *Matcher) Matches(pool []model.Transaction) []model.Transaction {
	var matched []model.Transaction
	for _, txn := range pool {
		if m.Match(txn) {
			matched = append(matched, txn)
		}
	}
	return matched
}

// LatestMatching returns the matches whose own date lies within the date
// tolerance leading up to at: the transactions explaining the iteration
// current around that date.
func (m *Matcher) LatestMatching(at time.Time, pool []model.Transaction) []model.Transaction {
	var latest []model.Transaction
	for _, txn := range m.Matches(pool) {
		if !at.Before(txn.Date) && !at.After(interval.AddDays(txn.Date, m.params.DateToleranceDays)) {
			latest = append(latest, txn)
		}
	}
	return latest
}

// LateRanges returns iterations whose window has opened at the given date but
// which no transaction in the pool explains yet. Iterations already past
// their final tolerance bound are not reported; each matched transaction
// explains at most one iteration.
func (m *Matcher) LateRanges(at time.Time, pool []model.Transaction) []interval.Interval {
	tol := m.params.DateToleranceDays
	remaining := m.Matches(pool)

	var late []interval.Interval
	for occurrence := range m.rng.Interval.Iterate(interval.AddDays(at, -tol)) {
		if occurrence.IsFuture(at) {
			break
		}
		if !occurrence.Contains(at, 0, tol) {
			continue
		}
		if i := indexWithin(occurrence, remaining, tol, tol); i >= 0 {
			remaining = append(remaining[:i:i], remaining[i+1:]...)
		} else {
			late = append(late, occurrence)
		}
	}
	return late
}

// Anticipation pairs a future iteration with the transaction that already
// paid it early.
type Anticipation struct {
	Range       interval.Interval
	Transaction model.Transaction
}

// AnticipatedRanges returns future iterations whose pre-tolerance window
// already contains a matching transaction.
func (m *Matcher) AnticipatedRanges(at time.Time, pool []model.Transaction) []Anticipation {
	tol := m.params.DateToleranceDays
	remaining := m.LatestMatching(at, pool)

	var anticipated []Anticipation
	for occurrence := range m.rng.Interval.Iterate(interval.AddDays(at, -tol)) {
		if !occurrence.IsFuture(at) {
			continue
		}
		if !occurrence.Contains(at, tol, 0) {
			// Past the anticipation horizon.
			break
		}
		if i := indexWithin(occurrence, remaining, tol, 0); i >= 0 {
			anticipated = append(anticipated, Anticipation{Range: occurrence, Transaction: remaining[i]})
			remaining = append(remaining[:i:i], remaining[i+1:]...)
		}
	}
	return anticipated
}

func indexWithin(occurrence interval.Interval, pool []model.Transaction, beforeDays, afterDays int) int {
	for i, txn := range pool {
		if occurrence.Contains(txn.Date, beforeDays, afterDays) {
			return i
		}
	}
	return -1
}

// WithRange rebinds the matcher to a new range. Links reference iteration
// dates of the old range's grid, so they are preserved only when the range is
// unchanged and cleared otherwise.
func (m *Matcher) WithRange(rng Range) (*Matcher, error) {
	if rangeEqual(m.rng, rng) {
		return NewMatcher(rng, m.params, m.links...)
	}
	return NewMatcher(rng, m.params)
}

// WithParams returns a matcher with new heuristic parameters, keeping links.
func (m *Matcher) WithParams(params MatcherParams) (*Matcher, error) {
	return NewMatcher(m.rng, params, m.links...)
}

func rangeEqual(a, b Range) bool {
	return a.Description == b.Description &&
		a.Amount == b.Amount &&
		a.Category == b.Category &&
		reflect.DeepEqual(a.Interval, b.Interval)
}
