package operation

import "github.com/cashcast/cashcast/internal/model"

// Categorize assigns categories to transactions by matching them against the
// planned operations, in order: the first operation whose matcher agrees on
// description, amount and date window lends its category. Category equality
// itself is deliberately not required, since the transactions being filed are
// typically still uncategorized. The input slice is not modified.
func Categorize(txns []model.Transaction, planned []PlannedOperation) []model.Transaction {
	categorized := make([]model.Transaction, len(txns))
	copy(categorized, txns)

	for i, txn := range categorized {
		for _, op := range planned {
			m := op.Matcher()
			if m.MatchDescription(txn) && m.MatchAmount(txn) && m.MatchDateRange(txn) {
				categorized[i].Category = op.Category
				break
			}
		}
	}
	return categorized
}
