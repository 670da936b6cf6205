package operation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cashcast/cashcast/internal/interval"
	"github.com/cashcast/cashcast/internal/model"
)

func plannedWithHints(t *testing.T, description string, amount float64, category model.Category, hints ...string) PlannedOperation {
	t.Helper()
	op, err := NewPlannedOperation(1, description, model.EUR(amount), category,
		interval.NewRecurringDay(interval.Date(2025, time.January, 1), interval.Months(1), time.Time{}))
	require.NoError(t, err)
	return op.WithMatcherParams(MatcherParams{
		Hints:             hints,
		AmountTolerance:   Ratio(0.05),
		DateToleranceDays: 5,
	})
}

func TestCategorize(t *testing.T) {
	planned := []PlannedOperation{
		plannedWithHints(t, "rent", -800, model.CategoryRent, "landlord"),
		plannedWithHints(t, "salary", 2500, model.CategorySalary, "acme corp"),
	}

	txns := []model.Transaction{
		{ID: 1, Date: interval.Date(2025, time.February, 1), Description: "VIR LANDLORD", Amount: model.EUR(-800)},
		{ID: 2, Date: interval.Date(2025, time.February, 2), Description: "ACME CORP PAYROLL", Amount: model.EUR(2500)},
		{ID: 3, Date: interval.Date(2025, time.February, 3), Description: "UNKNOWN SHOP", Amount: model.EUR(-12)},
	}

	got := Categorize(txns, planned)
	require.Len(t, got, 3)
	assert.Equal(t, model.CategoryRent, got[0].Category)
	assert.Equal(t, model.CategorySalary, got[1].Category)
	assert.Empty(t, got[2].Category, "no matching operation leaves the category alone")

	assert.Empty(t, txns[0].Category, "input is not modified")
}

func TestCategorize_IgnoresTransactionCategory(t *testing.T) {
	// The transactions being filed are usually uncategorized, so category
	// equality is not part of the match.
	planned := []PlannedOperation{plannedWithHints(t, "rent", -800, model.CategoryRent, "landlord")}
	txns := []model.Transaction{{
		ID: 1, Date: interval.Date(2025, time.February, 1),
		Description: "VIR LANDLORD", Category: model.CategoryOther, Amount: model.EUR(-800),
	}}

	got := Categorize(txns, planned)
	assert.Equal(t, model.CategoryRent, got[0].Category)
}
