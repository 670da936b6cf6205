package service

import (
	"math"
	"strings"
	"time"

	"github.com/cashcast/cashcast/internal/interval"
	"github.com/cashcast/cashcast/internal/model"
	"github.com/cashcast/cashcast/internal/operation"
)

// MatchScore rates how well a transaction fits a specific iteration of an
// operation range, from 0 to 100. The components are weighted: amount 40,
// date 30, category 20, description 10. Within tolerance a component scores
// in full; beyond it the score decays linearly instead of dropping to zero,
// so near misses still rank above distant ones when breaking ties between
// candidate targets.
func MatchScore(txn model.Transaction, rng operation.Range, iteration time.Time, params operation.MatcherParams) float64 {
	score := 0.0

	if planned := math.Abs(rng.Amount.Value); planned > 0 {
		ratio := params.AmountTolerance.Ratio()
		if params.AmountTolerance.IsUnbounded() {
			score += 40
		} else if diff := math.Abs(math.Abs(txn.Amount.Value)-planned) / planned; diff <= ratio {
			score += 40
		} else {
			score += math.Max(0, 40*(1-(diff-ratio)))
		}
	}

	tolDays := params.DateToleranceDays
	if daysOff := abs(interval.DaysBetween(iteration, txn.Date)); daysOff <= tolDays {
		score += 30
	} else {
		// Drops to zero 30 days past the tolerance bound.
		score += math.Max(0, 30*(1-float64(daysOff-tolDays)/30))
	}

	if txn.Category == rng.Category {
		score += 20
	}

	if containsAnyHint(txn.Description, params.Hints) {
		score += 10
	}

	return score
}

func containsAnyHint(description string, hints []string) bool {
	if len(hints) == 0 {
		return false
	}
	description = strings.ToLower(description)
	for _, hint := range hints {
		if strings.Contains(description, strings.ToLower(hint)) {
			return true
		}
	}
	return false
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
