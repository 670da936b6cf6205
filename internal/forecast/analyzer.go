package forecast

import (
	"fmt"
	"time"

	"github.com/cashcast/cashcast/internal/common"
	"github.com/cashcast/cashcast/internal/interval"
	"github.com/cashcast/cashcast/internal/model"
)

// BalancePoint is the account balance on one day of a projection.
type BalancePoint struct {
	Date    time.Time
	Balance float64
}

// BalanceSeries computes the day-by-day balance evolution between from and
// to, inclusive, reconstructing past days and projecting future ones.
func BalanceSeries(account model.Account, f Forecast, from, to time.Time) ([]BalancePoint, error) {
	if from.After(to) {
		return nil, fmt.Errorf("%w: series start %s is after end %s",
			common.ErrInvalidConfig, from.Format(time.DateOnly), to.Format(time.DateOnly))
	}

	forecaster := NewForecaster(account, f)
	points := make([]BalancePoint, 0, interval.DaysBetween(from, to)+1)
	for day := from; !day.After(to); day = interval.AddDays(day, 1) {
		points = append(points, BalancePoint{Date: day, Balance: forecaster.At(day).Balance})
	}
	return points, nil
}
