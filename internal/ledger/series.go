package ledger

import (
	"time"

	"github.com/dompet-app/dompet-backend/internal/domain"
	"github.com/dompet-app/dompet-backend/internal/util"
	"github.com/shopspring/decimal"
)

// Point is one day of a chart series
type Point struct {
	Day   int             `json:"day"`
	Value decimal.Decimal `json:"value"`
}

// DailySeries holds dense per-day income and expense values for a month
type DailySeries struct {
	Year    int        `json:"year"`
	Month   time.Month `json:"month"`
	Income  []Point    `json:"income"`
	Expense []Point    `json:"expense"`
}

// BuildDailySeries buckets counted transactions into one point per calendar
// day of the month for each type, including days with no activity.
// Excluded and undated transactions are always omitted.
func BuildDailySeries(txns []domain.Transaction, year int, month time.Month, opts ...Option) DailySeries {
	o := buildOptions(opts)
	days := util.DaysInMonth(year, month)

	series := DailySeries{
		Year:    year,
		Month:   month,
		Income:  make([]Point, days),
		Expense: make([]Point, days),
	}
	for i := 0; i < days; i++ {
		series.Income[i] = Point{Day: i + 1, Value: decimal.Zero}
		series.Expense[i] = Point{Day: i + 1, Value: decimal.Zero}
	}

	for i := range txns {
		tx := &txns[i]
		if !InPeriod(tx, year, month, o.loc) {
			continue
		}
		amount, ok := contribution(tx)
		if !ok {
			continue
		}
		idx := NormalizeDate(*tx.Date, o.loc).Day() - 1
		switch tx.Type {
		case domain.TransactionTypeIncome:
			series.Income[idx].Value = series.Income[idx].Value.Add(amount)
		case domain.TransactionTypeExpense:
			series.Expense[idx].Value = series.Expense[idx].Value.Add(amount)
		}
	}

	return series
}
