package ledger

import (
	"time"

	"github.com/dompet-app/dompet-backend/internal/domain"
	"github.com/dompet-app/dompet-backend/internal/util"
)

// NormalizeDate returns midnight of t's calendar date in loc
func NormalizeDate(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc)
}

// InPeriod reports whether the transaction's calendar date falls in the given
// month. Transactions without a date are never in any period.
func InPeriod(tx *domain.Transaction, year int, month time.Month, loc *time.Location) bool {
	if tx.Date == nil {
		return false
	}
	if loc == nil {
		loc = time.UTC
	}
	start, end := util.MonthBounds(year, month, loc)
	d := tx.Date.In(loc)
	return !d.Before(start) && d.Before(end)
}

// FilterByPeriod returns the transactions dated in the given calendar month.
// Month is 1-based. Excluded transactions are dropped unless IncludeExcluded
// is passed. The input slice is not modified and input order is preserved.
func FilterByPeriod(txns []domain.Transaction, year int, month time.Month, opts ...Option) []domain.Transaction {
	o := buildOptions(opts)

	result := make([]domain.Transaction, 0, len(txns))
	for i := range txns {
		tx := &txns[i]
		if tx.ExcludeFromCalculations && !o.includeExcluded {
			continue
		}
		if !InPeriod(tx, year, month, o.loc) {
			continue
		}
		result = append(result, *tx)
	}
	return result
}
