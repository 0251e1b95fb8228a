package ledger

import (
	"github.com/dompet-app/dompet-backend/internal/domain"
	"github.com/rs/zerolog"
)

// Quality counts rows that aggregates silently skip or treat as zero
type Quality struct {
	Total          int `json:"total"`
	Excluded       int `json:"excluded"`
	MissingDate    int `json:"missingDate"`
	InvalidAmount  int `json:"invalidAmount"`
	NegativeAmount int `json:"negativeAmount"`
	UnknownType    int `json:"unknownType"`
}

// Issues is the number of rows with a data problem. Excluded rows are a user
// choice and do not count.
func (q Quality) Issues() int {
	return q.MissingDate + q.InvalidAmount + q.NegativeAmount + q.UnknownType
}

// Audit counts data-quality issues in a transaction set. A row with several
// problems is counted once per problem.
func Audit(txns []domain.Transaction) Quality {
	q := Quality{Total: len(txns)}
	for i := range txns {
		tx := &txns[i]
		if tx.ExcludeFromCalculations {
			q.Excluded++
		}
		if tx.Date == nil {
			q.MissingDate++
		}
		if !tx.Amount.Valid {
			q.InvalidAmount++
		} else if tx.Amount.Decimal.IsNegative() {
			q.NegativeAmount++
		}
		if !tx.Type.Valid() {
			q.UnknownType++
		}
	}
	return q
}

// Log writes a warning with the issue counts when any issue was found
func (q Quality) Log(logger zerolog.Logger) {
	if q.Issues() == 0 {
		return
	}
	logger.Warn().
		Int("total", q.Total).
		Int("missing_date", q.MissingDate).
		Int("invalid_amount", q.InvalidAmount).
		Int("negative_amount", q.NegativeAmount).
		Int("unknown_type", q.UnknownType).
		Msg("Transactions with data issues were skipped in aggregates")
}
