package ledger

import (
	"bytes"
	"testing"
	"time"

	"github.com/dompet-app/dompet-backend/internal/domain"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAudit(t *testing.T) {
	d := day(2025, time.January, 3)
	txns := []domain.Transaction{
		tx(domain.TransactionTypeIncome, 10, "Salary", "Bank", d),
		excluded(tx(domain.TransactionTypeExpense, 10, "Food", "Cash", d)),
		tx(domain.TransactionTypeExpense, 10, "Food", "Cash", nil),
		{Type: domain.TransactionTypeExpense, Amount: decimal.NullDecimal{}, Date: d},
		{Type: domain.TransactionTypeExpense, Amount: amount(-3), Date: d},
		{Type: "", Amount: amount(3)},
	}

	q := Audit(txns)

	assert.Equal(t, Quality{
		Total:          6,
		Excluded:       1,
		MissingDate:    2,
		InvalidAmount:  1,
		NegativeAmount: 1,
		UnknownType:    1,
	}, q)
	assert.Equal(t, 5, q.Issues())
	assert.Equal(t, Quality{}, Audit(nil))
}

func TestQuality_Log(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	Quality{Total: 3, Excluded: 2}.Log(logger)
	assert.Empty(t, buf.String())

	Quality{Total: 3, MissingDate: 1}.Log(logger)
	assert.Contains(t, buf.String(), `"level":"warn"`)
	assert.Contains(t, buf.String(), `"missing_date":1`)
}
