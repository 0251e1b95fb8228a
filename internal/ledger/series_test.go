package ledger

import (
	"testing"
	"time"

	"github.com/dompet-app/dompet-backend/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildDailySeries_PointCount(t *testing.T) {
	tests := []struct {
		name  string
		year  int
		month time.Month
		want  int
	}{
		{"leap february", 2024, time.February, 29},
		{"february", 2025, time.February, 28},
		{"century february", 1900, time.February, 28},
		{"four hundred february", 2000, time.February, 29},
		{"april", 2025, time.April, 30},
		{"december", 2025, time.December, 31},
		{"january", 2025, time.January, 31},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			series := BuildDailySeries(nil, tt.year, tt.month)
			require.Len(t, series.Income, tt.want)
			require.Len(t, series.Expense, tt.want)
			for i := 0; i < tt.want; i++ {
				assert.Equal(t, i+1, series.Income[i].Day)
				assert.Equal(t, i+1, series.Expense[i].Day)
				assert.True(t, series.Income[i].Value.IsZero())
			}
		})
	}
}

func TestBuildDailySeries_Buckets(t *testing.T) {
	txns := []domain.Transaction{
		tx(domain.TransactionTypeExpense, 100, "Food", "Cash", day(2024, time.February, 29)),
		tx(domain.TransactionTypeExpense, 50, "Food", "Cash", day(2024, time.February, 29)),
		tx(domain.TransactionTypeIncome, 900, "Salary", "Bank", day(2024, time.February, 1)),
		tx(domain.TransactionTypeIncome, 1, "Salary", "Bank", day(2024, time.March, 1)),
		tx(domain.TransactionTypeIncome, 2, "Salary", "Bank", nil),
		excluded(tx(domain.TransactionTypeExpense, 77, "Food", "Cash", day(2024, time.February, 2))),
		{Type: domain.TransactionTypeExpense, Amount: decimal.NullDecimal{}, Date: day(2024, time.February, 3)},
	}

	series := BuildDailySeries(txns, 2024, time.February)

	assert.Equal(t, 2024, series.Year)
	assert.Equal(t, time.February, series.Month)
	assert.True(t, decimal.NewFromInt(150).Equal(series.Expense[28].Value))
	assert.True(t, decimal.NewFromInt(900).Equal(series.Income[0].Value))
	assert.True(t, series.Expense[1].Value.IsZero())
	assert.True(t, series.Expense[2].Value.IsZero())

	sum := decimal.Zero
	for _, p := range series.Income {
		sum = sum.Add(p.Value)
	}
	assert.True(t, decimal.NewFromInt(900).Equal(sum))
}

func TestBuildDailySeries_Location(t *testing.T) {
	ts := time.Date(2025, time.January, 31, 22, 0, 0, 0, time.UTC)
	txns := []domain.Transaction{tx(domain.TransactionTypeIncome, 10, "Salary", "Bank", &ts)}
	plusThree := time.FixedZone("UTC+3", 3*60*60)

	jan := BuildDailySeries(txns, 2025, time.January, InLocation(plusThree))
	feb := BuildDailySeries(txns, 2025, time.February, InLocation(plusThree))

	assert.True(t, jan.Income[30].Value.IsZero())
	assert.True(t, decimal.NewFromInt(10).Equal(feb.Income[0].Value))
}
