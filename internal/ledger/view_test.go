package ledger

import (
	"testing"
	"time"

	"github.com/dompet-app/dompet-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMonthView(t *testing.T) {
	ws := &domain.Workspace{ID: uuid.New(), Name: "Personal", Currency: "USD", Timezone: "UTC"}
	cash := domain.Account{ID: uuid.New(), WorkspaceID: ws.ID, Name: "Cash", Type: domain.AccountTypeCash, InitialBalance: decimal.NewFromInt(100000)}
	food := domain.Category{ID: uuid.New(), WorkspaceID: ws.ID, Name: "Food", Type: domain.TransactionTypeExpense, Icon: "fast-food-outline", Color: "#FF6B6B"}
	salary := domain.Category{ID: uuid.New(), WorkspaceID: ws.ID, Name: "Salary", Type: domain.TransactionTypeIncome, Icon: "cash-outline", Color: "#2ECC71"}

	skipped := excluded(tx(domain.TransactionTypeExpense, 999, "", "Cash", day(2025, time.March, 10)))
	txns := []domain.Transaction{
		tx(domain.TransactionTypeExpense, 20000, "Food", "Cash", day(2025, time.March, 5)),
		tx(domain.TransactionTypeIncome, 500000, "Salary", "Cash", day(2025, time.March, 1)),
		skipped,
		tx(domain.TransactionTypeExpense, 1000, "Food", "Old Wallet", day(2025, time.February, 20)),
	}
	loadedAt := time.Date(2025, time.March, 11, 0, 0, 0, 0, time.UTC)
	snapshot := &domain.LedgerSnapshot{
		Workspace:    ws,
		Accounts:     []domain.Account{cash},
		Categories:   []domain.Category{food, salary},
		Transactions: txns,
		LoadedAt:     loadedAt,
	}

	view := BuildMonthView(snapshot, 2025, time.March, nil)

	assert.Equal(t, ws.ID.String(), view.WorkspaceID)
	assert.Equal(t, loadedAt, view.SnapshotLoadedAt)
	assert.True(t, decimal.NewFromInt(500000).Equal(view.Period.Income))
	assert.True(t, decimal.NewFromInt(20000).Equal(view.Period.Expense))
	assert.True(t, decimal.NewFromInt(480000).Equal(view.Period.Balance))
	assert.True(t, decimal.NewFromInt(21000).Equal(view.AllTime.Expense))

	require.Len(t, view.Accounts, 1)
	assert.True(t, decimal.NewFromInt(580000).Equal(view.Accounts[0].Balance))
	assert.Equal(t, "cash-outline", view.Accounts[0].Display.Icon)
	assert.True(t, decimal.NewFromInt(580000).Equal(view.TotalBalance))

	require.Len(t, view.TopExpenses.Items, 1)
	assert.Equal(t, "Food", view.TopExpenses.Items[0].Category)
	assert.Equal(t, "fast-food-outline", view.TopExpenses.Items[0].Display.Icon)
	assert.Zero(t, view.TopExpenses.Overflow)
	require.Len(t, view.TopIncome.Items, 1)

	assert.Len(t, view.Series.Expense, 31)

	require.Len(t, view.Transactions, 3)
	assert.Equal(t, skipped.ID, view.Transactions[0].ID, "newest first, excluded rows listed")
	assert.Equal(t, Display{Icon: "pricetag-outline", Color: "#e74c3c"}, view.Transactions[0].CategoryDisplay)
	assert.Equal(t, "cash-outline", view.Transactions[0].AccountDisplay.Icon)

	assert.Equal(t, 4, view.Quality.Total)
	assert.Equal(t, 1, view.Quality.Excluded)
}

func TestBuildMonthView_EmptySnapshot(t *testing.T) {
	view := BuildMonthView(nil, 2024, time.February, nil)

	assert.True(t, view.Period.Income.IsZero())
	assert.True(t, view.TotalBalance.IsZero())
	assert.Empty(t, view.Accounts)
	assert.Empty(t, view.Transactions)
	assert.Len(t, view.Series.Income, 29)
	assert.Equal(t, uuid.Nil.String(), view.WorkspaceID)
}

func TestBuildMonthView_AdjacentMonths(t *testing.T) {
	january := BuildMonthView(nil, 2026, time.January, nil)
	assert.Equal(t, MonthRef{Year: 2025, Month: time.December}, january.Previous)
	assert.Equal(t, MonthRef{Year: 2026, Month: time.February}, january.Next)

	december := BuildMonthView(nil, 2025, time.December, nil)
	assert.Equal(t, MonthRef{Year: 2025, Month: time.November}, december.Previous)
	assert.Equal(t, MonthRef{Year: 2026, Month: time.January}, december.Next)
}
