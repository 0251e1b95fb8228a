package ledger

import (
	"math/rand"
	"testing"
	"time"

	"github.com/dompet-app/dompet-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTotalByType_NeverNegative(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for i := 0; i < 200; i++ {
		txns := randomTransactions(r, r.Intn(60))

		income := TotalByType(txns, domain.TransactionTypeIncome)
		expense := TotalByType(txns, domain.TransactionTypeExpense)

		assert.False(t, income.IsNegative(), "income total must not be negative")
		assert.False(t, expense.IsNegative(), "expense total must not be negative")
	}
}

func TestBalance_IsIncomeMinusExpense(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		txns := randomTransactions(r, r.Intn(60))

		want := TotalByType(txns, domain.TransactionTypeIncome).
			Sub(TotalByType(txns, domain.TransactionTypeExpense))
		assert.True(t, want.Equal(Balance(txns)), "balance %s != %s", Balance(txns), want)
	}
}

func TestExcludedTransaction_EqualsRemoval(t *testing.T) {
	r := rand.New(rand.NewSource(99))
	accounts := testAccounts()

	for i := 0; i < 100; i++ {
		txns := randomTransactions(r, 1+r.Intn(40))
		for j := range txns {
			txns[j].ExcludeFromCalculations = false
		}
		idx := r.Intn(len(txns))

		withFlag := make([]domain.Transaction, len(txns))
		copy(withFlag, txns)
		withFlag[idx].ExcludeFromCalculations = true

		removed := append(append([]domain.Transaction{}, txns[:idx]...), txns[idx+1:]...)

		for _, typ := range []domain.TransactionType{domain.TransactionTypeIncome, domain.TransactionTypeExpense} {
			assert.True(t, TotalByType(withFlag, typ).Equal(TotalByType(removed, typ)))
			assert.Equal(t, GroupByCategoryTotals(removed, typ).Entries(), GroupByCategoryTotals(withFlag, typ).Entries())
		}
		assert.True(t, Balance(withFlag).Equal(Balance(removed)))
		assert.True(t, TotalBalanceAcrossAccounts(accounts, withFlag).Equal(TotalBalanceAcrossAccounts(accounts, removed)))
		for _, a := range accounts {
			assert.True(t, AccountBalance(a, withFlag).Equal(AccountBalance(a, removed)))
		}

		for m := time.January; m <= time.December; m++ {
			assert.Equal(t, BuildDailySeries(removed, 2024, m), BuildDailySeries(withFlag, 2024, m))
		}

		listed := FilterByPeriod(withFlag, 2024, monthOf(withFlag[idx]), IncludeExcluded())
		if withFlag[idx].Date != nil {
			assert.Contains(t, ids(listed), withFlag[idx].ID)
		}
	}
}

func TestAccountBalances_NoDoubleCountingOrDrops(t *testing.T) {
	r := rand.New(rand.NewSource(2024))
	accounts := testAccounts()
	known := map[string]bool{}
	initial := decimal.Zero
	for _, a := range accounts {
		known[a.Name] = true
		initial = initial.Add(a.InitialBalance)
	}

	for i := 0; i < 200; i++ {
		txns := randomTransactions(r, r.Intn(80))

		var matched []domain.Transaction
		for _, tx := range txns {
			if known[tx.Account.Name] {
				matched = append(matched, tx)
			}
		}

		sum := decimal.Zero
		for _, a := range accounts {
			sum = sum.Add(AccountBalance(a, txns))
		}
		want := Balance(matched).Add(initial)

		assert.True(t, want.Equal(sum), "sum of account balances %s != %s", sum, want)
		assert.True(t, want.Equal(TotalBalanceAcrossAccounts(accounts, txns)))
	}
}

func TestAggregates_Idempotent(t *testing.T) {
	r := rand.New(rand.NewSource(5))
	txns := randomTransactions(r, 50)
	before := make([]domain.Transaction, len(txns))
	copy(before, txns)
	accounts := testAccounts()

	assert.Equal(t, TotalByType(txns, domain.TransactionTypeIncome), TotalByType(txns, domain.TransactionTypeIncome))
	assert.Equal(t, Balance(txns), Balance(txns))
	assert.Equal(t, AccountBalances(accounts, txns), AccountBalances(accounts, txns))
	assert.Equal(t, GroupByCategoryTotals(txns, domain.TransactionTypeExpense), GroupByCategoryTotals(txns, domain.TransactionTypeExpense))
	assert.Equal(t,
		TopCategories(GroupByCategoryTotals(txns, domain.TransactionTypeExpense), 3),
		TopCategories(GroupByCategoryTotals(txns, domain.TransactionTypeExpense), 3))
	assert.Equal(t, BuildDailySeries(txns, 2024, time.March), BuildDailySeries(txns, 2024, time.March))
	assert.Equal(t, FilterByPeriod(txns, 2024, time.May), FilterByPeriod(txns, 2024, time.May))
	assert.Equal(t, before, txns, "input must not be mutated")
}

func TestScenario_CashAccountMonth(t *testing.T) {
	cash := domain.Account{ID: uuid.New(), Name: "Cash", Type: domain.AccountTypeCash, InitialBalance: decimal.NewFromInt(100000)}
	skipped := excluded(tx(domain.TransactionTypeExpense, 999, "", "Cash", day(2025, time.March, 10)))
	txns := []domain.Transaction{
		tx(domain.TransactionTypeExpense, 20000, "Food", "Cash", day(2025, time.March, 5)),
		tx(domain.TransactionTypeIncome, 500000, "Salary", "Cash", day(2025, time.March, 1)),
		skipped,
	}

	assert.True(t, decimal.NewFromInt(500000).Equal(TotalByType(txns, domain.TransactionTypeIncome)))
	assert.True(t, decimal.NewFromInt(20000).Equal(TotalByType(txns, domain.TransactionTypeExpense)))
	assert.True(t, decimal.NewFromInt(480000).Equal(Balance(txns)))
	assert.True(t, decimal.NewFromInt(580000).Equal(AccountBalance(cash, txns)))

	series := BuildDailySeries(txns, 2025, time.March)
	assert.True(t, series.Expense[9].Value.IsZero(), "excluded expense must not reach the chart")
	assert.True(t, decimal.NewFromInt(20000).Equal(series.Expense[4].Value))
	assert.True(t, decimal.NewFromInt(500000).Equal(series.Income[0].Value))

	assert.Len(t, FilterByPeriod(txns, 2025, time.March), 2)

	snapshot := &domain.LedgerSnapshot{Accounts: []domain.Account{cash}, Transactions: txns}
	found, ok := snapshot.FindTransaction(skipped.ID)
	require.True(t, ok)
	assert.True(t, found.ExcludeFromCalculations)
}

func TestScenario_DeletedAccountReference(t *testing.T) {
	accounts := testAccounts()
	txns := []domain.Transaction{
		tx(domain.TransactionTypeIncome, 3000, "Salary", "Wallet", day(2025, time.June, 2)),
		tx(domain.TransactionTypeExpense, 700, "Food", "Old Wallet", day(2025, time.June, 3)),
	}

	assert.True(t, decimal.NewFromInt(700).Equal(TotalByType(txns, domain.TransactionTypeExpense)))
	assert.True(t, decimal.NewFromInt(2300).Equal(Balance(txns)))

	for _, a := range accounts {
		withOld := AccountBalance(a, txns)
		withoutOld := AccountBalance(a, txns[:1])
		assert.True(t, withOld.Equal(withoutOld), "account %s must ignore Old Wallet", a.Name)
	}
	// initial 26000 plus the 3000 income on Wallet
	assert.True(t, decimal.NewFromInt(29000).Equal(TotalBalanceAcrossAccounts(accounts, txns)))
}

func TestContribution_BadRowsCountZero(t *testing.T) {
	d := day(2025, time.January, 1)
	txns := []domain.Transaction{
		{Type: domain.TransactionTypeIncome, Amount: decimal.NullDecimal{}, Account: domain.NameRef("Cash"), Date: d},
		{Type: domain.TransactionTypeIncome, Amount: amount(-50), Account: domain.NameRef("Cash"), Date: d},
		{Type: "transfer", Amount: amount(80), Account: domain.NameRef("Cash"), Date: d},
		{Type: domain.TransactionTypeExpense, Amount: amount(10), Account: domain.NameRef("Cash")},
	}

	assert.True(t, TotalByType(txns, domain.TransactionTypeIncome).IsZero())
	assert.True(t, decimal.NewFromInt(10).Equal(TotalByType(txns, domain.TransactionTypeExpense)), "undated rows still count all-time")
	assert.True(t, TotalByType(txns, "transfer").IsZero())
	assert.True(t, TotalByType(nil, domain.TransactionTypeIncome).IsZero())
	assert.True(t, Balance(nil).IsZero())
}

func TestAccountBalances_DuplicateNamesFirstMatchWins(t *testing.T) {
	first := domain.Account{ID: uuid.New(), Name: "Wallet", InitialBalance: decimal.NewFromInt(10)}
	second := domain.Account{ID: uuid.New(), Name: "Wallet", InitialBalance: decimal.NewFromInt(20)}
	txns := []domain.Transaction{tx(domain.TransactionTypeIncome, 5, "Salary", "Wallet", nil)}

	results := AccountBalances([]domain.Account{first, second}, txns)
	require.Len(t, results, 2)
	assert.True(t, decimal.NewFromInt(15).Equal(results[0].Balance))
	assert.True(t, decimal.NewFromInt(20).Equal(results[1].Balance))
	assert.True(t, decimal.NewFromInt(35).Equal(TotalBalanceAcrossAccounts([]domain.Account{first, second}, txns)))
}

func TestGroupByCategoryTotals_OrderAndLiteralKeys(t *testing.T) {
	txns := []domain.Transaction{
		tx(domain.TransactionTypeExpense, 5, "Transport", "Cash", nil),
		tx(domain.TransactionTypeExpense, 10, "", "Cash", nil),
		tx(domain.TransactionTypeExpense, 7, "Transport", "Cash", nil),
		tx(domain.TransactionTypeIncome, 100, "Salary", "Cash", nil),
		tx(domain.TransactionTypeExpense, 3, "Deleted Category", "Cash", nil),
	}

	totals := GroupByCategoryTotals(txns, domain.TransactionTypeExpense)
	require.Equal(t, 3, totals.Len())

	entries := totals.Entries()
	assert.Equal(t, "Transport", entries[0].Category)
	assert.Equal(t, "", entries[1].Category)
	assert.Equal(t, "Deleted Category", entries[2].Category)

	transport, ok := totals.Get("Transport")
	require.True(t, ok)
	assert.True(t, decimal.NewFromInt(12).Equal(transport))
	assert.True(t, decimal.NewFromInt(25).Equal(totals.Total()))

	_, ok = totals.Get("Salary")
	assert.False(t, ok)
}

func TestTopCategories(t *testing.T) {
	var txns []domain.Transaction
	for i, name := range []string{"A", "B", "C", "D", "E", "F", "G"} {
		txns = append(txns, tx(domain.TransactionTypeExpense, int64(10+i%3), name, "Cash", nil))
	}
	totals := GroupByCategoryTotals(txns, domain.TransactionTypeExpense)

	t.Run("default limit with overflow", func(t *testing.T) {
		top := TopCategories(totals, 0)
		require.Len(t, top.Items, DefaultTopCategoriesLimit)
		assert.Equal(t, 2, top.Overflow)
		// amounts: A10 B11 C12 D10 E11 F12 G10
		assert.Equal(t, []string{"C", "F", "B", "E", "A"}, names(top.Items))
	})

	t.Run("limit above size", func(t *testing.T) {
		top := TopCategories(totals, 10)
		assert.Len(t, top.Items, 7)
		assert.Zero(t, top.Overflow)
	})

	t.Run("empty", func(t *testing.T) {
		top := TopCategories(GroupByCategoryTotals(nil, domain.TransactionTypeIncome), 5)
		assert.Empty(t, top.Items)
		assert.Zero(t, top.Overflow)
	})
}

func names(items []CategoryAmount) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.Category
	}
	return out
}

func ids(txns []domain.Transaction) []uuid.UUID {
	out := make([]uuid.UUID, len(txns))
	for i, t := range txns {
		out[i] = t.ID
	}
	return out
}

func monthOf(t domain.Transaction) time.Month {
	if t.Date == nil {
		return time.January
	}
	return t.Date.Month()
}
