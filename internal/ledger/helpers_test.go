package ledger

import (
	"math/rand"
	"time"

	"github.com/dompet-app/dompet-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func amount(v int64) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.NewFromInt(v))
}

func day(year int, month time.Month, d int) *time.Time {
	t := time.Date(year, month, d, 12, 0, 0, 0, time.UTC)
	return &t
}

func tx(typ domain.TransactionType, amt int64, category, account string, date *time.Time) domain.Transaction {
	return domain.Transaction{
		ID:       uuid.New(),
		Type:     typ,
		Amount:   amount(amt),
		Category: domain.NameRef(category),
		Account:  domain.NameRef(account),
		Date:     date,
	}
}

func excluded(t domain.Transaction) domain.Transaction {
	t.ExcludeFromCalculations = true
	return t
}

// randomTransactions builds a messy set: unknown types, NULL and negative
// amounts, missing dates, excluded rows and names that match no account
func randomTransactions(r *rand.Rand, n int) []domain.Transaction {
	types := []domain.TransactionType{
		domain.TransactionTypeIncome,
		domain.TransactionTypeExpense,
		domain.TransactionTypeExpense,
		"transfer",
	}
	accounts := []string{"Wallet", "Bank", "Cash", "Old Wallet", ""}
	categories := []string{"Food", "Salary", "Bills", "", "Gone"}

	txns := make([]domain.Transaction, n)
	for i := range txns {
		t := domain.Transaction{
			ID:       uuid.New(),
			Type:     types[r.Intn(len(types))],
			Category: domain.NameRef(categories[r.Intn(len(categories))]),
			Account:  domain.NameRef(accounts[r.Intn(len(accounts))]),
		}
		switch r.Intn(10) {
		case 0:
			t.Amount = decimal.NullDecimal{}
		case 1:
			t.Amount = amount(-int64(r.Intn(10000)))
		default:
			t.Amount = decimal.NewNullDecimal(decimal.New(int64(r.Intn(1000000)), -2))
		}
		if r.Intn(8) != 0 {
			t.Date = day(2024, time.Month(1+r.Intn(12)), 1+r.Intn(28))
		}
		t.ExcludeFromCalculations = r.Intn(5) == 0
		txns[i] = t
	}
	return txns
}

func testAccounts() []domain.Account {
	return []domain.Account{
		{ID: uuid.New(), Name: "Wallet", Type: domain.AccountTypeCash, InitialBalance: decimal.NewFromInt(1000)},
		{ID: uuid.New(), Name: "Bank", Type: domain.AccountTypeBank, InitialBalance: decimal.NewFromInt(25000)},
		{ID: uuid.New(), Name: "Cash", Type: domain.AccountTypeCash, InitialBalance: decimal.Zero},
	}
}
