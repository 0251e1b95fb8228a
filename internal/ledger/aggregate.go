// Package ledger turns a workspace's transaction set into balances, period
// totals, category breakdowns and chart series.
//
// Every function here is pure and total: no I/O, no errors, no panics on bad
// rows. A transaction contributes nothing when it is excluded, has an unknown
// type, or carries a missing or negative amount. Use Audit to count those rows.
package ledger

import (
	"sort"

	"github.com/dompet-app/dompet-backend/internal/domain"
	"github.com/shopspring/decimal"
)

// DefaultTopCategoriesLimit is the number of categories TopCategories keeps
// when called with a non-positive limit
const DefaultTopCategoriesLimit = 5

// contribution returns the magnitude a transaction adds to aggregates
func contribution(tx *domain.Transaction) (decimal.Decimal, bool) {
	if tx.ExcludeFromCalculations || !tx.Type.Valid() || !tx.Amount.Valid {
		return decimal.Zero, false
	}
	if tx.Amount.Decimal.IsNegative() {
		return decimal.Zero, false
	}
	return tx.Amount.Decimal, true
}

// signedContribution is +amount for income and -amount for expense
func signedContribution(tx *domain.Transaction) (decimal.Decimal, bool) {
	amount, ok := contribution(tx)
	if !ok {
		return decimal.Zero, false
	}
	if tx.Type == domain.TransactionTypeExpense {
		return amount.Neg(), true
	}
	return amount, true
}

// TotalByType sums the amounts of counted transactions of the given type
func TotalByType(txns []domain.Transaction, typ domain.TransactionType) decimal.Decimal {
	total := decimal.Zero
	for i := range txns {
		tx := &txns[i]
		if tx.Type != typ {
			continue
		}
		if amount, ok := contribution(tx); ok {
			total = total.Add(amount)
		}
	}
	return total
}

// Balance is total income minus total expense, the "Saving" figure
func Balance(txns []domain.Transaction) decimal.Decimal {
	return TotalByType(txns, domain.TransactionTypeIncome).
		Sub(TotalByType(txns, domain.TransactionTypeExpense))
}

// AccountBalance is the account's initial balance plus the signed amounts of
// every counted transaction whose account name equals the account's name
func AccountBalance(account domain.Account, txns []domain.Transaction) decimal.Decimal {
	balance := account.InitialBalance
	for i := range txns {
		tx := &txns[i]
		if tx.Account.Name != account.Name {
			continue
		}
		if amount, ok := signedContribution(tx); ok {
			balance = balance.Add(amount)
		}
	}
	return balance
}

// AccountBalanceResult pairs an account with its calculated balance
type AccountBalanceResult struct {
	Account domain.Account  `json:"account"`
	Balance decimal.Decimal `json:"balance"`
}

// AccountBalances calculates the balance of every account in one pass.
//
// A transaction is attributed to at most one account: the first account in
// accounts whose name matches. When names are unique this equals calling
// AccountBalance per account. Transactions naming no known account are left
// out of every result.
func AccountBalances(accounts []domain.Account, txns []domain.Transaction) []AccountBalanceResult {
	results := make([]AccountBalanceResult, len(accounts))
	byName := make(map[string]int, len(accounts))
	for i, account := range accounts {
		results[i] = AccountBalanceResult{Account: account, Balance: account.InitialBalance}
		if _, taken := byName[account.Name]; !taken {
			byName[account.Name] = i
		}
	}

	for i := range txns {
		tx := &txns[i]
		idx, ok := byName[tx.Account.Name]
		if !ok {
			continue
		}
		if amount, ok := signedContribution(tx); ok {
			results[idx].Balance = results[idx].Balance.Add(amount)
		}
	}
	return results
}

// TotalBalanceAcrossAccounts sums the balances of all accounts in the workspace
func TotalBalanceAcrossAccounts(accounts []domain.Account, txns []domain.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, result := range AccountBalances(accounts, txns) {
		total = total.Add(result.Balance)
	}
	return total
}

// CategoryAmount is one entry of a category breakdown
type CategoryAmount struct {
	Category string          `json:"category"`
	Amount   decimal.Decimal `json:"amount"`
}

// CategoryTotals maps category names to summed amounts and remembers the order
// in which each name was first seen
type CategoryTotals struct {
	names   []string
	amounts map[string]decimal.Decimal
}

// Len returns the number of distinct category names
func (c CategoryTotals) Len() int {
	return len(c.names)
}

// Get returns the total for a category name
func (c CategoryTotals) Get(name string) (decimal.Decimal, bool) {
	amount, ok := c.amounts[name]
	return amount, ok
}

// Entries returns the totals in first-encounter order
func (c CategoryTotals) Entries() []CategoryAmount {
	entries := make([]CategoryAmount, len(c.names))
	for i, name := range c.names {
		entries[i] = CategoryAmount{Category: name, Amount: c.amounts[name]}
	}
	return entries
}

// Total sums every category
func (c CategoryTotals) Total() decimal.Decimal {
	total := decimal.Zero
	for _, name := range c.names {
		total = total.Add(c.amounts[name])
	}
	return total
}

// GroupByCategoryTotals accumulates counted transactions of the given type by
// the literal category name on each transaction. Unknown and empty names are
// valid keys.
func GroupByCategoryTotals(txns []domain.Transaction, typ domain.TransactionType) CategoryTotals {
	totals := CategoryTotals{amounts: make(map[string]decimal.Decimal)}
	for i := range txns {
		tx := &txns[i]
		if tx.Type != typ {
			continue
		}
		amount, ok := contribution(tx)
		if !ok {
			continue
		}
		name := tx.Category.Name
		current, seen := totals.amounts[name]
		if !seen {
			totals.names = append(totals.names, name)
		}
		totals.amounts[name] = current.Add(amount)
	}
	return totals
}

// TopCategoriesResult holds the highest categories and how many were left out
type TopCategoriesResult struct {
	Items    []CategoryAmount `json:"items"`
	Overflow int              `json:"overflow"`
}

// TopCategories sorts categories by amount, largest first, and keeps at most
// limit entries. Ties keep first-encounter order.
func TopCategories(totals CategoryTotals, limit int) TopCategoriesResult {
	if limit <= 0 {
		limit = DefaultTopCategoriesLimit
	}

	entries := totals.Entries()
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Amount.GreaterThan(entries[j].Amount)
	})

	result := TopCategoriesResult{Items: entries}
	if len(entries) > limit {
		result.Items = entries[:limit]
		result.Overflow = len(entries) - limit
	}
	return result
}
