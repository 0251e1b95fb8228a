package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type defaultAccount struct {
	name string
	typ  AccountType
	note string
}

type defaultCategory struct {
	name  string
	typ   TransactionType
	icon  string
	color string
}

var defaultAccounts = []defaultAccount{
	{"Wallet", AccountTypeCash, "Physical wallet"},
	{"Bank", AccountTypeBank, "Bank account"},
	{"Cash", AccountTypeCash, "Cash on hand"},
	{"Credit Card", AccountTypeBank, "Credit card account"},
	{"Savings", AccountTypeBank, "Savings account"},
}

var defaultCategories = []defaultCategory{
	{"Food", TransactionTypeExpense, "restaurant-outline", "#e74c3c"},
	{"Transportation", TransactionTypeExpense, "car-outline", "#3498db"},
	{"Groceries", TransactionTypeExpense, "basket-outline", "#27ae60"},
	{"Shopping", TransactionTypeExpense, "bag-outline", "#9b59b6"},
	{"Entertainment", TransactionTypeExpense, "game-controller-outline", "#f39c12"},
	{"Healthcare", TransactionTypeExpense, "medical-outline", "#1abc9c"},
	{"Utilities", TransactionTypeExpense, "flash-outline", "#e67e22"},
	{"Rent", TransactionTypeExpense, "home-outline", "#95a5a6"},

	{"Salary", TransactionTypeIncome, "briefcase-outline", "#27ae60"},
	{"Freelance", TransactionTypeIncome, "laptop-outline", "#3498db"},
	{"Business", TransactionTypeIncome, "storefront-outline", "#e74c3c"},
	{"Investment", TransactionTypeIncome, "trending-up-outline", "#9b59b6"},
	{"Gift", TransactionTypeIncome, "gift-outline", "#f39c12"},
	{"Bonus", TransactionTypeIncome, "trophy-outline", "#1abc9c"},
}

// DefaultAccounts returns the accounts a fresh workspace starts with
func DefaultAccounts(workspaceID uuid.UUID) []*Account {
	accounts := make([]*Account, len(defaultAccounts))
	for i, d := range defaultAccounts {
		accounts[i] = &Account{
			WorkspaceID:    workspaceID,
			Name:           d.name,
			Type:           d.typ,
			InitialBalance: decimal.Zero,
			Note:           d.note,
		}
	}
	return accounts
}

// DefaultCategories returns the expense and income categories a fresh workspace starts with
func DefaultCategories(workspaceID uuid.UUID) []*Category {
	categories := make([]*Category, len(defaultCategories))
	for i, d := range defaultCategories {
		categories[i] = &Category{
			WorkspaceID: workspaceID,
			Name:        d.name,
			Type:        d.typ,
			Icon:        d.icon,
			Color:       d.color,
		}
	}
	return categories
}
