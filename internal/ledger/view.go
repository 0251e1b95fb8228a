package ledger

import (
	"sort"
	"time"

	"github.com/dompet-app/dompet-backend/internal/domain"
	"github.com/dompet-app/dompet-backend/internal/util"
	"github.com/shopspring/decimal"
)

// PeriodTotals holds income, expense and saving for a set of transactions
type PeriodTotals struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Balance decimal.Decimal `json:"balance"`
}

func totalsOf(txns []domain.Transaction) PeriodTotals {
	income := TotalByType(txns, domain.TransactionTypeIncome)
	expense := TotalByType(txns, domain.TransactionTypeExpense)
	return PeriodTotals{Income: income, Expense: expense, Balance: income.Sub(expense)}
}

// AccountView is an account with its all-time balance and display
type AccountView struct {
	domain.Account
	Balance decimal.Decimal `json:"balance"`
	Display Display         `json:"display"`
}

// CategoryView is a top-category entry with resolved display
type CategoryView struct {
	CategoryAmount
	Display Display `json:"display"`
}

// CategoryBreakdown is the top categories of one type
type CategoryBreakdown struct {
	Items    []CategoryView  `json:"items"`
	Overflow int             `json:"overflow"`
	Total    decimal.Decimal `json:"total"`
}

// TransactionView is a transaction with its resolved category and account display
type TransactionView struct {
	domain.Transaction
	CategoryDisplay Display `json:"categoryDisplay"`
	AccountDisplay  Display `json:"accountDisplay"`
}

// MonthRef names a calendar month. Month is 1-based.
type MonthRef struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
}

// MonthView is everything the month screen shows for one workspace
type MonthView struct {
	WorkspaceID      string            `json:"workspaceId"`
	Year             int               `json:"year"`
	Month            time.Month        `json:"month"`
	Previous         MonthRef          `json:"previous"`
	Next             MonthRef          `json:"next"`
	Period           PeriodTotals      `json:"period"`
	AllTime          PeriodTotals      `json:"allTime"`
	Accounts         []AccountView     `json:"accounts"`
	TotalBalance     decimal.Decimal   `json:"totalBalance"`
	TopExpenses      CategoryBreakdown `json:"topExpenses"`
	TopIncome        CategoryBreakdown `json:"topIncome"`
	Series           DailySeries       `json:"series"`
	Transactions     []TransactionView `json:"transactions"`
	Quality          Quality           `json:"quality"`
	SnapshotLoadedAt time.Time         `json:"snapshotLoadedAt"`
}

// BuildMonthView composes the period filter, aggregates, series and resolver
// for one month of a snapshot. A nil location means the workspace's own.
func BuildMonthView(snapshot *domain.LedgerSnapshot, year int, month time.Month, loc *time.Location) MonthView {
	if snapshot == nil {
		snapshot = &domain.LedgerSnapshot{}
	}
	if loc == nil {
		loc = snapshot.Workspace.Location()
	}

	all := snapshot.Transactions
	monthTxns := FilterByPeriod(all, year, month, InLocation(loc))
	listed := FilterByPeriod(all, year, month, InLocation(loc), IncludeExcluded())

	view := MonthView{
		WorkspaceID:      snapshot.WorkspaceID().String(),
		Year:             year,
		Month:            month,
		Period:           totalsOf(monthTxns),
		AllTime:          totalsOf(all),
		Series:           BuildDailySeries(all, year, month, InLocation(loc)),
		Quality:          Audit(all),
		SnapshotLoadedAt: snapshot.LoadedAt,
	}

	view.Previous.Year, view.Previous.Month = util.PreviousMonth(year, month)
	view.Next.Year, view.Next.Month = util.NextMonth(year, month)

	balances := AccountBalances(snapshot.Accounts, all)
	view.Accounts = make([]AccountView, len(balances))
	view.TotalBalance = decimal.Zero
	for i, b := range balances {
		view.Accounts[i] = AccountView{
			Account: b.Account,
			Balance: b.Balance,
			Display: AccountTypeDisplay(b.Account.Type),
		}
		view.TotalBalance = view.TotalBalance.Add(b.Balance)
	}

	view.TopExpenses = breakdown(monthTxns, domain.TransactionTypeExpense, snapshot.Categories)
	view.TopIncome = breakdown(monthTxns, domain.TransactionTypeIncome, snapshot.Categories)

	sort.SliceStable(listed, func(i, j int) bool {
		return listed[i].Date.After(*listed[j].Date)
	})
	view.Transactions = make([]TransactionView, len(listed))
	for i, tx := range listed {
		view.Transactions[i] = TransactionView{
			Transaction:     tx,
			CategoryDisplay: ResolveCategoryDisplay(tx.Category, tx.Type, snapshot.Categories),
			AccountDisplay:  ResolveAccountDisplay(tx.Account, snapshot.Accounts),
		}
	}

	return view
}

func breakdown(txns []domain.Transaction, typ domain.TransactionType, categories []domain.Category) CategoryBreakdown {
	totals := GroupByCategoryTotals(txns, typ)
	top := TopCategories(totals, DefaultTopCategoriesLimit)

	items := make([]CategoryView, len(top.Items))
	for i, item := range top.Items {
		items[i] = CategoryView{
			CategoryAmount: item,
			Display:        ResolveCategoryDisplay(domain.NameRef(item.Category), typ, categories),
		}
	}
	return CategoryBreakdown{Items: items, Overflow: top.Overflow, Total: totals.Total()}
}
