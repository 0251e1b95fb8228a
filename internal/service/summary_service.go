package service

import (
	"context"
	"time"

	"github.com/dompet-app/dompet-backend/internal/domain"
	"github.com/dompet-app/dompet-backend/internal/ledger"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

// SummaryService computes read-only ledger views from fresh snapshots
type SummaryService struct {
	store *LedgerStore
}

// NewSummaryService creates a new SummaryService
func NewSummaryService(store *LedgerStore) *SummaryService {
	return &SummaryService{store: store}
}

// GetMonthView returns the month screen for a workspace
func (s *SummaryService) GetMonthView(ctx context.Context, workspaceID uuid.UUID, year int, month time.Month) (*ledger.MonthView, error) {
	snapshot, err := s.store.Load(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	view := ledger.BuildMonthView(snapshot, year, month, nil)
	logQuality(workspaceID, view.Quality)
	return &view, nil
}

// GetDailySeries returns the income and expense chart series for a month
func (s *SummaryService) GetDailySeries(ctx context.Context, workspaceID uuid.UUID, year int, month time.Month) (*ledger.DailySeries, error) {
	snapshot, err := s.store.Load(ctx, workspaceID)
	if err != nil {
		return nil, err
	}
	series := ledger.BuildDailySeries(snapshot.Transactions, year, month, ledger.InLocation(snapshot.Workspace.Location()))
	return &series, nil
}

// CategoryTotalsResult is the full category breakdown of one type
type CategoryTotalsResult struct {
	Type  domain.TransactionType  `json:"type"`
	Items []ledger.CategoryAmount `json:"items"`
	Total decimal.Decimal         `json:"total"`
}

// GetCategoryTotals groups a month's transactions of one type by category name.
// A zero year or month groups every counted transaction.
func (s *SummaryService) GetCategoryTotals(ctx context.Context, workspaceID uuid.UUID, typ domain.TransactionType, year int, month time.Month) (*CategoryTotalsResult, error) {
	if !typ.Valid() {
		return nil, domain.ErrInvalidTransactionType
	}
	snapshot, err := s.store.Load(ctx, workspaceID)
	if err != nil {
		return nil, err
	}

	txns := snapshot.Transactions
	if year != 0 && month != 0 {
		txns = ledger.FilterByPeriod(txns, year, month, ledger.InLocation(snapshot.Workspace.Location()))
	}
	totals := ledger.GroupByCategoryTotals(txns, typ)
	return &CategoryTotalsResult{Type: typ, Items: totals.Entries(), Total: totals.Total()}, nil
}

// AccountBalancesResult lists accounts with their all-time balances
type AccountBalancesResult struct {
	Accounts     []ledger.AccountView `json:"accounts"`
	TotalBalance decimal.Decimal      `json:"totalBalance"`
}

// GetAccountBalances returns every account with its balance and the total
func (s *SummaryService) GetAccountBalances(ctx context.Context, workspaceID uuid.UUID) (*AccountBalancesResult, error) {
	snapshot, err := s.store.Load(ctx, workspaceID)
	if err != nil {
		return nil, err
	}

	balances := ledger.AccountBalances(snapshot.Accounts, snapshot.Transactions)
	result := &AccountBalancesResult{
		Accounts:     make([]ledger.AccountView, len(balances)),
		TotalBalance: decimal.Zero,
	}
	for i, b := range balances {
		result.Accounts[i] = ledger.AccountView{
			Account: b.Account,
			Balance: b.Balance,
			Display: ledger.AccountTypeDisplay(b.Account.Type),
		}
		result.TotalBalance = result.TotalBalance.Add(b.Balance)
	}
	return result, nil
}

func logQuality(workspaceID uuid.UUID, q ledger.Quality) {
	q.Log(log.With().Str("workspace_id", workspaceID.String()).Logger())
}
