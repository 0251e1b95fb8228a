package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dompet-app/dompet-backend/internal/domain"
	"github.com/dompet-app/dompet-backend/internal/testutil"
	"github.com/dompet-app/dompet-backend/internal/websocket"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type ledgerFixture struct {
	hub          *websocket.Hub
	store        *LedgerStore
	workspaces   *testutil.MockWorkspaceRepository
	transactions *testutil.MockTransactionRepository
	txService    *TransactionService
	workspaceID  uuid.UUID
	userID       uuid.UUID
}

func newLedgerFixture(t *testing.T) *ledgerFixture {
	t.Helper()
	hub := websocket.NewHub()
	workspaceRepo, accountRepo, categoryRepo := newSeedingWorkspaceRepo()
	transactionRepo := testutil.NewMockTransactionRepository()

	f := &ledgerFixture{
		hub:          hub,
		store:        NewLedgerStore(workspaceRepo, accountRepo, categoryRepo, transactionRepo, hub),
		workspaces:   workspaceRepo,
		transactions: transactionRepo,
		txService:    NewTransactionService(transactionRepo, accountRepo, categoryRepo, workspaceRepo),
		workspaceID:  uuid.New(),
		userID:       uuid.New(),
	}
	f.txService.SetEventPublisher(hub)

	workspaceRepo.AddWorkspace(&domain.Workspace{ID: f.workspaceID, UserID: f.userID, Name: "W", Timezone: "UTC"})
	_, err := NewWorkspaceService(workspaceRepo).EnsureDefaults(context.Background(), f.workspaceID)
	require.NoError(t, err)
	return f
}

func (f *ledgerFixture) spend(t *testing.T, amount int64) *domain.Transaction {
	t.Helper()
	tx, err := f.txService.CreateTransaction(context.Background(), f.workspaceID, f.userID, CreateTransactionInput{
		Type:     domain.TransactionTypeExpense,
		Amount:   decimal.NewFromInt(amount),
		Category: "Food",
		Account:  "Wallet",
	})
	require.NoError(t, err)
	return tx
}

func TestLedgerStore_Load(t *testing.T) {
	f := newLedgerFixture(t)
	tx := f.spend(t, 1500)

	snapshot, err := f.store.Load(context.Background(), f.workspaceID)
	require.NoError(t, err)

	assert.Equal(t, f.workspaceID, snapshot.WorkspaceID())
	assert.Len(t, snapshot.Accounts, 5)
	assert.Len(t, snapshot.Categories, 14)
	require.Len(t, snapshot.Transactions, 1)
	found, ok := snapshot.FindTransaction(tx.ID)
	require.True(t, ok)
	assert.True(t, found.Amount.Decimal.Equal(decimal.NewFromInt(1500)))
	assert.False(t, snapshot.LoadedAt.IsZero())
}

func TestLedgerStore_LoadError(t *testing.T) {
	f := newLedgerFixture(t)
	boom := errors.New("connection reset")
	f.transactions.SetListErr(boom)

	_, err := f.store.Load(context.Background(), f.workspaceID)
	assert.ErrorIs(t, err, boom)

	_, err = f.store.Load(context.Background(), uuid.New())
	assert.Error(t, err)
}

func TestLedgerStore_SubscribeDeliversInitialAndChanges(t *testing.T) {
	f := newLedgerFixture(t)

	snapshots := make(chan *domain.LedgerSnapshot, 16)
	unsubscribe := f.store.Subscribe(context.Background(), f.workspaceID,
		func(s *domain.LedgerSnapshot) { snapshots <- s },
		func(err error) { t.Errorf("unexpected subscription error: %v", err) })
	defer unsubscribe()

	select {
	case s := <-snapshots:
		assert.Empty(t, s.Transactions)
	case <-time.After(2 * time.Second):
		t.Fatal("no initial snapshot")
	}
	assert.Equal(t, 1, f.hub.ClientCount(f.workspaceID))

	tx := f.spend(t, 20000)

	deadline := time.After(2 * time.Second)
	for {
		select {
		case s := <-snapshots:
			if _, ok := s.FindTransaction(tx.ID); ok {
				return
			}
		case <-deadline:
			t.Fatal("write never reached the subscriber")
		}
	}
}

func TestLedgerStore_SubscribeErrorEndsSubscription(t *testing.T) {
	f := newLedgerFixture(t)
	boom := errors.New("permission denied")
	f.transactions.SetListErr(boom)

	errs := make(chan error, 4)
	unsubscribe := f.store.Subscribe(context.Background(), f.workspaceID,
		func(s *domain.LedgerSnapshot) { t.Error("unexpected snapshot") },
		func(err error) { errs <- err })
	defer unsubscribe()

	select {
	case err := <-errs:
		assert.ErrorIs(t, err, boom)
	case <-time.After(2 * time.Second):
		t.Fatal("no error delivered")
	}

	assert.Eventually(t, func() bool {
		return f.hub.ClientCount(f.workspaceID) == 0
	}, 2*time.Second, 10*time.Millisecond)

	// Later changes do not revive the subscription
	f.transactions.SetListErr(nil)
	f.spend(t, 1)
	time.Sleep(50 * time.Millisecond)
	assert.Len(t, errs, 0)
}

func TestLedgerStore_Unsubscribe(t *testing.T) {
	f := newLedgerFixture(t)

	delivered := make(chan struct{}, 16)
	unsubscribe := f.store.Subscribe(context.Background(), f.workspaceID,
		func(s *domain.LedgerSnapshot) { delivered <- struct{}{} },
		nil)

	select {
	case <-delivered:
	case <-time.After(2 * time.Second):
		t.Fatal("no initial snapshot")
	}

	unsubscribe()
	unsubscribe()
	assert.Equal(t, 0, f.hub.ClientCount(f.workspaceID))

	calls := f.transactions.Calls()
	f.spend(t, 5)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, calls, f.transactions.Calls(), "no reload after unsubscribe")
}

func TestLedgerSubscriber_CoalescesNotifications(t *testing.T) {
	sub := &ledgerSubscriber{id: "s", workspaceID: uuid.New(), notify: make(chan struct{}, 1)}

	for i := 0; i < 10; i++ {
		require.NoError(t, sub.Send([]byte(`{}`)))
	}
	assert.Len(t, sub.notify, 1)

	require.NoError(t, sub.Close())
	assert.ErrorIs(t, sub.Send(nil), websocket.ErrClientClosed)
}
