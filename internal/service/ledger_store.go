package service

import (
	"context"
	"sync"
	"time"

	"github.com/dompet-app/dompet-backend/internal/domain"
	"github.com/dompet-app/dompet-backend/internal/websocket"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// ChangeFeed delivers workspace change events to registered clients.
// *websocket.Hub is the production implementation.
type ChangeFeed interface {
	Register(client websocket.ClientInterface)
	Unregister(client websocket.ClientInterface)
}

// SnapshotHandler receives every snapshot a subscription delivers
type SnapshotHandler func(snapshot *domain.LedgerSnapshot)

// ErrorHandler receives the error that ended a subscription
type ErrorHandler func(err error)

// LedgerStore loads whole-workspace snapshots and keeps subscribers current
type LedgerStore struct {
	workspaceRepo   domain.WorkspaceRepository
	accountRepo     domain.AccountRepository
	categoryRepo    domain.CategoryRepository
	transactionRepo domain.TransactionRepository
	feed            ChangeFeed
	now             func() time.Time
}

// NewLedgerStore creates a new LedgerStore
func NewLedgerStore(workspaceRepo domain.WorkspaceRepository, accountRepo domain.AccountRepository, categoryRepo domain.CategoryRepository, transactionRepo domain.TransactionRepository, feed ChangeFeed) *LedgerStore {
	return &LedgerStore{
		workspaceRepo:   workspaceRepo,
		accountRepo:     accountRepo,
		categoryRepo:    categoryRepo,
		transactionRepo: transactionRepo,
		feed:            feed,
		now:             time.Now,
	}
}

// Load reads the workspace with all of its accounts, categories and
// transactions. The four reads run concurrently; the first failure cancels
// the rest.
func (s *LedgerStore) Load(ctx context.Context, workspaceID uuid.UUID) (*domain.LedgerSnapshot, error) {
	var (
		workspace    *domain.Workspace
		accounts     []*domain.Account
		categories   []*domain.Category
		transactions []*domain.Transaction
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		workspace, err = s.workspaceRepo.GetByID(gctx, workspaceID)
		return err
	})
	g.Go(func() (err error) {
		accounts, err = s.accountRepo.GetAllByWorkspace(gctx, workspaceID)
		return err
	})
	g.Go(func() (err error) {
		categories, err = s.categoryRepo.GetAllByWorkspace(gctx, workspaceID)
		return err
	})
	g.Go(func() (err error) {
		transactions, err = s.transactionRepo.GetAllByWorkspace(gctx, workspaceID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	snapshot := &domain.LedgerSnapshot{
		Workspace:    workspace,
		Accounts:     make([]domain.Account, len(accounts)),
		Categories:   make([]domain.Category, len(categories)),
		Transactions: derefTransactions(transactions),
		LoadedAt:     s.now().UTC(),
	}
	for i, a := range accounts {
		snapshot.Accounts[i] = *a
	}
	for i, c := range categories {
		snapshot.Categories[i] = *c
	}
	return snapshot, nil
}

// Subscribe delivers a snapshot of the workspace right away and again after
// each change to it. Changes that arrive while a snapshot is loading collapse
// into one reload. Callbacks run on a single goroutine, one at a time.
//
// A failed load calls onError once and ends the subscription. The returned
// function ends it early; it may be called more than once and does not wait
// for an in-flight callback.
func (s *LedgerStore) Subscribe(ctx context.Context, workspaceID uuid.UUID, onSnapshot SnapshotHandler, onError ErrorHandler) func() {
	ctx, cancel := context.WithCancel(ctx)
	sub := &ledgerSubscriber{
		id:          uuid.New().String(),
		workspaceID: workspaceID,
		notify:      make(chan struct{}, 1),
	}
	s.feed.Register(sub)

	go s.run(ctx, sub, onSnapshot, onError)

	var once sync.Once
	return func() {
		once.Do(func() {
			cancel()
			sub.Close()
			s.feed.Unregister(sub)
		})
	}
}

func (s *LedgerStore) run(ctx context.Context, sub *ledgerSubscriber, onSnapshot SnapshotHandler, onError ErrorHandler) {
	defer func() {
		sub.Close()
		s.feed.Unregister(sub)
	}()

	for {
		snapshot, err := s.Load(ctx, sub.workspaceID)
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			log.Warn().Err(err).Str("workspace_id", sub.workspaceID.String()).Msg("Ledger subscription ended")
			if onError != nil {
				onError(err)
			}
			return
		}
		onSnapshot(snapshot)

		select {
		case <-ctx.Done():
			return
		case <-sub.notify:
		}
	}
}

// ledgerSubscriber joins the workspace's broadcast group so that change events
// reach the subscription as reload signals
type ledgerSubscriber struct {
	id          string
	workspaceID uuid.UUID
	notify      chan struct{}
	mu          sync.Mutex
	closed      bool
}

// ID implements websocket.ClientInterface
func (c *ledgerSubscriber) ID() string {
	return c.id
}

// WorkspaceID implements websocket.ClientInterface
func (c *ledgerSubscriber) WorkspaceID() uuid.UUID {
	return c.workspaceID
}

// Send marks the snapshot stale. The payload is not inspected.
func (c *ledgerSubscriber) Send(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return websocket.ErrClientClosed
	}
	select {
	case c.notify <- struct{}{}:
	default:
	}
	return nil
}

// Close implements websocket.ClientInterface
func (c *ledgerSubscriber) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}
