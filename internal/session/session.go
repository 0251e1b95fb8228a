// Package session holds the per-connection state of an open ledger: which
// workspace is open, which month is shown and the latest snapshot.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dompet-app/dompet-backend/internal/domain"
	"github.com/dompet-app/dompet-backend/internal/ledger"
	"github.com/dompet-app/dompet-backend/internal/service"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// ErrNotOpen is returned by SetPeriod when no workspace is open
var ErrNotOpen = errors.New("no workspace is open")

// ErrInvalidPeriod is returned for a month outside 1..12
var ErrInvalidPeriod = errors.New("month must be between 1 and 12")

// Subscriber opens live ledger subscriptions. *service.LedgerStore implements it.
type Subscriber interface {
	Subscribe(ctx context.Context, workspaceID uuid.UUID, onSnapshot service.SnapshotHandler, onError service.ErrorHandler) func()
}

// PreferenceWriter persists the device-local preferences a session touches
type PreferenceWriter interface {
	SetCurrentWorkspace(ctx context.Context, userID, workspaceID uuid.UUID) error
	Clear(ctx context.Context, userID uuid.UUID) error
}

// Listener receives what the session computes. Calls are serialized and made
// while the session is locked, so a Listener must not call back into it.
type Listener interface {
	OnView(view *ledger.MonthView)
	OnError(workspaceID uuid.UUID, err error)
}

// Session owns at most one ledger subscription. Every Open or Close starts a
// new epoch; deliveries from an older epoch are dropped.
type Session struct {
	userID   uuid.UUID
	ledger   Subscriber
	prefs    PreferenceWriter
	listener Listener
	now      func() time.Time

	mu          sync.Mutex
	epoch       uint64
	workspaceID uuid.UUID
	year        int
	month       time.Month
	unsubscribe func()
	snapshot    *domain.LedgerSnapshot
	stale       bool
}

// New creates a closed session for a user
func New(userID uuid.UUID, ledger Subscriber, prefs PreferenceWriter, listener Listener) *Session {
	return &Session{
		userID:   userID,
		ledger:   ledger,
		prefs:    prefs,
		listener: listener,
		now:      time.Now,
	}
}

// Open switches the session to a workspace and month. A zero year or month
// means the current month in the workspace's time zone. The previous
// subscription is closed before the new one starts.
func (s *Session) Open(ctx context.Context, workspaceID uuid.UUID, year int, month time.Month) error {
	if month < 0 || month > 12 {
		return ErrInvalidPeriod
	}

	s.mu.Lock()
	s.closeLocked()
	s.epoch++
	epoch := s.epoch
	s.workspaceID = workspaceID
	s.year, s.month = year, month
	s.mu.Unlock()

	if err := s.prefs.SetCurrentWorkspace(ctx, s.userID, workspaceID); err != nil {
		log.Warn().Err(err).Str("user_id", s.userID.String()).Msg("Failed to persist current workspace")
	}

	unsubscribe := s.ledger.Subscribe(ctx, workspaceID,
		func(snapshot *domain.LedgerSnapshot) { s.deliver(epoch, snapshot) },
		func(err error) { s.fail(epoch, err) })

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.epoch != epoch {
		// Closed or reopened while subscribing
		unsubscribe()
		return nil
	}
	if s.unsubscribe == nil && !s.stale {
		s.unsubscribe = unsubscribe
	} else {
		// The subscription already failed and ended itself
		unsubscribe()
	}
	return nil
}

// SetPeriod changes the shown month and recomputes the view from the latest
// snapshot without reloading it
func (s *Session) SetPeriod(year int, month time.Month) error {
	if month < 1 || month > 12 {
		return ErrInvalidPeriod
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.workspaceID == uuid.Nil {
		return ErrNotOpen
	}
	s.year, s.month = year, month
	if s.snapshot != nil {
		s.listener.OnView(s.viewLocked())
	}
	return nil
}

// Close ends the subscription. The session can be opened again.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closeLocked()
	s.epoch++
	s.workspaceID = uuid.Nil
}

// SignOut closes the session and forgets the user's device preferences
func (s *Session) SignOut(ctx context.Context) error {
	s.Close()
	return s.prefs.Clear(ctx, s.userID)
}

// WorkspaceID returns the open workspace, uuid.Nil when closed
func (s *Session) WorkspaceID() uuid.UUID {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.workspaceID
}

// View returns the current month view. ok is false before the first snapshot
// and after a subscription error.
func (s *Session) View() (view *ledger.MonthView, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snapshot == nil {
		return nil, false
	}
	return s.viewLocked(), true
}

// Stale reports whether the subscription ended with an error
func (s *Session) Stale() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stale
}

func (s *Session) deliver(epoch uint64, snapshot *domain.LedgerSnapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if epoch != s.epoch {
		return
	}
	s.snapshot = snapshot
	s.stale = false

	view := s.viewLocked()
	view.Quality.Log(log.With().Str("workspace_id", s.workspaceID.String()).Logger())
	s.listener.OnView(view)
}

func (s *Session) fail(epoch uint64, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if epoch != s.epoch {
		return
	}
	s.snapshot = nil
	s.stale = true
	s.listener.OnError(s.workspaceID, err)
}

func (s *Session) closeLocked() {
	if s.unsubscribe != nil {
		s.unsubscribe()
		s.unsubscribe = nil
	}
	s.snapshot = nil
	s.stale = false
}

func (s *Session) viewLocked() *ledger.MonthView {
	year, month := s.year, s.month
	loc := s.snapshot.Workspace.Location()
	if year == 0 || month == 0 {
		now := s.now().In(loc)
		year, month = now.Year(), now.Month()
	}
	view := ledger.BuildMonthView(s.snapshot, year, month, loc)
	return &view
}
