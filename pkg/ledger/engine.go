package ledger

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sagar-psycho/savings.io/pkg/calendar"
	"github.com/sagar-psycho/savings.io/pkg/domain"
	"github.com/sagar-psycho/savings.io/pkg/rollover"
	"github.com/shopspring/decimal"
)

// Persister loads and saves a whole ledger.
type Persister interface {
	Load(ctx context.Context) (domain.LedgerState, error)
	Save(ctx context.Context, state domain.LedgerState) error
}

// Options for Open. Zero values mean local time and the system clock.
type Options struct {
	Location *time.Location
	Now      func() time.Time
}

type stagedDelete struct {
	index int
	txn   domain.Transaction
}

// Engine owns the ledger for the life of a process. Every mutation is saved
// before it returns; if the save fails the in-memory state is left as it was.
type Engine struct {
	mu    sync.Mutex
	store Persister
	loc   *time.Location
	now   func() time.Time
	state domain.LedgerState

	pendingDelete *stagedDelete
	pendingReset  bool
}

// Open loads the ledger and applies the rollover policy once.
func Open(ctx context.Context, store Persister, opts Options) (*Engine, error) {
	e := &Engine{
		store: store,
		loc:   opts.Location,
		now:   opts.Now,
	}
	if e.loc == nil {
		e.loc = time.Local
	}
	if e.now == nil {
		e.now = time.Now
	}

	state, err := store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load ledger: %w", err)
	}

	state, rolled := rollover.Apply(state, e.now(), e.loc)
	if rolled {
		if err := store.Save(ctx, state); err != nil {
			return nil, err
		}
		log.Debug().Time("date", state.LastRolloverDate).Msg("rolled over today's savings")
	}

	e.state = state
	return e, nil
}

// State returns a copy of the current ledger.
func (e *Engine) State() domain.LedgerState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Clone()
}

// Location is the zone calendar dates are taken in.
func (e *Engine) Location() *time.Location {
	return e.loc
}

// Now is the engine's clock.
func (e *Engine) Now() time.Time {
	return e.now()
}

// Deposit records amount now.
func (e *Engine) Deposit(ctx context.Context, amount decimal.Decimal) error {
	return e.DepositAt(ctx, amount, e.now())
}

// DepositAt records amount at date.
func (e *Engine) DepositAt(ctx context.Context, amount decimal.Decimal, date time.Time) error {
	return e.mutate(ctx, func(s domain.LedgerState) (domain.LedgerState, error) {
		return Deposit(s, amount, date)
	})
}

// Withdraw records a withdrawal of amount now.
func (e *Engine) Withdraw(ctx context.Context, amount decimal.Decimal) error {
	return e.WithdrawAt(ctx, amount, e.now())
}

// WithdrawAt records a withdrawal of amount at date.
func (e *Engine) WithdrawAt(ctx context.Context, amount decimal.Decimal, date time.Time) error {
	return e.mutate(ctx, func(s domain.LedgerState) (domain.LedgerState, error) {
		return Withdraw(s, amount, date)
	})
}

// DeleteTransaction removes the transaction at index immediately.
func (e *Engine) DeleteTransaction(ctx context.Context, index int) error {
	return e.mutate(ctx, func(s domain.LedgerState) (domain.LedgerState, error) {
		return DeleteTransaction(s, index)
	})
}

// ResetAll clears the whole ledger immediately.
func (e *Engine) ResetAll(ctx context.Context) error {
	return e.mutate(ctx, func(domain.LedgerState) (domain.LedgerState, error) {
		return ResetAll(e.now(), e.loc), nil
	})
}

// RequestDelete stages the transaction at index for deletion and returns it
// so the caller can ask for confirmation. Staging replaces any earlier
// request.
func (e *Engine) RequestDelete(index int) (domain.Transaction, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if index < 0 || index >= len(e.state.Transactions) {
		return domain.Transaction{}, fmt.Errorf("%w: %d of %d", domain.ErrIndexOutOfRange, index, len(e.state.Transactions))
	}

	txn := e.state.Transactions[index]
	e.pendingDelete = &stagedDelete{index: index, txn: txn}
	return txn, nil
}

// ConfirmDelete deletes the staged transaction. If the ledger changed so
// that the staged position no longer holds that transaction, it returns
// ErrIndexOutOfRange and leaves the ledger alone.
func (e *Engine) ConfirmDelete(ctx context.Context) error {
	e.mu.Lock()
	staged := e.pendingDelete
	e.pendingDelete = nil
	e.mu.Unlock()

	if staged == nil {
		return domain.ErrNothingStaged
	}

	return e.mutate(ctx, func(s domain.LedgerState) (domain.LedgerState, error) {
		if staged.index >= len(s.Transactions) || !sameTransaction(s.Transactions[staged.index], staged.txn) {
			return s, fmt.Errorf("%w: staged transaction %d changed", domain.ErrIndexOutOfRange, staged.index)
		}
		return DeleteTransaction(s, staged.index)
	})
}

// CancelDelete drops a staged deletion, if any.
func (e *Engine) CancelDelete() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.pendingDelete = nil
}

// RequestReset stages a full reset.
func (e *Engine) RequestReset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.pendingReset = true
}

// ConfirmReset performs a staged reset.
func (e *Engine) ConfirmReset(ctx context.Context) error {
	e.mu.Lock()
	staged := e.pendingReset
	e.pendingReset = false
	e.mu.Unlock()

	if !staged {
		return domain.ErrNothingStaged
	}
	return e.ResetAll(ctx)
}

// CancelReset drops a staged reset.
func (e *Engine) CancelReset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.pendingReset = false
}

// Calendar classifies the days of year/month from the full history.
func (e *Engine) Calendar(year int, month time.Month) []calendar.DayClassification {
	e.mu.Lock()
	defer e.mu.Unlock()
	return calendar.ClassifyMonth(e.state.Transactions, year, month, e.now(), e.loc)
}

func (e *Engine) mutate(ctx context.Context, op func(domain.LedgerState) (domain.LedgerState, error)) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	next, err := op(e.state.Clone())
	if err != nil {
		return err
	}

	if err := e.store.Save(ctx, next); err != nil {
		return err
	}

	e.state = next
	return nil
}

func sameTransaction(a, b domain.Transaction) bool {
	return a.Amount.Equal(b.Amount) && a.Date.Equal(b.Date)
}
