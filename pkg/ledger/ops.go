// Package ledger holds the state transitions of the savings ledger and an
// Engine that persists every transition before reporting success.
package ledger

import (
	"fmt"
	"time"

	"github.com/sagar-psycho/savings.io/pkg/domain"
	"github.com/shopspring/decimal"
)

// Deposit appends a positive transaction and adds it to both totals. The
// amount is rounded to cents first.
func Deposit(state domain.LedgerState, amount decimal.Decimal, date time.Time) (domain.LedgerState, error) {
	amount, err := domain.NormalizeAmount(amount)
	if err != nil {
		return state, err
	}
	return apply(state, domain.Transaction{Amount: amount, Date: date}), nil
}

// Withdraw appends a negative transaction of the given (positive) amount.
func Withdraw(state domain.LedgerState, amount decimal.Decimal, date time.Time) (domain.LedgerState, error) {
	amount, err := domain.NormalizeAmount(amount)
	if err != nil {
		return state, err
	}
	return apply(state, domain.Transaction{Amount: amount.Neg(), Date: date}), nil
}

func apply(state domain.LedgerState, t domain.Transaction) domain.LedgerState {
	state = state.Clone()
	state.Transactions = append(state.Transactions, t)
	state.TotalSavings = state.TotalSavings.Add(t.Amount)
	state.TodaySavings = state.TodaySavings.Add(t.Amount)
	return state
}

// DeleteTransaction removes the transaction at index and takes its amount
// back out of both totals. TodaySavings is adjusted even when the removed
// transaction is from another day.
func DeleteTransaction(state domain.LedgerState, index int) (domain.LedgerState, error) {
	if index < 0 || index >= len(state.Transactions) {
		return state, fmt.Errorf("%w: %d of %d", domain.ErrIndexOutOfRange, index, len(state.Transactions))
	}

	removed := state.Transactions[index]

	next := state.Clone()
	next.Transactions = append(next.Transactions[:index], next.Transactions[index+1:]...)
	next.TotalSavings = next.TotalSavings.Sub(removed.Amount)
	next.TodaySavings = next.TodaySavings.Sub(removed.Amount)
	return next, nil
}

// ResetAll wipes the ledger and restarts the day at now.
func ResetAll(now time.Time, loc *time.Location) domain.LedgerState {
	return domain.NewLedgerState(now, loc)
}
