package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LedgerState is everything the tracker persists.
type LedgerState struct {
	TotalSavings decimal.Decimal

	// TodaySavings is maintained incrementally and only zeroed by rollover
	// or reset, so it can drift from the sum of today's transactions after
	// an older transaction is deleted.
	TodaySavings decimal.Decimal

	// LastRolloverDate is midnight of the day TodaySavings was last valid for.
	LastRolloverDate time.Time

	Transactions []Transaction
}

// NewLedgerState returns the first-run state for the day containing now.
func NewLedgerState(now time.Time, loc *time.Location) LedgerState {
	return LedgerState{
		TotalSavings:     decimal.Zero,
		TodaySavings:     decimal.Zero,
		LastRolloverDate: StartOfDay(now, loc),
		Transactions:     []Transaction{},
	}
}

// Clone returns a copy that shares no slice memory with s.
func (s LedgerState) Clone() LedgerState {
	c := s
	c.Transactions = make([]Transaction, len(s.Transactions))
	copy(c.Transactions, s.Transactions)
	return c
}

// Sum adds up the amounts of txns.
func Sum(txns []Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, t := range txns {
		total = total.Add(t.Amount)
	}
	return total
}
