// Package rollover decides when the "today" subtotal belongs to a previous
// day and must start again from zero.
package rollover

import (
	"time"

	"github.com/sagar-psycho/savings.io/pkg/domain"
	"github.com/shopspring/decimal"
)

// State of the today subtotal relative to the wall clock.
type State int

const (
	// Fresh means the subtotal was last valid for today.
	Fresh State = iota
	// Stale means the date has moved on since.
	Stale
)

func (s State) String() string {
	if s == Fresh {
		return "fresh"
	}
	return "stale"
}

// Evaluate compares the last rollover date with now, by calendar date in loc.
func Evaluate(last, now time.Time, loc *time.Location) State {
	if domain.SameDay(last, now, loc) {
		return Fresh
	}
	return Stale
}

// Apply moves a Stale state to Fresh by zeroing TodaySavings and stamping
// today's date. It reports whether anything changed. It is meant to run once
// per process start; a session kept open past midnight keeps the old day
// until the next start.
func Apply(state domain.LedgerState, now time.Time, loc *time.Location) (domain.LedgerState, bool) {
	if Evaluate(state.LastRolloverDate, now, loc) == Fresh {
		return state, false
	}

	state.TodaySavings = decimal.Zero
	state.LastRolloverDate = domain.StartOfDay(now, loc)
	return state, true
}
