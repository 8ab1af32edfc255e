package main

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/sagar-psycho/savings.io/pkg/calendar"
	"github.com/sagar-psycho/savings.io/pkg/config"
	"github.com/sagar-psycho/savings.io/pkg/domain"
	"github.com/sagar-psycho/savings.io/pkg/ledger"
	"github.com/sagar-psycho/savings.io/pkg/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 10, 15, 12, 0, 0, 0, time.UTC)

func newSession(t *testing.T, input string) (*session, *bytes.Buffer) {
	t.Helper()
	clock := func() time.Time { return now }
	ctx := context.Background()

	engine, err := ledger.Open(ctx,
		store.NewLedgerStore(store.NewMemory(), time.UTC, clock),
		ledger.Options{Location: time.UTC, Now: clock},
	)
	require.NoError(t, err)

	out := &bytes.Buffer{}
	return &session{
		ctx:    ctx,
		cfg:    &config.Config{Location: time.UTC},
		engine: engine,
		in:     strings.NewReader(input),
		out:    out,
	}, out
}

func TestDepositAndWithdraw(t *testing.T) {
	s, out := newSession(t, "")

	require.NoError(t, (&depositCmd{Amount: "100"}).Run(s))
	require.NoError(t, (&withdrawCmd{Amount: "30"}).Run(s))

	assert.Contains(t, out.String(), "Total savings: 70.00  Today: 70.00")
	assert.Len(t, s.engine.State().Transactions, 2)
}

func TestDepositRejectsBadAmount(t *testing.T) {
	s, _ := newSession(t, "")

	for _, bad := range []string{"-5", "0", "ten"} {
		err := (&depositCmd{Amount: bad}).Run(s)
		assert.ErrorIs(t, err, domain.ErrInvalidAmount, bad)
	}
	assert.Empty(t, s.engine.State().Transactions)
}

func TestDepositWithDate(t *testing.T) {
	s, _ := newSession(t, "")

	require.NoError(t, (&depositCmd{Amount: "5", Date: "2026-10-03"}).Run(s))
	txns := s.engine.State().Transactions
	require.Len(t, txns, 1)
	assert.Equal(t, time.Date(2026, 10, 3, 0, 0, 0, 0, time.UTC), txns[0].Date)

	assert.Error(t, (&depositCmd{Amount: "5", Date: "someday"}).Run(s))
}

func TestDeleteAsksFirst(t *testing.T) {
	s, out := newSession(t, "n\n")
	require.NoError(t, (&depositCmd{Amount: "40"}).Run(s))

	require.NoError(t, (&deleteCmd{Number: 1}).Run(s))
	assert.Contains(t, out.String(), "Delete #1, 10/15/2026 40.00? [y/N]")
	assert.Contains(t, out.String(), "Cancelled.")
	assert.Len(t, s.engine.State().Transactions, 1)

	s.in = strings.NewReader("y\n")
	require.NoError(t, (&deleteCmd{Number: 1}).Run(s))
	assert.Empty(t, s.engine.State().Transactions)
	assert.True(t, s.engine.State().TotalSavings.IsZero())
}

func TestDeleteUnknownRow(t *testing.T) {
	s, _ := newSession(t, "")
	err := (&deleteCmd{Number: 3, Yes: true}).Run(s)
	assert.EqualError(t, err, "no transaction #3")
}

func TestClear(t *testing.T) {
	s, out := newSession(t, "\n")
	require.NoError(t, (&depositCmd{Amount: "40"}).Run(s))

	// empty answer means no
	require.NoError(t, (&clearCmd{}).Run(s))
	assert.Contains(t, out.String(), "Cancelled.")
	assert.Len(t, s.engine.State().Transactions, 1)

	require.NoError(t, (&clearCmd{Yes: true}).Run(s))
	assert.Empty(t, s.engine.State().Transactions)
	assert.True(t, s.engine.State().TodaySavings.IsZero())
}

func TestHistory(t *testing.T) {
	s, out := newSession(t, "")
	require.NoError(t, (&historyCmd{}).Run(s))
	assert.Contains(t, out.String(), "No transactions.")

	require.NoError(t, (&depositCmd{Amount: "12.5"}).Run(s))
	require.NoError(t, (&withdrawCmd{Amount: "2"}).Run(s))

	out.Reset()
	require.NoError(t, (&historyCmd{}).Run(s))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.Contains(t, lines[1], "10/15/2026")
	assert.Contains(t, lines[1], "12.50")
	assert.Contains(t, lines[2], "-2.00")

	out.Reset()
	require.NoError(t, (&historyCmd{JSON: true}).Run(s))
	assert.Equal(t,
		`[{"amount":12.5,"date":"2026-10-15T12:00:00Z"},{"amount":-2,"date":"2026-10-15T12:00:00Z"}]`,
		strings.TrimSpace(out.String()),
	)
}

func TestCalendarCommand(t *testing.T) {
	s, out := newSession(t, "")
	require.NoError(t, (&depositCmd{Amount: "10", Date: "2026-10-03"}).Run(s))
	out.Reset()

	require.NoError(t, (&calendarCmd{}).Run(s))
	assert.Contains(t, out.String(), "October 2026")
	assert.Contains(t, out.String(), "[15.]")
	assert.Contains(t, out.String(), "  3+\n")

	out.Reset()
	require.NoError(t, (&calendarCmd{Month: "2026-02"}).Run(s))
	assert.Contains(t, out.String(), "February 2026")
	assert.NotContains(t, out.String(), "[")

	assert.Error(t, (&calendarCmd{Month: "Feb"}).Run(s))
}

func TestStatus(t *testing.T) {
	s, out := newSession(t, "")
	require.NoError(t, (&depositCmd{Amount: "20"}).Run(s))
	require.NoError(t, (&withdrawCmd{Amount: "20"}).Run(s))
	out.Reset()

	require.NoError(t, (&statusCmd{}).Run(s))
	assert.Contains(t, out.String(), "Total savings:   0.00")
	assert.Contains(t, out.String(), "Today's savings: 0.00")
	assert.Contains(t, out.String(), "[15=]")
}

func TestRenderCalendarLayout(t *testing.T) {
	days := calendar.ClassifyMonth(nil, 2026, time.October, now, time.UTC)
	out := &bytes.Buffer{}
	renderCalendar(out, 2026, time.October, days)

	lines := strings.Split(out.String(), "\n")
	// 1 October 2026 is a Thursday
	assert.Equal(t, strings.Repeat(" ", 20)+"  1.   2.   3.", lines[2])
	assert.True(t, strings.HasPrefix(lines[3], "  4.   5."))
}

func TestKeygen(t *testing.T) {
	out := &bytes.Buffer{}
	s := &session{ctx: context.Background(), out: out}

	require.NoError(t, (&keygenCmd{}).Run(s))
	require.NoError(t, (&keygenCmd{}).Run(s))

	keys := strings.Fields(out.String())
	require.Len(t, keys, 2)
	assert.NotEqual(t, keys[0], keys[1])
	assert.Len(t, keys[0], 44)

	// a generated key works as a passphrase
	ctx := context.Background()
	kv := store.NewMemory()
	ls := store.NewLedgerStore(store.NewSealed(kv, keys[0]), time.UTC, func() time.Time { return now })
	require.NoError(t, ls.Save(ctx, domain.NewLedgerState(now, time.UTC)))
	_, err := ls.Load(ctx)
	assert.NoError(t, err)
}
