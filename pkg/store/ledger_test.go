package store

import (
	"context"
	"testing"
	"time"

	"github.com/sagar-psycho/savings.io/pkg/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 10, 15, 14, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return testNow }

func sampleState() domain.LedgerState {
	return domain.LedgerState{
		TotalSavings:     decimal.RequireFromString("70.50"),
		TodaySavings:     decimal.RequireFromString("-29.50"),
		LastRolloverDate: time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC),
		Transactions: []domain.Transaction{
			{Amount: decimal.NewFromInt(100), Date: time.Date(2026, 10, 13, 9, 0, 0, 0, time.UTC)},
			{Amount: decimal.RequireFromString("-29.50"), Date: time.Date(2026, 10, 14, 18, 30, 0, 0, time.UTC)},
		},
	}
}

func assertSameState(t *testing.T, want, got domain.LedgerState) {
	t.Helper()
	assert.True(t, want.TotalSavings.Equal(got.TotalSavings), "total %s != %s", want.TotalSavings, got.TotalSavings)
	assert.True(t, want.TodaySavings.Equal(got.TodaySavings), "today %s != %s", want.TodaySavings, got.TodaySavings)
	assert.True(t, want.LastRolloverDate.Equal(got.LastRolloverDate), "rollover %s != %s", want.LastRolloverDate, got.LastRolloverDate)
	require.Len(t, got.Transactions, len(want.Transactions))
	for i := range want.Transactions {
		assert.True(t, want.Transactions[i].Amount.Equal(got.Transactions[i].Amount), "amount %d", i)
		assert.True(t, want.Transactions[i].Date.Equal(got.Transactions[i].Date), "date %d", i)
	}
}

func TestLedgerStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	ls := NewLedgerStore(NewMemory(), time.UTC, fixedNow)

	want := sampleState()
	require.NoError(t, ls.Save(ctx, want))

	got, err := ls.Load(ctx)
	require.NoError(t, err)
	assertSameState(t, want, got)
}

func TestLedgerStoreDefaults(t *testing.T) {
	ls := NewLedgerStore(NewMemory(), time.UTC, fixedNow)

	got, err := ls.Load(context.Background())
	require.NoError(t, err)

	assert.True(t, got.TotalSavings.IsZero())
	assert.True(t, got.TodaySavings.IsZero())
	assert.Equal(t, time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC), got.LastRolloverDate)
	assert.NotNil(t, got.Transactions)
	assert.Empty(t, got.Transactions)
}

func TestLedgerStoreUnreadableValuesFallBack(t *testing.T) {
	ctx := context.Background()
	kv := NewMemory()
	require.NoError(t, kv.SetMany(ctx, map[string]string{
		KeyTotalSavings:   "lots",
		KeyTodaySavings:   "12.00",
		KeyLastSavedDate:  "the day before",
		KeySavingsHistory: "{broken",
	}))

	got, err := NewLedgerStore(kv, time.UTC, fixedNow).Load(ctx)
	require.NoError(t, err)

	assert.True(t, got.TotalSavings.IsZero())
	assert.True(t, got.TodaySavings.Equal(decimal.NewFromInt(12)))
	assert.Equal(t, time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC), got.LastRolloverDate)
	assert.Empty(t, got.Transactions)
}

func TestLedgerStoreWritesDocumentedEncoding(t *testing.T) {
	ctx := context.Background()
	kv := NewMemory()
	require.NoError(t, NewLedgerStore(kv, time.UTC, fixedNow).Save(ctx, sampleState()))

	expect := map[string]string{
		KeyTotalSavings:   "70.50",
		KeyTodaySavings:   "-29.50",
		KeyLastSavedDate:  "10/14/2026",
		KeySavingsHistory: `[{"amount":100,"date":"2026-10-13T09:00:00Z"},{"amount":-29.5,"date":"2026-10-14T18:30:00Z"}]`,
	}
	for k, want := range expect {
		got, ok, err := kv.Get(ctx, k)
		require.NoError(t, err)
		assert.True(t, ok, k)
		assert.Equal(t, want, got, k)
	}
}
