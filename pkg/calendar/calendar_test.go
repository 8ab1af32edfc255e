package calendar

import (
	"testing"
	"time"

	"github.com/sagar-psycho/savings.io/pkg/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func txn(amount string, date time.Time) domain.Transaction {
	return domain.Transaction{Amount: decimal.RequireFromString(amount), Date: date}
}

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2026, time.January, 31},
		{2026, time.February, 28},
		{2028, time.February, 29},
		{2026, time.April, 30},
		{2026, time.December, 31},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DaysInMonth(tt.year, tt.month), "%d-%d", tt.year, tt.month)
	}
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "October 2026", Title(2026, time.October))
}

func TestClassifyMonthSameDayNetZero(t *testing.T) {
	now := time.Date(2026, 10, 20, 12, 0, 0, 0, time.UTC)
	txns := []domain.Transaction{
		txn("20", time.Date(2026, 10, 5, 9, 0, 0, 0, time.UTC)),
		txn("-20", time.Date(2026, 10, 5, 17, 0, 0, 0, time.UTC)),
	}

	days := ClassifyMonth(txns, 2026, time.October, now, time.UTC)
	require.Len(t, days, 31)

	assert.Equal(t, Zero, days[4].Status)
	assert.True(t, days[4].Net.IsZero())
}

func TestClassifyMonthDaysAreIndependent(t *testing.T) {
	now := time.Date(2026, 10, 20, 12, 0, 0, 0, time.UTC)
	// out of order on purpose
	txns := []domain.Transaction{
		txn("-10", time.Date(2026, 10, 9, 9, 0, 0, 0, time.UTC)),
		txn("10", time.Date(2026, 10, 3, 9, 0, 0, 0, time.UTC)),
	}

	days := ClassifyMonth(txns, 2026, time.October, now, time.UTC)

	assert.Equal(t, Positive, days[2].Status)
	assert.Equal(t, Negative, days[8].Status)
	for i, d := range days {
		if i != 2 && i != 8 {
			assert.Equal(t, NoActivity, d.Status, "day %d", d.Day)
		}
	}
}

func TestClassifyMonthToday(t *testing.T) {
	now := time.Date(2026, 10, 15, 23, 59, 0, 0, time.UTC)

	days := ClassifyMonth(nil, 2026, time.October, now, time.UTC)
	for _, d := range days {
		assert.Equal(t, d.Day == 15, d.IsToday, "day %d", d.Day)
	}

	days = ClassifyMonth(nil, 2026, time.September, now, time.UTC)
	require.Len(t, days, 30)
	for _, d := range days {
		assert.False(t, d.IsToday)
	}
}

func TestClassifyMonthIgnoresOtherMonthsAndUsesLocation(t *testing.T) {
	loc := time.FixedZone("west", -3*60*60)
	now := time.Date(2026, 11, 2, 12, 0, 0, 0, loc)
	txns := []domain.Transaction{
		// 1 Nov 01:00 UTC is still 31 Oct in loc
		txn("5", time.Date(2026, 11, 1, 1, 0, 0, 0, time.UTC)),
		txn("7", time.Date(2025, 11, 3, 12, 0, 0, 0, loc)),
		txn("-2", time.Date(2026, 11, 3, 12, 0, 0, 0, loc)),
	}

	days := ClassifyMonth(txns, 2026, time.November, now, loc)
	assert.Equal(t, NoActivity, days[0].Status)
	assert.Equal(t, Negative, days[2].Status)
	assert.True(t, days[2].Net.Equal(decimal.NewFromInt(-2)))
	assert.True(t, days[1].IsToday)

	october := ClassifyMonth(txns, 2026, time.October, now, loc)
	assert.Equal(t, Positive, october[30].Status)
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "none", NoActivity.String())
	assert.Equal(t, "positive", Positive.String())
	assert.Equal(t, "negative", Negative.String())
	assert.Equal(t, "zero", Zero.String())
}
