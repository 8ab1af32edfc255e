// Package calendar classifies the days of a month by their net savings.
package calendar

import (
	"fmt"
	"time"

	"github.com/sagar-psycho/savings.io/pkg/domain"
	"github.com/shopspring/decimal"
)

// Status of a single day.
type Status int

const (
	NoActivity Status = iota
	Positive
	Negative
	Zero
)

func (s Status) String() string {
	switch s {
	case Positive:
		return "positive"
	case Negative:
		return "negative"
	case Zero:
		return "zero"
	default:
		return "none"
	}
}

// DayClassification is one cell of the month view.
type DayClassification struct {
	Day     int
	Status  Status
	IsToday bool

	// Net is the sum of the day's amounts; zero for NoActivity days.
	Net decimal.Decimal
}

type dayKey struct {
	year  int
	month time.Month
	day   int
}

// DaysInMonth returns the number of days in the given month.
func DaysInMonth(year int, month time.Month) int {
	// day 0 of the next month is the last day of this one
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// Title is the heading shown over a month, e.g. "October 2026".
func Title(year int, month time.Month) string {
	return fmt.Sprintf("%s %d", month, year)
}

// ClassifyMonth groups txns by calendar date in loc and classifies every day
// of year/month. The order of txns does not matter. The day containing now is
// flagged IsToday.
func ClassifyMonth(txns []domain.Transaction, year int, month time.Month, now time.Time, loc *time.Location) []DayClassification {
	type bucket struct {
		net   decimal.Decimal
		count int
	}

	// one pass over the history, indexed by date
	byDay := map[dayKey]*bucket{}
	for _, t := range txns {
		y, m, d := t.Date.In(loc).Date()
		if y != year || m != month {
			continue
		}
		k := dayKey{y, m, d}
		b, ok := byDay[k]
		if !ok {
			b = &bucket{net: decimal.Zero}
			byDay[k] = b
		}
		b.net = b.net.Add(t.Amount)
		b.count++
	}

	ty, tm, td := now.In(loc).Date()

	n := DaysInMonth(year, month)
	days := make([]DayClassification, 0, n)
	for i := 1; i <= n; i++ {
		c := DayClassification{
			Day:     i,
			Status:  NoActivity,
			IsToday: ty == year && tm == month && td == i,
			Net:     decimal.Zero,
		}

		if b, ok := byDay[dayKey{year, month, i}]; ok && b.count > 0 {
			c.Net = b.net
			switch b.net.Sign() {
			case 1:
				c.Status = Positive
			case -1:
				c.Status = Negative
			default:
				c.Status = Zero
			}
		}

		days = append(days, c)
	}

	return days
}
