package domain

import (
	"fmt"
	"time"
)

// DateLayout is the en-US locale date format used for the rollover marker.
const DateLayout = "1/2/2006"

// isoDateLayout is also accepted when reading.
const isoDateLayout = "2006-01-02"

// StartOfDay truncates t to midnight of its calendar date in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	year, month, day := t.In(loc).Date()
	return time.Date(year, month, day, 0, 0, 0, 0, loc)
}

// SameDay reports if a and b fall on the same calendar date in loc.
func SameDay(a, b time.Time, loc *time.Location) bool {
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}

// FormatDate renders the calendar date of t in loc using DateLayout.
func FormatDate(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(DateLayout)
}

// ParseDate reads a date written by FormatDate (or an ISO date) as midnight in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	for _, layout := range []string{DateLayout, isoDateLayout} {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognised date %q", s)
}
