package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/sagar-psycho/savings.io/pkg/calendar"
	"github.com/sagar-psycho/savings.io/pkg/domain"
)

var statusMarks = map[calendar.Status]string{
	calendar.NoActivity: ".",
	calendar.Positive:   "+",
	calendar.Negative:   "-",
	calendar.Zero:       "=",
}

func renderHistory(w io.Writer, txns []domain.Transaction, loc *time.Location) error {
	if len(txns) == 0 {
		_, err := fmt.Fprintln(w, "No transactions.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "#\tDate\tAmount\t")
	for i, t := range txns {
		fmt.Fprintf(tw, "%d\t%s\t%s\t\n", i+1, domain.FormatDate(t.Date, loc), domain.FormatAmount(t.Amount))
	}
	return tw.Flush()
}

// renderCalendar draws a Sunday-first month grid. Each day carries a mark
// for its status and today is bracketed.
func renderCalendar(w io.Writer, year int, month time.Month, days []calendar.DayClassification) {
	fmt.Fprintln(w, calendar.Title(year, month))
	fmt.Fprintln(w, " Su   Mo   Tu   We   Th   Fr   Sa")

	b := &strings.Builder{}
	offset := int(time.Date(year, month, 1, 0, 0, 0, 0, time.UTC).Weekday())
	b.WriteString(strings.Repeat("     ", offset))

	for _, d := range days {
		if d.IsToday {
			fmt.Fprintf(b, "[%2d%s]", d.Day, statusMarks[d.Status])
		} else {
			fmt.Fprintf(b, " %2d%s ", d.Day, statusMarks[d.Status])
		}
		if (offset+d.Day)%7 == 0 {
			fmt.Fprintln(w, strings.TrimRight(b.String(), " "))
			b.Reset()
		}
	}
	if b.Len() > 0 {
		fmt.Fprintln(w, strings.TrimRight(b.String(), " "))
	}

	fmt.Fprintln(w, "\n+ saved  - withdrew  = broke even  . no activity")
}
