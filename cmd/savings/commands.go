package main

import (
	"bufio"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sagar-psycho/savings.io/pkg/crypto"
	"github.com/sagar-psycho/savings.io/pkg/domain"
	"github.com/sagar-psycho/savings.io/pkg/store"
	"github.com/shopspring/decimal"
)

type statusCmd struct{}

func (c *statusCmd) Run(s *session) error {
	state := s.engine.State()
	fmt.Fprintf(s.out, "Total savings:   %s\n", domain.FormatAmount(state.TotalSavings))
	fmt.Fprintf(s.out, "Today's savings: %s\n\n", domain.FormatAmount(state.TodaySavings))

	now := s.engine.Now().In(s.engine.Location())
	renderCalendar(s.out, now.Year(), now.Month(), s.engine.Calendar(now.Year(), now.Month()))
	return nil
}

type depositCmd struct {
	Amount string `arg:"" help:"Amount saved, e.g. 12.50."`
	Date   string `help:"Date of the deposit (M/D/YYYY or YYYY-MM-DD), default now."`
}

func (c *depositCmd) Run(s *session) error {
	amount, date, err := parseEntry(s, c.Amount, c.Date)
	if err != nil {
		return err
	}
	if err := s.engine.DepositAt(s.ctx, amount, date); err != nil {
		return err
	}
	return printTotals(s)
}

type withdrawCmd struct {
	Amount string `arg:"" help:"Amount taken out, e.g. 30."`
	Date   string `help:"Date of the withdrawal (M/D/YYYY or YYYY-MM-DD), default now."`
}

func (c *withdrawCmd) Run(s *session) error {
	amount, date, err := parseEntry(s, c.Amount, c.Date)
	if err != nil {
		return err
	}
	if err := s.engine.WithdrawAt(s.ctx, amount, date); err != nil {
		return err
	}
	return printTotals(s)
}

type historyCmd struct {
	JSON bool `name:"json" help:"Print the stored JSON array instead of a table."`
}

func (c *historyCmd) Run(s *session) error {
	txns := s.engine.State().Transactions
	if c.JSON {
		data, err := domain.EncodeHistory(txns)
		if err != nil {
			return err
		}
		fmt.Fprintln(s.out, data)
		return nil
	}
	return renderHistory(s.out, txns, s.engine.Location())
}

type deleteCmd struct {
	Number int  `arg:"" help:"Row number as shown by history."`
	Yes    bool `short:"y" help:"Do not ask for confirmation."`
}

func (c *deleteCmd) Run(s *session) error {
	txn, err := s.engine.RequestDelete(c.Number - 1)
	if errors.Is(err, domain.ErrIndexOutOfRange) {
		return fmt.Errorf("no transaction #%d", c.Number)
	}
	if err != nil {
		return err
	}

	question := fmt.Sprintf("Delete #%d, %s %s?",
		c.Number,
		domain.FormatDate(txn.Date, s.engine.Location()),
		domain.FormatAmount(txn.Amount),
	)
	if !c.Yes && !confirm(s, question) {
		s.engine.CancelDelete()
		fmt.Fprintln(s.out, "Cancelled.")
		return nil
	}

	if err := s.engine.ConfirmDelete(s.ctx); err != nil {
		return err
	}
	return printTotals(s)
}

type clearCmd struct {
	Yes bool `short:"y" help:"Do not ask for confirmation."`
}

func (c *clearCmd) Run(s *session) error {
	s.engine.RequestReset()
	if !c.Yes && !confirm(s, "Delete ALL transactions and reset totals?") {
		s.engine.CancelReset()
		fmt.Fprintln(s.out, "Cancelled.")
		return nil
	}

	if err := s.engine.ConfirmReset(s.ctx); err != nil {
		return err
	}
	return printTotals(s)
}

type calendarCmd struct {
	Month string `help:"Month to show as YYYY-MM, default the current month."`
}

func (c *calendarCmd) Run(s *session) error {
	month := s.engine.Now().In(s.engine.Location())
	if c.Month != "" {
		t, err := time.ParseInLocation("2006-01", c.Month, s.engine.Location())
		if err != nil {
			return fmt.Errorf("invalid month %q, expected YYYY-MM", c.Month)
		}
		month = t
	}

	renderCalendar(s.out, month.Year(), month.Month(), s.engine.Calendar(month.Year(), month.Month()))
	return nil
}

type exportCmd struct {
	ES []string `name:"es" help:"Elasticsearch URL(s), default SAVINGS_ELASTICSEARCH or ELASTICSEARCH_SERVICE_HOST/PORT."`
}

func (c *exportCmd) Run(s *session) error {
	urls := c.ES
	if len(urls) == 0 {
		urls = s.cfg.Elasticsearch
	}

	es := store.NewElasticsearchV8(s.engine.Location(), urls...)
	txns := s.engine.State().Transactions

	fmt.Fprintf(s.out, "Exporting %d transactions to %s\n", len(txns), strings.Join(es.Addresses(), ", "))
	return es.Export(s.ctx, txns)
}

type keygenCmd struct{}

func (c *keygenCmd) Run(s *session) error {
	key, err := crypto.NewRandomKey()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(s.out, key)
	return err
}

// parseEntry validates user input before any engine operation is invoked.
func parseEntry(s *session, rawAmount, rawDate string) (decimal.Decimal, time.Time, error) {
	amount, err := domain.ParseAmount(rawAmount)
	if err != nil {
		return decimal.Zero, time.Time{}, fmt.Errorf("%q is not a positive amount: %w", rawAmount, err)
	}

	date := s.engine.Now()
	if rawDate != "" {
		date, err = domain.ParseDate(rawDate, s.engine.Location())
		if err != nil {
			return decimal.Zero, time.Time{}, err
		}
	}
	return amount, date, nil
}

func printTotals(s *session) error {
	state := s.engine.State()
	_, err := fmt.Fprintf(s.out, "Total savings: %s  Today: %s\n",
		domain.FormatAmount(state.TotalSavings),
		domain.FormatAmount(state.TodaySavings),
	)
	return err
}

func confirm(s *session, question string) bool {
	fmt.Fprintf(s.out, "%s [y/N] ", question)
	answer, _ := bufio.NewReader(s.in).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}
