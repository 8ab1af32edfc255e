package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a single deposit (positive Amount) or withdrawal (negative Amount).
type Transaction struct {
	Amount decimal.Decimal
	Date   time.Time
}

// wireTransaction is the persisted form: amount as a bare JSON number and the
// date as an RFC 3339 timestamp, the same shape a browser writes with
// JSON.stringify.
type wireTransaction struct {
	Amount json.Number `json:"amount"`
	Date   string      `json:"date"`
}

// IsDeposit reports if the transaction added money.
func (t Transaction) IsDeposit() bool {
	return t.Amount.IsPositive()
}

func (t Transaction) MarshalJSON() ([]byte, error) {
	return json.Marshal(wireTransaction{
		Amount: json.Number(t.Amount.String()),
		Date:   t.Date.UTC().Format(time.RFC3339Nano),
	})
}

func (t *Transaction) UnmarshalJSON(data []byte) error {
	raw := wireTransaction{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	amount, err := decimal.NewFromString(raw.Amount.String())
	if err != nil {
		return fmt.Errorf("transaction amount %q: %w", raw.Amount, err)
	}

	date, err := time.Parse(time.RFC3339Nano, raw.Date)
	if err != nil {
		return fmt.Errorf("transaction date %q: %w", raw.Date, err)
	}

	t.Amount = amount
	t.Date = date
	return nil
}

// EncodeHistory serialises a history in the persisted JSON array format.
func EncodeHistory(txns []Transaction) (string, error) {
	if txns == nil {
		txns = []Transaction{}
	}
	data, err := json.Marshal(txns)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// DecodeHistory is the inverse of EncodeHistory. A JSON null decodes to an
// empty history.
func DecodeHistory(data string) ([]Transaction, error) {
	txns := []Transaction{}
	if err := json.Unmarshal([]byte(data), &txns); err != nil {
		return nil, err
	}
	if txns == nil {
		txns = []Transaction{}
	}
	return txns, nil
}
