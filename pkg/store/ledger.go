package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sagar-psycho/savings.io/pkg/domain"
	"github.com/shopspring/decimal"
)

// Keys under which the ledger is persisted.
const (
	KeyTotalSavings   = "totalSavings"
	KeyTodaySavings   = "todaySavings"
	KeyLastSavedDate  = "lastSavedDate"
	KeySavingsHistory = "savingsHistory"
)

// LedgerStore maps a LedgerState onto four KV entries.
type LedgerStore struct {
	kv  KV
	loc *time.Location
	now func() time.Time
}

// NewLedgerStore reads and writes dates in loc; now supplies the default
// rollover date for a store that has none.
func NewLedgerStore(kv KV, loc *time.Location, now func() time.Time) *LedgerStore {
	if loc == nil {
		loc = time.Local
	}
	if now == nil {
		now = time.Now
	}
	return &LedgerStore{kv: kv, loc: loc, now: now}
}

// Load reads the ledger. Missing or unreadable values fall back to their
// first-run defaults; only backend failures are returned.
func (s *LedgerStore) Load(ctx context.Context) (domain.LedgerState, error) {
	state := domain.NewLedgerState(s.now(), s.loc)

	if raw, ok, err := s.get(ctx, KeyTotalSavings); err != nil {
		return state, err
	} else if ok {
		if d, err := decimal.NewFromString(raw); err == nil {
			state.TotalSavings = d
		} else {
			warnDefault(KeyTotalSavings, err)
		}
	}

	if raw, ok, err := s.get(ctx, KeyTodaySavings); err != nil {
		return state, err
	} else if ok {
		if d, err := decimal.NewFromString(raw); err == nil {
			state.TodaySavings = d
		} else {
			warnDefault(KeyTodaySavings, err)
		}
	}

	if raw, ok, err := s.get(ctx, KeyLastSavedDate); err != nil {
		return state, err
	} else if ok {
		if t, err := domain.ParseDate(raw, s.loc); err == nil {
			state.LastRolloverDate = t
		} else {
			warnDefault(KeyLastSavedDate, err)
		}
	}

	if raw, ok, err := s.get(ctx, KeySavingsHistory); err != nil {
		return state, err
	} else if ok {
		if txns, err := domain.DecodeHistory(raw); err == nil {
			state.Transactions = txns
		} else {
			warnDefault(KeySavingsHistory, err)
		}
	}

	return state, nil
}

// Save writes all four keys in one backend call.
func (s *LedgerStore) Save(ctx context.Context, state domain.LedgerState) error {
	history, err := domain.EncodeHistory(state.Transactions)
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}

	err = s.kv.SetMany(ctx, map[string]string{
		KeyTotalSavings:   domain.FormatAmount(state.TotalSavings),
		KeyTodaySavings:   domain.FormatAmount(state.TodaySavings),
		KeyLastSavedDate:  domain.FormatDate(state.LastRolloverDate, s.loc),
		KeySavingsHistory: history,
	})
	if err != nil {
		return fmt.Errorf("save ledger: %w", err)
	}
	return nil
}

// get treats a backend-level ErrStorageRead (corrupt file, malformed seal) as
// a missing value. Any other error, ErrWrongPassphrase included, is returned.
func (s *LedgerStore) get(ctx context.Context, key string) (string, bool, error) {
	v, ok, err := s.kv.Get(ctx, key)
	if errors.Is(err, domain.ErrStorageRead) {
		warnDefault(key, err)
		return "", false, nil
	}
	return v, ok, err
}

func warnDefault(key string, err error) {
	log.Warn().Err(err).Str("key", key).Msg("stored value unreadable, using default")
}
