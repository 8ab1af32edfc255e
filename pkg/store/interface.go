package store

import (
	"context"

	"github.com/sagar-psycho/savings.io/pkg/domain"
)

// KV is a flat string key/value backend.
type KV interface {
	// Get returns the value for key and whether it was present.
	Get(ctx context.Context, key string) (string, bool, error)

	// SetMany writes every entry of values in a single operation.
	SetMany(ctx context.Context, values map[string]string) error

	Close() error
}

// Exporter ships a copy of the history somewhere else.
type Exporter interface {
	Export(ctx context.Context, txns []domain.Transaction) error
}
