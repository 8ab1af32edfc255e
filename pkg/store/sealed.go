package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/sagar-psycho/savings.io/pkg/crypto"
	"github.com/sagar-psycho/savings.io/pkg/domain"
)

// Sealed encrypts and signs every value before handing it to the wrapped KV.
// Keys are stored in the clear.
type Sealed struct {
	inner         KV
	keyEncryption string
	keySignature  string
}

// check it meets the interface
var _ KV = &Sealed{}

// NewSealed wraps inner with keys derived from passphrase.
func NewSealed(inner KV, passphrase string) *Sealed {
	enc, sig := crypto.DeriveKeys(passphrase)
	return &Sealed{inner: inner, keyEncryption: enc, keySignature: sig}
}

// Get returns ErrWrongPassphrase when the value was sealed with other keys,
// and ErrStorageRead when it is not a sealed value at all.
func (s *Sealed) Get(ctx context.Context, key string) (string, bool, error) {
	blob, ok, err := s.inner.Get(ctx, key)
	if err != nil || !ok {
		return "", ok, err
	}

	plain, err := crypto.Decrypt(blob, s.keyEncryption, s.keySignature)
	if errors.Is(err, crypto.ErrSignature) {
		return "", false, fmt.Errorf("%w: %s", domain.ErrWrongPassphrase, key)
	}
	if err != nil {
		return "", false, fmt.Errorf("%w: %s: %v", domain.ErrStorageRead, key, err)
	}
	return string(plain), true, nil
}

func (s *Sealed) SetMany(ctx context.Context, values map[string]string) error {
	sealed := make(map[string]string, len(values))
	for k, v := range values {
		blob, err := crypto.Encrypt([]byte(v), s.keyEncryption, s.keySignature)
		if err != nil {
			return fmt.Errorf("seal %s: %w", k, err)
		}
		sealed[k] = blob
	}
	return s.inner.SetMany(ctx, sealed)
}

func (s *Sealed) Close() error {
	return s.inner.Close()
}
