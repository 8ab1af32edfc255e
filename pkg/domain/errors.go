package domain

import "errors"

var (
	// ErrInvalidAmount is returned for amounts that are not finite positive
	// numbers, or are larger than MaxAmount.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrIndexOutOfRange is returned when a transaction index no longer exists.
	ErrIndexOutOfRange = errors.New("transaction index out of range")

	// ErrStorageRead marks a persisted value that could not be decoded.
	ErrStorageRead = errors.New("unreadable stored value")

	// ErrWrongPassphrase is returned when sealed values fail their signature
	// check. It is never treated as an unreadable value, so a ledger sealed
	// under another passphrase is not replaced by an empty one.
	ErrWrongPassphrase = errors.New("stored values are sealed with a different passphrase")

	// ErrNothingStaged is returned when confirming an action that was never requested.
	ErrNothingStaged = errors.New("no pending action to confirm")
)
