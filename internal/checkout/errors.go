package checkout

import "errors"

var (
	// ErrInvalidArgument is returned before any I/O when the input is malformed.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotFound means no checkout exists for the id. Callers should stop
	// polling.
	ErrNotFound = errors.New("checkout not found")

	// ErrVerificationUnavailable means the payment provider could not be
	// reached or returned an error. The condition is transient.
	ErrVerificationUnavailable = errors.New("payment verification unavailable")

	// ErrCancelled means the caller cancelled the verification call or its
	// deadline passed. Errors carrying it also match
	// ErrVerificationUnavailable.
	ErrCancelled = errors.New("payment verification cancelled")
)
