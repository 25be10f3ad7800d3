package contract

import "errors"

var (
	// ErrConfiguration marks a missing credential or assistant identity.
	// It surfaces before any network call is attempted.
	ErrConfiguration = errors.New("configuration incomplete")

	// ErrEmptyQuestion is recoverable by re-asking.
	ErrEmptyQuestion = errors.New("question is empty")

	// ErrCatalogNotFound is returned by catalog lookups on a miss and
	// propagated to the caller as-is.
	ErrCatalogNotFound = errors.New("catalog entry not found")

	// ErrRunFailed wraps a remote run that ended FAILED, CANCELLED or
	// EXPIRED; the terminal status is embedded in the message.
	ErrRunFailed = errors.New("assistant run failed")

	// ErrRunTimeout means the local wall-clock budget ran out while the
	// remote run was still in flight. The remote run is not cancelled.
	ErrRunTimeout = errors.New("assistant run timed out")
)
