package domain

import "errors"

var (
	// ErrInvalidIdentityKey is returned when an entity key is malformed at admission time.
	// The offending record is skipped; the rest of the batch continues.
	ErrInvalidIdentityKey = errors.New("invalid identity key")

	// ErrProviderFailure is returned when an external fetch fails
	ErrProviderFailure = errors.New("provider request failed")

	// ErrRateLimited is returned when an external provider rejects a call with 429.
	// No automatic retry is performed; retry is a manual re-invocation.
	ErrRateLimited = errors.New("provider rate limited")

	// ErrProfileNotFound is returned when a profile lookup misses.
	// Not a hard failure: callers fall back to a deterministic placeholder identity.
	ErrProfileNotFound = errors.New("profile not found")

	// ErrSessionNotFound is returned when a session ID is unknown
	ErrSessionNotFound = errors.New("session not found")

	// ErrTokenNotTracked is returned when an operation references a token the
	// session has not admitted yet
	ErrTokenNotTracked = errors.New("token not tracked in session")

	// ErrContractBlocked is returned when an operation references a contract on
	// the configured blocklist
	ErrContractBlocked = errors.New("contract is blocked")
)
