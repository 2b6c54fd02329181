package service

import (
	"errors"

	"github.com/Neelshah1810/GHXChange/internal/store"
)

// The service error taxonomy. Handlers map these to HTTP statuses; callers
// compare with errors.Is. Every operation validates before mutating, so any
// of these returned from a lifecycle operation means state is unchanged.
var (
	// ErrValidation marks malformed or out-of-range input.
	ErrValidation = errors.New("validation error")

	// ErrNotFound marks a missing wallet, certificate, or user.
	ErrNotFound = errors.New("not found")

	// ErrConflict marks a duplicate username or handle.
	ErrConflict = errors.New("conflict")

	// ErrUnauthenticated marks a credential mismatch.
	ErrUnauthenticated = errors.New("invalid username or password")

	// ErrRoleMismatch marks a login under the wrong role: the user exists
	// but is registered under a different role.
	ErrRoleMismatch = errors.New("role mismatch")

	// ErrInsufficientFunds marks a transfer or retirement exceeding the
	// wallet balance.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInvalidState marks a certificate lifecycle transition from a
	// state that does not permit it.
	ErrInvalidState = errors.New("invalid certificate state")

	// ErrPolicyViolation marks a role switch that fails the balance
	// threshold.
	ErrPolicyViolation = errors.New("policy violation")
)

// mapStoreError translates store sentinels into the service taxonomy.
func mapStoreError(err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return ErrNotFound
	case errors.Is(err, store.ErrConflict):
		return ErrConflict
	case errors.Is(err, store.ErrInsufficientFunds):
		return ErrInsufficientFunds
	case errors.Is(err, store.ErrInvalidState):
		return ErrInvalidState
	default:
		return err
	}
}
