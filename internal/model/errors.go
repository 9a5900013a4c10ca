package model

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate indicates a store-level uniqueness violation.
	ErrDuplicate = errors.New("duplicate value")
	// ErrUnauthorized covers every credential failure: unknown account,
	// wrong secret, stale or forged token. Callers must not produce a
	// more specific message, to prevent account enumeration.
	ErrUnauthorized = errors.New("invalid credentials")
	// ErrCredentialNotFound is returned by SwapRefreshCredential when the
	// presented refresh credential is not in the account's active set.
	ErrCredentialNotFound = errors.New("refresh credential not active")
)

// RegistrationConflictError reports which fields of a registration
// attempt collided with an existing account.
type RegistrationConflictError struct {
	HandleTaken bool
	EmailTaken  bool
}

func (e *RegistrationConflictError) Error() string {
	return fmt.Sprintf("account already exists (handle taken: %t, email taken: %t)", e.HandleTaken, e.EmailTaken)
}

// FederatedConflictError is returned by federated login when a local
// password account already owns the verified email. The caller must log
// in with the password account instead; no linking happens here.
type FederatedConflictError struct {
	Email string
}

func (e *FederatedConflictError) Error() string {
	return fmt.Sprintf("email %s is owned by a password account", e.Email)
}
