package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// AccountType distinguishes how an account proves its identity.
type AccountType string

const (
	// AccountTypeLocal authenticates with a locally stored secret.
	AccountTypeLocal AccountType = "local"
	// AccountTypeFederated authenticates through an external provider's
	// verified-email assertion.
	AccountTypeFederated AccountType = "federated"
)

// FederatedSecretPlaceholder is stored as the secret hash of federated
// accounts. It is not a valid bcrypt hash, so verification against it
// always fails.
const FederatedSecretPlaceholder = "!federated"

// Account represents a stored identity. Handle is unique across all
// accounts; email is unique within an account type, so a local and a
// federated account may share an email while a conflict is unresolved.
type Account struct {
	ID         uuid.UUID
	Handle     string
	Email      string
	SecretHash string
	Type       AccountType
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// AccountStore defines persistence operations for accounts and their
// active refresh credentials. Refresh credentials are keyed by their
// SHA-256 hash; the store never sees raw token strings.
type AccountStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (Account, error)
	GetByHandle(ctx context.Context, handle string) (Account, error)
	GetByEmail(ctx context.Context, email string) (Account, error)
	// ListByEmail returns every account claiming the email, regardless
	// of type.
	ListByEmail(ctx context.Context, email string) ([]Account, error)
	// GetByHandleOrEmail returns the first account matching either
	// field, for registration collision probes.
	GetByHandleOrEmail(ctx context.Context, handle, email string) (Account, error)
	Create(ctx context.Context, account Account) (Account, error)

	AppendRefreshCredential(ctx context.Context, accountID uuid.UUID, credentialHash []byte) error
	// SwapRefreshCredential removes oldHash and adds newHash in one
	// atomic conditional operation. If oldHash is not present (already
	// rotated, or never issued) it returns ErrCredentialNotFound and
	// writes nothing; under concurrent rotation exactly one caller
	// succeeds.
	SwapRefreshCredential(ctx context.Context, accountID uuid.UUID, oldHash, newHash []byte) error
}
