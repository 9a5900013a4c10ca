package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/postline/postline-auth/internal/logger"
	"github.com/postline/postline-auth/internal/model"
)

// Session orchestrates registration, password login, federated login and
// logout. It is the only component that mutates the account store beyond
// simple reads.
type Session struct {
	accounts model.AccountStore
	hasher   model.PasswordHasher
	provider model.IdentityProvider
	tokens   *TokenService
	logger   *logger.Logger
}

func NewSession(
	accounts model.AccountStore,
	hasher model.PasswordHasher,
	provider model.IdentityProvider,
	tokens *TokenService,
	logger *logger.Logger,
) *Session {
	return &Session{
		accounts: accounts,
		hasher:   hasher,
		provider: provider,
		tokens:   tokens,
		logger:   logger,
	}
}

// RegisterParams is the input to Register.
type RegisterParams struct {
	Handle string
	Email  string
	Secret string
}

// LoginParams is the input to LoginLocal. Login may be a handle or an
// email; a handle match wins when both would resolve.
type LoginParams struct {
	Login  string
	Secret string
}

// Register creates a local account. A collision with an existing handle or
// email returns a RegistrationConflictError naming the colliding fields.
// The returned account carries public fields only.
func (s *Session) Register(ctx context.Context, params RegisterParams) (model.Account, error) {
	existing, err := s.accounts.GetByHandleOrEmail(ctx, params.Handle, params.Email)
	if err != nil && !errors.Is(err, model.ErrNotFound) {
		return model.Account{}, fmt.Errorf("failed to probe existing account: %w", err)
	}
	if err == nil {
		s.logger.Info("Session service: registration collision",
			"handle", params.Handle)
		return model.Account{}, &model.RegistrationConflictError{
			HandleTaken: existing.Handle == params.Handle,
			EmailTaken:  existing.Email == params.Email,
		}
	}

	secretHash, err := s.hasher.Hash(params.Secret)
	if err != nil {
		return model.Account{}, fmt.Errorf("failed to hash secret: %w", err)
	}

	now := time.Now()
	account := model.Account{
		ID:         uuid.New(),
		Handle:     params.Handle,
		Email:      params.Email,
		SecretHash: secretHash,
		Type:       model.AccountTypeLocal,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	created, err := s.accounts.Create(ctx, account)
	if err != nil {
		if errors.Is(err, model.ErrDuplicate) {
			// Lost a race with a concurrent registration; report the
			// collision the same way the probe would have.
			return model.Account{}, s.registrationConflict(ctx, params.Handle, params.Email)
		}
		return model.Account{}, fmt.Errorf("failed to create account: %w", err)
	}

	s.logger.Info("Session service: account registered",
		"handle", created.Handle,
		"account_id", created.ID)

	created.SecretHash = ""
	return created, nil
}

func (s *Session) registrationConflict(ctx context.Context, handle, email string) error {
	existing, err := s.accounts.GetByHandleOrEmail(ctx, handle, email)
	if err != nil {
		return &model.RegistrationConflictError{HandleTaken: true, EmailTaken: true}
	}
	return &model.RegistrationConflictError{
		HandleTaken: existing.Handle == handle,
		EmailTaken:  existing.Email == email,
	}
}

// LoginLocal authenticates a password account and issues a credential
// pair. Unknown account and wrong secret are indistinguishable to the
// caller.
func (s *Session) LoginLocal(ctx context.Context, params LoginParams) (model.CredentialPair, error) {
	account, err := s.accounts.GetByHandle(ctx, params.Login)
	if errors.Is(err, model.ErrNotFound) {
		account, err = s.accounts.GetByEmail(ctx, params.Login)
	}
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			s.logger.Info("Session service: password login failed",
				"login", params.Login)
			return model.CredentialPair{}, model.ErrUnauthorized
		}
		return model.CredentialPair{}, fmt.Errorf("failed to get account: %w", err)
	}

	if !s.hasher.Verify(params.Secret, account.SecretHash) {
		s.logger.Info("Session service: password login failed",
			"login", params.Login)
		return model.CredentialPair{}, model.ErrUnauthorized
	}

	pair, err := s.tokens.Issue(ctx, account.ID)
	if err != nil {
		return model.CredentialPair{}, fmt.Errorf("failed to issue credentials: %w", err)
	}

	s.logger.Info("Session service: password login succeeded",
		"handle", account.Handle,
		"account_id", account.ID)

	return pair, nil
}

// LoginFederated resolves the provider's verified email to a federated
// account, creating one on first login. An email owned by a password
// account is a conflict: nothing is created, modified or linked.
func (s *Session) LoginFederated(ctx context.Context, code string) (model.CredentialPair, error) {
	identity, err := s.provider.ExchangeCode(ctx, code)
	if err != nil {
		return model.CredentialPair{}, fmt.Errorf("failed to exchange authorization code: %w", err)
	}

	if identity.Email == "" || !identity.EmailVerified {
		s.logger.Info("Session service: federated login rejected, email not verified")
		return model.CredentialPair{}, model.ErrUnauthorized
	}

	account, err := s.resolveFederated(ctx, identity)
	if err != nil {
		return model.CredentialPair{}, err
	}

	pair, err := s.tokens.Issue(ctx, account.ID)
	if err != nil {
		return model.CredentialPair{}, fmt.Errorf("failed to issue credentials: %w", err)
	}

	s.logger.Info("Session service: federated login succeeded",
		"handle", account.Handle,
		"account_id", account.ID)

	return pair, nil
}

func (s *Session) resolveFederated(ctx context.Context, identity model.FederatedIdentity) (model.Account, error) {
	matches, err := s.accounts.ListByEmail(ctx, identity.Email)
	if err != nil {
		return model.Account{}, fmt.Errorf("failed to list accounts by email: %w", err)
	}

	var federated *model.Account
	for i := range matches {
		switch matches[i].Type {
		case model.AccountTypeLocal:
			s.logger.Info("Session service: federated login conflicts with password account",
				"email", identity.Email)
			return model.Account{}, &model.FederatedConflictError{Email: identity.Email}
		case model.AccountTypeFederated:
			federated = &matches[i]
		}
	}
	if federated != nil {
		return *federated, nil
	}

	now := time.Now()
	account := model.Account{
		ID:         uuid.New(),
		Handle:     deriveHandle(identity.DisplayName),
		Email:      identity.Email,
		SecretHash: model.FederatedSecretPlaceholder,
		Type:       model.AccountTypeFederated,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	created, err := s.accounts.Create(ctx, account)
	if err != nil {
		if errors.Is(err, model.ErrDuplicate) {
			// A concurrent first login created the account; resolve to it.
			return s.resolveFederated(ctx, identity)
		}
		return model.Account{}, fmt.Errorf("failed to create federated account: %w", err)
	}

	s.logger.Info("Session service: federated account created",
		"handle", created.Handle,
		"account_id", created.ID)

	return created, nil
}

// Logout acknowledges the client's logout. No credential is revoked server
// side: the refresh credential stays in the active set until rotated or
// expired.
func (s *Session) Logout(ctx context.Context) {
	s.logger.Debug("Session service: logout acknowledged")
}

// deriveHandle builds a unique-enough handle for a first federated login
// from the provider's display name and a timestamp fragment.
func deriveHandle(displayName string) string {
	base := strings.ReplaceAll(strings.TrimSpace(displayName), " ", "-")
	if base == "" {
		base = "member"
	}
	ms := strconv.FormatInt(time.Now().UnixMilli(), 10)
	return base + "-" + ms[len(ms)-5:]
}
