package service

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/postline/postline-auth/internal/logger"
	"github.com/postline/postline-auth/internal/model"
)

// TokenService issues and rotates credential pairs. It composes the
// TokenManager (signing) and the AccountStore (the active refresh set,
// which is the sole revocation mechanism: access credentials are stateless
// and expire on their own).
type TokenService struct {
	manager model.TokenManager
	store   model.AccountStore
	logger  *logger.Logger
}

func NewTokenService(manager model.TokenManager, store model.AccountStore, logger *logger.Logger) *TokenService {
	return &TokenService{manager: manager, store: store, logger: logger}
}

// Issue mints a credential pair for the account and registers the refresh
// half in the account's active set.
func (s *TokenService) Issue(ctx context.Context, accountID uuid.UUID) (model.CredentialPair, error) {
	access, err := s.manager.GenerateAccessToken(accountID)
	if err != nil {
		return model.CredentialPair{}, fmt.Errorf("issue access: %w", err)
	}

	refresh, err := s.manager.GenerateRefreshToken(accountID)
	if err != nil {
		return model.CredentialPair{}, fmt.Errorf("issue refresh: %w", err)
	}

	if err := s.store.AppendRefreshCredential(ctx, accountID, hashCredential(refresh)); err != nil {
		return model.CredentialPair{}, fmt.Errorf("persist refresh: %w", err)
	}

	return model.CredentialPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Refresh rotates a refresh credential: the presented credential leaves the
// active set and a new pair is minted, in one conditional store operation.
// A credential that is not in the set, whether forged or already consumed
// by an earlier rotation, yields ErrUnauthorized and mints nothing; when
// two rotations race on the same credential the store lets exactly one win.
func (s *TokenService) Refresh(ctx context.Context, presented string) (model.CredentialPair, error) {
	accountID, err := s.manager.ParseRefreshToken(presented)
	if err != nil {
		return model.CredentialPair{}, err
	}

	access, err := s.manager.GenerateAccessToken(accountID)
	if err != nil {
		return model.CredentialPair{}, fmt.Errorf("issue new access: %w", err)
	}

	refresh, err := s.manager.GenerateRefreshToken(accountID)
	if err != nil {
		return model.CredentialPair{}, fmt.Errorf("issue new refresh: %w", err)
	}

	err = s.store.SwapRefreshCredential(ctx, accountID, hashCredential(presented), hashCredential(refresh))
	if err != nil {
		if errors.Is(err, model.ErrCredentialNotFound) || errors.Is(err, model.ErrNotFound) {
			s.logger.Info("Token service: refresh credential not in active set",
				"account_id", accountID)
			return model.CredentialPair{}, model.ErrUnauthorized
		}
		return model.CredentialPair{}, fmt.Errorf("rotate refresh: %w", err)
	}

	return model.CredentialPair{AccessToken: access, RefreshToken: refresh}, nil
}

// GetAccountID resolves the account from an access credential. Purely
// cryptographic; the store is never consulted.
func (s *TokenService) GetAccountID(ctx context.Context, token string) (uuid.UUID, error) {
	return s.manager.ParseAccessToken(token)
}

// hashCredential is the at-rest form of a refresh credential; the store
// never sees raw token strings.
func hashCredential(token string) []byte {
	h := sha256.Sum256([]byte(token))
	return h[:]
}
