package service

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/postline/postline-auth/internal/mocks"
	"github.com/postline/postline-auth/internal/model"
	"github.com/postline/postline-auth/internal/testutil"
	"github.com/postline/postline-auth/internal/token"
)

func TestTokenService_Issue(t *testing.T) {
	ctx := context.Background()
	accountID := uuid.New()

	manager := &mocks.TokenManager{}
	store := &mocks.AccountStore{}

	manager.On("GenerateAccessToken", accountID).Return("access", nil).Once()
	manager.On("GenerateRefreshToken", accountID).Return("refresh", nil).Once()
	store.On("AppendRefreshCredential", ctx, accountID, hashCredential("refresh")).Return(nil).Once()

	svc := NewTokenService(manager, store, testutil.MakeNoopLogger())

	pair, err := svc.Issue(ctx, accountID)
	require.NoError(t, err)
	assert.Equal(t, "access", pair.AccessToken)
	assert.Equal(t, "refresh", pair.RefreshToken)
	store.AssertExpectations(t)
}

func TestTokenService_Issue_ManagerError(t *testing.T) {
	ctx := context.Background()
	accountID := uuid.New()

	manager := &mocks.TokenManager{}
	store := &mocks.AccountStore{}

	manager.On("GenerateAccessToken", accountID).Return("", assert.AnError).Once()

	svc := NewTokenService(manager, store, testutil.MakeNoopLogger())

	_, err := svc.Issue(ctx, accountID)
	require.Error(t, err)
	store.AssertNotCalled(t, "AppendRefreshCredential", mock.Anything, mock.Anything, mock.Anything)
}

func TestTokenService_Refresh_Success(t *testing.T) {
	ctx := context.Background()
	accountID := uuid.New()
	presented := "refresh-old"

	manager := &mocks.TokenManager{}
	store := &mocks.AccountStore{}

	manager.On("ParseRefreshToken", presented).Return(accountID, nil).Once()
	manager.On("GenerateAccessToken", accountID).Return("access-new", nil).Once()
	manager.On("GenerateRefreshToken", accountID).Return("refresh-new", nil).Once()
	store.On("SwapRefreshCredential", ctx, accountID, hashCredential(presented), hashCredential("refresh-new")).
		Return(nil).Once()

	svc := NewTokenService(manager, store, testutil.MakeNoopLogger())

	pair, err := svc.Refresh(ctx, presented)
	require.NoError(t, err)
	assert.Equal(t, "access-new", pair.AccessToken)
	assert.Equal(t, "refresh-new", pair.RefreshToken)
	store.AssertExpectations(t)
}

func TestTokenService_Refresh_Replay(t *testing.T) {
	ctx := context.Background()
	accountID := uuid.New()
	presented := "refresh-consumed"

	manager := &mocks.TokenManager{}
	store := &mocks.AccountStore{}

	manager.On("ParseRefreshToken", presented).Return(accountID, nil).Once()
	manager.On("GenerateAccessToken", accountID).Return("access-new", nil).Once()
	manager.On("GenerateRefreshToken", accountID).Return("refresh-new", nil).Once()
	store.On("SwapRefreshCredential", ctx, accountID, mock.Anything, mock.Anything).
		Return(model.ErrCredentialNotFound).Once()

	svc := NewTokenService(manager, store, testutil.MakeNoopLogger())

	pair, err := svc.Refresh(ctx, presented)
	require.ErrorIs(t, err, model.ErrUnauthorized)
	assert.Empty(t, pair.AccessToken)
	assert.Empty(t, pair.RefreshToken)
}

func TestTokenService_Refresh_TypedParseErrorsPassThrough(t *testing.T) {
	ctx := context.Background()

	manager := &mocks.TokenManager{}
	store := &mocks.AccountStore{}

	manager.On("ParseRefreshToken", "an-access-token").Return(uuid.Nil, model.ErrTokenInvalidType).Once()

	svc := NewTokenService(manager, store, testutil.MakeNoopLogger())

	_, err := svc.Refresh(ctx, "an-access-token")
	require.ErrorIs(t, err, model.ErrTokenInvalidType)
	store.AssertNotCalled(t, "SwapRefreshCredential", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestTokenService_GetAccountID(t *testing.T) {
	accountID := uuid.New()

	manager := &mocks.TokenManager{}
	manager.On("ParseAccessToken", "access").Return(accountID, nil).Once()

	svc := NewTokenService(manager, &mocks.AccountStore{}, testutil.MakeNoopLogger())

	got, err := svc.GetAccountID(context.Background(), "access")
	require.NoError(t, err)
	assert.Equal(t, accountID, got)
}

// memCredentialStore implements the conditional swap in memory, so the
// rotation race can be exercised without a database.
type memCredentialStore struct {
	mocks.AccountStore

	mu     sync.Mutex
	hashes [][]byte
}

func (s *memCredentialStore) AppendRefreshCredential(_ context.Context, _ uuid.UUID, credentialHash []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hashes = append(s.hashes, credentialHash)
	return nil
}

func (s *memCredentialStore) SwapRefreshCredential(_ context.Context, _ uuid.UUID, oldHash, newHash []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, h := range s.hashes {
		if bytes.Equal(h, oldHash) {
			s.hashes[i] = newHash
			return nil
		}
	}
	return model.ErrCredentialNotFound
}

func TestTokenService_Refresh_ConcurrentRotationSingleWinner(t *testing.T) {
	ctx := context.Background()
	accountID := uuid.New()

	manager := token.NewJWT("secret", time.Hour, 24*time.Hour)
	store := &memCredentialStore{}
	svc := NewTokenService(manager, store, testutil.MakeNoopLogger())

	pair, err := svc.Issue(ctx, accountID)
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.Refresh(ctx, pair.RefreshToken)
		}(i)
	}
	wg.Wait()

	var successes, unauthorized int
	for _, err := range errs {
		switch {
		case err == nil:
			successes++
		case errors.Is(err, model.ErrUnauthorized):
			unauthorized++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, unauthorized)

	// Exactly one credential remains and it is not the consumed one.
	require.Len(t, store.hashes, 1)
	assert.False(t, bytes.Equal(store.hashes[0], hashCredential(pair.RefreshToken)))
}
