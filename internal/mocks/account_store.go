package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/postline/postline-auth/internal/model"
)

// AccountStore is a testify mock of model.AccountStore.
type AccountStore struct {
	mock.Mock
}

var _ model.AccountStore = (*AccountStore)(nil)

func (m *AccountStore) GetByID(ctx context.Context, id uuid.UUID) (model.Account, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.Account), args.Error(1)
}

func (m *AccountStore) GetByHandle(ctx context.Context, handle string) (model.Account, error) {
	args := m.Called(ctx, handle)
	return args.Get(0).(model.Account), args.Error(1)
}

func (m *AccountStore) GetByEmail(ctx context.Context, email string) (model.Account, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(model.Account), args.Error(1)
}

func (m *AccountStore) ListByEmail(ctx context.Context, email string) ([]model.Account, error) {
	args := m.Called(ctx, email)
	var accounts []model.Account
	if v := args.Get(0); v != nil {
		accounts = v.([]model.Account)
	}
	return accounts, args.Error(1)
}

func (m *AccountStore) GetByHandleOrEmail(ctx context.Context, handle, email string) (model.Account, error) {
	args := m.Called(ctx, handle, email)
	return args.Get(0).(model.Account), args.Error(1)
}

func (m *AccountStore) Create(ctx context.Context, account model.Account) (model.Account, error) {
	args := m.Called(ctx, account)
	return args.Get(0).(model.Account), args.Error(1)
}

func (m *AccountStore) AppendRefreshCredential(ctx context.Context, accountID uuid.UUID, credentialHash []byte) error {
	args := m.Called(ctx, accountID, credentialHash)
	return args.Error(0)
}

func (m *AccountStore) SwapRefreshCredential(ctx context.Context, accountID uuid.UUID, oldHash, newHash []byte) error {
	args := m.Called(ctx, accountID, oldHash, newHash)
	return args.Error(0)
}
