package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/postline/postline-auth/internal/model"
)

// IdentityProvider is a testify mock of model.IdentityProvider.
type IdentityProvider struct {
	mock.Mock
}

var _ model.IdentityProvider = (*IdentityProvider)(nil)

func (m *IdentityProvider) ExchangeCode(ctx context.Context, code string) (model.FederatedIdentity, error) {
	args := m.Called(ctx, code)
	return args.Get(0).(model.FederatedIdentity), args.Error(1)
}
