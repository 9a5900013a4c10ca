package mocks

import (
	"github.com/stretchr/testify/mock"

	"github.com/postline/postline-auth/internal/model"
)

// PasswordHasher is a testify mock of model.PasswordHasher.
type PasswordHasher struct {
	mock.Mock
}

var _ model.PasswordHasher = (*PasswordHasher)(nil)

func (m *PasswordHasher) Hash(secret string) (string, error) {
	args := m.Called(secret)
	return args.String(0), args.Error(1)
}

func (m *PasswordHasher) Verify(secret, hash string) bool {
	args := m.Called(secret, hash)
	return args.Bool(0)
}
