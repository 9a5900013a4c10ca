package apictx

import (
	"context"

	"github.com/google/uuid"

	"github.com/postline/postline-auth/internal/model"
)

type contextKey int

const accountIDKey contextKey = iota

var _ model.ContextManager = (*Manager)(nil)

// Manager stores and retrieves the authenticated account ID on a request
// context.
type Manager struct{}

func NewManager() *Manager {
	return &Manager{}
}

func (m *Manager) SetAccountIDToContext(ctx context.Context, accountID uuid.UUID) context.Context {
	return context.WithValue(ctx, accountIDKey, accountID)
}

func (m *Manager) GetAccountIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	accountID, ok := ctx.Value(accountIDKey).(uuid.UUID)
	return accountID, ok
}
