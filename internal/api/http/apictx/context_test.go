package apictx

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestManager_Roundtrip(t *testing.T) {
	m := NewManager()
	accountID := uuid.New()

	ctx := m.SetAccountIDToContext(context.Background(), accountID)

	got, ok := m.GetAccountIDFromContext(ctx)
	require.True(t, ok)
	require.Equal(t, accountID, got)
}

func TestManager_Missing(t *testing.T) {
	m := NewManager()

	got, ok := m.GetAccountIDFromContext(context.Background())
	require.False(t, ok)
	require.Equal(t, uuid.Nil, got)
}
