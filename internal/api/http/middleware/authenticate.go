package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/postline/postline-auth/internal/logger"
	"github.com/postline/postline-auth/internal/model"
)

// TokenService resolves the account ID from a bearer access credential.
type TokenService interface {
	GetAccountID(ctx context.Context, token string) (uuid.UUID, error)
}

// Authenticate is the authorization gate: it verifies the access
// credential on every request and injects the resolved account ID into the
// request context. Verification is purely cryptographic; the identity
// store is never consulted here.
type Authenticate struct {
	tokenService   TokenService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(tokenService TokenService, contextManager model.ContextManager, logger *logger.Logger) *Authenticate {
	return &Authenticate{tokenService: tokenService, contextManager: contextManager, logger: logger}
}

// Handler wraps next so it only runs for requests carrying a valid access
// credential.
func (m *Authenticate) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")

		accountID, err := m.authenticate(r.Context(), tokenString)
		if err != nil {
			m.logger.Debug("Authenticate middleware: request rejected",
				"path", r.URL.Path)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"invalid credentials"}`))
			return
		}

		ctx := m.contextManager.SetAccountIDToContext(r.Context(), accountID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *Authenticate) authenticate(ctx context.Context, tokenString string) (uuid.UUID, error) {
	if tokenString == "" {
		return uuid.Nil, model.ErrUnauthorized
	}

	accountID, err := m.tokenService.GetAccountID(ctx, tokenString)
	if err != nil {
		return uuid.Nil, err
	}
	if accountID == uuid.Nil {
		return uuid.Nil, model.ErrUnauthorized
	}

	return accountID, nil
}
