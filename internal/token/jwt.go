package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/postline/postline-auth/internal/model"
)

// Claims represents JWT claims with token type and account ID. The
// registered ID claim holds a fresh nonce on every issuance.
type Claims struct {
	jwt.RegisteredClaims
	AccountID uuid.UUID `json:"account_id"`
	TokenType string    `json:"typ"`
}

// JWT implements TokenManager backed by symmetric HMAC.
type JWT struct {
	secretKey  string
	accessTTL  time.Duration
	refreshTTL time.Duration
}

const (
	typeAccess  = "access"
	typeRefresh = "refresh"
)

// NewJWT creates a JWT token manager with the provided secret key and
// per-kind lifetimes.
func NewJWT(secretKey string, accessTTL, refreshTTL time.Duration) model.TokenManager {
	return &JWT{secretKey: secretKey, accessTTL: accessTTL, refreshTTL: refreshTTL}
}

// GenerateAccessToken creates a short-lived access credential.
func (j *JWT) GenerateAccessToken(accountID uuid.UUID) (string, error) {
	return j.generate(accountID, typeAccess, j.accessTTL)
}

// GenerateRefreshToken creates a long-lived refresh credential.
func (j *JWT) GenerateRefreshToken(accountID uuid.UUID) (string, error) {
	return j.generate(accountID, typeRefresh, j.refreshTTL)
}

// ParseAccessToken validates an access credential and extracts the account ID.
func (j *JWT) ParseAccessToken(tokenString string) (uuid.UUID, error) {
	return j.parse(tokenString, typeAccess)
}

// ParseRefreshToken validates a refresh credential and extracts the account ID.
func (j *JWT) ParseRefreshToken(tokenString string) (uuid.UUID, error) {
	return j.parse(tokenString, typeRefresh)
}

func (j *JWT) generate(accountID uuid.UUID, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		AccountID: accountID,
		TokenType: tokenType,
	})

	tokenString, err := token.SignedString([]byte(j.secretKey))
	if err != nil {
		return "", fmt.Errorf("failed to sign %s token: %w", tokenType, err)
	}

	return tokenString, nil
}

func (j *JWT) parse(tokenString, expectedType string) (uuid.UUID, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return []byte(j.secretKey), nil
	})
	switch {
	case err == nil:
	case errors.Is(err, jwt.ErrTokenExpired):
		return uuid.Nil, model.ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return uuid.Nil, model.ErrTokenInvalidSignature
	default:
		return uuid.Nil, model.ErrTokenMalformed
	}
	if !token.Valid {
		return uuid.Nil, model.ErrTokenInvalidSignature
	}
	if claims.TokenType != expectedType {
		return uuid.Nil, model.ErrTokenInvalidType
	}
	return claims.AccountID, nil
}
