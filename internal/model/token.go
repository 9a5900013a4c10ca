package model

import "github.com/google/uuid"

// TokenManager signs and verifies access/refresh credentials. Both kinds
// carry a type tag and a per-issuance nonce, so two credentials minted for
// the same account at the same instant are never bit-identical.
type TokenManager interface {
	GenerateAccessToken(accountID uuid.UUID) (string, error)
	GenerateRefreshToken(accountID uuid.UUID) (string, error)
	ParseAccessToken(token string) (uuid.UUID, error)
	ParseRefreshToken(token string) (uuid.UUID, error)
}

// CredentialPair is the result of a successful login or rotation.
type CredentialPair struct {
	AccessToken  string
	RefreshToken string
}
