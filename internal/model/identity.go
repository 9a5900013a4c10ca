package model

import "context"

// FederatedIdentity is the provider's assertion about who completed the
// external consent flow. It is only trusted when EmailVerified is true.
type FederatedIdentity struct {
	Email         string
	EmailVerified bool
	DisplayName   string
}

// IdentityProvider exchanges an authorization code obtained by the client
// for a verified identity. The exchange protocol itself is opaque here.
type IdentityProvider interface {
	ExchangeCode(ctx context.Context, code string) (FederatedIdentity, error)
}
