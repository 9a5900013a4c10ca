package model

// PasswordHasher wraps the one-way secret hashing primitive.
type PasswordHasher interface {
	Hash(secret string) (string, error)
	// Verify reports whether secret matches hash. It returns false for
	// any hash that is not a product of Hash, including the federated
	// placeholder.
	Verify(secret, hash string) bool
}
