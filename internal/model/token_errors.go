package model

import "errors"

var (
	// ErrTokenExpired means the credential was valid but its expiry has passed.
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenInvalidSignature means the signature does not verify.
	ErrTokenInvalidSignature = errors.New("token signature invalid")
	// ErrTokenInvalidType means a structurally valid credential of the
	// wrong kind was presented, e.g. a refresh credential where an access
	// credential was expected. The two kinds are never interchangeable.
	ErrTokenInvalidType = errors.New("token type mismatch")
	// ErrTokenMalformed means the credential could not be decoded at all.
	ErrTokenMalformed = errors.New("token malformed")
)
