package ports

import "github.com/eventra/eventra-api/internal/core/domain"

// PasswordHasher performs salted one-way hashing of plaintext passwords.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, digest string) bool
}

// TokenIssuer creates and verifies signed bearer tokens.
type TokenIssuer interface {
	Generate(identity domain.Identity) (string, error)
	// Verify returns an error wrapping domain.ErrToken on any failure.
	Verify(token string) (*domain.Identity, error)
}
