package domain

import (
	"errors"
	"fmt"
)

var (
	ErrEmailAlreadyExists   = errors.New("email already exists")
	ErrInvalidRoleSelection = errors.New("invalid role selection")
	ErrRoleNotFound         = errors.New("role not found")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrInvalidInput         = errors.New("invalid input")
	ErrUserNotFound         = errors.New("user not found")
	ErrForbidden            = errors.New("access forbidden")

	// ErrStorage wraps every backend failure surfaced by a repository.
	ErrStorage = errors.New("storage error")

	// ErrToken is the parent of all signing and verification failures.
	ErrToken                 = errors.New("token error")
	ErrTokenExpired          = fmt.Errorf("%w: expired", ErrToken)
	ErrTokenInvalidSignature = fmt.Errorf("%w: invalid signature", ErrToken)
	ErrTokenMalformed        = fmt.Errorf("%w: malformed", ErrToken)
	ErrTokenSign             = fmt.Errorf("%w: signing failed", ErrToken)
)

// Reason returns a short, bounded label for err, suitable for metrics.
func Reason(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrEmailAlreadyExists):
		return "email_exists"
	case errors.Is(err, ErrInvalidRoleSelection):
		return "invalid_role"
	case errors.Is(err, ErrRoleNotFound):
		return "role_not_found"
	case errors.Is(err, ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, ErrStorage):
		return "storage"
	case errors.Is(err, ErrTokenExpired):
		return "token_expired"
	case errors.Is(err, ErrTokenInvalidSignature):
		return "token_signature"
	case errors.Is(err, ErrTokenSign):
		return "token_sign"
	case errors.Is(err, ErrToken):
		return "token_malformed"
	default:
		return "internal"
	}
}
