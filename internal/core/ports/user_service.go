package ports

import (
	"context"
	"time"

	"github.com/eventra/eventra-api/internal/core/domain"
)

// UserSummary is the admin view of an account. It never carries the hash.
type UserSummary struct {
	ID        int64
	Email     string
	FirstName string
	LastName  string
	CreatedAt time.Time
	Enabled   bool
	Roles     []string
}

// Profile is what an authenticated user sees about themselves.
type Profile struct {
	Email   string
	Message string
}

type UserService interface {
	ListUsers(ctx context.Context) ([]UserSummary, error)
	Profile(ctx context.Context, identity domain.Identity) (*Profile, error)
}
