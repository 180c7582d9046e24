package ports

import (
	"context"

	"github.com/eventra/eventra-api/internal/core/domain"
)

// UserRepository is the credential store. Implementations enforce email
// uniqueness themselves and report violations as domain.ErrEmailAlreadyExists.
type UserRepository interface {
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	// FindByEmail returns domain.ErrUserNotFound when no account matches.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// Save persists a new user and returns it with its assigned ID.
	Save(ctx context.Context, user *domain.User) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
}
