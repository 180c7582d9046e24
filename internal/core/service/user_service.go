package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/eventra/eventra-api/internal/core/domain"
	"github.com/eventra/eventra-api/internal/core/ports"
)

const profileMessage = "User profile retrieved successfully"

// UserService serves account listings and the caller's own profile.
type UserService struct {
	users ports.UserRepository
	log   zerolog.Logger
}

func NewUserService(users ports.UserRepository, log zerolog.Logger) *UserService {
	return &UserService{users: users, log: log}
}

// ListUsers returns every account without credentials.
func (s *UserService) ListUsers(ctx context.Context) ([]ports.UserSummary, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to list users")
		return nil, err
	}

	out := make([]ports.UserSummary, 0, len(users))
	for _, u := range users {
		out = append(out, ports.UserSummary{
			ID:        u.ID,
			Email:     u.Email,
			FirstName: u.FirstName,
			LastName:  u.LastName,
			CreatedAt: u.CreatedAt,
			Enabled:   u.Enabled,
			Roles:     u.RoleNames(),
		})
	}
	return out, nil
}

// Profile echoes the identity the caller authenticated as. The identity comes
// from the verified token, so no store lookup is needed.
func (s *UserService) Profile(_ context.Context, identity domain.Identity) (*ports.Profile, error) {
	if identity.Email == "" {
		return nil, domain.ErrInvalidCredentials
	}
	return &ports.Profile{Email: identity.Email, Message: profileMessage}, nil
}
