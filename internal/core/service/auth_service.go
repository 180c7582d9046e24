package service

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/eventra/eventra-api/internal/core/domain"
	"github.com/eventra/eventra-api/internal/core/ports"
)

const signupConfirmation = "User registered successfully!"

// timingGuardSecret is hashed once and compared against when the email is
// unknown, so both login failure paths pay for one bcrypt comparison.
const timingGuardSecret = "eventra-timing-guard"

// AuthService implements signup, login and administrator provisioning.
type AuthService struct {
	users  ports.UserRepository
	roles  ports.RoleRepository
	hasher ports.PasswordHasher
	tokens ports.TokenIssuer
	log    zerolog.Logger

	guardOnce sync.Once
	guardHash string
}

func NewAuthService(
	users ports.UserRepository,
	roles ports.RoleRepository,
	hasher ports.PasswordHasher,
	tokens ports.TokenIssuer,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		users:  users,
		roles:  roles,
		hasher: hasher,
		tokens: tokens,
		log:    log,
	}
}

// Signup registers a new account with the requested role. Only ADMIN and USER
// may be requested here even when other roles exist in storage.
func (s *AuthService) Signup(ctx context.Context, in ports.SignupInput) (*ports.Confirmation, error) {
	email := domain.NormalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrEmailAlreadyExists
	}

	role, ok := domain.ParseRoleName(in.Role)
	if !ok || !role.SelectableAtSignup() {
		return nil, domain.ErrInvalidRoleSelection
	}

	return s.register(ctx, email, in.Password, in.FirstName, in.LastName, role)
}

// CreateAdminUser provisions an administrator. The role is always ADMIN and
// no role validation happens; this path is meant for operators, not HTTP.
func (s *AuthService) CreateAdminUser(ctx context.Context, in ports.AdminInput) (*ports.Confirmation, error) {
	email := domain.NormalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}

	exists, err := s.users.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrEmailAlreadyExists
	}

	return s.register(ctx, email, in.Password, in.FirstName, in.LastName, domain.RoleAdmin)
}

func (s *AuthService) register(ctx context.Context, email, password, firstName, lastName string, roleName domain.RoleName) (*ports.Confirmation, error) {
	role, err := s.roles.FindRoleByName(ctx, roleName)
	if err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: hash,
		FirstName:    strings.TrimSpace(firstName),
		LastName:     strings.TrimSpace(lastName),
		Enabled:      true,
		Roles:        []domain.Role{*role},
	}

	// The store's unique constraint is what actually guards concurrent signups
	// for the same email; ExistsByEmail above is only a fast path.
	created, err := s.users.Save(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Int64("user_id", created.ID).
		Str("role", string(roleName)).
		Msg("user registered")

	return &ports.Confirmation{Message: signupConfirmation}, nil
}

// Login verifies credentials and issues a bearer token. Unknown email, wrong
// password and disabled accounts all fail with domain.ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.burnComparison(password)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Verify(password, user.PasswordHash) || !user.Enabled {
		return nil, domain.ErrInvalidCredentials
	}

	roles := user.RoleNames()
	token, err := s.tokens.Generate(domain.Identity{
		UserID: user.ID,
		Email:  user.Email,
		Roles:  roles,
	})
	if err != nil {
		return nil, err
	}

	s.log.Debug().Int64("user_id", user.ID).Msg("login succeeded")

	return &ports.LoginResult{
		Token:       token,
		UserID:      user.ID,
		Email:       user.Email,
		FirstName:   user.FirstName,
		LastName:    user.LastName,
		Roles:       roles,
		Permissions: user.PermissionNames(),
	}, nil
}

func (s *AuthService) burnComparison(password string) {
	s.guardOnce.Do(func() {
		hash, err := s.hasher.Hash(timingGuardSecret)
		if err != nil {
			s.log.Warn().Err(err).Msg("timing guard hash unavailable")
			return
		}
		s.guardHash = hash
	})
	if s.guardHash != "" {
		_ = s.hasher.Verify(password, s.guardHash)
	}
}
