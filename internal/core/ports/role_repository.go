package ports

import (
	"context"

	"github.com/eventra/eventra-api/internal/core/domain"
)

// RoleRepository reads role reference data.
type RoleRepository interface {
	// FindRoleByName returns domain.ErrRoleNotFound when the row is missing.
	FindRoleByName(ctx context.Context, name domain.RoleName) (*domain.Role, error)
}

// RoleSeeder writes role and permission reference data. Seeding is idempotent.
type RoleSeeder interface {
	Seed(ctx context.Context, grants map[domain.RoleName][]domain.PermissionName) error
}
