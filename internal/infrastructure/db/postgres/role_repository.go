package postgres

import (
	"context"
	"database/sql"
	"slices"

	"github.com/eventra/eventra-api/internal/core/domain"
)

const findRoleQuery = `
SELECT r.id, r.name, p.id, p.name
FROM roles r
LEFT JOIN role_permissions rp ON rp.role_id = r.id
LEFT JOIN permissions p ON p.id = rp.permission_id
WHERE r.name = $1
ORDER BY p.id`

// RoleRepository reads and seeds roles and their permissions.
type RoleRepository struct {
	db *sql.DB
}

func NewRoleRepository(db *sql.DB) *RoleRepository {
	return &RoleRepository{db: db}
}

func (r *RoleRepository) FindRoleByName(ctx context.Context, name domain.RoleName) (*domain.Role, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, findRoleQuery, string(name))
	if err != nil {
		return nil, storageErr("find role", err)
	}
	defer rows.Close()

	roles, err := scanRoles(rows)
	if err != nil {
		return nil, storageErr("scan role", err)
	}
	if len(roles) == 0 {
		return nil, domain.ErrRoleNotFound
	}
	return &roles[0], nil
}

// Seed inserts any missing roles, permissions and grants in one transaction.
// Existing grants are kept.
func (r *RoleRepository) Seed(ctx context.Context, grants map[domain.RoleName][]domain.PermissionName) error {
	names := make([]domain.RoleName, 0, len(grants))
	for name := range grants {
		names = append(names, name)
	}
	slices.Sort(names)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return storageErr("begin seed", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, name := range names {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO roles (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`, string(name)); err != nil {
			return storageErr("seed role", err)
		}
		for _, perm := range grants[name] {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO permissions (name) VALUES ($1) ON CONFLICT (name) DO NOTHING`, string(perm)); err != nil {
				return storageErr("seed permission", err)
			}
			if _, err := tx.ExecContext(ctx, `
INSERT INTO role_permissions (role_id, permission_id)
SELECT r.id, p.id FROM roles r, permissions p
WHERE r.name = $1 AND p.name = $2
ON CONFLICT DO NOTHING`, string(name), string(perm)); err != nil {
				return storageErr("seed grant", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return storageErr("commit seed", err)
	}
	return nil
}
