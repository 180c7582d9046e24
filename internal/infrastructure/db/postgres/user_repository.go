package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/eventra/eventra-api/internal/core/domain"
)

const (
	existsByEmailQuery = `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`

	findUserQuery = `
SELECT id, email, password_hash, first_name, last_name, enabled, created_at
FROM users WHERE email = $1`

	userRolesQuery = `
SELECT r.id, r.name, p.id, p.name
FROM user_roles ur
JOIN roles r ON r.id = ur.role_id
LEFT JOIN role_permissions rp ON rp.role_id = r.id
LEFT JOIN permissions p ON p.id = rp.permission_id
WHERE ur.user_id = $1
ORDER BY r.id, p.id`

	insertUserQuery = `
INSERT INTO users (email, password_hash, first_name, last_name, enabled)
VALUES ($1, $2, $3, $4, $5)
RETURNING id, created_at`

	insertUserRoleQuery = `
INSERT INTO user_roles (user_id, role_id)
SELECT $1, id FROM roles WHERE name = $2`

	listUsersQuery = `
SELECT id, email, password_hash, first_name, last_name, enabled, created_at
FROM users ORDER BY id`

	listUserRolesQuery = `
SELECT ur.user_id, r.id, r.name
FROM user_roles ur
JOIN roles r ON r.id = ur.role_id
ORDER BY ur.user_id, r.id`
)

// UserRepository implements ports.UserRepository on the relational schema.
type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var exists bool
	if err := r.db.QueryRowContext(ctx, existsByEmailQuery, email).Scan(&exists); err != nil {
		return false, storageErr("exists by email", err)
	}
	return exists, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var u domain.User
	err := r.db.QueryRowContext(ctx, findUserQuery, email).
		Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &u.Enabled, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, storageErr("find user", err)
	}

	rows, err := r.db.QueryContext(ctx, userRolesQuery, u.ID)
	if err != nil {
		return nil, storageErr("find user roles", err)
	}
	defer rows.Close()

	if u.Roles, err = scanRoles(rows); err != nil {
		return nil, storageErr("scan user roles", err)
	}
	u.CreatedAt = u.CreatedAt.UTC()
	return &u, nil
}

// Save inserts the user row and its role links in a single transaction.
func (r *UserRepository) Save(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, storageErr("begin save user", err)
	}
	defer func() { _ = tx.Rollback() }()

	created := *user
	err = tx.QueryRowContext(ctx, insertUserQuery,
		user.Email, user.PasswordHash, user.FirstName, user.LastName, user.Enabled,
	).Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, domain.ErrEmailAlreadyExists
		}
		return nil, storageErr("insert user", err)
	}

	for _, role := range user.Roles {
		res, err := tx.ExecContext(ctx, insertUserRoleQuery, created.ID, string(role.Name))
		if err != nil {
			return nil, storageErr("insert user role", err)
		}
		if n, err := res.RowsAffected(); err == nil && n == 0 {
			return nil, domain.ErrRoleNotFound
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, storageErr("commit save user", err)
	}
	created.CreatedAt = created.CreatedAt.UTC()
	return &created, nil
}

// List returns every user with role names attached. Permissions are not
// loaded; callers of the listing only show roles.
func (r *UserRepository) List(ctx context.Context) ([]*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	rows, err := r.db.QueryContext(ctx, listUsersQuery)
	if err != nil {
		return nil, storageErr("list users", err)
	}
	defer rows.Close()

	var users []*domain.User
	byID := make(map[int64]*domain.User)
	for rows.Next() {
		u := &domain.User{}
		if err := rows.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &u.Enabled, &u.CreatedAt); err != nil {
			return nil, storageErr("scan user", err)
		}
		u.CreatedAt = u.CreatedAt.UTC()
		users = append(users, u)
		byID[u.ID] = u
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("iterate users", err)
	}

	roleRows, err := r.db.QueryContext(ctx, listUserRolesQuery)
	if err != nil {
		return nil, storageErr("list user roles", err)
	}
	defer roleRows.Close()

	for roleRows.Next() {
		var (
			userID, roleID int64
			name           string
		)
		if err := roleRows.Scan(&userID, &roleID, &name); err != nil {
			return nil, storageErr("scan user role", err)
		}
		if u, ok := byID[userID]; ok {
			u.Roles = append(u.Roles, domain.Role{ID: roleID, Name: domain.RoleName(name)})
		}
	}
	if err := roleRows.Err(); err != nil {
		return nil, storageErr("iterate user roles", err)
	}
	return users, nil
}
