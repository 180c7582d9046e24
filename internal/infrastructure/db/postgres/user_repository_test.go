package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"

	"github.com/eventra/eventra-api/internal/core/domain"
)

func newMock(t *testing.T) (*UserRepository, *RoleRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return NewUserRepository(db), NewRoleRepository(db), mock
}

func expectationsMet(t *testing.T, mock sqlmock.Sqlmock) {
	t.Helper()
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations not met: %v", err)
	}
}

func TestEnsureSchema(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New() error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS users").WillReturnResult(sqlmock.NewResult(0, 0))

	if err := EnsureSchema(context.Background(), db); err != nil {
		t.Fatalf("EnsureSchema() error: %v", err)
	}
	expectationsMet(t, mock)
}

func TestUserRepository_ExistsByEmail(t *testing.T) {
	users, _, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(existsByEmailQuery)).
		WithArgs("alice@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := users.ExistsByEmail(context.Background(), "alice@example.com")
	if err != nil {
		t.Fatalf("ExistsByEmail() error: %v", err)
	}
	if !exists {
		t.Fatalf("expected email to exist")
	}
	expectationsMet(t, mock)
}

func TestUserRepository_ExistsByEmail_StorageError(t *testing.T) {
	users, _, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(existsByEmailQuery)).
		WithArgs("alice@example.com").
		WillReturnError(errors.New("connection reset"))

	_, err := users.ExistsByEmail(context.Background(), "alice@example.com")
	if !errors.Is(err, domain.ErrStorage) {
		t.Fatalf("expected ErrStorage, got %v", err)
	}
}

func TestUserRepository_FindByEmail_NotFound(t *testing.T) {
	users, _, mock := newMock(t)

	mock.ExpectQuery(regexp.QuoteMeta(findUserQuery)).
		WithArgs("missing@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password_hash", "first_name", "last_name", "enabled", "created_at"}))

	_, err := users.FindByEmail(context.Background(), "missing@example.com")
	if !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	expectationsMet(t, mock)
}

func TestUserRepository_FindByEmail_LoadsRolesAndPermissions(t *testing.T) {
	users, _, mock := newMock(t)
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(findUserQuery)).
		WithArgs("alice@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password_hash", "first_name", "last_name", "enabled", "created_at"}).
			AddRow(int64(7), "alice@example.com", "$2a$hash", "Alice", "Smith", true, created))
	mock.ExpectQuery(regexp.QuoteMeta(userRolesQuery)).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "id", "name"}).
			AddRow(int64(2), "USER", int64(1), "EVENT_READ").
			AddRow(int64(2), "USER", int64(5), "PROFILE_READ"))

	u, err := users.FindByEmail(context.Background(), "alice@example.com")
	if err != nil {
		t.Fatalf("FindByEmail() error: %v", err)
	}
	if u.ID != 7 || u.FirstName != "Alice" || !u.Enabled || !u.CreatedAt.Equal(created) {
		t.Fatalf("unexpected user: %+v", u)
	}
	if len(u.Roles) != 1 || u.Roles[0].Name != domain.RoleUser {
		t.Fatalf("unexpected roles: %+v", u.Roles)
	}
	if len(u.Roles[0].Permissions) != 2 || u.Roles[0].Permissions[1].Name != domain.PermProfileRead {
		t.Fatalf("unexpected permissions: %+v", u.Roles[0].Permissions)
	}
	expectationsMet(t, mock)
}

func TestUserRepository_Save(t *testing.T) {
	users, _, mock := newMock(t)
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(insertUserQuery)).
		WithArgs("bob@example.com", "hash", "Bob", "Jones", true).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(11), created))
	mock.ExpectExec(regexp.QuoteMeta(insertUserRoleQuery)).
		WithArgs(int64(11), "USER").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	saved, err := users.Save(context.Background(), &domain.User{
		Email:        "bob@example.com",
		PasswordHash: "hash",
		FirstName:    "Bob",
		LastName:     "Jones",
		Enabled:      true,
		Roles:        []domain.Role{{Name: domain.RoleUser}},
	})
	if err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	if saved.ID != 11 || !saved.CreatedAt.Equal(created) {
		t.Fatalf("unexpected saved user: %+v", saved)
	}
	expectationsMet(t, mock)
}

func TestUserRepository_Save_DuplicateEmail(t *testing.T) {
	users, _, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(insertUserQuery)).
		WillReturnError(&pq.Error{Code: uniqueViolation})
	mock.ExpectRollback()

	_, err := users.Save(context.Background(), &domain.User{Email: "bob@example.com", PasswordHash: "hash", Enabled: true})
	if !errors.Is(err, domain.ErrEmailAlreadyExists) {
		t.Fatalf("expected ErrEmailAlreadyExists, got %v", err)
	}
	expectationsMet(t, mock)
}

func TestUserRepository_Save_UnknownRoleRollsBack(t *testing.T) {
	users, _, mock := newMock(t)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(insertUserQuery)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(3), time.Now()))
	mock.ExpectExec(regexp.QuoteMeta(insertUserRoleQuery)).
		WithArgs(int64(3), "ADMIN").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err := users.Save(context.Background(), &domain.User{
		Email:        "carol@example.com",
		PasswordHash: "hash",
		Enabled:      true,
		Roles:        []domain.Role{{Name: domain.RoleAdmin}},
	})
	if !errors.Is(err, domain.ErrRoleNotFound) {
		t.Fatalf("expected ErrRoleNotFound, got %v", err)
	}
	expectationsMet(t, mock)
}

func TestUserRepository_List(t *testing.T) {
	users, _, mock := newMock(t)
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(listUsersQuery)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password_hash", "first_name", "last_name", "enabled", "created_at"}).
			AddRow(int64(1), "admin@example.com", "h1", "Ada", "Admin", true, created).
			AddRow(int64(2), "user@example.com", "h2", "Uma", "User", false, created))
	mock.ExpectQuery(regexp.QuoteMeta(listUserRolesQuery)).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "id", "name"}).
			AddRow(int64(1), int64(1), "ADMIN").
			AddRow(int64(2), int64(2), "USER"))

	list, err := users.List(context.Background())
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 users, got %d", len(list))
	}
	if list[0].Roles[0].Name != domain.RoleAdmin || list[1].Roles[0].Name != domain.RoleUser {
		t.Fatalf("roles not attached: %+v %+v", list[0].Roles, list[1].Roles)
	}
	if list[1].Enabled {
		t.Fatalf("expected second user disabled")
	}
	expectationsMet(t, mock)
}
