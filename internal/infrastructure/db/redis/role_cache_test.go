package redis

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/eventra/eventra-api/internal/core/domain"
)

type stubRoleStore struct {
	mu     sync.Mutex
	roles  map[domain.RoleName]*domain.Role
	err    error
	finds  int
	seeded int
}

func (s *stubRoleStore) FindRoleByName(_ context.Context, name domain.RoleName) (*domain.Role, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.finds++
	if s.err != nil {
		return nil, s.err
	}
	r, ok := s.roles[name]
	if !ok {
		return nil, domain.ErrRoleNotFound
	}
	cp := *r
	return &cp, nil
}

func (s *stubRoleStore) Seed(_ context.Context, grants map[domain.RoleName][]domain.PermissionName) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seeded++
	for name, perms := range grants {
		role := &domain.Role{Name: name}
		for _, p := range perms {
			role.Permissions = append(role.Permissions, domain.Permission{Name: p})
		}
		s.roles[name] = role
	}
	return nil
}

func setupCache(t *testing.T) (*RoleCache, *stubRoleStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	store := &stubRoleStore{roles: map[domain.RoleName]*domain.Role{
		domain.RoleUser: {ID: 2, Name: domain.RoleUser, Permissions: []domain.Permission{{ID: 1, Name: domain.PermEventRead}}},
	}}
	return NewRoleCache(store, client, time.Minute, zerolog.Nop()), store, mr
}

func TestRoleCache_ReadThrough(t *testing.T) {
	cache, store, mr := setupCache(t)
	ctx := context.Background()

	first, err := cache.FindRoleByName(ctx, domain.RoleUser)
	if err != nil {
		t.Fatalf("first lookup: %v", err)
	}
	if !mr.Exists("eventra:role:USER") {
		t.Fatalf("expected role to be cached")
	}

	second, err := cache.FindRoleByName(ctx, domain.RoleUser)
	if err != nil {
		t.Fatalf("second lookup: %v", err)
	}
	if store.finds != 1 {
		t.Fatalf("expected one store lookup, got %d", store.finds)
	}
	if second.ID != first.ID || len(second.Permissions) != 1 || second.Permissions[0].Name != domain.PermEventRead {
		t.Fatalf("cached role differs: %+v", second)
	}
}

func TestRoleCache_Expiry(t *testing.T) {
	cache, store, mr := setupCache(t)
	ctx := context.Background()

	if _, err := cache.FindRoleByName(ctx, domain.RoleUser); err != nil {
		t.Fatalf("lookup: %v", err)
	}
	mr.FastForward(2 * time.Minute)
	if _, err := cache.FindRoleByName(ctx, domain.RoleUser); err != nil {
		t.Fatalf("lookup after expiry: %v", err)
	}
	if store.finds != 2 {
		t.Fatalf("expected store to be hit again after ttl, got %d lookups", store.finds)
	}
}

func TestRoleCache_MissingRoleNotCached(t *testing.T) {
	cache, _, mr := setupCache(t)

	_, err := cache.FindRoleByName(context.Background(), domain.RoleAdmin)
	if !errors.Is(err, domain.ErrRoleNotFound) {
		t.Fatalf("expected ErrRoleNotFound, got %v", err)
	}
	if mr.Exists("eventra:role:ADMIN") {
		t.Fatalf("missing role must not be cached")
	}
}

func TestRoleCache_CorruptEntryFallsThrough(t *testing.T) {
	cache, store, mr := setupCache(t)
	if err := mr.Set("eventra:role:USER", "{not json"); err != nil {
		t.Fatalf("seed miniredis: %v", err)
	}

	role, err := cache.FindRoleByName(context.Background(), domain.RoleUser)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if role.Name != domain.RoleUser || store.finds != 1 {
		t.Fatalf("expected store fallback, got %+v after %d lookups", role, store.finds)
	}
}

func TestRoleCache_RedisDownFallsThrough(t *testing.T) {
	cache, store, mr := setupCache(t)
	mr.Close()

	role, err := cache.FindRoleByName(context.Background(), domain.RoleUser)
	if err != nil {
		t.Fatalf("lookup with redis down: %v", err)
	}
	if role.Name != domain.RoleUser || store.finds != 1 {
		t.Fatalf("unexpected fallback result %+v", role)
	}
}

func TestRoleCache_SeedInvalidates(t *testing.T) {
	cache, store, mr := setupCache(t)
	ctx := context.Background()

	if _, err := cache.FindRoleByName(ctx, domain.RoleUser); err != nil {
		t.Fatalf("lookup: %v", err)
	}

	err := cache.Seed(ctx, map[domain.RoleName][]domain.PermissionName{
		domain.RoleUser: {domain.PermEventRead, domain.PermProfileRead},
	})
	if err != nil {
		t.Fatalf("Seed() error: %v", err)
	}
	if store.seeded != 1 {
		t.Fatalf("seed not forwarded")
	}
	if mr.Exists("eventra:role:USER") {
		t.Fatalf("seed must invalidate cached role")
	}

	role, err := cache.FindRoleByName(ctx, domain.RoleUser)
	if err != nil {
		t.Fatalf("lookup after seed: %v", err)
	}
	if len(role.Permissions) != 2 {
		t.Fatalf("expected refreshed permissions, got %+v", role.Permissions)
	}
}
