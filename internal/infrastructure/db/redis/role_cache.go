package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/eventra/eventra-api/internal/core/domain"
	"github.com/eventra/eventra-api/internal/core/ports"
)

const (
	defaultRoleTTL = 10 * time.Minute
	roleKeyPrefix  = "eventra:role:"
)

// RoleStore is a role repository that can also be seeded.
type RoleStore interface {
	ports.RoleRepository
	ports.RoleSeeder
}

// RoleCache is a read-through cache for role lookups.
// Key format: eventra:role:<name>
//
// Redis failures are logged and the lookup falls through to the wrapped
// store, so a cache outage never fails a signup.
type RoleCache struct {
	store  RoleStore
	client redis.Cmdable
	ttl    time.Duration
	log    zerolog.Logger
}

// NewRoleCache wraps store with a Redis cache. A zero ttl uses ten minutes.
func NewRoleCache(store RoleStore, client redis.Cmdable, ttl time.Duration, log zerolog.Logger) *RoleCache {
	if ttl <= 0 {
		ttl = defaultRoleTTL
	}
	return &RoleCache{store: store, client: client, ttl: ttl, log: log}
}

func (c *RoleCache) FindRoleByName(ctx context.Context, name domain.RoleName) (*domain.Role, error) {
	key := roleKey(name)

	raw, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var role domain.Role
		jsonErr := json.Unmarshal(raw, &role)
		if jsonErr == nil {
			return &role, nil
		}
		c.log.Warn().Err(jsonErr).Str("key", key).Msg("discarding corrupt role cache entry")
	case !errors.Is(err, redis.Nil):
		c.log.Warn().Err(err).Str("key", key).Msg("role cache read failed")
	}

	role, err := c.store.FindRoleByName(ctx, name)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(role)
	if err != nil {
		return role, nil
	}
	if err := c.client.Set(ctx, key, payload, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("role cache write failed")
	}
	return role, nil
}

// Seed writes through to the store and drops the cached entries it touched.
func (c *RoleCache) Seed(ctx context.Context, grants map[domain.RoleName][]domain.PermissionName) error {
	if err := c.store.Seed(ctx, grants); err != nil {
		return err
	}

	keys := make([]string, 0, len(grants))
	for name := range grants {
		keys = append(keys, roleKey(name))
	}
	if len(keys) == 0 {
		return nil
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.log.Warn().Err(err).Msg("role cache invalidation failed")
	}
	return nil
}

func roleKey(name domain.RoleName) string {
	return roleKeyPrefix + string(name)
}
