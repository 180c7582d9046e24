// Package app assembles the Eventra service from configuration: it opens the
// configured credential store, the optional Redis role cache, and builds the
// core services and the HTTP router on top of them.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/eventra/eventra-api/internal/api"
	"github.com/eventra/eventra-api/internal/api/handler"
	"github.com/eventra/eventra-api/internal/api/metrics"
	"github.com/eventra/eventra-api/internal/core/domain"
	"github.com/eventra/eventra-api/internal/core/ports"
	"github.com/eventra/eventra-api/internal/core/service"
	"github.com/eventra/eventra-api/internal/infrastructure/config"
	mongostore "github.com/eventra/eventra-api/internal/infrastructure/db/mongo"
	pgstore "github.com/eventra/eventra-api/internal/infrastructure/db/postgres"
	redisstore "github.com/eventra/eventra-api/internal/infrastructure/db/redis"
	"github.com/eventra/eventra-api/internal/infrastructure/security"
	"github.com/eventra/eventra-api/pkg/logger"
)

// App holds the wired services and the resources that must be released on
// shutdown.
type App struct {
	cfg *config.Config
	log zerolog.Logger

	Auth   *service.AuthService
	Users  *service.UserService
	Events ports.EventService
	Tokens *security.JWTIssuer

	roles   redisstore.RoleStore
	checks  map[string]handler.DependencyCheck
	closers []func(context.Context) error
}

// store is what a credential backend contributes to the app.
type store struct {
	users ports.UserRepository
	roles redisstore.RoleStore
	ping  handler.DependencyCheck
	close func(context.Context) error
}

// New connects to the configured backends and wires the services. On error
// every resource opened so far is released.
func New(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*App, error) {
	a := &App{
		cfg:    cfg,
		log:    log,
		checks: make(map[string]handler.DependencyCheck),
	}

	st, err := openStore(ctx, cfg, log)
	if err != nil {
		return nil, err
	}
	a.closers = append(a.closers, st.close)
	a.checks[cfg.StoreDriver] = st.ping
	a.roles = st.roles

	if cfg.Redis.Enabled {
		client, err := redisstore.Connect(ctx, redisstore.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			_ = a.Close(ctx)
			return nil, err
		}
		a.closers = append(a.closers, func(context.Context) error { return client.Close() })
		a.checks["redis"] = func(ctx context.Context) error { return client.Ping(ctx).Err() }
		a.roles = redisstore.NewRoleCache(st.roles, client, cfg.Redis.RoleTTL, logger.Component(log, "role_cache"))
		log.Info().Str("addr", cfg.Redis.Addr).Dur("ttl", cfg.Redis.RoleTTL).Msg("role cache enabled")
	}

	a.Tokens = security.NewJWTIssuer(cfg.Auth.JWTSecret, cfg.Auth.JWTTTL, cfg.Auth.JWTIssuer)
	hasher := metrics.InstrumentHasher(security.NewBcryptHasher(cfg.Auth.BcryptCost))

	a.Auth = service.NewAuthService(st.users, a.roles, hasher, a.Tokens, logger.Component(log, "auth"))
	a.Users = service.NewUserService(st.users, logger.Component(log, "users"))
	a.Events = service.NewEventService(logger.Component(log, "events"))

	return a, nil
}

func openStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*store, error) {
	switch cfg.StoreDriver {
	case config.DriverMongo:
		client, db, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, err
		}
		if err := mongostore.EnsureIndexes(ctx, db); err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
		log.Info().Str("database", cfg.Mongo.Database).Msg("connected to mongodb")

		roles := mongostore.NewRoleRepository(db)
		return &store{
			users: mongostore.NewUserRepository(db, roles),
			roles: roles,
			ping:  func(ctx context.Context) error { return mongostore.Ping(ctx, db) },
			close: client.Disconnect,
		}, nil

	case config.DriverPostgres:
		db, err := pgstore.Open(ctx, cfg.Postgres.DSN)
		if err != nil {
			return nil, err
		}
		if err := pgstore.EnsureSchema(ctx, db); err != nil {
			_ = db.Close()
			return nil, err
		}
		log.Info().Msg("connected to postgres")

		return &store{
			users: pgstore.NewUserRepository(db),
			roles: pgstore.NewRoleRepository(db),
			ping:  db.PingContext,
			close: func(context.Context) error { return db.Close() },
		}, nil
	}
	return nil, fmt.Errorf("unsupported store driver %q", cfg.StoreDriver)
}

// SeedRoles writes the default role and permission reference data.
func (a *App) SeedRoles(ctx context.Context) error {
	if err := a.roles.Seed(ctx, domain.DefaultRolePermissions()); err != nil {
		return fmt.Errorf("seed roles: %w", err)
	}
	a.log.Info().Int("roles", len(domain.AllRoles)).Msg("roles seeded")
	return nil
}

// Router builds the HTTP surface on the wired services.
func (a *App) Router() *echo.Echo {
	return api.NewRouter(api.Deps{
		Auth:   a.Auth,
		Users:  a.Users,
		Events: a.Events,
		Tokens: a.Tokens,
		Checks: a.checks,
		Log:    a.log,
	})
}

// Close releases resources in reverse order of acquisition.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
