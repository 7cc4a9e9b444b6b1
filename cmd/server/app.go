package main

import (
	"context"

	"go.uber.org/zap"

	"github.com/KirkDiggler/rpg-tabletop/internal/config"
	"github.com/KirkDiggler/rpg-tabletop/internal/errors"
	"github.com/KirkDiggler/rpg-tabletop/internal/observability"
	"github.com/KirkDiggler/rpg-tabletop/internal/pkg/clock"
	"github.com/KirkDiggler/rpg-tabletop/internal/redis"
	"github.com/KirkDiggler/rpg-tabletop/internal/repositories/localstore"
)

func loadConfig() (config.Config, error) {
	return config.Load(configPath)
}

func newLogger(cfg config.Config) (*zap.Logger, error) {
	return observability.NewLogger(cfg.Logging)
}

func connectRedis(ctx context.Context, cfg config.RedisConfig) (redis.Client, error) {
	return redis.Connect(ctx, cfg.Addr, &redis.Options{
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
}

// openLocalStore opens the library backend selected by storage.driver. The
// returned func releases it.
func openLocalStore(ctx context.Context, cfg config.Config) (localstore.Store, func(), error) {
	switch cfg.Storage.Driver {
	case config.DriverRedis:
		client, err := connectRedis(ctx, cfg.Redis)
		if err != nil {
			return nil, nil, err
		}
		store, err := localstore.NewRedis(&localstore.RedisConfig{
			Client: client,
			Prefix: cfg.Storage.RedisPrefix,
		})
		if err != nil {
			_ = client.Close()
			return nil, nil, err
		}
		return store, func() { _ = client.Close() }, nil

	case config.DriverSQLite:
		store, err := localstore.NewSQLite(&localstore.SQLiteConfig{
			Path:  cfg.Storage.SQLitePath,
			Clock: clock.New(),
		})
		if err != nil {
			return nil, nil, err
		}
		return store, func() { _ = store.Close() }, nil

	default:
		return nil, nil, errors.InvalidArgumentf("unknown storage driver %q", cfg.Storage.Driver)
	}
}
