package app

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/fx"

	"github.com/nguyentranbao-ct/product-console/internal/config"
	"github.com/nguyentranbao-ct/product-console/internal/query"
	"github.com/nguyentranbao-ct/product-console/internal/session"
	"github.com/nguyentranbao-ct/product-console/pkg/crypto"
	"github.com/nguyentranbao-ct/product-console/pkg/logger"
)

const sweepInterval = time.Minute

func newRedisClient(lc fx.Lifecycle, cfg *config.Config) (*redis.Client, error) {
	opts, err := redis.ParseURL(cfg.Session.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opts)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return client.Ping(ctx).Err()
		},
		OnStop: func(ctx context.Context) error {
			return client.Close()
		},
	})
	return client, nil
}

func newSessionStore(lc fx.Lifecycle, cfg *config.Config) (session.Store, error) {
	var store session.Store
	switch cfg.Session.Backend {
	case config.SessionBackendRedis:
		client, err := newRedisClient(lc, cfg)
		if err != nil {
			return nil, err
		}
		store = session.NewRedisStore(client, cfg.Session.TabTTL)
	default:
		mem := session.NewMemoryStore(cfg.Session.TabTTL)
		runSweeper(lc, "session", mem.Run)
		store = mem
	}

	if cfg.Session.EncryptionKey != "" {
		cipher, err := crypto.NewClient(cfg.Session.EncryptionKey)
		if err != nil {
			return nil, fmt.Errorf("init session cipher: %w", err)
		}
		store = session.NewSealedStore(store, cipher)
	}
	return store, nil
}

func newQueryRegistry(cfg *config.Config) *query.Registry {
	return query.NewRegistry(cfg.Query.StaleTime, cfg.Session.TabTTL)
}

// RunRegistrySweeper forgets the caches of tabs idle longer than the tab
// lifetime.
func RunRegistrySweeper(lc fx.Lifecycle, registry *query.Registry) {
	runSweeper(lc, "query", registry.Run)
}

func runSweeper(lc fx.Lifecycle, name string, run func(context.Context, time.Duration)) {
	log := logger.MustNamed(name)
	ctx, cancel := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go run(ctx, sweepInterval)
			log.Debugw("sweeper started", "interval", sweepInterval)
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			return nil
		},
	})
}
