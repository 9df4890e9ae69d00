package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jonboulle/clockwork"

	"github.com/donaldgifford/mi-caja/internal/cache"
	"github.com/donaldgifford/mi-caja/internal/config"
	"github.com/donaldgifford/mi-caja/internal/notify"
	"github.com/donaldgifford/mi-caja/internal/store"
)

// backend is a row store that can be closed.
type backend interface {
	store.Store
	Close()
}

// sqliteBackend adapts the SQLite store's Close to the backend shape.
type sqliteBackend struct {
	*store.SQLiteStore
	log *slog.Logger
}

func (b sqliteBackend) Close() {
	if err := b.SQLiteStore.Close(); err != nil {
		b.log.Warn("closing sqlite store", "error", err)
	}
}

type memoryBackend struct {
	*store.MemoryStore
}

func (memoryBackend) Close() {}

func openStore(ctx context.Context, cfg *config.DatabaseConfig, log *slog.Logger) (backend, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		s, err := store.NewPostgresStore(ctx, cfg.DSN(), cfg.PoolSize)
		if err != nil {
			return nil, fmt.Errorf("connecting to postgres: %w", err)
		}
		log.Info("row store ready", "driver", cfg.Driver, "host", cfg.Host, "database", cfg.Name)
		return s, nil
	case config.DriverSQLite:
		if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o750); err != nil {
			return nil, fmt.Errorf("creating sqlite directory: %w", err)
		}
		s, err := store.NewSQLiteStore(ctx, cfg.Path)
		if err != nil {
			return nil, fmt.Errorf("opening sqlite: %w", err)
		}
		log.Info("row store ready", "driver", cfg.Driver, "path", cfg.Path)
		return sqliteBackend{SQLiteStore: s, log: log}, nil
	case config.DriverMemory:
		log.Warn("row store is in memory; data is lost on restart")
		return memoryBackend{MemoryStore: store.NewMemoryStore()}, nil
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
}

// openCache returns nil when caching is disabled.
func openCache(ctx context.Context, cfg *config.CacheConfig, log *slog.Logger) (cache.Cache, error) {
	switch cfg.Driver {
	case config.CacheNone:
		return nil, nil
	case config.CacheMemory:
		log.Info("alert cache ready", "driver", cfg.Driver, "ttl", cfg.TTL)
		return cache.NewMemoryCache(clockwork.NewRealClock()), nil
	case config.CacheRedis:
		c, err := cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		})
		if err != nil {
			return nil, fmt.Errorf("connecting to redis: %w", err)
		}
		log.Info("alert cache ready", "driver", cfg.Driver, "addr", cfg.Addr, "ttl", cfg.TTL)
		return c, nil
	default:
		return nil, fmt.Errorf("unknown cache driver %q", cfg.Driver)
	}
}

func newNotifier(cfg *config.DiscordConfig, log *slog.Logger) notify.Notifier {
	if !cfg.Enabled {
		return notify.NewNoOpNotifier(log)
	}
	log.Info("discord notifications enabled", "min_gap", cfg.MinGap)
	return notify.NewDiscordNotifier(cfg.WebhookURL, notify.WithMinGap(cfg.MinGap))
}
