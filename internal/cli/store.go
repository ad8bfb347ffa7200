package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/aretw0/virtualide/internal/config"
	"github.com/aretw0/virtualide/pkg/adapters/file"
	"github.com/aretw0/virtualide/pkg/adapters/memory"
	"github.com/aretw0/virtualide/pkg/adapters/redis"
	"github.com/aretw0/virtualide/pkg/persistence/middleware"
	"github.com/aretw0/virtualide/pkg/ports"
	"github.com/aretw0/virtualide/pkg/session"
	backend "github.com/redis/go-redis/v9"
)

// Stores bundles the persistence used by the commands. Recordings and
// sessions live in separate namespaces of the same backend.
type Stores struct {
	Recordings ports.RecordingStore
	Sessions   ports.RecordingStore
	Locker     ports.DistributedLocker // nil unless the backend is shared

	closers []io.Closer
}

// Close releases backend connections.
func (s *Stores) Close() error {
	var first error
	for _, c := range s.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// SessionManager builds a session manager over the session store.
func (s *Stores) SessionManager(cfg config.StoreConfig, opts ...session.Option) *session.Manager {
	if s.Locker != nil {
		opts = append(opts, session.WithLocker(s.Locker, cfg.LockTTL))
	}
	return session.NewManager(s.Sessions, opts...)
}

// OpenStores connects to the configured backend. When an encryption key is
// configured, both namespaces are sealed at rest.
func OpenStores(ctx context.Context, cfg config.StoreConfig, logger *slog.Logger) (*Stores, error) {
	var mws []middleware.Middleware
	if cfg.EncryptionKey != "" {
		mw, err := encryption(cfg)
		if err != nil {
			return nil, err
		}
		mws = append(mws, mw)
	}

	stores, err := openBackend(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	stores.Recordings = middleware.Chain(stores.Recordings, mws...)
	stores.Sessions = middleware.Chain(stores.Sessions, mws...)
	return stores, nil
}

func encryption(cfg config.StoreConfig) (middleware.Middleware, error) {
	active, err := middleware.ParseKey(cfg.EncryptionKey)
	if err != nil {
		return nil, err
	}
	ec := middleware.EncryptionConfig{ActiveKey: active}
	for _, k := range cfg.EncryptionFallbackKeys {
		key, err := middleware.ParseKey(k)
		if err != nil {
			return nil, fmt.Errorf("fallback key: %w", err)
		}
		ec.FallbackKeys = append(ec.FallbackKeys, key)
	}
	return middleware.NewEncryptionMiddleware(ec)
}

func openBackend(ctx context.Context, cfg config.StoreConfig, logger *slog.Logger) (*Stores, error) {
	switch cfg.Backend {
	case "memory":
		return &Stores{Recordings: memory.NewStore(), Sessions: memory.NewStore()}, nil

	case "file":
		return &Stores{
			Recordings: file.New(filepath.Join(cfg.Dir, "recordings")),
			Sessions:   file.New(filepath.Join(cfg.Dir, "sessions")),
		}, nil

	case "redis":
		opts, err := backend.ParseURL(cfg.Redis.URL)
		if err != nil {
			return nil, fmt.Errorf("invalid redis url: %w", err)
		}
		client := backend.NewClient(opts)

		var storeOpts []redis.Option
		if cfg.Redis.TTL > 0 {
			storeOpts = append(storeOpts, redis.WithTTL(cfg.Redis.TTL))
		}
		recordings := redis.NewFromClient(client, append([]redis.Option{redis.WithPrefix(cfg.Redis.Prefix + "recording:")}, storeOpts...)...)
		sessions := redis.NewFromClient(client, append([]redis.Option{redis.WithPrefix(cfg.Redis.Prefix + "session:")}, storeOpts...)...)

		if err := recordings.Ping(ctx); err != nil {
			client.Close()
			return nil, fmt.Errorf("redis unreachable: %w", err)
		}
		logger.Info("Connected to Redis", "addr", opts.Addr)

		return &Stores{
			Recordings: recordings,
			Sessions:   sessions,
			Locker:     redis.NewLocker(client, cfg.Redis.Prefix),
			closers:    []io.Closer{client},
		}, nil

	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}
