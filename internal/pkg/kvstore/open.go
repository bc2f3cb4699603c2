package kvstore

import (
	"context"
	"fmt"
)

// Options selects and configures a backend.
type Options struct {
	Backend     string
	Dir         string
	Redis       RedisConfig
	PostgresDSN string
	SQLitePath  string
}

// Open returns the backend named by opts.Backend.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch opts.Backend {
	case BackendMemory, "":
		return NewMemoryStore(), nil
	case BackendLocal:
		return NewLocalStore(opts.Dir)
	case BackendRedis:
		return NewRedisStore(ctx, opts.Redis)
	case BackendPostgres:
		return NewPostgresStore(ctx, opts.PostgresDSN)
	case BackendSQLite:
		return NewSQLiteStore(ctx, opts.SQLitePath)
	default:
		return nil, fmt.Errorf("unknown store backend %q", opts.Backend)
	}
}
