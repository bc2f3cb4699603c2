// Package kvstore provides the durable key-value capability used to persist
// user-owned data. Values are opaque byte payloads; callers own encoding.
package kvstore

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned by Get when the key has never been written.
	ErrNotFound = errors.New("kvstore: key not found")
	// ErrExists is returned by Create when the key is already present.
	ErrExists = errors.New("kvstore: key already exists")
)

// Store defines the operations every backend implements.
type Store interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Create stores value under key only if the key is absent.
	// It returns ErrExists when the key is already taken.
	Create(ctx context.Context, key string, value []byte) error

	// Close releases backend resources.
	Close() error
}

// Backend names accepted by config.
const (
	BackendMemory   = "memory"
	BackendLocal    = "local"
	BackendRedis    = "redis"
	BackendPostgres = "postgres"
	BackendSQLite   = "sqlite"
)
