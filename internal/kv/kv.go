// Package kv implements the durable key-value storage adapter used by the
// session store and the post repository. Each store owns its key
// exclusively; values are JSON strings produced by the stores themselves.
//
// Three backends exist: an in-memory map, an atomically rewritten JSON
// file, and a SQLite database. Open selects one from a Config.
package kv

import (
	"fmt"

	"github.com/inkmill/inkmill/pkg/types"
)

// Store is the synchronous key-value contract the state stores depend on.
// Get reports presence explicitly so an absent key is not an error.
type Store interface {
	// Get returns the value for key and whether the key exists.
	Get(key string) (string, bool, error)

	// Set creates or replaces the value for key durably.
	Set(key, value string) error

	// Remove deletes the key. Removing an absent key is a no-op.
	Remove(key string) error

	// Close releases backend resources. Close is idempotent.
	Close() error
}

// Open validates the config and opens the selected backend. The data
// directory is created if needed for the file and sqlite backends.
func Open(config types.Config) (Store, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	switch config.Backend {
	case types.BackendMemory:
		return NewMemory(), nil
	case types.BackendFile:
		return OpenFile(config.DataDir)
	case types.BackendSQLite:
		return OpenSQLite(config.DataDir)
	default:
		return nil, fmt.Errorf("open backend %q: %w", config.Backend, types.ErrBackendUnknown)
	}
}
