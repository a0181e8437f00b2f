// Package kv provides the string-keyed stores the task list persists into.
package kv

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Store is a minimal key-value store. Get reports ok=false for missing keys.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Close() error
}

// Backend names.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMySQL  = "mysql"
)

// Options selects and configures a backend.
type Options struct {
	Backend string
	// Path is the file for the file and sqlite backends.
	Path string
	// DSN is the data source name for mysql.
	DSN string
}

// Open returns the backend described by opts.
func Open(opts Options) (Store, error) {
	switch opts.Backend {
	case BackendMemory:
		return NewMemory(), nil
	case BackendFile, "":
		return NewFile(opts.Path)
	case BackendSQLite:
		if err := ensureDir(opts.Path); err != nil {
			return nil, err
		}
		return OpenSQL(SQLite, opts.Path)
	case BackendMySQL:
		return OpenSQL(MySQL, opts.DSN)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", opts.Backend)
	}
}

func ensureDir(path string) error {
	if path == "" || path == ":memory:" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	return nil
}
