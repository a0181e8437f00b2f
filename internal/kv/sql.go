package kv

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite"
)

// Dialect holds the driver specific pieces of the SQL backend.
type Dialect struct {
	Driver string
	Schema string
	Upsert string
}

var (
	SQLite = Dialect{
		Driver: "sqlite",
		Schema: `CREATE TABLE IF NOT EXISTS kv (
			k TEXT PRIMARY KEY,
			v TEXT NOT NULL,
			updated_at INTEGER NOT NULL
		)`,
		Upsert: `INSERT INTO kv (k, v, updated_at) VALUES (?, ?, ?)
			ON CONFLICT(k) DO UPDATE SET v = excluded.v, updated_at = excluded.updated_at`,
	}
	MySQL = Dialect{
		Driver: "mysql",
		Schema: `CREATE TABLE IF NOT EXISTS kv (
			k VARCHAR(191) PRIMARY KEY,
			v LONGTEXT NOT NULL,
			updated_at BIGINT NOT NULL
		)`,
		Upsert: `INSERT INTO kv (k, v, updated_at) VALUES (?, ?, ?)
			ON DUPLICATE KEY UPDATE v = VALUES(v), updated_at = VALUES(updated_at)`,
	}
)

// SQL stores keys in a single kv table.
type SQL struct {
	db      *sql.DB
	dialect Dialect
}

// OpenSQL opens dsn with the dialect's driver and creates the table.
// Use ":memory:" with SQLite for a throwaway database.
func OpenSQL(d Dialect, dsn string) (*SQL, error) {
	if dsn == "" {
		return nil, fmt.Errorf("%s backend needs a data source", d.Driver)
	}
	db, err := sql.Open(d.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", d.Driver, err)
	}
	if d.Driver == SQLite.Driver {
		// One connection keeps ":memory:" databases shared and serializes writers.
		db.SetMaxOpenConns(1)
	}

	s := &SQL{db: db, dialect: d}
	if _, err := db.Exec(d.Schema); err != nil {
		_ = db.Close() // Best effort cleanup on initialization error
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return s, nil
}

func (s *SQL) Get(ctx context.Context, key string) (string, bool, error) {
	var v string
	err := s.db.QueryRowContext(ctx, "SELECT v FROM kv WHERE k = ?", key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("query %q: %w", key, err)
	}
	return v, true, nil
}

func (s *SQL) Set(ctx context.Context, key, value string) error {
	if _, err := s.db.ExecContext(ctx, s.dialect.Upsert, key, value, time.Now().Unix()); err != nil {
		return fmt.Errorf("upsert %q: %w", key, err)
	}
	return nil
}

func (s *SQL) Close() error {
	return s.db.Close()
}
