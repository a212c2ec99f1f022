package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/go-sql-driver/mysql"
	_ "modernc.org/sqlite"
)

// Supported database/sql driver names.
const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"
)

// ephemeralDSN keeps the in-memory database alive and shared across the
// connection pool for the lifetime of the process.
const ephemeralDSN = "file::memory:?cache=shared"

// Store is a resolved datastore connection. It is established once at
// startup and safe for concurrent use by contract of database/sql.
type Store struct {
	DB     *sql.DB
	Driver string
}

// Open resolves a working datastore for the process. It attempts the
// configured durable MySQL database first (unless forceEphemeral is set or
// no DSN is configured) and falls back to a disposable in-memory SQLite
// instance, so the service stays available for development and demos when
// no database server is running. If the fallback also fails there is
// nothing left to try and the error is fatal to the caller.
//
// The fallback must never be relied on where durability matters: data in
// the ephemeral store is lost on restart.
func Open(ctx context.Context, dsn string, forceEphemeral bool, connectTimeout time.Duration) (*Store, error) {
	switch {
	case forceEphemeral:
		slog.Info("ephemeral mode forced, skipping durable database")
	case dsn == "":
		slog.Info("no database DSN configured, using in-memory store")
	default:
		store, err := openDurable(ctx, dsn, connectTimeout)
		if err == nil {
			slog.Info("connected to durable database")
			return store, nil
		}
		slog.Warn("durable database unavailable, falling back to in-memory store", "error", err)
	}

	store, err := openEphemeral(ctx)
	if err != nil {
		return nil, fmt.Errorf("provisioning in-memory store: %w", err)
	}

	slog.Info("connected to in-memory store; data will not survive a restart")
	return store, nil
}

func openDurable(ctx context.Context, dsn string, connectTimeout time.Duration) (*Store, error) {
	db, err := sql.Open(DriverMySQL, dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, err
	}

	store := &Store{DB: db, Driver: DriverMySQL}
	if err := store.ensureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

func openEphemeral(ctx context.Context) (*Store, error) {
	db, err := sql.Open(DriverSQLite, ephemeralDSN)
	if err != nil {
		return nil, err
	}

	// A single connection avoids SQLITE_BUSY on concurrent writers; the
	// fallback store trades throughput for simplicity.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}

	store := &Store{DB: db, Driver: DriverSQLite}
	if err := store.ensureSchema(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	return s.DB.Close()
}

// Timestamps are stored as int64 Unix nanoseconds on both backends so that
// ordering and round-trips behave identically regardless of dialect.
var schemaMySQL = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            CHAR(36) PRIMARY KEY,
		username      VARCHAR(255) NOT NULL,
		email         VARCHAR(255) NOT NULL UNIQUE,
		password_hash VARCHAR(255) NOT NULL,
		created_at    BIGINT NOT NULL,
		updated_at    BIGINT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS tasks (
		id          CHAR(36) PRIMARY KEY,
		user_id     CHAR(36) NOT NULL,
		title       VARCHAR(255) NOT NULL,
		description TEXT NOT NULL,
		status      VARCHAR(16) NOT NULL DEFAULT 'pending',
		created_at  BIGINT NOT NULL,
		updated_at  BIGINT NOT NULL,
		INDEX idx_tasks_owner (user_id, created_at)
	)`,
}

var schemaSQLite = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            TEXT PRIMARY KEY,
		username      TEXT NOT NULL,
		email         TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		created_at    INTEGER NOT NULL,
		updated_at    INTEGER NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS tasks (
		id          TEXT PRIMARY KEY,
		user_id     TEXT NOT NULL,
		title       TEXT NOT NULL,
		description TEXT NOT NULL,
		status      TEXT NOT NULL DEFAULT 'pending',
		created_at  INTEGER NOT NULL,
		updated_at  INTEGER NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_tasks_owner ON tasks (user_id, created_at)`,
}

// ensureSchema creates the two tables if they do not exist yet. MySQL
// rejects multi-statement Exec by default, so statements run one at a time.
func (s *Store) ensureSchema(ctx context.Context) error {
	stmts := schemaMySQL
	if s.Driver == DriverSQLite {
		stmts = schemaSQLite
	}
	for _, stmt := range stmts {
		if _, err := s.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("applying schema: %w", err)
		}
	}
	return nil
}
