// Package sqlite implements the repository interfaces using SQLite as the
// storage backend.
//
// WHY modernc.org/sqlite INSTEAD OF github.com/mattn/go-sqlite3?
// mattn/go-sqlite3 uses CGo (calls C code from Go), which means you need a C
// compiler installed and cross-compilation becomes painful. modernc.org/sqlite
// is a pure Go translation of the SQLite C code — no C compiler needed, works
// everywhere Go works.
//
// The catalog fits in a single table, so SQLite's embedded single-file model
// is exactly the right amount of database: no server to run, and ":memory:"
// gives every test an isolated store for free.
package sqlite

import (
	"database/sql"
	"fmt"

	// Side-effect import: the driver's init() registers itself with
	// database/sql under the name "sqlite", which is what sql.Open uses.
	_ "modernc.org/sqlite"
)

// DB wraps a sql.DB connection pool and provides the repository methods.
// New creates it, migrate() prepares the schema, Close releases the pool.
type DB struct {
	conn *sql.DB
}

// New opens a SQLite database at the given path and ensures the schema
// exists. Use ":memory:" for an in-memory database (tests).
func New(dbPath string) (*DB, error) {
	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("sqlite: opening database: %w", err)
	}

	// An in-memory database exists per connection: with a normal pool, a
	// second connection would see a fresh empty database with no shows
	// table. One connection keeps every caller on the same store.
	if dbPath == ":memory:" {
		conn.SetMaxOpenConns(1)
	}

	// sql.Open doesn't actually connect — Ping forces the first connection
	// so a bad path or permissions problem surfaces here, not on first query.
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: pinging database: %w", err)
	}

	// WAL mode allows concurrent reads while a write is in progress.
	// Default SQLite locks the whole database file during writes.
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: setting WAL mode: %w", err)
	}

	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: enabling foreign keys: %w", err)
	}

	db := &DB{conn: conn}

	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("sqlite: running migrations: %w", err)
	}

	return db, nil
}

// Close closes the database connection pool. Callers should defer this right
// after a successful New().
func (db *DB) Close() error {
	return db.conn.Close()
}

// migrate ensures the shows table exists.
//
// CREATE TABLE IF NOT EXISTS is idempotent — safe to run on every startup
// against an already-initialized database. The CHECK constraint is the last
// line of defence for the category enum; the validator rejects bad values
// before a query ever runs.
func (db *DB) migrate() error {
	_, err := db.conn.Exec(`
		CREATE TABLE IF NOT EXISTS shows (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			title       TEXT NOT NULL,
			description TEXT NOT NULL,
			category    TEXT NOT NULL CHECK(category IN ('movie', 'anime', 'serie')),
			image       TEXT
		);
	`)
	if err != nil {
		return fmt.Errorf("creating shows table: %w", err)
	}

	return nil
}
