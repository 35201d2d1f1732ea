// Package store persists modules, DTOs and their properties in SQLite.
package store

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/mattn/go-sqlite3"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrAlreadyExists = errors.New("already exists")
)

// MemoryPath opens a private in-memory database.
const MemoryPath = ":memory:"

// SchemaSQL is the complete schema. Statements are idempotent.
const SchemaSQL = `
CREATE TABLE IF NOT EXISTS modules (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	name TEXT NOT NULL UNIQUE,
	namespace TEXT NOT NULL,
	description TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS dtos (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	module_id INTEGER NOT NULL,
	name TEXT NOT NULL,
	namespace TEXT NOT NULL,
	comment TEXT,
	created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (module_id) REFERENCES modules(id) ON DELETE CASCADE,
	UNIQUE(module_id, name)
);

CREATE TABLE IF NOT EXISTS properties (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	dto_id INTEGER NOT NULL,
	position INTEGER NOT NULL,
	name TEXT NOT NULL,
	type_name TEXT NOT NULL,
	type_full_name TEXT,
	comment TEXT,
	is_nullable INTEGER NOT NULL DEFAULT 0,
	is_list INTEGER NOT NULL DEFAULT 0,
	has_getter INTEGER NOT NULL DEFAULT 1,
	has_setter INTEGER NOT NULL DEFAULT 1,
	FOREIGN KEY (dto_id) REFERENCES dtos(id) ON DELETE CASCADE,
	UNIQUE(dto_id, name)
);

CREATE INDEX IF NOT EXISTS idx_dtos_module ON dtos(module_id);
CREATE INDEX IF NOT EXISTS idx_properties_dto ON properties(dto_id, position);
`

// Open opens the database at path with foreign keys enforced and a single
// pooled connection, so an in-memory database lives as long as the handle.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	if path == "" {
		return nil, errors.New("database path is required")
	}
	if path != MemoryPath {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, errors.Wrap(err, "failed to create database directory")
		}
	}
	dsn := path
	if strings.Contains(dsn, "?") {
		dsn += "&_foreign_keys=on"
	} else {
		dsn += "?_foreign_keys=on"
	}

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open database")
	}
	db.SetMaxOpenConns(1)
	if err = db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, errors.Wrap(err, "failed to connect to database")
	}
	return db, nil
}

// InitSchema creates any missing tables.
func InitSchema(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, SchemaSQL); err != nil {
		return errors.Wrap(err, "failed to initialize schema")
	}
	return nil
}

// translate maps driver errors onto the package sentinels.
func translate(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return errors.Wrapf(ErrNotFound, format, args...)
	}
	var se sqlite3.Error
	if errors.As(err, &se) && se.Code == sqlite3.ErrConstraint && se.ExtendedCode == sqlite3.ErrConstraintUnique {
		return errors.Wrapf(ErrAlreadyExists, format, args...)
	}
	return errors.Wrapf(err, format, args...)
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
