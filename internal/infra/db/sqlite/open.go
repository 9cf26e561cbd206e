// Package sqlite is the single-file storage backend. It uses the pure-Go
// modernc driver through database/sql with these per-connection pragmas:
//
//	journal_mode = WAL
//	busy_timeout = 10000
//	synchronous  = NORMAL
//	foreign_keys = ON
//
// WAL plus busy_timeout lets the schedule worker and the command handlers
// write concurrently without SQLITE_BUSY surfacing to callers.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "modernc.org/sqlite"
)

const pragmas = "_pragma=busy_timeout(10000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_pragma=foreign_keys(1)"

// Open opens (creating if needed) the database at path and pings it.
// ":memory:" is accepted and pinned to a single connection so every caller sees the same database.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	path = strings.TrimPrefix(strings.TrimSpace(path), "sqlite://")
	if path == "" {
		return nil, fmt.Errorf("sqlite path empty")
	}
	memory := path == ":memory:"
	if !memory {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create db dir: %w", err)
			}
		}
	}

	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	db, err := sql.Open("sqlite", path+sep+pragmas)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if memory {
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	return db, nil
}
