package sqlite

// created_at holds unix milliseconds written by the application.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS subscribers (
    id         INTEGER PRIMARY KEY,
    user_id    INTEGER NOT NULL UNIQUE,
    created_at INTEGER NOT NULL DEFAULT 0
)`,
	`CREATE TABLE IF NOT EXISTS schedule (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    data       TEXT NOT NULL,
    created_at INTEGER NOT NULL DEFAULT 0
)`,
}
