package sqlite

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps a SQLite database connection
type DB struct {
	*sql.DB
}

// New creates a new SQLite database connection
func New(dataSourceName string) (*DB, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return &DB{db}, nil
}

// RunMigrations applies the schema. All timestamps are stored as unix
// seconds (UTC) so SQL can do window arithmetic and day bucketing
// directly. The partial unique index on sessions is the atomic
// enforcement of the single-active-session invariant.
func (db *DB) RunMigrations() error {
	migration := `
-- Users: only the dashboard preference lives here; identity is external.
CREATE TABLE IF NOT EXISTS users (
    id TEXT PRIMARY KEY,
    default_project_id TEXT REFERENCES projects(id)
);

-- Projects table
CREATE TABLE IF NOT EXISTS projects (
    id TEXT PRIMARY KEY,
    owner_id TEXT NOT NULL,
    title TEXT NOT NULL,
    status TEXT NOT NULL DEFAULT 'active' CHECK(status IN ('active', 'archived')),
    created_at_utc INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_projects_owner ON projects(owner_id);
CREATE UNIQUE INDEX IF NOT EXISTS idx_projects_owner_title ON projects(owner_id, title);

-- Goals table
CREATE TABLE IF NOT EXISTS goals (
    id TEXT PRIMARY KEY,
    project_id TEXT NOT NULL REFERENCES projects(id),
    target_minutes INTEGER NOT NULL DEFAULT 0
);
CREATE INDEX IF NOT EXISTS idx_goals_project ON goals(project_id);

-- Sessions table. end_time_utc and canceled_at_utc are mutually
-- exclusive; a session with neither is active.
CREATE TABLE IF NOT EXISTS sessions (
    id TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    project_id TEXT NOT NULL REFERENCES projects(id),
    goal_id TEXT REFERENCES goals(id),
    start_time_utc INTEGER NOT NULL,
    end_time_utc INTEGER,
    canceled_at_utc INTEGER,
    CHECK (end_time_utc IS NULL OR canceled_at_utc IS NULL)
);
CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(user_id);
CREATE INDEX IF NOT EXISTS idx_sessions_project ON sessions(project_id);
CREATE UNIQUE INDEX IF NOT EXISTS idx_sessions_one_active
    ON sessions(user_id)
    WHERE end_time_utc IS NULL AND canceled_at_utc IS NULL;

-- API keys for authentication
CREATE TABLE IF NOT EXISTS api_keys (
    key_hash TEXT PRIMARY KEY,
    user_id TEXT NOT NULL,
    created_at INTEGER NOT NULL DEFAULT (unixepoch()),
    description TEXT
);
CREATE INDEX IF NOT EXISTS idx_api_keys_user ON api_keys(user_id);
`

	_, err := db.Exec(migration)
	if err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
