package sqlite

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// NewTestDB creates an in-memory SQLite database for testing. The
// shared-cache name keeps the database alive across pooled connections;
// a single connection keeps writes serialized under the pool.
func NewTestDB(t *testing.T) *DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := New(dsn)
	require.NoError(t, err, "failed to create test database")
	db.SetMaxOpenConns(1)

	err = db.RunMigrations()
	require.NoError(t, err, "failed to run migrations")

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

func insertUser(t *testing.T, db *DB, id string) {
	t.Helper()
	_, err := db.Exec(`INSERT INTO users (id) VALUES (?)`, id)
	require.NoError(t, err)
}

func insertProject(t *testing.T, db *DB, id, ownerID, title string) {
	t.Helper()
	_, err := db.Exec(
		`INSERT INTO projects (id, owner_id, title, status, created_at_utc) VALUES (?, ?, ?, 'active', ?)`,
		id, ownerID, title, time.Now().Unix())
	require.NoError(t, err)
}

func insertArchivedProject(t *testing.T, db *DB, id, ownerID, title string) {
	t.Helper()
	_, err := db.Exec(
		`INSERT INTO projects (id, owner_id, title, status, created_at_utc) VALUES (?, ?, ?, 'archived', ?)`,
		id, ownerID, title, time.Now().Unix())
	require.NoError(t, err)
}

func insertGoal(t *testing.T, db *DB, id, projectID string, targetMinutes int) {
	t.Helper()
	_, err := db.Exec(
		`INSERT INTO goals (id, project_id, target_minutes) VALUES (?, ?, ?)`,
		id, projectID, targetMinutes)
	require.NoError(t, err)
}

func seedCompleted(t *testing.T, db *DB, id, userID, projectID string, start, end time.Time) {
	t.Helper()
	_, err := db.Exec(
		`INSERT INTO sessions (id, user_id, project_id, start_time_utc, end_time_utc) VALUES (?, ?, ?, ?, ?)`,
		id, userID, projectID, start.Unix(), end.Unix())
	require.NoError(t, err)
}

func seedCanceled(t *testing.T, db *DB, id, userID, projectID string, start, at time.Time) {
	t.Helper()
	_, err := db.Exec(
		`INSERT INTO sessions (id, user_id, project_id, start_time_utc, canceled_at_utc) VALUES (?, ?, ?, ?, ?)`,
		id, userID, projectID, start.Unix(), at.Unix())
	require.NoError(t, err)
}

// TestMigrations verifies that migrations run successfully
func TestMigrations(t *testing.T) {
	db := NewTestDB(t)

	tables := []string{"users", "projects", "goals", "sessions", "api_keys"}
	for _, table := range tables {
		var count int
		err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&count)
		require.NoError(t, err, "failed to query table %s", table)
		require.Equal(t, 1, count, "table %s not found", table)
	}

	var count int
	err := db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='index' AND name='idx_sessions_one_active'").Scan(&count)
	require.NoError(t, err)
	require.Equal(t, 1, count, "partial unique index not found")
}

// TestForeignKeys verifies that foreign key constraints are enabled
func TestForeignKeys(t *testing.T) {
	db := NewTestDB(t)

	var enabled int
	err := db.QueryRow("PRAGMA foreign_keys").Scan(&enabled)
	require.NoError(t, err)
	require.Equal(t, 1, enabled, "foreign keys not enabled")
}

// TestSessionEndMarkersExclusive verifies the CHECK that a session is
// never both completed and canceled.
func TestSessionEndMarkersExclusive(t *testing.T) {
	db := NewTestDB(t)
	insertProject(t, db, "p1", "u1", "Alpha")

	now := time.Now().Unix()
	_, err := db.Exec(
		`INSERT INTO sessions (id, user_id, project_id, start_time_utc, end_time_utc, canceled_at_utc)
		 VALUES ('s1', 'u1', 'p1', ?, ?, ?)`,
		now, now, now)
	require.Error(t, err, "should reject a session with both end markers")
}
