package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lpereira/timecap/internal/domain/dashboard"
	"github.com/lpereira/timecap/internal/domain/project"
	"github.com/lpereira/timecap/internal/domain/session"
	"github.com/lpereira/timecap/internal/repository"
)

// SessionRepository persists sessions in SQLite. It serves the
// lifecycle writes, the dashboard's aggregation reads, and the purge
// hook project deletion needs.
type SessionRepository struct {
	db *DB
}

var (
	_ session.Repository      = (*SessionRepository)(nil)
	_ dashboard.SessionReader = (*SessionRepository)(nil)
	_ project.SessionPurger   = (*SessionRepository)(nil)
)

// NewSessionRepository creates a new SessionRepository
func NewSessionRepository(db *DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// completedFilter restricts a query to sessions that count toward
// totals: stopped and not canceled.
const completedFilter = "end_time_utc IS NOT NULL AND canceled_at_utc IS NULL"

// InsertIfNoneActive inserts a new session. The partial unique index on
// sessions(user_id) rejects the insert when the user already has an
// active session; that rejection is reported as ErrActiveSession so
// racing starts and the pre-check surface the same outcome.
func (r *SessionRepository) InsertIfNoneActive(ctx context.Context, sess *session.Session) error {
	query := `
		INSERT INTO sessions (id, user_id, project_id, goal_id, start_time_utc, end_time_utc, canceled_at_utc)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		sess.ID,
		sess.UserID,
		sess.ProjectID,
		sess.GoalID,
		sess.StartTimeUTC.Unix(),
		unixPtr(sess.EndTimeUTC),
		unixPtr(sess.CanceledAtUTC),
	)
	if err != nil {
		if isActiveSessionViolation(err) {
			return repository.ErrActiveSession
		}
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		return fmt.Errorf("failed to insert session: %w", err)
	}

	return nil
}

// FindActive returns the user's running session, if any
func (r *SessionRepository) FindActive(ctx context.Context, userID string) (*session.Session, error) {
	query := `
		SELECT id, user_id, project_id, goal_id, start_time_utc, end_time_utc, canceled_at_utc
		FROM sessions
		WHERE user_id = ? AND end_time_utc IS NULL AND canceled_at_utc IS NULL
	`

	sess, err := scanSession(r.db.QueryRowContext(ctx, query, userID))
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find active session: %w", err)
	}
	return sess, nil
}

// Get retrieves a session by ID
func (r *SessionRepository) Get(ctx context.Context, id string) (*session.Session, error) {
	query := `
		SELECT id, user_id, project_id, goal_id, start_time_utc, end_time_utc, canceled_at_utc
		FROM sessions
		WHERE id = ?
	`

	sess, err := scanSession(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return sess, nil
}

// SetEndTime marks a session completed. Only a still-active session is
// eligible; the state machine writes each end marker exactly once.
func (r *SessionRepository) SetEndTime(ctx context.Context, id string, end time.Time) error {
	query := `
		UPDATE sessions
		SET end_time_utc = ?
		WHERE id = ? AND end_time_utc IS NULL AND canceled_at_utc IS NULL
	`
	return r.execExpectingRow(ctx, query, end.Unix(), id)
}

// SetCanceledAt marks a session canceled.
func (r *SessionRepository) SetCanceledAt(ctx context.Context, id string, at time.Time) error {
	query := `
		UPDATE sessions
		SET canceled_at_utc = ?
		WHERE id = ? AND end_time_utc IS NULL AND canceled_at_utc IS NULL
	`
	return r.execExpectingRow(ctx, query, at.Unix(), id)
}

// Delete removes a session permanently
func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// DeleteByProject removes all of a project's sessions
func (r *SessionRepository) DeleteByProject(ctx context.Context, projectID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE project_id = ?`, projectID); err != nil {
		return fmt.Errorf("failed to delete project sessions: %w", err)
	}
	return nil
}

// SumCompletedSince sums completed seconds for sessions started at or
// after since, optionally scoped to one project.
func (r *SessionRepository) SumCompletedSince(ctx context.Context, userID string, projectID *string, since time.Time) (int64, error) {
	query := `
		SELECT COALESCE(SUM(MAX(end_time_utc - start_time_utc, 0)), 0)
		FROM sessions
		WHERE user_id = ? AND ` + completedFilter + ` AND start_time_utc >= ?`
	args := []any{userID, since.Unix()}
	if projectID != nil {
		query += " AND project_id = ?"
		args = append(args, *projectID)
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to sum sessions: %w", err)
	}
	return total, nil
}

// LastCompleted returns the most recent completed sessions joined with
// their project titles, newest end first.
func (r *SessionRepository) LastCompleted(ctx context.Context, userID string, projectID *string, limit int) ([]dashboard.LastSession, error) {
	query := `
		SELECT s.id, s.project_id, p.title, s.goal_id, s.start_time_utc, s.end_time_utc,
		       MAX(s.end_time_utc - s.start_time_utc, 0)
		FROM sessions s
		JOIN projects p ON p.id = s.project_id
		WHERE s.user_id = ? AND s.end_time_utc IS NOT NULL AND s.canceled_at_utc IS NULL`
	args := []any{userID}
	if projectID != nil {
		query += " AND s.project_id = ?"
		args = append(args, *projectID)
	}
	query += " ORDER BY s.end_time_utc DESC LIMIT ?"
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query last sessions: %w", err)
	}
	defer rows.Close()

	var sessions []dashboard.LastSession
	for rows.Next() {
		var row dashboard.LastSession
		var goalID sql.NullString
		var start, end int64
		if err := rows.Scan(&row.SessionID, &row.ProjectID, &row.ProjectTitle, &goalID, &start, &end, &row.DurationSeconds); err != nil {
			return nil, fmt.Errorf("failed to scan last session: %w", err)
		}
		if goalID.Valid {
			row.GoalID = &goalID.String
		}
		row.StartTimeUTC = time.Unix(start, 0).UTC()
		row.EndTimeUTC = time.Unix(end, 0).UTC()
		sessions = append(sessions, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating last sessions: %w", err)
	}

	return sessions, nil
}

// TotalsByProject sums all-time completed seconds per project, largest
// total first.
func (r *SessionRepository) TotalsByProject(ctx context.Context, userID string) ([]dashboard.ProjectTotal, error) {
	query := `
		SELECT s.project_id, p.title, SUM(MAX(s.end_time_utc - s.start_time_utc, 0)) AS total
		FROM sessions s
		JOIN projects p ON p.id = s.project_id
		WHERE s.user_id = ? AND s.end_time_utc IS NOT NULL AND s.canceled_at_utc IS NULL
		GROUP BY s.project_id, p.title
		ORDER BY total DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query project totals: %w", err)
	}
	defer rows.Close()

	var totals []dashboard.ProjectTotal
	for rows.Next() {
		var row dashboard.ProjectTotal
		if err := rows.Scan(&row.ProjectID, &row.ProjectTitle, &row.TotalSeconds); err != nil {
			return nil, fmt.Errorf("failed to scan project total: %w", err)
		}
		totals = append(totals, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating project totals: %w", err)
	}

	return totals, nil
}

// TotalsByDay sums completed seconds per UTC calendar day for sessions
// started at or after since. Days without sessions have no entry; the
// aggregation engine zero-fills.
func (r *SessionRepository) TotalsByDay(ctx context.Context, userID string, projectID *string, since time.Time) (map[string]int64, error) {
	query := `
		SELECT date(start_time_utc, 'unixepoch') AS day,
		       SUM(MAX(end_time_utc - start_time_utc, 0))
		FROM sessions
		WHERE user_id = ? AND ` + completedFilter + ` AND start_time_utc >= ?`
	args := []any{userID, since.Unix()}
	if projectID != nil {
		query += " AND project_id = ?"
		args = append(args, *projectID)
	}
	query += " GROUP BY day"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily totals: %w", err)
	}
	defer rows.Close()

	totals := make(map[string]int64)
	for rows.Next() {
		var day string
		var total int64
		if err := rows.Scan(&day, &total); err != nil {
			return nil, fmt.Errorf("failed to scan daily total: %w", err)
		}
		totals[day] = total
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating daily totals: %w", err)
	}

	return totals, nil
}

func (r *SessionRepository) execExpectingRow(ctx context.Context, query string, args ...any) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (*session.Session, error) {
	var sess session.Session
	var goalID sql.NullString
	var start int64
	var end, canceled sql.NullInt64

	err := row.Scan(&sess.ID, &sess.UserID, &sess.ProjectID, &goalID, &start, &end, &canceled)
	if err != nil {
		return nil, err
	}

	if goalID.Valid {
		sess.GoalID = &goalID.String
	}
	sess.StartTimeUTC = time.Unix(start, 0).UTC()
	if end.Valid {
		t := time.Unix(end.Int64, 0).UTC()
		sess.EndTimeUTC = &t
	}
	if canceled.Valid {
		t := time.Unix(canceled.Int64, 0).UTC()
		sess.CanceledAtUTC = &t
	}

	return &sess, nil
}

func unixPtr(t *time.Time) *int64 {
	if t == nil {
		return nil
	}
	v := t.Unix()
	return &v
}
