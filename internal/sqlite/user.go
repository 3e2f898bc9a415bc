package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lpereira/timecap/internal/domain/dashboard"
	"github.com/lpereira/timecap/internal/domain/project"
	"github.com/lpereira/timecap/internal/repository"
)

// UserRepository stores per-user preferences in SQLite.
type UserRepository struct {
	db *DB
}

var (
	_ project.PreferenceStore    = (*UserRepository)(nil)
	_ dashboard.PreferenceReader = (*UserRepository)(nil)
)

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

// DefaultProject returns the user's default project id, nil when the
// user has none set (or no preference row at all).
func (r *UserRepository) DefaultProject(ctx context.Context, userID string) (*string, error) {
	var defaultID sql.NullString
	err := r.db.QueryRowContext(ctx,
		`SELECT default_project_id FROM users WHERE id = ?`,
		userID).Scan(&defaultID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get default project: %w", err)
	}

	if !defaultID.Valid {
		return nil, nil
	}
	return &defaultID.String, nil
}

// SetDefaultProject upserts the user's default project preference
func (r *UserRepository) SetDefaultProject(ctx context.Context, userID string, projectID *string) error {
	query := `
		INSERT INTO users (id, default_project_id)
		VALUES (?, ?)
		ON CONFLICT(id) DO UPDATE SET default_project_id = excluded.default_project_id
	`

	_, err := r.db.ExecContext(ctx, query, userID, projectID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		return fmt.Errorf("failed to set default project: %w", err)
	}

	return nil
}
