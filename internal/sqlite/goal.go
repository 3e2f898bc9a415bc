package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lpereira/timecap/internal/domain/dashboard"
	"github.com/lpereira/timecap/internal/domain/goal"
	"github.com/lpereira/timecap/internal/domain/session"
	"github.com/lpereira/timecap/internal/repository"
)

// GoalRepository reads goals from SQLite.
type GoalRepository struct {
	db *DB
}

var (
	_ session.GoalStore    = (*GoalRepository)(nil)
	_ dashboard.GoalReader = (*GoalRepository)(nil)
)

// NewGoalRepository creates a new GoalRepository
func NewGoalRepository(db *DB) *GoalRepository {
	return &GoalRepository{db: db}
}

// Exists reports whether the goal belongs to the project
func (r *GoalRepository) Exists(ctx context.Context, goalID, projectID string) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM goals WHERE id = ? AND project_id = ?`,
		goalID, projectID).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check goal: %w", err)
	}
	return count > 0, nil
}

// Find retrieves a goal by ID
func (r *GoalRepository) Find(ctx context.Context, id string) (*goal.Goal, error) {
	query := `
		SELECT id, project_id, target_minutes
		FROM goals
		WHERE id = ?
	`

	var gl goal.Goal
	err := r.db.QueryRowContext(ctx, query, id).Scan(&gl.ID, &gl.ProjectID, &gl.TargetMinutes)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get goal: %w", err)
	}

	return &gl, nil
}
