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

// ProjectRepository persists projects in SQLite.
type ProjectRepository struct {
	db *DB
}

var (
	_ project.Repository      = (*ProjectRepository)(nil)
	_ dashboard.ProjectReader = (*ProjectRepository)(nil)
	_ session.ProjectStore    = (*ProjectRepository)(nil)
)

// NewProjectRepository creates a new ProjectRepository
func NewProjectRepository(db *DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// Create inserts a new project
func (r *ProjectRepository) Create(ctx context.Context, proj *project.Project) error {
	query := `
		INSERT INTO projects (id, owner_id, title, status, created_at_utc)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		proj.ID,
		proj.OwnerID,
		proj.Title,
		proj.Status,
		proj.CreatedAtUTC.Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}

	return nil
}

// Find retrieves a project by ID regardless of owner
func (r *ProjectRepository) Find(ctx context.Context, id string) (*project.Project, error) {
	query := `
		SELECT id, owner_id, title, status, created_at_utc
		FROM projects
		WHERE id = ?
	`
	return r.queryOne(ctx, query, id)
}

// FindOwned retrieves a project owned by ownerID
func (r *ProjectRepository) FindOwned(ctx context.Context, id, ownerID string) (*project.Project, error) {
	query := `
		SELECT id, owner_id, title, status, created_at_utc
		FROM projects
		WHERE id = ? AND owner_id = ?
	`
	return r.queryOne(ctx, query, id, ownerID)
}

// ListActive returns the owner's non-archived projects ordered by title
func (r *ProjectRepository) ListActive(ctx context.Context, ownerID string) ([]project.ListItem, error) {
	query := `
		SELECT id, title
		FROM projects
		WHERE owner_id = ? AND status = 'active'
		ORDER BY title ASC
	`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var projects []project.ListItem
	for rows.Next() {
		var item project.ListItem
		if err := rows.Scan(&item.ID, &item.Title); err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating projects: %w", err)
	}

	return projects, nil
}

// TitleExists reports whether the owner already has a project titled title
func (r *ProjectRepository) TitleExists(ctx context.Context, ownerID, title string) (bool, error) {
	var count int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM projects WHERE owner_id = ? AND title = ?`,
		ownerID, title).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check title: %w", err)
	}
	return count > 0, nil
}

// FirstByTitle returns the owner's alphabetically-first project id,
// skipping exceptID
func (r *ProjectRepository) FirstByTitle(ctx context.Context, ownerID, exceptID string) (string, error) {
	query := `
		SELECT id
		FROM projects
		WHERE owner_id = ? AND id != ?
		ORDER BY title ASC
		LIMIT 1
	`

	var id string
	err := r.db.QueryRowContext(ctx, query, ownerID, exceptID).Scan(&id)
	if err == sql.ErrNoRows {
		return "", repository.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("failed to find next project: %w", err)
	}
	return id, nil
}

// Delete removes a project
func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		return fmt.Errorf("failed to delete project: %w", err)
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

func (r *ProjectRepository) queryOne(ctx context.Context, query string, args ...any) (*project.Project, error) {
	var proj project.Project
	var createdAt int64
	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&proj.ID,
		&proj.OwnerID,
		&proj.Title,
		&proj.Status,
		&createdAt,
	)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}

	proj.CreatedAtUTC = time.Unix(createdAt, 0).UTC()
	return &proj, nil
}
