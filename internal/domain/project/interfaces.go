package project

import "context"

// Repository provides persistence for projects.
type Repository interface {
	Create(ctx context.Context, proj *Project) error
	FindOwned(ctx context.Context, id, ownerID string) (*Project, error)
	TitleExists(ctx context.Context, ownerID, title string) (bool, error)
	// FirstByTitle returns the id of the owner's alphabetically-first
	// project, skipping exceptID. repository.ErrNotFound when none.
	FirstByTitle(ctx context.Context, ownerID, exceptID string) (string, error)
	Delete(ctx context.Context, id string) error
}

// PreferenceStore reads and writes the user's default project.
type PreferenceStore interface {
	DefaultProject(ctx context.Context, userID string) (*string, error)
	SetDefaultProject(ctx context.Context, userID string, projectID *string) error
}

// SessionPurger removes a project's sessions before the project goes away.
type SessionPurger interface {
	DeleteByProject(ctx context.Context, projectID string) error
}
