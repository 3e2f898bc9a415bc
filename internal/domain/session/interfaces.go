package session

import (
	"context"
	"time"

	"github.com/lpereira/timecap/internal/domain/project"
)

// Repository provides persistence for sessions. InsertIfNoneActive must
// enforce the at-most-one-active-session-per-user constraint atomically
// and report a violation as repository.ErrActiveSession.
type Repository interface {
	InsertIfNoneActive(ctx context.Context, sess *Session) error
	FindActive(ctx context.Context, userID string) (*Session, error)
	Get(ctx context.Context, id string) (*Session, error)
	SetEndTime(ctx context.Context, id string, end time.Time) error
	SetCanceledAt(ctx context.Context, id string, at time.Time) error
	Delete(ctx context.Context, id string) error
}

// ProjectStore resolves projects for ownership checks.
type ProjectStore interface {
	Find(ctx context.Context, id string) (*project.Project, error)
}

// GoalStore resolves goal-to-project membership.
type GoalStore interface {
	Exists(ctx context.Context, goalID, projectID string) (bool, error)
}
