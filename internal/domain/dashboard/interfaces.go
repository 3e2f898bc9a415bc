package dashboard

import (
	"context"
	"time"

	"github.com/lpereira/timecap/internal/domain/goal"
	"github.com/lpereira/timecap/internal/domain/project"
	"github.com/lpereira/timecap/internal/domain/session"
)

// SessionReader provides the read-only aggregation queries. Durations
// count only completed, non-canceled sessions, in whole seconds. A nil
// projectID leaves the query unscoped.
type SessionReader interface {
	FindActive(ctx context.Context, userID string) (*session.Session, error)
	SumCompletedSince(ctx context.Context, userID string, projectID *string, since time.Time) (int64, error)
	LastCompleted(ctx context.Context, userID string, projectID *string, limit int) ([]LastSession, error)
	TotalsByProject(ctx context.Context, userID string) ([]ProjectTotal, error)
	TotalsByDay(ctx context.Context, userID string, projectID *string, since time.Time) (map[string]int64, error)
}

// ProjectReader resolves the user's projects and titles.
type ProjectReader interface {
	Find(ctx context.Context, id string) (*project.Project, error)
	ListActive(ctx context.Context, ownerID string) ([]project.ListItem, error)
}

// GoalReader resolves the active session's goal target.
type GoalReader interface {
	Find(ctx context.Context, id string) (*goal.Goal, error)
}

// PreferenceReader resolves the user's stored default project.
type PreferenceReader interface {
	DefaultProject(ctx context.Context, userID string) (*string, error)
}
