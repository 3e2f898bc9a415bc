package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/lpereira/timecap/internal/domain/dashboard"
	"github.com/lpereira/timecap/internal/domain/goal"
	"github.com/lpereira/timecap/internal/domain/project"
	"github.com/lpereira/timecap/internal/domain/session"
)

// SessionRepository is a testify mock of the session store, covering
// both the lifecycle writes and the dashboard reads.
type SessionRepository struct {
	mock.Mock
}

var (
	_ session.Repository      = (*SessionRepository)(nil)
	_ dashboard.SessionReader = (*SessionRepository)(nil)
	_ project.SessionPurger   = (*SessionRepository)(nil)
)

func (m *SessionRepository) InsertIfNoneActive(ctx context.Context, sess *session.Session) error {
	args := m.Called(ctx, sess)
	return args.Error(0)
}

func (m *SessionRepository) FindActive(ctx context.Context, userID string) (*session.Session, error) {
	args := m.Called(ctx, userID)
	if sess, ok := args.Get(0).(*session.Session); ok {
		return sess, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *SessionRepository) Get(ctx context.Context, id string) (*session.Session, error) {
	args := m.Called(ctx, id)
	if sess, ok := args.Get(0).(*session.Session); ok {
		return sess, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *SessionRepository) SetEndTime(ctx context.Context, id string, end time.Time) error {
	args := m.Called(ctx, id, end)
	return args.Error(0)
}

func (m *SessionRepository) SetCanceledAt(ctx context.Context, id string, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}

func (m *SessionRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *SessionRepository) DeleteByProject(ctx context.Context, projectID string) error {
	args := m.Called(ctx, projectID)
	return args.Error(0)
}

func (m *SessionRepository) SumCompletedSince(ctx context.Context, userID string, projectID *string, since time.Time) (int64, error) {
	args := m.Called(ctx, userID, projectID, since)
	return args.Get(0).(int64), args.Error(1)
}

func (m *SessionRepository) LastCompleted(ctx context.Context, userID string, projectID *string, limit int) ([]dashboard.LastSession, error) {
	args := m.Called(ctx, userID, projectID, limit)
	if rows, ok := args.Get(0).([]dashboard.LastSession); ok {
		return rows, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *SessionRepository) TotalsByProject(ctx context.Context, userID string) ([]dashboard.ProjectTotal, error) {
	args := m.Called(ctx, userID)
	if totals, ok := args.Get(0).([]dashboard.ProjectTotal); ok {
		return totals, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *SessionRepository) TotalsByDay(ctx context.Context, userID string, projectID *string, since time.Time) (map[string]int64, error) {
	args := m.Called(ctx, userID, projectID, since)
	if totals, ok := args.Get(0).(map[string]int64); ok {
		return totals, args.Error(1)
	}
	return nil, args.Error(1)
}

// ProjectRepository is a testify mock of the project store.
type ProjectRepository struct {
	mock.Mock
}

var (
	_ project.Repository      = (*ProjectRepository)(nil)
	_ dashboard.ProjectReader = (*ProjectRepository)(nil)
	_ session.ProjectStore    = (*ProjectRepository)(nil)
)

func (m *ProjectRepository) Create(ctx context.Context, proj *project.Project) error {
	args := m.Called(ctx, proj)
	return args.Error(0)
}

func (m *ProjectRepository) Find(ctx context.Context, id string) (*project.Project, error) {
	args := m.Called(ctx, id)
	if proj, ok := args.Get(0).(*project.Project); ok {
		return proj, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) FindOwned(ctx context.Context, id, ownerID string) (*project.Project, error) {
	args := m.Called(ctx, id, ownerID)
	if proj, ok := args.Get(0).(*project.Project); ok {
		return proj, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) ListActive(ctx context.Context, ownerID string) ([]project.ListItem, error) {
	args := m.Called(ctx, ownerID)
	if list, ok := args.Get(0).([]project.ListItem); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ProjectRepository) TitleExists(ctx context.Context, ownerID, title string) (bool, error) {
	args := m.Called(ctx, ownerID, title)
	return args.Bool(0), args.Error(1)
}

func (m *ProjectRepository) FirstByTitle(ctx context.Context, ownerID, exceptID string) (string, error) {
	args := m.Called(ctx, ownerID, exceptID)
	return args.String(0), args.Error(1)
}

func (m *ProjectRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// GoalRepository is a testify mock of the goal store.
type GoalRepository struct {
	mock.Mock
}

var (
	_ session.GoalStore    = (*GoalRepository)(nil)
	_ dashboard.GoalReader = (*GoalRepository)(nil)
)

func (m *GoalRepository) Exists(ctx context.Context, goalID, projectID string) (bool, error) {
	args := m.Called(ctx, goalID, projectID)
	return args.Bool(0), args.Error(1)
}

func (m *GoalRepository) Find(ctx context.Context, id string) (*goal.Goal, error) {
	args := m.Called(ctx, id)
	if gl, ok := args.Get(0).(*goal.Goal); ok {
		return gl, args.Error(1)
	}
	return nil, args.Error(1)
}

// UserRepository is a testify mock of the preference store.
type UserRepository struct {
	mock.Mock
}

var (
	_ project.PreferenceStore    = (*UserRepository)(nil)
	_ dashboard.PreferenceReader = (*UserRepository)(nil)
)

func (m *UserRepository) DefaultProject(ctx context.Context, userID string) (*string, error) {
	args := m.Called(ctx, userID)
	if id, ok := args.Get(0).(*string); ok {
		return id, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *UserRepository) SetDefaultProject(ctx context.Context, userID string, projectID *string) error {
	args := m.Called(ctx, userID, projectID)
	return args.Error(0)
}
