package dashboard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/lpereira/timecap/internal/clock"
	"github.com/lpereira/timecap/internal/domain/project"
	"github.com/lpereira/timecap/internal/domain/session"
	"github.com/lpereira/timecap/internal/repository"
)

// Service computes the dashboard view: window boundaries, the effective
// project, and the per-window aggregations.
type Service struct {
	sessions SessionReader
	projects ProjectReader
	goals    GoalReader
	prefs    PreferenceReader
	clock    clock.Clock
	logger   *slog.Logger
}

// NewService creates a new dashboard service.
func NewService(
	sessions SessionReader,
	projects ProjectReader,
	goals GoalReader,
	prefs PreferenceReader,
	clk clock.Clock,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{
		sessions: sessions,
		projects: projects,
		goals:    goals,
		prefs:    prefs,
		clock:    clk,
		logger:   logger,
	}
}

// Dashboard assembles the full dashboard state for a user. When
// selectedProjectID is non-nil it scopes the today/week totals, the
// recent history and the daily series; totalsByProject is always
// unscoped. Reads are best-effort snapshots, not a transaction.
func (s *Service) Dashboard(ctx context.Context, userID string, selectedProjectID *string) (*State, error) {
	now := s.clock.Now()
	todayStart := TodayStart(now)
	weekStart := WeekStart(now)
	last7Start := Last7Start(now)

	defaultID, err := s.prefs.DefaultProject(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("loading default project: %w", err)
	}

	projects, err := s.projects.ListActive(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}

	effective := effectiveProject(selectedProjectID, defaultID, projects)

	var (
		active     *session.Session
		todayTotal int64
		weekTotal  int64
		last       []LastSession
		byProject  []ProjectTotal
		byDay      map[string]int64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		sess, err := s.sessions.FindActive(gctx, userID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil
			}
			return fmt.Errorf("loading active session: %w", err)
		}
		active = sess
		return nil
	})
	g.Go(func() error {
		total, err := s.sessions.SumCompletedSince(gctx, userID, effective, todayStart)
		if err != nil {
			return fmt.Errorf("summing today: %w", err)
		}
		todayTotal = total
		return nil
	})
	g.Go(func() error {
		total, err := s.sessions.SumCompletedSince(gctx, userID, effective, weekStart)
		if err != nil {
			return fmt.Errorf("summing week: %w", err)
		}
		weekTotal = total
		return nil
	})
	g.Go(func() error {
		rows, err := s.sessions.LastCompleted(gctx, userID, effective, lastSessionLimit)
		if err != nil {
			return fmt.Errorf("loading last sessions: %w", err)
		}
		last = rows
		return nil
	})
	g.Go(func() error {
		totals, err := s.sessions.TotalsByProject(gctx, userID)
		if err != nil {
			return fmt.Errorf("loading project totals: %w", err)
		}
		byProject = totals
		return nil
	})
	g.Go(func() error {
		totals, err := s.sessions.TotalsByDay(gctx, userID, effective, last7Start)
		if err != nil {
			return fmt.Errorf("loading daily totals: %w", err)
		}
		byDay = totals
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	state := &State{
		DefaultProjectID:  defaultID,
		Projects:          projects,
		TodayTotalSeconds: todayTotal,
		WeekTotalSeconds:  weekTotal,
		LastSessions:      last,
		TotalsByProject:   byProject,
		Last7Days:         fillDays(last7Start, byDay),
	}

	if defaultID != nil {
		title, err := s.projectTitle(ctx, *defaultID)
		if err != nil {
			return nil, err
		}
		state.DefaultProjectTitle = title
	}

	if active != nil {
		state.ActiveSession = &ActiveSession{
			SessionID:    active.ID,
			ProjectID:    active.ProjectID,
			GoalID:       active.GoalID,
			StartTimeUTC: active.StartTimeUTC,
		}
		target, err := s.goalTarget(ctx, active.GoalID)
		if err != nil {
			return nil, err
		}
		state.ActiveGoalTargetSeconds = target
	}

	return state, nil
}

const lastSessionLimit = 10

// effectiveProject resolves the project id that scopes the totals:
// explicit selection, then the stored default, then the user's
// alphabetically-first active project, else none.
func effectiveProject(selected, defaultID *string, projects []project.ListItem) *string {
	if selected != nil && *selected != "" {
		return selected
	}
	if defaultID != nil && *defaultID != "" {
		return defaultID
	}
	if len(projects) > 0 {
		// ListActive orders by title.
		return &projects[0].ID
	}
	return nil
}

// fillDays expands the sparse per-day sums into exactly seven
// consecutive entries, zero where no sessions fell.
func fillDays(start time.Time, byDay map[string]int64) []DayTotal {
	days := make([]DayTotal, 0, 7)
	for i := 0; i < 7; i++ {
		key := start.AddDate(0, 0, i).Format(DayFormat)
		days = append(days, DayTotal{Day: key, TotalSeconds: byDay[key]})
	}
	return days
}

func (s *Service) projectTitle(ctx context.Context, projectID string) (*string, error) {
	proj, err := s.projects.Find(ctx, projectID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("loading default project title: %w", err)
	}
	return &proj.Title, nil
}

// goalTarget resolves the active goal's target seconds. A missing goal
// or a zero target both read as absent.
func (s *Service) goalTarget(ctx context.Context, goalID *string) (*int64, error) {
	if goalID == nil || *goalID == "" {
		return nil, nil
	}
	gl, err := s.goals.Find(ctx, *goalID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("loading goal: %w", err)
	}
	return gl.TargetSeconds(), nil
}
