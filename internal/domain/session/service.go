package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/lpereira/timecap/internal/clock"
	"github.com/lpereira/timecap/internal/repository"
)

// Service owns the session state machine: a user goes from no active
// session to one active session, and back via stop or cancel. Terminal
// sessions may be deleted; active ones may not.
type Service struct {
	sessions Repository
	projects ProjectStore
	goals    GoalStore
	clock    clock.Clock
	logger   *slog.Logger
}

// NewService creates a new session service.
func NewService(
	sessions Repository,
	projects ProjectStore,
	goals GoalStore,
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
		clock:    clk,
		logger:   logger,
	}
}

// StartRequest describes a session start request.
type StartRequest struct {
	ProjectID string
	GoalID    *string
}

// Start begins a new session for the user. The project must exist and
// be owned by the user, the goal (if given) must belong to the project,
// and the user must not already have a running session.
func (s *Service) Start(ctx context.Context, userID string, req StartRequest) (*StartResult, error) {
	if strings.TrimSpace(req.ProjectID) == "" {
		return nil, ErrInvalidProject
	}

	proj, err := s.projects.Find(ctx, req.ProjectID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProjectNotFound
		}
		return nil, fmt.Errorf("loading project: %w", err)
	}
	if proj.OwnerID != userID {
		return nil, ErrProjectForbidden
	}

	goalID := normalizeGoalID(req.GoalID)
	if goalID != nil {
		ok, err := s.goals.Exists(ctx, *goalID, req.ProjectID)
		if err != nil {
			return nil, fmt.Errorf("checking goal: %w", err)
		}
		if !ok {
			return nil, ErrGoalNotInProject
		}
	}

	// Fast-path check only; the storage uniqueness constraint is the
	// final arbiter under concurrent starts.
	if _, err := s.sessions.FindActive(ctx, userID); err == nil {
		return nil, ErrSessionActive
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("checking active session: %w", err)
	}

	sess := &Session{
		ID:           uuid.NewString(),
		UserID:       userID,
		ProjectID:    req.ProjectID,
		GoalID:       goalID,
		StartTimeUTC: s.clock.Now(),
	}

	if err := s.sessions.InsertIfNoneActive(ctx, sess); err != nil {
		if errors.Is(err, repository.ErrActiveSession) {
			return nil, ErrSessionActive
		}
		return nil, fmt.Errorf("creating session: %w", err)
	}

	s.logger.Info("session started",
		"user_id", userID, "session_id", sess.ID, "project_id", sess.ProjectID)

	return &StartResult{
		SessionID:    sess.ID,
		StartTimeUTC: sess.StartTimeUTC,
	}, nil
}

// Stop ends the user's active session and reports its duration.
func (s *Service) Stop(ctx context.Context, userID string) (*StopResult, error) {
	active, err := s.sessions.FindActive(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoActiveSession
		}
		return nil, fmt.Errorf("loading active session: %w", err)
	}

	end := s.clock.Now()
	if err := s.sessions.SetEndTime(ctx, active.ID, end); err != nil {
		return nil, fmt.Errorf("stopping session: %w", err)
	}

	duration := DurationSeconds(active.StartTimeUTC, end)
	s.logger.Info("session stopped",
		"user_id", userID, "session_id", active.ID, "duration_seconds", duration)

	return &StopResult{
		SessionID:       active.ID,
		StartTimeUTC:    active.StartTimeUTC,
		EndTimeUTC:      end,
		DurationSeconds: duration,
	}, nil
}

// Cancel discards the user's active session. A canceled session never
// contributes to duration totals.
func (s *Service) Cancel(ctx context.Context, userID string) (*CancelResult, error) {
	active, err := s.sessions.FindActive(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoActiveSession
		}
		return nil, fmt.Errorf("loading active session: %w", err)
	}

	at := s.clock.Now()
	if err := s.sessions.SetCanceledAt(ctx, active.ID, at); err != nil {
		return nil, fmt.Errorf("canceling session: %w", err)
	}

	s.logger.Info("session canceled", "user_id", userID, "session_id", active.ID)

	return &CancelResult{
		SessionID:     active.ID,
		StartTimeUTC:  active.StartTimeUTC,
		CanceledAtUTC: at,
	}, nil
}

// Delete permanently removes a terminal session. A running session is
// never deleted, whoever asks; a repeated delete reports not found.
func (s *Service) Delete(ctx context.Context, userID, sessionID string) error {
	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrSessionNotFound
		}
		return fmt.Errorf("loading session: %w", err)
	}

	if sess.Active() {
		return ErrDeleteActive
	}
	if sess.UserID != userID {
		return ErrSessionForbidden
	}

	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrSessionNotFound
		}
		return fmt.Errorf("deleting session: %w", err)
	}

	s.logger.Info("session deleted", "user_id", userID, "session_id", sessionID)
	return nil
}

func normalizeGoalID(goalID *string) *string {
	if goalID == nil || strings.TrimSpace(*goalID) == "" {
		return nil
	}
	return goalID
}
