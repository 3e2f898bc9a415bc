package project

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

// Service handles project management: creation, the user's default
// project, and deletion. Sessions and the dashboard only read projects.
type Service struct {
	projects Repository
	prefs    PreferenceStore
	sessions SessionPurger
	clock    clock.Clock
	logger   *slog.Logger
}

// NewService creates a new project service.
func NewService(
	projects Repository,
	prefs PreferenceStore,
	sessions SessionPurger,
	clk clock.Clock,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{
		projects: projects,
		prefs:    prefs,
		sessions: sessions,
		clock:    clk,
		logger:   logger,
	}
}

// Create adds a project for the user. The user's first project becomes
// their default automatically.
func (s *Service) Create(ctx context.Context, userID, title string) (*Project, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrInvalidTitle
	}

	exists, err := s.projects.TitleExists(ctx, userID, title)
	if err != nil {
		return nil, fmt.Errorf("checking title: %w", err)
	}
	if exists {
		return nil, ErrDuplicateTitle
	}

	proj := &Project{
		ID:           uuid.NewString(),
		OwnerID:      userID,
		Title:        title,
		Status:       StatusActive,
		CreatedAtUTC: s.clock.Now(),
	}

	if err := s.projects.Create(ctx, proj); err != nil {
		return nil, fmt.Errorf("creating project: %w", err)
	}

	current, err := s.prefs.DefaultProject(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("loading default project: %w", err)
	}
	if current == nil {
		if err := s.prefs.SetDefaultProject(ctx, userID, &proj.ID); err != nil {
			return nil, fmt.Errorf("setting default project: %w", err)
		}
	}

	s.logger.Info("project created", "user_id", userID, "project_id", proj.ID)
	return proj, nil
}

// SetDefault records the user's default project for dashboard scoping.
func (s *Service) SetDefault(ctx context.Context, userID, projectID string) error {
	if strings.TrimSpace(projectID) == "" {
		return ErrInvalidProject
	}

	if _, err := s.projects.FindOwned(ctx, projectID, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrInvalidProject
		}
		return fmt.Errorf("loading project: %w", err)
	}

	if err := s.prefs.SetDefaultProject(ctx, userID, &projectID); err != nil {
		return fmt.Errorf("setting default project: %w", err)
	}
	return nil
}

// Delete removes a project together with its sessions. If the project
// was the user's default, the alphabetically-next project takes over
// (or the default is cleared when none remain).
func (s *Service) Delete(ctx context.Context, userID, projectID string) error {
	if strings.TrimSpace(projectID) == "" {
		return ErrInvalidProject
	}

	if _, err := s.projects.FindOwned(ctx, projectID, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrInvalidProject
		}
		return fmt.Errorf("loading project: %w", err)
	}

	if err := s.sessions.DeleteByProject(ctx, projectID); err != nil {
		return fmt.Errorf("purging sessions: %w", err)
	}

	current, err := s.prefs.DefaultProject(ctx, userID)
	if err != nil {
		return fmt.Errorf("loading default project: %w", err)
	}
	if current != nil && *current == projectID {
		next, err := s.projects.FirstByTitle(ctx, userID, projectID)
		switch {
		case err == nil:
			if err := s.prefs.SetDefaultProject(ctx, userID, &next); err != nil {
				return fmt.Errorf("reassigning default project: %w", err)
			}
		case errors.Is(err, repository.ErrNotFound):
			if err := s.prefs.SetDefaultProject(ctx, userID, nil); err != nil {
				return fmt.Errorf("clearing default project: %w", err)
			}
		default:
			return fmt.Errorf("finding next default project: %w", err)
		}
	}

	if err := s.projects.Delete(ctx, projectID); err != nil {
		return fmt.Errorf("deleting project: %w", err)
	}

	s.logger.Info("project deleted", "user_id", userID, "project_id", projectID)
	return nil
}
