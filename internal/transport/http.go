package transport

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lpereira/timecap/internal/domain/dashboard"
	"github.com/lpereira/timecap/internal/domain/project"
	"github.com/lpereira/timecap/internal/domain/session"
)

// SessionService is the lifecycle surface the router dispatches to.
type SessionService interface {
	Start(ctx context.Context, userID string, req session.StartRequest) (*session.StartResult, error)
	Stop(ctx context.Context, userID string) (*session.StopResult, error)
	Cancel(ctx context.Context, userID string) (*session.CancelResult, error)
	Delete(ctx context.Context, userID, sessionID string) error
}

// DashboardService answers the composite dashboard query.
type DashboardService interface {
	Dashboard(ctx context.Context, userID string, selectedProjectID *string) (*dashboard.State, error)
}

// ProjectService manages projects and the default-project preference.
type ProjectService interface {
	Create(ctx context.Context, userID, title string) (*project.Project, error)
	SetDefault(ctx context.Context, userID, projectID string) error
	Delete(ctx context.Context, userID, projectID string) error
}

// Server wires HTTP handlers.
type Server struct {
	sessions  SessionService
	dashboard DashboardService
	projects  ProjectService
	logger    *slog.Logger
}

// NewRouter creates the HTTP router with middleware.
func NewRouter(
	sessions SessionService,
	dash DashboardService,
	projects ProjectService,
	authMiddleware func(http.Handler) http.Handler,
	logger *slog.Logger,
) *chi.Mux {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	srv := &Server{
		sessions:  sessions,
		dashboard: dash,
		projects:  projects,
		logger:    logger,
	}

	r := chi.NewRouter()
	r.Get("/health", srv.handleHealth)

	r.Group(func(r chi.Router) {
		if authMiddleware != nil {
			r.Use(authMiddleware)
		}
		r.Post("/sessions/start", srv.handleStart)
		r.Post("/sessions/stop", srv.handleStop)
		r.Post("/sessions/cancel", srv.handleCancel)
		r.Post("/sessions/delete", srv.handleDeleteSession)
		r.Get("/dashboard-state", srv.handleDashboardState)
		r.Post("/projects/create", srv.handleCreateProject)
		r.Post("/projects/set-default", srv.handleSetDefaultProject)
		r.Post("/projects/delete", srv.handleDeleteProject)
	})

	return r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

type startSessionRequest struct {
	ProjectID string  `json:"projectId"`
	GoalID    *string `json:"goalId,omitempty"`
}

func (s *Server) handleStart(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserFromContext(r.Context())
	if !ok {
		http.Error(w, "missing user", http.StatusUnauthorized)
		return
	}

	var req startSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := s.sessions.Start(r.Context(), userID, session.StartRequest{
		ProjectID: req.ProjectID,
		GoalID:    req.GoalID,
	})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleStop(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserFromContext(r.Context())
	if !ok {
		http.Error(w, "missing user", http.StatusUnauthorized)
		return
	}

	result, err := s.sessions.Stop(r.Context(), userID)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleCancel(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserFromContext(r.Context())
	if !ok {
		http.Error(w, "missing user", http.StatusUnauthorized)
		return
	}

	result, err := s.sessions.Cancel(r.Context(), userID)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, result)
}

type deleteSessionRequest struct {
	SessionID string `json:"sessionId"`
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserFromContext(r.Context())
	if !ok {
		http.Error(w, "missing user", http.StatusUnauthorized)
		return
	}

	var req deleteSessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.sessions.Delete(r.Context(), userID, req.SessionID); err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleDashboardState(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserFromContext(r.Context())
	if !ok {
		http.Error(w, "missing user", http.StatusUnauthorized)
		return
	}

	var selected *string
	if v := r.URL.Query().Get("projectId"); v != "" {
		selected = &v
	}

	state, err := s.dashboard.Dashboard(r.Context(), userID, selected)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, state)
}

type createProjectRequest struct {
	Title string `json:"title"`
}

type createProjectResponse struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserFromContext(r.Context())
	if !ok {
		http.Error(w, "missing user", http.StatusUnauthorized)
		return
	}

	var req createProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	proj, err := s.projects.Create(r.Context(), userID, req.Title)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, createProjectResponse{ID: proj.ID, Title: proj.Title})
}

type projectIDRequest struct {
	ProjectID string `json:"projectId"`
}

func (s *Server) handleSetDefaultProject(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserFromContext(r.Context())
	if !ok {
		http.Error(w, "missing user", http.StatusUnauthorized)
		return
	}

	var req projectIDRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.projects.SetDefault(r.Context(), userID, req.ProjectID); err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (s *Server) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserFromContext(r.Context())
	if !ok {
		http.Error(w, "missing user", http.StatusUnauthorized)
		return
	}

	var req projectIDRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.projects.Delete(r.Context(), userID, req.ProjectID); err != nil {
		s.writeDomainError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusOK)
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, errorResponse{Error: message})
}

func (s *Server) writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "error", err)
		s.writeError(w, status, "internal error")
		return
	}
	s.writeError(w, status, err.Error())
}
