package session

import "errors"

var (
	// ErrInvalidProject indicates a missing or malformed project id.
	ErrInvalidProject = errors.New("invalid project id")
	// ErrGoalNotInProject indicates the goal does not belong to the project.
	ErrGoalNotInProject = errors.New("goal does not belong to project")
	// ErrProjectNotFound indicates the project doesn't exist.
	ErrProjectNotFound = errors.New("project not found")
	// ErrProjectForbidden indicates the project is owned by another user.
	ErrProjectForbidden = errors.New("project belongs to another user")
	// ErrSessionActive indicates the user already has a running session.
	ErrSessionActive = errors.New("an active session already exists")
	// ErrNoActiveSession indicates no session is running for the user.
	ErrNoActiveSession = errors.New("no active session")
	// ErrSessionNotFound indicates the session doesn't exist.
	ErrSessionNotFound = errors.New("session not found")
	// ErrSessionForbidden indicates the session is owned by another user.
	ErrSessionForbidden = errors.New("session belongs to another user")
	// ErrDeleteActive indicates an attempt to delete a running session.
	ErrDeleteActive = errors.New("cannot delete an active session")
)
