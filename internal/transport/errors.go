package transport

import (
	"errors"
	"net/http"

	"github.com/lpereira/timecap/internal/domain/project"
	"github.com/lpereira/timecap/internal/domain/session"
)

// StatusFor maps domain errors to HTTP status codes. The four expected
// kinds map to 400/403/404/409; anything unrecognized is an internal
// error and must not be downgraded.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, session.ErrInvalidProject),
		errors.Is(err, session.ErrGoalNotInProject),
		errors.Is(err, project.ErrInvalidTitle),
		errors.Is(err, project.ErrDuplicateTitle),
		errors.Is(err, project.ErrInvalidProject):
		return http.StatusBadRequest
	case errors.Is(err, session.ErrProjectForbidden),
		errors.Is(err, session.ErrSessionForbidden):
		return http.StatusForbidden
	case errors.Is(err, session.ErrProjectNotFound),
		errors.Is(err, session.ErrNoActiveSession),
		errors.Is(err, session.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, session.ErrSessionActive),
		errors.Is(err, session.ErrDeleteActive):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
