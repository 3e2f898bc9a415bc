package sqlite

import "strings"

// The driver reports constraint violations as plain text; these
// classifiers are the only place that text is interpreted.

func isForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// isActiveSessionViolation matches the partial unique index
// idx_sessions_one_active rejecting a second active session for a user.
// Other unique indexes (project titles) must not match.
func isActiveSessionViolation(err error) bool {
	return isUniqueViolation(err) && strings.Contains(err.Error(), "sessions.user_id")
}
