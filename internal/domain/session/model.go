package session

import "time"

// Session represents one timed interval of work. Start is set at
// creation; exactly one of End or CanceledAt may ever be set.
type Session struct {
	ID            string     `json:"id"`
	UserID        string     `json:"user_id"`
	ProjectID     string     `json:"project_id"`
	GoalID        *string    `json:"goal_id,omitempty"`
	StartTimeUTC  time.Time  `json:"start_time_utc"`
	EndTimeUTC    *time.Time `json:"end_time_utc,omitempty"`
	CanceledAtUTC *time.Time `json:"canceled_at_utc,omitempty"`
}

// Active reports whether the session is still running.
func (s *Session) Active() bool {
	return s.EndTimeUTC == nil && s.CanceledAtUTC == nil
}

// Completed reports whether the session was stopped normally.
func (s *Session) Completed() bool {
	return s.EndTimeUTC != nil
}

// Canceled reports whether the session was discarded.
func (s *Session) Canceled() bool {
	return s.CanceledAtUTC != nil
}

// DurationSeconds returns the whole seconds between start and end,
// clamped at zero so a backward clock step never yields a negative
// duration.
func DurationSeconds(start, end time.Time) int64 {
	secs := int64(end.Sub(start) / time.Second)
	if secs < 0 {
		return 0
	}
	return secs
}

// StartResult holds the response for a started session.
type StartResult struct {
	SessionID    string    `json:"sessionId"`
	StartTimeUTC time.Time `json:"startTimeUtc"`
}

// StopResult holds the response for a stopped session.
type StopResult struct {
	SessionID       string    `json:"sessionId"`
	StartTimeUTC    time.Time `json:"startTimeUtc"`
	EndTimeUTC      time.Time `json:"endTimeUtc"`
	DurationSeconds int64     `json:"durationSeconds"`
}

// CancelResult holds the response for a canceled session.
type CancelResult struct {
	SessionID     string    `json:"sessionId"`
	StartTimeUTC  time.Time `json:"startTimeUtc"`
	CanceledAtUTC time.Time `json:"canceledAtUtc"`
}
