package dashboard

import (
	"time"

	"github.com/lpereira/timecap/internal/domain/project"
)

// State is the composite dashboard view for one user.
type State struct {
	DefaultProjectID        *string            `json:"defaultProjectId"`
	DefaultProjectTitle     *string            `json:"defaultProjectTitle"`
	Projects                []project.ListItem `json:"projects"`
	ActiveSession           *ActiveSession     `json:"activeSession"`
	TodayTotalSeconds       int64              `json:"todayTotalSeconds"`
	WeekTotalSeconds        int64              `json:"weekTotalSeconds"`
	ActiveGoalTargetSeconds *int64             `json:"activeGoalTargetSeconds"`
	LastSessions            []LastSession      `json:"lastSessions"`
	TotalsByProject         []ProjectTotal     `json:"totalsByProject"`
	Last7Days               []DayTotal         `json:"last7Days"`
}

// ActiveSession describes the user's currently running session.
type ActiveSession struct {
	SessionID    string    `json:"sessionId"`
	ProjectID    string    `json:"projectId"`
	GoalID       *string   `json:"goalId,omitempty"`
	StartTimeUTC time.Time `json:"startTimeUtc"`
}

// LastSession is one row of the recent-history list.
type LastSession struct {
	SessionID       string    `json:"sessionId"`
	ProjectID       string    `json:"projectId"`
	ProjectTitle    string    `json:"projectTitle"`
	GoalID          *string   `json:"goalId,omitempty"`
	StartTimeUTC    time.Time `json:"startTimeUtc"`
	EndTimeUTC      time.Time `json:"endTimeUtc"`
	DurationSeconds int64     `json:"durationSeconds"`
}

// ProjectTotal is the all-time completed total for one project.
type ProjectTotal struct {
	ProjectID    string `json:"projectId"`
	ProjectTitle string `json:"projectTitle"`
	TotalSeconds int64  `json:"totalSeconds"`
}

// DayTotal is one bar of the rolling 7-day series. Day is a UTC
// calendar date in YYYY-MM-DD form.
type DayTotal struct {
	Day          string `json:"day"`
	TotalSeconds int64  `json:"totalSeconds"`
}
