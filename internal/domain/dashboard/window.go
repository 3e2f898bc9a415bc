package dashboard

import "time"

// DayFormat is the wire form of a UTC calendar date.
const DayFormat = "2006-01-02"

// TodayStart returns UTC midnight of now's date.
func TodayStart(now time.Time) time.Time {
	now = now.UTC()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

// WeekStart returns UTC midnight of the most recent Monday (Monday
// itself on Mondays).
func WeekStart(now time.Time) time.Time {
	today := TodayStart(now)
	// Go counts Sunday=0; shift so Monday=0..Sunday=6.
	back := (int(today.Weekday()) + 6) % 7
	return today.AddDate(0, 0, -back)
}

// Last7Start returns UTC midnight six days ago, the open edge of the
// inclusive 7-day window ending today.
func Last7Start(now time.Time) time.Time {
	return TodayStart(now).AddDate(0, 0, -6)
}
