package dashboard_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lpereira/timecap/internal/domain/dashboard"
)

func TestTodayStart(t *testing.T) {
	now := time.Date(2026, 2, 19, 15, 42, 7, 123, time.UTC)
	require.Equal(t, time.Date(2026, 2, 19, 0, 0, 0, 0, time.UTC), dashboard.TodayStart(now))
}

func TestWeekStart(t *testing.T) {
	monday := time.Date(2026, 2, 16, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		now  time.Time
	}{
		{"monday midnight", monday},
		{"thursday", time.Date(2026, 2, 19, 15, 0, 0, 0, time.UTC)},
		{"sunday", time.Date(2026, 2, 22, 23, 59, 59, 0, time.UTC)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, monday, dashboard.WeekStart(tc.now))
		})
	}
}

func TestWeekStart_NextMondayRollsOver(t *testing.T) {
	nextMonday := time.Date(2026, 2, 23, 0, 0, 0, 0, time.UTC)
	require.Equal(t, nextMonday, dashboard.WeekStart(nextMonday.Add(time.Second)))
}

func TestLast7Start(t *testing.T) {
	now := time.Date(2026, 2, 19, 15, 0, 0, 0, time.UTC)
	require.Equal(t, time.Date(2026, 2, 13, 0, 0, 0, 0, time.UTC), dashboard.Last7Start(now))
}
