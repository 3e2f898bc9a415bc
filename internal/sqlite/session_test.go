package sqlite

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lpereira/timecap/internal/domain/session"
	"github.com/lpereira/timecap/internal/repository"
)

func activeSession(id, userID, projectID string, start time.Time) *session.Session {
	return &session.Session{
		ID:           id,
		UserID:       userID,
		ProjectID:    projectID,
		StartTimeUTC: start,
	}
}

func TestSessionRepository_InsertGet(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	insertProject(t, db, "p1", "u1", "Alpha")
	insertGoal(t, db, "g1", "p1", 25)

	repo := NewSessionRepository(db)
	start := time.Date(2026, 2, 19, 9, 0, 0, 0, time.UTC)
	goalID := "g1"
	sess := activeSession("s1", "u1", "p1", start)
	sess.GoalID = &goalID

	require.NoError(t, repo.InsertIfNoneActive(ctx, sess))

	loaded, err := repo.Get(ctx, "s1")
	require.NoError(t, err)
	require.Equal(t, "u1", loaded.UserID)
	require.Equal(t, "p1", loaded.ProjectID)
	require.NotNil(t, loaded.GoalID)
	require.Equal(t, "g1", *loaded.GoalID)
	require.Equal(t, start, loaded.StartTimeUTC)
	require.True(t, loaded.Active())

	_, err = repo.Get(ctx, "missing")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSessionRepository_SingleActivePerUser(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	insertProject(t, db, "p1", "u1", "Alpha")
	insertProject(t, db, "p2", "u1", "Beta")

	repo := NewSessionRepository(db)
	start := time.Now().UTC().Truncate(time.Second)

	require.NoError(t, repo.InsertIfNoneActive(ctx, activeSession("s1", "u1", "p1", start)))

	// A second active session for the same user is rejected, even
	// against another project.
	err := repo.InsertIfNoneActive(ctx, activeSession("s2", "u1", "p2", start))
	require.ErrorIs(t, err, repository.ErrActiveSession)

	// Another user is unaffected.
	insertProject(t, db, "p3", "u2", "Gamma")
	require.NoError(t, repo.InsertIfNoneActive(ctx, activeSession("s3", "u2", "p3", start)))

	// Once the session ends, the user can start again.
	require.NoError(t, repo.SetEndTime(ctx, "s1", start.Add(time.Minute)))
	require.NoError(t, repo.InsertIfNoneActive(ctx, activeSession("s4", "u1", "p2", start.Add(2*time.Minute))))
}

func TestSessionRepository_ConcurrentStarts(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	insertProject(t, db, "p1", "u1", "Alpha")

	repo := NewSessionRepository(db)
	start := time.Now().UTC().Truncate(time.Second)

	const attempts = 8
	errs := make([]error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			errs[n] = repo.InsertIfNoneActive(ctx, activeSession(
				"s"+string(rune('a'+n)), "u1", "p1", start))
		}(i)
	}
	wg.Wait()

	var successes, conflicts int
	for _, err := range errs {
		switch {
		case err == nil:
			successes++
		default:
			require.ErrorIs(t, err, repository.ErrActiveSession)
			conflicts++
		}
	}
	require.Equal(t, 1, successes)
	require.Equal(t, attempts-1, conflicts)

	var activeCount int
	require.NoError(t, db.QueryRow(
		`SELECT COUNT(*) FROM sessions WHERE user_id = 'u1' AND end_time_utc IS NULL AND canceled_at_utc IS NULL`,
	).Scan(&activeCount))
	require.Equal(t, 1, activeCount)
}

func TestSessionRepository_FindActive(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	insertProject(t, db, "p1", "u1", "Alpha")

	repo := NewSessionRepository(db)

	_, err := repo.FindActive(ctx, "u1")
	require.ErrorIs(t, err, repository.ErrNotFound)

	start := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, repo.InsertIfNoneActive(ctx, activeSession("s1", "u1", "p1", start)))

	active, err := repo.FindActive(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, "s1", active.ID)

	require.NoError(t, repo.SetCanceledAt(ctx, "s1", start.Add(time.Minute)))
	_, err = repo.FindActive(ctx, "u1")
	require.ErrorIs(t, err, repository.ErrNotFound)

	loaded, err := repo.Get(ctx, "s1")
	require.NoError(t, err)
	require.True(t, loaded.Canceled())
	require.Nil(t, loaded.EndTimeUTC)
}

func TestSessionRepository_EndMarkersWriteOnce(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	insertProject(t, db, "p1", "u1", "Alpha")

	repo := NewSessionRepository(db)
	start := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, repo.InsertIfNoneActive(ctx, activeSession("s1", "u1", "p1", start)))
	require.NoError(t, repo.SetEndTime(ctx, "s1", start.Add(time.Minute)))

	// A terminal session accepts no further end markers.
	require.ErrorIs(t, repo.SetEndTime(ctx, "s1", start.Add(2*time.Minute)), repository.ErrNotFound)
	require.ErrorIs(t, repo.SetCanceledAt(ctx, "s1", start.Add(2*time.Minute)), repository.ErrNotFound)
}

func TestSessionRepository_Delete(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	insertProject(t, db, "p1", "u1", "Alpha")

	start := time.Now().UTC().Truncate(time.Second)
	seedCompleted(t, db, "s1", "u1", "p1", start, start.Add(time.Minute))

	repo := NewSessionRepository(db)
	require.NoError(t, repo.Delete(ctx, "s1"))
	require.ErrorIs(t, repo.Delete(ctx, "s1"), repository.ErrNotFound)
}

func TestSessionRepository_DeleteByProject(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	insertProject(t, db, "p1", "u1", "Alpha")
	insertProject(t, db, "p2", "u1", "Beta")

	start := time.Now().UTC().Truncate(time.Second)
	seedCompleted(t, db, "s1", "u1", "p1", start, start.Add(time.Minute))
	seedCompleted(t, db, "s2", "u1", "p1", start, start.Add(time.Minute))
	seedCompleted(t, db, "s3", "u1", "p2", start, start.Add(time.Minute))

	repo := NewSessionRepository(db)
	require.NoError(t, repo.DeleteByProject(ctx, "p1"))

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM sessions`).Scan(&count))
	require.Equal(t, 1, count)
}

func TestSessionRepository_SumCompletedSince(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	insertProject(t, db, "p1", "u1", "Alpha")
	insertProject(t, db, "p2", "u1", "Beta")

	since := time.Date(2026, 2, 19, 0, 0, 0, 0, time.UTC)

	// Counted: starts exactly at the boundary.
	seedCompleted(t, db, "s1", "u1", "p1", since, since.Add(10*time.Minute))
	// Counted: later the same day, other project.
	seedCompleted(t, db, "s2", "u1", "p2", since.Add(2*time.Hour), since.Add(2*time.Hour+30*time.Second))
	// Not counted: started before the window.
	seedCompleted(t, db, "s3", "u1", "p1", since.Add(-time.Hour), since.Add(-30*time.Minute))
	// Not counted: canceled.
	seedCanceled(t, db, "s4", "u1", "p1", since.Add(3*time.Hour), since.Add(4*time.Hour))
	// Not counted: belongs to another user.
	insertProject(t, db, "px", "u2", "Other")
	seedCompleted(t, db, "s5", "u2", "px", since, since.Add(time.Hour))

	repo := NewSessionRepository(db)

	total, err := repo.SumCompletedSince(ctx, "u1", nil, since)
	require.NoError(t, err)
	require.Equal(t, int64(630), total)

	p1 := "p1"
	scoped, err := repo.SumCompletedSince(ctx, "u1", &p1, since)
	require.NoError(t, err)
	require.Equal(t, int64(600), scoped)
}

func TestSessionRepository_LastCompleted(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	insertProject(t, db, "p1", "u1", "Alpha")
	insertProject(t, db, "p2", "u1", "Beta")

	base := time.Date(2026, 2, 10, 8, 0, 0, 0, time.UTC)
	for i := 0; i < 12; i++ {
		id := "s" + string(rune('a'+i))
		projectID := "p1"
		if i%2 == 1 {
			projectID = "p2"
		}
		start := base.Add(time.Duration(i) * time.Hour)
		seedCompleted(t, db, id, "u1", projectID, start, start.Add(15*time.Minute))
	}
	seedCanceled(t, db, "sx", "u1", "p1", base.Add(100*time.Hour), base.Add(101*time.Hour))

	repo := NewSessionRepository(db)

	rows, err := repo.LastCompleted(ctx, "u1", nil, 10)
	require.NoError(t, err)
	require.Len(t, rows, 10)
	for i := 1; i < len(rows); i++ {
		require.False(t, rows[i].EndTimeUTC.After(rows[i-1].EndTimeUTC), "rows must be newest first")
	}
	require.Equal(t, int64(900), rows[0].DurationSeconds)

	p2 := "p2"
	scoped, err := repo.LastCompleted(ctx, "u1", &p2, 10)
	require.NoError(t, err)
	require.Len(t, scoped, 6)
	for _, row := range scoped {
		require.Equal(t, "p2", row.ProjectID)
		require.Equal(t, "Beta", row.ProjectTitle)
	}
}

func TestSessionRepository_TotalsByProject(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	insertProject(t, db, "p1", "u1", "Alpha")
	insertProject(t, db, "p2", "u1", "Beta")

	base := time.Date(2026, 2, 10, 8, 0, 0, 0, time.UTC)
	seedCompleted(t, db, "s1", "u1", "p1", base, base.Add(10*time.Minute))
	seedCompleted(t, db, "s2", "u1", "p2", base.Add(time.Hour), base.Add(time.Hour+30*time.Minute))
	seedCompleted(t, db, "s3", "u1", "p2", base.Add(2*time.Hour), base.Add(2*time.Hour+30*time.Minute))
	seedCanceled(t, db, "s4", "u1", "p1", base.Add(3*time.Hour), base.Add(5*time.Hour))

	repo := NewSessionRepository(db)
	totals, err := repo.TotalsByProject(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, totals, 2)
	require.Equal(t, "p2", totals[0].ProjectID)
	require.Equal(t, "Beta", totals[0].ProjectTitle)
	require.Equal(t, int64(3600), totals[0].TotalSeconds)
	require.Equal(t, "p1", totals[1].ProjectID)
	require.Equal(t, int64(600), totals[1].TotalSeconds)
}

func TestSessionRepository_TotalsByDay(t *testing.T) {
	db := NewTestDB(t)
	ctx := context.Background()
	insertProject(t, db, "p1", "u1", "Alpha")

	since := time.Date(2026, 2, 13, 0, 0, 0, 0, time.UTC)
	seedCompleted(t, db, "s1", "u1", "p1", since.Add(9*time.Hour), since.Add(9*time.Hour+10*time.Minute))
	seedCompleted(t, db, "s2", "u1", "p1", since.Add(11*time.Hour), since.Add(11*time.Hour+5*time.Minute))
	seedCompleted(t, db, "s3", "u1", "p1", since.AddDate(0, 0, 3), since.AddDate(0, 0, 3).Add(time.Minute))
	// Outside the window.
	seedCompleted(t, db, "s4", "u1", "p1", since.Add(-time.Hour), since.Add(-30*time.Minute))

	repo := NewSessionRepository(db)
	totals, err := repo.TotalsByDay(ctx, "u1", nil, since)
	require.NoError(t, err)
	require.Len(t, totals, 2)
	require.Equal(t, int64(900), totals["2026-02-13"])
	require.Equal(t, int64(60), totals["2026-02-16"])
}
