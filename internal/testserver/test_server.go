package testserver

import (
	"context"
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lpereira/timecap/internal/clock"
	"github.com/lpereira/timecap/internal/domain/dashboard"
	"github.com/lpereira/timecap/internal/domain/project"
	"github.com/lpereira/timecap/internal/domain/session"
	"github.com/lpereira/timecap/internal/sqlite"
	"github.com/lpereira/timecap/internal/transport"
)

// TestServer runs the full stack against an in-memory database with an
// injectable clock.
type TestServer struct {
	Server *httptest.Server
	DB     *sqlite.DB
	Token  string
	UserID string
	Clock  clock.Clock

	resolver *sqlite.APIKeyResolver
}

// New builds a server for one test. A nil clk uses the system clock.
func New(t *testing.T, token, userID string, clk clock.Clock) *TestServer {
	t.Helper()

	if clk == nil {
		clk = clock.System()
	}

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := sqlite.New(dsn)
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	require.NoError(t, db.RunMigrations())

	sessionRepo := sqlite.NewSessionRepository(db)
	projectRepo := sqlite.NewProjectRepository(db)
	goalRepo := sqlite.NewGoalRepository(db)
	userRepo := sqlite.NewUserRepository(db)

	sessionSvc := session.NewService(sessionRepo, projectRepo, goalRepo, clk, nil)
	dashboardSvc := dashboard.NewService(sessionRepo, projectRepo, goalRepo, userRepo, clk, nil)
	projectSvc := project.NewService(projectRepo, userRepo, sessionRepo, clk, nil)

	resolver := sqlite.NewAPIKeyResolver(db)
	server := httptest.NewServer(transport.NewRouter(
		sessionSvc,
		dashboardSvc,
		projectSvc,
		transport.AuthMiddleware(resolver),
		nil,
	))

	ts := &TestServer{
		Server:   server,
		DB:       db,
		Token:    token,
		UserID:   userID,
		Clock:    clk,
		resolver: resolver,
	}

	require.NoError(t, ts.AddAPIKey(token, userID))

	t.Cleanup(func() {
		server.Close()
		_ = db.Close()
	})

	return ts
}

// AddAPIKey registers a bearer token for a user.
func (ts *TestServer) AddAPIKey(token, userID string) error {
	return ts.resolver.AddKey(context.Background(), token, userID)
}
