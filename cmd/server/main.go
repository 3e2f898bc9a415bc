package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/lpereira/timecap/internal/clock"
	"github.com/lpereira/timecap/internal/config"
	"github.com/lpereira/timecap/internal/domain/dashboard"
	"github.com/lpereira/timecap/internal/domain/project"
	"github.com/lpereira/timecap/internal/domain/session"
	"github.com/lpereira/timecap/internal/sqlite"
	"github.com/lpereira/timecap/internal/transport"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	if err := ensureDBDir(cfg.DB.Path); err != nil {
		logger.Error("failed to prepare database path", "error", err)
		os.Exit(1)
	}

	db, err := sqlite.New(cfg.DB.Path)
	if err != nil {
		logger.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.RunMigrations(); err != nil {
		logger.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	sessionRepo := sqlite.NewSessionRepository(db)
	projectRepo := sqlite.NewProjectRepository(db)
	goalRepo := sqlite.NewGoalRepository(db)
	userRepo := sqlite.NewUserRepository(db)

	clk := clock.System()
	sessionSvc := session.NewService(sessionRepo, projectRepo, goalRepo, clk, logger)
	dashboardSvc := dashboard.NewService(sessionRepo, projectRepo, goalRepo, userRepo, clk, logger)
	projectSvc := project.NewService(projectRepo, userRepo, sessionRepo, clk, logger)

	router := transport.NewRouter(
		sessionSvc,
		dashboardSvc,
		projectSvc,
		transport.AuthMiddleware(sqlite.NewAPIKeyResolver(db)),
		logger,
	)

	addr := cfg.Server.Addr()
	httpServer := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	go func() {
		logger.Info("server listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
		}
	}()

	waitForShutdown(logger, httpServer)
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func waitForShutdown(logger *slog.Logger, server *http.Server) {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Info("shutting down")
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
