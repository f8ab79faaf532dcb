// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/urfave/cli/v3"

	"codeberg.org/teamhub/qna/internal/config"
	"codeberg.org/teamhub/qna/internal/database"
	"codeberg.org/teamhub/qna/internal/handlers"
	"codeberg.org/teamhub/qna/internal/i18n"
	"codeberg.org/teamhub/qna/internal/repository"
	authsvc "codeberg.org/teamhub/qna/internal/services/auth"
	"codeberg.org/teamhub/qna/internal/services/email"
	"codeberg.org/teamhub/qna/internal/services/forum"
	"codeberg.org/teamhub/qna/internal/services/notify"
	"codeberg.org/teamhub/qna/internal/services/profile"
	"codeberg.org/teamhub/qna/internal/services/session"
)

// Run starts the server with the given CLI command.
func Run(ctx context.Context, cmd *cli.Command) error {
	cfg := config.NewFromCLI(cmd)
	setupLogger(cfg.Log.Level, cfg.Log.Format)

	slog.Info("starting server",
		"host", cfg.Server.Host,
		"port", cfg.Server.Port,
		"base_url", cfg.Server.BaseURL,
	)

	// Database (runs migrations)
	db, err := database.Open(cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("failed to close database", "error", closeErr)
		}
	}()

	// i18n
	if initErr := i18n.Init(); initErr != nil {
		return fmt.Errorf("failed to init i18n: %w", initErr)
	}

	// Services
	repo := repository.New(db)

	var mailer email.Mailer
	if cfg.SMTP.Host != "" {
		svc, mailErr := email.NewService(&cfg.SMTP)
		if mailErr != nil {
			return fmt.Errorf("failed to create email service: %w", mailErr)
		}
		mailer = svc
	} else {
		slog.Warn("SMTP not configured, OTP codes will be logged")
	}

	sessions, err := session.NewManager(&cfg.Session, cfg.CookieSecure())
	if err != nil {
		return fmt.Errorf("failed to create session manager: %w", err)
	}

	authService := authsvc.NewService(repo, mailer)
	dispatcher := notify.NewDispatcher(repo)
	forumService := forum.NewService(repo, dispatcher)
	profileService := profile.NewService(repo)

	// Echo
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	setupMiddleware(e, cfg, sessions, authService)

	h := handlers.New(authService, sessions, forumService, dispatcher, profileService)
	setupRoutes(e, h)

	return startWithGracefulShutdown(ctx, e, cfg)
}

// RecountVotes reconciles the denormalized answer vote counters against the
// vote rows. Exposed as the `recount-votes` subcommand.
func RecountVotes(ctx context.Context, cmd *cli.Command) error {
	cfg := config.NewFromCLI(cmd)
	setupLogger(cfg.Log.Level, cfg.Log.Format)

	db, err := database.Open(cfg.Database.DSN)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = db.Close() }()

	repo := repository.New(db)
	changed, err := repo.RecountAnswerVotes(ctx)
	if err != nil {
		return fmt.Errorf("failed to recount votes: %w", err)
	}

	slog.Info("vote counters reconciled", "answers_changed", changed)
	return nil
}

func startWithGracefulShutdown(ctx context.Context, e *echo.Echo, cfg *config.Config) error {
	errChan := make(chan error, 1)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	go func() {
		slog.Info("Server running", "url", cfg.Server.BaseURL)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-quit:
		slog.Info("shutting down server")
	case <-ctx.Done():
		slog.Info("shutting down server")
	case err := <-errChan:
		slog.Error("server error", "error", err)
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		slog.Error("failed to shutdown server", "error", err)
	}

	slog.Info("server stopped")
	return nil
}
