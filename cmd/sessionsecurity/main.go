package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/doma17/SessionSecurity/cmd/sessionsecurity/cli"
	"github.com/doma17/SessionSecurity/internal/app"
	"github.com/doma17/SessionSecurity/internal/auth"
	"github.com/doma17/SessionSecurity/internal/authz"
	"github.com/doma17/SessionSecurity/internal/join"
	"github.com/doma17/SessionSecurity/internal/observability"
	"github.com/doma17/SessionSecurity/internal/platform/cache"
	"github.com/doma17/SessionSecurity/internal/platform/db"
	"github.com/doma17/SessionSecurity/internal/shared"
	"github.com/doma17/SessionSecurity/internal/users"
	"github.com/doma17/SessionSecurity/internal/view"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	userRepo := users.NewPGRepository(pool)

	if len(os.Args) > 1 && os.Args[1] == "adduser" {
		if err := runAddUser(ctx, userRepo, cfg, os.Args[2:]); err != nil {
			logger.Error("adduser", slog.Any("error", err))
			os.Exit(1)
		}
		return
	}

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	// An invalid hierarchy is a configuration error; refuse to start
	// rather than discover it on a request.
	hierarchy, err := authz.ParseHierarchy(cfg.RoleHierarchy)
	if err != nil {
		logger.Error("parse role hierarchy", slog.Any("error", err))
		os.Exit(1)
	}

	sessionManager := shared.NewSessionManager(redisClient, "security_session", cfg.SessionSecret, cfg.SessionTTL, cfg.IsProduction())
	csrfManager := shared.NewCSRFManager(cfg.CSRFSecret)

	templates, err := view.NewEngine()
	if err != nil {
		logger.Error("parse templates", slog.Any("error", err))
		os.Exit(1)
	}

	sessionRepo := auth.NewSessionRepository(pool)
	authService := auth.NewService(userRepo, hierarchy, sessionRepo)
	authHandler := auth.NewHandler(logger, authService, templates, sessionManager, csrfManager)

	auditLogger := shared.NewAuditLogger(pool)
	joinService := join.NewService(userRepo, auditLogger, cfg.JoinDefaultRole, cfg.BcryptCost)
	joinHandler := join.NewHandler(logger, joinService, templates, csrfManager)

	table := authz.NewTable(
		authz.Rule{Pattern: "/", Require: authz.Public()},
		authz.Rule{Pattern: "/login", Require: authz.Public()},
		authz.Rule{Pattern: "/loginProc", Require: authz.Public()},
		authz.Rule{Pattern: "/join", Require: authz.Public()},
		authz.Rule{Pattern: "/joinProc", Require: authz.Public()},
		authz.Rule{Pattern: "/healthz", Require: authz.Public()},
		authz.Rule{Pattern: "/metrics", Require: authz.Public()},
		authz.Rule{Pattern: "/static/**", Require: authz.Public()},
		authz.Rule{Pattern: "/admin", Require: authz.AnyRole("ROLE_ADMIN")},
		authz.Rule{Pattern: "/my/**", Require: authz.AnyRole("ROLE_ADMIN", "ROLE_USER")},
	)

	metrics := observability.NewMetrics()

	router := app.NewRouter(app.RouterParams{
		Logger:         logger,
		Config:         cfg,
		Templates:      templates,
		SessionManager: sessionManager,
		CSRFManager:    csrfManager,
		AuthHandler:    authHandler,
		JoinHandler:    joinHandler,
		Resolver:       auth.Resolver{Service: authService, Logger: logger},
		Guard:          authz.Guard{Table: table, Logger: logger},
		Metrics:        metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}

func runAddUser(ctx context.Context, repo users.Repository, cfg *app.Config, args []string) error {
	fs := flag.NewFlagSet("adduser", flag.ContinueOnError)
	username := fs.String("username", "", "username for the new account")
	password := fs.String("password", "", "password for the new account")
	role := fs.String("role", "ROLE_ADMIN", "role for the new account")
	if err := fs.Parse(args); err != nil {
		return err
	}
	usersCLI := cli.NewUsersCLI(repo, cfg.BcryptCost)
	user, err := usersCLI.CreateUser(ctx, *username, *password, *role)
	if err != nil {
		return err
	}
	fmt.Printf("created user %s with role %s\n", user.Username, user.Role)
	return nil
}
