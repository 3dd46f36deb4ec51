package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/DhavalSuthar-24/leaguehub/config"
	_ "github.com/DhavalSuthar-24/leaguehub/docs"
	"github.com/DhavalSuthar-24/leaguehub/internal/auth"
	"github.com/DhavalSuthar-24/leaguehub/internal/scheduler"
	"github.com/DhavalSuthar-24/leaguehub/internal/user"
	"github.com/DhavalSuthar-24/leaguehub/pkg/logger"
	"github.com/DhavalSuthar-24/leaguehub/routes"
)

// @title LeagueHub REST API
// @version 1.0
// @description League management backend: teams, matches, subscriptions and administration.
// @host localhost:8088
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	sugar, err := logger.New(cfg.App.Env, cfg.App.LogLevel)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer func() { _ = sugar.Sync() }()

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := config.ConnectDB(cfg)
	if err != nil {
		sugar.Fatalw("database connection failed", "error", err)
	}
	defer func() {
		if err := config.CloseDB(db); err != nil {
			sugar.Errorw("failed to close database", "error", err)
		}
	}()

	if err := db.AutoMigrate(routes.Models()...); err != nil {
		sugar.Fatalw("AutoMigrate failed", "error", err)
	}
	sugar.Info("AutoMigrate successful")

	users := user.NewUserRepository(db)
	sessions := user.NewSessionRepository(db)
	authService := auth.NewAuthService(users, sessions, cfg.JWT.Secret, cfg.TokenTTL(), sugar)
	if err := authService.EnsureAdmin(context.Background(), cfg.Admin.Email, cfg.Admin.Password); err != nil {
		sugar.Fatalw("admin bootstrap failed", "error", err)
	}

	jobs, err := scheduler.New(sugar)
	if err != nil {
		sugar.Fatalw("scheduler init failed", "error", err)
	}
	sweepEvery := time.Duration(cfg.Blacklist.SweepIntervalMinutes) * time.Minute
	if err := scheduler.RegisterTokenSweep(jobs, sessions, cfg.BlacklistRetention(), sweepEvery, sugar); err != nil {
		sugar.Fatalw("token sweep registration failed", "error", err)
	}
	jobs.Start()
	defer func() {
		if err := jobs.Stop(); err != nil {
			sugar.Errorw("scheduler shutdown failed", "error", err)
		}
	}()

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           routes.SetupRoutes(db, cfg, sugar),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		sugar.Infow("starting server", "port", cfg.App.Port, "env", cfg.App.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			sugar.Fatalw("server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	sugar.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		sugar.Errorw("server forced to shutdown", "error", err)
	}
}
