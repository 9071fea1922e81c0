package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cp_tracker/internal/api"
	"cp_tracker/internal/app/service"
	"cp_tracker/internal/common/security"
	"cp_tracker/internal/domain/repository"
	"cp_tracker/internal/platform/cache"
	"cp_tracker/internal/platform/config"
	"cp_tracker/internal/platform/database"
	"cp_tracker/internal/platform/logger"

	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "fatal:", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load Configuration
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// 2. Logging
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx := context.Background()

	// 3. Initialize Database
	db, err := database.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("database: %w", err)
	}
	defer db.Close()
	log.Info("database ready", zap.String("driver", cfg.DBDriver))

	// 4. Initialize Redis (optional)
	var submissionCache service.SubmissionCache = cache.Noop{}
	if cfg.CacheEnabled() {
		rdb, err := cache.ConnectRedis(ctx, cfg)
		if err != nil {
			return err
		}
		defer rdb.Close()
		submissionCache = cache.NewSubmissionList(rdb, cfg.SubmissionsCacheKey, cfg.SubmissionsCacheTTL)
	} else {
		log.Info("REDIS_ADDR not set, submission list cache disabled")
	}

	// 5. Repositories and services
	repos := repository.New(db, cfg.DBDriver)
	tokens := security.NewTokenIssuer(cfg.JWTKey, cfg.JWTExp)
	authService := service.NewAuthService(repos.Users, tokens, cfg.BcryptCost)
	submissionService := service.NewSubmissionService(repos.Submissions, submissionCache, cfg.MaxProblemsPerSubmission)

	// 6. Router & HTTP Server
	router := api.NewRouter(cfg, log, tokens, authService, submissionService)

	server := &http.Server{
		Addr:         ":" + cfg.APIPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// 7. Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		log.Info("server starting", zap.String("addr", "http://localhost:"+cfg.APIPort))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("could not listen on %s: %w", cfg.APIPort, err)
	case <-stop:
	}

	log.Info("shutting down server")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	log.Info("server stopped gracefully")
	return nil
}
