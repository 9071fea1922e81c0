package service_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"cp_tracker/internal/app/service"
	"cp_tracker/internal/common/security"
	"cp_tracker/internal/domain/repository"
	"cp_tracker/internal/platform/cache"
	"cp_tracker/internal/platform/config"
	"cp_tracker/internal/platform/database"
)

const testJWTSecret = "test-secret-key-for-unit-tests"

func newTestRepos(t *testing.T) *repository.Repositories {
	t.Helper()
	cfg := &config.Config{
		DBDriver:   config.DriverSQLite,
		SQLitePath: filepath.Join(t.TempDir(), "test.db"),
	}
	db, err := database.Open(context.Background(), cfg)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return repository.New(db, config.DriverSQLite)
}

func newTestAuthService(t *testing.T) (*service.AuthService, *security.TokenIssuer, *repository.Repositories) {
	t.Helper()
	repos := newTestRepos(t)
	tokens := security.NewTokenIssuer([]byte(testJWTSecret), time.Hour)
	// Use cost 4 for fast tests.
	return service.NewAuthService(repos.Users, tokens, 4), tokens, repos
}

func newTestSubmissionService(t *testing.T) (*service.SubmissionService, *repository.Repositories) {
	t.Helper()
	repos := newTestRepos(t)
	return service.NewSubmissionService(repos.Submissions, cache.Noop{}, 100), repos
}
