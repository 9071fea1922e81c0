package service_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"cp_tracker/internal/app/service"
	"cp_tracker/internal/common"
)

func TestAuthService_Signup_Success(t *testing.T) {
	auth, _, repos := newTestAuthService(t)
	ctx := context.Background()

	user, err := auth.Signup(ctx, service.SignupRequest{Username: "alice", Email: "alice@example.com", Password: "password123"})
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}
	if user.ID == "" {
		t.Fatal("expected user ID to be set")
	}
	if user.HashedPassword != "" {
		t.Fatal("expected returned user to carry no password hash")
	}

	stored, err := repos.Users.FindByEmail(ctx, "alice@example.com")
	if err != nil {
		t.Fatalf("FindByEmail: %v", err)
	}
	if stored.HashedPassword == "" || stored.HashedPassword == "password123" {
		t.Fatalf("expected a bcrypt hash to be stored, got %q", stored.HashedPassword)
	}
}

func TestAuthService_Signup_DuplicateEmail(t *testing.T) {
	auth, _, _ := newTestAuthService(t)
	ctx := context.Background()

	if _, err := auth.Signup(ctx, service.SignupRequest{Username: "u1", Email: "dup@example.com", Password: "pw1"}); err != nil {
		t.Fatalf("first signup: %v", err)
	}
	_, err := auth.Signup(ctx, service.SignupRequest{Username: "u2", Email: "dup@example.com", Password: "pw2"})
	if !errors.Is(err, common.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestAuthService_Signup_DuplicateUsername(t *testing.T) {
	auth, _, _ := newTestAuthService(t)
	ctx := context.Background()

	if _, err := auth.Signup(ctx, service.SignupRequest{Username: "same", Email: "a@example.com", Password: "pw"}); err != nil {
		t.Fatalf("first signup: %v", err)
	}
	_, err := auth.Signup(ctx, service.SignupRequest{Username: "same", Email: "b@example.com", Password: "pw"})
	if !errors.Is(err, common.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
	if !strings.Contains(err.Error(), "username already taken") {
		t.Fatalf("expected username message, got %q", err.Error())
	}
}

func TestAuthService_Signup_DistinctEmailsSucceed(t *testing.T) {
	auth, _, _ := newTestAuthService(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		req := service.SignupRequest{
			Username: fmt.Sprintf("user%d", i),
			Email:    fmt.Sprintf("user%d@example.com", i),
			Password: "password123",
		}
		if _, err := auth.Signup(ctx, req); err != nil {
			t.Fatalf("Signup %d: %v", i, err)
		}
	}
}

func TestAuthService_Signup_EmptyFields(t *testing.T) {
	auth, _, _ := newTestAuthService(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  service.SignupRequest
	}{
		{"empty username", service.SignupRequest{Email: "a@b.com", Password: "pw"}},
		{"blank username", service.SignupRequest{Username: "   ", Email: "a@b.com", Password: "pw"}},
		{"empty email", service.SignupRequest{Username: "a", Password: "pw"}},
		{"empty password", service.SignupRequest{Username: "a", Email: "a@b.com"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := auth.Signup(ctx, tc.req); !errors.Is(err, common.ErrValidation) {
				t.Fatalf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	auth, tokens, _ := newTestAuthService(t)
	ctx := context.Background()

	user, err := auth.Signup(ctx, service.SignupRequest{Username: "login", Email: "login@example.com", Password: "password123"})
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}

	token, err := auth.Login(ctx, service.LoginRequest{Email: "login@example.com", Password: "password123"})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	userID, err := tokens.Verify(token)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if userID != user.ID {
		t.Fatalf("expected token for %s, got %s", user.ID, userID)
	}
}

func TestAuthService_Login_SameErrorForUnknownEmailAndWrongPassword(t *testing.T) {
	auth, _, _ := newTestAuthService(t)
	ctx := context.Background()

	if _, err := auth.Signup(ctx, service.SignupRequest{Username: "x", Email: "x@example.com", Password: "password123"}); err != nil {
		t.Fatalf("Signup: %v", err)
	}

	_, wrongPw := auth.Login(ctx, service.LoginRequest{Email: "x@example.com", Password: "nope"})
	_, unknown := auth.Login(ctx, service.LoginRequest{Email: "nobody@example.com", Password: "password123"})

	if !errors.Is(wrongPw, common.ErrInvalidCredentials) || !errors.Is(unknown, common.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for both, got %v and %v", wrongPw, unknown)
	}
	if wrongPw.Error() != unknown.Error() {
		t.Fatalf("messages differ: %q vs %q", wrongPw, unknown)
	}
}

func TestAuthService_Login_MissingFields(t *testing.T) {
	auth, _, _ := newTestAuthService(t)
	_, err := auth.Login(context.Background(), service.LoginRequest{Email: "a@b.com"})
	if !errors.Is(err, common.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestAuthService_Profile(t *testing.T) {
	auth, _, _ := newTestAuthService(t)
	ctx := context.Background()

	user, err := auth.Signup(ctx, service.SignupRequest{Username: "p", Email: "p@example.com", Password: "pw"})
	if err != nil {
		t.Fatalf("Signup: %v", err)
	}
	got, err := auth.Profile(ctx, user.ID)
	if err != nil {
		t.Fatalf("Profile: %v", err)
	}
	if got.Email != "p@example.com" || got.HashedPassword != "" {
		t.Fatalf("unexpected profile %+v", got)
	}

	if _, err := auth.Profile(ctx, "missing-id"); !errors.Is(err, common.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
