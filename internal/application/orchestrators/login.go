package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
)

// LoginInput carries input for the login orchestrator.
type LoginInput struct {
	Email    string
	Password string
}

// LoginResult carries the fields needed to create a session. It never
// includes credentials.
type LoginResult struct {
	UserID string
	Email  string
	Role   string
}

// LoginDeps holds dependencies for Login.
type LoginDeps struct {
	Users UserDirectory
}

// ErrInvalidCredentials covers absent users, ambiguous matches, wrong
// passwords, and transport failures alike. The user is never told which.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ExecuteLogin validates credentials and returns user info for session
// creation. The directory is queried by email only; the password is
// verified locally against the stored hash and never leaves the process in
// a query string.
// POST: Returns user info iff exactly one user matches and the password verifies
func ExecuteLogin(ctx context.Context, input LoginInput, deps LoginDeps) (LoginResult, error) {
	if input.Email == "" || input.Password == "" {
		return LoginResult{}, ErrInvalidCredentials
	}

	matches := deps.Users.List(ctx, url.Values{"email": {input.Email}})
	if len(matches) != 1 {
		slog.Info("auth_event", "event", "login_failed", "email", input.Email, "reason", "match_count", "matches", len(matches))
		return LoginResult{}, ErrInvalidCredentials
	}

	u := matches[0]
	if err := u.CheckPassword(input.Password); err != nil {
		slog.Info("auth_event", "event", "login_failed", "email", input.Email, "reason", "wrong_password")
		return LoginResult{}, ErrInvalidCredentials
	}

	slog.Info("auth_event", "event", "login_success", "email", u.Email, "role", u.Role)
	return LoginResult{UserID: u.ID, Email: u.Email, Role: u.Role}, nil
}
