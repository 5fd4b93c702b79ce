package orchestrators

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"strings"

	"eventdesk/internal/domain/user"
)

// RegisterInput carries input for the registration orchestrator.
type RegisterInput struct {
	Email    string
	Password string
}

// RegisterDeps holds dependencies for Register.
type RegisterDeps struct {
	Users UserDirectory
}

// Orchestrator errors surfaced to the user.
var (
	ErrDuplicateEmail = errors.New("an account with this email already exists")
	ErrStoreRejected  = errors.New("the request could not be completed")
)

// ExecuteRegister creates a visitor-role account.
// POST: Returns the created user, or ErrDuplicateEmail if the email is taken
func ExecuteRegister(ctx context.Context, input RegisterInput, deps RegisterDeps) (user.User, error) {
	input.Email = strings.TrimSpace(input.Email)

	// Duplicate check is an exact match, performed by the query layer.
	if existing := deps.Users.List(ctx, url.Values{"email": {input.Email}}); len(existing) > 0 {
		slog.Info("auth_event", "event", "register_failed", "email", input.Email, "reason", "duplicate")
		return user.User{}, ErrDuplicateEmail
	}

	u, err := user.New(input.Email, input.Password)
	if err != nil {
		return user.User{}, err
	}

	created, ok := deps.Users.Create(ctx, u)
	if !ok {
		return user.User{}, ErrStoreRejected
	}

	slog.Info("auth_event", "event", "register_success", "email", created.Email, "user_id", created.ID)
	// The caller never re-displays or re-stores the password hash.
	created.PasswordHash = ""
	return created, nil
}
