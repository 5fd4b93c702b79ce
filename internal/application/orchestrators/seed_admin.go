package orchestrators

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"

	"eventdesk/internal/domain/user"
)

// SeedAdminDeps holds dependencies for the admin seed.
type SeedAdminDeps struct {
	Users UserDirectory
}

// ExecuteSeedAdmin ensures an administrator account exists. Idempotent:
// an existing account with the email is left untouched.
func ExecuteSeedAdmin(ctx context.Context, deps SeedAdminDeps, adminEmail, adminPassword string) error {
	if existing := deps.Users.List(ctx, url.Values{"email": {adminEmail}}); len(existing) > 0 {
		return nil
	}

	admin := user.User{Email: adminEmail, Role: user.RoleAdministrator}
	if err := admin.SetPassword(adminPassword); err != nil {
		return fmt.Errorf("seed admin password: %w", err)
	}
	if err := admin.Validate(); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}

	created, ok := deps.Users.Create(ctx, admin)
	if !ok {
		return fmt.Errorf("seed admin: %w", ErrStoreRejected)
	}
	slog.Info("admin_seeded", "email", created.Email, "user_id", created.ID)
	return nil
}
