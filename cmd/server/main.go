package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"

	emailPkg "eventdesk/internal/adapters/email"
	web "eventdesk/internal/adapters/http"
	"eventdesk/internal/adapters/http/middleware"
	"eventdesk/internal/adapters/resource"
	"eventdesk/internal/application/orchestrators"
	"eventdesk/internal/config"
	"eventdesk/internal/domain/event"
	"eventdesk/internal/domain/user"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	cfg, err := config.LoadServer()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	middleware.SecureCookies = cfg.IsProduction()

	sessionHashKey, err := config.DecodeKey("EVENTDESK_SESSION_HASH_KEY", cfg.SessionHashKey, cfg.IsProduction())
	if err != nil {
		log.Fatalf("session key: %v", err)
	}
	sessionBlockKey, err := config.DecodeKey("EVENTDESK_SESSION_BLOCK_KEY", cfg.SessionBlockKey, cfg.IsProduction())
	if err != nil {
		log.Fatalf("session key: %v", err)
	}
	csrfKey, err := config.DecodeKey("EVENTDESK_CSRF_KEY", cfg.CSRFKey, cfg.IsProduction())
	if err != nil {
		log.Fatalf("csrf key: %v", err)
	}

	// Resource clients for the two remote collections.
	httpClient := &http.Client{Timeout: resource.DefaultTimeout}
	users := resource.NewClient[user.User](cfg.ResourceURL, "users", httpClient)
	events := resource.NewClient[event.Event](cfg.ResourceURL, "events", httpClient)

	// Ensure the administrator account exists. The store may still be
	// starting; the app stays up either way, so this is not fatal.
	seedDeps := orchestrators.SeedAdminDeps{Users: users}
	if err := orchestrators.ExecuteSeedAdmin(context.Background(), seedDeps, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		slog.Warn("admin_seed_failed", "error", err.Error())
	}

	var sender emailPkg.Sender
	if cfg.ResendKey != "" {
		sender = emailPkg.NewResendSender(cfg.ResendKey, cfg.EmailFrom)
		log.Println("Email sender configured (Resend)")
	} else {
		sender = emailPkg.NewNoopSender()
		if cfg.IsProduction() {
			log.Println("WARNING: EVENTDESK_RESEND_KEY is not set — email delivery is DISABLED in production")
		} else {
			log.Println("Email sender configured (noop — set EVENTDESK_RESEND_KEY for real delivery)")
		}
	}

	services := &web.Services{
		Users:        users,
		Events:       events,
		Sender:       sender,
		EmailFrom:    cfg.EmailFrom,
		EmailReplyTo: cfg.EmailReplyTo,
	}
	sessionStore := middleware.NewSessionStore(sessionHashKey, sessionBlockKey)
	mux := web.NewMux(services, sessionStore, csrfKey)

	log.Printf("Eventdesk %s starting on %s (env=%s, store=%s)", version, cfg.Addr, cfg.Env, cfg.ResourceURL)
	if err := http.ListenAndServe(cfg.Addr, mux); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
