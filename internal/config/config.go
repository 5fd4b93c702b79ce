// Package config loads environment configuration for the Eventdesk
// binaries. A .env file in the working directory is honored in development.
package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log/slog"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Server configures cmd/server.
type Server struct {
	Addr        string `env:"EVENTDESK_ADDR" envDefault:":8080"`
	Env         string `env:"EVENTDESK_ENV" envDefault:"development"`
	ResourceURL string `env:"EVENTDESK_RESOURCE_URL" envDefault:"http://localhost:8090"`

	// Hex-encoded 32-byte secrets. Required in production; random
	// per-startup keys are generated in development.
	SessionHashKey  string `env:"EVENTDESK_SESSION_HASH_KEY"`
	SessionBlockKey string `env:"EVENTDESK_SESSION_BLOCK_KEY"`
	CSRFKey         string `env:"EVENTDESK_CSRF_KEY"`

	AdminEmail    string `env:"EVENTDESK_ADMIN_EMAIL" envDefault:"admin@events.com"`
	AdminPassword string `env:"EVENTDESK_ADMIN_PASSWORD" envDefault:"admin123"`

	ResendKey    string `env:"EVENTDESK_RESEND_KEY"`
	EmailFrom    string `env:"EVENTDESK_EMAIL_FROM" envDefault:"Eventdesk <noreply@events.com>"`
	EmailReplyTo string `env:"EVENTDESK_REPLY_TO" envDefault:"info@events.com"`
}

// IsProduction reports whether the production environment is configured.
func (c Server) IsProduction() bool {
	return c.Env == "production"
}

// Resourced configures cmd/resourced.
type Resourced struct {
	Addr   string `env:"RESOURCED_ADDR" envDefault:":8090"`
	DBPath string `env:"RESOURCED_DB" envDefault:"eventdesk.db"`
}

// LoadServer parses server configuration from the environment.
func LoadServer() (Server, error) {
	_ = godotenv.Load()
	var cfg Server
	if err := env.Parse(&cfg); err != nil {
		return Server{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// LoadResourced parses resource store configuration from the environment.
func LoadResourced() (Resourced, error) {
	_ = godotenv.Load()
	var cfg Resourced
	if err := env.Parse(&cfg); err != nil {
		return Resourced{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// DecodeKey turns a hex-encoded 32-byte secret into key material. An unset
// key is fatal in production; in development a random per-startup key is
// generated, which means sessions won't survive a restart.
func DecodeKey(name, hexKey string, production bool) ([]byte, error) {
	if hexKey != "" {
		key, err := hex.DecodeString(hexKey)
		if err != nil || len(key) != 32 {
			return nil, fmt.Errorf("%s must be 64 hex characters (32 bytes)", name)
		}
		return key, nil
	}
	if production {
		return nil, fmt.Errorf("%s is required in production", name)
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("generate %s: %w", name, err)
	}
	slog.Warn("using random key; set it for production", "key", name)
	return key, nil
}
