package doorkeep

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds all process-wide configuration. It is loaded once at startup
// and passed by reference; nothing mutates it afterwards.
type Config struct {
	// Discord application credentials.
	ClientID     string `env:"DISCORD_CLIENT_ID"`
	ClientSecret string `env:"DISCORD_CLIENT_SECRET"`

	// RedirectURI must match, byte for byte, the redirect URI registered
	// with the Discord application. It is sent both when building the
	// authorization URL and during the code exchange.
	RedirectURI string `env:"OAUTH_REDIRECT_URI"`

	// CookieSecret signs the state and memberId handshake cookies.
	CookieSecret string `env:"COOKIE_SECRET"`

	// AdminToken protects the record lookup endpoint.
	AdminToken string `env:"ADMIN_TOKEN"`

	// Server address, e.g. ":8080".
	Addr string `env:"ADDR" envDefault:":8080"`

	// Store backend selection for cmd/doorkeep: "fs" or "datastore".
	StoreBackend       string `env:"STORE_BACKEND" envDefault:"fs"`
	StoragePath        string `env:"STORAGE_PATH" envDefault:"./data"`
	DatastoreProject   string `env:"DATASTORE_PROJECT"`
	DatastoreNamespace string `env:"DATASTORE_NAMESPACE"`
}

// LoadConfig parses configuration from environment variables and validates
// the startup preconditions. A missing secret or credential is a fatal
// configuration fault, never a per-request error.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports the first missing required value.
func (c *Config) Validate() error {
	switch {
	case c.ClientID == "":
		return fmt.Errorf("DISCORD_CLIENT_ID is required")
	case c.ClientSecret == "":
		return fmt.Errorf("DISCORD_CLIENT_SECRET is required")
	case c.RedirectURI == "":
		return fmt.Errorf("OAUTH_REDIRECT_URI is required")
	case c.CookieSecret == "":
		return fmt.Errorf("COOKIE_SECRET is required")
	case c.AdminToken == "":
		return fmt.Errorf("ADMIN_TOKEN is required")
	}
	return nil
}
